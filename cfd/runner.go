package cfd

import (
	"context"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Runner starts an external program in a directory and waits for it.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) error
}

// ExecRunner runs programs as child processes. Combined output goes to
// <dir>/<program>.log.
type ExecRunner struct {
	Logger *slog.Logger
}

func (r ExecRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	logPath := filepath.Join(dir, base+".log")
	out, err := os.Create(logPath)
	if err != nil {
		return &OpError{Op: "run " + base, Kind: KindIO, Path: logPath, Err: err}
	}
	defer out.Close()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = out
	cmd.Stderr = out

	start := time.Now()
	if r.Logger != nil {
		r.Logger.Debug("process.start", "program", name, "args", args, "dir", dir)
	}
	err = cmd.Run()
	if r.Logger != nil {
		r.Logger.Debug("process.done", "program", name, "elapsed", time.Since(start), "err", err)
	}
	if err != nil {
		return &OpError{Op: "run " + base, Kind: KindProcess, Path: logPath, Err: err}
	}
	return nil
}
