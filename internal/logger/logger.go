// Package logger configures the structured logger shared by the command line
// tools.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	slogmulti "github.com/samber/slog-multi"
)

type Config struct {
	// Root is the working directory; logs go to Root/logs/bpfoil.log.
	Root  string
	Debug bool
	// Console, if set, receives a human-readable copy of every record.
	Console io.Writer
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// Setup opens the log file and returns a logger writing to it. The returned
// function closes the file.
func Setup(cfg Config) (*slog.Logger, func() error, error) {
	root := filepath.Clean(cfg.Root)
	if cfg.Root == "" {
		root = "."
	}

	dir := filepath.Join(root, "logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Discard(), nil, err
	}

	path := filepath.Join(dir, "bpfoil.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return Discard(), nil, err
	}

	level := slog.LevelInfo
	addSource := false
	if cfg.Debug {
		level = slog.LevelDebug
		addSource = true
	}

	var h slog.Handler = slog.NewJSONHandler(f, &slog.HandlerOptions{
		Level:     level,
		AddSource: addSource,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
				t := a.Value.Time().UTC()
				a.Value = slog.StringValue(t.Format(time.RFC3339Nano))
			}
			return a
		},
	})
	if cfg.Console != nil {
		h = slogmulti.Fanout(h, slog.NewTextHandler(cfg.Console, &slog.HandlerOptions{Level: level}))
	}

	l := slog.New(h)
	l.Info("logger.initialized", "path", path, "debug", cfg.Debug)
	return l, f.Close, nil
}
