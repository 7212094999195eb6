package cfd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Intermediate lists the files a run leaves behind that are only needed
// while the solver runs.
var Intermediate = []string{
	MeshFile,
	FixedMeshFile,
	"restart_flow.dat",
	"original_grid.dat",
	MeshFixConfigFile,
}

// RunDir returns the directory of the n-th evaluation below root.
func RunDir(root string, n int64) string {
	return filepath.Join(root, fmt.Sprintf("iter_%09d", n))
}

// Prepare creates dir if it does not exist.
func Prepare(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &OpError{Op: "prepare run dir", Kind: KindIO, Path: dir, Err: err}
	}
	return nil
}

// Cleanup removes the [Intermediate] files from dir. Missing files are not
// an error.
func Cleanup(dir string) error {
	var errs []error
	for _, name := range Intermediate {
		path := filepath.Join(dir, name)
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, &OpError{Op: "cleanup", Kind: KindIO, Path: path, Err: err})
		}
	}
	return errors.Join(errs...)
}
