package cfd

import (
	"errors"
	"fmt"
)

// ErrorKind is a coarse classification of adapter failures.
type ErrorKind string

const (
	KindIO      ErrorKind = "io"
	KindProcess ErrorKind = "process"
	KindParse   ErrorKind = "parse"
)

// OpError wraps a failure of an external tool or of its files with the
// operation that failed.
type OpError struct {
	Op   string
	Kind ErrorKind
	Path string
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}
	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind reports whether err wraps an [*OpError] of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}
