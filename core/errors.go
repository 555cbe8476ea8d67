package core

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned for malformed input such as an empty history
// key or an unknown store backend type. Callers should test with errors.Is;
// the returned error is usually wrapped with additional context.
var ErrInvalidArgument = errors.New("invalid argument")

// IOError reports a failed persistence operation (log append, database write).
// The wrapped error carries the underlying cause (missing directory, disk
// full, permission denied, ...).
type IOError struct {
	Op   string // operation that failed, e.g. "append"
	Path string // file or database path involved
	Err  error
}

// Error implements error.
func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("history %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("history %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *IOError) Unwrap() error { return e.Err }

// InvalidArgumentf formats a message and wraps ErrInvalidArgument.
func InvalidArgumentf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
