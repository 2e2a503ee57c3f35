package hosts

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrMissingTargetFile = errors.New("hosts file does not exist")
	ErrMalformedLine     = errors.New("malformed hosts entry")
	ErrWriteFailure      = errors.New("failed to write hosts file")
	ErrInvalidOptions    = errors.New("invalid entry options")
)

// MalformedLineError describes a line with fewer than two fields.
// Line is 1-based, zero when the line did not come from a file.
type MalformedLineError struct {
	Line    int
	Content string
}

func (e *MalformedLineError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: %q", ErrMalformedLine, e.Content)
	}
	return fmt.Sprintf("%s at line %d: %q", ErrMalformedLine, e.Line, e.Content)
}
func (e *MalformedLineError) Is(target error) bool {
	return target == ErrMalformedLine
}

// WriteError is returned by Save when the hosts file could not be read back
// or replaced. It matches ErrWriteFailure and unwraps to the cause.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s %s: %v", ErrWriteFailure, e.Path, e.Err)
}
func (e *WriteError) Unwrap() error { return e.Err }
func (e *WriteError) Is(target error) bool {
	return target == ErrWriteFailure
}
