package engine

import (
	"errors"
	"fmt"
)

// Argument errors returned by every kernel entry point. Kernels validate
// their arguments before touching any scratch state or output.
var (
	// ErrNullArgument indicates a required slice or matrix was nil.
	ErrNullArgument = errors.New("null argument")

	// ErrLengthMismatch indicates an output buffer or paired filter has the wrong length.
	ErrLengthMismatch = errors.New("length mismatch")

	// ErrIndexOutOfBounds indicates a slice window falls outside its signal.
	ErrIndexOutOfBounds = errors.New("index out of bounds")

	// ErrTooLarge indicates a derived size or shift would overflow.
	ErrTooLarge = errors.New("size too large")

	// ErrInvalidArgument indicates a parameter outside its domain, such as an empty filter.
	ErrInvalidArgument = errors.New("invalid argument")
)

func nullArg(name string) error {
	return fmt.Errorf("%w: %s is nil", ErrNullArgument, name)
}

func lengthMismatch(name string, got, want int) error {
	return fmt.Errorf("%w: %s has length %d, want %d", ErrLengthMismatch, name, got, want)
}
