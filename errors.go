package dwt

import (
	"errors"

	"github.com/tphakala/go-dwt/internal/engine"
)

// Errors returned by the kernels. Use errors.Is to branch on them; the
// returned errors wrap these with details about the offending argument.
var (
	// ErrNullArgument indicates a required slice or matrix was nil.
	ErrNullArgument = engine.ErrNullArgument

	// ErrLengthMismatch indicates an output buffer or paired filter has the wrong length.
	ErrLengthMismatch = engine.ErrLengthMismatch

	// ErrIndexOutOfBounds indicates a slice window falls outside its signal.
	ErrIndexOutOfBounds = engine.ErrIndexOutOfBounds

	// ErrTooLarge indicates a derived size or MODWT shift would overflow.
	ErrTooLarge = engine.ErrTooLarge

	// ErrInvalidArgument indicates a parameter outside its domain.
	ErrInvalidArgument = engine.ErrInvalidArgument

	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid kernel configuration")
)
