package tensor

import "errors"

// Failure kinds reported by tensor operations.
//
// Every error returned by this package wraps exactly one of these sentinels,
// so callers can branch with errors.Is.
var (
	ErrShapeMismatch      = errors.New("shape mismatch")
	ErrAxisOutOfRange     = errors.New("axis out of range")
	ErrAxesLengthMismatch = errors.New("axes length mismatch")
	ErrDuplicateAxis      = errors.New("duplicate axis")
	ErrTypeMismatch       = errors.New("type mismatch")
	ErrInvalidArity       = errors.New("invalid operation arity")
	ErrInvalidState       = errors.New("invalid state")
)
