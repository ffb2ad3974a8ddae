package matrix

import "errors"

// Sentinel errors for matrix package operations. Every algorithm returns
// these (wrapped with %w and an operation tag) rather than panicking on a
// caller-triggered condition; panics are reserved for debug-only invariant
// checks (see internal/debug).
var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g. Compose where a.domain != b.codomain, or VStack with differing domains.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")
)
