// Package builder turns already-tabulated basis/coaction tables (the
// validated form — not a raw text dialect, whose parsing is left to a
// separate front end) into a comodule.Coalgebra or comodule.Comodule.
// It resolves basis elements by name, parses scalar tokens via
// ring.Ring.Parse, and reports malformed tables as a builder.ParseError
// carrying a source line number.
package builder

import (
	"errors"
	"fmt"
)

// Sentinel errors identifying the class of a table malformation.
// Callers branch on these with errors.Is; every one is surfaced
// wrapped in a *ParseError so the offending line number travels with
// it.
var (
	// ErrMalformedSection indicates the table itself is structurally
	// broken: a basis entry with no name, a coaction entry naming an
	// owner basis element that was never declared, or (with
	// WithStrictDuplicateNames) a repeated name.
	ErrMalformedSection = errors.New("builder: malformed section")

	// ErrUnknownBasisName indicates a coaction entry's Left or Right
	// field names a basis element absent from the relevant table
	// (the coalgebra's for BuildComodule's Left side, the table
	// itself otherwise).
	ErrUnknownBasisName = errors.New("builder: unknown basis name")

	// ErrBadGradeToken indicates a scalar token could not be parsed
	// by the target ring's Parse (the "c" or "c.t^v" form).
	ErrBadGradeToken = errors.New("builder: malformed scalar token")

	// ErrCoactionOrder indicates the same (left, right) pair appears
	// twice in one basis element's coaction list, violating the
	// one-entry-per-pair canonical ordering every downstream
	// consumer (graded.Tensor.Generate's deterministic numbering)
	// relies on.
	ErrCoactionOrder = errors.New("builder: repeated coaction pair")
)

// ParseError reports a single malformed table entry: which line it
// came from (0 when the caller did not attach one — e.g. a table
// built in Go code rather than loaded from a fixture), which sentinel
// classifies it, and a human-readable detail.
type ParseError struct {
	Line int
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("builder: line %d: %s: %s", e.Line, e.Err, e.Msg)
	}
	return fmt.Sprintf("builder: %s: %s", e.Err, e.Msg)
}

// Unwrap exposes the classifying sentinel so errors.Is(err,
// ErrUnknownBasisName) (etc.) works on a *ParseError as well as on
// any error this package returns directly.
func (e *ParseError) Unwrap() error { return e.Err }

func parseErrf(line int, sentinel error, format string, args ...any) error {
	return &ParseError{Line: line, Err: sentinel, Msg: fmt.Sprintf(format, args...)}
}
