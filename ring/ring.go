// Package ring defines the commutative-ring arithmetic that every other
// package in this module is parameterized over: GF(2), GF(p) for small
// primes, and the valuation ring k[t] used by the τ-deformed resolution.
//
// Every concrete ring element type implements Ring; a valuation ring (one
// where every non-zero element divides, or is divided by, every other
// non-zero element) additionally implements Valuation so that Smith Normal
// Form and the cokernel code can pick pivots by minimal valuation instead
// of a general Euclidean algorithm.
package ring

import "errors"

// ErrNotDivisible is the value UnsafeDivide panics with when its
// precondition is violated (debug builds only — see Ring.UnsafeDivide).
var ErrNotDivisible = errors.New("ring: dividend is not divisible by divisor")

// ErrParse indicates a scalar token could not be parsed by Ring.Parse.
var ErrParse = errors.New("ring: malformed scalar token")

// Ring is a commutative ring with identity. Implementations are expected to
// be small, comparable value types (e.g. a uint64 for GF(p), a struct of two
// ints for k[t]) so that matrices of Elem can be stored by value.
type Ring[E any] interface {
	// Zero returns the additive identity.
	Zero() E
	// One returns the multiplicative identity.
	One() E
	// Add returns a + b.
	Add(a, b E) E
	// Sub returns a - b.
	Sub(a, b E) E
	// Neg returns -a.
	Neg(a E) E
	// Mul returns a * b.
	Mul(a, b E) E
	// IsZero reports whether a is the additive identity.
	IsZero(a E) bool
	// IsUnit reports whether a has a multiplicative inverse.
	IsUnit(a E) bool
	// Divides reports whether a divides b, i.e. there is a c with b = a*c.
	Divides(a, b E) bool
	// UnsafeDivide returns c such that b = a*c. The caller must have already
	// established Divides(a, b); behavior is undefined otherwise (in debug
	// builds it panics with ErrNotDivisible).
	UnsafeDivide(a, b E) E
	// Parse decodes a scalar from the field-parsing textual form used by
	// the builder package's already-tabulated coaction tables (an element
	// of the form "c" or "c.t^v" for the k[t] variant).
	Parse(text string) (E, error)
	// String renders e for diagnostics.
	String(e E) string
}

// Valuation is a Ring whose non-zero elements are totally ordered by
// divisibility via an integer valuation: a divides b iff Valuation(a) <=
// Valuation(b). k[t] is the only variant this module implements.
type Valuation[E any] interface {
	Ring[E]
	// Valuation returns the t-adic valuation of a non-zero element. The
	// caller must not call this on a zero element.
	Valuation(a E) int
}
