package ring

import (
	"strconv"
	"strings"

	"github.com/vossetje/comodules/internal/debug"
)

// FpElem is an element of GF(p) represented by its unique residue in
// [0, p). The modulus itself lives in the FpRing that produced it; elements
// from different moduli must never be mixed (debug builds do not check this
// — callers are expected to keep one FpRing per comodule/coalgebra pair,
// the same ownership discipline a coalgebra and its comodules share).
type FpElem uint64

// FpRing is the field GF(p) for a small prime p. Inversion uses Fermat's
// little theorem (a^(p-2) == a^-1 mod p), which is cheap for the small
// primes this engine is built for (mod-exponentiation is O(log p)).
type FpRing struct {
	P uint64
}

// NewFpRing constructs the field of residues modulo the given prime p. p is
// trusted to be prime; this package never verifies primality (that belongs
// to the builder/validation boundary, same as every other precondition
// ring.Ring documents but does not enforce at runtime).
func NewFpRing(p uint64) FpRing {
	return FpRing{P: p}
}

var _ Ring[FpElem] = FpRing{}

func (r FpRing) Zero() FpElem { return 0 }
func (r FpRing) One() FpElem  { return 1 % FpElem(r.P) }

func (r FpRing) Add(a, b FpElem) FpElem {
	return FpElem((uint64(a) + uint64(b)) % r.P)
}

func (r FpRing) Sub(a, b FpElem) FpElem {
	return FpElem((uint64(a) + r.P - uint64(b)%r.P) % r.P)
}

func (r FpRing) Neg(a FpElem) FpElem {
	if a == 0 {
		return 0
	}
	return FpElem(r.P - uint64(a))
}

func (r FpRing) Mul(a, b FpElem) FpElem {
	return FpElem((uint64(a) * uint64(b)) % r.P)
}

func (r FpRing) IsZero(a FpElem) bool { return a == 0 }
func (r FpRing) IsUnit(a FpElem) bool { return a != 0 }

func (r FpRing) Divides(a, b FpElem) bool {
	return a != 0 || b == 0
}

func (r FpRing) UnsafeDivide(a, b FpElem) FpElem {
	if debug.Asserts && !r.Divides(a, b) {
		panic(ErrNotDivisible)
	}
	return r.Mul(b, r.inverse(a))
}

// inverse returns a^-1 via Fermat's little theorem: a^(p-2) == a^-1 (mod p).
func (r FpRing) inverse(a FpElem) FpElem {
	return r.pow(a, r.P-2)
}

func (r FpRing) pow(base FpElem, exp uint64) FpElem {
	result := FpElem(1 % r.P)
	b := base
	for exp > 0 {
		if exp&1 == 1 {
			result = r.Mul(result, b)
		}
		b = r.Mul(b, b)
		exp >>= 1
	}
	return result
}

func (r FpRing) Parse(text string) (FpElem, error) {
	text = strings.TrimSpace(text)
	v, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return 0, ErrParse
	}
	return FpElem(v % r.P), nil
}

func (r FpRing) String(e FpElem) string {
	return strconv.FormatUint(uint64(e), 10)
}
