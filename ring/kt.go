package ring

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vossetje/comodules/internal/debug"
)

// KtElem is an element of the valuation ring k[t]: zero is (0, 0); every
// non-zero element is Unit * t^Valuation with Unit != 0. Addition of two
// non-zero elements of differing valuation is a bug upstream (the engine
// always reduces to a single unit*t^v representative before it reaches a
// KtElem) — see Ring.Add's doc below for the exact contract.
type KtElem struct {
	Unit FpElem
	Val  int
}

// KtRing is the valuation ring k[t] over the coefficient field GF(p)
// (Field is typically GF(2)). For every non-zero element, divisibility
// reduces to comparing valuations: (c,v) divides (c',v') iff v <= v', which
// is why this type implements Valuation instead of a general PID interface.
type KtRing struct {
	Field FpRing
}

// NewKtRing builds k[t] over the coefficient field GF(p).
func NewKtRing(field FpRing) KtRing {
	return KtRing{Field: field}
}

var (
	_ Ring[KtElem]      = KtRing{}
	_ Valuation[KtElem] = KtRing{}
)

func (r KtRing) Zero() KtElem { return KtElem{Unit: 0, Val: 0} }
func (r KtRing) One() KtElem  { return KtElem{Unit: r.Field.One(), Val: 0} }

func (r KtRing) IsZero(a KtElem) bool { return r.Field.IsZero(a.Unit) }
func (r KtRing) IsUnit(a KtElem) bool { return !r.IsZero(a) && a.Val == 0 }

// Add sums two elements of k[t]. Same-valuation sums are the normal case; if
// the units happen to cancel, the result collapses to the canonical zero
// (0,0). Mixed-valuation, non-zero sums cannot be represented as a single
// unit*t^v monomial and indicate an upstream bug (the engine's reduction
// passes never let this happen) — debug builds catch it; release builds
// trust the construction and silently keep the lower-valuation term.
func (r KtRing) Add(a, b KtElem) KtElem {
	if r.IsZero(a) {
		return b
	}
	if r.IsZero(b) {
		return a
	}
	if a.Val == b.Val {
		u := r.Field.Add(a.Unit, b.Unit)
		if r.Field.IsZero(u) {
			return r.Zero()
		}
		return KtElem{Unit: u, Val: a.Val}
	}
	if debug.Asserts {
		panic("ring: k[t] Add of mixed-valuation non-zero terms")
	}
	if a.Val < b.Val {
		return a
	}
	return b
}

func (r KtRing) Neg(a KtElem) KtElem {
	if r.IsZero(a) {
		return a
	}
	return KtElem{Unit: r.Field.Neg(a.Unit), Val: a.Val}
}

func (r KtRing) Sub(a, b KtElem) KtElem {
	return r.Add(a, r.Neg(b))
}

func (r KtRing) Mul(a, b KtElem) KtElem {
	if r.IsZero(a) || r.IsZero(b) {
		return r.Zero()
	}
	return KtElem{Unit: r.Field.Mul(a.Unit, b.Unit), Val: a.Val + b.Val}
}

// Divides reports a | b using valuation comparison: every non-zero element
// of k[t] is a unit times t^v, so divisibility is exactly v_a <= v_b.
func (r KtRing) Divides(a, b KtElem) bool {
	if r.IsZero(a) {
		return r.IsZero(b)
	}
	if r.IsZero(b) {
		return true
	}
	return a.Val <= b.Val
}

// UnsafeDivide returns c with b = a*c, assuming Divides(a, b) already holds.
func (r KtRing) UnsafeDivide(a, b KtElem) KtElem {
	if debug.Asserts && !r.Divides(a, b) {
		panic(ErrNotDivisible)
	}
	if r.IsZero(b) {
		return r.Zero()
	}
	return KtElem{
		Unit: r.Field.UnsafeDivide(a.Unit, b.Unit),
		Val:  b.Val - a.Val,
	}
}

// Valuation returns the t-adic valuation of a non-zero element.
func (r KtRing) Valuation(a KtElem) int {
	return a.Val
}

// Parse decodes "c", "c.t^v", or "t^v" (unit coefficient 1) into a KtElem.
func (r KtRing) Parse(text string) (KtElem, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return KtElem{}, ErrParse
	}

	coeffPart, tPart, hasT := strings.Cut(text, ".")
	if !hasT {
		// Either a bare coefficient, or a bare "t^v" / "t" power.
		if strings.HasPrefix(coeffPart, "t") {
			v, err := parseTPower(coeffPart)
			if err != nil {
				return KtElem{}, err
			}
			one := r.Field.One()
			if r.Field.IsZero(one) {
				return r.Zero(), nil
			}
			return KtElem{Unit: one, Val: v}, nil
		}
		c, err := r.Field.Parse(coeffPart)
		if err != nil {
			return KtElem{}, err
		}
		if r.Field.IsZero(c) {
			return r.Zero(), nil
		}
		return KtElem{Unit: c, Val: 0}, nil
	}

	c, err := r.Field.Parse(coeffPart)
	if err != nil {
		return KtElem{}, err
	}
	v, err := parseTPower(tPart)
	if err != nil {
		return KtElem{}, err
	}
	if r.Field.IsZero(c) {
		return r.Zero(), nil
	}
	return KtElem{Unit: c, Val: v}, nil
}

// parseTPower parses "t^v" or bare "t" (meaning t^1) into the exponent v.
func parseTPower(text string) (int, error) {
	text = strings.TrimSpace(text)
	if text == "t" {
		return 1, nil
	}
	base, exp, ok := strings.Cut(text, "^")
	if !ok || base != "t" {
		return 0, ErrParse
	}
	v, err := strconv.Atoi(exp)
	if err != nil {
		return 0, ErrParse
	}
	return v, nil
}

func (r KtRing) String(e KtElem) string {
	if r.IsZero(e) {
		return "0"
	}
	if e.Val == 0 {
		return r.Field.String(e.Unit)
	}
	return fmt.Sprintf("%s.t^%d", r.Field.String(e.Unit), e.Val)
}
