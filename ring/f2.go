package ring

import (
	"strconv"
	"strings"

	"github.com/vossetje/comodules/internal/debug"
)

// F2Elem is an element of GF(2), represented as 0 or 1.
type F2Elem uint8

// F2 is the unique field with two elements. The zero value is ready to use.
type F2Ring struct{}

// F2 is the package-wide GF(2) ring instance; it carries no state, so
// every caller can share the same zero-valued instance.
var F2 F2Ring

var _ Ring[F2Elem] = F2Ring{}

func (F2Ring) Zero() F2Elem { return 0 }
func (F2Ring) One() F2Elem  { return 1 }

func (F2Ring) Add(a, b F2Elem) F2Elem { return a ^ b }
func (F2Ring) Sub(a, b F2Elem) F2Elem { return a ^ b }
func (F2Ring) Neg(a F2Elem) F2Elem    { return a }
func (F2Ring) Mul(a, b F2Elem) F2Elem { return a & b }

func (F2Ring) IsZero(a F2Elem) bool { return a == 0 }
func (F2Ring) IsUnit(a F2Elem) bool { return a == 1 }

func (F2Ring) Divides(a, b F2Elem) bool {
	// Only 1 properly "divides"; 0 divides only 0.
	return a == 1 || b == 0
}

func (F2Ring) UnsafeDivide(a, b F2Elem) F2Elem {
	if debug.Asserts && !(F2Ring{}).Divides(a, b) {
		panic(ErrNotDivisible)
	}
	return b
}

func (F2Ring) Parse(text string) (F2Elem, error) {
	text = strings.TrimSpace(text)
	switch text {
	case "0":
		return 0, nil
	case "1":
		return 1, nil
	}
	v, err := strconv.ParseUint(text, 10, 8)
	if err != nil || v > 1 {
		return 0, ErrParse
	}
	return F2Elem(v), nil
}

func (F2Ring) String(e F2Elem) string {
	if e == 0 {
		return "0"
	}
	return "1"
}
