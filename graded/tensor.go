// Package graded implements the graded tensor-product bookkeeping and
// graded linear-map type the resolution engine builds its cofree
// comodules and data-step matrices out of.
package graded

import (
	"errors"
	"fmt"

	"github.com/vossetje/comodules/grading"
	"github.com/vossetje/comodules/internal/debug"
)

// ErrHomogeneity indicates a coaction term whose left/right summand
// grades do not add up to the grade of the basis element it is a term
// of. The tensor bookkeeping itself never constructs a non-homogeneous
// entry — Generate always derives t_grade as the sum of its factors —
// so this sentinel is raised by callers that validate
// externally-supplied coaction data (the builder package) before
// handing it to Generate.
var ErrHomogeneity = errors.New("graded: coaction term is not homogeneous")

// Elem identifies one basis element of a tensor product module: a pair
// of (grade, local index) coordinates on the left and right factors.
type Elem[G comparable] struct {
	LGrade G
	LID    int
	RGrade G
	RID    int
}

// Tensor is the numbering scheme of a graded tensor product C ⊗ k{S}:
// every basis element is assigned a stable, deterministic local index
// within its total grade the first time it is generated. construct and
// deconstruct are kept as exact inverses of one another; dimensions
// caches each grade's basis count (equal to len(deconstruct[grade]), but
// kept alongside as its own atomically-updated map rather than derived
// on every call).
type Tensor[G comparable] struct {
	grading     grading.Grading[G]
	construct   map[Elem[G]]int
	deconstruct map[G][]Elem[G]
	dimensions  map[G]int
}

// NewTensor allocates an empty tensor numbering over the given grading.
func NewTensor[G comparable](g grading.Grading[G]) *Tensor[G] {
	return &Tensor[G]{
		grading:     g,
		construct:   make(map[Elem[G]]int),
		deconstruct: make(map[G][]Elem[G]),
		dimensions:  make(map[G]int),
	}
}

// Dimension returns the basis count at the given total grade.
func (t *Tensor[G]) Dimension(grade G) int { return t.dimensions[grade] }

// Grades returns every total grade with a non-empty basis, in no
// particular order.
func (t *Tensor[G]) Grades() []G {
	out := make([]G, 0, len(t.deconstruct))
	for g := range t.deconstruct {
		out = append(out, g)
	}
	return out
}

// Lookup returns the local index of elem within its total grade, and
// whether it has been generated.
func (t *Tensor[G]) Lookup(elem Elem[G]) (int, bool) {
	id, ok := t.construct[elem]
	return id, ok
}

// At returns the Elem stored at the given (grade, local index).
func (t *Tensor[G]) At(grade G, id int) Elem[G] {
	return t.deconstruct[grade][id]
}

// GradeDims describes a module's basis dimensions, one count per
// grade, as consumed by Generate. Both the coalgebra and the comodule
// expose their basis this way.
type GradeDims[G comparable] interface {
	Grades() []G
	Dim(grade G) int
}

// Generate enumerates every pair (l_grade, l_id) × (r_grade, r_id) from
// left × right, ordered primarily by l_grade, then l_id, then r_grade,
// then r_id — a deterministic iteration order this numbering scheme
// depends on every downstream matrix being seeded from. include, if
// non-nil, is consulted per pair and skips allocation for pairs it
// rejects (e.g. a coaction producing an all-zero column); a nil include
// accepts every pair.
// Each accepted pair is assigned a fresh local index under its total
// grade l_grade+r_grade, inserted into construct, deconstruct, and
// dimensions together.
func (t *Tensor[G]) Generate(left, right GradeDims[G], include func(Elem[G]) bool) {
	lGrades := sortedGrades(t.grading, left.Grades())
	for _, lg := range lGrades {
		lDim := left.Dim(lg)
		for lID := 0; lID < lDim; lID++ {
			rGrades := sortedGrades(t.grading, right.Grades())
			for _, rg := range rGrades {
				rDim := right.Dim(rg)
				for rID := 0; rID < rDim; rID++ {
					elem := Elem[G]{LGrade: lg, LID: lID, RGrade: rg, RID: rID}
					if include != nil && !include(elem) {
						continue
					}
					t.insert(elem)
				}
			}
		}
	}
	t.checkConsistency()
}

func (t *Tensor[G]) insert(elem Elem[G]) int {
	if id, ok := t.construct[elem]; ok {
		return id
	}
	total := t.grading.Add(elem.LGrade, elem.RGrade)
	id := len(t.deconstruct[total])
	t.deconstruct[total] = append(t.deconstruct[total], elem)
	t.construct[elem] = id
	t.dimensions[total] = len(t.deconstruct[total])
	return id
}

// AddAndRestrict shifts every grade of t by shift and drops any grade
// exceeding limit (per the Grading's Less ordering), returning a new
// Tensor; t is left unmodified. The shift is carried by the right
// factor's grade, so LGrade/LID keep addressing the left module's own
// basis.
func (t *Tensor[G]) AddAndRestrict(shift G, limit G) *Tensor[G] {
	out := NewTensor[G](t.grading)
	for grade, elems := range t.deconstruct {
		shifted := t.grading.Add(grade, shift)
		if t.grading.Less(limit, shifted) {
			continue
		}
		for _, e := range elems {
			out.insert(Elem[G]{
				LGrade: e.LGrade,
				LID:    e.LID,
				RGrade: t.grading.Add(e.RGrade, shift),
				RID:    e.RID,
			})
		}
	}
	out.checkConsistency()
	return out
}

// DirectSum merges other into t, re-indexing other's right-factor ids
// by t's current per-grade dimensions (selfDims), so the two modules'
// generator sets occupy disjoint index ranges at every shared grade.
// It returns the offset applied at each of other's right-grades, keyed
// by grade, so the caller can translate other's own bookkeeping (e.g.
// an injection matrix) into the merged numbering.
func (t *Tensor[G]) DirectSum(other *Tensor[G], selfDims map[G]int) map[G]int {
	offsets := make(map[G]int, len(other.deconstruct))
	for grade, elems := range other.deconstruct {
		offset := selfDims[grade]
		offsets[grade] = offset
		for _, e := range elems {
			shifted := Elem[G]{LGrade: e.LGrade, LID: e.LID, RGrade: e.RGrade, RID: e.RID + offset}
			t.insert(shifted)
		}
	}
	t.checkConsistency()
	return offsets
}

func (t *Tensor[G]) checkConsistency() {
	if !debug.Asserts {
		return
	}
	for elem, id := range t.construct {
		total := t.grading.Add(elem.LGrade, elem.RGrade)
		elems := t.deconstruct[total]
		if id < 0 || id >= len(elems) || elems[id] != elem {
			panic(fmt.Sprintf("graded: tensor construct/deconstruct mismatch at %+v", elem))
		}
	}
	for grade, elems := range t.deconstruct {
		if t.dimensions[grade] != len(elems) {
			panic(fmt.Sprintf("graded: tensor dimension mismatch at grade %v", grade))
		}
		for id, elem := range elems {
			if t.construct[elem] != id {
				panic(fmt.Sprintf("graded: tensor deconstruct/construct mismatch at %+v", elem))
			}
		}
	}
}

// sortedGrades orders grades ascending by g.Less, the deterministic
// walk every Tensor/Map iteration in this package relies on.
func sortedGrades[G comparable](g grading.Grading[G], grades []G) []G {
	out := append([]G(nil), grades...)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && g.Less(out[j], out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
