// Package comodule implements the coalgebra/comodule data model, the
// cofree comodule construction, and the injection of a comodule into a
// cofree envelope. It is generic over the internal grading G and the
// ring element type E, so the same code serves both the GF(2) and k[t]
// coefficient worlds; callers pick the matching abelian.MatrixOps[M]
// backend when they move from coaction term lists to actual matrices
// (in the injection step and in the resolution scheduler).
package comodule

import (
	"fmt"
	"sort"

	"github.com/vossetje/comodules/grading"
	"github.com/vossetje/comodules/ring"
)

// CoactionTerm is one summand of a comultiplication/coaction value: the
// basis element decomposes (at least in part) as value·(left ⊗ right).
type CoactionTerm[G comparable, E any] struct {
	LGrade G
	LID    int
	RGrade G
	RID    int
	Value  E
}

// RawTerm is a coaction summand addressed by flat basis index, the
// shape build_coalgebra/build_comodule's coaction_table entries take
// before they are resolved to (grade, local index) pairs.
type RawTerm[E any] struct {
	LeftIdx  int
	RightIdx int
	Value    E
}

type basisKey[G comparable] struct {
	Grade G
	ID    int
}

// Coalgebra is a graded vector space A with a comultiplication
// A -> A⊗A, stored as a sparse per-basis-element term list: the
// coaction is consulted lazily by basis element rather than
// materialized as a dense matrix, matching how the resolution
// scheduler's per-cell lookup tables walk it.
type Coalgebra[G comparable, E any] struct {
	Grading  grading.Grading[G]
	Ring     ring.Ring[E]
	basis    *grading.Layout[G, grading.BasisElement]
	coaction map[basisKey[G]][]CoactionTerm[G, E]
	// flatIndex preserves the original basis-table order passed to
	// BuildCoalgebra, so BuildComodule's coactionTable can reference
	// coalgebra basis elements by that same flat index.
	flatIndex []basisKey[G]
}

// Grades returns every grade with at least one basis element.
func (c *Coalgebra[G, E]) Grades() []G { return c.basis.Grades() }

// Dim returns the basis count at grade g (satisfies graded.GradeDims).
func (c *Coalgebra[G, E]) Dim(g G) int { return c.basis.Len(g) }

// BasisAt returns the basis element at (grade, id).
func (c *Coalgebra[G, E]) BasisAt(g G, id int) grading.BasisElement {
	return c.basis.At(g)[id]
}

// Coaction returns the comultiplication terms of the basis element at
// (grade, id) exactly as the coaction table listed them, or nil if the
// table listed none. A primitive element's Δx = 1⊗x + x⊗1 terms are
// returned only when the table lists them; the core does not
// synthesize them.
func (c *Coalgebra[G, E]) Coaction(g G, id int) []CoactionTerm[G, E] {
	return c.coaction[basisKey[G]{g, id}]
}

// NumFlat returns the length of the original flat basis table passed
// to BuildCoalgebra — the same indexing a coaction_table's left side
// addresses when building a comodule over this coalgebra.
func (c *Coalgebra[G, E]) NumFlat() int { return len(c.flatIndex) }

// FlatAt returns the name and grade of the basis element at flat
// index i (0 <= i < NumFlat()), in the exact original basis-table
// order BuildCoalgebra was given. A caller that needs to resolve a
// coaction_table's left_basis_index by name (rather than by the flat
// position it already knows) reconstructs a name -> flat-index table
// from this rather than from Grades()/BasisAt, whose (grade, id)
// addressing does not by itself recover the original flat order.
func (c *Coalgebra[G, E]) FlatAt(i int) (name string, grade G) {
	key := c.flatIndex[i]
	return c.basis.At(key.Grade)[key.ID].Name, key.Grade
}

// BuildCoalgebra is the core (numeric-index) construction entry point:
// basis element i has grade grades[i] and name names[i]; coactionTable[i]
// lists i's comultiplication terms by flat index into the same basis
// table. Resolving named tables into this shape is the builder
// package's job, not this one's.
func BuildCoalgebra[G comparable, E any](g grading.Grading[G], r ring.Ring[E], names []string, grades []G, coactionTable [][]RawTerm[E]) (*Coalgebra[G, E], error) {
	if len(names) != len(grades) || len(names) != len(coactionTable) {
		return nil, fmt.Errorf("comodule: BuildCoalgebra: basis table length mismatch")
	}
	basis := grading.NewLayout[G, grading.BasisElement]()
	flatToLocal := make([]basisKey[G], len(names))
	for i, name := range names {
		localID := basis.Len(grades[i])
		basis.Append(grades[i], grading.BasisElement{Name: name})
		flatToLocal[i] = basisKey[G]{grades[i], localID}
	}

	coalg := &Coalgebra[G, E]{
		Grading:   g,
		Ring:      r,
		basis:     basis,
		coaction:  make(map[basisKey[G]][]CoactionTerm[G, E]),
		flatIndex: flatToLocal,
	}
	for i, terms := range coactionTable {
		if len(terms) == 0 {
			continue
		}
		key := flatToLocal[i]
		resolved := make([]CoactionTerm[G, E], len(terms))
		for j, term := range terms {
			if term.LeftIdx < 0 || term.LeftIdx >= len(flatToLocal) || term.RightIdx < 0 || term.RightIdx >= len(flatToLocal) {
				return nil, fmt.Errorf("comodule: BuildCoalgebra: basis index %d out of range in coaction of %q", i, names[i])
			}
			l, rr := flatToLocal[term.LeftIdx], flatToLocal[term.RightIdx]
			resolved[j] = CoactionTerm[G, E]{LGrade: l.Grade, LID: l.ID, RGrade: rr.Grade, RID: rr.ID, Value: term.Value}
		}
		coalg.coaction[key] = resolved
	}
	coalg.setPrimitives()
	return coalg, nil
}

// setPrimitives tags every basis element whose own coaction has
// exactly two non-zero summands (Δx = 1⊗x + x⊗1, the signature of a
// primitive element) with a sequential PrimitiveIndex, grade order
// first and local id order within a grade. Structure-line extraction
// (page.StructureLines) reads this index to label an edge "h_<i>"
// rather than the basis element's own name.
func (c *Coalgebra[G, E]) setPrimitives() {
	grades := c.basis.Grades()
	sort.SliceStable(grades, func(i, j int) bool { return c.Grading.Less(grades[i], grades[j]) })

	primitiveIndex := 0
	for _, grade := range grades {
		basis := c.basis.At(grade)
		for id := range basis {
			nonZero := 0
			for _, term := range c.coaction[basisKey[G]{grade, id}] {
				if !c.Ring.IsZero(term.Value) {
					nonZero++
				}
			}
			if nonZero == 2 {
				basis[id].PrimitiveIndex = primitiveIndex
				basis[id].HasPrimitive = true
				primitiveIndex++
			}
		}
	}
}

// Comodule is a graded vector space M with a coaction M -> A⊗M. The
// coaction term list's left side indexes the owning Coalgebra, its
// right side indexes M itself.
type Comodule[G comparable, E any] struct {
	Grading  grading.Grading[G]
	Ring     ring.Ring[E]
	Coalg    *Coalgebra[G, E]
	basis    *grading.Layout[G, grading.BasisElement]
	coaction map[basisKey[G]][]CoactionTerm[G, E]
}

func (m *Comodule[G, E]) Grades() []G { return m.basis.Grades() }
func (m *Comodule[G, E]) Dim(g G) int { return m.basis.Len(g) }

func (m *Comodule[G, E]) BasisAt(g G, id int) grading.BasisElement {
	return m.basis.At(g)[id]
}

func (m *Comodule[G, E]) Coaction(g G, id int) []CoactionTerm[G, E] {
	return m.coaction[basisKey[G]{g, id}]
}

// NewComoduleFromTerms builds a Comodule directly from coaction terms
// that already carry resolved (grade, id) coordinates on both sides,
// rather than flat RawTerm indices — for callers that derive a new
// comodule's coaction from an existing one's (e.g. the resolution
// package's cokernel-quotient comodule, whose terms are pulled straight
// through an existing comodule's own Coaction).
func NewComoduleFromTerms[G comparable, E any](coalg *Coalgebra[G, E], names []string, grades []G, coaction [][]CoactionTerm[G, E]) (*Comodule[G, E], error) {
	if len(names) != len(grades) || len(names) != len(coaction) {
		return nil, fmt.Errorf("comodule: NewComoduleFromTerms: basis table length mismatch")
	}
	basis := grading.NewLayout[G, grading.BasisElement]()
	flatToLocal := make([]basisKey[G], len(names))
	for i, name := range names {
		localID := basis.Len(grades[i])
		basis.Append(grades[i], grading.BasisElement{Name: name})
		flatToLocal[i] = basisKey[G]{grades[i], localID}
	}

	mod := &Comodule[G, E]{
		Grading:  coalg.Grading,
		Ring:     coalg.Ring,
		Coalg:    coalg,
		basis:    basis,
		coaction: make(map[basisKey[G]][]CoactionTerm[G, E]),
	}
	for i, terms := range coaction {
		if len(terms) == 0 {
			continue
		}
		mod.coaction[flatToLocal[i]] = terms
	}
	return mod, nil
}

// BuildComodule is the core (numeric-index) comodule construction
// entry point: coactionTable[i]'s terms reference coalg's flat basis
// indices on the left and this comodule's own flat basis indices
// (0..len(names)-1) on the right.
func BuildComodule[G comparable, E any](coalg *Coalgebra[G, E], names []string, grades []G, coactionTable [][]RawTerm[E]) (*Comodule[G, E], error) {
	if len(names) != len(grades) || len(names) != len(coactionTable) {
		return nil, fmt.Errorf("comodule: BuildComodule: basis table length mismatch")
	}
	basis := grading.NewLayout[G, grading.BasisElement]()
	flatToLocal := make([]basisKey[G], len(names))
	for i, name := range names {
		localID := basis.Len(grades[i])
		basis.Append(grades[i], grading.BasisElement{Name: name})
		flatToLocal[i] = basisKey[G]{grades[i], localID}
	}

	coalgFlat := coalg.flatIndex

	mod := &Comodule[G, E]{
		Grading:  coalg.Grading,
		Ring:     coalg.Ring,
		Coalg:    coalg,
		basis:    basis,
		coaction: make(map[basisKey[G]][]CoactionTerm[G, E]),
	}
	for i, terms := range coactionTable {
		if len(terms) == 0 {
			continue
		}
		key := flatToLocal[i]
		resolved := make([]CoactionTerm[G, E], len(terms))
		for j, term := range terms {
			if term.LeftIdx < 0 || term.LeftIdx >= len(coalgFlat) {
				return nil, fmt.Errorf("comodule: BuildComodule: coalgebra index %d out of range", term.LeftIdx)
			}
			if term.RightIdx < 0 || term.RightIdx >= len(flatToLocal) {
				return nil, fmt.Errorf("comodule: BuildComodule: comodule index %d out of range", term.RightIdx)
			}
			l, rr := coalgFlat[term.LeftIdx], flatToLocal[term.RightIdx]
			resolved[j] = CoactionTerm[G, E]{LGrade: l.Grade, LID: l.ID, RGrade: rr.Grade, RID: rr.ID, Value: term.Value}
		}
		mod.coaction[key] = resolved
	}
	return mod, nil
}

