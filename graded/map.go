package graded

import (
	"fmt"

	"github.com/vossetje/comodules/abelian"
	"github.com/vossetje/comodules/grading"
)

// Map is a graded linear map: a collection of per-grade matrices over
// the backend M (either *f2.Matrix or *matrix.Dense[ring.KtElem]), all
// sharing the same grade coordinate on domain and codomain since every
// differential and coaction in this engine preserves internal degree.
// Grades with dimension zero on either side are never materialized —
// an absent grade is exactly the zero map between two zero-dimensional
// spaces, and carries no matrix.
type Map[G comparable, M any] struct {
	ops          abelian.MatrixOps[M]
	cells        map[G]M
	domainDims   map[G]int
	codomainDims map[G]int
}

// NewMap allocates an empty graded map over the given backend.
func NewMap[G comparable, M any](ops abelian.MatrixOps[M]) *Map[G, M] {
	return &Map[G, M]{
		ops:          ops,
		cells:        make(map[G]M),
		domainDims:   make(map[G]int),
		codomainDims: make(map[G]int),
	}
}

// ZeroCodomain builds a map with codomain dimension 0 at every grade
// and the given domain dimensions, used to seed an injection before any
// cofree summand has been attached.
func ZeroCodomain[G comparable, M any](ops abelian.MatrixOps[M], domainDims map[G]int) *Map[G, M] {
	out := NewMap[G, M](ops)
	for g, d := range domainDims {
		out.domainDims[g] = d
		out.codomainDims[g] = 0
	}
	return out
}

// At returns the matrix at grade g and whether it is present.
func (m *Map[G, M]) At(g G) (M, bool) {
	v, ok := m.cells[g]
	return v, ok
}

// Set installs the matrix at grade g, updating the cached dimensions.
func (m *Map[G, M]) Set(g G, cell M) {
	m.cells[g] = cell
	m.codomainDims[g] = m.ops.Codomain(cell)
	m.domainDims[g] = m.ops.Domain(cell)
}

// DomainDim and CodomainDim return the cached per-grade dimensions,
// including grades with no materialized matrix (domain/codomain 0).
func (m *Map[G, M]) DomainDim(g G) int   { return m.domainDims[g] }
func (m *Map[G, M]) CodomainDim(g G) int { return m.codomainDims[g] }

// Grades returns every grade touched by m (materialized or not), in no
// particular order.
func (m *Map[G, M]) Grades() []G {
	seen := make(map[G]struct{})
	for g := range m.domainDims {
		seen[g] = struct{}{}
	}
	for g := range m.codomainDims {
		seen[g] = struct{}{}
	}
	out := make([]G, 0, len(seen))
	for g := range seen {
		out = append(out, g)
	}
	return out
}

// VStack unions m's and other's grades, stacking matrices at shared
// grades (codomain adds, domain must match) and taking whichever
// operand's matrix exists unmodified at grades present in only one.
// Returns a fresh Map rather than mutating other's storage in place.
func (m *Map[G, M]) VStack(other *Map[G, M]) (*Map[G, M], error) {
	out := NewMap[G, M](m.ops)
	grades := unionGrades(m, other)
	for _, g := range grades {
		a, aOK := m.cells[g]
		b, bOK := other.cells[g]
		switch {
		case aOK && bOK:
			stacked, err := m.ops.VStack(a, b)
			if err != nil {
				return nil, fmt.Errorf("graded.Map.VStack at grade %v: %w", g, err)
			}
			out.Set(g, stacked)
		case aOK:
			out.Set(g, a)
		case bOK:
			out.Set(g, b)
		default:
			out.domainDims[g] = maxInt(m.domainDims[g], other.domainDims[g])
			out.codomainDims[g] = m.codomainDims[g] + other.codomainDims[g]
		}
	}
	return out, nil
}

// BlockSum unions m's and other's grades, block-diagonally combining
// matrices at shared grades and passing through whichever operand is
// present alone at a grade.
func (m *Map[G, M]) BlockSum(other *Map[G, M]) *Map[G, M] {
	out := NewMap[G, M](m.ops)
	grades := unionGrades(m, other)
	for _, g := range grades {
		a, aOK := m.cells[g]
		b, bOK := other.cells[g]
		switch {
		case aOK && bOK:
			out.Set(g, m.ops.BlockSum(a, b))
		case aOK:
			out.Set(g, a)
		case bOK:
			out.Set(g, b)
		default:
			out.domainDims[g] = m.domainDims[g] + other.domainDims[g]
			out.codomainDims[g] = m.codomainDims[g] + other.codomainDims[g]
		}
	}
	return out
}

// Compose returns m∘rhs: rhs first, then m. Grades present in only one
// operand compose to an absent (zero-dimensional) entry in the result,
// since a differential through a zero-dimensional intermediate space is
// the zero map.
func (m *Map[G, M]) Compose(rhs *Map[G, M]) (*Map[G, M], error) {
	out := NewMap[G, M](m.ops)
	grades := unionGrades(m, rhs)
	for _, g := range grades {
		a, aOK := m.cells[g]
		b, bOK := rhs.cells[g]
		if aOK && bOK {
			composed, err := m.ops.Compose(a, b)
			if err != nil {
				return nil, fmt.Errorf("graded.Map.Compose at grade %v: %w", g, err)
			}
			out.Set(g, composed)
			continue
		}
		out.domainDims[g] = rhs.domainDims[g]
		out.codomainDims[g] = m.codomainDims[g]
	}
	return out, nil
}

// GetCokernel computes the per-grade cokernel of m, delegating to ops
// at every grade with a materialized matrix. It returns the quotient
// map (m's codomain -> cokernel), the section map (cokernel -> m's
// codomain), and the cokernel's generator metadata per grade.
func (m *Map[G, M]) GetCokernel(codomainGens *grading.Layout[G, abelian.Generator]) (*Map[G, M], *Map[G, M], *grading.Layout[G, abelian.Generator], error) {
	to := NewMap[G, M](m.ops)
	repr := NewMap[G, M](m.ops)
	gens := grading.NewLayout[G, abelian.Generator]()
	for g, cell := range m.cells {
		gensAtGrade := codomainGens.At(g)
		toCell, reprCell, cellGens, err := m.ops.Cokernel(cell, gensAtGrade)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("graded.Map.GetCokernel at grade %v: %w", g, err)
		}
		to.Set(g, toCell)
		repr.Set(g, reprCell)
		gens.Set(g, cellGens)
	}
	return to, repr, gens, nil
}

func unionGrades[G comparable, M any](a, b *Map[G, M]) []G {
	seen := make(map[G]struct{})
	for _, g := range a.Grades() {
		seen[g] = struct{}{}
	}
	for _, g := range b.Grades() {
		seen[g] = struct{}{}
	}
	out := make([]G, 0, len(seen))
	for g := range seen {
		out = append(out, g)
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
