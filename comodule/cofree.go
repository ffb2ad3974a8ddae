package comodule

import (
	"fmt"

	"github.com/vossetje/comodules/grading"
	"github.com/vossetje/comodules/graded"
)

// singleGen is a graded.GradeDims[G] with exactly one generator, sitting
// at the grading's zero — the "k{v}" half of a cofree comodule C⊗k{v}
// before AddAndRestrict moves it to its actual shift.
type singleGen[G comparable] struct{ zero G }

func (s singleGen[G]) Grades() []G { return []G{s.zero} }
func (s singleGen[G]) Dim(g G) int {
	if g == s.zero {
		return 1
	}
	return 0
}

// Cofree is a cofree comodule C⊗k{S} built up one generator at a time by
// repeated merges. Its basis is addressed through Tensor the same way
// graded.Tensor addresses any tensor product; markers
// records, for the handful of (grade, id) slots that are themselves a
// bare "1⊗v" generator, the tag the caller supplied when that generator
// was added — everything else derives its label from the coalgebra
// element multiplying the generator.
type Cofree[G comparable, E any] struct {
	Coalg   *Coalgebra[G, E]
	Tensor  *graded.Tensor[G]
	markers map[G]map[int]grading.BasisElement
	// orbits records, in the order addGenerator merged them, each
	// generator's full grade->RID offsets map, so page.StructureLines
	// can trace a basis element at any (grade, id) back to the single
	// generator whose summand placed it there (orbits[i].offsets[grade]
	// uniquely identifies orbit i among every generator reaching that
	// grade, since DirectSum assigns each summand a disjoint RID range).
	orbits []map[G]int
}

// newEmptyCofree allocates a Cofree with no generators yet.
func newEmptyCofree[G comparable, E any](coalg *Coalgebra[G, E]) *Cofree[G, E] {
	return &Cofree[G, E]{
		Coalg:   coalg,
		Tensor:  graded.NewTensor[G](coalg.Grading),
		markers: make(map[G]map[int]grading.BasisElement),
	}
}

// BuildCofree constructs the single-generator cofree comodule
// C⊗k{v} = cofree_comodule(shift, limit, generator_tag): v sits at
// grade shift, the tensor is restricted to grades <= limit, and the
// caller's tag labels that one generator.
func BuildCofree[G comparable, E any](coalg *Coalgebra[G, E], shift, limit G, generatorTag grading.BasisElement) *Cofree[G, E] {
	f := newEmptyCofree[G, E](coalg)
	f.addGenerator(shift, limit, generatorTag)
	return f
}

// addGenerator merges in one new cofree summand C⊗k{v} (v placed at
// grade shift, truncated above limit), tagging the degree-0 "1⊗v" slot
// with tag. It returns, for every total grade the summand reaches, the
// RID offset DirectSum assigned it — the caller needs this to place a
// coalgebra element "a" paired with the new generator at its correct
// merged slot (LGrade a_grade, RGrade shift, RID offset[a_grade+shift]).
func (f *Cofree[G, E]) addGenerator(shift, limit G, tag grading.BasisElement) map[G]int {
	g := f.Coalg.Grading
	summand := graded.NewTensor[G](g)
	summand.Generate(f.Coalg, singleGen[G]{g.Zero()}, nil)
	summand = summand.AddAndRestrict(shift, limit)

	selfDims := make(map[G]int)
	for _, grade := range f.Tensor.Grades() {
		selfDims[grade] = f.Tensor.Dimension(grade)
	}
	offsets := f.Tensor.DirectSum(summand, selfDims)

	markerID := offsets[shift]
	if f.markers[shift] == nil {
		f.markers[shift] = make(map[int]grading.BasisElement)
	}
	f.markers[shift][markerID] = tag
	f.orbits = append(f.orbits, offsets)
	return offsets
}

// MarkerAt returns the generator tag supplied to addGenerator if
// (grade, id) is itself a bare "1⊗v" generator slot, or false
// otherwise.
func (f *Cofree[G, E]) MarkerAt(grade G, id int) (grading.BasisElement, bool) {
	tag, ok := f.markers[grade][id]
	return tag, ok
}

// OrbitAt returns the index (in merge order) of the generator whose
// summand placed the basis element at (grade, id), or false if the
// slot does not exist.
func (f *Cofree[G, E]) OrbitAt(grade G, id int) (int, bool) {
	elem := f.Tensor.At(grade, id)
	for i, offsets := range f.orbits {
		if rid, ok := offsets[grade]; ok && rid == elem.RID {
			return i, true
		}
	}
	return 0, false
}

// UnderlyingCoalgebraElement returns the coalgebra basis element "a"
// multiplying the generator at (grade, id): the "a" in the a⊗v slot.
func (f *Cofree[G, E]) UnderlyingCoalgebraElement(grade G, id int) grading.BasisElement {
	elem := f.Tensor.At(grade, id)
	return f.Coalg.BasisAt(elem.LGrade, elem.LID)
}

// Dim satisfies graded.GradeDims, so a Cofree can itself be the left or
// right factor of a further tensor construction if ever needed.
func (f *Cofree[G, E]) Dim(g G) int   { return f.Tensor.Dimension(g) }
func (f *Cofree[G, E]) Grades() []G   { return f.Tensor.Grades() }

// Module materializes the Cofree's basis and coaction as a Comodule,
// deriving Δ_F = (Δ_A⊗id) from the coalgebra's own coaction pulled
// through the tensor bookkeeping.
func (f *Cofree[G, E]) Module() *Comodule[G, E] {
	coalg := f.Coalg
	g := coalg.Grading
	basis := grading.NewLayout[G, grading.BasisElement]()
	coaction := make(map[basisKey[G]][]CoactionTerm[G, E])

	grades := sortGrades(g, f.Tensor.Grades())
	for _, grade := range grades {
		dim := f.Tensor.Dimension(grade)
		slots := make([]grading.BasisElement, dim)
		for id := 0; id < dim; id++ {
			elem := f.Tensor.At(grade, id)
			if marker, ok := f.markers[grade][id]; ok {
				slots[id] = marker
				continue
			}
			underlying := coalg.BasisAt(elem.LGrade, elem.LID)
			slots[id] = grading.BasisElement{Name: fmt.Sprintf("%s⊗g%d", underlying.Name, elem.RID)}
		}
		basis.Set(grade, slots)

		for id := 0; id < dim; id++ {
			elem := f.Tensor.At(grade, id)
			terms := coalg.Coaction(elem.LGrade, elem.LID)
			if len(terms) == 0 {
				continue
			}
			resolved := make([]CoactionTerm[G, E], 0, len(terms))
			for _, term := range terms {
				// a = a1·a2 (graded): a2's slot sits at LGrade =
				// elem.LGrade - deg(a1) = deg(a2), paired with the same
				// right factor (RGrade, RID) as elem.
				target := graded.Elem[G]{
					LGrade: g.Sub(elem.LGrade, term.LGrade),
					LID:    term.RID,
					RGrade: elem.RGrade,
					RID:    elem.RID,
				}
				rid, ok := f.Tensor.Lookup(target)
				if !ok {
					// a2⊗v fell outside the shift/limit window this
					// summand was restricted to; the term is dropped.
					continue
				}
				targetGrade := g.Add(target.LGrade, target.RGrade)
				resolved = append(resolved, CoactionTerm[G, E]{
					LGrade: term.LGrade,
					LID:    term.LID,
					RGrade: targetGrade,
					RID:    rid,
					Value:  term.Value,
				})
			}
			if len(resolved) > 0 {
				coaction[basisKey[G]{grade, id}] = resolved
			}
		}
	}

	return &Comodule[G, E]{
		Grading:  coalg.Grading,
		Ring:     coalg.Ring,
		Coalg:    coalg,
		basis:    basis,
		coaction: coaction,
	}
}

// sortGrades orders grades ascending by g.Less, the deterministic walk
// the resolution scheduler and this package both rely on.
func sortGrades[G comparable](g grading.Grading[G], grades []G) []G {
	out := append([]G(nil), grades...)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && g.Less(out[j], out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
