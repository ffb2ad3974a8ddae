package comodule

import (
	"fmt"

	"github.com/vossetje/comodules/grading"
	"github.com/vossetje/comodules/graded"
)

// Injection is the result of InjectCodomainToCofree: a cofree comodule F
// built up one generator at a time, together with the comodule map
// ι: M -> F that is injective up to the caller's degree limit.
type Injection[G comparable, E any, M any] struct {
	Cofree *Cofree[G, E]
	Iota   *graded.Map[G, M]
	Births []GeneratorBirth[G]
}

// GeneratorBirth records one new cofree generator seeded by
// InjectCodomainToCofree: its own (Grade, ID) slot in the grown Cofree,
// and the domain basis index (at that same Grade, since a pivot always
// fixes a generator's grade to its own) in mod whose kernel destroyer
// forced its creation. page.StructureLines walks these to trace edges
// between consecutive resolution rows.
type GeneratorBirth[G comparable] struct {
	Grade    G
	ID       int
	SourceID int
}

// InjectCodomainToCofree grows a cofree comodule F and a map ι: mod -> F
// one generator at a time,
// picking the next generator from the lowest grade at which ι is not
// yet injective (abelian.MatrixOps.Kernel/KernelDestroyers locate that
// grade and that direction), until ι has no kernel at any grade up to
// limit.
//
// The map ι is derived from mod's own coaction and a plain linear
// functional f that sends one basis element of mod to the new
// generator and every other already-assigned basis element to zero:
// ι(m) = (id_A⊗f)(Δ_mod(m)). This is the cofree adjunction
// Hom_comod(M, A⊗V) ≅ Hom_k(M, V): once f is fixed at the chosen
// degree, ι at every higher degree is forced, so nothing beyond the
// KernelDestroyers pivot needs to be guessed.
func InjectCodomainToCofree[G comparable, E any, M any](backend Backend[M, E], coalg *Coalgebra[G, E], mod *Comodule[G, E], limit G) (*Injection[G, E, M], error) {
	g := coalg.Grading
	grades := sortGrades(g, mod.Grades())

	cofree := newEmptyCofree[G, E](coalg)
	iota := graded.ZeroCodomain[G, M](backend, domainDims(mod, grades))
	var births []GeneratorBirth[G]

	for {
		target, destroyers, found, err := findPivotGrade(backend, mod, cofree, iota, grades)
		if err != nil {
			return nil, err
		}
		if !found {
			break
		}
		grown, err := growCofree(backend, coalg, mod, cofree, iota, target, destroyers, limit)
		if err != nil {
			return nil, err
		}
		births = append(births, grown...)
	}

	return &Injection[G, E, M]{Cofree: cofree, Iota: iota, Births: births}, nil
}

func domainDims[G comparable, E any](mod *Comodule[G, E], grades []G) map[G]int {
	dims := make(map[G]int, len(grades))
	for _, grade := range grades {
		dims[grade] = mod.Dim(grade)
	}
	return dims
}

// findPivotGrade returns the lowest grade at which ι restricted to
// mod(g) is not yet injective, the set of domain indices KernelDestroyers
// picked out to fix it, and whether such a grade was found.
func findPivotGrade[G comparable, E any, M any](backend Backend[M, E], mod *Comodule[G, E], cofree *Cofree[G, E], iota *graded.Map[G, M], grades []G) (G, []int, bool, error) {
	var zero G
	for _, grade := range grades {
		domain := mod.Dim(grade)
		if domain == 0 {
			continue
		}
		cell, ok := iota.At(grade)
		if !ok {
			z, err := backend.Zero(cofree.Dim(grade), domain)
			if err != nil {
				return zero, nil, false, err
			}
			cell = z
		}
		kernel, _, err := backend.Kernel(cell)
		if err != nil {
			return zero, nil, false, err
		}
		if backend.Domain(kernel) == 0 {
			continue
		}
		destroyers, err := backend.KernelDestroyers(cell)
		if err != nil {
			return zero, nil, false, err
		}
		if len(destroyers) == 0 {
			continue
		}
		return grade, destroyers, true, nil
	}
	return zero, nil, false, nil
}

// growCofree adds one new cofree generator per destroyer pivot at
// grade, updating cofree and extending iota's rows accordingly. It
// returns one GeneratorBirth per generator added.
func growCofree[G comparable, E any, M any](backend Backend[M, E], coalg *Coalgebra[G, E], mod *Comodule[G, E], cofree *Cofree[G, E], iota *graded.Map[G, M], grade G, destroyers []int, limit G) ([]GeneratorBirth[G], error) {
	g := coalg.Grading
	births := make([]GeneratorBirth[G], 0, len(destroyers))

	for genIdx, pivotCol := range destroyers {
		tag := grading.BasisElement{IsGenerator: true, GeneratedIndex: genIdx, Name: fmt.Sprintf("v%d", genIdx)}
		offsets := cofree.addGenerator(grade, limit, tag)
		births = append(births, GeneratorBirth[G]{Grade: grade, ID: offsets[grade], SourceID: pivotCol})

		// Accumulate, for every grade the new generator reaches, the new
		// row's entries: ι_new(m) picks up term.Value wherever mod's
		// coaction sends m's basis element to (grade, pivotCol) on the
		// right. The new generator's slot for coalgebra element "a" sits
		// at total grade a_grade+shift, RID offsets[a_grade+shift] — a
		// grade missing from offsets means it fell outside the cofree
		// summand's shift/limit window and the term is dropped.
		type cellUpdate struct {
			row, col int
			value    E
		}
		updates := make(map[G][]cellUpdate)

		for _, g2 := range mod.Grades() {
			dim := mod.Dim(g2)
			for j := 0; j < dim; j++ {
				for _, term := range mod.Coaction(g2, j) {
					if term.RGrade != grade || term.RID != pivotCol {
						continue
					}
					totalGrade := g.Add(term.LGrade, grade)
					rid, ok := offsets[totalGrade]
					if !ok {
						continue
					}
					updates[g2] = append(updates[g2], cellUpdate{row: rid, col: j, value: term.Value})
				}
			}
		}

		for targetGrade, cellUpdates := range updates {
			newCodomain := cofree.Dim(targetGrade)
			domain := mod.Dim(targetGrade)
			cell, ok := iota.At(targetGrade)
			if !ok {
				z, err := backend.Zero(newCodomain, domain)
				if err != nil {
					return nil, err
				}
				cell = z
			} else if backend.Codomain(cell) != newCodomain {
				extended, err := backend.Zero(newCodomain, domain)
				if err != nil {
					return nil, err
				}
				for r := 0; r < backend.Codomain(cell); r++ {
					for c := 0; c < domain; c++ {
						v, err := backend.GetEntry(cell, r, c)
						if err != nil {
							return nil, err
						}
						if err := backend.SetEntry(extended, r, c, v); err != nil {
							return nil, err
						}
					}
				}
				cell = extended
			}
			for _, u := range cellUpdates {
				existing, err := backend.GetEntry(cell, u.row, u.col)
				if err != nil {
					return nil, err
				}
				sum := coalg.Ring.Add(existing, u.value)
				if err := backend.SetEntry(cell, u.row, u.col, sum); err != nil {
					return nil, err
				}
			}
			iota.Set(targetGrade, cell)
		}

		// Grades the new generator reaches but no mod coaction term
		// targets still need their codomain dimension bumped, so later
		// Kernel/Compose calls see consistent shapes.
		for _, targetGrade := range cofree.Grades() {
			newCodomain := cofree.Dim(targetGrade)
			domain := mod.Dim(targetGrade)
			if domain == 0 {
				continue
			}
			cell, ok := iota.At(targetGrade)
			if ok && backend.Codomain(cell) == newCodomain {
				continue
			}
			var base M
			if ok {
				base = cell
			} else {
				z, err := backend.Zero(0, domain)
				if err != nil {
					return nil, err
				}
				base = z
			}
			extended, err := backend.Zero(newCodomain, domain)
			if err != nil {
				return nil, err
			}
			for r := 0; r < backend.Codomain(base); r++ {
				for c := 0; c < domain; c++ {
					v, err := backend.GetEntry(base, r, c)
					if err != nil {
						return nil, err
					}
					if err := backend.SetEntry(extended, r, c, v); err != nil {
						return nil, err
					}
				}
			}
			iota.Set(targetGrade, extended)
		}
	}

	return births, nil
}
