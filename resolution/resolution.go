// Package resolution computes a free resolution of a comodule over a
// graded coalgebra by repeatedly injecting into a cofree envelope and
// taking the cokernel of the result: row 0 injects the comodule itself
// into its cofree envelope; row s (s>0) injects the cokernel of row
// s−1's injection. By default each row's cokernel is computed
// sequentially; with Option.Workers > 0 it is computed per grade on at
// most that many goroutines, synchronized by a sync.WaitGroup.
package resolution

import (
	"fmt"
	"sync"

	"github.com/vossetje/comodules/abelian"
	"github.com/vossetje/comodules/comodule"
	"github.com/vossetje/comodules/grading"
	"github.com/vossetje/comodules/graded"
)

// Row is one homological degree of the resolution: the cofree envelope
// F_s, the injection ι_s: Q_{s−1} -> F_s that produced it (Q_{−1} being
// the original comodule), and the cokernel quotient/section pair used
// to seed row s+1.
type Row[G comparable, E any, M any] struct {
	S          int
	Cofree     *comodule.Cofree[G, E]
	Injection  *graded.Map[G, M]
	Births     []comodule.GeneratorBirth[G]
	Quotient   *graded.Map[G, M]
	Section    *graded.Map[G, M]
	Generators *grading.Layout[G, abelian.Generator]
}

// Resolution is the full grid of rows 0..sMax.
type Resolution[G comparable, E any, M any] struct {
	Rows []*Row[G, E, M]
}

// Option configures Resolve; Workers > 0 bounds how many grades are
// processed concurrently per row, and 0 or less (the default) computes
// each row's cokernel sequentially.
type Option struct {
	Workers int
}

// Resolve builds rows 0..sMax of mod's free resolution, restricting
// every cofree envelope to grades <= limit.
func Resolve[G comparable, E any, M any](backend comodule.Backend[M, E], coalg *comodule.Coalgebra[G, E], mod *comodule.Comodule[G, E], sMax int, limit G, opts ...Option) (*Resolution[G, E, M], error) {
	workers := 0
	if len(opts) > 0 {
		workers = opts[0].Workers
	}

	res := &Resolution[G, E, M]{Rows: make([]*Row[G, E, M], 0, sMax+1)}
	current := mod
	for s := 0; s <= sMax; s++ {
		row, next, err := buildRow[G, E, M](backend, coalg, current, s, limit, workers)
		if err != nil {
			return nil, fmt.Errorf("resolution: row %d: %w", s, err)
		}
		res.Rows = append(res.Rows, row)
		current = next
	}
	return res, nil
}

// buildRow computes row s's injection and cokernel, and the quotient
// comodule that seeds row s+1.
func buildRow[G comparable, E any, M any](backend comodule.Backend[M, E], coalg *comodule.Coalgebra[G, E], mod *comodule.Comodule[G, E], s int, limit G, workers int) (*Row[G, E, M], *comodule.Comodule[G, E], error) {
	injection, err := comodule.InjectCodomainToCofree[G, E, M](backend, coalg, mod, limit)
	if err != nil {
		return nil, nil, fmt.Errorf("injecting into cofree envelope: %w", err)
	}

	cofreeMod := injection.Cofree.Module()
	codomainGens := generatorLayout(cofreeMod)

	if err := fillZeroDomainCells(backend, injection.Iota, cofreeMod); err != nil {
		return nil, nil, fmt.Errorf("padding injection for cokernel: %w", err)
	}

	to, repr, gens, err := cokernelConcurrently[G, M](backend, injection.Iota, codomainGens, workers)
	if err != nil {
		return nil, nil, fmt.Errorf("computing cokernel: %w", err)
	}

	quotientMod, err := quotientComodule(backend, cofreeMod, to, repr, gens)
	if err != nil {
		return nil, nil, fmt.Errorf("building quotient comodule: %w", err)
	}

	row := &Row[G, E, M]{
		S:          s,
		Cofree:     injection.Cofree,
		Injection:  injection.Iota,
		Births:     injection.Births,
		Quotient:   to,
		Section:    repr,
		Generators: gens,
	}
	return row, quotientMod, nil
}

// fillZeroDomainCells materializes a 0-column zero matrix in iota at
// every grade where cofreeMod has positive dimension but iota has no
// cell, i.e. every grade mod's domain never reaches. graded.Map.Grades
// (and so GetCokernel) only sees grades with a materialized cell, so
// without this a grade where the injection's domain is empty would
// never contribute its full codomain as free cokernel generators.
func fillZeroDomainCells[G comparable, E any, M any](backend comodule.Backend[M, E], iota *graded.Map[G, M], cofreeMod *comodule.Comodule[G, E]) error {
	for _, grade := range cofreeMod.Grades() {
		if _, ok := iota.At(grade); ok {
			continue
		}
		dim := cofreeMod.Dim(grade)
		if dim == 0 {
			continue
		}
		zero, err := backend.Zero(dim, 0)
		if err != nil {
			return err
		}
		iota.Set(grade, zero)
	}
	return nil
}

// generatorLayout reads off each basis element's free/torsion status
// from the Comodule's BasisElement tags (Torsion 0 means free).
func generatorLayout[G comparable, E any](mod *comodule.Comodule[G, E]) *grading.Layout[G, abelian.Generator] {
	out := grading.NewLayout[G, abelian.Generator]()
	for _, g := range mod.Grades() {
		dim := mod.Dim(g)
		gens := make([]abelian.Generator, dim)
		for id := 0; id < dim; id++ {
			be := mod.BasisAt(g, id)
			gens[id] = abelian.Generator{Free: be.Torsion == 0, Torsion: be.Torsion}
		}
		out.Set(g, gens)
	}
	return out
}

// cokernelConcurrently computes m's per-grade cokernel. With workers <= 0
// it calls m.GetCokernel sequentially; otherwise it dispatches one
// goroutine per grade, at most workers at a time, synchronized by a
// sync.WaitGroup.
func cokernelConcurrently[G comparable, M any](backend abelian.MatrixOps[M], m *graded.Map[G, M], codomainGens *grading.Layout[G, abelian.Generator], workers int) (*graded.Map[G, M], *graded.Map[G, M], *grading.Layout[G, abelian.Generator], error) {
	if workers <= 0 {
		to, repr, gens, err := m.GetCokernel(codomainGens)
		return to, repr, gens, err
	}

	grades := m.Grades()
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	to := graded.NewMap[G, M](backend)
	repr := graded.NewMap[G, M](backend)
	gens := grading.NewLayout[G, abelian.Generator]()

	for _, g := range grades {
		cell, ok := m.At(g)
		if !ok {
			continue
		}
		g, cell := g, cell
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			toCell, reprCell, cellGens, err := backend.Cokernel(cell, codomainGens.At(g))
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("grade %v: %w", g, err)
				}
				return
			}
			to.Set(g, toCell)
			repr.Set(g, reprCell)
			gens.Set(g, cellGens)
		}()
	}
	wg.Wait()
	if firstErr != nil {
		return nil, nil, nil, firstErr
	}
	return to, repr, gens, nil
}

// quotientComodule builds Q = coker(ι) as a comodule, named q0, q1, ...
// grade-sequentially (matching how generatorLayout enumerated them).
// Q's coaction is Δ_Q(q) = (id_A⊗to)(Δ_F(repr(q))): lift q to F via
// repr's column, apply F's own coaction, and push the right factor of
// each resulting term through `to`'s matching column.
func quotientComodule[G comparable, E any, M any](backend comodule.Backend[M, E], cofreeMod *comodule.Comodule[G, E], to, repr *graded.Map[G, M], gens *grading.Layout[G, abelian.Generator]) (*comodule.Comodule[G, E], error) {
	coalg := cofreeMod.Coalg
	ring := cofreeMod.Ring

	grades := make([]G, 0)
	seen := make(map[G]bool)
	for _, grade := range cofreeMod.Grades() {
		if !seen[grade] {
			seen[grade] = true
			grades = append(grades, grade)
		}
	}

	names := make([]string, 0)
	gradeList := make([]G, 0)
	flatOf := make(map[G][]int)
	for _, grade := range grades {
		genCount := len(gens.At(grade))
		for id := 0; id < genCount; id++ {
			names = append(names, fmt.Sprintf("q%d", len(names)))
			gradeList = append(gradeList, grade)
			flatOf[grade] = append(flatOf[grade], id)
		}
	}

	coactionTable := make([][]comodule.CoactionTerm[G, E], len(names))
	for _, grade := range grades {
		reprCell, ok := repr.At(grade)
		if !ok {
			continue
		}
		genCount := len(gens.At(grade))
		for qID := 0; qID < genCount; qID++ {
			flatIdx := flatOf[grade][qID]
			var terms []comodule.CoactionTerm[G, E]
			for k := 0; k < backend.Codomain(reprCell); k++ {
				coeff, err := backend.GetEntry(reprCell, k, qID)
				if err != nil {
					return nil, err
				}
				if ring.IsZero(coeff) {
					continue
				}
				for _, term := range cofreeMod.Coaction(grade, k) {
					toCell, ok := to.At(term.RGrade)
					if !ok {
						continue
					}
					rows := len(gens.At(term.RGrade))
					for q2 := 0; q2 < rows; q2++ {
						w, err := backend.GetEntry(toCell, q2, term.RID)
						if err != nil {
							return nil, err
						}
						if ring.IsZero(w) {
							continue
						}
						value := ring.Mul(ring.Mul(coeff, term.Value), w)
						if ring.IsZero(value) {
							continue
						}
						terms = append(terms, comodule.CoactionTerm[G, E]{
							LGrade: term.LGrade,
							LID:    term.LID,
							RGrade: term.RGrade,
							RID:    q2,
							Value:  value,
						})
					}
				}
			}
			coactionTable[flatIdx] = terms
		}
	}

	return comodule.NewComoduleFromTerms[G, E](coalg, names, gradeList, coactionTable)
}
