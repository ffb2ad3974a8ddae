// Package page extracts the bigraded generators and multiplicative
// structure lines of a filled resolution into a page-chart-ready Page
// shape. It never serializes JSON itself — only the struct and its
// tags are this package's job; turning it into a JSON document is left
// to the caller.
package page

import (
	"strconv"

	"github.com/vossetje/comodules/comodule"
	"github.com/vossetje/comodules/grading"
	"github.com/vossetje/comodules/resolution"
)

// Generator is one basis element of the free resolution, ready for
// page-chart placement: (X, Y) follow the grading's Formulas()
// convention (internal grade minus homological degree, homological
// degree plus any secondary internal coordinate).
type Generator[G comparable] struct {
	S     int    `json:"s"`
	Grade G      `json:"grade"`
	Index int    `json:"index"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Name  string `json:"name"`
}

// StructureLine connects a source generator at homological degree
// FromS to a target generator at ToS = FromS+1, labelled "h_<i>" where
// i is the PrimitiveIndex of the coalgebra element whose multiplication
// produced the target from the source.
type StructureLine[G comparable] struct {
	FromS, ToS         int
	FromGrade, ToGrade G
	FromIndex, ToIndex int
	Label              string
}

// Differential is left empty by this engine: computing differentials
// between pages is a later stage of spectral-sequence processing, not
// this engine's job, but the field is carried so Page's shape is
// complete for a caller that fills it in later.
type Differential[G comparable] struct {
	FromIndex, ToIndex int
	Label              string
}

// Page is the export struct: `{name, id, degrees, x_formula, y_formula,
// generators, structure_lines, differentials}`.
type Page[G comparable] struct {
	Name           string             `json:"name"`
	ID             string             `json:"id"`
	Degrees        []string           `json:"degrees"`
	XFormula       string             `json:"x_formula"`
	YFormula       string             `json:"y_formula"`
	Generators     []Generator[G]     `json:"generators"`
	StructureLines []StructureLine[G] `json:"structure_lines"`
	Differentials  []Differential[G]  `json:"differentials"`
}

// New assembles a Page from a filled Resolution: name and id are the
// caller's own labels for the page (the engine has no opinion on
// them), g is the coalgebra's grading (for Names/Formulas), and
// backend reads the per-grade repr matrices StructureLines needs.
func New[G comparable, E any, M any](name, id string, g grading.Grading[G], backend comodule.Backend[M, E], res *resolution.Resolution[G, E, M]) (*Page[G], error) {
	lines, err := StructureLines(backend, g, res)
	if err != nil {
		return nil, err
	}
	xFormula, yFormula := g.Formulas()
	return &Page[G]{
		Name:           name,
		ID:             id,
		Degrees:        g.Names(),
		XFormula:       xFormula,
		YFormula:       yFormula,
		Generators:     Generators(res, g),
		StructureLines: lines,
		Differentials:  nil,
	}, nil
}

// Generators walks every row's births (the new cofree generators the
// injection step added at that homological degree) in grade order,
// emitting one Generator per birth.
func Generators[G comparable, E any, M any](res *resolution.Resolution[G, E, M], g grading.Grading[G]) []Generator[G] {
	var out []Generator[G]
	for _, row := range res.Rows {
		_, localID := groupByGrade(g, row.Births)
		for i, b := range row.Births {
			t, secondary := g.ExportCoords(b.Grade)
			name := ""
			if tag, ok := row.Cofree.MarkerAt(b.Grade, b.ID); ok {
				name = tag.Name
			}
			out = append(out, Generator[G]{
				S:     row.S,
				Grade: b.Grade,
				Index: localID[i],
				X:     t - row.S,
				Y:     row.S + secondary,
				Name:  name,
			})
		}
	}
	return out
}

// StructureLines walks every row s>=1's births back through the
// previous row's cokernel section (repr) to the cofree generator of
// row s-1 whose merged summand produced the nonzero entry. An edge is
// only emitted when the coalgebra element multiplying the two
// generators together is primitive (HasPrimitive), labelled "h_<i>"
// by its PrimitiveIndex rather than its own name — mirroring how a
// non-primitive multiplier never produces a structure line.
func StructureLines[G comparable, E any, M any](backend comodule.Backend[M, E], g grading.Grading[G], res *resolution.Resolution[G, E, M]) ([]StructureLine[G], error) {
	if len(res.Rows) == 0 {
		return nil, nil
	}

	localIDs := make([]map[int]int, len(res.Rows))
	for s, row := range res.Rows {
		_, localID := groupByGrade(g, row.Births)
		localIDs[s] = localID
	}

	var out []StructureLine[G]
	for s := 1; s < len(res.Rows); s++ {
		row := res.Rows[s]
		prev := res.Rows[s-1]
		ring := prev.Cofree.Coalg.Ring

		for bi, b := range row.Births {
			reprCell, ok := prev.Section.At(b.Grade)
			if !ok {
				continue
			}
			for k := 0; k < backend.Codomain(reprCell); k++ {
				coeff, err := backend.GetEntry(reprCell, k, b.SourceID)
				if err != nil {
					return nil, err
				}
				if ring.IsZero(coeff) {
					continue
				}
				orbitIdx, ok := prev.Cofree.OrbitAt(b.Grade, k)
				if !ok {
					continue
				}
				parent := prev.Births[orbitIdx]
				multiplier := prev.Cofree.UnderlyingCoalgebraElement(b.Grade, k)
				if !multiplier.HasPrimitive {
					continue
				}
				label := "h_" + strconv.Itoa(multiplier.PrimitiveIndex)
				out = append(out, StructureLine[G]{
					FromS:     prev.S,
					FromGrade: parent.Grade,
					FromIndex: localIDs[s-1][orbitIdx],
					ToS:       row.S,
					ToGrade:   b.Grade,
					ToIndex:   localIDs[s][bi],
					Label:     label,
				})
			}
		}
	}
	return out, nil
}

// groupByGrade assigns each birth a 0-based local index among the
// births sharing its grade, in the order births were created, and
// returns the set of grades touched in ascending order.
func groupByGrade[G comparable](g grading.Grading[G], births []comodule.GeneratorBirth[G]) ([]G, map[int]int) {
	localID := make(map[int]int, len(births))
	counts := make(map[G]int)
	seen := make(map[G]bool)
	var order []G
	for i, b := range births {
		localID[i] = counts[b.Grade]
		counts[b.Grade]++
		if !seen[b.Grade] {
			seen[b.Grade] = true
			order = append(order, b.Grade)
		}
	}
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && g.Less(order[j], order[j-1]); j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}
	return order, localID
}
