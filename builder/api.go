package builder

import (
	"github.com/vossetje/comodules/comodule"
	"github.com/vossetje/comodules/graded"
	"github.com/vossetje/comodules/grading"
	"github.com/vossetje/comodules/ring"
)

// BasisEntry is one row of a basis table:
// "(name, grade, optional_internal_grade)". Line is the 1-based
// source line a fixture loader attaches for diagnostics; it is 0 for
// tables assembled directly in Go code.
type BasisEntry[G comparable] struct {
	Name      string
	Grade     G
	Excess    int
	HasExcess bool
	Line      int
}

// CoactionEntry is one triple of a coaction table:
// "(left_basis_index, right_basis_index, ring_value)", addressed by
// name rather than flat index — the builder layer's whole job is to
// resolve names to the indices comodule.BuildCoalgebra/BuildComodule
// expect. Value is a scalar token in the ring's Parse form ("c" or,
// for k[t], "c.t^v").
type CoactionEntry struct {
	Left  string
	Right string
	Value string
	Line  int
}

// nameTable is a resolved (name -> flat index, flat index -> grade)
// pair for one side of a coaction lookup.
type nameTable[G comparable] struct {
	byName map[string]int
	grades []G
}

func (t nameTable[G]) resolve(name string) (idx int, grade G, ok bool) {
	idx, ok = t.byName[name]
	if !ok {
		return 0, grade, false
	}
	return idx, t.grades[idx], true
}

// BuildCoalgebra is the construction entry point: basis lists the
// coalgebra's graded basis elements by name, and
// coaction maps each basis element's own name to its comultiplication
// terms (both Left and Right naming basis elements of the same
// table). Ring-value tokens are parsed via r.Parse; a term whose
// resolved left/right grades do not sum to the owner's grade is
// rejected with graded.ErrHomogeneity before it ever reaches the
// tensor bookkeeping.
func BuildCoalgebra[G comparable, E any](g grading.Grading[G], r ring.Ring[E], basis []BasisEntry[G], coaction map[string][]CoactionEntry, opts ...Option) (*comodule.Coalgebra[G, E], error) {
	cfg := newBuilderConfig(opts...)

	names, grades, byName, err := resolveBasisTable(cfg, basis)
	if err != nil {
		return nil, err
	}
	table := nameTable[G]{byName: byName, grades: grades}

	rawTable, err := resolveCoactionTable(g, r, names, table, table, coaction)
	if err != nil {
		return nil, err
	}

	return comodule.BuildCoalgebra(g, r, names, grades, rawTable)
}

// BuildComodule is the companion entry point: basis lists the
// comodule's own graded basis elements, and coaction's Left names
// index coalg's basis table while Right names index this comodule's
// own (the split build_comodule's coaction_table calls for).
func BuildComodule[G comparable, E any](coalg *comodule.Coalgebra[G, E], g grading.Grading[G], r ring.Ring[E], basis []BasisEntry[G], coaction map[string][]CoactionEntry, opts ...Option) (*comodule.Comodule[G, E], error) {
	cfg := newBuilderConfig(opts...)

	names, grades, byName, err := resolveBasisTable(cfg, basis)
	if err != nil {
		return nil, err
	}
	right := nameTable[G]{byName: byName, grades: grades}
	left := coalgebraNameTable(coalg)

	rawTable, err := resolveCoactionTable(g, r, names, left, right, coaction)
	if err != nil {
		return nil, err
	}

	return comodule.BuildComodule(coalg, names, grades, rawTable)
}

// resolveBasisTable flattens a BasisEntry table into the
// (names, grades) slices comodule.BuildCoalgebra/BuildComodule expect,
// plus a name -> flat index map honoring the strictness option.
func resolveBasisTable[G comparable](cfg *builderConfig, basis []BasisEntry[G]) (names []string, grades []G, byName map[string]int, err error) {
	names = make([]string, len(basis))
	grades = make([]G, len(basis))
	byName = make(map[string]int, len(basis))
	for i, entry := range basis {
		if entry.Name == "" {
			return nil, nil, nil, parseErrf(entry.Line, ErrMalformedSection, "basis entry %d has no name", i)
		}
		if _, dup := byName[entry.Name]; dup && cfg.strictDuplicateNames {
			return nil, nil, nil, parseErrf(entry.Line, ErrMalformedSection, "duplicate basis name %q", entry.Name)
		}
		names[i] = entry.Name
		grades[i] = entry.Grade
		byName[entry.Name] = i
	}
	return names, grades, byName, nil
}

// coalgebraNameTable rebuilds a name -> (flat index, grade) table for
// an already-built Coalgebra from its FlatAt accessor, so
// BuildComodule can resolve a coaction entry's Left field against the
// exact flat indexing BuildComodule's comodule.RawTerm.LeftIdx
// expects (the coalgebra's original basis-table order, which its
// (grade, local id) addressing alone does not recover).
func coalgebraNameTable[G comparable, E any](coalg *comodule.Coalgebra[G, E]) nameTable[G] {
	n := coalg.NumFlat()
	byName := make(map[string]int, n)
	grades := make([]G, n)
	for i := 0; i < n; i++ {
		name, grade := coalg.FlatAt(i)
		if name != "" {
			byName[name] = i
		}
		grades[i] = grade
	}
	return nameTable[G]{byName: byName, grades: grades}
}

// resolveCoactionTable turns a name-keyed coaction map into the flat
// []comodule.RawTerm[E] slice comodule.BuildCoalgebra/BuildComodule
// index by owner position, parsing scalar tokens and checking
// homogeneity and pair-uniqueness along the way. left resolves a
// term's Left name; right resolves both the owner name and the term's
// Right name (left == right for BuildCoalgebra, since both sides of a
// comultiplication term live in the same coalgebra).
func resolveCoactionTable[G comparable, E any](g grading.Grading[G], r ring.Ring[E], names []string, left, right nameTable[G], coaction map[string][]CoactionEntry) ([][]comodule.RawTerm[E], error) {
	table := make([][]comodule.RawTerm[E], len(names))
	for owner, terms := range coaction {
		ownerIdx, ownerGrade, ok := right.resolve(owner)
		if !ok {
			line := 0
			if len(terms) > 0 {
				line = terms[0].Line
			}
			return nil, parseErrf(line, ErrMalformedSection, "coaction table names unknown owner %q", owner)
		}

		seen := make(map[[2]int]bool, len(terms))
		resolved := make([]comodule.RawTerm[E], 0, len(terms))
		for _, term := range terms {
			lIdx, lGrade, ok := left.resolve(term.Left)
			if !ok {
				return nil, parseErrf(term.Line, ErrUnknownBasisName, "left basis %q", term.Left)
			}
			rIdx, rGrade, ok := right.resolve(term.Right)
			if !ok {
				return nil, parseErrf(term.Line, ErrUnknownBasisName, "right basis %q", term.Right)
			}
			pair := [2]int{lIdx, rIdx}
			if seen[pair] {
				return nil, parseErrf(term.Line, ErrCoactionOrder, "repeated term (%q, %q) in coaction of %q", term.Left, term.Right, owner)
			}
			seen[pair] = true

			if g.Add(lGrade, rGrade) != ownerGrade {
				return nil, &ParseError{Line: term.Line, Err: graded.ErrHomogeneity,
					Msg: "term (" + term.Left + ", " + term.Right + ") does not sum to the grade of " + owner}
			}

			value, err := r.Parse(term.Value)
			if err != nil {
				return nil, parseErrf(term.Line, ErrBadGradeToken, "%q: %v", term.Value, err)
			}

			resolved = append(resolved, comodule.RawTerm[E]{LeftIdx: lIdx, RightIdx: rIdx, Value: value})
		}
		table[ownerIdx] = resolved
	}
	return table, nil
}
