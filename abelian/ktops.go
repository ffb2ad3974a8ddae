package abelian

import (
	"sort"

	"github.com/vossetje/comodules/matrix"
	"github.com/vossetje/comodules/ring"
	"github.com/vossetje/comodules/snf"
)

// KtOps implements MatrixOps[*matrix.Dense[ring.KtElem]] over a fixed
// k[t] ring instance.
type KtOps struct {
	Ring ring.KtRing
}

var _ MatrixOps[*matrix.Dense[ring.KtElem]] = KtOps{}

func (o KtOps) Zero(codomain, domain int) (*matrix.Dense[ring.KtElem], error) {
	return matrix.NewDense[ring.KtElem](o.Ring, codomain, domain)
}

func (o KtOps) Identity(n int) (*matrix.Dense[ring.KtElem], error) {
	return matrix.Identity[ring.KtElem](o.Ring, n)
}

func (o KtOps) Codomain(m *matrix.Dense[ring.KtElem]) int { return m.Codomain() }
func (o KtOps) Domain(m *matrix.Dense[ring.KtElem]) int   { return m.Domain() }

func (o KtOps) Compose(a, b *matrix.Dense[ring.KtElem]) (*matrix.Dense[ring.KtElem], error) {
	return matrix.Compose[ring.KtElem](a, b)
}
func (o KtOps) VStack(a, b *matrix.Dense[ring.KtElem]) (*matrix.Dense[ring.KtElem], error) {
	return matrix.VStack[ring.KtElem](a, b)
}
func (o KtOps) BlockSum(a, b *matrix.Dense[ring.KtElem]) *matrix.Dense[ring.KtElem] {
	out, _ := matrix.BlockSum[ring.KtElem](a, b)
	return out
}

// hstack concatenates a and b side by side (equal codomain required),
// built from Transpose+VStack since matrix.Dense exposes no direct
// horizontal-stack primitive: this mirrors vstack via the transpose
// identity hstack(a,b) = transpose(vstack(transpose(a), transpose(b))).
func hstack(a, b *matrix.Dense[ring.KtElem]) (*matrix.Dense[ring.KtElem], error) {
	stacked, err := matrix.VStack[ring.KtElem](matrix.Transpose(a), matrix.Transpose(b))
	if err != nil {
		return nil, err
	}
	return matrix.Transpose(stacked), nil
}

// selectRows builds a new matrix containing only the given row indices
// of m, preserving order.
func selectRows(r ring.Ring[ring.KtElem], m *matrix.Dense[ring.KtElem], rows []int) (*matrix.Dense[ring.KtElem], error) {
	out, err := matrix.NewDense[ring.KtElem](r, len(rows), m.Domain())
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		vals, err := m.GetRow(row)
		if err != nil {
			return nil, err
		}
		if err := out.SetRow(i, vals); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// selectColumns builds a new matrix containing only the given column
// indices of m, preserving order.
func selectColumns(r ring.Ring[ring.KtElem], m *matrix.Dense[ring.KtElem], cols []int) (*matrix.Dense[ring.KtElem], error) {
	out, err := matrix.NewDense[ring.KtElem](r, m.Codomain(), len(cols))
	if err != nil {
		return nil, err
	}
	for j, col := range cols {
		vals, err := m.GetColumn(col)
		if err != nil {
			return nil, err
		}
		if err := out.SetColumn(j, vals); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Kernel is called by the cofree injection's pivot search
// (comodule.findPivotGrade) and by KernelDestroyers below. It uses the
// classical SNF kernel extraction: the columns of V corresponding to
// zero diagonal entries of S span ker(m).
func (o KtOps) Kernel(m *matrix.Dense[ring.KtElem]) (*matrix.Dense[ring.KtElem], []Generator, error) {
	res, err := snf.Full[ring.KtElem](o.Ring, m)
	if err != nil {
		return nil, nil, err
	}
	minDim := res.S.Codomain()
	if res.S.Domain() < minDim {
		minDim = res.S.Domain()
	}
	var freeCols []int
	for i := 0; i < minDim; i++ {
		d, err := res.S.At(i, i)
		if err != nil {
			return nil, nil, err
		}
		if o.Ring.IsZero(d) {
			freeCols = append(freeCols, i)
		}
	}
	for i := minDim; i < res.S.Domain(); i++ {
		freeCols = append(freeCols, i)
	}
	ker, err := selectColumns(o.Ring, res.V, freeCols)
	if err != nil {
		return nil, nil, err
	}
	gens := make([]Generator, len(freeCols))
	for i := range gens {
		gens[i] = Generator{Free: true}
	}
	return ker, gens, nil
}

// Cokernel computes the cokernel of m: X -> Y over k[t] in six steps:
// sort Y's generators (free last, torsion ascending), augment with the
// torsion relations, take the full SNF, read off the cokernel
// generators from S's diagonal, assemble the quotient/section maps
// from U/U⁻¹ pre/post-composed with the sort permutation, then reduce
// both maps against the new generators' torsion bounds.
func (o KtOps) Cokernel(m *matrix.Dense[ring.KtElem], codomainGens []Generator) (*matrix.Dense[ring.KtElem], *matrix.Dense[ring.KtElem], []Generator, error) {
	n := m.Codomain()
	if len(codomainGens) != n {
		codomainGens = make([]Generator, n)
		for i := range codomainGens {
			codomainGens[i] = Generator{Free: true}
		}
	}

	// Step (i): sort torsion-ascending first, then free.
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(a, b int) bool {
		ga, gb := codomainGens[perm[a]], codomainGens[perm[b]]
		if ga.Free != gb.Free {
			return !ga.Free // torsion (non-free) sorts first
		}
		return ga.Torsion < gb.Torsion
	})

	permuted, err := selectRows(o.Ring, m, perm)
	if err != nil {
		return nil, nil, nil, err
	}

	var torsionIdx []int
	for newIdx, oldIdx := range perm {
		if !codomainGens[oldIdx].Free {
			torsionIdx = append(torsionIdx, newIdx)
		}
	}

	// Step (ii): augment with a diagonal block of -t^q relations.
	var augmented *matrix.Dense[ring.KtElem]
	if len(torsionIdx) == 0 {
		augmented = permuted
	} else {
		relBlock, err := matrix.NewDense[ring.KtElem](o.Ring, n, len(torsionIdx))
		if err != nil {
			return nil, nil, nil, err
		}
		for k, row := range torsionIdx {
			q := codomainGens[perm[row]].Torsion
			tq, err := o.Ring.Parse(ktMonomial(q))
			if err != nil {
				return nil, nil, nil, err
			}
			if err := relBlock.Set(row, k, o.Ring.Neg(tq)); err != nil {
				return nil, nil, nil, err
			}
		}
		augmented, err = hstack(permuted, relBlock)
		if err != nil {
			return nil, nil, nil, err
		}
	}

	// Step (iii): full SNF.
	res, err := snf.Full[ring.KtElem](o.Ring, augmented)
	if err != nil {
		return nil, nil, nil, err
	}

	minDim := res.S.Codomain()
	if res.S.Domain() < minDim {
		minDim = res.S.Domain()
	}

	// Step (iv): diagonal entries that are non-unit and non-zero are
	// torsion cokernel summands; entries past the diagonal's rank (or
	// exactly zero) are free summands.
	var kept []int
	var gens []Generator
	for i := 0; i < n; i++ {
		if i < minDim {
			d, err := res.S.At(i, i)
			if err != nil {
				return nil, nil, nil, err
			}
			if o.Ring.IsUnit(d) {
				continue // absorbed entirely, not a cokernel generator
			}
			if !o.Ring.IsZero(d) {
				kept = append(kept, i)
				gens = append(gens, Generator{Free: false, Torsion: o.Ring.Valuation(d)})
				continue
			}
		}
		kept = append(kept, i)
		gens = append(gens, Generator{Free: true})
	}

	// Step (v): to = rows of U at kept positions, repr = matching
	// columns of U⁻¹. Both act on the sorted order of step (i), so they
	// are composed with the permutation P (P[k][perm[k]] = 1) to express
	// them in Y's original basis: to·P and Pᵀ·repr.
	to, err := selectRows(o.Ring, res.U, kept)
	if err != nil {
		return nil, nil, nil, err
	}
	repr, err := selectColumns(o.Ring, res.UInv, kept)
	if err != nil {
		return nil, nil, nil, err
	}
	p, err := matrix.NewDense[ring.KtElem](o.Ring, n, n)
	if err != nil {
		return nil, nil, nil, err
	}
	for k, orig := range perm {
		_ = p.Set(k, orig, o.Ring.One())
	}
	if to, err = matrix.Compose[ring.KtElem](to, p); err != nil {
		return nil, nil, nil, err
	}
	if repr, err = matrix.Compose[ring.KtElem](matrix.Transpose(p), repr); err != nil {
		return nil, nil, nil, err
	}

	// Fix pivots: a torsion generator's representative is only
	// well-defined up to a unit multiple; normalize so its leading
	// coefficient is 1 by rescaling to's row and repr's matching column
	// by inverse units, keeping to∘repr the identity.
	for i, newIdx := range kept {
		if gens[i].Free || newIdx >= minDim {
			continue
		}
		d, err := res.S.At(newIdx, newIdx)
		if err != nil {
			return nil, nil, nil, err
		}
		unit := ring.KtElem{Unit: d.Unit, Val: 0}
		if o.Ring.Field.IsZero(o.Ring.Field.Sub(unit.Unit, o.Ring.Field.One())) {
			continue // already unit-normalized
		}
		unitInv := o.Ring.UnsafeDivide(unit, o.Ring.One())
		for col := 0; col < to.Domain(); col++ {
			v, err := to.At(i, col)
			if err != nil {
				return nil, nil, nil, err
			}
			if err := to.Set(i, col, o.Ring.Mul(unitInv, v)); err != nil {
				return nil, nil, nil, err
			}
		}
		for row := 0; row < repr.Codomain(); row++ {
			v, err := repr.At(row, i)
			if err != nil {
				return nil, nil, nil, err
			}
			if err := repr.Set(row, i, o.Ring.Mul(unit, v)); err != nil {
				return nil, nil, nil, err
			}
		}
	}

	// Step (vi): reduce both maps against the new generators' torsion.
	for row := 0; row < to.Codomain(); row++ {
		q := gens[row].Torsion
		if gens[row].Free {
			continue
		}
		for col := 0; col < to.Domain(); col++ {
			v, err := to.At(row, col)
			if err != nil {
				return nil, nil, nil, err
			}
			if !o.Ring.IsZero(v) && o.Ring.Valuation(v) >= q {
				if err := to.Set(row, col, o.Ring.Zero()); err != nil {
					return nil, nil, nil, err
				}
			}
		}
	}
	for col := 0; col < repr.Domain(); col++ {
		q := gens[col].Torsion
		if gens[col].Free {
			continue
		}
		for row := 0; row < repr.Codomain(); row++ {
			v, err := repr.At(row, col)
			if err != nil {
				return nil, nil, nil, err
			}
			if !o.Ring.IsZero(v) && o.Ring.Valuation(v) >= q {
				if err := repr.Set(row, col, o.Ring.Zero()); err != nil {
					return nil, nil, nil, err
				}
			}
		}
	}

	return to, repr, gens, nil
}

// ktMonomial renders t^q (q >= 1) or "1" (q == 0) as a Parse-able token.
func ktMonomial(q int) string {
	if q == 0 {
		return "1"
	}
	if q == 1 {
		return "t"
	}
	return "t^" + itoa(q)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := [20]byte{}
	i := len(digits)
	for n > 0 {
		i--
		digits[i] = byte('0' + n%10)
		n /= 10
	}
	return string(digits[i:])
}

// KernelDestroyers runs KernelDestroyers for k[t]: finds a minimal set
// of domain indices of m (rows of its kernel basis) whose zeroing
// exhausts the kernel, reusing the
// SNF-based Kernel above and walking its basis vectors one at a time —
// the same iterative pivot/zero loop as f2.Matrix.KernelDestroyers,
// specialized to the generic ring element comparison IsZero.
func (o KtOps) KernelDestroyers(m *matrix.Dense[ring.KtElem]) ([]int, error) {
	ker, _, err := o.Kernel(m)
	if err != nil {
		return nil, err
	}
	work := ker.Clone()
	var destroyers []int
	for {
		row, col := firstNonZero(o.Ring, work)
		if row < 0 {
			break
		}
		destroyers = append(destroyers, row)
		for c := 0; c < work.Domain(); c++ {
			_ = work.Set(row, c, o.Ring.Zero())
		}
		for r := 0; r < work.Codomain(); r++ {
			_ = work.Set(r, col, o.Ring.Zero())
		}
	}
	return destroyers, nil
}

func firstNonZero(r ring.Ring[ring.KtElem], m *matrix.Dense[ring.KtElem]) (int, int) {
	for i := 0; i < m.Codomain(); i++ {
		for j := 0; j < m.Domain(); j++ {
			v, _ := m.At(i, j)
			if !r.IsZero(v) {
				return i, j
			}
		}
	}
	return -1, -1
}
