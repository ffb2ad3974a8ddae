// Package snf computes the Smith Normal Form of a matrix over a
// valuation ring (see package ring), tracking the row/column
// transformations and their inverses so callers can move elements
// between the original basis and the diagonalized one.
package snf

import (
	"github.com/vossetje/comodules/matrix"
	"github.com/vossetje/comodules/ring"
)

// action records a single elementary row or column operation applied
// during reduction, so its inverse can be replayed in reverse order to
// build U⁻¹/V⁻¹ without re-deriving them from scratch.
type action[E any] struct {
	isSwap bool
	a, b   int
	factor E // only used when isSwap == false
}

// Result holds the outputs of Full: U*A*V = S, with U⁻¹ and V⁻¹ the
// recorded inverses of U and V.
type Result[E any] struct {
	U, S, V    *matrix.Dense[E]
	UInv, VInv *matrix.Dense[E]
}

// Full computes the Smith Normal Form of a over the valuation ring r:
// U*A*V = S, where S is diagonal (in the generalized sense: S[i][i]
// divides S[i+1][i+1]), U and V are invertible, and UInv/VInv are their
// inverses. Reduction proceeds row by row: at each stage r, the entry of
// least valuation in the remaining submatrix is rotated into position
// (r,r) by row/column swaps, then used to eliminate the rest of its row
// and column via add_row_multiple/add_col_multiple — mirroring the
// Doolittle-style staged elimination loop used elsewhere in this module,
// generalized here to also accumulate the inverse actions needed for
// U⁻¹/V⁻¹.
func Full[E any](r ring.Valuation[E], a *matrix.Dense[E]) (Result[E], error) {
	s := a.Clone()
	codomain, domain := a.Codomain(), a.Domain()

	u, err := matrix.Identity(r, codomain)
	if err != nil {
		return Result[E]{}, err
	}
	v, err := matrix.Identity(r, domain)
	if err != nil {
		return Result[E]{}, err
	}

	var uActions, vActions []action[E]

	minDim := codomain
	if domain < minDim {
		minDim = domain
	}

	for stage := 0; stage < minDim; stage++ {
		candRow, candCol := stage, stage
		candVal, err := s.At(stage, stage)
		if err != nil {
			return Result[E]{}, err
		}
		for row := stage; row < codomain; row++ {
			for col := stage; col < domain; col++ {
				el, err := s.At(row, col)
				if err != nil {
					return Result[E]{}, err
				}
				if !r.Divides(candVal, el) {
					candVal = el
					candRow, candCol = row, col
				}
			}
		}

		if r.IsZero(candVal) {
			break
		}

		if err := u.SwapRows(stage, candRow); err != nil {
			return Result[E]{}, err
		}
		uActions = append(uActions, action[E]{isSwap: true, a: stage, b: candRow})
		if err := s.SwapRows(stage, candRow); err != nil {
			return Result[E]{}, err
		}

		if err := s.SwapCols(stage, candCol); err != nil {
			return Result[E]{}, err
		}
		if err := v.SwapCols(stage, candCol); err != nil {
			return Result[E]{}, err
		}
		vActions = append(vActions, action[E]{isSwap: true, a: stage, b: candCol})

		pivot, err := s.At(stage, stage)
		if err != nil {
			return Result[E]{}, err
		}

		// Eliminate below the pivot in its column.
		for row := stage + 1; row < codomain; row++ {
			entry, err := s.At(row, stage)
			if err != nil {
				return Result[E]{}, err
			}
			if r.IsZero(entry) {
				continue
			}
			factor := r.Neg(r.UnsafeDivide(pivot, entry))
			if err := u.AddRowMultiple(row, stage, factor); err != nil {
				return Result[E]{}, err
			}
			uActions = append(uActions, action[E]{isSwap: false, a: row, b: stage, factor: factor})
			if err := s.AddRowMultiple(row, stage, factor); err != nil {
				return Result[E]{}, err
			}
		}

		// Eliminate to the right of the pivot in its row.
		for col := stage + 1; col < domain; col++ {
			entry, err := s.At(stage, col)
			if err != nil {
				return Result[E]{}, err
			}
			if r.IsZero(entry) {
				continue
			}
			factor := r.Neg(r.UnsafeDivide(pivot, entry))
			if err := s.AddColMultiple(col, stage, factor); err != nil {
				return Result[E]{}, err
			}
			if err := v.AddColMultiple(col, stage, factor); err != nil {
				return Result[E]{}, err
			}
			vActions = append(vActions, action[E]{isSwap: false, a: col, b: stage, factor: factor})
		}
	}

	uInv, err := matrix.Identity(r, codomain)
	if err != nil {
		return Result[E]{}, err
	}
	for i := len(uActions) - 1; i >= 0; i-- {
		act := uActions[i]
		if act.isSwap {
			if err := uInv.SwapRows(act.a, act.b); err != nil {
				return Result[E]{}, err
			}
			continue
		}
		if err := uInv.AddRowMultiple(act.a, act.b, r.Neg(act.factor)); err != nil {
			return Result[E]{}, err
		}
	}

	vInv, err := matrix.Identity(r, domain)
	if err != nil {
		return Result[E]{}, err
	}
	for i := len(vActions) - 1; i >= 0; i-- {
		act := vActions[i]
		if act.isSwap {
			if err := vInv.SwapCols(act.a, act.b); err != nil {
				return Result[E]{}, err
			}
			continue
		}
		if err := vInv.AddColMultiple(act.a, act.b, r.Neg(act.factor)); err != nil {
			return Result[E]{}, err
		}
	}

	return Result[E]{U: u, S: s, V: v, UInv: uInv, VInv: vInv}, nil
}
