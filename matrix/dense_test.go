package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vossetje/comodules/matrix"
	"github.com/vossetje/comodules/ring"
)

func TestIdentityComposeIsIdentity(t *testing.T) {
	r := ring.NewFpRing(23)
	id, err := matrix.Identity(r, 3)
	require.NoError(t, err)

	m, err := matrix.NewDense(r, 3, 3)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			require.NoError(t, m.Set(i, j, ring.FpElem(i*3+j+1)))
		}
	}

	got, err := matrix.Compose(id, m)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		row, err := got.GetRow(i)
		require.NoError(t, err)
		want, err := m.GetRow(i)
		require.NoError(t, err)
		require.Equal(t, want, row)
	}
}

func TestComposeAssociativity(t *testing.T) {
	r := ring.NewFpRing(23)
	a, _ := matrix.NewDense(r, 2, 3)
	b, _ := matrix.NewDense(r, 3, 2)
	c, _ := matrix.NewDense(r, 2, 4)
	fill := func(m *matrix.Dense[ring.FpElem], seed int) {
		for i := 0; i < m.Codomain(); i++ {
			for j := 0; j < m.Domain(); j++ {
				_ = m.Set(i, j, ring.FpElem((i*7+j*3+seed)%23))
			}
		}
	}
	fill(a, 1)
	fill(b, 2)
	fill(c, 3)

	ab, err := matrix.Compose(a, b)
	require.NoError(t, err)
	left, err := matrix.Compose(ab, c)
	require.NoError(t, err)

	bc, err := matrix.Compose(b, c)
	require.NoError(t, err)
	right, err := matrix.Compose(a, bc)
	require.NoError(t, err)

	for i := 0; i < left.Codomain(); i++ {
		lr, _ := left.GetRow(i)
		rr, _ := right.GetRow(i)
		require.Equal(t, lr, rr)
	}
}

func TestTransposeDimensionsSwap(t *testing.T) {
	r := ring.F2
	m, err := matrix.NewDense(r, 2, 5)
	require.NoError(t, err)
	tr := matrix.Transpose(m)
	require.Equal(t, 5, tr.Codomain())
	require.Equal(t, 2, tr.Domain())
}

func TestSwapRowsAndCols(t *testing.T) {
	r := ring.F2
	m, err := matrix.NewDense(r, 2, 2)
	require.NoError(t, err)
	require.NoError(t, m.Set(0, 0, 1))
	require.NoError(t, m.Set(1, 1, 1))

	require.NoError(t, m.SwapRows(0, 1))
	v00, _ := m.At(0, 0)
	v10, _ := m.At(1, 0)
	require.Equal(t, ring.F2Elem(0), v00)
	require.Equal(t, ring.F2Elem(1), v10)

	require.NoError(t, m.SwapCols(0, 1))
	v01, _ := m.At(0, 1)
	require.Equal(t, ring.F2Elem(0), v01)
}

func TestVStackAndBlockSum(t *testing.T) {
	r := ring.F2
	a, _ := matrix.NewDense(r, 1, 2)
	b, _ := matrix.NewDense(r, 1, 2)
	_ = a.Set(0, 0, 1)
	_ = b.Set(0, 1, 1)

	stacked, err := matrix.VStack(a, b)
	require.NoError(t, err)
	require.Equal(t, 2, stacked.Codomain())
	require.Equal(t, 2, stacked.Domain())

	bs, err := matrix.BlockSum(a, b)
	require.NoError(t, err)
	require.Equal(t, 2, bs.Codomain())
	require.Equal(t, 4, bs.Domain())
	v, _ := bs.At(0, 0)
	require.Equal(t, ring.F2Elem(1), v)
	v, _ = bs.At(1, 3)
	require.Equal(t, ring.F2Elem(1), v)
	v, _ = bs.At(0, 3)
	require.Equal(t, ring.F2Elem(0), v)
}

func TestExtendOneRowPreservesData(t *testing.T) {
	r := ring.F2
	m, _ := matrix.NewDense(r, 1, 2)
	_ = m.Set(0, 1, 1)
	ext := matrix.ExtendOneRow(m)
	require.Equal(t, 2, ext.Codomain())
	v, _ := ext.At(0, 1)
	require.Equal(t, ring.F2Elem(1), v)
	v, _ = ext.At(1, 0)
	require.Equal(t, ring.F2Elem(0), v)
}

func TestComposeDimensionMismatch(t *testing.T) {
	r := ring.F2
	a, _ := matrix.NewDense(r, 2, 3)
	b, _ := matrix.NewDense(r, 4, 2)
	_, err := matrix.Compose(a, b)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}
