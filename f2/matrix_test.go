package f2_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vossetje/comodules/f2"
)

func buildMatrix(rows [][]uint8) *f2.Matrix {
	m := f2.New(len(rows), len(rows[0]))
	for i, row := range rows {
		for j, v := range row {
			if v != 0 {
				m.Set(i, j, 1)
			}
		}
	}
	return m
}

func TestEchelonizeAlreadyRREF(t *testing.T) {
	// spec scenario 1: F2 RREF of [1 0 1; 0 1 1] (domain 3, codomain 2) is itself.
	m := buildMatrix([][]uint8{
		{1, 0, 1},
		{0, 1, 1},
	})
	m.Echelonize()

	require.Equal(t, uint8(1), m.Get(0, 0))
	require.Equal(t, uint8(0), m.Get(0, 1))
	require.Equal(t, uint8(1), m.Get(0, 2))
	require.Equal(t, uint8(0), m.Get(1, 0))
	require.Equal(t, uint8(1), m.Get(1, 1))
	require.Equal(t, uint8(1), m.Get(1, 2))

	require.Equal(t, 2, m.Rank())
	require.Equal(t, 1, m.Nullity())

	kernel := m.RREFKernel()
	require.Equal(t, 1, kernel.Domain())
	require.Equal(t, 3, kernel.Codomain())
	require.Equal(t, uint8(1), kernel.Get(0, 0))
	require.Equal(t, uint8(1), kernel.Get(1, 0))
	require.Equal(t, uint8(1), kernel.Get(2, 0))
}

func TestPivotsStrictlyIncreasingWithUnitColumn(t *testing.T) {
	m := buildMatrix([][]uint8{
		{1, 0, 1},
		{0, 1, 1},
	})
	m.Echelonize()
	pivots := m.Pivots()
	require.Equal(t, []int{0, 1, -1}, pivots)

	for col, row := range pivots {
		if row < 0 {
			continue
		}
		for r := 0; r < m.Codomain(); r++ {
			want := uint8(0)
			if r == row {
				want = 1
			}
			require.Equal(t, want, m.Get(r, col), "col %d row %d", col, r)
		}
	}
}

func TestRankPlusNullityEqualsDomain(t *testing.T) {
	m := buildMatrix([][]uint8{
		{1, 1, 0, 0},
		{0, 1, 1, 0},
		{1, 0, 1, 1},
	})
	m.Echelonize()
	require.Equal(t, m.Domain(), m.Rank()+m.Nullity())
}

func TestKernelDestroyersClearsKernel(t *testing.T) {
	m := buildMatrix([][]uint8{
		{1, 1, 0, 0},
		{0, 1, 1, 0},
	})
	destroyers := m.KernelDestroyers()
	require.NotEmpty(t, destroyers)
	for _, d := range destroyers {
		require.GreaterOrEqual(t, d, 0)
		require.Less(t, d, m.Domain())
	}
}

func TestBlockSumNonWordAlignedOffset(t *testing.T) {
	// m.domain = 70, not a multiple of 64, so other's bits land at a
	// non-word-aligned offset and must be split across two dest words.
	m := f2.New(1, 70)
	m.Set(0, 69, 1)

	other := f2.New(1, 3)
	other.Set(0, 0, 1)
	other.Set(0, 2, 1)

	bs := f2.BlockSum(m, other)
	require.Equal(t, 2, bs.Codomain())
	require.Equal(t, 73, bs.Domain())

	require.Equal(t, uint8(1), bs.Get(0, 69))
	for j := 0; j < 69; j++ {
		require.Equal(t, uint8(0), bs.Get(0, j), "col %d", j)
	}
	require.Equal(t, uint8(1), bs.Get(1, 70))
	require.Equal(t, uint8(0), bs.Get(1, 71))
	require.Equal(t, uint8(1), bs.Get(1, 72))
	for j := 0; j < 70; j++ {
		require.Equal(t, uint8(0), bs.Get(1, j), "row1 col %d", j)
	}
}

func TestVStackAndCompose(t *testing.T) {
	a := buildMatrix([][]uint8{{1, 0}, {0, 1}})
	b := buildMatrix([][]uint8{{1, 1}})
	stacked, err := f2.VStack(a, b)
	require.NoError(t, err)
	require.Equal(t, 3, stacked.Codomain())
	require.Equal(t, 2, stacked.Domain())

	id := buildMatrix([][]uint8{{1, 0}, {0, 1}})
	composed, err := f2.Compose(id, a)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			require.Equal(t, a.Get(i, j), composed.Get(i, j))
		}
	}
}

func TestTransposeSwapsDimensions(t *testing.T) {
	m := f2.New(2, 5)
	tr := f2.Transpose(m)
	require.Equal(t, 5, tr.Codomain())
	require.Equal(t, 2, tr.Domain())
}

func TestEchelonizeLargeMatrixUsesM4RIPath(t *testing.T) {
	// codomain >= 64 selects the blocked path; verify it produces the
	// same RREF as the naive path would (identity matrix is its own RREF).
	n := 70
	m := f2.New(n, n)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	m.Echelonize()
	require.Equal(t, n, m.Rank())
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			want := uint8(0)
			if i == j {
				want = 1
			}
			require.Equal(t, want, m.Get(i, j))
		}
	}
}
