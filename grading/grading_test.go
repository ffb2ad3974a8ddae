package grading_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vossetje/comodules/grading"
)

func TestUniArithmeticAndIteration(t *testing.T) {
	g := grading.Uni{}
	require.Equal(t, 5, g.Add(2, 3))
	require.Equal(t, 2, g.Sub(5, 3))
	require.True(t, g.Less(2, 3))
	require.False(t, g.Less(3, 2))
	require.Equal(t, []int{3}, g.Nexts(2))
	require.Equal(t, []int{0, 1, 2}, g.IteratorFromZero(2, true))
	require.Equal(t, []int{0, 1}, g.IteratorFromZero(2, false))

	x, y := g.ExportCoords(7)
	require.Equal(t, 7, x)
	require.Equal(t, 0, y)

	xf, yf := g.Formulas()
	require.Equal(t, "t - s", xf)
	require.Equal(t, "s", yf)
}

func TestBiGradingArithmeticAndOrdering(t *testing.T) {
	g := grading.BiGrading
	a := grading.Bi{T: 1, S: 2}
	b := grading.Bi{T: 2, S: 0}

	require.Equal(t, grading.Bi{T: 3, S: 2}, g.Add(a, b))
	require.Equal(t, grading.Bi{T: -1, S: 2}, g.Sub(a, b))
	require.True(t, g.Less(a, b))
	require.False(t, g.Less(b, a))

	nexts := g.Nexts(a)
	require.ElementsMatch(t, []grading.Bi{{T: 2, S: 2}, {T: 1, S: 3}}, nexts)

	iter := g.IteratorFromZero(grading.Bi{T: 1, S: 1}, true)
	require.ElementsMatch(t, []grading.Bi{{0, 0}, {0, 1}, {1, 0}, {1, 1}}, iter)
}

func TestLayoutLazyAllocationAndAppend(t *testing.T) {
	l := grading.NewLayout[int, string]()
	require.Equal(t, 0, l.Len(0))
	require.Nil(t, l.At(0))

	l.Append(0, "a")
	l.Append(0, "b")
	l.Set(1, []string{"c"})

	require.Equal(t, []string{"a", "b"}, l.At(0))
	require.Equal(t, 2, l.Len(0))
	require.Equal(t, []string{"c"}, l.At(1))
	require.ElementsMatch(t, []int{0, 1}, l.Grades())
}

func TestBasisElementStringFallsBackToGeneratedIndex(t *testing.T) {
	named := grading.BasisElement{Name: "xi1"}
	require.Equal(t, "xi1", named.String())

	anon := grading.BasisElement{GeneratedIndex: 3, HasGeneratedIdx: true}
	require.Equal(t, "#3", anon.String())
}
