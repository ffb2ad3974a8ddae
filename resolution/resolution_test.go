package resolution_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vossetje/comodules/comodule"
	"github.com/vossetje/comodules/grading"
	"github.com/vossetje/comodules/page"
	"github.com/vossetje/comodules/resolution"
	"github.com/vossetje/comodules/ring"
)

// buildA0 constructs the Steenrod subalgebra A(0)'s coalgebra: basis
// {1, ξ1}, ξ1 primitive of degree 1, over GF(2) with uni-grading.
func buildA0(t *testing.T) *comodule.Coalgebra[int, ring.F2Elem] {
	t.Helper()
	r := ring.F2
	one := r.One()
	names := []string{"1", "xi1"}
	grades := []int{0, 1}
	coaction := [][]comodule.RawTerm[ring.F2Elem]{
		{{LeftIdx: 0, RightIdx: 0, Value: one}},
		{
			{LeftIdx: 0, RightIdx: 1, Value: one},
			{LeftIdx: 1, RightIdx: 0, Value: one},
		},
	}
	coalg, err := comodule.BuildCoalgebra[int, ring.F2Elem](grading.Uni{}, r, names, grades, coaction)
	require.NoError(t, err)
	return coalg
}

// TestResolveOfCoalgebraAsComoduleIsInjectiveAtRowZero exercises Resolve
// on the comodule isomorphic to A(0) itself: since this comodule is
// already (isomorphic to) its own cofree envelope, row 0's injection
// should come out bijective, leaving a zero cokernel to seed row 1.
func TestResolveOfCoalgebraAsComoduleIsInjectiveAtRowZero(t *testing.T) {
	coalg := buildA0(t)
	r := ring.F2
	one := r.One()

	names := []string{"m0", "m1"}
	grades := []int{0, 1}
	coaction := [][]comodule.RawTerm[ring.F2Elem]{
		{{LeftIdx: 0, RightIdx: 0, Value: one}},
		{
			{LeftIdx: 0, RightIdx: 1, Value: one},
			{LeftIdx: 1, RightIdx: 0, Value: one},
		},
	}
	mod, err := comodule.BuildComodule[int, ring.F2Elem](coalg, names, grades, coaction)
	require.NoError(t, err)

	res, err := resolution.Resolve[int, ring.F2Elem](comodule.F2Backend{}, coalg, mod, 1, 2)
	require.NoError(t, err)
	require.Len(t, res.Rows, 2)

	row0 := res.Rows[0]
	require.Equal(t, 1, row0.Cofree.Dim(0))
	require.Equal(t, 1, row0.Cofree.Dim(1))

	cell0, ok := row0.Injection.At(0)
	require.True(t, ok)
	require.Equal(t, uint8(1), cell0.Get(0, 0))

	cell1, ok := row0.Injection.At(1)
	require.True(t, ok)
	require.Equal(t, uint8(1), cell1.Get(0, 0))

	// A bijective row-0 injection leaves nothing for row 1 to resolve.
	row1 := res.Rows[1]
	require.Equal(t, 0, row1.Cofree.Dim(0))
	require.Equal(t, 0, row1.Cofree.Dim(1))
}

// TestResolveWithWorkersMatchesSequentialCokernel checks that bounding
// the per-row cokernel concurrency with Option.Workers does not change
// the result.
func TestResolveWithWorkersMatchesSequentialCokernel(t *testing.T) {
	coalg := buildA0(t)
	r := ring.F2
	one := r.One()

	names := []string{"m0", "m1"}
	grades := []int{0, 1}
	coaction := [][]comodule.RawTerm[ring.F2Elem]{
		{{LeftIdx: 0, RightIdx: 0, Value: one}},
		{
			{LeftIdx: 0, RightIdx: 1, Value: one},
			{LeftIdx: 1, RightIdx: 0, Value: one},
		},
	}
	mod, err := comodule.BuildComodule[int, ring.F2Elem](coalg, names, grades, coaction)
	require.NoError(t, err)

	sequential, err := resolution.Resolve[int, ring.F2Elem](comodule.F2Backend{}, coalg, mod, 1, 2)
	require.NoError(t, err)

	concurrent, err := resolution.Resolve[int, ring.F2Elem](comodule.F2Backend{}, coalg, mod, 1, 2, resolution.Option{Workers: 2})
	require.NoError(t, err)

	require.Equal(t, len(sequential.Rows), len(concurrent.Rows))
	for s := range sequential.Rows {
		require.Equal(t, sequential.Rows[s].Cofree.Dim(0), concurrent.Rows[s].Cofree.Dim(0))
		require.Equal(t, sequential.Rows[s].Cofree.Dim(1), concurrent.Rows[s].Cofree.Dim(1))
	}
}

// TestResolveF2OverA0MatchesScenarioSix resolves the trivial comodule F2
// (basis {m0} at grade 0, coaction m0 -> 1⊗m0) over A(0) to s_max=10,
// grade limit 12: this must place exactly one generator at (0,0) and
// exactly one generator at every (s,s) for 1<=s<=10, with each
// consecutive pair connected by an "h_0"-labelled structure line (ξ1 is
// A(0)'s only basis element above grade 0, so it is the only possible
// edge label).
func TestResolveF2OverA0MatchesScenarioSix(t *testing.T) {
	coalg := buildA0(t)
	r := ring.F2
	one := r.One()

	names := []string{"m0"}
	grades := []int{0}
	coaction := [][]comodule.RawTerm[ring.F2Elem]{
		{{LeftIdx: 0, RightIdx: 0, Value: one}},
	}
	mod, err := comodule.BuildComodule[int, ring.F2Elem](coalg, names, grades, coaction)
	require.NoError(t, err)

	const sMax = 10
	res, err := resolution.Resolve[int, ring.F2Elem](comodule.F2Backend{}, coalg, mod, sMax, 12)
	require.NoError(t, err)
	require.Len(t, res.Rows, sMax+1)

	gens := page.Generators(res, grading.Uni{})

	byS := make(map[int][]page.Generator[int])
	for _, gen := range gens {
		byS[gen.S] = append(byS[gen.S], gen)
	}

	for s := 0; s <= sMax; s++ {
		got := byS[s]
		require.Lenf(t, got, 1, "homological degree %d should have exactly one generator", s)
		require.Equal(t, s, got[0].Grade, "generator at s=%d should sit at internal grade %d", s, s)
	}

	lines, err := page.StructureLines(comodule.F2Backend{}, grading.Uni{}, res)
	require.NoError(t, err)
	require.Len(t, lines, sMax)
	for s := 1; s <= sMax; s++ {
		var found bool
		for _, line := range lines {
			if line.FromS == s-1 && line.ToS == s {
				require.Equal(t, "h_0", line.Label)
				found = true
			}
		}
		require.Truef(t, found, "missing h_0 structure line from s=%d to s=%d", s-1, s)
	}
}
