package graded_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vossetje/comodules/grading"
	"github.com/vossetje/comodules/graded"
)

type dims map[int]int

func (d dims) Grades() []int {
	out := make([]int, 0, len(d))
	for g := range d {
		out = append(out, g)
	}
	return out
}

func (d dims) Dim(g int) int { return d[g] }

func TestTensorGenerateDeterministicOrdering(t *testing.T) {
	left := dims{0: 2, 1: 1}
	right := dims{0: 1}

	tensor := graded.NewTensor[int](grading.Uni{})
	tensor.Generate(left, right, nil)

	require.Equal(t, 2, tensor.Dimension(0))
	require.Equal(t, 1, tensor.Dimension(1))

	e0 := tensor.At(0, 0)
	require.Equal(t, graded.Elem[int]{LGrade: 0, LID: 0, RGrade: 0, RID: 0}, e0)
	e1 := tensor.At(0, 1)
	require.Equal(t, graded.Elem[int]{LGrade: 0, LID: 1, RGrade: 0, RID: 0}, e1)

	id, ok := tensor.Lookup(e0)
	require.True(t, ok)
	require.Equal(t, 0, id)
}

func TestTensorGenerateRespectsIncludePredicate(t *testing.T) {
	left := dims{0: 2}
	right := dims{0: 1}

	tensor := graded.NewTensor[int](grading.Uni{})
	tensor.Generate(left, right, func(e graded.Elem[int]) bool {
		return e.LID == 1 // only keep the second left generator
	})

	require.Equal(t, 1, tensor.Dimension(0))
	require.Equal(t, graded.Elem[int]{LGrade: 0, LID: 1, RGrade: 0, RID: 0}, tensor.At(0, 0))
}

func TestTensorAddAndRestrict(t *testing.T) {
	left := dims{0: 1, 2: 1}
	right := dims{0: 1}

	tensor := graded.NewTensor[int](grading.Uni{})
	tensor.Generate(left, right, nil)

	shifted := tensor.AddAndRestrict(1, 2)
	require.Equal(t, 1, shifted.Dimension(1))
	require.Equal(t, 0, shifted.Dimension(3)) // grade 2+1=3 exceeds limit 2, dropped
}

func TestTensorDirectSum(t *testing.T) {
	left := dims{0: 1}
	right := dims{0: 1}

	a := graded.NewTensor[int](grading.Uni{})
	a.Generate(left, right, nil)

	b := graded.NewTensor[int](grading.Uni{})
	b.Generate(left, right, nil)

	offsets := a.DirectSum(b, map[int]int{0: a.Dimension(0)})
	require.Equal(t, 1, offsets[0])
	require.Equal(t, 2, a.Dimension(0))
}
