package builder_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vossetje/comodules/builder"
	"github.com/vossetje/comodules/graded"
	"github.com/vossetje/comodules/grading"
	"github.com/vossetje/comodules/ring"
)

func a0Basis() []builder.BasisEntry[int] {
	return []builder.BasisEntry[int]{
		{Name: "1", Grade: 0},
		{Name: "xi1", Grade: 1},
	}
}

func a0Coaction() map[string][]builder.CoactionEntry {
	return map[string][]builder.CoactionEntry{
		"1":   {{Left: "1", Right: "1", Value: "1"}},
		"xi1": {
			{Left: "1", Right: "xi1", Value: "1"},
			{Left: "xi1", Right: "1", Value: "1"},
		},
	}
}

func TestBuildCoalgebraFromNamedTables(t *testing.T) {
	coalg, err := builder.BuildCoalgebra[int, ring.F2Elem](grading.Uni{}, ring.F2, a0Basis(), a0Coaction())
	require.NoError(t, err)
	require.Equal(t, 1, coalg.Dim(0))
	require.Equal(t, 1, coalg.Dim(1))
	require.Equal(t, "xi1", coalg.BasisAt(1, 0).Name)

	terms := coalg.Coaction(1, 0)
	require.Len(t, terms, 2)
}

func TestBuildComoduleFromNamedTables(t *testing.T) {
	coalg, err := builder.BuildCoalgebra[int, ring.F2Elem](grading.Uni{}, ring.F2, a0Basis(), a0Coaction())
	require.NoError(t, err)

	modBasis := []builder.BasisEntry[int]{
		{Name: "m0", Grade: 0},
		{Name: "m1", Grade: 1},
	}
	modCoaction := map[string][]builder.CoactionEntry{
		"m0": {{Left: "1", Right: "m0", Value: "1"}},
		"m1": {
			{Left: "1", Right: "m1", Value: "1"},
			{Left: "xi1", Right: "m0", Value: "1"},
		},
	}

	mod, err := builder.BuildComodule[int, ring.F2Elem](coalg, grading.Uni{}, ring.F2, modBasis, modCoaction)
	require.NoError(t, err)
	require.Equal(t, 1, mod.Dim(0))
	require.Equal(t, 1, mod.Dim(1))

	terms := mod.Coaction(1, 0)
	require.Len(t, terms, 2)
	require.Equal(t, 1, terms[1].LGrade)
	require.Equal(t, 0, terms[1].RGrade)
}

func TestBuildCoalgebraUnknownBasisName(t *testing.T) {
	basis := a0Basis()
	coaction := map[string][]builder.CoactionEntry{
		"1":   {{Left: "1", Right: "1", Value: "1"}},
		"xi1": {{Left: "1", Right: "ghost", Value: "1", Line: 7}},
	}
	_, err := builder.BuildCoalgebra[int, ring.F2Elem](grading.Uni{}, ring.F2, basis, coaction)
	require.ErrorIs(t, err, builder.ErrUnknownBasisName)
	var pe *builder.ParseError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, 7, pe.Line)
}

func TestBuildCoalgebraBadGradeToken(t *testing.T) {
	basis := a0Basis()
	coaction := map[string][]builder.CoactionEntry{
		"1":   {{Left: "1", Right: "1", Value: "1"}},
		"xi1": {{Left: "1", Right: "xi1", Value: "banana"}},
	}
	_, err := builder.BuildCoalgebra[int, ring.F2Elem](grading.Uni{}, ring.F2, basis, coaction)
	require.ErrorIs(t, err, builder.ErrBadGradeToken)
}

func TestBuildCoalgebraRepeatedCoactionPair(t *testing.T) {
	basis := a0Basis()
	coaction := map[string][]builder.CoactionEntry{
		"1": {{Left: "1", Right: "1", Value: "1"}},
		"xi1": {
			{Left: "1", Right: "xi1", Value: "1"},
			{Left: "1", Right: "xi1", Value: "1"},
		},
	}
	_, err := builder.BuildCoalgebra[int, ring.F2Elem](grading.Uni{}, ring.F2, basis, coaction)
	require.ErrorIs(t, err, builder.ErrCoactionOrder)
}

func TestBuildCoalgebraHomogeneityError(t *testing.T) {
	basis := a0Basis()
	coaction := map[string][]builder.CoactionEntry{
		"1": {{Left: "1", Right: "1", Value: "1"}},
		// xi1 has grade 1, but 1⊗1 has grade 0: not homogeneous.
		"xi1": {{Left: "1", Right: "1", Value: "1"}},
	}
	_, err := builder.BuildCoalgebra[int, ring.F2Elem](grading.Uni{}, ring.F2, basis, coaction)
	require.ErrorIs(t, err, graded.ErrHomogeneity)
}

func TestBuildCoalgebraDuplicateNameStrict(t *testing.T) {
	basis := []builder.BasisEntry[int]{
		{Name: "1", Grade: 0},
		{Name: "1", Grade: 0, Line: 3},
	}
	_, err := builder.BuildCoalgebra[int, ring.F2Elem](grading.Uni{}, ring.F2, basis, nil, builder.WithStrictDuplicateNames(true))
	require.ErrorIs(t, err, builder.ErrMalformedSection)
	var pe *builder.ParseError
	require.True(t, errors.As(err, &pe))
	require.Equal(t, 3, pe.Line)
}
