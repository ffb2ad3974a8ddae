package builder_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vossetje/comodules/builder"
	"github.com/vossetje/comodules/grading"
	"github.com/vossetje/comodules/ring"
)

func TestLoadFixtureBuildsA0(t *testing.T) {
	data, err := os.ReadFile("testdata/a0.yaml")
	require.NoError(t, err)

	basis, coaction, err := builder.LoadFixture(data)
	require.NoError(t, err)
	require.Len(t, basis, 2)
	require.Greater(t, basis[1].Line, basis[0].Line, "xi1 should be reported as a later line than 1")

	coalg, err := builder.BuildCoalgebra[int, ring.F2Elem](grading.Uni{}, ring.F2, basis, coaction)
	require.NoError(t, err)
	require.Equal(t, 1, coalg.Dim(0))
	require.Equal(t, 1, coalg.Dim(1))
	require.Len(t, coalg.Coaction(1, 0), 2)
}

func TestLoadFixtureAttachesLineToErrors(t *testing.T) {
	data := []byte(`
basis:
  - name: "1"
    grade: 0
coaction:
  "1":
    - left: "1"
      right: "ghost"
      value: "1"
`)
	basis, coaction, err := builder.LoadFixture(data)
	require.NoError(t, err)

	_, err = builder.BuildCoalgebra[int, ring.F2Elem](grading.Uni{}, ring.F2, basis, coaction)
	require.ErrorIs(t, err, builder.ErrUnknownBasisName)
	var pe *builder.ParseError
	require.ErrorAs(t, err, &pe)
	require.Greater(t, pe.Line, 0)
}
