package comodule

import (
	"github.com/vossetje/comodules/abelian"
	"github.com/vossetje/comodules/f2"
	"github.com/vossetje/comodules/matrix"
	"github.com/vossetje/comodules/ring"
)

// Backend extends abelian.MatrixOps with entry-level access, which the
// injection builder needs to translate ring-element coaction values
// into concrete matrix cells. abelian.MatrixOps itself stays
// entry-agnostic; this lives one layer up, in the package that
// actually has ring element values to place.
type Backend[M any, E any] interface {
	abelian.MatrixOps[M]
	SetEntry(m M, row, col int, v E) error
	GetEntry(m M, row, col int) (E, error)
}

// F2Backend implements Backend[*f2.Matrix, ring.F2Elem].
type F2Backend struct{ abelian.F2Ops }

var _ Backend[*f2.Matrix, ring.F2Elem] = F2Backend{}

func (F2Backend) SetEntry(m *f2.Matrix, row, col int, v ring.F2Elem) error {
	m.Set(row, col, uint8(v))
	return nil
}

func (F2Backend) GetEntry(m *f2.Matrix, row, col int) (ring.F2Elem, error) {
	return ring.F2Elem(m.Get(row, col)), nil
}

// KtBackend implements Backend[*matrix.Dense[ring.KtElem], ring.KtElem].
type KtBackend struct{ abelian.KtOps }

var _ Backend[*matrix.Dense[ring.KtElem], ring.KtElem] = KtBackend{}

func (b KtBackend) SetEntry(m *matrix.Dense[ring.KtElem], row, col int, v ring.KtElem) error {
	return m.Set(row, col, v)
}

func (b KtBackend) GetEntry(m *matrix.Dense[ring.KtElem], row, col int) (ring.KtElem, error) {
	return m.At(row, col)
}
