package matrix

import (
	"fmt"
	"strings"

	"github.com/vossetje/comodules/ring"
)

// denseErrorf wraps an underlying error with Dense method context, e.g.
// "Dense.At(3,7): matrix: index out of range".
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a row-major matrix over a commutative ring R, representing a
// linear map of codomain rows by domain columns (domain = column count,
// codomain = row count). Backing storage is a flat slice of length
// codomain*domain.
type Dense[E any] struct {
	ring             ring.Ring[E]
	codomain, domain int
	data             []E
}

// NewDense allocates a codomain×domain Dense matrix initialized to R's
// zero element. Complexity: O(codomain*domain).
func NewDense[E any](r ring.Ring[E], codomain, domain int) (*Dense[E], error) {
	if codomain <= 0 || domain <= 0 {
		return nil, ErrInvalidDimensions
	}
	data := make([]E, codomain*domain)
	z := r.Zero()
	for i := range data {
		data[i] = z
	}
	return &Dense[E]{ring: r, codomain: codomain, domain: domain, data: data}, nil
}

// Zero allocates a codomain×domain matrix of zeros — an alias for
// NewDense kept for symmetry with Identity.
func Zero[E any](r ring.Ring[E], codomain, domain int) (*Dense[E], error) {
	return NewDense(r, codomain, domain)
}

// Identity allocates the n×n identity matrix over r.
func Identity[E any](r ring.Ring[E], n int) (*Dense[E], error) {
	m, err := NewDense(r, n, n)
	if err != nil {
		return nil, err
	}
	one := r.One()
	for i := 0; i < n; i++ {
		m.data[i*m.domain+i] = one
	}
	return m, nil
}

// Ring returns the ring this matrix is defined over.
func (m *Dense[E]) Ring() ring.Ring[E] { return m.ring }

// Codomain returns the row count (the codomain dimension of the map).
func (m *Dense[E]) Codomain() int { return m.codomain }

// Domain returns the column count (the domain dimension of the map).
func (m *Dense[E]) Domain() int { return m.domain }

func (m *Dense[E]) index(row, col int) (int, error) {
	if row < 0 || row >= m.codomain {
		return 0, denseErrorf("At", row, col, ErrOutOfRange)
	}
	if col < 0 || col >= m.domain {
		return 0, denseErrorf("At", row, col, ErrOutOfRange)
	}
	return row*m.domain + col, nil
}

// At retrieves the element at (row, col).
func (m *Dense[E]) At(row, col int) (E, error) {
	idx, err := m.index(row, col)
	if err != nil {
		var zero E
		return zero, err
	}
	return m.data[idx], nil
}

// Set assigns v at (row, col).
func (m *Dense[E]) Set(row, col int, v E) error {
	idx, err := m.index(row, col)
	if err != nil {
		return err
	}
	m.data[idx] = v
	return nil
}

// AddAt adds v into the existing entry at (row, col): m[row,col] += v.
func (m *Dense[E]) AddAt(row, col int, v E) error {
	idx, err := m.index(row, col)
	if err != nil {
		return err
	}
	m.data[idx] = m.ring.Add(m.data[idx], v)
	return nil
}

// GetRow returns a copy of row i.
func (m *Dense[E]) GetRow(i int) ([]E, error) {
	if i < 0 || i >= m.codomain {
		return nil, denseErrorf("GetRow", i, 0, ErrOutOfRange)
	}
	row := make([]E, m.domain)
	copy(row, m.data[i*m.domain:(i+1)*m.domain])
	return row, nil
}

// SetRow overwrites row i with the given values, which must have length
// equal to m.Domain().
func (m *Dense[E]) SetRow(i int, row []E) error {
	if i < 0 || i >= m.codomain {
		return denseErrorf("SetRow", i, 0, ErrOutOfRange)
	}
	if len(row) != m.domain {
		return fmt.Errorf("Dense.SetRow(%d): %w", i, ErrDimensionMismatch)
	}
	copy(m.data[i*m.domain:(i+1)*m.domain], row)
	return nil
}

// GetColumn returns a copy of column j.
func (m *Dense[E]) GetColumn(j int) ([]E, error) {
	if j < 0 || j >= m.domain {
		return nil, denseErrorf("GetColumn", 0, j, ErrOutOfRange)
	}
	col := make([]E, m.codomain)
	for i := 0; i < m.codomain; i++ {
		col[i] = m.data[i*m.domain+j]
	}
	return col, nil
}

// SetColumn overwrites column j with the given values, which must have
// length equal to m.Codomain().
func (m *Dense[E]) SetColumn(j int, col []E) error {
	if j < 0 || j >= m.domain {
		return denseErrorf("SetColumn", 0, j, ErrOutOfRange)
	}
	if len(col) != m.codomain {
		return fmt.Errorf("Dense.SetColumn(%d): %w", j, ErrDimensionMismatch)
	}
	for i := 0; i < m.codomain; i++ {
		m.data[i*m.domain+j] = col[i]
	}
	return nil
}

// Clone returns a deep copy of m.
func (m *Dense[E]) Clone() *Dense[E] {
	cp := make([]E, len(m.data))
	copy(cp, m.data)
	return &Dense[E]{ring: m.ring, codomain: m.codomain, domain: m.domain, data: cp}
}

// EvalVector applies m to the column vector v (length m.Domain()),
// returning the image (length m.Codomain()).
func (m *Dense[E]) EvalVector(v []E) ([]E, error) {
	if len(v) != m.domain {
		return nil, fmt.Errorf("Dense.EvalVector: %w", ErrDimensionMismatch)
	}
	out := make([]E, m.codomain)
	for i := 0; i < m.codomain; i++ {
		acc := m.ring.Zero()
		base := i * m.domain
		for k := 0; k < m.domain; k++ {
			acc = m.ring.Add(acc, m.ring.Mul(m.data[base+k], v[k]))
		}
		out[i] = acc
	}
	return out, nil
}

// String renders m row by row for debugging.
func (m *Dense[E]) String() string {
	var b strings.Builder
	for i := 0; i < m.codomain; i++ {
		b.WriteByte('[')
		for j := 0; j < m.domain; j++ {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString(m.ring.String(m.data[i*m.domain+j]))
		}
		b.WriteString("]\n")
	}
	return b.String()
}
