package abelian

import "github.com/vossetje/comodules/f2"

// F2Ops implements MatrixOps[*f2.Matrix]. Every generator it produces is
// free (GF(2) has no torsion concept).
type F2Ops struct{}

var _ MatrixOps[*f2.Matrix] = F2Ops{}

func (F2Ops) Zero(codomain, domain int) (*f2.Matrix, error) {
	return f2.New(codomain, domain), nil
}

func (F2Ops) Identity(n int) (*f2.Matrix, error) {
	m := f2.New(n, n)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return m, nil
}

func (F2Ops) Codomain(m *f2.Matrix) int { return m.Codomain() }
func (F2Ops) Domain(m *f2.Matrix) int   { return m.Domain() }

func (F2Ops) Compose(a, b *f2.Matrix) (*f2.Matrix, error) { return f2.Compose(a, b) }
func (F2Ops) VStack(a, b *f2.Matrix) (*f2.Matrix, error)  { return f2.VStack(a, b) }
func (F2Ops) BlockSum(a, b *f2.Matrix) *f2.Matrix         { return f2.BlockSum(a, b) }

// Kernel echelonizes a clone of m, takes its RREF kernel, and
// re-echelonizes the kernel basis. The basis vectors are the kernel
// matrix's columns, so the re-echelonization runs on its transpose
// (row reduction there is column reduction here and keeps the span).
func (F2Ops) Kernel(m *f2.Matrix) (*f2.Matrix, []Generator, error) {
	clone := m.Clone()
	clone.Echelonize()
	kernel := clone.RREFKernel()
	kt := f2.Transpose(kernel)
	kt.Echelonize()
	kernel = f2.Transpose(kt)

	gens := make([]Generator, kernel.Domain())
	for i := range gens {
		gens[i] = Generator{Free: true}
	}
	return kernel, gens, nil
}

// Cokernel transposes m and takes the kernel of the transpose: each
// kernel basis vector k satisfies kᵀ·m = 0, so the transposed basis is
// the quotient to: Y -> Q (to∘m = 0). repr, the section Q -> Y, places
// a 1 at each free coordinate of the transpose's echelon form; to∘repr
// is the identity because each kernel basis vector has a 1 at its own
// free coordinate and 0 at every other basis vector's free coordinate.
func (F2Ops) Cokernel(m *f2.Matrix, _ []Generator) (*f2.Matrix, *f2.Matrix, []Generator, error) {
	mt := f2.Transpose(m)
	mt.Echelonize()
	to := f2.Transpose(mt.RREFKernel())

	pivots := mt.Pivots()
	freeVars := make([]int, 0, len(pivots))
	for col, row := range pivots {
		if row < 0 {
			freeVars = append(freeVars, col)
		}
	}

	repr := f2.New(m.Codomain(), len(freeVars))
	for i, col := range freeVars {
		repr.Set(col, i, 1)
	}

	gens := make([]Generator, len(freeVars))
	for i := range gens {
		gens[i] = Generator{Free: true}
	}
	return to, repr, gens, nil
}

func (F2Ops) KernelDestroyers(m *f2.Matrix) ([]int, error) {
	return m.KernelDestroyers(), nil
}
