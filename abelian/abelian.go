// Package abelian implements the kernel/cokernel/compose/kernel-
// destroyer operations the graded layer needs, parameterized over a
// matrix backend rather than a single virtual matrix interface: the
// GF(2) and k[t] backends have incompatible data layouts and inner
// loops, so collapsing them into one polymorphic type would force
// either to pay for the other's representation.
package abelian

// Generator carries the abelian-category metadata a cokernel needs to
// track per basis element: whether it is free or torsion, and if
// torsion, its annihilator exponent. GF(2) generators are always free
// (Torsion is unused there).
type Generator struct {
	Torsion int
	Free    bool
}

// MatrixOps is the shared trait implemented once per backend (F2Ops for
// *f2.Matrix, KtOps for *matrix.Dense[ring.KtElem]). Two monomorphizations
// are compiled; there is deliberately no single interface value spanning
// both at runtime.
type MatrixOps[M any] interface {
	Zero(codomain, domain int) (M, error)
	Identity(n int) (M, error)
	Codomain(m M) int
	Domain(m M) int
	Compose(a, b M) (M, error)
	VStack(a, b M) (M, error)
	BlockSum(a, b M) M

	// Kernel returns a basis for the null space of m as a matrix whose
	// columns are basis vectors (Codomain = m.Domain(), Domain =
	// nullity), plus one Generator per basis vector (all free for F2).
	Kernel(m M) (M, []Generator, error)

	// Cokernel returns (to, repr, gens): to: codomain -> cokernel,
	// repr: cokernel -> codomain a section with to∘repr = identity, and
	// the generator metadata of the cokernel module. codomainGens
	// supplies the torsion/free status of each codomain basis element.
	Cokernel(m M, codomainGens []Generator) (to M, repr M, gens []Generator, err error)

	// KernelDestroyers iterates a kernel one generator at a time,
	// returning the destroyer column indices in discovery order (a
	// cheaper incremental alternative to Kernel for callers, such as
	// the cofree injection step, that want one generator at a time
	// rather than the whole basis at once).
	KernelDestroyers(m M) ([]int, error)
}
