// Package comodules computes free resolutions of comodules over graded
// coalgebras.
//
// A resolution is built row by row: row 0 injects the comodule itself
// into its cofree envelope; each later row injects the cokernel of the
// row before it, restricted to the grades the caller asks for. The
// work is organized under these subpackages:
//
//	ring/       — coefficient rings: GF(2), GF(p), and the k[t] valuation ring
//	matrix/     — generic dense matrix over a ring
//	f2/         — bit-packed GF(2) matrices, row reduction, kernels
//	snf/        — Smith Normal Form over a valuation ring
//	grading/   — grade arithmetic and graded layouts (Uni, Bi, and beyond)
//	graded/     — grade-indexed tensor and map bookkeeping shared across rows
//	abelian/    — cokernel and section computation against a MatrixOps backend
//	comodule/   — the coalgebra/comodule data model, cofree construction, injection
//	resolution/ — the row-by-row resolution loop, concurrent per grade
//	page/       — extraction of a resolution's generators and structure lines
//	builder/    — named-table construction of a Coalgebra/Comodule from basis and
//	              coaction tables, with YAML fixture loading for tests
//
// Each ring/matrix pairing implements abelian.MatrixOps so the
// resolution loop never special-cases which coefficients it is
// working over; GF(2) and k[t] share every package above abelian.
package comodules
