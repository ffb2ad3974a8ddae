// Package matrix provides a generic, row-major dense matrix over any
// commutative ring (see package ring), plus the linear-algebra primitives
// the resolution engine composes on top of it: composition, transpose,
// row/column swaps, vstack, block-diagonal sum, and evaluation against a
// vector. Bit-packed GF(2) matrices live in the separate f2 package (their
// word-level XOR primitive does not generalize to an arbitrary ring, so
// this package never tries to share a backend with it).
package matrix
