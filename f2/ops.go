package f2

import "fmt"

// Compose returns a∘b: a.Domain() must equal b.Codomain(), and the
// result has domain = b.Domain(), codomain = a.Codomain(). Each entry
// walks the set bits of a's row word by word and reads the matching
// bit of b's column per set bit.
func Compose(a, b *Matrix) (*Matrix, error) {
	if a.domain != b.codomain {
		return nil, fmt.Errorf("f2.Compose: domain/codomain mismatch (%d != %d)", a.domain, b.codomain)
	}
	out := New(a.codomain, b.domain)
	for i := 0; i < a.codomain; i++ {
		aRow := a.GetRow(i)
		for j := 0; j < b.domain; j++ {
			var acc uint64
			for k := 0; k < a.wordsPerRow; k++ {
				word := aRow[k]
				if word == 0 {
					continue
				}
				for bit := 0; bit < 64; bit++ {
					col := k*64 + bit
					if col >= a.domain {
						break
					}
					if word&(1<<uint(bit)) == 0 {
						continue
					}
					acc ^= uint64(b.Get(col, j))
				}
			}
			if acc&1 == 1 {
				out.Set(i, j, 1)
			}
		}
	}
	return out, nil
}

// Transpose returns the transpose of m.
func Transpose(m *Matrix) *Matrix {
	out := New(m.domain, m.codomain)
	for i := 0; i < m.codomain; i++ {
		for j := 0; j < m.domain; j++ {
			if m.Get(i, j) == 1 {
				out.Set(j, i, 1)
			}
		}
	}
	return out
}

// VStack stacks other below m; both must share the same domain. Runs in
// O(rows) since whole rows are appended, no re-packing needed.
func VStack(m, other *Matrix) (*Matrix, error) {
	if m.domain != other.domain {
		return nil, fmt.Errorf("f2.VStack: domain mismatch (%d != %d)", m.domain, other.domain)
	}
	out := New(m.codomain+other.codomain, m.domain)
	copy(out.data, m.data)
	copy(out.data[len(m.data):], other.data)
	return out, nil
}

// BlockSum embeds m in the top-left and other in the bottom-right of a
// zero block, producing a (m.codomain+other.codomain) x
// (m.domain+other.domain) matrix. other's rows are shifted by
// m.domain bits, which in general does not land on a word boundary; each
// source word is split with a shift-and-merge across the destination
// word boundary so no bit is silently dropped at the boundary.
func BlockSum(m, other *Matrix) *Matrix {
	newDomain := m.domain + other.domain
	newCodomain := m.codomain + other.codomain
	out := New(newCodomain, newDomain)

	for row := 0; row < m.codomain; row++ {
		src := m.GetRow(row)
		dst := out.GetRow(row)
		copy(dst[:m.wordsPerRow], src)
	}

	wordOff := m.domain >> 6
	bitOff := uint(m.domain & 63)

	for row := 0; row < other.codomain; row++ {
		src := other.GetRow(row)
		dst := out.GetRow(m.codomain + row)

		if bitOff == 0 {
			copy(dst[wordOff:wordOff+other.wordsPerRow], src)
			continue
		}

		invShift := 64 - bitOff
		for w := 0; w < other.wordsPerRow; w++ {
			val := src[w]
			dst[wordOff+w] |= val << bitOff
			if wordOff+w+1 < len(dst) {
				dst[wordOff+w+1] |= val >> invShift
			}
		}
	}

	return out
}

// ExtendOneRow returns a copy of m with one extra zero row appended at
// the bottom.
func ExtendOneRow(m *Matrix) *Matrix {
	out := New(m.codomain+1, m.domain)
	copy(out.data, m.data)
	return out
}
