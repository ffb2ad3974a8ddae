package snf_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vossetje/comodules/matrix"
	"github.com/vossetje/comodules/ring"
	"github.com/vossetje/comodules/snf"
)

func TestIdentitySNFIsIdentity(t *testing.T) {
	kt := ring.NewKtRing(ring.NewFpRing(2))
	id, err := matrix.Identity[ring.KtElem](kt, 2)
	require.NoError(t, err)

	res, err := snf.Full[ring.KtElem](kt, id)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			sv, _ := res.S.At(i, j)
			uv, _ := res.U.At(i, j)
			vv, _ := res.V.At(i, j)
			want := kt.Zero()
			if i == j {
				want = kt.One()
			}
			require.Equal(t, want, sv)
			require.Equal(t, want, uv)
			require.Equal(t, want, vv)
		}
	}
}

func TestDiagonalSNFReordersAscending(t *testing.T) {
	kt := ring.NewKtRing(ring.NewFpRing(2))
	a, err := matrix.NewDense[ring.KtElem](kt, 2, 2)
	require.NoError(t, err)

	t2, err := kt.Parse("t^2")
	require.NoError(t, err)
	t1, err := kt.Parse("t")
	require.NoError(t, err)
	require.NoError(t, a.Set(0, 0, t2))
	require.NoError(t, a.Set(1, 1, t1))

	res, err := snf.Full[ring.KtElem](kt, a)
	require.NoError(t, err)

	d0, err := res.S.At(0, 0)
	require.NoError(t, err)
	d1, err := res.S.At(1, 1)
	require.NoError(t, err)

	require.Equal(t, 1, kt.Valuation(d0))
	require.Equal(t, 2, kt.Valuation(d1))
	require.True(t, kt.Divides(d0, d1))

	// Off-diagonal entries are zero.
	off1, _ := res.S.At(0, 1)
	off2, _ := res.S.At(1, 0)
	require.True(t, kt.IsZero(off1))
	require.True(t, kt.IsZero(off2))

	// Reconstruction: U*A*V == S.
	ua, err := matrix.Compose[ring.KtElem](res.U, a)
	require.NoError(t, err)
	uav, err := matrix.Compose[ring.KtElem](ua, res.V)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			got, _ := uav.At(i, j)
			want, _ := res.S.At(i, j)
			require.Equal(t, want, got)
		}
	}

	// U*UInv == I, V*VInv == I.
	uui, err := matrix.Compose[ring.KtElem](res.U, res.UInv)
	require.NoError(t, err)
	vvi, err := matrix.Compose[ring.KtElem](res.V, res.VInv)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			want := kt.Zero()
			if i == j {
				want = kt.One()
			}
			got, _ := uui.At(i, j)
			require.Equal(t, want, got)
			got, _ = vvi.At(i, j)
			require.Equal(t, want, got)
		}
	}
}
