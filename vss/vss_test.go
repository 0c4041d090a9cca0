package vss

import (
	"crypto/rand"
	"testing"

	"github.com/f3rmion/reshare/bjj"
	"github.com/f3rmion/reshare/group"
	"github.com/f3rmion/reshare/polynomial"
	"github.com/f3rmion/reshare/secp256k1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDealAndVerify(t *testing.T) {
	for _, g := range []group.Group{&bjj.BJJ{}, &secp256k1.Secp256k1{}} {
		t.Run(g.Name(), func(t *testing.T) {
			secret, err := g.RandomScalar(rand.Reader)
			require.NoError(t, err)

			d, err := Deal(g, rand.Reader, 3, 5, secret)
			require.NoError(t, err)
			require.Len(t, d.Shares, 5)
			require.Len(t, d.Commitments, 3)

			for _, sh := range d.Shares {
				assert.NoError(t, Verify(g, sh, d.Commitments))
			}

			secretPoint := g.NewPoint().ScalarMult(secret, g.Generator())
			assert.True(t, d.Commitments[0].Equal(secretPoint))
			assert.True(t, polynomial.Secret(g, d.Shares[2:]).Equal(secret))
		})
	}
}

func TestVerifyRejectsTampering(t *testing.T) {
	g := &bjj.BJJ{}
	secret, _ := g.RandomScalar(rand.Reader)
	d, err := Deal(g, rand.Reader, 2, 3, secret)
	require.NoError(t, err)

	tampered := d.Shares[1]
	tampered.Value = g.NewScalar().Add(tampered.Value, group.One(g))
	assert.ErrorIs(t, Verify(g, tampered, d.Commitments), ErrInvalidShare)

	moved := d.Shares[1]
	moved.Index = 2
	assert.ErrorIs(t, Verify(g, moved, d.Commitments), ErrInvalidShare)

	assert.ErrorIs(t, Verify(g, d.Shares[0], nil), ErrInvalidShare)
}

func TestDealThresholdOne(t *testing.T) {
	g := &secp256k1.Secp256k1{}
	secret, _ := g.RandomScalar(rand.Reader)
	d, err := Deal(g, rand.Reader, 1, 4, secret)
	require.NoError(t, err)
	for _, sh := range d.Shares {
		assert.True(t, sh.Value.Equal(secret))
	}
}

func TestDealInvalidParams(t *testing.T) {
	g := &bjj.BJJ{}
	_, err := Deal(g, rand.Reader, 0, 3, g.NewScalar())
	assert.ErrorIs(t, err, ErrInvalidParams)
	_, err = Deal(g, rand.Reader, 4, 3, g.NewScalar())
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestAddCommitments(t *testing.T) {
	g := &bjj.BJJ{}
	a, _ := g.RandomScalar(rand.Reader)
	b, _ := g.RandomScalar(rand.Reader)
	da, err := Deal(g, rand.Reader, 2, 3, a)
	require.NoError(t, err)
	db, err := Deal(g, rand.Reader, 3, 3, b)
	require.NoError(t, err)

	sum := Add(g, da.Commitments, db.Commitments)
	require.Len(t, sum, 3)
	for i := range da.Shares {
		share := polynomial.Share{
			Index: i,
			Value: g.NewScalar().Add(da.Shares[i].Value, db.Shares[i].Value),
		}
		assert.NoError(t, Verify(g, share, sum))
	}
}
