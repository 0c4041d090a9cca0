package bjj

import (
	"crypto/rand"
	"io"
	"math/big"
	"testing"

	"github.com/f3rmion/reshare/group"
)

func TestScalar(t *testing.T) {
	g := &BJJ{}

	t.Run("AddSub", func(t *testing.T) {
		a, _ := g.RandomScalar(rand.Reader)
		b, _ := g.RandomScalar(rand.Reader)

		sum := g.NewScalar().Add(a, b)
		diff := g.NewScalar().Sub(sum, b)

		if !diff.Equal(a) {
			t.Error("(a+b)-b != a")
		}
	})

	t.Run("MulInvert", func(t *testing.T) {
		a, _ := g.RandomScalar(rand.Reader)
		aInv, err := g.NewScalar().Invert(a)
		if err != nil {
			t.Fatal(err)
		}

		if !g.NewScalar().Mul(a, aInv).Equal(group.One(g)) {
			t.Error("a*a^-1 != 1")
		}
	})

	t.Run("InvertZeroFails", func(t *testing.T) {
		if _, err := g.NewScalar().Invert(g.NewScalar()); err == nil {
			t.Error("expected error inverting zero")
		}
	})

	t.Run("Negate", func(t *testing.T) {
		a, _ := g.RandomScalar(rand.Reader)
		negA := g.NewScalar().Negate(a)

		if !g.NewScalar().Add(a, negA).IsZero() {
			t.Error("a + (-a) != 0")
		}
	})

	t.Run("BytesRoundtrip", func(t *testing.T) {
		a, _ := g.RandomScalar(rand.Reader)

		enc := a.Bytes()
		if len(enc) != ScalarSize {
			t.Fatalf("encoding is %d bytes", len(enc))
		}
		restored, err := g.NewScalar().SetBytes(enc)
		if err != nil {
			t.Fatal(err)
		}
		if !restored.Equal(a) {
			t.Error("scalar bytes roundtrip failed")
		}
	})

	t.Run("SetBytesRejectsOrder", func(t *testing.T) {
		if _, err := g.NewScalar().SetBytes(g.Order()); err == nil {
			t.Error("order itself must not decode")
		}
		if _, err := g.NewScalar().SetBytes(make([]byte, 33)); err == nil {
			t.Error("33-byte input must not decode")
		}
	})

	t.Run("ScalarFromInt", func(t *testing.T) {
		two := group.ScalarFromInt(g, 2)
		sum := g.NewScalar().Add(group.One(g), group.One(g))
		if !two.Equal(sum) {
			t.Error("2 != 1+1")
		}
		large := group.ScalarFromInt(g, 1<<40)
		want := new(big.Int).Lsh(big.NewInt(1), 40)
		if scalarOf(large).v.Cmp(want) != 0 {
			t.Error("large integers must embed exactly")
		}
	})

	t.Run("NewScalarIsZero", func(t *testing.T) {
		if !g.NewScalar().IsZero() {
			t.Error("new scalar should be zero")
		}
	})

	t.Run("Equal", func(t *testing.T) {
		var a group.Scalar
		for {
			// a == -a only for zero
			a, _ = g.RandomScalar(rand.Reader)
			if !a.IsZero() {
				break
			}
		}
		if !a.Equal(g.NewScalar().Set(a)) {
			t.Error("copied scalar should equal original")
		}
		if a.Equal(g.NewScalar().Negate(a)) {
			t.Error("a should not equal -a")
		}
	})
}

func TestRandomScalarShortRead(t *testing.T) {
	g := &BJJ{}
	if _, err := g.RandomScalar(&shortReader{}); err == nil {
		t.Error("expected error from exhausted reader")
	}
}

type shortReader struct{}

func (shortReader) Read(p []byte) (int, error) {
	return 0, io.EOF
}

func TestPoint(t *testing.T) {
	g := &BJJ{}

	t.Run("AddSub", func(t *testing.T) {
		s1, _ := g.RandomScalar(rand.Reader)
		s2, _ := g.RandomScalar(rand.Reader)
		P := g.NewPoint().ScalarMult(s1, g.Generator())
		Q := g.NewPoint().ScalarMult(s2, g.Generator())

		sum := g.NewPoint().Add(P, Q)
		diff := g.NewPoint().Sub(sum, Q)

		if !diff.Equal(P) {
			t.Error("(P+Q)-Q != P")
		}
	})

	t.Run("Distributive", func(t *testing.T) {
		a, _ := g.RandomScalar(rand.Reader)
		b, _ := g.RandomScalar(rand.Reader)
		lhs := g.NewPoint().ScalarMult(g.NewScalar().Add(a, b), g.Generator())
		rhs := g.NewPoint().Add(
			g.NewPoint().ScalarMult(a, g.Generator()),
			g.NewPoint().ScalarMult(b, g.Generator()),
		)
		if !lhs.Equal(rhs) {
			t.Error("(a+b)G != aG + bG")
		}
	})

	t.Run("Negate", func(t *testing.T) {
		s, _ := g.RandomScalar(rand.Reader)
		P := g.NewPoint().ScalarMult(s, g.Generator())

		if !g.NewPoint().Add(P, g.NewPoint().Negate(P)).IsIdentity() {
			t.Error("P + (-P) != identity")
		}
	})

	t.Run("BytesRoundtrip", func(t *testing.T) {
		s, _ := g.RandomScalar(rand.Reader)
		P := g.NewPoint().ScalarMult(s, g.Generator())

		restored, err := g.NewPoint().SetBytes(P.Bytes())
		if err != nil {
			t.Fatal(err)
		}
		if !restored.Equal(P) {
			t.Error("point bytes roundtrip failed")
		}
	})

	t.Run("IsIdentity", func(t *testing.T) {
		if !g.NewPoint().IsIdentity() {
			t.Error("new point should be identity")
		}
		if g.Generator().IsIdentity() {
			t.Error("generator should not be identity")
		}
	})
}
