package bjj

import (
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/twistededwards"
	"github.com/f3rmion/reshare/group"
)

// Name is the registry name of the Baby Jubjub group.
const Name = "bjj"

// ScalarSize is the length of an encoded scalar in bytes.
const ScalarSize = 32

// curveOrder is the Baby Jubjub subgroup order.
// This is distinct from the BN254 scalar field order (Fr).
var curveOrder *big.Int

func init() {
	curve := twistededwards.GetEdwardsCurve()
	curveOrder = new(big.Int).Set(&curve.Order)
}

var (
	errInvertZero = errors.New("bjj: cannot invert zero scalar")
	errNonCanon   = errors.New("bjj: scalar encoding is not canonical")
)

// Scalar is an element of the Baby Jubjub scalar field, held as a
// big.Int in [0, order).
type Scalar struct {
	v *big.Int
}

func newScalar() *Scalar {
	return &Scalar{v: new(big.Int)}
}

func scalarOf(s group.Scalar) *Scalar {
	bs, ok := s.(*Scalar)
	if !ok {
		panic(fmt.Sprintf("bjj: foreign scalar type %T", s))
	}
	return bs
}

func (s *Scalar) reduce() group.Scalar {
	s.v.Mod(s.v, curveOrder)
	return s
}

// Add sets s to a + b (mod order) and returns s.
func (s *Scalar) Add(a, b group.Scalar) group.Scalar {
	s.v.Add(scalarOf(a).v, scalarOf(b).v)
	return s.reduce()
}

// Sub sets s to a - b (mod order) and returns s.
func (s *Scalar) Sub(a, b group.Scalar) group.Scalar {
	s.v.Sub(scalarOf(a).v, scalarOf(b).v)
	return s.reduce()
}

// Mul sets s to a * b (mod order) and returns s.
func (s *Scalar) Mul(a, b group.Scalar) group.Scalar {
	s.v.Mul(scalarOf(a).v, scalarOf(b).v)
	return s.reduce()
}

// Negate sets s to -a (mod order) and returns s.
func (s *Scalar) Negate(a group.Scalar) group.Scalar {
	s.v.Neg(scalarOf(a).v)
	return s.reduce()
}

// Invert sets s to a^-1 (mod order) and returns s.
func (s *Scalar) Invert(a group.Scalar) (group.Scalar, error) {
	as := scalarOf(a)
	if as.v.Sign() == 0 {
		return nil, errInvertZero
	}
	s.v.ModInverse(as.v, curveOrder)
	return s, nil
}

// Set copies a into s and returns s.
func (s *Scalar) Set(a group.Scalar) group.Scalar {
	s.v.Set(scalarOf(a).v)
	return s
}

// Bytes returns the 32-byte big-endian encoding of s.
func (s *Scalar) Bytes() []byte {
	out := make([]byte, ScalarSize)
	s.v.FillBytes(out)
	return out
}

// SetBytes decodes a big-endian scalar of at most 32 bytes. Values that
// are not below the subgroup order are rejected.
func (s *Scalar) SetBytes(data []byte) (group.Scalar, error) {
	if len(data) > ScalarSize {
		return nil, errNonCanon
	}
	v := new(big.Int).SetBytes(data)
	if v.Cmp(curveOrder) >= 0 {
		return nil, errNonCanon
	}
	s.v = v
	return s, nil
}

// Equal reports whether s and b are the same scalar.
func (s *Scalar) Equal(b group.Scalar) bool {
	return s.v.Cmp(scalarOf(b).v) == 0
}

// IsZero reports whether s is zero.
func (s *Scalar) IsZero() bool {
	return s.v.Sign() == 0
}

// String returns the hex encoding of s.
func (s *Scalar) String() string {
	return fmt.Sprintf("%x", s.Bytes())
}

// Point is a point on the Baby Jubjub curve in affine coordinates.
// The identity element is (0, 1).
type Point struct {
	inner twistededwards.PointAffine
}

func pointOf(p group.Point) *Point {
	bp, ok := p.(*Point)
	if !ok {
		panic(fmt.Sprintf("bjj: foreign point type %T", p))
	}
	return bp
}

// Add sets p to a + b and returns p.
func (p *Point) Add(a, b group.Point) group.Point {
	p.inner.Add(&pointOf(a).inner, &pointOf(b).inner)
	return p
}

// Sub sets p to a - b and returns p.
func (p *Point) Sub(a, b group.Point) group.Point {
	var neg twistededwards.PointAffine
	neg.Neg(&pointOf(b).inner)
	p.inner.Add(&pointOf(a).inner, &neg)
	return p
}

// Negate sets p to -a and returns p.
func (p *Point) Negate(a group.Point) group.Point {
	p.inner.Neg(&pointOf(a).inner)
	return p
}

// ScalarMult sets p to s * q and returns p.
func (p *Point) ScalarMult(s group.Scalar, q group.Point) group.Point {
	p.inner.ScalarMultiplication(&pointOf(q).inner, scalarOf(s).v)
	return p
}

// Set copies a into p and returns p.
func (p *Point) Set(a group.Point) group.Point {
	p.inner.Set(&pointOf(a).inner)
	return p
}

// Bytes returns the 32-byte compressed encoding of p.
func (p *Point) Bytes() []byte {
	b := p.inner.Bytes()
	return b[:]
}

// SetBytes decodes a compressed point and returns p.
func (p *Point) SetBytes(data []byte) (group.Point, error) {
	if err := p.inner.Unmarshal(data); err != nil {
		return nil, fmt.Errorf("bjj: decoding point: %w", err)
	}
	return p, nil
}

// Equal reports whether p and b are the same point.
func (p *Point) Equal(b group.Point) bool {
	return p.inner.Equal(&pointOf(b).inner)
}

// IsIdentity reports whether p is (0, 1).
func (p *Point) IsIdentity() bool {
	return p.inner.IsZero()
}

// BJJ implements [group.Group] for the Baby Jubjub curve.
type BJJ struct{}

// Name returns "bjj".
func (g *BJJ) Name() string { return Name }

// NewScalar returns a zero scalar.
func (g *BJJ) NewScalar() group.Scalar {
	return newScalar()
}

// NewPoint returns the identity point.
func (g *BJJ) NewPoint() group.Point {
	var p Point
	p.inner.X.SetZero()
	p.inner.Y.SetOne()
	return &p
}

// Generator returns the standard base point.
func (g *BJJ) Generator() group.Point {
	var p Point
	p.inner = twistededwards.GetEdwardsCurve().Base
	return &p
}

// RandomScalar reads 64 bytes from r and reduces them modulo the
// subgroup order, which keeps the modulo bias negligible.
func (g *BJJ) RandomScalar(r io.Reader) (group.Scalar, error) {
	var buf [2 * ScalarSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, fmt.Errorf("bjj: reading randomness: %w", err)
	}
	s := newScalar()
	s.v.SetBytes(buf[:])
	return s.reduce(), nil
}

// Order returns the subgroup order as big-endian bytes.
func (g *BJJ) Order() []byte {
	return curveOrder.Bytes()
}
