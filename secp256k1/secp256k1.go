package secp256k1

import (
	"errors"
	"fmt"
	"io"

	dcrec "github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/f3rmion/reshare/group"
)

// Name is the registry name of the secp256k1 group.
const Name = "secp256k1"

const (
	// ScalarSize is the length of an encoded scalar in bytes.
	ScalarSize = 32
	// PointSize is the length of an encoded point in bytes. The identity
	// is encoded as 33 zero bytes.
	PointSize = 33
)

var (
	errInvertZero = errors.New("secp256k1: cannot invert zero scalar")
	errNonCanon   = errors.New("secp256k1: scalar encoding is not canonical")
)

// Scalar is an integer modulo the secp256k1 group order.
type Scalar struct {
	v dcrec.ModNScalar
}

func scalarOf(s group.Scalar) *Scalar {
	ks, ok := s.(*Scalar)
	if !ok {
		panic(fmt.Sprintf("secp256k1: foreign scalar type %T", s))
	}
	return ks
}

// Add sets s to a + b and returns s.
func (s *Scalar) Add(a, b group.Scalar) group.Scalar {
	s.v.Add2(&scalarOf(a).v, &scalarOf(b).v)
	return s
}

// Sub sets s to a - b and returns s.
func (s *Scalar) Sub(a, b group.Scalar) group.Scalar {
	var negB dcrec.ModNScalar
	negB.NegateVal(&scalarOf(b).v)
	s.v.Add2(&scalarOf(a).v, &negB)
	return s
}

// Mul sets s to a * b and returns s.
func (s *Scalar) Mul(a, b group.Scalar) group.Scalar {
	s.v.Mul2(&scalarOf(a).v, &scalarOf(b).v)
	return s
}

// Negate sets s to -a and returns s.
func (s *Scalar) Negate(a group.Scalar) group.Scalar {
	s.v.NegateVal(&scalarOf(a).v)
	return s
}

// Invert sets s to a^-1 and returns s.
func (s *Scalar) Invert(a group.Scalar) (group.Scalar, error) {
	as := scalarOf(a)
	if as.v.IsZero() {
		return nil, errInvertZero
	}
	s.v.InverseValNonConst(&as.v)
	return s, nil
}

// Set copies a into s and returns s.
func (s *Scalar) Set(a group.Scalar) group.Scalar {
	s.v.Set(&scalarOf(a).v)
	return s
}

// Bytes returns the 32-byte big-endian encoding of s.
func (s *Scalar) Bytes() []byte {
	b := s.v.Bytes()
	return b[:]
}

// SetBytes decodes a big-endian scalar of at most 32 bytes. Values that
// are not below the group order are rejected.
func (s *Scalar) SetBytes(data []byte) (group.Scalar, error) {
	if len(data) > ScalarSize {
		return nil, errNonCanon
	}
	var buf [ScalarSize]byte
	copy(buf[ScalarSize-len(data):], data)
	var v dcrec.ModNScalar
	if overflow := v.SetBytes(&buf); overflow != 0 {
		return nil, errNonCanon
	}
	s.v = v
	return s, nil
}

// Equal reports whether s and b are the same scalar.
func (s *Scalar) Equal(b group.Scalar) bool {
	return s.v.Equals(&scalarOf(b).v)
}

// IsZero reports whether s is zero.
func (s *Scalar) IsZero() bool {
	return s.v.IsZero()
}

// String returns the hex encoding of s.
func (s *Scalar) String() string {
	return fmt.Sprintf("%x", s.Bytes())
}

// Point is a secp256k1 curve point. It is kept in affine form (Z = 1);
// the identity is X = Y = 0.
type Point struct {
	j dcrec.JacobianPoint
}

func pointOf(p group.Point) *Point {
	kp, ok := p.(*Point)
	if !ok {
		panic(fmt.Sprintf("secp256k1: foreign point type %T", p))
	}
	return kp
}

func (p *Point) normalize() group.Point {
	p.j.ToAffine()
	return p
}

// Add sets p to a + b and returns p.
func (p *Point) Add(a, b group.Point) group.Point {
	var r dcrec.JacobianPoint
	dcrec.AddNonConst(&pointOf(a).j, &pointOf(b).j, &r)
	p.j.Set(&r)
	return p.normalize()
}

// Sub sets p to a - b and returns p.
func (p *Point) Sub(a, b group.Point) group.Point {
	var neg Point
	neg.Negate(b)
	return p.Add(a, &neg)
}

// Negate sets p to -a and returns p.
func (p *Point) Negate(a group.Point) group.Point {
	p.j.Set(&pointOf(a).j)
	p.j.Y.Negate(1).Normalize()
	return p
}

// ScalarMult sets p to s * q and returns p.
func (p *Point) ScalarMult(s group.Scalar, q group.Point) group.Point {
	var r dcrec.JacobianPoint
	dcrec.ScalarMultNonConst(&scalarOf(s).v, &pointOf(q).j, &r)
	p.j.Set(&r)
	return p.normalize()
}

// Set copies a into p and returns p.
func (p *Point) Set(a group.Point) group.Point {
	p.j.Set(&pointOf(a).j)
	return p
}

// Bytes returns the 33-byte SEC1 compressed encoding of p.
func (p *Point) Bytes() []byte {
	if p.IsIdentity() {
		return make([]byte, PointSize)
	}
	return dcrec.NewPublicKey(&p.j.X, &p.j.Y).SerializeCompressed()
}

// SetBytes decodes a compressed point and returns p.
func (p *Point) SetBytes(data []byte) (group.Point, error) {
	if len(data) == PointSize && isZeroBytes(data) {
		p.j = dcrec.JacobianPoint{}
		return p.normalize(), nil
	}
	pub, err := dcrec.ParsePubKey(data)
	if err != nil {
		return nil, fmt.Errorf("secp256k1: decoding point: %w", err)
	}
	pub.AsJacobian(&p.j)
	return p, nil
}

// Equal reports whether p and b are the same point.
func (p *Point) Equal(b group.Point) bool {
	bp := pointOf(b)
	return p.j.X.Equals(&bp.j.X) && p.j.Y.Equals(&bp.j.Y)
}

// IsIdentity reports whether p is the point at infinity.
func (p *Point) IsIdentity() bool {
	return p.j.X.IsZero() && p.j.Y.IsZero()
}

func isZeroBytes(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}

// Secp256k1 implements [group.Group] for secp256k1.
type Secp256k1 struct{}

// Name returns "secp256k1".
func (g *Secp256k1) Name() string { return Name }

// NewScalar returns a zero scalar.
func (g *Secp256k1) NewScalar() group.Scalar {
	return new(Scalar)
}

// NewPoint returns the identity point.
func (g *Secp256k1) NewPoint() group.Point {
	p := new(Point)
	return p.normalize()
}

// Generator returns the standard base point G.
func (g *Secp256k1) Generator() group.Point {
	var one dcrec.ModNScalar
	one.SetInt(1)
	p := new(Point)
	dcrec.ScalarBaseMultNonConst(&one, &p.j)
	return p.normalize()
}

// RandomScalar draws 32-byte candidates from r until one falls below the
// group order.
func (g *Secp256k1) RandomScalar(r io.Reader) (group.Scalar, error) {
	var buf [ScalarSize]byte
	for {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return nil, fmt.Errorf("secp256k1: reading randomness: %w", err)
		}
		s := new(Scalar)
		if overflow := s.v.SetBytes(&buf); overflow == 0 {
			return s, nil
		}
	}
}

// Order returns the group order as big-endian bytes.
func (g *Secp256k1) Order() []byte {
	return dcrec.Params().N.Bytes()
}
