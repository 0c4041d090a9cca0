package group

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Scalar represents an element of the scalar field associated with a
// cryptographic group. Scalars are integers modulo the group order.
//
// All arithmetic methods use a mutable receiver pattern: they modify
// the receiver, store the result in it, and return it. Code in this
// module always writes into a fresh receiver obtained from
// [Group.NewScalar], so a Scalar that has been handed to a caller is
// never modified again and can be shared freely.
type Scalar interface {
	// Add sets the receiver to a+b and returns it.
	Add(a, b Scalar) Scalar
	// Sub sets the receiver to a-b and returns it.
	Sub(a, b Scalar) Scalar
	// Mul sets the receiver to a*b and returns it.
	Mul(a, b Scalar) Scalar
	// Negate sets the receiver to -a and returns it.
	Negate(a Scalar) Scalar
	// Invert sets the receiver to a^{-1} and returns it.
	// Returns an error if a is zero.
	Invert(a Scalar) (Scalar, error)
	// Set sets the receiver to a and returns it.
	Set(a Scalar) Scalar
	// Bytes returns the canonical 32-byte big-endian encoding.
	Bytes() []byte
	// SetBytes sets the receiver from a big-endian byte slice and returns it.
	// Returns an error if the data does not encode a canonical scalar.
	SetBytes(data []byte) (Scalar, error)
	// Equal reports whether the receiver equals b.
	Equal(b Scalar) bool
	// IsZero reports whether the receiver is the additive identity.
	IsZero() bool
}

// Point represents an element of a cryptographic group, typically a point
// on an elliptic curve. Points are only needed for share commitments;
// interpolation works on scalars alone.
type Point interface {
	// Add sets the receiver to a+b and returns it.
	Add(a, b Point) Point
	// Sub sets the receiver to a-b and returns it.
	Sub(a, b Point) Point
	// Negate sets the receiver to -a and returns it.
	Negate(a Point) Point
	// ScalarMult sets the receiver to s*p and returns it.
	ScalarMult(s Scalar, p Point) Point
	// Set sets the receiver to a and returns it.
	Set(a Point) Point
	// Bytes returns the canonical byte representation of the point.
	Bytes() []byte
	// SetBytes sets the receiver from a byte slice and returns it.
	// Returns an error if the data is not a valid encoding.
	SetBytes(data []byte) (Point, error)
	// Equal reports whether the receiver equals b.
	Equal(b Point) bool
	// IsIdentity reports whether the receiver is the identity element.
	IsIdentity() bool
}

// Group is the scalar field plus its prime-order group. It acts as a
// factory for scalars and points.
//
// Example usage:
//
//	g := &bjj.BJJ{}
//	r, _ := g.RandomScalar(rand.Reader)
//	p := g.NewPoint().ScalarMult(r, g.Generator())
type Group interface {
	// Name returns the registry name of the group, e.g. "bjj".
	Name() string
	// NewScalar returns a new zero scalar.
	NewScalar() Scalar
	// NewPoint returns a new identity point.
	NewPoint() Point
	// Generator returns the group's base point.
	Generator() Point
	// RandomScalar returns a uniformly random scalar read from r.
	RandomScalar(r io.Reader) (Scalar, error)
	// Order returns the group order as a big-endian byte slice.
	Order() []byte
}

// ScalarFromInt embeds the non-negative integer n into the scalar field
// of g. It panics if n is negative.
func ScalarFromInt(g Group, n int) Scalar {
	if n < 0 {
		panic(fmt.Sprintf("group: cannot embed negative integer %d", n))
	}
	buf := make([]byte, 32)
	binary.BigEndian.PutUint64(buf[24:], uint64(n))
	s, err := g.NewScalar().SetBytes(buf)
	if err != nil {
		// every backend accepts values below its order
		panic(fmt.Sprintf("group: embedding %d: %v", n, err))
	}
	return s
}

// One returns the multiplicative identity of g.
func One(g Group) Scalar {
	return ScalarFromInt(g, 1)
}
