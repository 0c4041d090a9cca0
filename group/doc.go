// Package group defines the abstract field and group interfaces that the
// rest of the module is written against.
//
//   - [Scalar]: elements of the scalar field (integers modulo the group order)
//   - [Point]: elements of the group, used for Feldman commitments
//   - [Group]: factory for scalars and points
//
// Secret sharing, interpolation and share recovery only ever need
// [Scalar] arithmetic. The capability set they rely on is:
//
//	zero         g.NewScalar()
//	one          group.One(g)
//	from(n)      group.ScalarFromInt(g, n)
//	a+b a-b a*b  g.NewScalar().Add(a, b) and friends
//	1/a          g.NewScalar().Invert(a)
//	random       g.RandomScalar(r)
//	a == b       a.Equal(b)
//
// Arithmetic uses a mutable receiver pattern. Operations set the receiver
// and return it, so results are written into fresh receivers:
//
//	// a + b*c
//	result := g.NewScalar().Mul(b, c)
//	result = g.NewScalar().Add(a, result)
//
// Two implementations ship with the module: Baby Jubjub in package bjj
// and secp256k1 in package secp256k1.
package group
