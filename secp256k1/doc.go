// Package secp256k1 provides a secp256k1 implementation of [group.Group]
// on top of the decred secp256k1 package.
//
// Scalars wrap ModNScalar and points wrap JacobianPoint, normalized to
// affine coordinates after every operation so that equality is a plain
// coordinate comparison.
package secp256k1
