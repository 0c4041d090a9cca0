// Package bjj provides a Baby Jubjub implementation of [group.Group].
//
// Baby Jubjub is a twisted Edwards curve defined over the scalar field of
// BN254 (alt_bn128):
//
//	a*x^2 + y^2 = 1 + d*x^2*y^2,  a = 168700, d = 168696
//
// Scalars live modulo the prime subgroup order
//
//	2736030358979909402780800718157159386076813972158567259200215660948447373041
//
// Curve arithmetic comes from gnark-crypto; scalar arithmetic is big.Int
// reduced modulo the subgroup order after every operation.
package bjj
