// Package polynomial reconstructs values of a hidden polynomial over a
// scalar field from a subset of its evaluations.
//
// Participants are numbered from 0. Participant i holds the evaluation
// at point i+1 (see [Point]), and point 0 is reserved for the secret:
//
//	secret := polynomial.Secret(g, shares)            // f(0)
//	s2 := polynomial.InterpolateAt(g, shares, 2)      // f(3)
//
// [SampleZeroAt] samples an implicit polynomial pinned to zero at one
// participant. It never builds coefficients; consumers evaluate it
// elsewhere through [InterpolateAt].
//
// Contract violations panic: mismatched lengths, no points, coinciding
// points, negative indices. They indicate a bug in the caller. Errors are
// returned only when the randomness source fails.
//
// All functions are pure and safe for concurrent use.
package polynomial
