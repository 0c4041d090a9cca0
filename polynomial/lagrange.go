package polynomial

import (
	"fmt"

	"github.com/f3rmion/reshare/group"
)

// Interpolate evaluates at target the unique polynomial of degree
// len(points)-1 passing through (points[i], values[i]):
//
//	P(target) = Σ_i values[i] · Π_{j≠i} (points[j] − target) / (points[j] − points[i])
//
// A zero value contributes nothing and its basis term is skipped.
//
// Interpolate panics if points and values differ in length, if they are
// empty, or if two points coincide.
func Interpolate(g group.Group, points, values []group.Scalar, target group.Scalar) group.Scalar {
	if len(points) != len(values) {
		panic(fmt.Sprintf("polynomial: %d points but %d values", len(points), len(values)))
	}
	mustBeDistinct(points)

	result := g.NewScalar()
	for i := range points {
		if values[i].IsZero() {
			continue
		}
		term := g.NewScalar().Mul(basis(g, points, i, target), values[i])
		result = g.NewScalar().Add(result, term)
	}
	return result
}

// Coefficients returns the Lagrange basis weights of points at target,
// so that P(target) = Σ_i coeffs[i]·P(points[i]) for every polynomial P
// of degree below len(points). The weights always sum to one.
func Coefficients(g group.Group, points []group.Scalar, target group.Scalar) []group.Scalar {
	mustBeDistinct(points)

	coeffs := make([]group.Scalar, len(points))
	for i := range points {
		coeffs[i] = basis(g, points, i, target)
	}
	return coeffs
}

// EvalAt interpolates shares at the raw evaluation coordinate x: x = 0
// is the secret, x = k is the point of participant k-1.
func EvalAt(g group.Group, shares []Share, x int) group.Scalar {
	var target group.Scalar
	if x == 0 {
		target = g.NewScalar()
	} else {
		target = group.ScalarFromInt(g, x)
	}
	return Interpolate(g, Points(g, shares), Values(shares), target)
}

// InterpolateAt returns the value held by participant index.
func InterpolateAt(g group.Group, shares []Share, index int) group.Scalar {
	if index < 0 {
		panic(fmt.Sprintf("polynomial: negative participant index %d", index))
	}
	return EvalAt(g, shares, index+1)
}

// Secret returns the value at point 0.
func Secret(g group.Group, shares []Share) group.Scalar {
	return EvalAt(g, shares, 0)
}

// basis computes Π_{j≠i} (x_j − target) / (x_j − x_i).
func basis(g group.Group, points []group.Scalar, i int, target group.Scalar) group.Scalar {
	xi := points[i]
	num := group.One(g)
	den := group.One(g)
	for j, xj := range points {
		if j == i {
			continue
		}
		num = g.NewScalar().Mul(num, g.NewScalar().Sub(xj, target))
		den = g.NewScalar().Mul(den, g.NewScalar().Sub(xj, xi))
	}
	denInv, err := g.NewScalar().Invert(den)
	if err != nil {
		// distinct points never produce a zero denominator
		panic(fmt.Sprintf("polynomial: inverting denominator: %v", err))
	}
	return g.NewScalar().Mul(num, denInv)
}

func mustBeDistinct(points []group.Scalar) {
	if len(points) == 0 {
		panic("polynomial: interpolation needs at least one point")
	}
	for i := range points {
		for j := i + 1; j < len(points); j++ {
			if points[i].Equal(points[j]) {
				panic(fmt.Sprintf("polynomial: points %d and %d coincide", i, j))
			}
		}
	}
}
