package polynomial

import (
	"fmt"

	"github.com/f3rmion/reshare/group"
)

// Share is one evaluation of a hidden polynomial: the value at the
// evaluation point of participant Index.
type Share struct {
	Index int          // 0-based participant index
	Value group.Scalar // f(Point(Index))
}

// Point returns the evaluation point of participant index, which is
// index+1. Point 0 is reserved for the secret. It panics if index is
// negative.
func Point(g group.Group, index int) group.Scalar {
	if index < 0 {
		panic(fmt.Sprintf("polynomial: negative participant index %d", index))
	}
	return group.ScalarFromInt(g, index+1)
}

// Points maps the indices of shares to their evaluation points.
func Points(g group.Group, shares []Share) []group.Scalar {
	points := make([]group.Scalar, len(shares))
	for i, sh := range shares {
		points[i] = Point(g, sh.Index)
	}
	return points
}

// Values returns the values of shares in order.
func Values(shares []Share) []group.Scalar {
	values := make([]group.Scalar, len(shares))
	for i, sh := range shares {
		values[i] = sh.Value
	}
	return values
}
