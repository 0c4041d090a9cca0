package polynomial

import (
	"fmt"
	"io"

	"github.com/f3rmion/reshare/group"
)

// Polynomial is a polynomial in coefficient form; Coeffs[0] is the
// constant term.
type Polynomial struct {
	Coeffs []group.Scalar
}

// NewRandom returns a polynomial of the given degree whose constant term
// is constant and whose other coefficients are drawn from rng.
func NewRandom(g group.Group, rng io.Reader, constant group.Scalar, degree int) (*Polynomial, error) {
	if degree < 0 {
		return nil, fmt.Errorf("negative degree %d", degree)
	}
	coeffs := make([]group.Scalar, degree+1)
	coeffs[0] = g.NewScalar().Set(constant)
	for i := 1; i <= degree; i++ {
		c, err := g.RandomScalar(rng)
		if err != nil {
			return nil, fmt.Errorf("sampling coefficient %d: %w", i, err)
		}
		coeffs[i] = c
	}
	return &Polynomial{Coeffs: coeffs}, nil
}

// Degree returns the degree bound of p.
func (p *Polynomial) Degree() int {
	return len(p.Coeffs) - 1
}

// Eval evaluates p at x using Horner's rule.
func (p *Polynomial) Eval(g group.Group, x group.Scalar) group.Scalar {
	result := g.NewScalar().Set(p.Coeffs[len(p.Coeffs)-1])
	for i := len(p.Coeffs) - 2; i >= 0; i-- {
		result = g.NewScalar().Mul(result, x)
		result = g.NewScalar().Add(result, p.Coeffs[i])
	}
	return result
}

// Shares evaluates p at the points of participants 0..n-1.
func (p *Polynomial) Shares(g group.Group, n int) []Share {
	shares := make([]Share, n)
	for i := range shares {
		shares[i] = Share{Index: i, Value: p.Eval(g, Point(g, i))}
	}
	return shares
}
