// Package vss implements Feldman verifiable secret sharing: a dealer
// splits a secret into shares of a random polynomial and publishes
// commitments to the coefficients, against which every share can be
// checked.
package vss

import (
	"errors"
	"fmt"
	"io"

	"github.com/f3rmion/reshare/group"
	"github.com/f3rmion/reshare/polynomial"
)

var (
	// ErrInvalidShare is returned when a share does not match the
	// dealer's commitments.
	ErrInvalidShare = errors.New("vss: share does not match commitments")
	// ErrInvalidParams is returned for an unusable threshold or total.
	ErrInvalidParams = errors.New("vss: invalid sharing parameters")
)

// Dealing is the output of a dealer.
type Dealing struct {
	Threshold   int
	Commitments []group.Point      // C_k = a_k*G, C_0 commits to the secret
	Shares      []polynomial.Share // one per participant, indices 0..n-1
}

// Deal shares secret among total participants so that any threshold of
// them can reconstruct it. A threshold of one gives every participant
// the secret itself.
func Deal(g group.Group, rng io.Reader, threshold, total int, secret group.Scalar) (*Dealing, error) {
	if threshold < 1 {
		return nil, fmt.Errorf("%w: threshold %d must be at least 1", ErrInvalidParams, threshold)
	}
	if total < threshold {
		return nil, fmt.Errorf("%w: total %d must be >= threshold %d", ErrInvalidParams, total, threshold)
	}

	poly, err := polynomial.NewRandom(g, rng, secret, threshold-1)
	if err != nil {
		return nil, fmt.Errorf("vss: building polynomial: %w", err)
	}

	return &Dealing{
		Threshold:   threshold,
		Commitments: Commit(g, poly),
		Shares:      poly.Shares(g, total),
	}, nil
}

// Commit returns the Feldman commitments to the coefficients of p.
func Commit(g group.Group, p *polynomial.Polynomial) []group.Point {
	commits := make([]group.Point, len(p.Coeffs))
	for i, c := range p.Coeffs {
		commits[i] = g.NewPoint().ScalarMult(c, g.Generator())
	}
	return commits
}

// PublicShare returns f(Point(index))*G as implied by the commitments:
// Σ_k C_k * x^k.
func PublicShare(g group.Group, index int, commitments []group.Point) group.Point {
	x := polynomial.Point(g, index)
	result := g.NewPoint()
	xPower := group.One(g)
	for _, commit := range commitments {
		term := g.NewPoint().ScalarMult(xPower, commit)
		result = g.NewPoint().Add(result, term)
		xPower = g.NewScalar().Mul(xPower, x)
	}
	return result
}

// Verify checks share against the dealer's commitments.
func Verify(g group.Group, share polynomial.Share, commitments []group.Point) error {
	if len(commitments) == 0 {
		return fmt.Errorf("%w: no commitments", ErrInvalidShare)
	}
	if share.Index < 0 {
		return fmt.Errorf("%w: negative index %d", ErrInvalidShare, share.Index)
	}
	lhs := g.NewPoint().ScalarMult(share.Value, g.Generator())
	if !lhs.Equal(PublicShare(g, share.Index, commitments)) {
		return fmt.Errorf("%w: participant %d", ErrInvalidShare, share.Index)
	}
	return nil
}

// Add returns the commitments of the sum of two committed polynomials.
// This is how commitments follow a refresh.
func Add(g group.Group, a, b []group.Point) []group.Point {
	n := max(len(a), len(b))
	out := make([]group.Point, n)
	for i := range out {
		sum := g.NewPoint()
		if i < len(a) {
			sum = g.NewPoint().Add(sum, a[i])
		}
		if i < len(b) {
			sum = g.NewPoint().Add(sum, b[i])
		}
		out[i] = sum
	}
	return out
}
