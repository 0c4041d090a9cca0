package recovery

import (
	"fmt"
	"io"

	"github.com/f3rmion/reshare/group"
	"github.com/f3rmion/reshare/polynomial"
)

// Recover produces one contributor's masking vector for repairing the
// share of participant lost: n shares of a fresh random polynomial of
// degree threshold-1 that is zero at lost.
//
// The threshold sampled shares are returned unchanged; the remaining
// participants' values are interpolated from them. The result is ordered
// by participant index.
//
// Recover panics if threshold < 1, participants < threshold, or lost is
// not a participant index.
func Recover(g group.Group, rng io.Reader, threshold, participants, lost int) ([]polynomial.Share, error) {
	if threshold < 1 {
		panic(fmt.Sprintf("recovery: threshold %d must be at least 1", threshold))
	}
	if participants < threshold {
		panic(fmt.Sprintf("recovery: %d participants cannot meet threshold %d", participants, threshold))
	}
	if lost < 0 || lost >= participants {
		panic(fmt.Sprintf("recovery: lost index %d outside [0, %d)", lost, participants))
	}

	sampled, err := polynomial.SampleZeroAt(g, rng, threshold, lost)
	if err != nil {
		return nil, fmt.Errorf("recovery: %w", err)
	}

	known := make(map[int]group.Scalar, len(sampled))
	for _, sh := range sampled {
		known[sh.Index] = sh.Value
	}
	points := polynomial.Points(g, sampled)
	values := polynomial.Values(sampled)

	out := make([]polynomial.Share, participants)
	for i := range out {
		v, ok := known[i]
		if !ok {
			v = polynomial.Interpolate(g, points, values, polynomial.Point(g, i))
		}
		out[i] = polynomial.Share{Index: i, Value: v}
	}
	return out, nil
}

// Sum adds share vectors elementwise. All vectors must list the same
// indices in the same order; Sum panics otherwise or when called with no
// vectors.
func Sum(g group.Group, vectors ...[]polynomial.Share) []polynomial.Share {
	if len(vectors) == 0 {
		panic("recovery: nothing to sum")
	}
	out := make([]polynomial.Share, len(vectors[0]))
	for i, sh := range vectors[0] {
		out[i] = polynomial.Share{Index: sh.Index, Value: g.NewScalar().Set(sh.Value)}
	}
	for k, vec := range vectors[1:] {
		if len(vec) != len(out) {
			panic(fmt.Sprintf("recovery: vector %d has %d shares, want %d", k+1, len(vec), len(out)))
		}
		for i, sh := range vec {
			if sh.Index != out[i].Index {
				panic(fmt.Sprintf("recovery: vector %d has index %d at position %d, want %d",
					k+1, sh.Index, i, out[i].Index))
			}
			out[i].Value = g.NewScalar().Add(out[i].Value, sh.Value)
		}
	}
	return out
}

// Repair interpolates the share of participant lost from threshold
// masked shares held by other participants. It panics if masked contains
// the lost participant.
func Repair(g group.Group, masked []polynomial.Share, lost int) group.Scalar {
	for _, sh := range masked {
		if sh.Index == lost {
			panic(fmt.Sprintf("recovery: masked shares include lost participant %d", lost))
		}
	}
	return polynomial.InterpolateAt(g, masked, lost)
}

// Refresh re-randomizes shares by adding a random polynomial of degree
// threshold-1 with a zero constant term. Any threshold of the refreshed
// shares still reconstruct the original secret. The added polynomial is
// returned so callers can update their commitments.
func Refresh(g group.Group, rng io.Reader, shares []polynomial.Share, threshold int) ([]polynomial.Share, *polynomial.Polynomial, error) {
	if threshold < 1 {
		panic(fmt.Sprintf("recovery: threshold %d must be at least 1", threshold))
	}
	delta, err := polynomial.NewRandom(g, rng, g.NewScalar(), threshold-1)
	if err != nil {
		return nil, nil, fmt.Errorf("recovery: refresh: %w", err)
	}
	out := make([]polynomial.Share, len(shares))
	for i, sh := range shares {
		d := delta.Eval(g, polynomial.Point(g, sh.Index))
		out[i] = polynomial.Share{Index: sh.Index, Value: g.NewScalar().Add(sh.Value, d)}
	}
	return out, delta, nil
}
