package polynomial

import (
	"fmt"
	"io"

	"github.com/f3rmion/reshare/group"
)

// SampleZeroAt samples total evaluations of an implicit polynomial of
// degree total-1 that is zero at participant zero and random elsewhere.
//
// When zero < total the result covers indices 0..total-1. Otherwise it
// covers 0..total-2 followed by the pinned share at zero. Either way
// exactly total-1 random scalars are drawn from rng.
//
// SampleZeroAt panics if total < 1 or zero < 0.
func SampleZeroAt(g group.Group, rng io.Reader, total, zero int) ([]Share, error) {
	if total < 1 {
		panic(fmt.Sprintf("polynomial: cannot sample %d points", total))
	}
	if zero < 0 {
		panic(fmt.Sprintf("polynomial: negative zero index %d", zero))
	}

	random := total
	if zero >= total {
		random = total - 1
	}

	shares := make([]Share, 0, total)
	for i := 0; i < random; i++ {
		if i == zero {
			shares = append(shares, Share{Index: i, Value: g.NewScalar()})
			continue
		}
		r, err := g.RandomScalar(rng)
		if err != nil {
			return nil, fmt.Errorf("sampling point %d: %w", i, err)
		}
		shares = append(shares, Share{Index: i, Value: r})
	}
	if zero >= total {
		shares = append(shares, Share{Index: zero, Value: g.NewScalar()})
	}
	return shares, nil
}
