package recovery

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/f3rmion/reshare/group"
	"github.com/f3rmion/reshare/polynomial"
	"github.com/google/uuid"
)

var (
	// ErrInvalidParams is returned when Params cannot describe a repair.
	ErrInvalidParams = errors.New("recovery: invalid session parameters")
	// ErrInvalidContributor is returned for a missing contribution or a
	// contributor index that may not contribute.
	ErrInvalidContributor = errors.New("recovery: invalid contributor")
	// ErrDuplicateContributor is returned when a participant contributes twice.
	ErrDuplicateContributor = errors.New("recovery: duplicate contributor")
	// ErrSessionMismatch is returned for a contribution made under another session ID.
	ErrSessionMismatch = errors.New("recovery: contribution belongs to another session")
	// ErrMalformed is returned for a share or vector with a bad index, length or value.
	ErrMalformed = errors.New("recovery: malformed share vector")
	// ErrNotEnoughShares is returned when fewer than Threshold masked shares are given.
	ErrNotEnoughShares = errors.New("recovery: not enough masked shares")
	// ErrDuplicateShare is returned when a helper's masked share appears twice.
	ErrDuplicateShare = errors.New("recovery: duplicate masked share")
	// ErrLostShareIncluded is returned when the lost participant's share is used as a helper.
	ErrLostShareIncluded = errors.New("recovery: masked shares include the lost participant")
)

// Params describes one repair round.
type Params struct {
	Threshold    int // t, shares needed to reconstruct
	Participants int // n
	Lost         int // index of the participant being repaired
}

// Validate reports whether p describes a repairable sharing.
func (p Params) Validate() error {
	if p.Threshold < 1 {
		return fmt.Errorf("%w: threshold %d must be at least 1", ErrInvalidParams, p.Threshold)
	}
	if p.Participants < p.Threshold {
		return fmt.Errorf("%w: %d participants cannot meet threshold %d",
			ErrInvalidParams, p.Participants, p.Threshold)
	}
	if p.Lost < 0 || p.Lost >= p.Participants {
		return fmt.Errorf("%w: lost index %d outside [0, %d)", ErrInvalidParams, p.Lost, p.Participants)
	}
	// the lost participant plus t helpers
	if p.Participants < p.Threshold+1 {
		return fmt.Errorf("%w: need %d helpers besides participant %d, have %d",
			ErrInvalidParams, p.Threshold, p.Lost, p.Participants-1)
	}
	return nil
}

// Contribution is one contributor's masking vector for a session.
type Contribution struct {
	SessionID uuid.UUID
	From      int
	Shares    []polynomial.Share
}

// Session coordinates one repair round. Contributors, helpers and the
// repaired participant each hold a Session with the same ID and Params.
type Session struct {
	mu          sync.Mutex
	id          uuid.UUID
	group       group.Group
	params      Params
	contributed map[int]bool
}

// NewSession starts a repair round with a fresh random ID.
func NewSession(g group.Group, params Params) (*Session, error) {
	return Join(g, uuid.New(), params)
}

// Join attaches to the repair round id started elsewhere.
func Join(g group.Group, id uuid.UUID, params Params) (*Session, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if id == uuid.Nil {
		return nil, fmt.Errorf("%w: nil session ID", ErrInvalidParams)
	}
	return &Session{
		id:          id,
		group:       g,
		params:      params,
		contributed: make(map[int]bool),
	}, nil
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Params returns the session parameters.
func (s *Session) Params() Params {
	return s.params
}

// Contribute samples participant from's masking vector. Each contributor
// may contribute once per session, and the lost participant never
// contributes.
func (s *Session) Contribute(rng io.Reader, from int) (*Contribution, error) {
	if from < 0 || from >= s.params.Participants {
		return nil, fmt.Errorf("%w: index %d outside [0, %d)", ErrInvalidContributor, from, s.params.Participants)
	}
	if from == s.params.Lost {
		return nil, fmt.Errorf("%w: participant %d is being repaired", ErrInvalidContributor, from)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.contributed[from] {
		return nil, fmt.Errorf("%w: participant %d", ErrDuplicateContributor, from)
	}

	shares, err := Recover(s.group, rng, s.params.Threshold, s.params.Participants, s.params.Lost)
	if err != nil {
		return nil, err
	}
	s.contributed[from] = true

	return &Contribution{SessionID: s.id, From: from, Shares: shares}, nil
}

// Combine checks the contributions and sums them into the session mask.
func (s *Session) Combine(contribs []*Contribution) ([]polynomial.Share, error) {
	if len(contribs) == 0 {
		return nil, fmt.Errorf("%w: no contributions", ErrInvalidContributor)
	}
	seen := make(map[int]bool, len(contribs))
	vectors := make([][]polynomial.Share, len(contribs))
	for i, c := range contribs {
		if c == nil {
			return nil, fmt.Errorf("%w: nil contribution at position %d", ErrInvalidContributor, i)
		}
		if c.SessionID != s.id {
			return nil, fmt.Errorf("%w: got %s, want %s", ErrSessionMismatch, c.SessionID, s.id)
		}
		if c.From == s.params.Lost || c.From < 0 || c.From >= s.params.Participants {
			return nil, fmt.Errorf("%w: index %d", ErrInvalidContributor, c.From)
		}
		if seen[c.From] {
			return nil, fmt.Errorf("%w: participant %d", ErrDuplicateContributor, c.From)
		}
		seen[c.From] = true
		if err := s.checkVector(c.Shares); err != nil {
			return nil, fmt.Errorf("contribution from %d: %w", c.From, err)
		}
		vectors[i] = c.Shares
	}
	return Sum(s.group, vectors...), nil
}

// Mask blinds a helper's share with its entry of the session mask.
func (s *Session) Mask(share polynomial.Share, mask []polynomial.Share) (polynomial.Share, error) {
	if err := s.checkVector(mask); err != nil {
		return polynomial.Share{}, fmt.Errorf("mask: %w", err)
	}
	if share.Index == s.params.Lost {
		return polynomial.Share{}, ErrLostShareIncluded
	}
	if share.Index < 0 || share.Index >= s.params.Participants {
		return polynomial.Share{}, fmt.Errorf("%w: share index %d", ErrMalformed, share.Index)
	}
	if share.Value == nil {
		return polynomial.Share{}, fmt.Errorf("%w: share %d has no value", ErrMalformed, share.Index)
	}
	return polynomial.Share{
		Index: share.Index,
		Value: s.group.NewScalar().Add(share.Value, mask[share.Index].Value),
	}, nil
}

// Repair reconstructs the lost participant's share from masked shares.
// The first Threshold shares are used.
func (s *Session) Repair(masked []polynomial.Share) (group.Scalar, error) {
	if len(masked) < s.params.Threshold {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrNotEnoughShares, len(masked), s.params.Threshold)
	}
	seen := make(map[int]bool, len(masked))
	for _, sh := range masked {
		switch {
		case sh.Index == s.params.Lost:
			return nil, ErrLostShareIncluded
		case sh.Index < 0 || sh.Index >= s.params.Participants:
			return nil, fmt.Errorf("%w: share index %d", ErrMalformed, sh.Index)
		case sh.Value == nil:
			return nil, fmt.Errorf("%w: share %d has no value", ErrMalformed, sh.Index)
		case seen[sh.Index]:
			return nil, fmt.Errorf("%w: participant %d", ErrDuplicateShare, sh.Index)
		}
		seen[sh.Index] = true
	}
	return Repair(s.group, masked[:s.params.Threshold], s.params.Lost), nil
}

// checkVector verifies that v holds one share per participant in index
// order and is zero at the lost participant.
func (s *Session) checkVector(v []polynomial.Share) error {
	if len(v) != s.params.Participants {
		return fmt.Errorf("%w: %d shares, want %d", ErrMalformed, len(v), s.params.Participants)
	}
	for i, sh := range v {
		if sh.Index != i || sh.Value == nil {
			return fmt.Errorf("%w: position %d", ErrMalformed, i)
		}
	}
	if !v[s.params.Lost].Value.IsZero() {
		return fmt.Errorf("%w: nonzero at lost participant %d", ErrMalformed, s.params.Lost)
	}
	return nil
}
