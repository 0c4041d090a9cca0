// Package sharefile reads and writes share sets as YAML documents.
//
//	group: secp256k1
//	threshold: 2
//	participants: 3
//	commitments:
//	  - 02c6047f...
//	shares:
//	  - index: 0
//	    value: 5f1c...
//
// Shares may be missing, e.g. the share of a participant being repaired.
package sharefile

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/f3rmion/reshare/group"
	"github.com/f3rmion/reshare/polynomial"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned for a document that cannot describe a sharing.
var ErrInvalid = errors.New("sharefile: invalid document")

// File is the on-disk form of a sharing.
type File struct {
	Group        string   `yaml:"group"`
	Threshold    int      `yaml:"threshold"`
	Participants int      `yaml:"participants"`
	Commitments  []string `yaml:"commitments,omitempty"`
	Shares       []Entry  `yaml:"shares"`
}

// Entry is a single hex-encoded share.
type Entry struct {
	Index int    `yaml:"index"`
	Value string `yaml:"value"`
}

// New encodes a sharing over g.
func New(g group.Group, threshold, participants int, commitments []group.Point, shares []polynomial.Share) *File {
	f := &File{
		Group:        g.Name(),
		Threshold:    threshold,
		Participants: participants,
	}
	for _, c := range commitments {
		f.Commitments = append(f.Commitments, hex.EncodeToString(c.Bytes()))
	}
	for _, sh := range shares {
		f.Shares = append(f.Shares, Entry{Index: sh.Index, Value: hex.EncodeToString(sh.Value.Bytes())})
	}
	return f
}

// Decode parses the commitments and shares of f, sorted by index.
func (f *File) Decode(g group.Group) ([]group.Point, []polynomial.Share, error) {
	if f.Group != g.Name() {
		return nil, nil, fmt.Errorf("%w: shares are over %q, not %q", ErrInvalid, f.Group, g.Name())
	}
	if f.Threshold < 1 || f.Participants < f.Threshold {
		return nil, nil, fmt.Errorf("%w: threshold %d of %d", ErrInvalid, f.Threshold, f.Participants)
	}

	if n := len(f.Commitments); n != 0 && n != f.Threshold {
		return nil, nil, fmt.Errorf("%w: %d commitments for threshold %d", ErrInvalid, n, f.Threshold)
	}

	commitments := make([]group.Point, len(f.Commitments))
	for i, c := range f.Commitments {
		b, err := hex.DecodeString(c)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: commitment %d: %v", ErrInvalid, i, err)
		}
		if commitments[i], err = g.NewPoint().SetBytes(b); err != nil {
			return nil, nil, fmt.Errorf("%w: commitment %d: %v", ErrInvalid, i, err)
		}
	}

	seen := make(map[int]bool, len(f.Shares))
	shares := make([]polynomial.Share, len(f.Shares))
	for i, e := range f.Shares {
		if e.Index < 0 || e.Index >= f.Participants {
			return nil, nil, fmt.Errorf("%w: share index %d outside [0, %d)", ErrInvalid, e.Index, f.Participants)
		}
		if seen[e.Index] {
			return nil, nil, fmt.Errorf("%w: duplicate share %d", ErrInvalid, e.Index)
		}
		seen[e.Index] = true
		b, err := hex.DecodeString(e.Value)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: share %d: %v", ErrInvalid, e.Index, err)
		}
		v, err := g.NewScalar().SetBytes(b)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: share %d: %v", ErrInvalid, e.Index, err)
		}
		shares[i] = polynomial.Share{Index: e.Index, Value: v}
	}
	sort.Slice(shares, func(i, j int) bool { return shares[i].Index < shares[j].Index })
	return commitments, shares, nil
}

// Load reads a share file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return &f, nil
}

// Save writes f to path, readable by the owner only.
func (f *File) Save(path string) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
