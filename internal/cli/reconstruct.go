package cli

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/f3rmion/reshare/group"
	"github.com/f3rmion/reshare/internal/sharefile"
	"github.com/f3rmion/reshare/polynomial"
	"github.com/f3rmion/reshare/vss"
	"github.com/spf13/cobra"
)

// loaded is a decoded share file.
type loaded struct {
	file        *sharefile.File
	group       group.Group
	commitments []group.Point
	shares      []polynomial.Share
}

func (a *app) load(path string) (*loaded, error) {
	f, err := sharefile.Load(path)
	if err != nil {
		return nil, err
	}
	g, err := a.groupFor(f.Group)
	if err != nil {
		return nil, err
	}
	commitments, shares, err := f.Decode(g)
	if err != nil {
		return nil, err
	}
	a.log.Debug("loaded share file", "file", path, "shares", len(shares), "commitments", len(commitments))
	return &loaded{file: f, group: g, commitments: commitments, shares: shares}, nil
}

func (a *app) reconstructCmd() *cobra.Command {
	var (
		inPath string
		index  int
		use    []int
	)
	cmd := &cobra.Command{
		Use:   "reconstruct",
		Short: "Reconstruct the secret or a participant's share",
		Long: `Interpolate a threshold of shares from --in. Without --index the secret
is printed; with --index i the value of participant i is printed. --use
selects which participants' shares to interpolate from; by default the
first threshold shares in the file are used.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if index < -1 {
				return fmt.Errorf("--index %d: want a participant index or -1 for the secret", index)
			}
			l, err := a.load(inPath)
			if err != nil {
				return err
			}
			chosen, err := selectShares(l.shares, use, l.file.Threshold)
			if err != nil {
				return err
			}

			var v group.Scalar
			if index == -1 {
				v = polynomial.Secret(l.group, chosen)
				a.log.Info("reconstructed secret", "from", indices(chosen))
			} else {
				v = polynomial.InterpolateAt(l.group, chosen, index)
				a.log.Info("reconstructed share", "index", index, "from", indices(chosen))
			}
			fmt.Fprintln(a.out, hex.EncodeToString(v.Bytes()))
			return nil
		},
	}
	cmd.Flags().StringVarP(&inPath, "in", "i", "", "share file to read (required)")
	cmd.Flags().IntVar(&index, "index", -1, "participant to reconstruct; -1 for the secret")
	cmd.Flags().IntSliceVar(&use, "use", nil, "participants whose shares to use")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

func (a *app) verifyCmd() *cobra.Command {
	var inPath string
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check every share against the dealer's commitments",
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := a.load(inPath)
			if err != nil {
				return err
			}
			if len(l.commitments) == 0 {
				return errors.New("share file has no commitments")
			}
			var errs []error
			for _, sh := range l.shares {
				if err := vss.Verify(l.group, sh, l.commitments); err != nil {
					a.log.Error("share rejected", "index", sh.Index)
					errs = append(errs, err)
					continue
				}
				fmt.Fprintf(a.out, "share %d: ok\n", sh.Index)
			}
			return errors.Join(errs...)
		},
	}
	cmd.Flags().StringVarP(&inPath, "in", "i", "", "share file to read (required)")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

// selectShares picks the shares of the given participants, or the first
// threshold shares when use is empty.
func selectShares(shares []polynomial.Share, use []int, threshold int) ([]polynomial.Share, error) {
	if len(use) == 0 {
		if len(shares) < threshold {
			return nil, fmt.Errorf("need %d shares, file has %d", threshold, len(shares))
		}
		return shares[:threshold], nil
	}
	if len(use) < threshold {
		return nil, fmt.Errorf("need %d shares, --use names %d", threshold, len(use))
	}
	byIndex := make(map[int]polynomial.Share, len(shares))
	for _, sh := range shares {
		byIndex[sh.Index] = sh
	}
	seen := make(map[int]bool, len(use))
	out := make([]polynomial.Share, 0, len(use))
	for _, idx := range use {
		sh, ok := byIndex[idx]
		if !ok {
			return nil, fmt.Errorf("no share for participant %d", idx)
		}
		if seen[idx] {
			return nil, fmt.Errorf("participant %d listed twice", idx)
		}
		seen[idx] = true
		out = append(out, sh)
	}
	return out, nil
}

func indices(shares []polynomial.Share) []int {
	out := make([]int, len(shares))
	for i, sh := range shares {
		out[i] = sh.Index
	}
	return out
}
