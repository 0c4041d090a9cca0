package cli

import (
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/f3rmion/reshare/internal/sharefile"
	"github.com/f3rmion/reshare/polynomial"
	"github.com/f3rmion/reshare/recovery"
	"github.com/f3rmion/reshare/vss"
	"github.com/spf13/cobra"
)

func (a *app) recoverCmd() *cobra.Command {
	var (
		inPath       string
		outPath      string
		lost         int
		contributors []int
	)
	cmd := &cobra.Command{
		Use:   "recover",
		Short: "Repair a lost share without reconstructing the secret",
		Long: `Run a repair round for participant --lost over the shares in --in.
Each contributor samples a masking vector that is zero at the lost
participant; the helpers blind their shares with the summed mask, and the
lost share is interpolated from the blinded values. The repaired share is
checked against the commitments and written with the others to --out.

Contributors default to every participant other than the lost one.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := a.load(inPath)
			if err != nil {
				return err
			}
			params := recovery.Params{
				Threshold:    l.file.Threshold,
				Participants: l.file.Participants,
				Lost:         lost,
			}

			var helpers []polynomial.Share
			for _, sh := range l.shares {
				if sh.Index != lost {
					helpers = append(helpers, sh)
				}
			}
			if len(contributors) == 0 {
				for i := 0; i < params.Participants; i++ {
					if i != lost {
						contributors = append(contributors, i)
					}
				}
			}

			coord, err := recovery.NewSession(l.group, params)
			if err != nil {
				return err
			}
			log := a.log.With("session", coord.ID().String(), "lost", lost)
			log.Info("repair round started", "contributors", contributors)

			rng := a.cfg.Rand()
			contribs := make([]*recovery.Contribution, 0, len(contributors))
			for _, from := range contributors {
				s, err := recovery.Join(l.group, coord.ID(), params)
				if err != nil {
					return err
				}
				c, err := s.Contribute(rng, from)
				if err != nil {
					return err
				}
				log.Debug("masking vector sampled", "from", from)
				contribs = append(contribs, c)
			}

			mask, err := coord.Combine(contribs)
			if err != nil {
				return err
			}
			if len(helpers) < params.Threshold {
				return fmt.Errorf("%w: have %d, need %d", recovery.ErrNotEnoughShares, len(helpers), params.Threshold)
			}
			masked := make([]polynomial.Share, 0, params.Threshold)
			for _, sh := range helpers[:params.Threshold] {
				m, err := coord.Mask(sh, mask)
				if err != nil {
					return err
				}
				masked = append(masked, m)
			}
			value, err := coord.Repair(masked)
			if err != nil {
				return err
			}

			repaired := polynomial.Share{Index: lost, Value: value}
			if len(l.commitments) > 0 {
				if err := vss.Verify(l.group, repaired, l.commitments); err != nil {
					return fmt.Errorf("repaired share: %w", err)
				}
			} else {
				log.Warn("share file has no commitments; repaired share not verified")
			}
			log.Info("share repaired", "helpers", indices(masked))

			shares := append(helpers, repaired)
			sort.Slice(shares, func(i, j int) bool { return shares[i].Index < shares[j].Index })
			f := sharefile.New(l.group, params.Threshold, params.Participants, l.commitments, shares)
			if err := f.Save(outPath); err != nil {
				return fmt.Errorf("writing shares: %w", err)
			}
			fmt.Fprintln(a.out, hex.EncodeToString(value.Bytes()))
			return nil
		},
	}
	cmd.Flags().StringVarP(&inPath, "in", "i", "", "share file to read (required)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "share file to write (required)")
	cmd.Flags().IntVar(&lost, "lost", -1, "participant whose share is repaired (required)")
	cmd.Flags().IntSliceVar(&contributors, "contributors", nil, "participants that sample masking vectors")
	_ = cmd.MarkFlagRequired("in")
	_ = cmd.MarkFlagRequired("out")
	_ = cmd.MarkFlagRequired("lost")
	return cmd
}

func (a *app) refreshCmd() *cobra.Command {
	var inPath, outPath string
	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Re-randomize every share while keeping the secret",
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := a.load(inPath)
			if err != nil {
				return err
			}
			shares, delta, err := recovery.Refresh(l.group, a.cfg.Rand(), l.shares, l.file.Threshold)
			if err != nil {
				return err
			}
			commitments := l.commitments
			if len(commitments) > 0 {
				commitments = vss.Add(l.group, commitments, vss.Commit(l.group, delta))
			}
			f := sharefile.New(l.group, l.file.Threshold, l.file.Participants, commitments, shares)
			if err := f.Save(outPath); err != nil {
				return fmt.Errorf("writing shares: %w", err)
			}
			a.log.Info("shares refreshed", "shares", len(shares), "file", outPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&inPath, "in", "i", "", "share file to read (required)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "share file to write (required)")
	_ = cmd.MarkFlagRequired("in")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
