package cli

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/f3rmion/reshare/group"
	"github.com/f3rmion/reshare/internal/sharefile"
	"github.com/f3rmion/reshare/vss"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func (a *app) dealCmd() *cobra.Command {
	var (
		secretHex string
		prompt    bool
		outPath   string
	)
	cmd := &cobra.Command{
		Use:   "deal",
		Short: "Split a secret into verifiable shares",
		Long: `Split a secret into --participants shares, any --threshold of which
reconstruct it. The secret is taken from --secret, read from the terminal
with --prompt, or sampled at random. The commitment to the secret is
printed; the shares are written to --out.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.cfg.ValidateSharing(); err != nil {
				return err
			}
			if secretHex != "" && prompt {
				return errors.New("--secret and --prompt are mutually exclusive")
			}
			if prompt {
				line, err := a.readSecret()
				if err != nil {
					return err
				}
				secretHex = line
			}

			rng := a.cfg.Rand()
			secret, err := a.secretScalar(rng, secretHex)
			if err != nil {
				return err
			}

			d, err := vss.Deal(a.group, rng, a.cfg.Threshold, a.cfg.Participants, secret)
			if err != nil {
				return err
			}
			f := sharefile.New(a.group, a.cfg.Threshold, a.cfg.Participants, d.Commitments, d.Shares)
			if err := f.Save(outPath); err != nil {
				return fmt.Errorf("writing shares: %w", err)
			}

			a.log.Info("dealt shares",
				"group", a.group.Name(),
				"threshold", a.cfg.Threshold,
				"participants", a.cfg.Participants,
				"file", outPath)
			fmt.Fprintln(a.out, hex.EncodeToString(d.Commitments[0].Bytes()))
			return nil
		},
	}
	cmd.Flags().StringVar(&secretHex, "secret", "", "secret scalar as big-endian hex")
	cmd.Flags().BoolVar(&prompt, "prompt", false, "read the secret from the terminal")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "share file to write (required)")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func (a *app) secretScalar(rng io.Reader, secretHex string) (group.Scalar, error) {
	if secretHex == "" {
		return a.group.RandomScalar(rng)
	}
	b, err := hex.DecodeString(strings.TrimPrefix(secretHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("decoding secret: %w", err)
	}
	s, err := a.group.NewScalar().SetBytes(b)
	if err != nil {
		return nil, fmt.Errorf("decoding secret: %w", err)
	}
	return s, nil
}

// readSecret reads one line without echo when stdin is a terminal.
func (a *app) readSecret() (string, error) {
	if f, ok := a.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(a.errOut, "secret (hex): ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(a.errOut)
		if err != nil {
			return "", fmt.Errorf("reading secret: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	}
	line, err := bufio.NewReader(a.in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading secret: %w", err)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", errors.New("empty secret")
	}
	return line, nil
}
