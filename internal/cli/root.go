// Package cli implements the reshare command line tool.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/f3rmion/reshare/group"
	"github.com/f3rmion/reshare/internal/config"
	"github.com/f3rmion/reshare/internal/groups"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is set at build time with -ldflags.
var Version = "dev"

type app struct {
	v          *viper.Viper
	configFile string
	cfg        *config.Config
	log        *slog.Logger
	group      group.Group
	in         io.Reader
	out        io.Writer
	errOut     io.Writer
}

// Execute runs the root command against the process's standard streams.
func Execute() error {
	return NewRootCommand(os.Stdin, os.Stdout, os.Stderr).Execute()
}

// NewRootCommand builds the command tree. Results are written to out;
// logs go to errOut.
func NewRootCommand(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{v: viper.New(), in: in, out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "reshare",
		Short: "Threshold secret sharing with share repair and refresh",
		Long: `reshare deals a secret as Feldman-verifiable Shamir shares, reconstructs
the secret or any participant's share from a threshold of shares, repairs a
lost share without revealing the secret, and refreshes all shares in place.

Participants are numbered from 0; participant i holds f(i+1).`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (YAML)")
	pf.String("group", "secp256k1", fmt.Sprintf("scalar group %v", groups.Names()))
	pf.IntP("threshold", "t", 2, "shares needed to reconstruct")
	pf.IntP("participants", "n", 3, "number of participants")
	pf.String("seed", "", "derive all randomness from this seed (testing only)")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-format", "text", "log format (text, json)")

	for key, flag := range map[string]string{
		"group":        "group",
		"threshold":    "threshold",
		"participants": "participants",
		"seed":         "seed",
		"log.level":    "log-level",
		"log.format":   "log-format",
	} {
		// only fails for a nil flag
		_ = a.v.BindPFlag(key, pf.Lookup(flag))
	}

	root.AddCommand(
		a.dealCmd(),
		a.reconstructCmd(),
		a.verifyCmd(),
		a.recoverCmd(),
		a.refreshCmd(),
		versionCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.v, a.configFile)
	if err != nil {
		return err
	}
	logger, err := config.NewLogger(cfg.Log, a.errOut)
	if err != nil {
		return err
	}
	g, err := groups.Lookup(cfg.Group)
	if err != nil {
		return err
	}
	a.cfg, a.log, a.group = cfg, logger, g

	if cfg.Seed != "" {
		a.log.Warn("using deterministic randomness", "command", cmd.Name())
	}
	a.log.Debug("configuration loaded",
		slog.String("group", cfg.Group),
		slog.Int("threshold", cfg.Threshold),
		slog.Int("participants", cfg.Participants),
		slog.String("config", a.v.ConfigFileUsed()))
	return nil
}

// groupFor returns the group a share file was written over.
func (a *app) groupFor(name string) (group.Group, error) {
	if name == a.group.Name() {
		return a.group, nil
	}
	a.log.Debug("share file overrides configured group", "file_group", name, "group", a.group.Name())
	return groups.Lookup(name)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		// no configuration needed
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "reshare", Version)
		},
	}
}
