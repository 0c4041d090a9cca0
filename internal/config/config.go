// Package config loads reshare settings from flags, the environment
// (RESHARE_*) and an optional YAML file, in that order of precedence.
package config

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/f3rmion/reshare/internal/drbg"
	"github.com/f3rmion/reshare/internal/groups"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "RESHARE"

// Config is the complete CLI configuration.
type Config struct {
	Group        string    `mapstructure:"group"`
	Threshold    int       `mapstructure:"threshold"`
	Participants int       `mapstructure:"participants"`
	Seed         string    `mapstructure:"seed"` // empty means crypto/rand
	Log          LogConfig `mapstructure:"log"`
}

// LogConfig controls logging behavior.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // text, json
}

// SetDefaults installs the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("group", "secp256k1")
	v.SetDefault("threshold", 2)
	v.SetDefault("participants", 3)
	v.SetDefault("seed", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Load reads file (if not empty) and the environment into v and returns
// the validated result. Flags must already be bound to v.
func Load(v *viper.Viper, file string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings every command uses. Threshold and
// participants are checked separately by ValidateSharing.
func (c *Config) Validate() error {
	var errs []error
	if _, err := groups.Lookup(c.Group); err != nil {
		errs = append(errs, err)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Log.Format))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// ValidateSharing checks the threshold and participant count used to
// deal a new sharing. Commands that read a share file take both from the
// file instead.
func (c *Config) ValidateSharing() error {
	if c.Threshold < 1 {
		return fmt.Errorf("invalid config: threshold %d must be at least 1", c.Threshold)
	}
	if c.Participants < c.Threshold {
		return fmt.Errorf("invalid config: participants %d must be >= threshold %d", c.Participants, c.Threshold)
	}
	return nil
}

// Rand returns the randomness source selected by the configuration.
func (c *Config) Rand() io.Reader {
	if c.Seed == "" {
		return rand.Reader
	}
	return drbg.New([]byte(c.Seed))
}

// NewLogger builds a structured logger writing to w.
func NewLogger(cfg LogConfig, w io.Writer) (*slog.Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	case "text", "":
		handler = slog.NewTextHandler(w, opts)
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
	return slog.New(handler), nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}
