// Package config loads fiducialgen settings from flags, FIDUCIAL_* environment
// variables and an optional YAML file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/katalvlaran/fiducial/fiducial"
)

// EnvPrefix is prepended to every environment variable, e.g. FIDUCIAL_GRID_SIZE.
const EnvPrefix = "FIDUCIAL"

// Flag and key names.
const (
	KeyTarget      = "target"
	KeyGridSize    = "grid-size"
	KeySeed        = "seed"
	KeyInitialTau  = "initial-tau"
	KeyPatience    = "patience"
	KeyMinTau      = "min-tau"
	KeyMaxRounds   = "max-rounds"
	KeyTransitions = "transitions"
	KeyOutput      = "output"
	KeyMetricsFile = "metrics-file"
	KeyLogLevel    = "log-level"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid setting")

// Config is the resolved generator configuration.
type Config struct {
	Target      int    `mapstructure:"target"`
	GridSize    int    `mapstructure:"grid-size"`
	Seed        int64  `mapstructure:"seed"`
	InitialTau  int    `mapstructure:"initial-tau"`
	Patience    int    `mapstructure:"patience"`
	MinTau      int    `mapstructure:"min-tau"`
	MaxRounds   int    `mapstructure:"max-rounds"`
	Transitions string `mapstructure:"transitions"`
	Output      string `mapstructure:"output"`
	MetricsFile string `mapstructure:"metrics-file"`
	LogLevel    string `mapstructure:"log-level"`

	// HasMinTau is true when min-tau was given by any source.
	HasMinTau bool `mapstructure:"-"`
}

// RegisterFlags defines the generator flags on fs with their defaults.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.Int(KeyTarget, 16, "number of markers to generate")
	fs.Int(KeyGridSize, 4, "marker grid size n (markers are n×n)")
	fs.Int64(KeySeed, 0, "seed for the first-round shuffle (0 selects a fixed default)")
	fs.Int(KeyInitialTau, fiducial.DefaultInitialTau, "starting minimum separation")
	fs.Int(KeyPatience, fiducial.DefaultPatience, "rejections tolerated before tau decays")
	fs.Int(KeyMinTau, 0, "stop as exhausted instead of decaying tau below this value")
	fs.Int(KeyMaxRounds, 0, "maximum trial markers to evaluate (0 means unbounded)")
	fs.String(KeyTransitions, "integer", "transition scoring: integer or real")
	fs.StringP(KeyOutput, "o", "", "write the dictionary as YAML to this file (default stdout)")
	fs.String(KeyMetricsFile, "", "write Prometheus metrics to this textfile")
	fs.String(KeyLogLevel, "info", "log level: debug, info, warn, error")
}

// Load resolves the configuration. file may be empty.
func Load(fs *pflag.FlagSet, file string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", file, err)
		}
	}
	if err := v.BindPFlags(fs); err != nil {
		return Config{}, fmt.Errorf("config: bind flags: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	_, fromEnv := os.LookupEnv(EnvVar(KeyMinTau))
	cfg.HasMinTau = fs.Changed(KeyMinTau) || v.InConfig(KeyMinTau) || fromEnv
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// EnvVar returns the environment variable consulted for key.
func EnvVar(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
}

// Validate checks ranges the generator would otherwise reject or panic on.
func (c Config) Validate() error {
	switch {
	case c.GridSize < 1 || c.GridSize > fiducial.MaxGridSize:
		return fmt.Errorf("%w: %s=%d, want 1..%d", ErrInvalid, KeyGridSize, c.GridSize, fiducial.MaxGridSize)
	case c.Target < 1:
		return fmt.Errorf("%w: %s=%d, want ≥ 1", ErrInvalid, KeyTarget, c.Target)
	case c.InitialTau < 0:
		return fmt.Errorf("%w: %s=%d, want ≥ 0", ErrInvalid, KeyInitialTau, c.InitialTau)
	case c.Patience < 0:
		return fmt.Errorf("%w: %s=%d, want ≥ 0", ErrInvalid, KeyPatience, c.Patience)
	case c.MaxRounds < 0:
		return fmt.Errorf("%w: %s=%d, want ≥ 0", ErrInvalid, KeyMaxRounds, c.MaxRounds)
	}
	if _, ok := fiducial.ParseTransitionMode(c.Transitions); !ok {
		return fmt.Errorf("%w: %s=%q, want integer or real", ErrInvalid, KeyTransitions, c.Transitions)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %s=%q: %w", ErrInvalid, KeyLogLevel, c.LogLevel, err)
	}
	return nil
}

// Level returns the parsed log level, info when unset.
func (c Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// Options translates the configuration into generator options.
func (c Config) Options() []fiducial.Option {
	mode, _ := fiducial.ParseTransitionMode(c.Transitions)
	opts := []fiducial.Option{
		fiducial.WithSeed(c.Seed),
		fiducial.WithInitialTau(c.InitialTau),
		fiducial.WithPatience(c.Patience),
		fiducial.WithTransitionMode(mode),
	}
	if c.HasMinTau {
		opts = append(opts, fiducial.WithMinTau(c.MinTau))
	}
	if c.MaxRounds > 0 {
		opts = append(opts, fiducial.WithMaxRounds(c.MaxRounds))
	}
	return opts
}
