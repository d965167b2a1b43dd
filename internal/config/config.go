// Package config loads CLI configuration from defaults, an optional YAML file,
// a .env file, TWBSTRUCT_ environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const (
	// DefaultConfigFile is looked up in the working directory when no file is given.
	DefaultConfigFile = "twbstruct.yaml"
	// EnvPrefix prefixes environment overrides: TWBSTRUCT_OUT_DIR sets out_dir.
	EnvPrefix = "TWBSTRUCT_"

	DefaultThreshold int64 = 500000
	DefaultOutDir          = "chunks"
	DefaultMaxDepth        = 10
	DefaultMode            = "standard"
	DefaultFormat          = "json"
	DefaultWorkers         = 4
	DefaultLogLevel        = "info"
)

// Config holds all CLI configuration options.
type Config struct {
	Threshold   int64  `koanf:"threshold"`
	OutDir      string `koanf:"out_dir"`
	MaxDepth    int    `koanf:"max_depth"`
	Mode        string `koanf:"mode"`
	Format      string `koanf:"format"`
	Pretty      bool   `koanf:"pretty"`
	Workers     int    `koanf:"workers"`
	LogLevel    string `koanf:"log_level"`
	LogFile     string `koanf:"log_file"`
	LogEncoding string `koanf:"log_encoding"`
}

func defaults() map[string]any {
	return map[string]any{
		"threshold":    DefaultThreshold,
		"out_dir":      DefaultOutDir,
		"max_depth":    DefaultMaxDepth,
		"mode":         DefaultMode,
		"format":       DefaultFormat,
		"pretty":       false,
		"workers":      DefaultWorkers,
		"log_level":    DefaultLogLevel,
		"log_file":     "",
		"log_encoding": "console",
	}
}

// Load builds the configuration.
// Precedence (highest to lowest): changed flags > env vars > .env file > config file > defaults.
// cfgFile and envFile may be empty; a missing envFile is not an error.
func Load(cfgFile, envFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")
	known := defaults()

	if err := k.Load(confmap.Provider(known, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if cfgFile == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			cfgFile = DefaultConfigFile
		}
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("error reading env file %s: %w", envFile, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			if _, ok := known[key]; !ok {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if c.Threshold <= 0 {
		return fmt.Errorf("threshold must be positive, got %d", c.Threshold)
	}
	if c.MaxDepth <= 0 {
		return fmt.Errorf("max_depth must be positive, got %d", c.MaxDepth)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	switch c.Mode {
	case "light", "standard", "verbose":
	default:
		return fmt.Errorf("invalid mode: %s (must be light, standard, or verbose)", c.Mode)
	}
	switch c.Format {
	case "json", "yaml":
	default:
		return fmt.Errorf("invalid format: %s (must be json or yaml)", c.Format)
	}
	return nil
}
