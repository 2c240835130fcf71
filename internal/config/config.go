// Package config loads typemeta command settings from typemeta.yaml, the
// environment (TYPEMETA_*) and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the settings shared by all commands.
type Config struct {
	Separator string `mapstructure:"separator"`
	Delimiter string `mapstructure:"delimiter"`
	Strict    bool   `mapstructure:"strict"`
	Fold      bool   `mapstructure:"fold"`
	Format    string `mapstructure:"format"`
	LogLevel  string `mapstructure:"log_level"`
	Jobs      int    `mapstructure:"jobs"`
	Dir       string `mapstructure:"dir"`
}

// ValidFormats are the accepted output formats.
var ValidFormats = []string{"text", "yaml", "json"}

// EnvPrefix prefixes environment overrides, e.g. TYPEMETA_STRICT=true.
const EnvPrefix = "TYPEMETA"

// flagKeys maps config keys to the flags that override them.
var flagKeys = map[string]string{
	"separator": "separator",
	"delimiter": "delimiter",
	"strict":    "strict",
	"fold":      "fold",
	"format":    "format",
	"log_level": "log-level",
	"jobs":      "jobs",
	"dir":       "dir",
}

// Load reads the configuration. An empty path searches the working directory
// for an optional typemeta.yaml; an explicit path must exist. Flags present in
// flags (which may be nil) take precedence once set on the command line.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("separator", ", ")
	v.SetDefault("delimiter", ",")
	v.SetDefault("strict", false)
	v.SetDefault("fold", false)
	v.SetDefault("format", "text")
	v.SetDefault("log_level", "info")
	v.SetDefault("jobs", 4)
	v.SetDefault("dir", "")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("typemeta")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if flags != nil {
		for key, name := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}

			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that the settings are usable.
func (c *Config) Validate() error {
	if !slices.Contains(ValidFormats, c.Format) {
		return fmt.Errorf("invalid format %q: must be one of %v", c.Format, ValidFormats)
	}

	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1, got %d", c.Jobs)
	}

	return nil
}
