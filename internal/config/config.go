// Package config loads symref settings from defaults, an optional config
// file, SYMREF_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	symerr "github.com/phobologic/symref/internal/errors"
)

// FileName is the base name searched for in the target root.
const FileName = ".symref"

// EnvPrefix prefixes environment overrides, e.g. SYMREF_MAXRESULTS.
const EnvPrefix = "SYMREF"

// Formats lists the accepted output formats.
var Formats = []string{"json", "yaml", "toon"}

// Config holds settings that are not part of a single request.
type Config struct {
	MaxResults       int      `json:"maxResults" yaml:"maxResults" mapstructure:"maxResults"`
	RespectGitignore bool     `json:"respectGitignore" yaml:"respectGitignore" mapstructure:"respectGitignore"`
	MaxFileSize      int64    `json:"maxFileSize" yaml:"maxFileSize" mapstructure:"maxFileSize"`
	IgnoreDirs       []string `json:"ignoreDirs" yaml:"ignoreDirs" mapstructure:"ignoreDirs"`
	Format           string   `json:"format" yaml:"format" mapstructure:"format"`
	LogLevel         string   `json:"logLevel" yaml:"logLevel" mapstructure:"logLevel"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		MaxResults:       200,
		RespectGitignore: false,
		MaxFileSize:      0,
		IgnoreDirs:       []string{},
		Format:           "json",
		LogLevel:         "warn",
	}
}

// Load resolves configuration. When path is empty, a .symref.{json,yaml,toml}
// in root is used if present. Flags that share a key name override every
// other source when set on the command line.
func Load(root, path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("maxResults", def.MaxResults)
	v.SetDefault("respectGitignore", def.RespectGitignore)
	v.SetDefault("maxFileSize", def.MaxFileSize)
	v.SetDefault("ignoreDirs", def.IgnoreDirs)
	v.SetDefault("format", def.Format)
	v.SetDefault("logLevel", def.LogLevel)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if flags != nil {
		for _, key := range v.AllKeys() {
			if f := lookupFlag(flags, key); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", f.Name, err)
				}
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		if root == "" {
			root = "."
		}
		v.SetConfigName(FileName)
		v.AddConfigPath(root)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, symerr.Wrap(symerr.Validation, err, "reading config %s", describe(root, path))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, symerr.Wrap(symerr.Validation, err, "decoding config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.MaxResults <= 0 {
		return symerr.New(symerr.Validation, "maxResults must be positive, got %d", c.MaxResults)
	}
	if c.MaxFileSize < 0 {
		return symerr.New(symerr.Validation, "maxFileSize must not be negative, got %d", c.MaxFileSize)
	}
	if !validFormat(c.Format) {
		return symerr.New(symerr.Validation, "unknown format %q (want one of %v)", c.Format, Formats)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return symerr.Wrap(symerr.Validation, err, "invalid logLevel")
	}
	return nil
}

func validFormat(f string) bool {
	return slices.Contains(Formats, f)
}

// lookupFlag matches viper's lower-cased keys against camelCase flag names.
func lookupFlag(flags *pflag.FlagSet, key string) *pflag.Flag {
	var found *pflag.Flag
	flags.VisitAll(func(f *pflag.Flag) {
		if found == nil && strings.EqualFold(f.Name, key) {
			found = f
		}
	})
	return found
}

func describe(root, path string) string {
	if path != "" {
		return path
	}
	return filepath.Join(root, FileName+".*")
}
