// Package config assembles the runtime configuration from flag defaults, an
// optional YAML file, NYX_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const envPrefix = "NYX_"

// Config is the effective configuration.
type Config struct {
	DB      string  `koanf:"db" validate:"required"`
	Posters Posters `koanf:"posters"`
	Session Session `koanf:"session"`
	Home    Home    `koanf:"home"`
	Log     Log     `koanf:"log"`
	Seed    Seed    `koanf:"seed"`
}

type Posters struct {
	Dir         string `koanf:"dir" validate:"required"`
	Placeholder string `koanf:"placeholder" validate:"required"`
	Crop        int    `koanf:"crop" validate:"gte=0"`
}

type Session struct {
	File string `koanf:"file" validate:"required"`
}

type Home struct {
	// Window is the number of days before and after today shown on the home list.
	Window int `koanf:"window" validate:"gt=0"`
}

type Log struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	Format string `koanf:"format" validate:"oneof=text json"`
}

type Seed struct {
	Repos string `koanf:"repos" validate:"required"`
}

// DefaultDataDir is where state lives unless configured otherwise.
func DefaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "nyx")
	}
	return ".nyx"
}

// RegisterFlags defines every configuration flag. Flag names use '-'
// where the configuration key uses '.', e.g. --posters-dir sets posters.dir.
func RegisterFlags(flags *pflag.FlagSet) {
	data := DefaultDataDir()
	flags.String("config", "", "Path to a YAML configuration file")
	flags.String("db", filepath.Join(data, "nyx.db"), "Path to the SQLite database file")
	flags.String("posters-dir", filepath.Join(data, "posters"), "Directory event posters are copied into")
	flags.String("posters-placeholder", filepath.Join(data, "nyx_icon.jpg"), "Image shown when an event poster is missing (generated when absent)")
	flags.Int("posters-crop", 0, "Center-crop imported posters to this many pixels (0 keeps the original)")
	flags.String("session-file", filepath.Join(data, "session.yaml"), "File holding the logged-in user")
	flags.Int("home-window", 10, "Days before and after today listed on the home screen")
	flags.String("log-level", "info", "Log level: debug, info, warn or error")
	flags.String("log-format", "text", "Log format: text or json")
	flags.String("seed-repos", filepath.Join(data, "repos"), "Directory fixture repositories are cloned into")
}

// Load builds the configuration from the flags registered by RegisterFlags.
func Load(flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if path := configPath(flags); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	err = k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
		if f.Name == "config" {
			return "", nil
		}
		return strings.ReplaceAll(f.Name, "-", "."), posflag.FlagVal(flags, f)
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load flags: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// configPath picks --config, then NYX_CONFIG, then config.yaml in the data
// directory when that file exists.
func configPath(flags *pflag.FlagSet) string {
	if f := flags.Lookup("config"); f != nil && f.Value.String() != "" {
		return f.Value.String()
	}
	if p := os.Getenv(envPrefix + "CONFIG"); p != "" {
		return p
	}
	p := filepath.Join(DefaultDataDir(), "config.yaml")
	if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
		return ""
	}
	return p
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Logger builds the slog logger described by the configuration.
func (c *Config) Logger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
