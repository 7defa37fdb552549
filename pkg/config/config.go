package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFileName = "config.yaml"
	// SourceDefaults marks a configuration that was not read from a file.
	SourceDefaults = "<defaults>"
	envPrefix      = "SIDESWIPE"
)

// Config captures the user-adjustable knobs for the swipe daemon.
type Config struct {
	Preferences PreferencesConfig `mapstructure:"preferences" yaml:"preferences"`
	Permissions PermissionsConfig `mapstructure:"permissions" yaml:"permissions"`
	Logging     LoggingConfig     `mapstructure:"logging" yaml:"logging"`

	// Source indicates where the configuration originated (defaults or a file path).
	Source string `mapstructure:"-" yaml:"-"`
}

// PreferencesConfig locates the persisted ignore list and reversal flag.
// An empty path selects the per-user default.
type PreferencesConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// PermissionsConfig controls how missing input permissions are handled.
type PermissionsConfig struct {
	Prompt       bool          `mapstructure:"prompt" yaml:"prompt"`
	PollInterval time.Duration `mapstructure:"poll_interval" yaml:"poll_interval"`
}

// LoggingConfig defines log verbosity and formatting.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Default returns the baseline configuration used when no overrides are supplied.
func Default() Config {
	return Config{
		Permissions: PermissionsConfig{
			Prompt:       true,
			PollInterval: time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Source: SourceDefaults,
	}
}

// Load reads configuration from disk if present, otherwise returning defaults.
// When path is empty, the loader attempts to read ./config.yaml but tolerates a
// missing file. SIDESWIPE_<SECTION>_<KEY> environment variables override both.
func Load(path string) (Config, error) {
	candidate := strings.TrimSpace(path)
	explicit := candidate != ""
	if !explicit {
		candidate = DefaultFileName
	}

	v := newViper()
	source := SourceDefaults
	if _, err := os.Stat(candidate); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Default(), fmt.Errorf("stat config file %q: %w", candidate, err)
		}
		if explicit {
			return Default(), fmt.Errorf("config file %q not found", candidate)
		}
	} else {
		v.SetConfigFile(candidate)
		if err := v.ReadInConfig(); err != nil {
			return Default(), fmt.Errorf("read config file %q: %w", candidate, err)
		}
		source = candidate
	}

	cfg, err := decode(v)
	if err != nil {
		return Default(), fmt.Errorf("config file %q: %w", candidate, err)
	}
	cfg.Source = source
	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := Default()
	v.SetDefault("preferences.path", defaults.Preferences.Path)
	v.SetDefault("permissions.prompt", defaults.Permissions.Prompt)
	v.SetDefault("permissions.poll_interval", defaults.Permissions.PollInterval)
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)
	return v
}

// decode unmarshals the merged viper state, rejecting keys Config does not know.
func decode(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.UnmarshalExact(&cfg); err != nil {
		return Default(), fmt.Errorf("decode: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Validate ensures essential configuration values are present and sensible.
func (c Config) Validate() error {
	if _, err := NormalizeLogLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	if _, err := NormalizeFormat(c.Logging.Format); err != nil {
		return fmt.Errorf("logging.format: %w", err)
	}
	if c.Permissions.PollInterval <= 0 {
		return errors.New("permissions.poll_interval must be positive")
	}
	return nil
}

// SlogLevel converts the configured level; unknown levels map to info.
func (l LoggingConfig) SlogLevel() slog.Level {
	normalized, err := NormalizeLogLevel(l.Level)
	if err != nil {
		return slog.LevelInfo
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(normalized)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// YAML renders the resolved configuration with durations as strings.
func (c Config) YAML() ([]byte, error) {
	type permissions struct {
		Prompt       bool   `yaml:"prompt"`
		PollInterval string `yaml:"poll_interval"`
	}
	view := struct {
		Preferences PreferencesConfig `yaml:"preferences"`
		Permissions permissions       `yaml:"permissions"`
		Logging     LoggingConfig     `yaml:"logging"`
	}{
		Preferences: c.Preferences,
		Permissions: permissions{
			Prompt:       c.Permissions.Prompt,
			PollInterval: c.Permissions.PollInterval.String(),
		},
		Logging: c.Logging,
	}
	return yaml.Marshal(view)
}

func (c *Config) normalize() {
	defaults := Default()

	c.Preferences.Path = strings.TrimSpace(c.Preferences.Path)
	if c.Preferences.Path != "" {
		c.Preferences.Path = filepath.Clean(c.Preferences.Path)
	}
	if c.Permissions.PollInterval <= 0 {
		c.Permissions.PollInterval = defaults.Permissions.PollInterval
	}
	if level, err := NormalizeLogLevel(c.Logging.Level); err == nil {
		c.Logging.Level = level
	}
	if format, err := NormalizeFormat(c.Logging.Format); err == nil {
		c.Logging.Format = format
	}
}

// NormalizeLogLevel validates and lowercases known logging levels.
func NormalizeLogLevel(level string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return "info", nil
	case "debug":
		return "debug", nil
	case "warn", "warning":
		return "warn", nil
	case "error":
		return "error", nil
	default:
		return "", fmt.Errorf("unsupported log level %q", level)
	}
}

// NormalizeFormat validates and canonicalizes logging format identifiers.
func NormalizeFormat(format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return "json", nil
	case "", "console", "text":
		return "console", nil
	default:
		return "", fmt.Errorf("unsupported log format %q", format)
	}
}
