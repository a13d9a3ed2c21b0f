package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"tcalc/app/lang"
)

// EnvConfigPath names the environment variable holding the config file path.
const EnvConfigPath = "TCALC_CONFIG"

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config represents the tcalc configuration.
type Config struct {
	App    ApplicationConfig `yaml:"app" toml:"app"`
	Server ServerConfig      `yaml:"server" toml:"server"`
	Clock  ClockConfig       `yaml:"clock" toml:"clock"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return fmt.Errorf("app: %w", err)
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Clock.Validate(); err != nil {
		return fmt.Errorf("clock: %w", err)
	}
	return nil
}

// ApplicationConfig holds logging configuration shared by every surface.
type ApplicationConfig struct {
	LogLevel  slog.Level `yaml:"log_level" toml:"log_level"`
	LogFormat string     `yaml:"log_format" toml:"log_format"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	if c.LogFormat == "" {
		c.LogFormat = LogFormatText
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.LogFormat, validation.In(LogFormatText, LogFormatJSON)),
	)
}

// ServerConfig holds HTTP API configuration.
type ServerConfig struct {
	Port                int           `yaml:"port" toml:"port"`
	AllowedOrigins      []string      `yaml:"allowed_origins" toml:"allowed_origins"`
	RequestTimeout      time.Duration `yaml:"request_timeout" toml:"request_timeout"`
	MaxExpressionLength int           `yaml:"max_expression_length" toml:"max_expression_length"`
	MaxConnections      int           `yaml:"max_connections" toml:"max_connections"` // 0 means unlimited
}

// Address returns HTTP server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *ServerConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.RequestTimeout, validation.Required, validation.Min(time.Millisecond)),
		validation.Field(&c.MaxExpressionLength, validation.Required, validation.Min(1)),
		validation.Field(&c.MaxConnections, validation.Min(0)),
	)
}

// ClockConfig pins the instant used for today, now, tomorrow and yesterday.
// An empty Fixed means the wall clock.
type ClockConfig struct {
	Fixed string `yaml:"fixed" toml:"fixed"` // RFC 3339
}

// Validate validates the clock configuration.
func (c *ClockConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Fixed, validation.Date(time.RFC3339)),
	)
}

// Clock returns the configured clock source.
func (c *ClockConfig) Clock() lang.Clock {
	if c.Fixed == "" {
		return lang.SystemClock
	}
	t, err := time.Parse(time.RFC3339, c.Fixed)
	if err != nil {
		// Validate rejects this; fall back rather than guess.
		return lang.SystemClock
	}
	return lang.FixedClock(t)
}

// Evaluator returns an evaluator reading the configured clock.
func (c *Config) Evaluator() *lang.Evaluator {
	return lang.NewEvaluator(lang.WithClock(c.Clock.Clock()))
}

// NewLogger builds the slog logger described by the app section.
func (c *ApplicationConfig) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if strings.EqualFold(c.LogFormat, LogFormatJSON) {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel:  slog.LevelInfo,
			LogFormat: LogFormatText,
		},
		Server: ServerConfig{
			Port:                8080,
			AllowedOrigins:      []string{"*"},
			RequestTimeout:      5 * time.Second,
			MaxExpressionLength: 1024,
		},
	}
}

// DefaultConfigFile is looked up in the working directory, then next to the
// executable, when no config path is given.
const DefaultConfigFile = "tcalc.yaml"

// Resolve returns the configuration at path. An empty path falls back to
// DefaultConfigFile and, when that is missing too, to the built-in defaults.
// Values present in a file override the defaults.
func Resolve(path string) (*Config, error) {
	if path != "" {
		cfg := NewDefaultConfig()
		if err := Load(path, cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return resolveDefault(DefaultConfigFile, besideExecutable())
}

func resolveDefault(local, beside string) (*Config, error) {
	cfg := NewDefaultConfig()
	if !fileExists(local) && !fileExists(beside) {
		return cfg, cfg.Validate()
	}
	if !fileExists(beside) {
		beside = ""
	}
	if err := LoadWithDefaults(local, beside, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func besideExecutable() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	return filepath.Join(filepath.Dir(exe), DefaultConfigFile)
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
