// Package config loads tcalc configuration from YAML or TOML files with
// environment variable expansion.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Validator is an interface for configuration validation.
type Validator interface {
	Validate() error
}

// Load loads configuration from filename into target. Files ending in .toml
// are decoded as TOML, everything else as YAML. ${VAR} references are
// expanded before decoding.
func Load[T any](filename string, target *T) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", filename, err)
	}

	expandedData := os.ExpandEnv(string(data))

	if err := decode(filename, expandedData, target); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", filename, err)
	}

	if validator, ok := any(target).(Validator); ok {
		if err := validator.Validate(); err != nil {
			return fmt.Errorf("config validation failed: %w", err)
		}
	}

	return nil
}

func decode(filename, data string, target any) error {
	if strings.EqualFold(filepath.Ext(filename), ".toml") {
		_, err := toml.Decode(data, target)
		return err
	}
	return yaml.Unmarshal([]byte(data), target)
}

// LoadWithDefaults loads filename, or defaultFile when filename does not
// exist. It fails when neither is usable.
func LoadWithDefaults[T any](filename, defaultFile string, target *T) error {
	_, err := os.Stat(filename)
	switch {
	case err == nil:
		return Load(filename, target)
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("failed to stat config file %s: %w", filename, err)
	case defaultFile == "":
		return fmt.Errorf("config file not found: %s", filename)
	}
	return Load(defaultFile, target)
}
