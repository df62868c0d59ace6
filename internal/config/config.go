// Package config reads the optional host configuration file. Command-line
// flags override anything set here.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config carries the host settings of a murmur process.
type Config struct {
	Debug    bool   `yaml:"debug"`
	NoColor  bool   `yaml:"no_color"`
	MaxSteps uint64 `yaml:"max_steps"`
	Prompt   string `yaml:"prompt"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{Prompt: "» "}
}

// DefaultPath returns the conventional config location, or "" when the home
// directory cannot be determined.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".murmur.yaml")
}

// Load reads the config file at path. A missing or empty file yields the
// defaults; unknown keys are errors.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.Prompt == "" {
		cfg.Prompt = Default().Prompt
	}

	return cfg, nil
}

// Save serialises the config to path.
func Save(cfg Config, path string) error {
	if path == "" {
		return fmt.Errorf("config: missing path")
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("config: marshal %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("config: encoder close: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}

	return nil
}
