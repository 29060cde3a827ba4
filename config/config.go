// Package config loads splitpack settings from a YAML file.
//
// Configuration comes from exactly one file named with --config. There
// is no search path and no environment override; flags given on the
// command line are applied on top by the caller.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the defaults for every splitpack command.
type Config struct {
	// Algorithm is a comma-separated chain applied in order when
	// compressing and in reverse when decompressing.
	Algorithm string `yaml:"algorithm"`

	// Extension is appended to compressed files and stripped from
	// decompressed ones.
	Extension string `yaml:"extension"`

	// Progress shows a progress bar while split coding.
	Progress bool `yaml:"progress"`

	// Verify decodes every freshly written archive and compares
	// digests before reporting success.
	Verify bool `yaml:"verify"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	Benchmark BenchmarkConfig `yaml:"benchmark"`
}

// BenchmarkConfig configures --benchmark.
type BenchmarkConfig struct {
	// Algorithms compared against each other.
	Algorithms []string `yaml:"algorithms"`

	// Report, when set, receives the results CBOR-encoded.
	Report string `yaml:"report"`
}

func Default() *Config {
	return &Config{
		Algorithm: "splitcode",
		Extension: ".spk",
		Progress:  true,
		Verify:    false,
		LogLevel:  "info",
		Benchmark: BenchmarkConfig{
			Algorithms: []string{"splitcode", "gzip", "zstd", "lz4"},
		},
	}
}

// LoadFile reads path on top of Default. Unknown keys are errors so a
// misspelt setting does not silently fall back to its default.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if len(c.Algorithms()) == 0 {
		return errors.New("algorithm must not be empty")
	}
	if c.Extension == "" {
		return errors.New("extension must not be empty")
	}
	if !strings.HasPrefix(c.Extension, ".") {
		return fmt.Errorf("extension %q must start with a dot", c.Extension)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if len(c.Benchmark.Algorithms) == 0 {
		return errors.New("benchmark.algorithms must list at least one algorithm")
	}
	return nil
}

// Algorithms splits Algorithm into its chain.
func (c *Config) Algorithms() []string {
	var chain []string
	for _, name := range strings.Split(c.Algorithm, ",") {
		if name = strings.TrimSpace(name); name != "" {
			chain = append(chain, name)
		}
	}
	return chain
}

func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}
