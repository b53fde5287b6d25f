// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/chunklist/lib/chunklist"
)

// EnvironmentVariable names the variable [Load] reads the config path from.
const EnvironmentVariable = "CNKL_CONFIG"

// Config holds defaults for the cnkl commands.
type Config struct {
	// ChunkSize is the nominal chunk size for generation.
	// Default: 10MiB
	ChunkSize ByteSize `yaml:"chunk_size"`

	// SignatureMethod is recorded in generated headers: none, rev1, or rev2.
	// Default: rev1
	SignatureMethod string `yaml:"signature_method"`

	// Extensions is the sidecar probe order used by verify when no
	// chunklist path is given. The first entry is also the extension
	// generate appends.
	// Default: [chunklist, integrityDataV1]
	Extensions []string `yaml:"extensions"`

	// OutputDirectory, if set, is where generate writes chunklists
	// instead of next to the source file.
	OutputDirectory string `yaml:"output_directory"`

	// LogLevel is one of debug, info, warn, error.
	// Default: info
	LogLevel string `yaml:"log_level"`

	// Verbose enables per-chunk progress output.
	Verbose bool `yaml:"verbose"`
}

// ByteSize is a byte count that unmarshals from either a YAML integer
// or a human-readable size string.
type ByteSize uint64

// UnmarshalYAML accepts 65536, "65536", "64KiB", "10 MB" and similar.
func (b *ByteSize) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: size must be a scalar", node.Line)
	}
	parsed, err := ParseByteSize(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*b = parsed
	return nil
}

// MarshalYAML writes the size in IEC form ("10 MiB").
func (b ByteSize) MarshalYAML() (any, error) {
	return b.String(), nil
}

func (b ByteSize) String() string {
	return humanize.IBytes(uint64(b))
}

// ParseByteSize parses a size string. Plain digits are bytes.
func ParseByteSize(text string) (ByteSize, error) {
	text = strings.TrimSpace(text)
	if value, err := strconv.ParseUint(text, 10, 64); err == nil {
		return ByteSize(value), nil
	}
	value, err := humanize.ParseBytes(text)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", text, err)
	}
	return ByteSize(value), nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		ChunkSize:       chunklist.DefaultChunkSize,
		SignatureMethod: chunklist.SignatureRev1.String(),
		Extensions:      append([]string(nil), chunklist.DefaultExtensions...),
		LogLevel:        "info",
	}
}

// Load loads configuration from the file named by CNKL_CONFIG, or
// returns [Default] when the variable is unset.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path. Fields the
// file omits keep their [Default] values.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.expandVariables()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.OutputDirectory = expandVars(c.OutputDirectory, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors. All problems are
// reported together.
func (c *Config) Validate() error {
	var errs []error

	if c.ChunkSize == 0 || uint64(c.ChunkSize) > chunklist.MaxChunkSize {
		errs = append(errs, fmt.Errorf("chunk_size %d must be between 1 and %d bytes",
			uint64(c.ChunkSize), uint64(chunklist.MaxChunkSize)))
	}

	if _, err := chunklist.ParseSignatureMethod(c.SignatureMethod); err != nil {
		errs = append(errs, fmt.Errorf("signature_method: %w", err))
	}

	if len(c.Extensions) == 0 {
		errs = append(errs, fmt.Errorf("extensions must not be empty"))
	}
	for _, extension := range c.Extensions {
		if extension == "" || strings.ContainsRune(extension, os.PathSeparator) {
			errs = append(errs, fmt.Errorf("invalid extension %q", extension))
		}
	}

	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// SignatureMethodValue returns the parsed signature method.
func (c *Config) SignatureMethodValue() chunklist.SignatureMethod {
	method, err := chunklist.ParseSignatureMethod(c.SignatureMethod)
	if err != nil {
		return chunklist.SignatureRev1
	}
	return method
}

// SlogLevel maps LogLevel to a slog.Level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level %q: want debug, info, warn, or error", c.LogLevel)
	}
	return level, nil
}
