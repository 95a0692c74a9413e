// Copyright 2026 The recordjson Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"sort"

	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the config file when --config is absent.
const EnvironmentVariable = "RECORDJSON_CONFIG"

// Config is the recordjson configuration file.
type Config struct {
	// Profile selects an entry of Profiles to apply over the base
	// values. Empty means none.
	Profile string `yaml:"profile"`

	// Render holds the default printer options.
	Render RenderConfig `yaml:"render"`

	// Output configures where and how rendered text is written.
	Output OutputConfig `yaml:"output"`

	// Schemas lists schema files loaded before every command, so record
	// types can be named without --schema.
	Schemas SchemasConfig `yaml:"schemas"`

	// Profiles are named overrides.
	Profiles map[string]*Overrides `yaml:"profiles,omitempty"`
}

// RenderConfig holds printer defaults. Command-line flags override
// them.
type RenderConfig struct {
	// IncludeDefaults emits fields left at their default value.
	IncludeDefaults bool `yaml:"include_defaults"`

	// Compact omits whitespace between tokens.
	Compact bool `yaml:"compact"`

	// Format is "json", "cbor", or "cbor-diag".
	Format string `yaml:"format"`
}

// OutputConfig configures output delivery.
type OutputConfig struct {
	// Color is "auto", "always", or "never".
	Color string `yaml:"color"`

	// Compression is "none", "zstd", or "lz4". It applies only to
	// output written to a file.
	Compression string `yaml:"compression"`
}

// SchemasConfig lists preloaded schema files.
type SchemasConfig struct {
	// Root is the directory relative paths are resolved against. It is
	// available to the other fields as ${RECORDJSON_SCHEMAS}.
	Root string `yaml:"root"`

	// Paths are schema documents to load, in order.
	Paths []string `yaml:"paths"`
}

// Overrides contains the fields a profile can override. Nil means
// "inherit".
type Overrides struct {
	IncludeDefaults *bool   `yaml:"include_defaults,omitempty"`
	Compact         *bool   `yaml:"compact,omitempty"`
	Format          *string `yaml:"format,omitempty"`
	Color           *string `yaml:"color,omitempty"`
	Compression     *string `yaml:"compression,omitempty"`
}

// Default returns the configuration used when no file is given: the
// printer's conventional behaviour (omit defaults, readable output),
// colour when writing to a terminal, no compression.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			Format: "json",
		},
		Output: OutputConfig{
			Color:       "auto",
			Compression: "none",
		},
	}
}

// Load loads configuration from the file named by RECORDJSON_CONFIG.
// It fails if the variable is not set.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your recordjson.yaml config file, or use --config flag", EnvironmentVariable)
	}
	return LoadFile(configPath)
}

// Resolve loads the file named by flagPath, or by RECORDJSON_CONFIG
// when flagPath is empty. With neither set it returns [Default].
func Resolve(flagPath string) (*Config, error) {
	if flagPath != "" {
		return LoadFile(flagPath)
	}
	if os.Getenv(EnvironmentVariable) != "" {
		return Load()
	}
	return Default(), nil
}

// LoadFile loads configuration from a specific file path, applies the
// selected profile, expands variables, and validates the result.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := cfg.decode(data); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.ApplyProfile(cfg.Profile); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	cfg.expandVariables()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// decode merges a YAML document into c, rejecting unknown keys. An
// empty file leaves c unchanged.
func (c *Config) decode(data []byte) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ApplyProfile applies the named profile's overrides. The empty name
// is a no-op.
func (c *Config) ApplyProfile(name string) error {
	if name == "" {
		return nil
	}
	overrides, ok := c.Profiles[name]
	if !ok {
		return fmt.Errorf("profile %q is not defined (have %v)", name, c.ProfileNames())
	}
	c.Profile = name
	if overrides == nil {
		return nil
	}

	if overrides.IncludeDefaults != nil {
		c.Render.IncludeDefaults = *overrides.IncludeDefaults
	}
	if overrides.Compact != nil {
		c.Render.Compact = *overrides.Compact
	}
	if overrides.Format != nil {
		c.Render.Format = *overrides.Format
	}
	if overrides.Color != nil {
		c.Output.Color = *overrides.Color
	}
	if overrides.Compression != nil {
		c.Output.Compression = *overrides.Compression
	}
	return nil
}

// ProfileNames returns the defined profile names, sorted.
func (c *Config) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.Schemas.Root = expandVars(c.Schemas.Root, vars)
	vars["RECORDJSON_SCHEMAS"] = c.Schemas.Root

	for index, path := range c.Schemas.Paths {
		c.Schemas.Paths[index] = expandVars(path, vars)
	}
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns, preferring
// vars over the process environment.
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

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if !slices.Contains([]string{"json", "cbor", "cbor-diag"}, c.Render.Format) {
		errs = append(errs, fmt.Errorf("render.format must be json, cbor, or cbor-diag, got %q", c.Render.Format))
	}
	if !slices.Contains([]string{"auto", "always", "never"}, c.Output.Color) {
		errs = append(errs, fmt.Errorf("output.color must be auto, always, or never, got %q", c.Output.Color))
	}
	if !slices.Contains([]string{"none", "zstd", "lz4"}, c.Output.Compression) {
		errs = append(errs, fmt.Errorf("output.compression must be none, zstd, or lz4, got %q", c.Output.Compression))
	}
	for index, path := range c.Schemas.Paths {
		if path == "" {
			errs = append(errs, fmt.Errorf("schemas.paths[%d] is empty", index))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// SchemaPaths returns Schemas.Paths with relative entries resolved
// against Schemas.Root.
func (c *Config) SchemaPaths() []string {
	paths := make([]string, len(c.Schemas.Paths))
	for index, path := range c.Schemas.Paths {
		if c.Schemas.Root != "" && !filepath.IsAbs(path) {
			path = filepath.Join(c.Schemas.Root, path)
		}
		paths[index] = path
	}
	return paths
}
