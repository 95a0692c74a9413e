// Copyright 2026 The recordjson Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"os"

	"github.com/spf13/pflag"

	"github.com/recordjson/recordjson/lib/config"
	"github.com/recordjson/recordjson/lib/playground"
	"github.com/recordjson/recordjson/lib/schemadef"
)

// ConfigFlags holds the shared --config and --profile flags. Embed it
// in a params struct; [BindFlags] binds it through AddFlags.
type ConfigFlags struct {
	Path    string
	Profile string
}

// AddFlags registers --config and --profile on the given flag set.
func (c *ConfigFlags) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&c.Path, "config", "", "path to recordjson.yaml (default: $"+config.EnvironmentVariable+")")
	flagSet.StringVar(&c.Profile, "profile", "", "config profile to apply over the base settings")
}

// Load resolves the configuration file and applies --profile over
// whatever profile the file itself selects.
func (c *ConfigFlags) Load() (*config.Config, error) {
	cfg, err := config.Resolve(c.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, NotFound("%w", err)
		}
		return nil, Validation("%w", err)
	}
	if c.Profile != "" {
		if err := cfg.ApplyProfile(c.Profile); err != nil {
			return nil, Validation("%w", err)
		}
		if err := cfg.Validate(); err != nil {
			return nil, Validation("profile %s: %w", c.Profile, err)
		}
	}
	return cfg, nil
}

// SchemaFlags holds the repeatable --schema flag.
type SchemaFlags struct {
	Schemas []string `json:"schemas" flag:"schema" desc:"schema definition file (.yaml, .yml, .json, .jsonc); repeatable"`
}

// LoadRegistry builds the registry a command resolves record types
// against: the built-in playground schema, then the files listed in
// the configuration, then --schema files, in that order.
func (s *SchemaFlags) LoadRegistry(cfg *config.Config) (*schemadef.Registry, error) {
	registry := schemadef.NewRegistry()
	if err := registry.Add(playground.Set()); err != nil {
		return nil, Internal("registering playground schema: %w", err)
	}

	paths := append(cfg.SchemaPaths(), s.Schemas...)
	for _, path := range paths {
		if _, err := registry.LoadFile(path); err != nil {
			return nil, SchemaError(err)
		}
	}
	return registry, nil
}

// SchemaError categorizes a schema loading failure.
func SchemaError(err error) *ToolError {
	if errors.Is(err, os.ErrNotExist) {
		return NotFound("%w", err)
	}
	return Validation("%w", err)
}
