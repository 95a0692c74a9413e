// Copyright 2026 The recordjson Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the recordjson
// command.
//
// Configuration is loaded from a single file named by either the
// RECORDJSON_CONFIG environment variable (via [Load]) or the --config
// flag (via [LoadFile]). There is no ~/.config discovery and no
// automatic file search. Without either, the command runs on [Default].
//
// The file may define named profiles (for example "ci" or "pretty")
// whose settings override the base values when the top-level profile
// key, or the --profile flag, selects them. Unlike the base section,
// profile values are pointers, so a profile can switch a setting off.
//
// Variable expansion is performed on path fields after loading:
// ${HOME}, ${RECORDJSON_SCHEMAS}, and ${VAR:-default} patterns are
// expanded. No other environment variables override config values.
//
// This package depends on no other recordjson packages.
package config
