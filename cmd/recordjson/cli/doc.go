// Copyright 2026 The recordjson Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the recordjson
// command.
//
// The central type is [Command], which represents a named subcommand
// with optional nested [Command.Subcommands], a parameter struct
// factory, and a Run function. Commands are assembled into a tree in
// cmd/recordjson/commands and dispatched via [Command.Execute], which
// handles flag parsing, subcommand routing, and structured help output
// with examples.
//
// Flags are declared as tagged struct fields and bound with
// [BindFlags]. Parameter structs compose by embedding: [JSONOutput]
// adds --json, [ConfigFlags] adds --config and --profile, and
// [SchemaFlags] adds --schema.
//
// When a user types an unknown subcommand or flag, the framework
// computes Levenshtein edit distance against all known names and
// suggests the closest match (threshold: distance <= 3).
package cli
