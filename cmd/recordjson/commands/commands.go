// Copyright 2026 The recordjson Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the recordjson command tree.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/recordjson/recordjson/cmd/recordjson/cli"
	rendercmd "github.com/recordjson/recordjson/cmd/recordjson/render"
	schemacmd "github.com/recordjson/recordjson/cmd/recordjson/schema"
	"github.com/recordjson/recordjson/lib/version"
)

// Root builds and returns the complete recordjson command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "recordjson",
		Description: `recordjson: canonical JSON for schema-defined records.

Record types come from schema definition files (YAML or JSONC). Values
are read from YAML, JSONC, or CBOR documents and --set assignments, and
printed as canonical JSON: declaration-order keys, JSON names, quoted
64-bit integers, and optionally every unset field with its default.`,
		Subcommands: []*cli.Command{
			rendercmd.ExampleCommand(),
			rendercmd.Command(),
			rendercmd.DigestCommand(),
			schemacmd.Command(),
			versionCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "Print the built-in product with every default",
				Command:     "recordjson example",
			},
			{
				Description: "Render a record from a YAML file",
				Command:     "recordjson render --schema catalog.yaml --type Item --input item.yaml",
			},
			{
				Description: "Check a schema definition",
				Command:     "recordjson schema validate catalog.yaml",
			},
		},
	}
}

type versionParams struct {
	cli.JSONOutput
}

func versionCommand() *cli.Command {
	var params versionParams

	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Params:  func() any { return &params },
		Run: func(_ context.Context, _ []string, _ *slog.Logger) error {
			return runVersion(&params, os.Stdout)
		},
	}
}

func runVersion(params *versionParams, stdout io.Writer) error {
	if done, err := params.EmitJSON(stdout, version.Current()); done {
		return err
	}
	_, err := fmt.Fprintf(stdout, "recordjson %s\n", version.Full())
	return err
}
