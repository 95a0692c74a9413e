// Copyright 2026 The recordjson Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/recordjson/recordjson/cmd/recordjson/cli"
)

type renderParams struct {
	InputFlags
	OutputFlags
}

// Command returns the "render" command.
func Command() *cli.Command {
	var params renderParams

	return &cli.Command{
		Name:    "render",
		Summary: "Render a record as canonical JSON",
		Description: `Build a record of the given type and print its canonical JSON form.

Field values come from an input document (--input) and individual
--set assignments, applied in that order. The input is an object keyed
by field name (declared or JSON spelling), with nested objects for
record fields and arrays for repeated fields. YAML, JSONC, and CBOR
inputs are accepted; a .zst or .lz4 suffix is decompressed first.

By default only fields that were set are printed. --defaults prints
every declared field, rendering unset nested records as all-default
objects. --compact removes all whitespace between tokens. Both
defaults can come from the config file; --omit and --readable turn
them back off for one call.

Keys appear in schema declaration order under their JSON names. 64-bit
integers are printed as decimal strings and non-finite floats as
"NaN", "Infinity", or "-Infinity".

--format cbor writes the same value tree as deterministic CBOR;
cbor-diag writes its diagnostic notation. Record types come from the
built-in playground schema, the schemas listed in the config file, and
--schema files.`,
		Usage: "recordjson render --type NAME [--schema FILE]... [--input FILE] [--set name=value]... [flags]",
		Examples: []cli.Example{
			{
				Description: "Render the built-in product with two fields set",
				Command:     "recordjson render -t Product --set name=widget --set tags='[a, b]'",
			},
			{
				Description: "Render a record from a values file with every default included",
				Command:     "recordjson render --schema catalog.yaml -t acme.Item -i item.yaml --defaults --compact",
			},
			{
				Description: "Write zstd-compressed CBOR to a file",
				Command:     "recordjson render -t Product -i product.json -f cbor -o product.cbor.zst",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("render takes no positional arguments, got %q", args[0])
			}
			return runRender(&params, os.Stdin, os.Stdout, logger)
		},
	}
}

// runRender builds the requested record and writes its rendering.
func runRender(params *renderParams, stdin io.Reader, stdout io.Writer, logger *slog.Logger) error {
	cfg, err := params.ConfigFlags.Load()
	if err != nil {
		return err
	}
	registry, err := params.LoadRegistry(cfg)
	if err != nil {
		return err
	}
	descriptor, err := resolveType(registry, params.Type)
	if err != nil {
		return err
	}
	plan, err := resolvePlan(&params.OutputFlags, cfg, stdout)
	if err != nil {
		return err
	}

	built, err := buildRecord(descriptor, &params.InputFlags, stdin)
	if err != nil {
		return err
	}
	data, err := plan.encode(built)
	if err != nil {
		return err
	}
	if err := plan.write(data, stdout); err != nil {
		return err
	}

	logger.Info("rendered record",
		"type", descriptor.FullName(),
		"options", plan.options.String(),
		"format", plan.format,
		"destination", plan.destination.Describe(),
		"compression", plan.destination.Compression.String(),
		"bytes", len(data),
	)
	return nil
}
