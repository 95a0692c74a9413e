// Copyright 2026 The recordjson Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/recordjson/recordjson/cmd/recordjson/cli"
	"github.com/recordjson/recordjson/lib/fingerprint"
	"github.com/recordjson/recordjson/lib/schemadef"
)

type digestParams struct {
	InputFlags
	cli.JSONOutput
	Short bool `json:"short" flag:"short" desc:"print the 12-character short form"`
}

// digestResult is the --json output of "digest".
type digestResult struct {
	Type   string `json:"type"`
	Digest string `json:"digest"`
	Schema string `json:"schema_digest"`
}

// DigestCommand returns the "digest" command.
func DigestCommand() *cli.Command {
	var params digestParams

	return &cli.Command{
		Name:    "digest",
		Summary: "Print the fingerprint of a record",
		Description: `Build a record exactly as "render" does and print its BLAKE3
fingerprint.

The fingerprint covers the compact rendering with every default
included, so it does not depend on --defaults, --compact, or
whitespace, and two records with equal contents always share it.
With --json the output also carries the fingerprint of the schema that
declares the record type.`,
		Usage: "recordjson digest --type NAME [--schema FILE]... [--input FILE] [--set name=value]... [flags]",
		Examples: []cli.Example{
			{
				Description: "Fingerprint an empty product",
				Command:     "recordjson digest -t Product",
			},
			{
				Description: "Compare two values files",
				Command:     "recordjson digest -t Product -i a.yaml --short; recordjson digest -t Product -i b.json --short",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("digest takes no positional arguments, got %q", args[0])
			}
			return runDigest(&params, os.Stdin, os.Stdout, logger)
		},
	}
}

func runDigest(params *digestParams, stdin io.Reader, stdout io.Writer, logger *slog.Logger) error {
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
	built, err := buildRecord(descriptor, &params.InputFlags, stdin)
	if err != nil {
		return err
	}

	digest, err := fingerprint.Record(built)
	if err != nil {
		return renderError(err)
	}
	logger.Info("fingerprinted record", "type", descriptor.FullName(), "digest", digest.Short())

	text := digest.String()
	if params.Short {
		text = digest.Short()
	}

	if params.OutputJSON {
		result := digestResult{Type: string(descriptor.FullName()), Digest: text}
		if set := declaringSet(registry, descriptor); set != nil {
			schemaDigest, err := fingerprint.Schema(set)
			if err != nil {
				return cli.Internal("fingerprinting schema %s: %w", set.Package(), err)
			}
			result.Schema = schemaDigest.String()
		}
		_, err := params.EmitJSON(stdout, result)
		return err
	}

	_, err = fmt.Fprintln(stdout, text)
	return err
}

// declaringSet returns the registered set whose file declares
// descriptor.
func declaringSet(registry *schemadef.Registry, descriptor protoreflect.MessageDescriptor) *schemadef.Set {
	path := descriptor.ParentFile().Path()
	for _, set := range registry.Sets() {
		if set.File().Path() == path {
			return set
		}
	}
	return nil
}
