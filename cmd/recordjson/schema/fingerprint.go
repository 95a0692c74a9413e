// Copyright 2026 The recordjson Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/recordjson/recordjson/cmd/recordjson/cli"
	"github.com/recordjson/recordjson/lib/fingerprint"
	"github.com/recordjson/recordjson/lib/schemadef"
)

type fingerprintParams struct {
	cli.JSONOutput
	Short bool `json:"short" flag:"short" desc:"print the 12-character short form"`
}

type fingerprintResult struct {
	Path        string `json:"path"`
	Package     string `json:"package"`
	Fingerprint string `json:"fingerprint"`
}

func fingerprintCommand() *cli.Command {
	var params fingerprintParams

	return &cli.Command{
		Name:    "fingerprint",
		Summary: "Print the content fingerprint of schema definitions",
		Description: `Compile each schema definition and print a BLAKE3 fingerprint of the
compiled descriptors. The fingerprint depends on packages, record and
field names, types, and field numbers. It ignores descriptions, comments,
formatting, and the file's location, so a YAML schema and its JSONC
equivalent share a fingerprint.`,
		Usage: "recordjson schema fingerprint FILE... [flags]",
		Examples: []cli.Example{
			{
				Description: "Check whether two schema files are equivalent",
				Command:     "recordjson schema fingerprint catalog.yaml catalog.jsonc",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			return runFingerprint(&params, args, os.Stdout)
		},
	}
}

func runFingerprint(params *fingerprintParams, paths []string, stdout io.Writer) error {
	if len(paths) == 0 {
		return cli.Validation("fingerprint needs at least one schema file")
	}

	results := make([]fingerprintResult, 0, len(paths))
	for _, path := range paths {
		set, err := schemadef.Load(path)
		if err != nil {
			return cli.SchemaError(err)
		}
		digest, err := fingerprint.Schema(set)
		if err != nil {
			return cli.Internal("%w", err)
		}
		text := digest.String()
		if params.Short {
			text = digest.Short()
		}
		results = append(results, fingerprintResult{Path: path, Package: set.Package(), Fingerprint: text})
	}

	if done, err := params.EmitJSON(stdout, results); done {
		return err
	}
	for _, result := range results {
		if _, err := fmt.Fprintf(stdout, "%s  %s\n", result.Fingerprint, result.Path); err != nil {
			return err
		}
	}
	return nil
}
