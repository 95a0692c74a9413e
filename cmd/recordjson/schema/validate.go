// Copyright 2026 The recordjson Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/recordjson/recordjson/cmd/recordjson/cli"
	"github.com/recordjson/recordjson/lib/schemadef"
)

type validateParams struct {
	cli.JSONOutput
	ColorFlags
}

// validateResult is the outcome for one file.
type validateResult struct {
	Path    string   `json:"path"`
	Valid   bool     `json:"valid"`
	Package string   `json:"package,omitempty"`
	Records int      `json:"records"`
	Issues  []string `json:"issues,omitempty"`
}

func validateCommand() *cli.Command {
	var params validateParams

	return &cli.Command{
		Name:    "validate",
		Summary: "Check schema definition files",
		Description: `Parse, validate, and compile each schema definition file, reporting
every issue found. Files are checked together, so two files declaring
the same record full name are reported as a conflict.

Exits 0 if every file is valid and 1 otherwise.`,
		Usage: "recordjson schema validate FILE... [flags]",
		Examples: []cli.Example{
			{
				Description: "Validate two schemas that are used together",
				Command:     "recordjson schema validate catalog.yaml orders.jsonc",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			return runValidate(&params, args, os.Stdout, logger)
		},
	}
}

func runValidate(params *validateParams, paths []string, stdout io.Writer, logger *slog.Logger) error {
	if len(paths) == 0 {
		return cli.Validation("validate needs at least one schema file")
	}

	registry := schemadef.NewRegistry()
	results := make([]validateResult, 0, len(paths))
	failed := 0
	for _, path := range paths {
		result := validateResult{Path: path}
		set, err := registry.LoadFile(path)
		if err != nil {
			result.Issues = issues(err)
			failed++
		} else {
			result.Valid = true
			result.Package = set.Package()
			result.Records = len(set.Records())
		}
		logger.Debug("validated schema", "path", path, "valid", result.Valid, "issues", len(result.Issues))
		results = append(results, result)
	}

	if done, err := params.EmitJSON(stdout, results); done {
		if err != nil {
			return err
		}
	} else if err := printValidation(params, results, stdout); err != nil {
		return err
	}

	if failed > 0 {
		return &cli.ExitError{Code: 1}
	}
	return nil
}

// issues flattens a load error into one line per problem.
func issues(err error) []string {
	var validationError *schemadef.ValidationError
	if errors.As(err, &validationError) {
		return append([]string(nil), validationError.Issues...)
	}
	return []string{err.Error()}
}

func printValidation(params *validateParams, results []validateResult, stdout io.Writer) error {
	style, err := newStyles(stdout, params.Color)
	if err != nil {
		return err
	}
	for _, result := range results {
		if result.Valid {
			_, err = fmt.Fprintf(stdout, "%s  %s %s\n", style.good.Render("ok  "), result.Path,
				style.muted.Render(fmt.Sprintf("(%s, %d records)", result.Package, result.Records)))
		} else {
			_, err = fmt.Fprintf(stdout, "%s  %s\n", style.bad.Render("FAIL"), result.Path)
			for _, issue := range result.Issues {
				if err == nil {
					_, err = fmt.Fprintf(stdout, "        - %s\n", issue)
				}
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}
