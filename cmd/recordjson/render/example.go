// Copyright 2026 The recordjson Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/recordjson/recordjson/cmd/recordjson/cli"
	"github.com/recordjson/recordjson/lib/highlight"
	"github.com/recordjson/recordjson/lib/playground"
	"github.com/recordjson/recordjson/lib/printer"
	"github.com/recordjson/recordjson/lib/record"
)

type exampleParams struct {
	Compact bool   `json:"compact" flag:"compact,c" desc:"omit whitespace between tokens"`
	Omit    bool   `json:"omit"    flag:"omit"      desc:"omit default-valued fields (prints {})"`
	Color   string `json:"color"   flag:"color"     desc:"colour output on a terminal: auto, always, or never" default:"auto"`
	Schema  bool   `json:"schema"  flag:"schema"    desc:"print the built-in schema definition instead"`
}

// ExampleCommand returns the "example" command.
func ExampleCommand() *cli.Command {
	var params exampleParams

	return &cli.Command{
		Name:    "example",
		Summary: "Print an empty playground.v1.Product with every default",
		Description: `Build a playground.v1.Product with no fields set and print it with
every default value included.

This is the quickest way to see the shape of the printer's output: each
declared field appears under its JSON name, the unset dimensions record
is rendered as an all-default object, and the 64-bit stock count is a
string. --schema prints the built-in schema definition instead.`,
		Usage: "recordjson example [flags]",
		Examples: []cli.Example{
			{
				Description: "Print the example on one line",
				Command:     "recordjson example --compact",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("example takes no positional arguments, got %q", args[0])
			}
			return runExample(&params, os.Stdout)
		},
	}
}

func runExample(params *exampleParams, stdout io.Writer) error {
	if params.Schema {
		_, err := stdout.Write(playground.Source())
		return err
	}

	mode, err := highlight.ParseMode(params.Color)
	if err != nil {
		return cli.Validation("%w", err)
	}

	options := printer.Options{IncludeDefaults: !params.Omit, CompactWhitespace: params.Compact}
	text, err := printer.Render(record.Empty(playground.Product()), options)
	if err != nil {
		return renderError(err)
	}
	_, err = io.WriteString(stdout, highlight.JSON(text+"\n", highlight.ProfileFor(mode, stdout)))
	return err
}
