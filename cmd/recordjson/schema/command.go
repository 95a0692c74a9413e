// Copyright 2026 The recordjson Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/recordjson/recordjson/cmd/recordjson/cli"
	"github.com/recordjson/recordjson/lib/highlight"
)

// Command returns the "schema" command group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "schema",
		Summary: "Validate, describe, and fingerprint schema definitions",
		Description: `Tools for working with schema definition files.

A schema definition names a package, an optional version, and a list of
record types with typed fields. Definitions are YAML (.yaml, .yml) or
JSONC (.json, .jsonc; comments and trailing commas allowed). Field types
are string, bool, the protobuf numeric scalars, and records declared in
the same file, each optionally repeated.`,
		Subcommands: []*cli.Command{
			validateCommand(),
			describeCommand(),
			fingerprintCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "Check a schema before using it",
				Command:     "recordjson schema validate catalog.yaml",
			},
			{
				Description: "Show the fields and JSON keys of every known record",
				Command:     "recordjson schema describe",
			},
		},
	}
}

// ColorFlags adds --color to a params struct.
type ColorFlags struct {
	Color string `json:"color" flag:"color" desc:"colour output on a terminal: auto, always, or never" default:"auto"`
}

// styles are the text styles of schema command output.
type styles struct {
	heading lipgloss.Style
	muted   lipgloss.Style
	good    lipgloss.Style
	bad     lipgloss.Style

	// profile renders markdown descriptions.
	profile termenv.Profile
}

// newStyles builds styles for w. Output that is not coloured gets
// plain text.
func newStyles(w io.Writer, colour string) (styles, error) {
	mode, err := highlight.ParseMode(colour)
	if err != nil {
		return styles{}, cli.Validation("%w", err)
	}
	profile := highlight.ProfileFor(mode, w)
	renderer := lipgloss.NewRenderer(w, termenv.WithProfile(profile))
	renderer.SetColorProfile(profile)

	return styles{
		heading: renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		muted:   renderer.NewStyle().Foreground(lipgloss.Color("8")),
		good:    renderer.NewStyle().Foreground(lipgloss.Color("10")),
		bad:     renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		profile: profile,
	}, nil
}
