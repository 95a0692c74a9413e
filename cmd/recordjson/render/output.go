// Copyright 2026 The recordjson Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/recordjson/recordjson/cmd/recordjson/cli"
	"github.com/recordjson/recordjson/lib/codec"
	"github.com/recordjson/recordjson/lib/config"
	"github.com/recordjson/recordjson/lib/highlight"
	"github.com/recordjson/recordjson/lib/printer"
	"github.com/recordjson/recordjson/lib/record"
	"github.com/recordjson/recordjson/lib/schemadef"
	"github.com/recordjson/recordjson/lib/sink"
)

// outputFormat is a rendering of a record.
type outputFormat string

const (
	formatJSON     outputFormat = "json"
	formatCBOR     outputFormat = "cbor"
	formatCBORDiag outputFormat = "cbor-diag"
)

func parseOutputFormat(name string) (outputFormat, error) {
	switch outputFormat(name) {
	case formatJSON, formatCBOR, formatCBORDiag:
		return outputFormat(name), nil
	default:
		return "", fmt.Errorf("unknown format %q (want json, cbor, or cbor-diag)", name)
	}
}

// OutputFlags select the printer options and the destination. Each
// printer option has a flag for either setting, so a single call can
// override the configuration both ways.
type OutputFlags struct {
	Defaults bool   `json:"defaults" flag:"defaults,d" desc:"include fields left at their default value"`
	Omit     bool   `json:"omit"     flag:"omit"       desc:"leave out fields at their default value, even if the config includes them"`
	Compact  bool   `json:"compact"  flag:"compact,c"  desc:"omit whitespace between tokens"`
	Readable bool   `json:"readable" flag:"readable"   desc:"indent the output, even if the config asks for compact"`
	Format   string `json:"format"   flag:"format,f"   desc:"output format: json, cbor, or cbor-diag (default from config, else json)"`
	Output   string `json:"output"   flag:"output,o"   desc:"write to this file instead of stdout; replaced atomically"`
	Compress string `json:"compress" flag:"compress"   desc:"compress output: none, zstd, or lz4 (default from the --output suffix or config)"`
	Color    string `json:"color"    flag:"color"      desc:"colour JSON on a terminal: auto, always, or never (default from config)"`
}

// plan is a fully-resolved output request.
type plan struct {
	options     printer.Options
	format      outputFormat
	destination *sink.Sink
	colour      highlight.Mode
}

// resolvePlan merges flags over the configuration.
func resolvePlan(flags *OutputFlags, cfg *config.Config, stdout io.Writer) (*plan, error) {
	includeDefaults, err := override(cfg.Render.IncludeDefaults, flags.Defaults, flags.Omit, "--defaults", "--omit")
	if err != nil {
		return nil, err
	}
	compact, err := override(cfg.Render.Compact, flags.Compact, flags.Readable, "--compact", "--readable")
	if err != nil {
		return nil, err
	}
	result := &plan{
		options: printer.Options{
			IncludeDefaults:   includeDefaults,
			CompactWhitespace: compact,
		},
	}

	formatName := firstNonEmpty(flags.Format, cfg.Render.Format, string(formatJSON))
	format, err := parseOutputFormat(formatName)
	if err != nil {
		return nil, cli.Validation("%w", err)
	}
	result.format = format

	colour, err := highlight.ParseMode(firstNonEmpty(flags.Color, cfg.Output.Color))
	if err != nil {
		return nil, cli.Validation("%w", err)
	}
	result.colour = colour

	compression := sink.CompressionNone
	switch {
	case flags.Compress != "":
		compression, err = sink.ParseCompression(flags.Compress)
		if err != nil {
			return nil, cli.Validation("%w", err)
		}
	case flags.Output != "" && flags.Output != sink.Stdout:
		compression, _ = sink.CompressionFromPath(flags.Output)
		if compression == sink.CompressionNone {
			compression, err = sink.ParseCompression(cfg.Output.Compression)
			if err != nil {
				return nil, cli.Validation("%w", err)
			}
		}
	}
	result.destination = sink.New(flags.Output, compression, stdout)
	return result, nil
}

// override applies an on/off flag pair over a configured value.
func override(configured, on, off bool, onName, offName string) (bool, error) {
	switch {
	case on && off:
		return false, cli.Validation("%s and %s cannot be combined", onName, offName)
	case on:
		return true, nil
	case off:
		return false, nil
	default:
		return configured, nil
	}
}

// encode renders r in the planned format. Text formats end in a
// newline.
func (p *plan) encode(r *record.Record) ([]byte, error) {
	switch p.format {
	case formatCBOR, formatCBORDiag:
		data, err := printer.RenderCBOR(r, p.options)
		if err != nil {
			return nil, renderError(err)
		}
		if p.format == formatCBOR {
			return data, nil
		}
		diagnostic, err := codec.Diagnose(data)
		if err != nil {
			return nil, cli.Internal("diagnosing CBOR: %w", err)
		}
		return []byte(diagnostic + "\n"), nil

	default:
		data, err := printer.New(p.options).AppendPrint(nil, r)
		if err != nil {
			return nil, renderError(err)
		}
		return append(data, '\n'), nil
	}
}

// write delivers data, colouring JSON bound for an uncompressed stream.
func (p *plan) write(data []byte, stdout io.Writer) error {
	if p.format == formatJSON && p.destination.Path == "" && p.destination.Compression == sink.CompressionNone {
		data = []byte(highlight.JSON(string(data), highlight.ProfileFor(p.colour, stdout)))
	}
	if err := p.destination.Write(data); err != nil {
		return cli.Internal("%w", err)
	}
	return nil
}

func renderError(err error) error {
	var unsupported *printer.UnsupportedFieldError
	if errors.As(err, &unsupported) {
		return cli.Unsupported("%w", err)
	}
	return cli.Internal("%w", err)
}

// resolveType looks up --type in the registry.
func resolveType(registry *schemadef.Registry, name string) (protoreflect.MessageDescriptor, error) {
	if name == "" {
		return nil, cli.Validation("--type is required").
			WithHint("Known record types: " + strings.Join(knownTypes(registry), ", "))
	}
	descriptor, err := registry.Lookup(name)
	if err != nil {
		if errors.Is(err, schemadef.ErrUnknownRecord) {
			return nil, cli.NotFound("%w", err).
				WithHint("Known record types: " + strings.Join(knownTypes(registry), ", "))
		}
		return nil, cli.Validation("%w", err)
	}
	return descriptor, nil
}

func knownTypes(registry *schemadef.Registry) []string {
	var names []string
	for _, set := range registry.Sets() {
		for _, descriptor := range set.Records() {
			names = append(names, string(descriptor.FullName()))
		}
	}
	return names
}

// firstNonEmpty returns the first non-empty value, matching cmp.Or
// (Go 1.22) for strings.
func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
