// Copyright 2026 The recordjson Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/recordjson/recordjson/cmd/recordjson/cli"
	"github.com/recordjson/recordjson/lib/fingerprint"
	"github.com/recordjson/recordjson/lib/highlight"
	"github.com/recordjson/recordjson/lib/schemadef"
)

type describeParams struct {
	cli.JSONOutput
	cli.ConfigFlags
	ColorFlags
	Type string `json:"type" flag:"type,t" desc:"describe only this record type"`
}

// schemaSummary describes one compiled schema.
type schemaSummary struct {
	Source      string          `json:"source,omitempty"`
	Package     string          `json:"package"`
	Fingerprint string          `json:"fingerprint"`
	Records     []recordSummary `json:"records"`

	short string
}

type recordSummary struct {
	Name        string         `json:"name"`
	FullName    string         `json:"full_name"`
	Description string         `json:"description,omitempty"`
	Fields      []fieldSummary `json:"fields"`
}

type fieldSummary struct {
	Name        string `json:"name"`
	JSONName    string `json:"json_name"`
	Type        string `json:"type"`
	Number      int32  `json:"number"`
	Repeated    bool   `json:"repeated,omitempty"`
	Optional    bool   `json:"optional,omitempty"`
	Description string `json:"description,omitempty"`
}

// typeLabel is the field type as shown in the text table.
func (f fieldSummary) typeLabel() string {
	switch {
	case f.Repeated:
		return "repeated " + f.Type
	case f.Optional:
		return "optional " + f.Type
	default:
		return f.Type
	}
}

func describeCommand() *cli.Command {
	var params describeParams

	return &cli.Command{
		Name:    "describe",
		Summary: "List the records and fields of schema definitions",
		Description: `Print each record type with its fields: declared name, type, the JSON
key the printer uses, and the protobuf field number.

With no files, describes every schema the other commands would load:
the built-in playground schema and the schemas listed in the config
file. With --type, only that record is shown.`,
		Usage: "recordjson schema describe [FILE]... [flags]",
		Examples: []cli.Example{
			{
				Description: "Describe the built-in product",
				Command:     "recordjson schema describe --type Product",
			},
			{
				Description: "Describe a schema file as JSON",
				Command:     "recordjson schema describe catalog.yaml --json",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			return runDescribe(&params, args, os.Stdout)
		},
	}
}

func runDescribe(params *describeParams, paths []string, stdout io.Writer) error {
	sets, err := loadSets(&params.ConfigFlags, paths)
	if err != nil {
		return err
	}

	summaries := make([]schemaSummary, 0, len(sets))
	matched := false
	for _, set := range sets {
		summary, err := summarize(set, params.Type)
		if err != nil {
			return err
		}
		if len(summary.Records) == 0 {
			continue
		}
		matched = true
		summaries = append(summaries, summary)
	}
	if params.Type != "" && !matched {
		return cli.NotFound("no schema declares record %q", params.Type)
	}

	if done, err := params.EmitJSON(stdout, summaries); done {
		return err
	}

	style, err := newStyles(stdout, params.Color)
	if err != nil {
		return err
	}
	var builder strings.Builder
	for index, summary := range summaries {
		if index > 0 {
			builder.WriteString("\n")
		}
		writeSummary(&builder, summary, style)
	}
	_, err = io.WriteString(stdout, builder.String())
	return err
}

// loadSets compiles the named files, or with none, the built-in and
// configured schemas.
func loadSets(configFlags *cli.ConfigFlags, paths []string) ([]*schemadef.Set, error) {
	if len(paths) > 0 {
		sets := make([]*schemadef.Set, 0, len(paths))
		for _, path := range paths {
			set, err := schemadef.Load(path)
			if err != nil {
				return nil, cli.SchemaError(err)
			}
			sets = append(sets, set)
		}
		return sets, nil
	}

	cfg, err := configFlags.Load()
	if err != nil {
		return nil, err
	}
	var schemas cli.SchemaFlags
	registry, err := schemas.LoadRegistry(cfg)
	if err != nil {
		return nil, err
	}
	return registry.Sets(), nil
}

// summarize describes set, keeping only the record named by only when
// it is not empty.
func summarize(set *schemadef.Set, only string) (schemaSummary, error) {
	digest, err := fingerprint.Schema(set)
	if err != nil {
		return schemaSummary{}, cli.Internal("%w", err)
	}
	document := set.Document()
	summary := schemaSummary{
		Source:      document.Source,
		Package:     set.Package(),
		Fingerprint: digest.String(),
		short:       digest.Short(),
		Records:     []recordSummary{},
	}

	for index, descriptor := range set.Records() {
		if only != "" && only != string(descriptor.Name()) && only != string(descriptor.FullName()) {
			continue
		}
		declared := document.Records[index]
		record := recordSummary{
			Name:        string(descriptor.Name()),
			FullName:    string(descriptor.FullName()),
			Description: declared.Description,
			Fields:      make([]fieldSummary, 0, descriptor.Fields().Len()),
		}
		for fieldIndex := 0; fieldIndex < descriptor.Fields().Len(); fieldIndex++ {
			field := descriptor.Fields().Get(fieldIndex)
			record.Fields = append(record.Fields, fieldSummary{
				Name:        string(field.Name()),
				JSONName:    field.JSONName(),
				Type:        fieldType(field),
				Number:      int32(field.Number()),
				Repeated:    field.IsList(),
				Optional:    field.HasOptionalKeyword(),
				Description: declared.Fields[fieldIndex].Description,
			})
		}
		summary.Records = append(summary.Records, record)
	}
	return summary, nil
}

// fieldType names a field's element type the way schema files spell it.
func fieldType(field protoreflect.FieldDescriptor) string {
	if field.Kind() == protoreflect.MessageKind {
		return string(field.Message().Name())
	}
	return field.Kind().String()
}

// writeSummary lays out one schema as a heading plus a field table per
// record. Descriptions are markdown. Columns are padded by display
// width, so styled cells line up.
func writeSummary(builder *strings.Builder, summary schemaSummary, style styles) {
	heading := summary.Package
	if summary.Source != "" {
		heading += "  " + style.muted.Render(summary.Source)
	}
	fmt.Fprintf(builder, "%s  %s\n", style.heading.Render(heading),
		style.muted.Render("fingerprint "+summary.short))

	for _, record := range summary.Records {
		builder.WriteString("\n")
		line := style.heading.Render(record.Name)
		if record.Description != "" {
			line += "  " + highlight.Description(record.Description, style.profile)
		}
		builder.WriteString(line + "\n")

		described := slices.ContainsFunc(record.Fields, func(field fieldSummary) bool {
			return field.Description != ""
		})
		header := []string{"FIELD", "TYPE", "JSON", "#"}
		if described {
			header = append(header, "DESCRIPTION")
		}
		rows := [][]string{header}
		for _, field := range record.Fields {
			row := []string{field.Name, field.typeLabel(), field.JSONName, fmt.Sprint(field.Number)}
			if described {
				row = append(row, highlight.Description(field.Description, style.profile))
			}
			rows = append(rows, row)
		}
		writeTable(builder, rows, style)
	}
}

func writeTable(builder *strings.Builder, rows [][]string, style styles) {
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for column, cell := range row {
			widths[column] = max(widths[column], ansi.StringWidth(cell))
		}
	}

	for index, row := range rows {
		var line strings.Builder
		line.WriteString("  ")
		for column, cell := range row {
			if index == 0 {
				cell = style.muted.Render(cell)
			}
			line.WriteString(cell)
			if column < len(row)-1 {
				line.WriteString(strings.Repeat(" ", widths[column]-ansi.StringWidth(cell)+2))
			}
		}
		builder.WriteString(strings.TrimRight(line.String(), " ") + "\n")
	}
}
