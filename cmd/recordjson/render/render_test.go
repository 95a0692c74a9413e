// Copyright 2026 The recordjson Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/recordjson/recordjson/cmd/recordjson/cli"
	"github.com/recordjson/recordjson/lib/codec"
	"github.com/recordjson/recordjson/lib/config"
	"github.com/recordjson/recordjson/lib/sink"
)

const fullEmptyProduct = `{"name":"","description":"","unitPrice":0,"stockCount":"0","inStock":false,"tags":[],` +
	`"dimensions":{"width":0,"height":0,"depth":0}}`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

// render runs the render command with params and returns stdout.
func render(t *testing.T, params renderParams, stdin string) string {
	t.Helper()
	var stdout bytes.Buffer
	if err := runRender(&params, strings.NewReader(stdin), &stdout, discardLogger()); err != nil {
		t.Fatalf("runRender: %v", err)
	}
	return stdout.String()
}

func TestRender(t *testing.T) {
	t.Setenv(config.EnvironmentVariable, "")

	tests := []struct {
		name   string
		params renderParams
		want   string
	}{
		{
			name: "only set fields",
			params: renderParams{
				InputFlags:  InputFlags{Type: "Product", Set: []string{"name=widget"}},
				OutputFlags: OutputFlags{Compact: true},
			},
			want: `{"name":"widget"}` + "\n",
		},
		{
			name: "all defaults",
			params: renderParams{
				InputFlags:  InputFlags{Type: "playground.v1.Product"},
				OutputFlags: OutputFlags{Defaults: true, Compact: true},
			},
			want: fullEmptyProduct + "\n",
		},
		{
			name: "nested and 64-bit assignments",
			params: renderParams{
				InputFlags: InputFlags{Type: "Product", Set: []string{
					"dimensions.width=3",
					"stock_count=12345678901",
					"tags=[b, a]",
				}},
				OutputFlags: OutputFlags{Compact: true},
			},
			want: `{"stockCount":"12345678901","tags":["b","a"],"dimensions":{"width":3}}` + "\n",
		},
		{
			name: "string fields take text verbatim",
			params: renderParams{
				InputFlags:  InputFlags{Type: "Product", Set: []string{"name=123", "description=true"}},
				OutputFlags: OutputFlags{Compact: true},
			},
			want: `{"name":"123","description":"true"}` + "\n",
		},
		{
			name: "optional field set to its default",
			params: renderParams{
				InputFlags:  InputFlags{Type: "Product", Set: []string{"unitPrice=0"}},
				OutputFlags: OutputFlags{Compact: true},
			},
			want: `{"unitPrice":0}` + "\n",
		},
		{
			name: "readable",
			params: renderParams{
				InputFlags: InputFlags{Type: "Product", Set: []string{"name=a", "description=b"}},
			},
			want: "{\n  \"name\": \"a\",\n  \"description\": \"b\"\n}\n",
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			if got := render(t, test.params, ""); got != test.want {
				t.Errorf("output =\n%s\nwant\n%s", got, test.want)
			}
		})
	}
}

func TestRender_InputFiles(t *testing.T) {
	t.Setenv(config.EnvironmentVariable, "")

	yamlPath := writeFile(t, "product.yaml", []byte(`
name: widget
inStock: true
tags: [x, y]
dimensions:
  height: 2
`))

	cborValues, err := codec.Marshal(map[string]any{"name": "packed", "stockCount": 7})
	if err != nil {
		t.Fatalf("codec.Marshal: %v", err)
	}
	compressed, err := sink.Compress(cborValues, sink.CompressionZstd)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	cborPath := writeFile(t, "product.cbor.zst", compressed)

	tests := []struct {
		name  string
		input InputFlags
		stdin string
		want  string
	}{
		{
			name:  "yaml",
			input: InputFlags{Type: "Product", Input: yamlPath},
			want:  `{"name":"widget","inStock":true,"tags":["x","y"],"dimensions":{"height":2}}`,
		},
		{
			name:  "set overrides input",
			input: InputFlags{Type: "Product", Input: yamlPath, Set: []string{"name=gadget", "dimensions.depth=4"}},
			want:  `{"name":"gadget","inStock":true,"tags":["x","y"],"dimensions":{"height":2,"depth":4}}`,
		},
		{
			name:  "compressed cbor",
			input: InputFlags{Type: "Product", Input: cborPath},
			want:  `{"name":"packed","stockCount":"7"}`,
		},
		{
			name:  "jsonc on stdin",
			input: InputFlags{Type: "Product", Input: "-"},
			stdin: "{\n  // trailing commas allowed\n  \"name\": \"piped\",\n  \"unit_price\": 2.5,\n}\n",
			want:  `{"name":"piped","unitPrice":2.5}`,
		},
		{
			name:  "yaml on stdin",
			input: InputFlags{Type: "Product", Input: "-", InputFormat: "yaml"},
			stdin: "description: from yaml\n",
			want:  `{"description":"from yaml"}`,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			params := renderParams{InputFlags: test.input, OutputFlags: OutputFlags{Compact: true}}
			if got := render(t, params, test.stdin); got != test.want+"\n" {
				t.Errorf("output =\n%s\nwant\n%s", got, test.want)
			}
		})
	}
}

func TestRender_OutputFile(t *testing.T) {
	t.Setenv(config.EnvironmentVariable, "")

	output := filepath.Join(t.TempDir(), "product.json.lz4")
	params := renderParams{
		InputFlags:  InputFlags{Type: "Product", Set: []string{"name=boxed"}},
		OutputFlags: OutputFlags{Compact: true, Output: output, Color: "always"},
	}
	if got := render(t, params, ""); got != "" {
		t.Errorf("stdout = %q, want nothing when writing a file", got)
	}

	data, inner, err := sink.ReadFile(output)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if inner != strings.TrimSuffix(output, ".lz4") {
		t.Errorf("inner path = %q", inner)
	}
	// Files are never coloured, even with --color always.
	if string(data) != `{"name":"boxed"}`+"\n" {
		t.Errorf("file contents = %q", data)
	}
}

func TestRender_CBOR(t *testing.T) {
	t.Setenv(config.EnvironmentVariable, "")

	params := renderParams{
		InputFlags:  InputFlags{Type: "Product", Set: []string{"name=widget", "stockCount=9"}},
		OutputFlags: OutputFlags{Format: "cbor"},
	}
	data := render(t, params, "")

	var decoded map[string]any
	if err := codec.Unmarshal([]byte(data), &decoded); err != nil {
		t.Fatalf("output is not CBOR: %v", err)
	}
	if decoded["name"] != "widget" {
		t.Errorf("name = %v, want widget", decoded["name"])
	}
	if len(decoded) != 2 {
		t.Errorf("decoded %d keys, want 2: %v", len(decoded), decoded)
	}

	params.Format = "cbor-diag"
	diagnostic := render(t, params, "")
	if !strings.Contains(diagnostic, `"widget"`) || !strings.HasSuffix(diagnostic, "\n") {
		t.Errorf("diagnostic output = %q", diagnostic)
	}
}

func TestRender_ConfigFile(t *testing.T) {
	t.Setenv(config.EnvironmentVariable, "")

	schemaPath := writeFile(t, "catalog.yaml", []byte(`
package: acme
version: 2
records:
  - name: Item
    fields:
      - {name: sku, type: string}
      - {name: count, type: uint32}
`))
	configPath := writeFile(t, "recordjson.yaml", []byte(`
render:
  compact: true
schemas:
  root: `+filepath.Dir(schemaPath)+`
  paths: [catalog.yaml]
profiles:
  full:
    include_defaults: true
`))

	params := renderParams{InputFlags: InputFlags{
		ConfigFlags: cli.ConfigFlags{Path: configPath},
		Type:        "acme.v2.Item",
		Set:         []string{"count=3"},
	}}
	if got := render(t, params, ""); got != `{"count":3}`+"\n" {
		t.Errorf("output = %q", got)
	}

	params.ConfigFlags.Profile = "full"
	if got := render(t, params, ""); got != `{"sku":"","count":3}`+"\n" {
		t.Errorf("output with profile = %q", got)
	}

	// Flags switch configured options off for a single call.
	params.OutputFlags = OutputFlags{Omit: true, Readable: true}
	if got := render(t, params, ""); got != "{\n  \"count\": 3\n}\n" {
		t.Errorf("output with --omit --readable = %q", got)
	}
}

func TestRender_Errors(t *testing.T) {
	t.Setenv(config.EnvironmentVariable, "")

	tests := []struct {
		name     string
		input    InputFlags
		output   OutputFlags
		category cli.ErrorCategory
		contains string
	}{
		{"missing type", InputFlags{}, OutputFlags{}, cli.CategoryValidation, "--type is required"},
		{"unknown type", InputFlags{Type: "Gizmo"}, OutputFlags{}, cli.CategoryNotFound, "Gizmo"},
		{"unknown field", InputFlags{Type: "Product", Set: []string{"colour=red"}}, OutputFlags{}, cli.CategoryValidation, "colour"},
		{"not a nested record", InputFlags{Type: "Product", Set: []string{"name.first=a"}}, OutputFlags{}, cli.CategoryValidation, "not a nested record"},
		{"malformed assignment", InputFlags{Type: "Product", Set: []string{"name"}}, OutputFlags{}, cli.CategoryValidation, "name=value"},
		{"type mismatch", InputFlags{Type: "Product", Set: []string{"inStock=maybe"}}, OutputFlags{}, cli.CategoryValidation, "in_stock"},
		{"overflow", InputFlags{Type: "Product", Set: []string{"dimensions.width=3000000000"}}, OutputFlags{}, cli.CategoryValidation, "width"},
		{"missing input", InputFlags{Type: "Product", Input: "/nonexistent/values.yaml"}, OutputFlags{}, cli.CategoryNotFound, "does not exist"},
		{"bad format", InputFlags{Type: "Product"}, OutputFlags{Format: "xml"}, cli.CategoryValidation, "unknown format"},
		{"bad compression", InputFlags{Type: "Product"}, OutputFlags{Compress: "gzip"}, cli.CategoryValidation, "gzip"},
		{"bad colour", InputFlags{Type: "Product"}, OutputFlags{Color: "rainbow"}, cli.CategoryValidation, "rainbow"},
		{"defaults and omit", InputFlags{Type: "Product"}, OutputFlags{Defaults: true, Omit: true}, cli.CategoryValidation, "--defaults and --omit"},
		{"compact and readable", InputFlags{Type: "Product"}, OutputFlags{Compact: true, Readable: true}, cli.CategoryValidation, "--compact and --readable"},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			params := renderParams{InputFlags: test.input, OutputFlags: test.output}
			var stdout bytes.Buffer
			err := runRender(&params, strings.NewReader(""), &stdout, discardLogger())
			var toolErr *cli.ToolError
			if !errors.As(err, &toolErr) {
				t.Fatalf("error = %v, want *cli.ToolError", err)
			}
			if toolErr.Category != test.category {
				t.Errorf("category = %q, want %q (error: %v)", toolErr.Category, test.category, err)
			}
			if !strings.Contains(err.Error(), test.contains) {
				t.Errorf("error = %q, want substring %q", err.Error(), test.contains)
			}
			if stdout.Len() != 0 {
				t.Errorf("wrote %q despite the error", stdout.String())
			}
		})
	}
}

func TestRender_UnknownInputExtension(t *testing.T) {
	t.Setenv(config.EnvironmentVariable, "")

	path := writeFile(t, "values.txt", []byte("name: x\n"))
	params := renderParams{InputFlags: InputFlags{Type: "Product", Input: path}}
	err := runRender(&params, strings.NewReader(""), io.Discard, discardLogger())
	if err == nil || !strings.Contains(err.Error(), "--input-format") {
		t.Fatalf("error = %v, want a hint about --input-format", err)
	}

	params.InputFormat = "yaml"
	var stdout bytes.Buffer
	if err := runRender(&params, strings.NewReader(""), &stdout, discardLogger()); err != nil {
		t.Fatalf("runRender with --input-format: %v", err)
	}
}
