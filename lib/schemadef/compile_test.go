// Copyright 2026 The recordjson Authors
// SPDX-License-Identifier: Apache-2.0

package schemadef

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"google.golang.org/protobuf/reflect/protoreflect"
)

const productYAML = `
package: playground
version: 1
records:
  - name: Product
    description: A catalog product.
    fields:
      - {name: name, type: string}
      - {name: description, type: string}
      - {name: unit_price, type: double, optional: true}
      - {name: tags, type: string, repeated: true}
      - {name: dimensions, type: Dimensions}
  - name: Dimensions
    fields:
      - {name: width, type: int32}
      - {name: height, type: int32, number: 5}
`

const productJSONC = `{
  // Same records as productYAML, authored as JSONC.
  "package": "playground",
  "version": 1,
  "records": [
    {
      "name": "Product",
      "fields": [
        {"name": "name", "type": "string"},
        {"name": "description", "type": "string"},
        {"name": "unit_price", "type": "double", "optional": true},
        {"name": "tags", "type": "string", "repeated": true},
        {"name": "dimensions", "type": "Dimensions"},
      ],
    },
    {
      "name": "Dimensions",
      "fields": [
        {"name": "width", "type": "int32"},
        {"name": "height", "type": "int32", "number": 5},
      ],
    },
  ],
}`

func compileProduct(t *testing.T, data string, format Format) *Set {
	t.Helper()
	document, err := Parse([]byte(data), format)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	set, err := Compile(document)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	return set
}

func TestCompile_Product(t *testing.T) {
	t.Parallel()

	for _, format := range []Format{FormatYAML, FormatJSONC} {
		format := format
		t.Run(format.String(), func(t *testing.T) {
			t.Parallel()

			data := productYAML
			if format == FormatJSONC {
				data = productJSONC
			}
			set := compileProduct(t, data, format)

			if set.Package() != "playground.v1" {
				t.Errorf("Package() = %q, want %q", set.Package(), "playground.v1")
			}
			if path := set.File().Path(); path != "playground/v1/schema.proto" {
				t.Errorf("File().Path() = %q, want %q", path, "playground/v1/schema.proto")
			}

			product, err := set.Lookup("Product")
			if err != nil {
				t.Fatalf("Lookup(Product): %v", err)
			}
			if product.FullName() != "playground.v1.Product" {
				t.Errorf("FullName() = %q", product.FullName())
			}

			fields := product.Fields()
			if fields.Len() != 5 {
				t.Fatalf("Product has %d fields, want 5", fields.Len())
			}

			wantOrder := []string{"name", "description", "unitPrice", "tags", "dimensions"}
			for index, want := range wantOrder {
				if got := fields.Get(index).JSONName(); got != want {
					t.Errorf("field %d JSONName() = %q, want %q", index, got, want)
				}
			}

			name := fields.ByName("name")
			if name.Kind() != protoreflect.StringKind || name.HasPresence() {
				t.Errorf("name: kind=%v presence=%v, want string without presence", name.Kind(), name.HasPresence())
			}

			price := fields.ByName("unit_price")
			if price.Kind() != protoreflect.DoubleKind || !price.HasPresence() {
				t.Errorf("unit_price: kind=%v presence=%v, want double with presence", price.Kind(), price.HasPresence())
			}
			if price.ContainingOneof() == nil || !price.ContainingOneof().IsSynthetic() {
				t.Error("unit_price should sit in a synthetic oneof")
			}

			tags := fields.ByName("tags")
			if !tags.IsList() || tags.Kind() != protoreflect.StringKind {
				t.Errorf("tags: list=%v kind=%v, want repeated string", tags.IsList(), tags.Kind())
			}

			dimensions := fields.ByName("dimensions")
			if dimensions.Kind() != protoreflect.MessageKind {
				t.Fatalf("dimensions: kind=%v, want message", dimensions.Kind())
			}
			if dimensions.Message().FullName() != "playground.v1.Dimensions" {
				t.Errorf("dimensions type = %q", dimensions.Message().FullName())
			}

			height := dimensions.Message().Fields().ByName("height")
			if height.Number() != 5 {
				t.Errorf("height number = %d, want 5", height.Number())
			}
		})
	}
}

func TestSet_Lookup(t *testing.T) {
	t.Parallel()

	set := compileProduct(t, productYAML, FormatYAML)

	if _, err := set.Lookup("playground.v1.Dimensions"); err != nil {
		t.Errorf("Lookup(full name): %v", err)
	}
	_, err := set.Lookup("Missing")
	if !errors.Is(err, ErrUnknownRecord) {
		t.Errorf("Lookup(Missing) error = %v, want ErrUnknownRecord", err)
	}

	records := set.Records()
	if len(records) != 2 || records[0].Name() != "Product" || records[1].Name() != "Dimensions" {
		t.Errorf("Records() = %v, want [Product Dimensions]", records)
	}
}

func TestSet_DescriptorProtoIsACopy(t *testing.T) {
	t.Parallel()

	set := compileProduct(t, productYAML, FormatYAML)
	first := set.DescriptorProto()
	first.MessageType = nil

	second := set.DescriptorProto()
	if len(second.GetMessageType()) != 2 {
		t.Errorf("mutating a returned descriptor leaked into the set")
	}
}

func TestCompile_ValidationError(t *testing.T) {
	t.Parallel()

	document := &Document{
		Package: "acme",
		Source:  "acme.yaml",
		Records: []RecordDef{{Name: "Item", Fields: []FieldDef{
			{Name: "owner", Type: "Person"},
			{Name: "count", Type: "integer"},
		}}},
	}

	_, err := Compile(document)
	var validationError *ValidationError
	if !errors.As(err, &validationError) {
		t.Fatalf("Compile error = %v, want *ValidationError", err)
	}
	if len(validationError.Issues) != 2 {
		t.Errorf("got %d issues, want 2: %v", len(validationError.Issues), validationError.Issues)
	}
	if !strings.HasPrefix(err.Error(), "acme.yaml: 2 issues") {
		t.Errorf("Error() = %q, want prefix %q", err.Error(), "acme.yaml: 2 issues")
	}
}

func TestParse_RejectsUnknownKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		data   string
		format Format
	}{
		{
			name:   "yaml",
			data:   "package: acme\nrecords:\n  - name: Item\n    fields:\n      - {name: a, type: string, repaeted: true}\n",
			format: FormatYAML,
		},
		{
			name:   "jsonc",
			data:   `{"package": "acme", "records": [{"name": "Item", "colour": "red"}]}`,
			format: FormatJSONC,
		},
		{
			name:   "empty yaml",
			data:   "",
			format: FormatYAML,
		},
		{
			name:   "jsonc trailing data",
			data:   `{"package": "acme"} {"package": "other"}`,
			format: FormatJSONC,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			if _, err := Parse([]byte(test.data), test.format); err == nil {
				t.Error("Parse succeeded, want error")
			}
		})
	}
}

func TestLoad_FileNameFromSource(t *testing.T) {
	t.Parallel()

	directory := t.TempDir()
	path := filepath.Join(directory, "catalog.yml")
	if err := os.WriteFile(path, []byte(productYAML), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	set, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := set.File().Path(); got != "playground/v1/catalog.proto" {
		t.Errorf("File().Path() = %q, want %q", got, "playground/v1/catalog.proto")
	}
	if set.Document().Source != path {
		t.Errorf("Document().Source = %q, want %q", set.Document().Source, path)
	}

	if _, err := Load(filepath.Join(directory, "catalog.toml")); err == nil {
		t.Error("Load(.toml) succeeded, want unrecognized extension error")
	}
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()

	product := compileProduct(t, productYAML, FormatYAML)
	if err := registry.Add(product); err != nil {
		t.Fatalf("Add(product): %v", err)
	}

	// Both documents lack a Source, so they compile to the same
	// descriptor file name.
	inventory := compileProduct(t, `
package: playground
version: 1
records:
  - name: Stock
    fields:
      - {name: product, type: string}
      - {name: count, type: uint32}
`, FormatYAML)
	if err := registry.Add(inventory); err == nil {
		t.Fatal("Add with a clashing descriptor file name succeeded, want error")
	}

	document, err := Parse([]byte(`
package: playground
version: 1
records:
  - name: Stock
    fields:
      - {name: product, type: string}
`), FormatYAML)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	document.Source = "inventory.yaml"
	stock, err := Compile(document)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if err := registry.Add(stock); err != nil {
		t.Fatalf("Add(stock): %v", err)
	}

	if _, err := registry.Lookup("playground.v1.Stock"); err != nil {
		t.Errorf("Lookup(full): %v", err)
	}
	if descriptor, err := registry.Lookup("Product"); err != nil || descriptor.FullName() != "playground.v1.Product" {
		t.Errorf("Lookup(Product) = %v, %v", descriptor, err)
	}
	if _, err := registry.Lookup("playground.v1.Missing"); !errors.Is(err, ErrUnknownRecord) {
		t.Errorf("Lookup(missing) error = %v, want ErrUnknownRecord", err)
	}

	// A second set declaring Product again is rejected.
	document.Source = "again.yaml"
	document.Records = []RecordDef{{Name: "Product"}}
	duplicate, err := Compile(document)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if err := registry.Add(duplicate); err == nil {
		t.Error("Add with a duplicate record succeeded, want error")
	}

	if got := len(registry.Sets()); got != 2 {
		t.Errorf("Sets() has %d entries, want 2", got)
	}
}

func TestRegistry_AmbiguousRelativeName(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	for _, pkg := range []string{"alpha", "beta"} {
		set, err := Compile(&Document{Package: pkg, Records: []RecordDef{{Name: "Item"}}})
		if err != nil {
			t.Fatalf("Compile(%s): %v", pkg, err)
		}
		if err := registry.Add(set); err != nil {
			t.Fatalf("Add(%s): %v", pkg, err)
		}
	}

	_, err := registry.Lookup("Item")
	if err == nil || !strings.Contains(err.Error(), "ambiguous") {
		t.Errorf("Lookup(Item) error = %v, want ambiguity error", err)
	}
	if _, err := registry.Lookup("beta.Item"); err != nil {
		t.Errorf("Lookup(beta.Item): %v", err)
	}
}
