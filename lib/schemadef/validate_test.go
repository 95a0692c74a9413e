// Copyright 2026 The recordjson Authors
// SPDX-License-Identifier: Apache-2.0

package schemadef

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		document       *Document
		expectedIssues int
		wantSubstrings []string
	}{
		{
			name: "valid product",
			document: &Document{
				Package: "playground",
				Version: 1,
				Records: []RecordDef{
					{Name: "Product", Fields: []FieldDef{
						{Name: "name", Type: "string"},
						{Name: "description", Type: "string"},
						{Name: "price", Type: "double", Optional: true},
						{Name: "tags", Type: "string", Repeated: true},
						{Name: "dimensions", Type: "Dimensions"},
					}},
					{Name: "Dimensions", Fields: []FieldDef{
						{Name: "width", Type: "int32"},
					}},
				},
			},
			expectedIssues: 0,
		},
		{
			name: "empty record is allowed",
			document: &Document{
				Package: "acme.catalog",
				Records: []RecordDef{{Name: "Empty"}},
			},
			expectedIssues: 0,
		},
		{
			name:           "missing package and records",
			document:       &Document{},
			expectedIssues: 2,
			wantSubstrings: []string{"package is required", "no records declared"},
		},
		{
			name: "bad package segment",
			document: &Document{
				Package: "acme..catalog",
				Records: []RecordDef{{Name: "Item"}},
			},
			expectedIssues: 1,
			wantSubstrings: []string{"dot-separated segment"},
		},
		{
			name: "negative version",
			document: &Document{
				Package: "acme",
				Version: -2,
				Records: []RecordDef{{Name: "Item"}},
			},
			expectedIssues: 1,
			wantSubstrings: []string{"must not be negative"},
		},
		{
			name: "duplicate record names",
			document: &Document{
				Package: "acme",
				Records: []RecordDef{{Name: "Item"}, {Name: "Item"}},
			},
			expectedIssues: 1,
			wantSubstrings: []string{`records[1] "Item": duplicate record name`},
		},
		{
			name: "unknown field type",
			document: &Document{
				Package: "acme",
				Records: []RecordDef{{Name: "Item", Fields: []FieldDef{
					{Name: "payload", Type: "bytes"},
				}}},
			},
			expectedIssues: 1,
			wantSubstrings: []string{`unknown type "bytes"`},
		},
		{
			name: "duplicate field and colliding JSON name",
			document: &Document{
				Package: "acme",
				Records: []RecordDef{{Name: "Item", Fields: []FieldDef{
					{Name: "display_name", Type: "string"},
					{Name: "displayName", Type: "string"},
					{Name: "display_name", Type: "string"},
				}}},
			},
			expectedIssues: 2,
			wantSubstrings: []string{"collides with field", "duplicate field name"},
		},
		{
			name: "repeated optional and optional record",
			document: &Document{
				Package: "acme",
				Records: []RecordDef{
					{Name: "Item", Fields: []FieldDef{
						{Name: "tags", Type: "string", Repeated: true, Optional: true},
						{Name: "child", Type: "Child", Optional: true},
					}},
					{Name: "Child"},
				},
			},
			expectedIssues: 2,
			wantSubstrings: []string{"repeated fields cannot be optional", "optional is only valid on scalar fields"},
		},
		{
			name: "field numbers out of range, reserved, and duplicated",
			document: &Document{
				Package: "acme",
				Records: []RecordDef{{Name: "Item", Fields: []FieldDef{
					{Name: "a", Type: "string", Number: 1 << 29},
					{Name: "b", Type: "string", Number: 19500},
					{Name: "c", Type: "string", Number: 7},
					{Name: "d", Type: "string", Number: 7},
				}}},
			},
			expectedIssues: 3,
			wantSubstrings: []string{"out of range", "reserved range", `field number 7 already used by "c"`},
		},
		{
			name: "missing names and types",
			document: &Document{
				Package: "acme",
				Records: []RecordDef{{Fields: []FieldDef{{}}}},
			},
			expectedIssues: 3,
			wantSubstrings: []string{"records[0]: name is required", "name is required", "type is required"},
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			issues := Validate(test.document)
			if len(issues) != test.expectedIssues {
				t.Fatalf("got %d issues, want %d:\n  %s", len(issues), test.expectedIssues, strings.Join(issues, "\n  "))
			}
			joined := strings.Join(issues, "\n")
			for _, want := range test.wantSubstrings {
				if !strings.Contains(joined, want) {
					t.Errorf("issues missing %q:\n  %s", want, strings.Join(issues, "\n  "))
				}
			}
		})
	}
}

func TestFieldNumbers(t *testing.T) {
	t.Parallel()

	fields := []FieldDef{
		{Name: "a"},
		{Name: "b", Number: 2},
		{Name: "c"},
		{Name: "d", Number: 10},
		{Name: "e"},
	}

	got := fieldNumbers(fields)
	want := []int32{1, 2, 3, 10, 4}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("fieldNumbers mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONName(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"name":         "name",
		"display_name": "displayName",
		"a__b":         "aB",
		"version_2":    "version2",
		"_private":     "Private",
		"Already":      "Already",
	}
	for input, want := range tests {
		if got := JSONName(input); got != want {
			t.Errorf("JSONName(%q) = %q, want %q", input, got, want)
		}
	}
}
