// Copyright 2026 The recordjson Authors
// SPDX-License-Identifier: Apache-2.0

package playground

import (
	"testing"

	"github.com/recordjson/recordjson/lib/printer"
	"github.com/recordjson/recordjson/lib/record"
)

func TestSet(t *testing.T) {
	set := Set()
	if set.Package() != "playground.v1" {
		t.Errorf("Package() = %q, want playground.v1", set.Package())
	}
	if path := set.File().Path(); path != "playground/v1/product.proto" {
		t.Errorf("File().Path() = %q", path)
	}
	if Set() != set {
		t.Error("Set() should return the same compiled set on every call")
	}
}

func TestProduct_RendersWithDefaults(t *testing.T) {
	product := record.Empty(Product())

	got, err := printer.Render(product, printer.Options{IncludeDefaults: true, CompactWhitespace: true})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := `{"name":"","description":"","unitPrice":0,"stockCount":"0","inStock":false,"tags":[],` +
		`"dimensions":{"width":0,"height":0,"depth":0}}`
	if got != want {
		t.Errorf("Render =\n%s\nwant\n%s", got, want)
	}
}

func TestSource_IsACopy(t *testing.T) {
	first := Source()
	first[0] = 'X'
	if Source()[0] == 'X' {
		t.Error("mutating Source() leaked into the embedded document")
	}
}
