// Copyright 2026 The recordjson Authors
// SPDX-License-Identifier: Apache-2.0

// Package playground holds the built-in example schema,
// playground.v1.Product. The CLI registers it ahead of any user
// schema, so "recordjson example" and "recordjson render --type
// Product" work with no files on disk.
package playground

import (
	_ "embed"
	"sync"

	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/recordjson/recordjson/lib/schemadef"
)

//go:embed product.yaml
var productYAML []byte

// ProductType is the full name of the example record.
const ProductType = "playground.v1.Product"

var compiled = sync.OnceValues(func() (*schemadef.Set, error) {
	document, err := schemadef.Parse(productYAML, schemadef.FormatYAML)
	if err != nil {
		return nil, err
	}
	document.Source = "product.yaml"
	return schemadef.Compile(document)
})

// Set returns the compiled playground schema. The embedded document is
// validated by this package's tests, so an error here is a build
// defect.
func Set() *schemadef.Set {
	set, err := compiled()
	if err != nil {
		panic("playground: embedded schema does not compile: " + err.Error())
	}
	return set
}

// Source returns the embedded schema document as authored.
func Source() []byte {
	return append([]byte(nil), productYAML...)
}

// Product returns the descriptor of playground.v1.Product.
func Product() protoreflect.MessageDescriptor {
	descriptor, err := Set().Lookup(ProductType)
	if err != nil {
		panic("playground: " + err.Error())
	}
	return descriptor
}
