// Copyright 2026 The recordjson Authors
// SPDX-License-Identifier: Apache-2.0

// Package printer renders records as canonical JSON text.
//
// Rendering is a pure function of the record and an [Options] value:
//
//	text, err := printer.Render(product, printer.Options{
//		IncludeDefaults:   true,
//		CompactWhitespace: true,
//	})
//
// The zero Options value is the conventional configuration: fields
// left at their default are omitted and the output is indented for
// reading. IncludeDefaults inverts the first choice, emitting every
// declared field and expanding unset nested records into all-default
// objects. CompactWhitespace removes every byte of whitespace outside
// string literals.
//
// Object keys are the fields' JSON names in declaration order, so equal
// records always render to identical bytes. Scalars follow protobuf's
// JSON mapping: 64-bit integers are quoted decimal strings and
// non-finite floats are the strings "NaN", "Infinity" and "-Infinity".
//
// Rendering happens in two steps. [Lower] turns a record into an
// ordered [Value] tree under the default policy; the tree is then
// serialized as JSON text or, by [RenderCBOR], as deterministic CBOR.
// Callers that need the structure itself (the digest command, tests)
// use the tree directly.
//
// The supported field types are strings, booleans, every protobuf
// numeric type, nested records, and repeated fields of those. A record
// that declares a bytes, enum, map or group field fails with
// [*UnsupportedFieldError]; no other error is possible.
//
// A [Printer] holds nothing but its options and may be shared between
// goroutines.
package printer
