// Copyright 2026 The recordjson Authors
// SPDX-License-Identifier: Apache-2.0

// Package record provides immutable, schema-typed record instances and
// the builder that produces them.
//
// A record is a protobuf message: its schema is a
// [protoreflect.MessageDescriptor], either compiled from a schema
// definition (see lib/schemadef) or taken from generated Go code. The
// lifecycle mirrors generated protobuf builders:
//
//	builder := record.New(descriptor)      // empty, all fields at default
//	builder.Set("name", "widget")          // typed assignments
//	builder.Append("tags", "blue", "large")
//	product, err := builder.Build()        // finalize; builder is spent
//
// [FromMessage] wraps an existing generated message. Both paths check
// what the printer relies on: strings are valid UTF-8 and proto2
// required fields are present. A [Record] never changes after it is
// built, so it may be shared freely between goroutines.
//
// Presence follows protobuf: fields declared without explicit presence
// count as set only when they differ from their default, while optional
// scalars and nested records remember that they were assigned.
package record
