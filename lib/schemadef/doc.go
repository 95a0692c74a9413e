// Copyright 2026 The recordjson Authors
// SPDX-License-Identifier: Apache-2.0

// Package schemadef parses, validates, and compiles record schema
// definitions.
//
// A schema definition is a small document naming a package, a version,
// and a list of record types with typed fields. Definitions are authored
// on disk as YAML or as JSONC (JSON extended with comments and trailing
// commas). Compilation turns a validated [Document] into protobuf
// descriptors, so that records built against it are ordinary
// protoreflect messages and interoperate with any protobuf tooling.
//
// The typical flow:
//
//  1. [ReadFile] or [Parse]: YAML/JSONC bytes to a [Document]
//  2. [Validate]: structural checks (identifiers, field types, numbers)
//  3. [Compile]: Document to a [Set] of message descriptors
//  4. [Set.Lookup] or [Registry.Lookup]: resolve a record type by name
//
// [Load] performs steps 1 through 3 for a single file.
//
// The supported field types are exactly those the printer can render:
// string, bool, the protobuf numeric scalars, and records declared in
// the same document, each optionally repeated. Definitions never produce
// bytes, enum, or map fields.
package schemadef
