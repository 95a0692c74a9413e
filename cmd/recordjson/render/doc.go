// Copyright 2026 The recordjson Authors
// SPDX-License-Identifier: Apache-2.0

// Package render implements the record-producing commands: "render",
// "digest", and "example".
//
// "render" and "digest" share one way of building a record: resolve
// --type against the schema registry, read an optional values
// document, apply --set assignments, and finalize with record.Builder.
// Output options merge the command line over the configuration file;
// rendering itself is lib/printer.
package render
