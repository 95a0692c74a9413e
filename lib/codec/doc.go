// Copyright 2026 The recordjson Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides recordjson's CBOR configuration.
//
// JSON text is the primary rendering of a record; CBOR is the binary
// rendering of the same value tree (render --format cbor) and an
// accepted format for field-value input files. Both directions share the
// modes configured here so that every caller encodes identically.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer and float encodings, no indefinite-length
// items. Equal trees always produce identical bytes, which is what
// makes the CBOR rendering canonical. Note that sorting means object
// keys follow CBOR's bytewise order, not the schema's declaration
// order used by the JSON rendering.
//
//	data, err := codec.Marshal(tree)
//	err = codec.Unmarshal(data, &values)
//
// Diagnose turns encoded bytes back into RFC 8949 diagnostic notation
// for human inspection.
package codec
