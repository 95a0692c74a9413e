// Copyright 2026 The recordjson Authors
// SPDX-License-Identifier: Apache-2.0

// Package fingerprint computes stable content digests of records and
// schemas.
//
// A record fingerprint is the BLAKE3 keyed hash of the record's type
// name and its canonical rendering (compact JSON with every default
// included). Two records have the same fingerprint exactly when they
// are of the same type and render identically, so the fingerprint
// survives a round trip through any input format. A schema fingerprint
// hashes the deterministic protobuf encoding of the compiled
// descriptor, so it changes when any record, field name, number, type
// or cardinality changes, and not when comments or formatting in the
// source document do.
//
// Each kind of fingerprint uses its own 32-byte BLAKE3 key, so a record
// digest can never equal a schema digest of the same bytes.
package fingerprint
