// Copyright 2026 The recordjson Authors
// SPDX-License-Identifier: Apache-2.0

package fingerprint

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"
	"google.golang.org/protobuf/proto"

	"github.com/recordjson/recordjson/lib/printer"
	"github.com/recordjson/recordjson/lib/record"
	"github.com/recordjson/recordjson/lib/schemadef"
)

// Digest is a 32-byte BLAKE3 digest.
type Digest [32]byte

// domainKey is a BLAKE3 key. The bytes spell the domain name in ASCII,
// zero-padded, so they are recognizable in hex dumps. Changing a key
// changes every fingerprint in its domain.
type domainKey [32]byte

var (
	recordDomainKey = domainKey{
		'r', 'e', 'c', 'o', 'r', 'd', 'j', 's', 'o', 'n', '.', 'r', 'e', 'c', 'o', 'r',
		'd', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}

	schemaDomainKey = domainKey{
		'r', 'e', 'c', 'o', 'r', 'd', 'j', 's', 'o', 'n', '.', 's', 'c', 'h', 'e', 'm',
		'a', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}
)

// canonical is the rendering every record fingerprint is taken over.
var canonical = printer.New(printer.Options{IncludeDefaults: true, CompactWhitespace: true})

// Record returns the fingerprint of r. It fails only when r cannot be
// rendered.
func Record(r *record.Record) (Digest, error) {
	// The type name goes first, NUL-terminated, so that records of
	// different types with identical renderings stay distinct.
	data := append([]byte(r.FullName()), 0)
	data, err := canonical.AppendPrint(data, r)
	if err != nil {
		return Digest{}, fmt.Errorf("fingerprinting %s: %w", r.FullName(), err)
	}
	return keyedHash(recordDomainKey, data), nil
}

// Schema returns the fingerprint of a compiled schema set. The
// descriptor's file name comes from the source path, so it is left
// out: moving a schema file does not change its fingerprint.
func Schema(set *schemadef.Set) (Digest, error) {
	descriptor := set.DescriptorProto()
	descriptor.Name = nil
	data, err := proto.MarshalOptions{Deterministic: true}.Marshal(descriptor)
	if err != nil {
		return Digest{}, fmt.Errorf("encoding descriptor for %s: %w", set.Package(), err)
	}
	return keyedHash(schemaDomainKey, data), nil
}

// String returns the hex encoding of d.
func (d Digest) String() string {
	return Format(d)
}

// Short returns the first 12 hex characters of d, for display.
func (d Digest) Short() string {
	return hex.EncodeToString(d[:6])
}

// IsZero reports whether d is the zero digest.
func (d Digest) IsZero() bool {
	return d == Digest{}
}

// Format returns the hex-encoded string representation of a digest.
// This is the form used in CLI output and logs.
func Format(digest Digest) string {
	return hex.EncodeToString(digest[:])
}

// Parse parses a 64-character hex string into a Digest.
func Parse(hexString string) (Digest, error) {
	var digest Digest
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return digest, fmt.Errorf("parsing fingerprint: %w", err)
	}
	if len(decoded) != len(digest) {
		return digest, fmt.Errorf("fingerprint is %d bytes, want %d", len(decoded), len(digest))
	}
	copy(digest[:], decoded)
	return digest, nil
}

func keyedHash(key domainKey, data []byte) Digest {
	// NewKeyed fails only for a key that is not 32 bytes long.
	hasher, err := blake3.NewKeyed(key[:])
	if err != nil {
		panic("fingerprint: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(data)
	var digest Digest
	copy(digest[:], hasher.Sum(nil))
	return digest
}
