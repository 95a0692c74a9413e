// Copyright 2026 The recordjson Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// encMode is the Core Deterministic encoder. Time values never occur in
// a record tree, so only the map, integer, and float rules matter.
var encMode cbor.EncMode

// decMode decodes field-value documents.
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		// Field-value documents are keyed by field name. Decoding into
		// any must produce map[string]any, which is what record.Builder
		// accepts for nested records, instead of the CBOR default of
		// map[interface{}]interface{}.
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
		// Duplicate keys would make the assigned value depend on
		// decoder internals.
		DupMapKey: cbor.DupMapKeyEnforcedAPF,
		// Field values never legitimately need indefinite-length
		// encoding, and rejecting it keeps inputs canonical-shaped.
		IndefLength: cbor.IndefLengthForbidden,
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// Marshal encodes v to CBOR using Core Deterministic Encoding.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR data into v. Exactly one data item is
// accepted; trailing bytes are an error.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// Diagnose returns the CBOR diagnostic notation (RFC 8949 §8) for the
// entire contents of data.
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}
