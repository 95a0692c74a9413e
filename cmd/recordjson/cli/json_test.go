// Copyright 2026 The recordjson Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"testing"
)

func TestJSONOutput_EmitJSON(t *testing.T) {
	var buffer bytes.Buffer

	disabled := JSONOutput{}
	done, err := disabled.EmitJSON(&buffer, map[string]int{"a": 1})
	if done || err != nil || buffer.Len() != 0 {
		t.Errorf("disabled EmitJSON = (%v, %v) with %d bytes written, want (false, nil) and nothing", done, err, buffer.Len())
	}

	enabled := JSONOutput{OutputJSON: true}
	var records []string
	done, err = enabled.EmitJSON(&buffer, records)
	if !done || err != nil {
		t.Fatalf("EmitJSON = (%v, %v), want (true, nil)", done, err)
	}
	if buffer.String() != "[]\n" {
		t.Errorf("nil slice written as %q, want %q", buffer.String(), "[]\n")
	}
}

func TestWriteJSON_Indents(t *testing.T) {
	var buffer bytes.Buffer
	if err := WriteJSON(&buffer, map[string]string{"version": "dev"}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	want := "{\n  \"version\": \"dev\"\n}\n"
	if buffer.String() != want {
		t.Errorf("WriteJSON wrote %q, want %q", buffer.String(), want)
	}
}
