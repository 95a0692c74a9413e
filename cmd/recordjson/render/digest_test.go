// Copyright 2026 The recordjson Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/recordjson/recordjson/lib/config"
	"github.com/recordjson/recordjson/lib/fingerprint"
	"github.com/recordjson/recordjson/lib/playground"
)

func digest(t *testing.T, params digestParams) string {
	t.Helper()
	var stdout bytes.Buffer
	if err := runDigest(&params, strings.NewReader(""), &stdout, discardLogger()); err != nil {
		t.Fatalf("runDigest: %v", err)
	}
	return stdout.String()
}

func TestDigest_SameContentsSameDigest(t *testing.T) {
	t.Setenv(config.EnvironmentVariable, "")

	valuesPath := writeFile(t, "values.json", []byte(`{"name": "widget", "tags": ["a"]}`))

	fromFile := digest(t, digestParams{InputFlags: InputFlags{Type: "Product", Input: valuesPath}})
	fromFlags := digest(t, digestParams{InputFlags: InputFlags{Type: "Product", Set: []string{"tags=[a]", "name=widget"}}})
	if fromFile != fromFlags {
		t.Errorf("digests differ for equal contents:\n%s%s", fromFile, fromFlags)
	}

	parsed, err := fingerprint.Parse(strings.TrimSpace(fromFile))
	if err != nil {
		t.Fatalf("digest output %q does not parse: %v", fromFile, err)
	}
	if parsed.IsZero() {
		t.Error("digest is zero")
	}

	other := digest(t, digestParams{InputFlags: InputFlags{Type: "Product", Set: []string{"name=gadget"}}})
	if other == fromFile {
		t.Error("different contents produced the same digest")
	}
}

func TestDigest_Short(t *testing.T) {
	t.Setenv(config.EnvironmentVariable, "")

	full := strings.TrimSpace(digest(t, digestParams{InputFlags: InputFlags{Type: "Product"}}))
	short := strings.TrimSpace(digest(t, digestParams{InputFlags: InputFlags{Type: "Product"}, Short: true}))
	if len(short) != 12 || !strings.HasPrefix(full, short) {
		t.Errorf("short = %q, want the 12-character prefix of %q", short, full)
	}
}

func TestDigest_JSON(t *testing.T) {
	t.Setenv(config.EnvironmentVariable, "")

	params := digestParams{InputFlags: InputFlags{Type: "Product"}}
	params.OutputJSON = true
	output := digest(t, params)

	var result digestResult
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, output)
	}
	if result.Type != playground.ProductType {
		t.Errorf("type = %q, want %q", result.Type, playground.ProductType)
	}

	schemaDigest, err := fingerprint.Schema(playground.Set())
	if err != nil {
		t.Fatalf("fingerprint.Schema: %v", err)
	}
	if result.Schema != schemaDigest.String() {
		t.Errorf("schema_digest = %q, want %q", result.Schema, schemaDigest.String())
	}
	if len(result.Digest) != 64 {
		t.Errorf("digest = %q, want 64 hex characters", result.Digest)
	}
}
