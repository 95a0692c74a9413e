// Copyright 2026 The recordjson Authors
// SPDX-License-Identifier: Apache-2.0

package schemadef

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Format identifies the syntax of a schema definition or values file.
type Format int

const (
	// FormatYAML is YAML 1.2.
	FormatYAML Format = iota
	// FormatJSONC is JSON extended with comments and trailing commas.
	// Plain JSON is valid JSONC.
	FormatJSONC
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatJSONC:
		return "jsonc"
	default:
		return fmt.Sprintf("unknown(%d)", int(f))
	}
}

// FormatFromPath picks a format from the file extension: .yaml and .yml
// are YAML, .json and .jsonc are JSONC.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json", ".jsonc":
		return FormatJSONC, nil
	default:
		return 0, fmt.Errorf("%s: unrecognized extension (want .yaml, .yml, .json, or .jsonc)", path)
	}
}

// Parse decodes a schema definition. Unknown keys are rejected so that
// a misspelled option ("repaeted") fails loudly instead of being
// silently ignored.
func Parse(data []byte, format Format) (*Document, error) {
	var document Document
	if err := DecodeStrict(data, format, &document); err != nil {
		return nil, fmt.Errorf("parsing schema definition: %w", err)
	}
	return &document, nil
}

// ReadFile reads a schema definition from disk. The format is chosen by
// extension; see [FormatFromPath].
func ReadFile(path string) (*Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	document, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	document.Source = path

	return document, nil
}

// Load reads, validates, and compiles a schema definition file.
func Load(path string) (*Set, error) {
	document, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Compile(document)
}

// DecodeStrict decodes YAML or JSONC into target, rejecting unknown
// keys and trailing documents. It is shared with the values-file
// readers, which use the same two syntaxes.
func DecodeStrict(data []byte, format Format, target any) error {
	switch format {
	case FormatYAML:
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(target); err != nil {
			if errors.Is(err, io.EOF) {
				return errors.New("empty document")
			}
			return err
		}
		return nil

	case FormatJSONC:
		stripped := jsonc.ToJSON(data)
		if len(bytes.TrimSpace(stripped)) == 0 {
			return errors.New("empty document")
		}
		decoder := json.NewDecoder(bytes.NewReader(stripped))
		decoder.DisallowUnknownFields()
		decoder.UseNumber()
		if err := decoder.Decode(target); err != nil {
			return err
		}
		if decoder.More() {
			return errors.New("unexpected data after the top-level value")
		}
		return nil

	default:
		return fmt.Errorf("unsupported format %s", format)
	}
}
