// Copyright 2026 The recordjson Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"google.golang.org/protobuf/reflect/protoreflect"
	"gopkg.in/yaml.v3"

	"github.com/recordjson/recordjson/cmd/recordjson/cli"
	"github.com/recordjson/recordjson/lib/codec"
	"github.com/recordjson/recordjson/lib/record"
	"github.com/recordjson/recordjson/lib/schemadef"
	"github.com/recordjson/recordjson/lib/sink"
)

// InputFlags are the flags shared by every command that builds a
// record: which type, where its field values come from, and
// individual overrides.
type InputFlags struct {
	cli.ConfigFlags
	cli.SchemaFlags
	Type        string   `json:"type"         flag:"type,t"       desc:"record type, by full or package-relative name"`
	Input       string   `json:"input"        flag:"input,i"      desc:"field values file (.yaml, .json, .jsonc, .cbor, optionally .zst or .lz4); - reads stdin"`
	InputFormat string   `json:"input_format" flag:"input-format" desc:"format of --input when it cannot be told from the name: yaml, jsonc, or cbor"`
	Set         []string `json:"set"          flag:"set"          desc:"assign a field, as name=value or nested.name=value; repeatable"`
}

// inputFormat is the syntax of a field values document.
type inputFormat string

const (
	inputYAML  inputFormat = "yaml"
	inputJSONC inputFormat = "jsonc"
	inputCBOR  inputFormat = "cbor"
)

func parseInputFormat(name string) (inputFormat, error) {
	switch inputFormat(name) {
	case inputYAML, inputJSONC, inputCBOR:
		return inputFormat(name), nil
	case "json":
		return inputJSONC, nil
	case "yml":
		return inputYAML, nil
	default:
		return "", fmt.Errorf("unknown input format %q (want yaml, jsonc, or cbor)", name)
	}
}

// inputFormatFromPath picks the format from a path with any
// compression suffix already removed.
func inputFormatFromPath(path string) (inputFormat, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return inputYAML, true
	case ".json", ".jsonc":
		return inputJSONC, true
	case ".cbor":
		return inputCBOR, true
	default:
		return "", false
	}
}

// readValues loads a field values document: an object keyed by field
// name, with nested objects for record fields and arrays for repeated
// fields. An empty path means no document.
func readValues(path, formatName string, stdin io.Reader) (map[string]any, error) {
	if path == "" {
		return map[string]any{}, nil
	}

	var (
		data  []byte
		inner = path
		err   error
	)
	if path == sink.Stdout {
		data, err = io.ReadAll(stdin)
		if err != nil {
			return nil, cli.Internal("reading stdin: %w", err)
		}
	} else {
		data, inner, err = sink.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, cli.NotFound("input file %s does not exist", path)
			}
			return nil, cli.Validation("%w", err)
		}
	}

	format := inputJSONC
	if formatName != "" {
		format, err = parseInputFormat(formatName)
		if err != nil {
			return nil, cli.Validation("%w", err)
		}
	} else if detected, ok := inputFormatFromPath(inner); ok {
		format = detected
	} else if path != sink.Stdout {
		return nil, cli.Validation("%s: cannot tell the input format from the name", path).
			WithHint("Pass --input-format yaml, jsonc, or cbor.")
	}

	values, err := decodeValues(data, format)
	if err != nil {
		return nil, cli.Validation("decoding %s as %s: %w", path, format, err)
	}
	return values, nil
}

func decodeValues(data []byte, format inputFormat) (map[string]any, error) {
	values := map[string]any{}
	var err error
	switch format {
	case inputYAML:
		err = schemadef.DecodeStrict(data, schemadef.FormatYAML, &values)
	case inputJSONC:
		err = schemadef.DecodeStrict(data, schemadef.FormatJSONC, &values)
	case inputCBOR:
		err = codec.Unmarshal(data, &values)
	default:
		err = fmt.Errorf("unsupported format %s", format)
	}
	if err != nil {
		return nil, err
	}
	if values == nil {
		// A document that is just null.
		values = map[string]any{}
	}
	return values, nil
}

// applyAssignments merges --set assignments into values. A dotted name
// walks into nested record fields. Each value is read as a YAML scalar
// or flow sequence ("42", "true", "[a, b]"), except that string fields
// take the text verbatim.
func applyAssignments(descriptor protoreflect.MessageDescriptor, values map[string]any, assignments []string) error {
	for _, assignment := range assignments {
		name, text, ok := strings.Cut(assignment, "=")
		if !ok || name == "" {
			return cli.Validation("--set %q: want name=value", assignment)
		}
		if err := assign(descriptor, values, strings.Split(name, "."), text); err != nil {
			return cli.Validation("--set %s: %w", name, err)
		}
	}
	return nil
}

func assign(descriptor protoreflect.MessageDescriptor, values map[string]any, path []string, text string) error {
	field := lookupField(descriptor, path[0])
	if field == nil {
		return fmt.Errorf("%s has no field %q", descriptor.FullName(), path[0])
	}
	key := string(field.Name())

	if len(path) > 1 {
		if field.Kind() != protoreflect.MessageKind || field.IsList() || field.IsMap() {
			return fmt.Errorf("field %q is not a nested record", path[0])
		}
		nested, ok := values[key].(map[string]any)
		if !ok {
			nested = map[string]any{}
			// Values under either spelling of the name are merged.
			if jsonValues, ok := values[field.JSONName()].(map[string]any); ok {
				nested = jsonValues
				delete(values, field.JSONName())
			}
			values[key] = nested
		}
		return assign(field.Message(), nested, path[1:], text)
	}

	delete(values, field.JSONName())
	if field.Kind() == protoreflect.StringKind && !field.IsList() {
		values[key] = text
		return nil
	}
	var value any
	if err := yaml.Unmarshal([]byte(text), &value); err != nil {
		return fmt.Errorf("parsing %q: %w", text, err)
	}
	values[key] = value
	return nil
}

func lookupField(descriptor protoreflect.MessageDescriptor, name string) protoreflect.FieldDescriptor {
	fields := descriptor.Fields()
	if field := fields.ByName(protoreflect.Name(name)); field != nil {
		return field
	}
	return fields.ByJSONName(name)
}

// buildRecord assembles a record of the given type from an input
// document and --set assignments.
func buildRecord(descriptor protoreflect.MessageDescriptor, flags *InputFlags, stdin io.Reader) (*record.Record, error) {
	values, err := readValues(flags.Input, flags.InputFormat, stdin)
	if err != nil {
		return nil, err
	}
	if err := applyAssignments(descriptor, values, flags.Set); err != nil {
		return nil, err
	}

	builder := record.New(descriptor)
	if err := builder.Apply(values); err != nil {
		var fieldErr *record.FieldError
		if errors.As(err, &fieldErr) {
			return nil, cli.Validation("%w", err)
		}
		return nil, cli.Internal("%w", err)
	}
	built, err := builder.Build()
	if err != nil {
		return nil, cli.Internal("%w", err)
	}
	return built, nil
}
