// Copyright 2026 The recordjson Authors
// SPDX-License-Identifier: Apache-2.0

package schemadef

import (
	"fmt"
	"strings"

	"google.golang.org/protobuf/types/descriptorpb"
)

// Document is a schema definition as authored on disk.
type Document struct {
	// Package is the dotted namespace for the records (e.g.,
	// "playground" or "acme.catalog").
	Package string `yaml:"package" json:"package"`

	// Version is appended to the package as ".v<N>" when greater than
	// zero. Version 0 means unversioned.
	Version int `yaml:"version,omitempty" json:"version,omitempty"`

	// Records are the record types, in declaration order.
	Records []RecordDef `yaml:"records" json:"records"`

	// Source is the path the document was read from, if any. It names
	// the compiled descriptor file and appears in error messages.
	Source string `yaml:"-" json:"-"`
}

// RecordDef declares one record type.
type RecordDef struct {
	Name        string     `yaml:"name" json:"name"`
	Description string     `yaml:"description,omitempty" json:"description,omitempty"`
	Fields      []FieldDef `yaml:"fields" json:"fields"`
}

// FieldDef declares one field of a record.
type FieldDef struct {
	// Name is the declared field name. The JSON key is derived from it
	// with protobuf's lowerCamelCase rule.
	Name string `yaml:"name" json:"name"`

	// Type is a scalar type name (see [ScalarTypes]) or the name of a
	// record declared in the same document.
	Type string `yaml:"type" json:"type"`

	// Number is the protobuf field number. Zero means "assign the next
	// unused number in declaration order".
	Number int32 `yaml:"number,omitempty" json:"number,omitempty"`

	// Repeated makes the field an ordered sequence of Type.
	Repeated bool `yaml:"repeated,omitempty" json:"repeated,omitempty"`

	// Optional gives a scalar field explicit presence: assigning the
	// default value still counts as set. Record-typed fields always
	// track presence and must not set this.
	Optional bool `yaml:"optional,omitempty" json:"optional,omitempty"`

	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// scalarTypes maps the scalar type names accepted in a [FieldDef] to
// their protobuf wire types.
var scalarTypes = map[string]descriptorpb.FieldDescriptorProto_Type{
	"string":   descriptorpb.FieldDescriptorProto_TYPE_STRING,
	"bool":     descriptorpb.FieldDescriptorProto_TYPE_BOOL,
	"int32":    descriptorpb.FieldDescriptorProto_TYPE_INT32,
	"int64":    descriptorpb.FieldDescriptorProto_TYPE_INT64,
	"uint32":   descriptorpb.FieldDescriptorProto_TYPE_UINT32,
	"uint64":   descriptorpb.FieldDescriptorProto_TYPE_UINT64,
	"sint32":   descriptorpb.FieldDescriptorProto_TYPE_SINT32,
	"sint64":   descriptorpb.FieldDescriptorProto_TYPE_SINT64,
	"fixed32":  descriptorpb.FieldDescriptorProto_TYPE_FIXED32,
	"fixed64":  descriptorpb.FieldDescriptorProto_TYPE_FIXED64,
	"sfixed32": descriptorpb.FieldDescriptorProto_TYPE_SFIXED32,
	"sfixed64": descriptorpb.FieldDescriptorProto_TYPE_SFIXED64,
	"float":    descriptorpb.FieldDescriptorProto_TYPE_FLOAT,
	"double":   descriptorpb.FieldDescriptorProto_TYPE_DOUBLE,
}

// ScalarTypes returns the scalar type names a field may declare, in a
// stable order.
func ScalarTypes() []string {
	return []string{
		"string", "bool",
		"int32", "int64", "uint32", "uint64",
		"sint32", "sint64", "fixed32", "fixed64", "sfixed32", "sfixed64",
		"float", "double",
	}
}

// IsScalarType reports whether name is a scalar type name.
func IsScalarType(name string) bool {
	_, ok := scalarTypes[name]
	return ok
}

// ProtoPackage returns the protobuf package the document compiles into:
// Package, followed by ".v<Version>" when Version is positive.
func (d *Document) ProtoPackage() string {
	if d.Version > 0 {
		return fmt.Sprintf("%s.v%d", d.Package, d.Version)
	}
	return d.Package
}

// FullName returns the fully-qualified name of the record called name.
func (d *Document) FullName(name string) string {
	return d.ProtoPackage() + "." + name
}

// Record returns the declaration of the record called name.
func (d *Document) Record(name string) (RecordDef, bool) {
	for _, record := range d.Records {
		if record.Name == name {
			return record, true
		}
	}
	return RecordDef{}, false
}

// ValidationError reports every structural issue found in a document.
type ValidationError struct {
	Source string
	Issues []string
}

func (e *ValidationError) Error() string {
	prefix := "schema definition"
	if e.Source != "" {
		prefix = e.Source
	}
	if len(e.Issues) == 1 {
		return fmt.Sprintf("%s: %s", prefix, e.Issues[0])
	}
	return fmt.Sprintf("%s: %d issues:\n  - %s", prefix, len(e.Issues), strings.Join(e.Issues, "\n  - "))
}
