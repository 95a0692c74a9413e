// Copyright 2026 The recordjson Authors
// SPDX-License-Identifier: Apache-2.0

package printer

import (
	"fmt"

	"google.golang.org/protobuf/reflect/protoreflect"
)

// UnsupportedFieldError reports a field whose type has no rendering.
// It is returned for the first such field, in declaration order, of
// the first record reached that declares one.
type UnsupportedFieldError struct {
	// Record is the full name of the record type declaring the field.
	Record protoreflect.FullName

	// Field is the field's declared name.
	Field protoreflect.Name

	// Kind names the unsupported type: "bytes", "enum", "map" or
	// "group".
	Kind string
}

func (e *UnsupportedFieldError) Error() string {
	return fmt.Sprintf("printer: field %s.%s has unsupported type %s", e.Record, e.Field, e.Kind)
}

// checkSupported returns an error for the first field of descriptor
// that cannot be rendered.
func checkSupported(descriptor protoreflect.MessageDescriptor) error {
	fields := descriptor.Fields()
	for index := 0; index < fields.Len(); index++ {
		field := fields.Get(index)
		kind := ""
		switch {
		case field.IsMap():
			kind = "map"
		case field.Kind() == protoreflect.BytesKind:
			kind = "bytes"
		case field.Kind() == protoreflect.EnumKind:
			kind = "enum"
		case field.Kind() == protoreflect.GroupKind:
			kind = "group"
		default:
			continue
		}
		return &UnsupportedFieldError{Record: descriptor.FullName(), Field: field.Name(), Kind: kind}
	}
	return nil
}
