// Copyright 2026 The recordjson Authors
// SPDX-License-Identifier: Apache-2.0

package record

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/reflect/protoreflect"
)

var (
	// ErrFinalized is returned by every Builder method after Build.
	ErrFinalized = errors.New("record builder already finalized")

	// ErrUnknownField means the record type declares no such field.
	ErrUnknownField = errors.New("unknown field")

	// ErrTypeMismatch means a value cannot represent the field's type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrOutOfRange means a numeric value does not fit the field.
	ErrOutOfRange = errors.New("value out of range")

	// ErrInvalidUTF8 means a string value is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("string is not valid UTF-8")

	// ErrUnsupportedField means the builder cannot assign fields of
	// this kind (maps).
	ErrUnsupportedField = errors.New("unsupported field kind")
)

// FieldError describes a rejected field assignment. Err is one of the
// sentinel errors of this package, possibly wrapped with detail, so
// callers can match with errors.Is.
type FieldError struct {
	Record protoreflect.FullName
	Field  string
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("record %s field %q: %v", e.Record, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }
