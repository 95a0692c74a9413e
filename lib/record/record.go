// Copyright 2026 The recordjson Authors
// SPDX-License-Identifier: Apache-2.0

package record

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
)

// Record is an immutable, fully-constructed instance of a record type.
// Obtain one from [Builder.Build], [Empty], or [FromMessage].
type Record struct {
	message protoreflect.Message
}

// Empty returns the record of the given type with every field at its
// default value.
func Empty(descriptor protoreflect.MessageDescriptor) *Record {
	record, err := New(descriptor).Build()
	if err != nil {
		// A fresh builder has nothing that can fail validation.
		panic("record.Empty: " + err.Error())
	}
	return record
}

// FromMessage wraps a generated (or otherwise constructed) protobuf
// message. The message is cloned, so later changes to message do not
// affect the record. Returns an error if a required field is missing or
// a string field holds invalid UTF-8.
func FromMessage(message proto.Message) (*Record, error) {
	if message == nil || !message.ProtoReflect().IsValid() {
		return nil, errors.New("record.FromMessage: nil message")
	}
	if err := proto.CheckInitialized(message); err != nil {
		return nil, fmt.Errorf("record %s is not fully constructed: %w",
			message.ProtoReflect().Descriptor().FullName(), err)
	}
	if err := checkStrings(message.ProtoReflect()); err != nil {
		return nil, err
	}
	return &Record{message: proto.Clone(message).ProtoReflect()}, nil
}

// Descriptor returns the record's schema.
func (r *Record) Descriptor() protoreflect.MessageDescriptor {
	return r.message.Descriptor()
}

// FullName returns the fully-qualified name of the record's type.
func (r *Record) FullName() protoreflect.FullName {
	return r.message.Descriptor().FullName()
}

// Reflect returns a read-only reflective view of the record. Callers
// must not mutate the returned message or any message or list reached
// through it; use [Record.Message] for a mutable copy.
func (r *Record) Reflect() protoreflect.Message {
	return r.message
}

// Message returns a mutable deep copy of the record as a protobuf
// message.
func (r *Record) Message() proto.Message {
	return proto.Clone(r.message.Interface())
}

// Has reports whether the named field is set. Unknown names report
// false.
func (r *Record) Has(name string) bool {
	field := lookupField(r.message.Descriptor(), name)
	return field != nil && r.message.Has(field)
}

// Get returns the value of the named field, or its default when unset.
// Message and list values are part of the read-only view; see
// [Record.Reflect].
func (r *Record) Get(name string) (protoreflect.Value, error) {
	field := lookupField(r.message.Descriptor(), name)
	if field == nil {
		return protoreflect.Value{}, &FieldError{Record: r.FullName(), Field: name, Err: ErrUnknownField}
	}
	return r.message.Get(field), nil
}

// Equal reports whether two records have the same type and contents.
func (r *Record) Equal(other *Record) bool {
	if r == nil || other == nil {
		return r == other
	}
	return proto.Equal(r.message.Interface(), other.message.Interface())
}

// lookupField resolves a field by its declared name, falling back to
// its JSON name.
func lookupField(descriptor protoreflect.MessageDescriptor, name string) protoreflect.FieldDescriptor {
	fields := descriptor.Fields()
	if field := fields.ByName(protoreflect.Name(name)); field != nil {
		return field
	}
	return fields.ByJSONName(name)
}

// checkStrings walks every populated field of message and rejects
// string values that are not valid UTF-8.
func checkStrings(message protoreflect.Message) error {
	var walkErr error
	message.Range(func(field protoreflect.FieldDescriptor, value protoreflect.Value) bool {
		walkErr = checkFieldStrings(message.Descriptor().FullName(), field, value)
		return walkErr == nil
	})
	return walkErr
}

func checkFieldStrings(owner protoreflect.FullName, field protoreflect.FieldDescriptor, value protoreflect.Value) error {
	invalid := func() error {
		return &FieldError{Record: owner, Field: string(field.Name()), Err: ErrInvalidUTF8}
	}

	switch {
	case field.IsList():
		list := value.List()
		for index := 0; index < list.Len(); index++ {
			if err := checkElementStrings(field, list.Get(index), invalid); err != nil {
				return err
			}
		}
		return nil

	case field.IsMap():
		var mapErr error
		value.Map().Range(func(key protoreflect.MapKey, element protoreflect.Value) bool {
			if field.MapKey().Kind() == protoreflect.StringKind && !utf8.ValidString(key.String()) {
				mapErr = invalid()
				return false
			}
			mapErr = checkElementStrings(field.MapValue(), element, invalid)
			return mapErr == nil
		})
		return mapErr

	default:
		return checkElementStrings(field, value, invalid)
	}
}

func checkElementStrings(field protoreflect.FieldDescriptor, value protoreflect.Value, invalid func() error) error {
	switch field.Kind() {
	case protoreflect.StringKind:
		if !utf8.ValidString(value.String()) {
			return invalid()
		}
	case protoreflect.MessageKind, protoreflect.GroupKind:
		return checkStrings(value.Message())
	}
	return nil
}
