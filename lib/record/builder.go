// Copyright 2026 The recordjson Authors
// SPDX-License-Identifier: Apache-2.0

package record

import (
	"fmt"
	"reflect"
	"slices"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"
)

// Builder assembles a record. It starts with every field at its
// default value, accepts assignments, and is finalized by Build. A
// Builder is not safe for concurrent use.
type Builder struct {
	message   *dynamicpb.Message
	finalized bool
}

// New returns a builder for the given record type.
func New(descriptor protoreflect.MessageDescriptor) *Builder {
	return &Builder{message: dynamicpb.NewMessage(descriptor)}
}

// Descriptor returns the schema of the record under construction.
func (b *Builder) Descriptor() protoreflect.MessageDescriptor {
	return b.message.Descriptor()
}

// Set assigns a field, addressed by declared name or JSON name.
//
// Scalar fields take the Go types natural to their kind, plus
// json.Number, whole-number floats for integer kinds, and decimal
// strings. Record fields take a *Record of the field's type, a
// proto.Message of that type, or a map[string]any that is applied to
// a nested builder. Records and messages may come from another
// compilation of the same schema; a same-named type with different
// fields is ErrTypeMismatch. Repeated fields take a slice, which replaces the
// current contents.
// Assigning nil clears the field.
func (b *Builder) Set(name string, value any) error {
	field, err := b.field(name)
	if err != nil {
		return err
	}
	if value == nil {
		b.message.Clear(field)
		return nil
	}

	if field.IsList() {
		elements, ok := sliceElements(value)
		if !ok {
			return b.fieldError(field, fmt.Errorf("%w: repeated field wants a slice, got %T", ErrTypeMismatch, value))
		}
		list := b.message.NewField(field).List()
		for index, element := range elements {
			converted, err := elementValue(field, list, element)
			if err != nil {
				return b.fieldError(field, fmt.Errorf("element %d: %w", index, err))
			}
			list.Append(converted)
		}
		b.message.Set(field, protoreflect.ValueOfList(list))
		return nil
	}

	if field.Kind() == protoreflect.MessageKind || field.Kind() == protoreflect.GroupKind {
		nested := b.message.NewField(field).Message()
		if err := mergeInto(nested, value); err != nil {
			return b.fieldError(field, err)
		}
		b.message.Set(field, protoreflect.ValueOfMessage(nested))
		return nil
	}

	converted, err := scalarValue(field, value)
	if err != nil {
		return b.fieldError(field, err)
	}
	b.message.Set(field, converted)
	return nil
}

// Append adds elements to the end of a repeated field.
func (b *Builder) Append(name string, values ...any) error {
	field, err := b.field(name)
	if err != nil {
		return err
	}
	if !field.IsList() {
		return b.fieldError(field, fmt.Errorf("%w: Append needs a repeated field", ErrTypeMismatch))
	}

	// Convert everything first so a bad element leaves the field as it was.
	list := b.message.Mutable(field).List()
	converted := make([]protoreflect.Value, 0, len(values))
	for index, value := range values {
		element, err := elementValue(field, list, value)
		if err != nil {
			return b.fieldError(field, fmt.Errorf("element %d: %w", index, err))
		}
		converted = append(converted, element)
	}
	for _, element := range converted {
		list.Append(element)
	}
	return nil
}

// SetRecord assigns a nested record. It is Set restricted to *Record
// values, for call sites that want the type checked at compile time.
func (b *Builder) SetRecord(name string, nested *Record) error {
	if nested == nil {
		return b.Set(name, nil)
	}
	return b.Set(name, nested)
}

// Clear returns a field to its default value and unset state.
func (b *Builder) Clear(name string) error {
	return b.Set(name, nil)
}

// Apply assigns every entry of values with Set, in sorted key order so
// that the first reported error does not depend on map iteration.
func (b *Builder) Apply(values map[string]any) error {
	if b.finalized {
		return ErrFinalized
	}
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	for _, key := range keys {
		if err := b.Set(key, values[key]); err != nil {
			return err
		}
	}
	return nil
}

// Build finalizes the builder and returns the record. The builder
// rejects every later call with [ErrFinalized].
func (b *Builder) Build() (*Record, error) {
	if b.finalized {
		return nil, ErrFinalized
	}
	b.finalized = true
	return &Record{message: b.message}, nil
}

func (b *Builder) field(name string) (protoreflect.FieldDescriptor, error) {
	if b.finalized {
		return nil, ErrFinalized
	}
	field := lookupField(b.message.Descriptor(), name)
	if field == nil {
		return nil, &FieldError{Record: b.message.Descriptor().FullName(), Field: name, Err: ErrUnknownField}
	}
	if field.IsMap() {
		return nil, b.fieldError(field, fmt.Errorf("%w: map", ErrUnsupportedField))
	}
	return field, nil
}

func (b *Builder) fieldError(field protoreflect.FieldDescriptor, err error) error {
	return &FieldError{Record: b.message.Descriptor().FullName(), Field: string(field.Name()), Err: err}
}

// elementValue converts one element of a repeated field.
func elementValue(field protoreflect.FieldDescriptor, list protoreflect.List, value any) (protoreflect.Value, error) {
	if field.Kind() == protoreflect.MessageKind || field.Kind() == protoreflect.GroupKind {
		element := list.NewElement()
		if err := mergeInto(element.Message(), value); err != nil {
			return protoreflect.Value{}, err
		}
		return element, nil
	}
	if value == nil {
		return protoreflect.Value{}, fmt.Errorf("%w: nil element", ErrTypeMismatch)
	}
	return scalarValue(field, value)
}

// mergeInto copies value into target, a fresh message of the field's
// type. Copying (rather than aliasing) keeps every record independent
// of the records it was assembled from.
func mergeInto(target protoreflect.Message, value any) error {
	want := target.Descriptor().FullName()

	switch source := value.(type) {
	case *Record:
		if source == nil {
			return fmt.Errorf("%w: nil record", ErrTypeMismatch)
		}
		if source.FullName() != want {
			return fmt.Errorf("%w: want record %s, got %s", ErrTypeMismatch, want, source.FullName())
		}
		if source.Descriptor() == target.Descriptor() {
			proto.Merge(target.Interface(), source.message.Interface())
			return nil
		}
		return copyAcross(target, source.message)

	case proto.Message:
		nested, err := FromMessage(source)
		if err != nil {
			return err
		}
		return mergeInto(target, nested)

	case map[string]any:
		builder := &Builder{message: dynamicpb.NewMessage(target.Descriptor())}
		if err := builder.Apply(source); err != nil {
			return err
		}
		proto.Merge(target.Interface(), builder.message)
		return nil

	default:
		return fmt.Errorf("%w: want record %s, got %T", ErrTypeMismatch, want, value)
	}
}

// copyAcross copies source into target when the two are the same
// record type from different compilations, such as one schema document
// compiled twice. proto.Merge requires identical descriptors, so the
// copy goes through the wire encoding; structurally different types of
// the same name are a type mismatch.
func copyAcross(target, source protoreflect.Message) error {
	if !sameShape(target.Descriptor(), source.Descriptor(), map[protoreflect.FullName]bool{}) {
		return fmt.Errorf("%w: record %s comes from an incompatible schema", ErrTypeMismatch, target.Descriptor().FullName())
	}
	data, err := proto.MarshalOptions{Deterministic: true}.Marshal(source.Interface())
	if err != nil {
		return fmt.Errorf("copying record %s: %w", source.Descriptor().FullName(), err)
	}
	if err := (proto.UnmarshalOptions{Merge: true}).Unmarshal(data, target.Interface()); err != nil {
		return fmt.Errorf("copying record %s: %w", source.Descriptor().FullName(), err)
	}
	return nil
}

// sameShape reports whether two message descriptors declare the same
// fields, recursively through record-typed fields. checked holds the
// names already compared, which also ends recursion through
// self-referencing types.
func sameShape(a, b protoreflect.MessageDescriptor, checked map[protoreflect.FullName]bool) bool {
	if a == b {
		return true
	}
	if a.FullName() != b.FullName() {
		return false
	}
	if checked[a.FullName()] {
		return true
	}
	checked[a.FullName()] = true

	if !proto.Equal(protodesc.ToDescriptorProto(a), protodesc.ToDescriptorProto(b)) {
		return false
	}
	fields := a.Fields()
	for index := 0; index < fields.Len(); index++ {
		field := fields.Get(index)
		if field.Message() == nil {
			continue
		}
		other := b.Fields().ByNumber(field.Number())
		if other == nil || other.Message() == nil || !sameShape(field.Message(), other.Message(), checked) {
			return false
		}
	}
	return true
}

// sliceElements returns the elements of any slice or array value.
func sliceElements(value any) ([]any, bool) {
	if elements, ok := value.([]any); ok {
		return elements, true
	}
	reflected := reflect.ValueOf(value)
	if reflected.Kind() != reflect.Slice && reflected.Kind() != reflect.Array {
		return nil, false
	}
	elements := make([]any, reflected.Len())
	for index := range elements {
		elements[index] = reflected.Index(index).Interface()
	}
	return elements, true
}
