// Copyright 2026 The recordjson Authors
// SPDX-License-Identifier: Apache-2.0

package printer

import (
	"slices"

	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/recordjson/recordjson/lib/record"
)

// Kind identifies the shape of a [Value].
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindUint
	KindFloat
	KindString
	KindList
	KindObject
)

var kindNames = [...]string{
	KindNull:   "null",
	KindBool:   "bool",
	KindInt:    "int",
	KindUint:   "uint",
	KindFloat:  "float",
	KindString: "string",
	KindList:   "list",
	KindObject: "object",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Value is one node of a lowered record. Only the fields matching Kind
// are meaningful. Numeric kinds carry their width in Bits (32 or 64),
// which decides how the number is written: 64-bit integers are quoted
// in JSON, and 32-bit floats format with float32 precision.
type Value struct {
	Kind Kind
	Bits int

	Bool   bool
	Int    int64
	Uint   uint64
	Float  float64
	String string

	// Items holds the elements of a list in order.
	Items []Value

	// Members holds the entries of an object in declaration order.
	Members []Member
}

// Member is one key of an object.
type Member struct {
	Key   string
	Value Value
}

// Get returns the member of an object with the given key.
func (v Value) Get(key string) (Value, bool) {
	for _, member := range v.Members {
		if member.Key == key {
			return member.Value, true
		}
	}
	return Value{}, false
}

// Keys returns an object's keys in order.
func (v Value) Keys() []string {
	keys := make([]string, len(v.Members))
	for index, member := range v.Members {
		keys[index] = member.Key
	}
	return keys
}

// Interface converts the tree into plain Go values: nil, bool, int64,
// uint64, float32, float64, string, []any and map[string]any. Object
// order is lost; encoders that sort keys (deterministic CBOR) do not
// need it.
func (v Value) Interface() any {
	switch v.Kind {
	case KindBool:
		return v.Bool
	case KindInt:
		return v.Int
	case KindUint:
		return v.Uint
	case KindFloat:
		if v.Bits == 32 {
			return float32(v.Float)
		}
		return v.Float
	case KindString:
		return v.String
	case KindList:
		items := make([]any, len(v.Items))
		for index, item := range v.Items {
			items[index] = item.Interface()
		}
		return items
	case KindObject:
		members := make(map[string]any, len(v.Members))
		for _, member := range v.Members {
			members[member.Key] = member.Value.Interface()
		}
		return members
	default:
		return nil
	}
}

// Lower converts a record into a value tree under the default policy of
// options. CompactWhitespace does not affect the tree.
func Lower(r *record.Record, options Options) (Value, error) {
	walker := lowering{includeDefaults: options.IncludeDefaults}
	return walker.message(r.Reflect(), nil)
}

type lowering struct {
	includeDefaults bool
}

// message lowers one record. path lists the record types enclosing
// it, outermost first; an unset nested record whose type is already on
// the path would expand forever, so it is cut to null.
func (l lowering) message(message protoreflect.Message, path []protoreflect.FullName) (Value, error) {
	descriptor := message.Descriptor()
	if err := checkSupported(descriptor); err != nil {
		return Value{}, err
	}
	path = append(path, descriptor.FullName())

	fields := descriptor.Fields()
	object := Value{Kind: KindObject, Members: make([]Member, 0, fields.Len())}
	for index := 0; index < fields.Len(); index++ {
		field := fields.Get(index)
		set := message.Has(field)
		if !set && !l.emitUnset(field) {
			continue
		}

		var value Value
		switch {
		case field.IsList():
			list, err := l.list(field, message.Get(field).List(), path)
			if err != nil {
				return Value{}, err
			}
			value = list

		case field.Message() != nil:
			if !set && slices.Contains(path, field.Message().FullName()) {
				value = Value{Kind: KindNull}
				break
			}
			// Get on an unset record field returns an empty read-only
			// instance, which lowers to its defaults.
			nested, err := l.message(message.Get(field).Message(), path)
			if err != nil {
				return Value{}, err
			}
			value = nested

		default:
			value = scalar(field, message.Get(field))
		}
		object.Members = append(object.Members, Member{Key: field.JSONName(), Value: value})
	}
	return object, nil
}

// emitUnset reports whether an unset field is still rendered. Members
// of a real oneof are skipped: only one of them can ever hold a value.
func (l lowering) emitUnset(field protoreflect.FieldDescriptor) bool {
	if !l.includeDefaults {
		return false
	}
	oneof := field.ContainingOneof()
	return oneof == nil || oneof.IsSynthetic()
}

func (l lowering) list(field protoreflect.FieldDescriptor, list protoreflect.List, path []protoreflect.FullName) (Value, error) {
	items := make([]Value, list.Len())
	for index := 0; index < list.Len(); index++ {
		element := list.Get(index)
		if field.Message() == nil {
			items[index] = scalar(field, element)
			continue
		}
		item, err := l.message(element.Message(), path)
		if err != nil {
			return Value{}, err
		}
		items[index] = item
	}
	return Value{Kind: KindList, Items: items}, nil
}

// scalar lowers a scalar value. checkSupported has already rejected the
// kinds not handled here.
func scalar(field protoreflect.FieldDescriptor, value protoreflect.Value) Value {
	switch field.Kind() {
	case protoreflect.BoolKind:
		return Value{Kind: KindBool, Bool: value.Bool()}
	case protoreflect.StringKind:
		return Value{Kind: KindString, String: value.String()}
	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind:
		return Value{Kind: KindInt, Bits: 32, Int: value.Int()}
	case protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind:
		return Value{Kind: KindInt, Bits: 64, Int: value.Int()}
	case protoreflect.Uint32Kind, protoreflect.Fixed32Kind:
		return Value{Kind: KindUint, Bits: 32, Uint: value.Uint()}
	case protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		return Value{Kind: KindUint, Bits: 64, Uint: value.Uint()}
	case protoreflect.FloatKind:
		return Value{Kind: KindFloat, Bits: 32, Float: value.Float()}
	case protoreflect.DoubleKind:
		return Value{Kind: KindFloat, Bits: 64, Float: value.Float()}
	default:
		return Value{Kind: KindNull}
	}
}
