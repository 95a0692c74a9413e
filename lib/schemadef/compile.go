// Copyright 2026 The recordjson Authors
// SPDX-License-Identifier: Apache-2.0

package schemadef

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
)

// ErrUnknownRecord is returned when a lookup names no compiled record.
var ErrUnknownRecord = errors.New("unknown record type")

// Set is a compiled schema definition: one protobuf file descriptor
// holding a message descriptor per declared record. A Set is immutable
// and safe for concurrent use.
type Set struct {
	document   Document
	file       protoreflect.FileDescriptor
	descriptor *descriptorpb.FileDescriptorProto
}

// Compile validates document and builds its protobuf descriptors.
// Validation failures are reported as a single *[ValidationError]
// listing every issue.
func Compile(document *Document) (*Set, error) {
	if issues := Validate(document); len(issues) > 0 {
		return nil, &ValidationError{Source: document.Source, Issues: issues}
	}

	descriptor := buildFileDescriptor(document)
	file, err := protodesc.NewFile(descriptor, new(protoregistry.Files))
	if err != nil {
		return nil, fmt.Errorf("compiling %s: %w", descriptor.GetName(), err)
	}

	set := &Set{
		document:   *document,
		file:       file,
		descriptor: descriptor,
	}
	set.document.Records = append([]RecordDef(nil), document.Records...)
	return set, nil
}

// buildFileDescriptor lowers a validated document into a proto3 file
// descriptor. Optional scalar fields become proto3 optional fields,
// each wrapped in its own synthetic oneof as protoc would emit.
func buildFileDescriptor(document *Document) *descriptorpb.FileDescriptorProto {
	protoPackage := document.ProtoPackage()

	file := &descriptorpb.FileDescriptorProto{
		Name:    proto.String(descriptorFileName(document)),
		Package: proto.String(protoPackage),
		Syntax:  proto.String("proto3"),
	}

	for _, record := range document.Records {
		message := &descriptorpb.DescriptorProto{
			Name: proto.String(record.Name),
		}

		numbers := fieldNumbers(record.Fields)
		var syntheticOneofs []*descriptorpb.OneofDescriptorProto
		for index, field := range record.Fields {
			fieldDescriptor := &descriptorpb.FieldDescriptorProto{
				Name:     proto.String(field.Name),
				Number:   proto.Int32(numbers[index]),
				Label:    descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
				JsonName: proto.String(JSONName(field.Name)),
			}
			if field.Repeated {
				fieldDescriptor.Label = descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum()
			}

			if scalar, ok := scalarTypes[field.Type]; ok {
				fieldDescriptor.Type = scalar.Enum()
			} else {
				fieldDescriptor.Type = descriptorpb.FieldDescriptorProto_TYPE_MESSAGE.Enum()
				fieldDescriptor.TypeName = proto.String("." + protoPackage + "." + field.Type)
			}

			if field.Optional {
				fieldDescriptor.Proto3Optional = proto.Bool(true)
				syntheticOneofs = append(syntheticOneofs, &descriptorpb.OneofDescriptorProto{
					Name: proto.String("_" + field.Name),
				})
				fieldDescriptor.OneofIndex = proto.Int32(int32(len(syntheticOneofs) - 1))
			}

			message.Field = append(message.Field, fieldDescriptor)
		}
		message.OneofDecl = syntheticOneofs

		file.MessageType = append(file.MessageType, message)
	}

	return file
}

// descriptorFileName derives the descriptor's file name from the
// package path and the source file stem, e.g. "playground/v1/product.proto".
func descriptorFileName(document *Document) string {
	stem := "schema"
	if document.Source != "" {
		base := filepath.Base(document.Source)
		stem = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return strings.ReplaceAll(document.ProtoPackage(), ".", "/") + "/" + stem + ".proto"
}

// Document returns the definition the set was compiled from.
func (s *Set) Document() Document {
	document := s.document
	document.Records = append([]RecordDef(nil), s.document.Records...)
	return document
}

// File returns the compiled file descriptor.
func (s *Set) File() protoreflect.FileDescriptor {
	return s.file
}

// Package returns the protobuf package of the compiled records.
func (s *Set) Package() string {
	return string(s.file.Package())
}

// DescriptorProto returns a copy of the file descriptor proto the set
// was compiled from.
func (s *Set) DescriptorProto() *descriptorpb.FileDescriptorProto {
	return proto.Clone(s.descriptor).(*descriptorpb.FileDescriptorProto)
}

// Records returns the message descriptor of every record, in
// declaration order.
func (s *Set) Records() []protoreflect.MessageDescriptor {
	messages := s.file.Messages()
	descriptors := make([]protoreflect.MessageDescriptor, messages.Len())
	for index := 0; index < messages.Len(); index++ {
		descriptors[index] = messages.Get(index)
	}
	return descriptors
}

// Lookup resolves a record by its full name ("playground.v1.Product")
// or by its name relative to the set's package ("Product").
func (s *Set) Lookup(name string) (protoreflect.MessageDescriptor, error) {
	short := name
	if prefix := s.Package() + "."; strings.HasPrefix(name, prefix) {
		short = strings.TrimPrefix(name, prefix)
	}
	if descriptor := s.file.Messages().ByName(protoreflect.Name(short)); descriptor != nil {
		return descriptor, nil
	}
	return nil, fmt.Errorf("%w %q in package %s", ErrUnknownRecord, name, s.Package())
}
