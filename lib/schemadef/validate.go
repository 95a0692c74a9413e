// Copyright 2026 The recordjson Authors
// SPDX-License-Identifier: Apache-2.0

package schemadef

import (
	"fmt"
	"regexp"
	"strings"
)

// identifierPattern matches record names, field names, and package
// segments: a letter or underscore followed by letters, digits, or
// underscores.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

const (
	// maxFieldNumber is the largest protobuf field number.
	maxFieldNumber = 1<<29 - 1

	// Field numbers in this range are reserved by the protobuf
	// implementation.
	reservedFieldNumberFirst = 19000
	reservedFieldNumberLast  = 19999
)

// Validate checks a Document for structural issues. Returns a list of
// human-readable issue descriptions. An empty list means the document
// can be compiled.
//
// Structural checks include:
//   - Package is a dotted sequence of identifiers
//   - Version is not negative
//   - At least one record is declared, and record names are unique identifiers
//   - Field names are unique identifiers, and their JSON names do not collide
//   - Field types are scalar type names or records declared in the document
//   - Repeated and optional are not combined; optional is scalar-only
//   - Field numbers are in range, outside the reserved range, and unique
func Validate(document *Document) []string {
	var issues []string

	if document.Package == "" {
		issues = append(issues, "package is required")
	} else {
		for _, segment := range strings.Split(document.Package, ".") {
			if !identifierPattern.MatchString(segment) {
				issues = append(issues, fmt.Sprintf(
					"package %q: each dot-separated segment must be an identifier ([A-Za-z_][A-Za-z0-9_]*)",
					document.Package,
				))
				break
			}
		}
	}

	if document.Version < 0 {
		issues = append(issues, fmt.Sprintf("version %d: must not be negative", document.Version))
	}

	if len(document.Records) == 0 {
		issues = append(issues, "no records declared (at least one record is required)")
	}

	recordNames := make(map[string]int, len(document.Records))
	for index, record := range document.Records {
		if record.Name == "" {
			continue
		}
		if firstIndex, exists := recordNames[record.Name]; exists {
			issues = append(issues, fmt.Sprintf(
				"records[%d] %q: duplicate record name (first declared at records[%d])",
				index, record.Name, firstIndex,
			))
			continue
		}
		recordNames[record.Name] = index
	}

	for index, record := range document.Records {
		prefix := fmt.Sprintf("records[%d]", index)
		issues = append(issues, validateRecord(record, prefix, recordNames)...)
	}

	return issues
}

// validateRecord checks one record declaration. The prefix identifies
// the record's position for error messages.
func validateRecord(record RecordDef, prefix string, recordNames map[string]int) []string {
	var issues []string

	if record.Name == "" {
		issues = append(issues, fmt.Sprintf("%s: name is required", prefix))
	} else {
		if !identifierPattern.MatchString(record.Name) {
			issues = append(issues, fmt.Sprintf(
				"%s %q: record name must be an identifier ([A-Za-z_][A-Za-z0-9_]*)",
				prefix, record.Name,
			))
		}
		prefix = fmt.Sprintf("%s %q", prefix, record.Name)
	}

	fieldNames := make(map[string]int, len(record.Fields))
	jsonNames := make(map[string]string, len(record.Fields))
	for index, field := range record.Fields {
		fieldPrefix := fmt.Sprintf("%s fields[%d]", prefix, index)

		if field.Name == "" {
			issues = append(issues, fmt.Sprintf("%s: name is required", fieldPrefix))
		} else {
			fieldPrefix = fmt.Sprintf("%s %q", fieldPrefix, field.Name)
			if !identifierPattern.MatchString(field.Name) {
				issues = append(issues, fmt.Sprintf(
					"%s: field name must be an identifier ([A-Za-z_][A-Za-z0-9_]*)", fieldPrefix,
				))
			}
			if firstIndex, exists := fieldNames[field.Name]; exists {
				issues = append(issues, fmt.Sprintf(
					"%s: duplicate field name (first declared at fields[%d])", fieldPrefix, firstIndex,
				))
			} else {
				fieldNames[field.Name] = index
				jsonName := JSONName(field.Name)
				if other, exists := jsonNames[jsonName]; exists {
					issues = append(issues, fmt.Sprintf(
						"%s: JSON name %q collides with field %q", fieldPrefix, jsonName, other,
					))
				} else {
					jsonNames[jsonName] = field.Name
				}
			}
		}

		isRecordType := false
		switch {
		case field.Type == "":
			issues = append(issues, fmt.Sprintf("%s: type is required", fieldPrefix))
		case IsScalarType(field.Type):
		default:
			if _, declared := recordNames[field.Type]; declared {
				isRecordType = true
			} else {
				issues = append(issues, fmt.Sprintf(
					"%s: unknown type %q (want a scalar type or a record declared in this document)",
					fieldPrefix, field.Type,
				))
			}
		}

		if field.Repeated && field.Optional {
			issues = append(issues, fmt.Sprintf("%s: repeated fields cannot be optional", fieldPrefix))
		}
		if isRecordType && field.Optional {
			issues = append(issues, fmt.Sprintf(
				"%s: optional is only valid on scalar fields (record fields always track presence)",
				fieldPrefix,
			))
		}

		if field.Number != 0 {
			if field.Number < 0 || field.Number > maxFieldNumber {
				issues = append(issues, fmt.Sprintf(
					"%s: number %d out of range [1, %d]", fieldPrefix, field.Number, maxFieldNumber,
				))
			} else if field.Number >= reservedFieldNumberFirst && field.Number <= reservedFieldNumberLast {
				issues = append(issues, fmt.Sprintf(
					"%s: number %d is in the reserved range [%d, %d]",
					fieldPrefix, field.Number, reservedFieldNumberFirst, reservedFieldNumberLast,
				))
			}
		}
	}

	numbers := fieldNumbers(record.Fields)
	seen := make(map[int32]string, len(numbers))
	for index, number := range numbers {
		name := record.Fields[index].Name
		if other, exists := seen[number]; exists {
			issues = append(issues, fmt.Sprintf(
				"%s fields[%d] %q: field number %d already used by %q", prefix, index, name, number, other,
			))
			continue
		}
		seen[number] = name
	}

	return issues
}

// fieldNumbers returns the field number for each field. Explicit
// numbers are kept; fields with Number zero take the smallest number
// not explicitly claimed and not yet assigned, in declaration order.
func fieldNumbers(fields []FieldDef) []int32 {
	claimed := make(map[int32]bool, len(fields))
	for _, field := range fields {
		if field.Number > 0 {
			claimed[field.Number] = true
		}
	}

	numbers := make([]int32, len(fields))
	next := int32(1)
	for index, field := range fields {
		if field.Number != 0 {
			numbers[index] = field.Number
			continue
		}
		for claimed[next] || (next >= reservedFieldNumberFirst && next <= reservedFieldNumberLast) {
			next++
		}
		numbers[index] = next
		claimed[next] = true
	}
	return numbers
}

// JSONName returns the JSON key protobuf derives from a declared field
// name: underscores are dropped and a lowercase letter following an
// underscore is upper-cased ("display_name" becomes "displayName").
func JSONName(name string) string {
	var builder strings.Builder
	builder.Grow(len(name))
	afterUnderscore := false
	for index := 0; index < len(name); index++ {
		character := name[index]
		if character == '_' {
			afterUnderscore = true
			continue
		}
		if afterUnderscore && 'a' <= character && character <= 'z' {
			character -= 'a' - 'A'
		}
		builder.WriteByte(character)
		afterUnderscore = false
	}
	return builder.String()
}
