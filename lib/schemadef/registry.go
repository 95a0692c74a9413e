// Copyright 2026 The recordjson Authors
// SPDX-License-Identifier: Apache-2.0

package schemadef

import (
	"fmt"
	"strings"
	"sync"

	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
)

// Registry holds several compiled sets and resolves records across
// them by full name. Two sets may share a package but may not declare
// the same record full name. A Registry is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	files *protoregistry.Files
	sets  []*Set
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{files: new(protoregistry.Files)}
}

// Add registers a compiled set. Returns an error if any of its records
// (or its descriptor file name) is already registered.
func (r *Registry) Add(set *Set) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.files.FindFileByPath(set.File().Path()); err == nil {
		return fmt.Errorf("descriptor file %s is already registered", set.File().Path())
	}
	for _, descriptor := range set.Records() {
		if _, err := r.files.FindDescriptorByName(descriptor.FullName()); err == nil {
			return fmt.Errorf("record %s is already registered", descriptor.FullName())
		}
	}
	if err := r.files.RegisterFile(set.File()); err != nil {
		return fmt.Errorf("registering %s: %w", set.File().Path(), err)
	}
	r.sets = append(r.sets, set)
	return nil
}

// LoadFile loads a schema definition file and adds it to the registry.
func (r *Registry) LoadFile(path string) (*Set, error) {
	set, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := r.Add(set); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// Lookup resolves a record by full name. When exactly one registered
// set declares a record with the given relative name, the relative
// name is accepted too.
func (r *Registry) Lookup(name string) (protoreflect.MessageDescriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if descriptor, err := r.files.FindDescriptorByName(protoreflect.FullName(name)); err == nil {
		if message, ok := descriptor.(protoreflect.MessageDescriptor); ok {
			return message, nil
		}
		return nil, fmt.Errorf("%w %q: names a %T, not a record", ErrUnknownRecord, name, descriptor)
	}

	if strings.Contains(name, ".") {
		return nil, fmt.Errorf("%w %q", ErrUnknownRecord, name)
	}

	var matches []protoreflect.MessageDescriptor
	for _, set := range r.sets {
		if descriptor, err := set.Lookup(name); err == nil {
			matches = append(matches, descriptor)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w %q", ErrUnknownRecord, name)
	case 1:
		return matches[0], nil
	default:
		candidates := make([]string, len(matches))
		for index, match := range matches {
			candidates[index] = string(match.FullName())
		}
		return nil, fmt.Errorf("record name %q is ambiguous (candidates: %s)", name, strings.Join(candidates, ", "))
	}
}

// Sets returns the registered sets in registration order.
func (r *Registry) Sets() []*Set {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*Set(nil), r.sets...)
}
