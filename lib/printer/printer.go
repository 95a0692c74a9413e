// Copyright 2026 The recordjson Authors
// SPDX-License-Identifier: Apache-2.0

package printer

import (
	"fmt"

	"google.golang.org/protobuf/proto"

	"github.com/recordjson/recordjson/lib/codec"
	"github.com/recordjson/recordjson/lib/record"
)

// Printer renders records under fixed options. It holds no other state
// and is safe for concurrent use.
type Printer struct {
	options Options
}

// New returns a printer with the given options.
func New(options Options) *Printer {
	return &Printer{options: options}
}

// Options returns the printer's configuration.
func (p *Printer) Options() Options {
	return p.options
}

// Print renders r as JSON text.
func (p *Printer) Print(r *record.Record) (string, error) {
	text, err := p.AppendPrint(nil, r)
	if err != nil {
		return "", err
	}
	return string(text), nil
}

// AppendPrint appends the JSON text of r to dst. On error dst is
// returned unchanged.
func (p *Printer) AppendPrint(dst []byte, r *record.Record) ([]byte, error) {
	tree, err := Lower(r, p.options)
	if err != nil {
		return dst, err
	}
	return AppendJSON(dst, tree, p.options.CompactWhitespace), nil
}

// Marshal renders a generated protobuf message. The message is copied
// into a record first, which fails if a proto2 required field is
// missing or a string is not valid UTF-8.
func (p *Printer) Marshal(message proto.Message) (string, error) {
	r, err := record.FromMessage(message)
	if err != nil {
		return "", fmt.Errorf("printer: %w", err)
	}
	return p.Print(r)
}

// Render renders r as JSON text under options.
func Render(r *record.Record, options Options) (string, error) {
	return New(options).Print(r)
}

// RenderCBOR renders r as deterministic CBOR under the default policy
// of options. Integers keep their numeric type and floats use the
// shortest exact encoding; object keys are sorted as CBOR requires.
func RenderCBOR(r *record.Record, options Options) ([]byte, error) {
	tree, err := Lower(r, options)
	if err != nil {
		return nil, err
	}
	data, err := codec.Marshal(tree.Interface())
	if err != nil {
		return nil, fmt.Errorf("printer: encoding CBOR: %w", err)
	}
	return data, nil
}
