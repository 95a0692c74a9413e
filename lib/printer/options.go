// Copyright 2026 The recordjson Authors
// SPDX-License-Identifier: Apache-2.0

package printer

import "strings"

// Options configures rendering. The zero value omits default-valued
// fields and indents the output.
type Options struct {
	// IncludeDefaults emits every declared field, whether or not it was
	// set. Unset nested records render as objects of their defaults.
	IncludeDefaults bool

	// CompactWhitespace omits all whitespace between tokens. Otherwise
	// objects and arrays are broken over lines with two-space indent.
	CompactWhitespace bool
}

// String lists the enabled options, for log attributes.
func (o Options) String() string {
	var enabled []string
	if o.IncludeDefaults {
		enabled = append(enabled, "include-defaults")
	}
	if o.CompactWhitespace {
		enabled = append(enabled, "compact")
	}
	if len(enabled) == 0 {
		return "default"
	}
	return strings.Join(enabled, ",")
}
