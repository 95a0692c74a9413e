// Copyright 2026 The recordjson Authors
// SPDX-License-Identifier: Apache-2.0

package printer

import (
	"math"
	"strconv"
	"unicode/utf8"
)

const indentUnit = "  "

// AppendJSON appends the JSON text of v to dst. With compact set no
// whitespace is written outside string literals; otherwise non-empty
// objects and arrays put each entry on its own line, indented two
// spaces per level, and keys are followed by ": ".
func AppendJSON(dst []byte, v Value, compact bool) []byte {
	return appendValue(dst, v, compact, 0)
}

func appendValue(dst []byte, v Value, compact bool, depth int) []byte {
	switch v.Kind {
	case KindBool:
		return strconv.AppendBool(dst, v.Bool)

	case KindInt:
		if v.Bits == 64 {
			dst = append(dst, '"')
			dst = strconv.AppendInt(dst, v.Int, 10)
			return append(dst, '"')
		}
		return strconv.AppendInt(dst, v.Int, 10)

	case KindUint:
		if v.Bits == 64 {
			dst = append(dst, '"')
			dst = strconv.AppendUint(dst, v.Uint, 10)
			return append(dst, '"')
		}
		return strconv.AppendUint(dst, v.Uint, 10)

	case KindFloat:
		return appendFloat(dst, v.Float, v.Bits)

	case KindString:
		return appendString(dst, v.String)

	case KindList:
		if len(v.Items) == 0 {
			return append(dst, "[]"...)
		}
		dst = append(dst, '[')
		for index, item := range v.Items {
			if index > 0 {
				dst = append(dst, ',')
			}
			dst = appendNewline(dst, compact, depth+1)
			dst = appendValue(dst, item, compact, depth+1)
		}
		dst = appendNewline(dst, compact, depth)
		return append(dst, ']')

	case KindObject:
		if len(v.Members) == 0 {
			return append(dst, "{}"...)
		}
		dst = append(dst, '{')
		for index, member := range v.Members {
			if index > 0 {
				dst = append(dst, ',')
			}
			dst = appendNewline(dst, compact, depth+1)
			dst = appendString(dst, member.Key)
			dst = append(dst, ':')
			if !compact {
				dst = append(dst, ' ')
			}
			dst = appendValue(dst, member.Value, compact, depth+1)
		}
		dst = appendNewline(dst, compact, depth)
		return append(dst, '}')

	default:
		return append(dst, "null"...)
	}
}

func appendNewline(dst []byte, compact bool, depth int) []byte {
	if compact {
		return dst
	}
	dst = append(dst, '\n')
	for i := 0; i < depth; i++ {
		dst = append(dst, indentUnit...)
	}
	return dst
}

// appendFloat writes a float the way protobuf's JSON mapping does:
// non-finite values as strings, everything else as the shortest decimal
// that round-trips at the field's precision, switching to exponent form
// outside [1e-6, 1e21).
func appendFloat(dst []byte, float float64, bits int) []byte {
	switch {
	case math.IsNaN(float):
		return append(dst, `"NaN"`...)
	case math.IsInf(float, 1):
		return append(dst, `"Infinity"`...)
	case math.IsInf(float, -1):
		return append(dst, `"-Infinity"`...)
	}

	format := byte('f')
	if magnitude := math.Abs(float); magnitude != 0 {
		if bits == 64 && (magnitude < 1e-6 || magnitude >= 1e21) ||
			bits == 32 && (float32(magnitude) < 1e-6 || float32(magnitude) >= 1e21) {
			format = 'e'
		}
	}
	dst = strconv.AppendFloat(dst, float, format, -1, bits)
	if format == 'e' {
		// Shorten a two-digit negative exponent: 1e-07 becomes 1e-7.
		n := len(dst)
		if n >= 4 && dst[n-4] == 'e' && dst[n-3] == '-' && dst[n-2] == '0' {
			dst[n-2] = dst[n-1]
			dst = dst[:n-1]
		}
	}
	return dst
}

const hexDigits = "0123456789abcdef"

// appendString writes s as a JSON string literal. Records hold valid
// UTF-8, so only the quote, the backslash, and control characters need
// escaping; everything else is copied through unchanged.
func appendString(dst []byte, s string) []byte {
	dst = append(dst, '"')
	start := 0
	for index := 0; index < len(s); {
		c := s[index]
		if c >= utf8.RuneSelf || (c >= 0x20 && c != '"' && c != '\\') {
			index++
			continue
		}
		dst = append(dst, s[start:index]...)
		switch c {
		case '"', '\\':
			dst = append(dst, '\\', c)
		case '\n':
			dst = append(dst, '\\', 'n')
		case '\r':
			dst = append(dst, '\\', 'r')
		case '\t':
			dst = append(dst, '\\', 't')
		case '\b':
			dst = append(dst, '\\', 'b')
		case '\f':
			dst = append(dst, '\\', 'f')
		default:
			dst = append(dst, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xf])
		}
		index++
		start = index
	}
	dst = append(dst, s[start:]...)
	return append(dst, '"')
}
