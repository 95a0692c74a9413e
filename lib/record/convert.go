// Copyright 2026 The recordjson Authors
// SPDX-License-Identifier: Apache-2.0

package record

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"

	"google.golang.org/protobuf/reflect/protoreflect"
)

// scalarValue converts a Go value into a protoreflect.Value for a
// singular scalar field. Accepted inputs are the natural Go types for
// each kind plus the forms decoders produce: json.Number, float64 for
// integers that arrive from YAML or untyped JSON, and decimal strings
// (protobuf's JSON mapping quotes 64-bit integers). Float fields also
// accept "NaN", "Infinity", and "-Infinity".
func scalarValue(field protoreflect.FieldDescriptor, value any) (protoreflect.Value, error) {
	switch field.Kind() {
	case protoreflect.StringKind:
		text, ok := value.(string)
		if !ok {
			return protoreflect.Value{}, fmt.Errorf("%w: want string, got %T", ErrTypeMismatch, value)
		}
		if !utf8.ValidString(text) {
			return protoreflect.Value{}, ErrInvalidUTF8
		}
		return protoreflect.ValueOfString(text), nil

	case protoreflect.BoolKind:
		flag, ok := value.(bool)
		if !ok {
			return protoreflect.Value{}, fmt.Errorf("%w: want bool, got %T", ErrTypeMismatch, value)
		}
		return protoreflect.ValueOfBool(flag), nil

	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind:
		integer, err := toInt64(value)
		if err != nil {
			return protoreflect.Value{}, err
		}
		if integer < math.MinInt32 || integer > math.MaxInt32 {
			return protoreflect.Value{}, fmt.Errorf("%w: %d does not fit in 32 bits", ErrOutOfRange, integer)
		}
		return protoreflect.ValueOfInt32(int32(integer)), nil

	case protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind:
		integer, err := toInt64(value)
		if err != nil {
			return protoreflect.Value{}, err
		}
		return protoreflect.ValueOfInt64(integer), nil

	case protoreflect.Uint32Kind, protoreflect.Fixed32Kind:
		integer, err := toUint64(value)
		if err != nil {
			return protoreflect.Value{}, err
		}
		if integer > math.MaxUint32 {
			return protoreflect.Value{}, fmt.Errorf("%w: %d does not fit in 32 bits", ErrOutOfRange, integer)
		}
		return protoreflect.ValueOfUint32(uint32(integer)), nil

	case protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		integer, err := toUint64(value)
		if err != nil {
			return protoreflect.Value{}, err
		}
		return protoreflect.ValueOfUint64(integer), nil

	case protoreflect.FloatKind:
		float, err := toFloat64(value)
		if err != nil {
			return protoreflect.Value{}, err
		}
		if !math.IsInf(float, 0) && !math.IsNaN(float) && math.Abs(float) > math.MaxFloat32 {
			return protoreflect.Value{}, fmt.Errorf("%w: %g overflows float", ErrOutOfRange, float)
		}
		return protoreflect.ValueOfFloat32(float32(float)), nil

	case protoreflect.DoubleKind:
		float, err := toFloat64(value)
		if err != nil {
			return protoreflect.Value{}, err
		}
		return protoreflect.ValueOfFloat64(float), nil

	default:
		return protoreflect.Value{}, fmt.Errorf("%w: %s", ErrUnsupportedField, field.Kind())
	}
}

func toInt64(value any) (int64, error) {
	switch number := value.(type) {
	case int:
		return int64(number), nil
	case int8:
		return int64(number), nil
	case int16:
		return int64(number), nil
	case int32:
		return int64(number), nil
	case int64:
		return number, nil
	case uint, uint8, uint16, uint32, uint64:
		unsigned, _ := toUint64(number)
		if unsigned > math.MaxInt64 {
			return 0, fmt.Errorf("%w: %d overflows int64", ErrOutOfRange, unsigned)
		}
		return int64(unsigned), nil
	case float32:
		return integralFloat[int64](float64(number), math.MinInt64, math.MaxInt64)
	case float64:
		return integralFloat[int64](number, math.MinInt64, math.MaxInt64)
	case json.Number:
		return parseInt64(number.String())
	case string:
		return parseInt64(number)
	default:
		return 0, fmt.Errorf("%w: want integer, got %T", ErrTypeMismatch, value)
	}
}

func toUint64(value any) (uint64, error) {
	switch number := value.(type) {
	case uint:
		return uint64(number), nil
	case uint8:
		return uint64(number), nil
	case uint16:
		return uint64(number), nil
	case uint32:
		return uint64(number), nil
	case uint64:
		return number, nil
	case int, int8, int16, int32, int64:
		signed, _ := toInt64(number)
		if signed < 0 {
			return 0, fmt.Errorf("%w: %d is negative", ErrOutOfRange, signed)
		}
		return uint64(signed), nil
	case float32:
		return integralFloat[uint64](float64(number), 0, math.MaxUint64)
	case float64:
		return integralFloat[uint64](number, 0, math.MaxUint64)
	case json.Number:
		return parseUint64(number.String())
	case string:
		return parseUint64(number)
	default:
		return 0, fmt.Errorf("%w: want unsigned integer, got %T", ErrTypeMismatch, value)
	}
}

func toFloat64(value any) (float64, error) {
	switch number := value.(type) {
	case float32:
		return float64(number), nil
	case float64:
		return number, nil
	case int, int8, int16, int32, int64:
		signed, _ := toInt64(number)
		return float64(signed), nil
	case uint, uint8, uint16, uint32, uint64:
		unsigned, _ := toUint64(number)
		return float64(unsigned), nil
	case json.Number:
		return parseFloat64(number.String())
	case string:
		return parseFloat64(number)
	default:
		return 0, fmt.Errorf("%w: want number, got %T", ErrTypeMismatch, value)
	}
}

// integralFloat converts a float that holds a whole number. Decoders
// that know nothing about the schema (YAML into any, JSON without
// UseNumber) hand integers over as float64.
func integralFloat[T int64 | uint64](float, lower, upper float64) (T, error) {
	if math.IsNaN(float) || math.IsInf(float, 0) || float != math.Trunc(float) {
		return 0, fmt.Errorf("%w: %g is not a whole number", ErrTypeMismatch, float)
	}
	// upper is 2^63 or 2^64 after float rounding, so it is exclusive.
	if float < lower || float >= upper {
		return 0, fmt.Errorf("%w: %g", ErrOutOfRange, float)
	}
	return T(float), nil
}

func parseInt64(text string) (int64, error) {
	integer, err := strconv.ParseInt(text, 10, 64)
	if err == nil {
		return integer, nil
	}
	if numError, ok := err.(*strconv.NumError); ok && numError.Err == strconv.ErrRange {
		return 0, fmt.Errorf("%w: %s overflows int64", ErrOutOfRange, text)
	}
	// Exponent forms such as "1e3" are whole numbers too.
	float, floatErr := strconv.ParseFloat(text, 64)
	if floatErr != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrTypeMismatch, text)
	}
	return integralFloat[int64](float, math.MinInt64, math.MaxInt64)
}

func parseUint64(text string) (uint64, error) {
	integer, err := strconv.ParseUint(text, 10, 64)
	if err == nil {
		return integer, nil
	}
	if numError, ok := err.(*strconv.NumError); ok && numError.Err == strconv.ErrRange {
		return 0, fmt.Errorf("%w: %s overflows uint64", ErrOutOfRange, text)
	}
	float, floatErr := strconv.ParseFloat(text, 64)
	if floatErr != nil {
		return 0, fmt.Errorf("%w: %q is not an unsigned integer", ErrTypeMismatch, text)
	}
	return integralFloat[uint64](float, 0, math.MaxUint64)
}

func parseFloat64(text string) (float64, error) {
	switch text {
	case "NaN":
		return math.NaN(), nil
	case "Infinity":
		return math.Inf(1), nil
	case "-Infinity":
		return math.Inf(-1), nil
	}
	float, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrTypeMismatch, text)
	}
	return float, nil
}
