package frame

import (
	"strconv"
	"strings"
)

// Kind identifies the dynamic type of a cell.
type Kind uint8

const (
	// KindMissing marks an unknown value. It is distinct from a valid zero
	// or an empty string and survives every coercion as "still unknown".
	KindMissing Kind = iota
	KindString
	KindFloat
	KindInt
	KindBool
)

// Value is one cell of the record set. The zero Value is missing.
type Value struct {
	kind Kind
	s    string
	f    float64
	i    int64
	b    bool
}

// NA returns the missing value.
func NA() Value { return Value{} }

// Str returns a string value.
func Str(s string) Value { return Value{kind: KindString, s: s} }

// Float returns a float value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Int returns an integer value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Kind returns the dynamic type of the value.
func (v Value) Kind() Kind { return v.kind }

// IsMissing reports whether the value is the missing sentinel.
func (v Value) IsMissing() bool { return v.kind == KindMissing }

// IsNumeric reports whether the value carries a number (float, int or bool).
func (v Value) IsNumeric() bool {
	return v.kind == KindFloat || v.kind == KindInt || v.kind == KindBool
}

// Text returns the raw string payload. Non-string values report false.
func (v Value) Text() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// AsFloat coerces the value to float64. Strings are parsed; missing and
// unparsable values report false, never a silent zero.
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.f, true
	case KindInt:
		return float64(v.i), true
	case KindBool:
		if v.b {
			return 1, true
		}
		return 0, true
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.s), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// AsInt coerces the value to int64, truncating floats.
func (v Value) AsInt() (int64, bool) {
	switch v.kind {
	case KindInt:
		return v.i, true
	case KindFloat:
		return int64(v.f), true
	case KindBool:
		if v.b {
			return 1, true
		}
		return 0, true
	case KindString:
		i, err := strconv.ParseInt(strings.TrimSpace(v.s), 10, 64)
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

// String renders the value for display and CSV output. Missing renders as
// the empty string; a genuine empty string is still KindString underneath.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.s
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindBool:
		if v.b {
			return "1"
		}
		return "0"
	default:
		return ""
	}
}

// Key returns a canonical representation that separates kinds, used for
// exact-duplicate detection and group-by keys. Unlike String, it keeps
// missing, "" and 0 mutually distinct.
func (v Value) Key() string {
	switch v.kind {
	case KindString:
		return "s:" + v.s
	case KindFloat:
		return "f:" + strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindInt:
		return "i:" + strconv.FormatInt(v.i, 10)
	case KindBool:
		if v.b {
			return "b:1"
		}
		return "b:0"
	default:
		return "na"
	}
}

// Equal reports whether two values have the same kind and payload.
func (v Value) Equal(o Value) bool { return v.Key() == o.Key() }

// CoerceFloat is the try-parse-or-missing conversion: the value becomes a
// float, or the missing sentinel when it cannot be parsed.
func CoerceFloat(v Value) Value {
	f, ok := v.AsFloat()
	if !ok {
		return NA()
	}
	return Float(f)
}
