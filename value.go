package ctpl

import (
	"strconv"
	"strings"
)

// Kind tags the variant currently held by a Value.
type Kind int

const (
	// KindInt holds a signed 64-bit integer.
	KindInt Kind = iota
	// KindFloat holds an IEEE-754 double.
	KindFloat
	// KindString holds a byte string, conventionally UTF-8 text.
	KindString
	// KindArray holds an ordered, possibly heterogeneous, sequence of Values.
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// Value is a tagged union over {integer, float, string, array}. Every Value
// has exactly one tag; the fields not matching Kind are zero and must not be
// read directly.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
	a    []Value
}

// IntValue wraps a signed integer.
func IntValue(i int64) Value { return Value{kind: KindInt, i: i} }

// FloatValue wraps a floating point number.
func FloatValue(f float64) Value { return Value{kind: KindFloat, f: f} }

// StringValue wraps a byte string.
func StringValue(s string) Value { return Value{kind: KindString, s: s} }

// ArrayValue wraps an ordered sequence of values. The slice is retained, not
// copied; callers should not mutate it afterwards.
func ArrayValue(elems []Value) Value { return Value{kind: KindArray, a: elems} }

// BoolValue encodes a truth value as the integer 0 or 1, per spec: booleans
// are not a distinct tag.
func BoolValue(b bool) Value {
	if b {
		return IntValue(1)
	}
	return IntValue(0)
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsInt() bool    { return v.kind == KindInt }
func (v Value) IsFloat() bool  { return v.kind == KindFloat }
func (v Value) IsString() bool { return v.kind == KindString }
func (v Value) IsArray() bool  { return v.kind == KindArray }
func (v Value) IsNumber() bool { return v.kind == KindInt || v.kind == KindFloat }

// Int returns the integer form of the value. Only valid when IsInt is true;
// callers that need coercion should go through the evaluator's type rules.
func (v Value) Int() int64 { return v.i }

// Float returns the float form of the value. Only valid when IsFloat is true.
func (v Value) Float() float64 { return v.f }

// Str returns the underlying bytes of a string value.
func (v Value) Str() string { return v.s }

// Elems returns the underlying elements of an array value.
func (v Value) Elems() []Value { return v.a }

// Len reports the element count of an array, or the byte length of a
// string. Any other kind reports 0.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.a)
	case KindString:
		return len(v.s)
	default:
		return 0
	}
}

// IsTrue applies the truth-coercion rules of spec §4.5: nonzero integer,
// nonzero float, non-empty string, non-empty array.
func (v Value) IsTrue() bool {
	switch v.kind {
	case KindInt:
		return v.i != 0
	case KindFloat:
		return v.f != 0.0
	case KindString:
		return len(v.s) > 0
	case KindArray:
		return len(v.a) > 0
	default:
		return false
	}
}

// AsFloat promotes an int to float, or returns the float directly. Only
// meaningful for numeric kinds; callers must check IsNumber first.
func (v Value) AsFloat() float64 {
	if v.kind == KindFloat {
		return v.f
	}
	return float64(v.i)
}

// String returns the same textual form produced for template output,
// suitable for displaying a standalone evaluated value (e.g. in the CLI or
// the REPL).
func (v Value) String() string { return v.render() }

// render produces the textual form used both for {expr} output and for
// embedding a value inside a diagnostic message (§4.9). Arrays render as
// "[e1, e2, ...]", the same as a top-level {expr} over an array value.
func (v Value) render() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return formatFloat(v.f)
	case KindString:
		return v.s
	case KindArray:
		parts := make([]string, len(v.a))
		for i, e := range v.a {
			parts[i] = e.render()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return ""
	}
}

// formatFloat renders the shortest decimal representation that reads back
// to the same double (spec §4.9): never the fixed 17-digit worst case.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// equal implements the element-wise/byte/bit equality rules of spec §4.5.
// Mixed kinds are unequal except where numeric promotion applies.
func (v Value) equal(o Value) bool {
	switch {
	case v.IsNumber() && o.IsNumber():
		if v.kind == KindInt && o.kind == KindInt {
			return v.i == o.i
		}
		return v.AsFloat() == o.AsFloat()
	case v.kind == KindString && o.kind == KindString:
		return v.s == o.s
	case v.kind == KindArray && o.kind == KindArray:
		if len(v.a) != len(o.a) {
			return false
		}
		for i := range v.a {
			if !v.a[i].equal(o.a[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
