package valist

import (
	"fmt"
	"strconv"
)

// Kind tags the variant stored in a Value.
type Kind uint8

const (
	KindText Kind = iota + 1
	KindInt
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is one element of an argument list.
type Value struct {
	kind Kind
	text string
	num  int64
	real float64
}

// Text returns a text Value, the counterpart of a C string argument.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Int returns an integer Value.
func Int(n int64) Value { return Value{kind: KindInt, num: n} }

// Float returns a floating-point Value.
func Float(f float64) Value { return Value{kind: KindFloat, real: f} }

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// IsZero reports whether v is the zero Value, which holds no variant.
func (v Value) IsZero() bool { return v.kind == 0 }

// AsText returns the text and true when v holds text.
func (v Value) AsText() (string, bool) {
	return v.text, v.kind == KindText
}

// AsInt returns the integer and true when v holds an integer.
func (v Value) AsInt() (int64, bool) {
	return v.num, v.kind == KindInt
}

// AsFloat returns the float and true when v holds a float.
func (v Value) AsFloat() (float64, bool) {
	return v.real, v.kind == KindFloat
}

// String renders the value for logs and error messages.
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return strconv.Quote(v.text)
	case KindInt:
		return strconv.FormatInt(v.num, 10)
	case KindFloat:
		return strconv.FormatFloat(v.real, 'g', -1, 64)
	default:
		return fmt.Sprintf("<invalid %s>", v.kind)
	}
}
