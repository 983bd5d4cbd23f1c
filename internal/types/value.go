package types

import (
	"fmt"
	"reflect"
	"strings"
)

// Value is the comparison operand of a leaf.
// Implementations are Number, Text, Bool and List.
type Value interface {
	// Raw returns the Go value bound to a placeholder.
	Raw() any
	String() string
	isValue()
}

// Number holds the caller's numeric value unchanged so drivers bind it as given.
type Number struct {
	V any
}

// Text is a string operand.
type Text string

// Bool is a boolean operand. No operator accepts it; it exists so that
// rejections can name what the caller supplied.
type Bool bool

// List is a sequence operand for IN and NOT IN.
type List []Value

func (n Number) Raw() any { return n.V }
func (t Text) Raw() any   { return string(t) }
func (b Bool) Raw() any   { return bool(b) }

func (l List) Raw() any {
	out := make([]any, len(l))
	for i, v := range l {
		out[i] = v.Raw()
	}
	return out
}

func (n Number) String() string { return fmt.Sprint(n.V) }
func (t Text) String() string   { return fmt.Sprintf("%q", string(t)) }
func (b Bool) String() string   { return fmt.Sprint(bool(b)) }

func (l List) String() string {
	parts := make([]string, len(l))
	for i, v := range l {
		parts[i] = v.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (Number) isValue() {}
func (Text) isValue()   {}
func (Bool) isValue()   {}
func (List) isValue()   {}

// ToValue converts a Go value into a Value.
// It reports false for nil and for values with no Value representation
// (maps, structs, nested lists).
func ToValue(v any) (Value, bool) {
	switch x := v.(type) {
	case nil:
		return nil, false
	case Value:
		return x, true
	case string:
		return Text(x), true
	case bool:
		return Bool(x), true
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return Number{V: x}, true
	case []byte:
		return nil, false
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		list := make(List, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			elem, ok := ToValue(rv.Index(i).Interface())
			if !ok {
				return nil, false
			}
			switch elem.(type) {
			case Number, Text, Bool:
				list = append(list, elem)
			default:
				return nil, false
			}
		}
		return list, true
	default:
		return nil, false
	}
}

// Accepts reports whether v satisfies the shape. A nil v means no value.
func (s ValueShape) Accepts(v Value) bool {
	switch s {
	case ShapeNone:
		return v == nil
	case ShapeScalar:
		return isScalar(v)
	case ShapeText:
		t, ok := v.(Text)
		return ok && t != ""
	case ShapeList:
		if l, ok := v.(List); ok {
			if len(l) == 0 {
				return false
			}
			for _, elem := range l {
				if !isScalar(elem) {
					return false
				}
			}
			return true
		}
		return isScalar(v)
	default:
		return false
	}
}

func isScalar(v Value) bool {
	switch x := v.(type) {
	case Number:
		return true
	case Text:
		return x != ""
	default:
		return false
	}
}
