package params

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"github.com/kbukum/nlpwire/errors"
)

// Kind is the type of a configuration value.
type Kind string

const (
	KindString Kind = "string"
	KindInt    Kind = "int"
	KindFloat  Kind = "float"
	KindBool   Kind = "bool"
)

// Value is a single typed configuration value. The zero Value is unset.
type Value struct {
	kind Kind
	raw  any
}

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, raw: s} }

// Int returns an integer value.
func Int(i int64) Value { return Value{kind: KindInt, raw: i} }

// Float returns a floating point value.
func Float(f float64) Value { return Value{kind: KindFloat, raw: f} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, raw: b} }

// Of converts a decoded scalar (string, bool, integer, float, json.Number)
// into a Value. Composite values are rejected.
func Of(x any) (Value, error) {
	switch v := x.(type) {
	case Value:
		return v, nil
	case string:
		return String(v), nil
	case bool:
		return Bool(v), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32:
		return Int(cast.ToInt64(v)), nil
	case float32, float64:
		return Float(cast.ToFloat64(v)), nil
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return Int(i), nil
		}
		f, err := v.Float64()
		if err != nil {
			return Value{}, errors.InvalidParameter("", fmt.Sprintf("bad number %q", v.String()))
		}
		return Float(f), nil
	case nil:
		return Value{}, errors.InvalidParameter("", "null is not a value")
	default:
		return Value{}, errors.InvalidParameter("", fmt.Sprintf("unsupported value of type %T", x))
	}
}

// Kind returns the value's kind, or "" when unset.
func (v Value) Kind() Kind { return v.kind }

// IsSet reports whether the value was assigned.
func (v Value) IsSet() bool { return v.kind != "" }

// Interface returns the underlying Go value.
func (v Value) Interface() any { return v.raw }

// String renders the value as text.
func (v Value) String() string {
	if !v.IsSet() {
		return ""
	}
	return cast.ToString(v.raw)
}

// Bool returns the value as a boolean; non-boolean strings are false.
func (v Value) Bool() bool { return cast.ToBool(v.raw) }

// Int returns the value as an integer.
func (v Value) Int() int64 { return cast.ToInt64(v.raw) }

// Float returns the value as a float.
func (v Value) Float() float64 { return cast.ToFloat64(v.raw) }

// Equal reports whether both values have the same kind and content.
func (v Value) Equal(o Value) bool {
	return v.kind == o.kind && v.raw == o.raw
}

// Coerce converts the value to kind k. An empty kind leaves it untouched.
func (v Value) Coerce(k Kind) (Value, error) {
	if k == "" || k == v.kind {
		return v, nil
	}
	switch k {
	case KindString:
		s, err := cast.ToStringE(v.raw)
		if err != nil {
			return Value{}, err
		}
		return String(s), nil
	case KindInt:
		if v.kind == KindFloat {
			f := v.Float()
			if f != float64(int64(f)) {
				return Value{}, fmt.Errorf("%v is not an integer", f)
			}
		}
		if s, ok := v.raw.(string); ok {
			// Decimal only: "010" is ten, not an octal literal.
			i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
			if err != nil {
				return Value{}, fmt.Errorf("%q is not a decimal integer", s)
			}
			return Int(i), nil
		}
		i, err := cast.ToInt64E(v.raw)
		if err != nil {
			return Value{}, err
		}
		return Int(i), nil
	case KindFloat:
		f, err := cast.ToFloat64E(v.raw)
		if err != nil {
			return Value{}, err
		}
		return Float(f), nil
	case KindBool:
		b, err := cast.ToBoolE(v.raw)
		if err != nil {
			return Value{}, err
		}
		return Bool(b), nil
	default:
		return Value{}, fmt.Errorf("unknown kind %q", k)
	}
}

// GoString makes values readable in test failures.
func (v Value) GoString() string {
	if !v.IsSet() {
		return "params.Value{}"
	}
	return fmt.Sprintf("params.%s(%#v)", v.kind, v.raw)
}
