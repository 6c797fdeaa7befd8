package params

import (
	"sort"
)

// Values maps parameter names to typed values.
type Values map[string]Value

// Get returns the named value.
func (vs Values) Get(name string) (Value, bool) {
	v, ok := vs[name]
	return v, ok
}

// String returns the named value as text, or "" when absent.
func (vs Values) String(name string) string {
	return vs[name].String()
}

// Bool returns the named value as a boolean, false when absent.
func (vs Values) Bool(name string) bool {
	v, ok := vs[name]
	return ok && v.Bool()
}

// Clone returns a shallow copy. Values are immutable so this is a full copy.
func (vs Values) Clone() Values {
	out := make(Values, len(vs))
	for k, v := range vs {
		out[k] = v
	}
	return out
}

// With returns a copy with name set to v.
func (vs Values) With(name string, v Value) Values {
	out := vs.Clone()
	out[name] = v
	return out
}

// Merge returns a copy of vs overlaid with other; other wins on conflicts.
func (vs Values) Merge(other Values) Values {
	out := vs.Clone()
	for k, v := range other {
		out[k] = v
	}
	return out
}

// Names returns the parameter names in sorted order.
func (vs Values) Names() []string {
	names := make([]string, 0, len(vs))
	for name := range vs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Map returns the values as plain Go values.
func (vs Values) Map() map[string]any {
	out := make(map[string]any, len(vs))
	for k, v := range vs {
		out[k] = v.Interface()
	}
	return out
}

// Equal reports whether both maps hold the same names and values.
func (vs Values) Equal(other Values) bool {
	if len(vs) != len(other) {
		return false
	}
	for k, v := range vs {
		o, ok := other[k]
		if !ok || !v.Equal(o) {
			return false
		}
	}
	return true
}
