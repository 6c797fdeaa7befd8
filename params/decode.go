package params

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/kbukum/nlpwire/errors"
)

// Decode parses a JSON object of scalar values. When the strict parse
// fails, single quotes are accepted in place of double quotes so bundles
// can be written unescaped on a shell command line.
func Decode(raw string) (Values, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Values{}, nil
	}
	m, err := decodeObject(raw)
	if err != nil && strings.Contains(raw, "'") {
		m, err = decodeObject(strings.ReplaceAll(raw, "'", `"`))
	}
	if err != nil {
		return nil, errors.InvalidParameter("", fmt.Sprintf("parameter bundle is not a JSON object: %v", err))
	}
	return FromMap(m)
}

// FromMap converts a structured mapping into Values.
func FromMap(m map[string]any) (Values, error) {
	out := make(Values, len(m))
	for k, x := range m {
		v, err := Of(x)
		if err != nil {
			return nil, errors.InvalidParameter(k, err.Error())
		}
		out[k] = v
	}
	return out, nil
}

// ParseAssignment splits a "name=value" flag into a string Value.
func ParseAssignment(s string) (string, Value, error) {
	name, value, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", Value{}, errors.InvalidParameter(s, "expected name=value")
	}
	return name, String(value), nil
}

func decodeObject(raw string) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("null bundle")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("trailing data after object")
	}
	return m, nil
}
