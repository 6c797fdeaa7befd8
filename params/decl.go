package params

import (
	"fmt"
	"strings"

	"github.com/kbukum/nlpwire/errors"
)

// Decl declares a named parameter accepted by a component or task class.
type Decl struct {
	Name     string `yaml:"name" validate:"required,identifier"`
	Kind     Kind   `yaml:"type" validate:"omitempty,oneof=string int float bool"`
	Default  any    `yaml:"default"`
	Required bool   `yaml:"required"`
}

// Names returns the declared names in declaration order.
func Names(decls []Decl) []string {
	names := make([]string, len(decls))
	for i, d := range decls {
		names[i] = d.Name
	}
	return names
}

// Bind checks given against decls: declared kinds are enforced, defaults
// fill absent values and missing required parameters are reported.
// Undeclared names are rejected.
func Bind(owner string, decls []Decl, given Values) (Values, error) {
	declared := make(map[string]bool, len(decls))
	out := make(Values, len(decls))
	var missing []string

	for _, d := range decls {
		declared[d.Name] = true
		v, ok := given[d.Name]
		switch {
		case ok:
		case d.Default != nil:
			dv, err := Of(d.Default)
			if err != nil {
				return nil, errors.InvalidParameter(d.Name, fmt.Sprintf("%s: default: %v", owner, err))
			}
			v = dv
		case d.Required:
			missing = append(missing, d.Name)
			continue
		default:
			continue
		}
		cv, err := v.Coerce(d.Kind)
		if err != nil {
			return nil, errors.InvalidParameter(d.Name, fmt.Sprintf("%s: expected %s: %v", owner, d.Kind, err))
		}
		out[d.Name] = cv
	}

	for _, name := range given.Names() {
		if !declared[name] {
			return nil, errors.InvalidParameter(name, fmt.Sprintf("%s does not declare parameter %s", owner, name))
		}
	}
	if len(missing) > 0 {
		return nil, errors.InvalidParameter(missing[0], fmt.Sprintf("%s: missing required parameter(s) %s", owner, strings.Join(missing, ", ")))
	}
	return out, nil
}

// Propagate computes the values handed to a child: for every name the child
// declares, an explicit override wins, otherwise the parent's value of the
// same name is copied. Overrides for names the child does not declare are
// kept so Bind can reject them. The result depends only on the arguments.
func Propagate(parent Values, child []string, overrides Values) Values {
	out := overrides.Clone()
	for _, name := range child {
		if _, ok := out[name]; ok {
			continue
		}
		if v, ok := parent[name]; ok {
			out[name] = v
		}
	}
	return out
}
