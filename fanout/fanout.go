package fanout

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/kbukum/nlpwire/errors"
	"github.com/kbukum/nlpwire/params"
	"github.com/kbukum/nlpwire/resolver"
	"github.com/kbukum/nlpwire/task"
)

// DefaultPattern matches every entry of a directory.
const DefaultPattern = "*"

// Batch is a component applied to a list of inputs with a shared
// parameter bundle.
type Batch struct {
	Component string
	Inputs    []string
	Params    params.Values
	// InputParameter receives each input; "inputfile" when empty.
	InputParameter string
}

// Bundle is a shared parameter set given either as typed values or as a
// JSON object string.
type Bundle struct {
	Values params.Values
	JSON   string
}

// ParseBundle decodes the bundle once. Explicit values win over JSON ones.
func ParseBundle(b Bundle) (params.Values, error) {
	decoded, err := params.Decode(b.JSON)
	if err != nil {
		return nil, err
	}
	return decoded.Merge(b.Values), nil
}

// SplitInputs splits a comma-delimited input list, dropping blanks.
func SplitInputs(list string) []string {
	var out []string
	for _, p := range strings.Split(list, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// FromList builds a batch over explicit inputs.
func FromList(component string, inputs []string, bundle Bundle) (*Batch, error) {
	if len(inputs) == 0 {
		return nil, errors.InvalidInput(component, "no input files given")
	}
	p, err := ParseBundle(bundle)
	if err != nil {
		return nil, err
	}
	return &Batch{Component: component, Inputs: append([]string(nil), inputs...), Params: p}, nil
}

// FromDir builds a batch over the entries of dir matching pattern, in
// sorted order.
func FromDir(fs afero.Fs, component, dir, pattern string, bundle Bundle) (*Batch, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if ok, err := afero.DirExists(fs, dir); err != nil {
		return nil, err
	} else if !ok {
		return nil, errors.MissingInput("directory", component, dir)
	}
	matches, err := afero.Glob(fs, filepath.Join(dir, pattern))
	if err != nil {
		return nil, errors.InvalidParameter("pattern", fmt.Sprintf("bad pattern %q: %v", pattern, err))
	}
	sort.Strings(matches)
	if len(matches) == 0 {
		return nil, errors.InvalidInput(component, fmt.Sprintf("no entries in %s match %s", dir, pattern))
	}
	return FromList(component, matches, bundle)
}

// Plan resolves every input of the batch as its own component instance in
// one graph. Each instance gets its own copy of the bundle and its own
// task id scope. The plan's roots are the instances' tasks in input order.
func Plan(r *resolver.Resolver, b *Batch) (*resolver.Plan, error) {
	inputParam := b.InputParameter
	if inputParam == "" {
		desc, err := r.Registry().Lookup(b.Component)
		if err != nil {
			return nil, err
		}
		inputParam = desc.Input()
	}

	g := task.NewGraph()
	plan := &resolver.Plan{Component: b.Component, Graph: g}
	for i, in := range b.Inputs {
		given := b.Params.With(inputParam, params.String(in))
		scope := fmt.Sprintf("%s[%d]", b.Component, i)
		inst, err := r.PlanInto(g, scope, b.Component, given)
		if err != nil {
			return nil, err
		}
		plan.Instances = append(plan.Instances, inst)
	}
	return plan, nil
}
