package catalog

import (
	"fmt"

	"go.yaml.in/yaml/v3"

	"github.com/kbukum/nlpwire/component"
	"github.com/kbukum/nlpwire/format"
	"github.com/kbukum/nlpwire/params"
	"github.com/kbukum/nlpwire/process"
	"github.com/kbukum/nlpwire/task"
)

// File is one catalog document.
type File struct {
	Includes   []string             `yaml:"includes"`
	Formats    []*format.Descriptor `yaml:"formats"`
	Tasks      []TaskSpec           `yaml:"tasks"`
	Components []ComponentSpec      `yaml:"components"`

	path string
}

// TaskSpec declares a task class backed by an external tool.
type TaskSpec struct {
	Name       string            `yaml:"name"`
	Executable string            `yaml:"executable"`
	Parameters []params.Decl     `yaml:"parameters"`
	Inputs     []string          `yaml:"inputs"`
	Outputs    []task.OutputDecl `yaml:"outputs"`
	// Args is the positional argument template.
	Args string `yaml:"args"`
	// Options lists parameters passed as command-line options.
	Options []string      `yaml:"options"`
	Style   process.Style `yaml:"style"`
	// Stdin and Stdout redirect from an input slot and to an output slot.
	Stdin         string `yaml:"stdin"`
	Stdout        string `yaml:"stdout"`
	IgnoreFailure bool   `yaml:"ignore_failure"`
}

// ComponentSpec declares a component.
type ComponentSpec struct {
	Name           string        `yaml:"name"`
	Description    string        `yaml:"description"`
	InputParameter string        `yaml:"input_parameter"`
	Parameters     []params.Decl `yaml:"parameters"`
	Accepts        [][]ItemSpec  `yaml:"accepts"`
	AutoSetup      []string      `yaml:"autosetup"`
	// Accept injects groups accepting each named component.
	Accept []string `yaml:"accept"`
	// Inherit copies parameter declarations from components or task classes.
	Inherit []string `yaml:"inherit"`
}

// ItemSpec is one acceptance item. A plain string names a format; a
// mapping has either a format key (with optional force) or a component
// key (with optional args and params).
type ItemSpec struct {
	Format    string         `yaml:"format"`
	Force     bool           `yaml:"force"`
	Component string         `yaml:"component"`
	Args      []any          `yaml:"args"`
	Params    map[string]any `yaml:"params"`
}

// UnmarshalYAML accepts the scalar shorthand.
func (it *ItemSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		it.Format = node.Value
		return nil
	}
	type plain ItemSpec
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*it = ItemSpec(p)
	return nil
}

// Item converts the spec to an acceptance item.
func (it ItemSpec) Item() (component.Item, error) {
	switch {
	case it.Format != "" && it.Component != "":
		return nil, fmt.Errorf("item names both format %s and component %s", it.Format, it.Component)
	case it.Format != "":
		if len(it.Args) > 0 || len(it.Params) > 0 {
			return nil, fmt.Errorf("format item %s cannot take arguments", it.Format)
		}
		return component.FormatItem{FormatID: it.Format, Force: it.Force}, nil
	case it.Component != "":
		if it.Force {
			return nil, fmt.Errorf("component item %s cannot be forced", it.Component)
		}
		overrides, err := params.FromMap(it.Params)
		if err != nil {
			return nil, err
		}
		args := make([]params.Value, len(it.Args))
		for i, a := range it.Args {
			if args[i], err = params.Of(a); err != nil {
				return nil, err
			}
		}
		return component.ComponentRef{Name: it.Component, Args: args, Overrides: overrides}, nil
	default:
		return nil, fmt.Errorf("item names neither a format nor a component")
	}
}
