package task

import (
	"context"
	"fmt"

	"github.com/kbukum/nlpwire/logger"
	"github.com/kbukum/nlpwire/params"
	"github.com/kbukum/nlpwire/validation"
)

// Parameters every task class declares implicitly.
const (
	ParamOutputDir       = "outputdir"
	ParamReplaceInputDir = "replaceinputdir"
)

// RunFunc performs a task's work.
type RunFunc func(ctx context.Context, rc *RunContext) error

// TargetFunc computes the artifact path of an output slot.
type TargetFunc func(t *Task) (string, error)

// OutputDecl declares an output slot. The slot name is the format id of
// what it produces. Without a Target, the path is derived from an input
// by replacing Strip with Add (see OutputFromInput).
type OutputDecl struct {
	Name      string     `yaml:"name" validate:"required,identifier"`
	Input     string     `yaml:"input"`
	Strip     string     `yaml:"strip"`
	Add       string     `yaml:"add"`
	Directory bool       `yaml:"directory"`
	Target    TargetFunc `yaml:"-"`
}

// Class declares a kind of task.
type Class struct {
	Name       string        `yaml:"name" validate:"required,identifier"`
	Parameters []params.Decl `yaml:"parameters" validate:"dive"`
	Inputs     []string      `yaml:"inputs" validate:"dive,identifier"`
	Outputs    []OutputDecl  `yaml:"outputs" validate:"dive"`
	Executable string        `yaml:"executable"`
	// External classes are never run; they are complete when their
	// outputs exist.
	External bool    `yaml:"-"`
	Run      RunFunc `yaml:"-"`
}

// Validate checks the declaration: tags, unique slot names and resolvable
// output derivations.
func (c *Class) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	v := validation.New(c.Name)
	v.Unique("inputs", c.Inputs)
	outs := make([]string, len(c.Outputs))
	for i, o := range c.Outputs {
		outs[i] = o.Name
		if o.Target == nil && !c.External {
			if len(c.Inputs) == 0 {
				v.AddError("outputs", fmt.Sprintf("output %s has no target and the class has no inputs", o.Name))
			} else if o.Input != "" && !c.HasInput(o.Input) {
				v.AddError("outputs", fmt.Sprintf("output %s derives from undeclared input %s", o.Name, o.Input))
			}
		}
	}
	v.Unique("outputs", outs)
	v.Unique("parameters", params.Names(c.Parameters))
	return v.Validate()
}

// AllParameters returns the declared parameters plus the implicit ones.
func (c *Class) AllParameters() []params.Decl {
	decls := make([]params.Decl, 0, len(c.Parameters)+2)
	decls = append(decls, c.Parameters...)
	for _, name := range []string{ParamOutputDir, ParamReplaceInputDir} {
		if !hasDecl(decls, name) {
			decls = append(decls, params.Decl{Name: name, Kind: params.KindString})
		}
	}
	return decls
}

// ParameterNames lists every parameter a task of this class accepts.
func (c *Class) ParameterNames() []string {
	return params.Names(c.AllParameters())
}

// HasInput reports whether the class declares the named input slot.
func (c *Class) HasInput(name string) bool {
	for _, in := range c.Inputs {
		if in == name {
			return true
		}
	}
	return false
}

// Output returns the declaration of the named output slot.
func (c *Class) Output(name string) (OutputDecl, bool) {
	for _, o := range c.Outputs {
		if o.Name == name {
			return o, true
		}
	}
	return OutputDecl{}, false
}

// RunContext is what a RunFunc gets to work with.
type RunContext struct {
	Task *Task
	Fs   Fs
	Log  *logger.Logger
}

// Input returns the artifact path bound to the named input slot.
func (rc *RunContext) Input(name string) (string, error) {
	return rc.Task.InputTarget(name)
}

// Output returns the artifact path of the named output slot.
func (rc *RunContext) Output(name string) (string, error) {
	s, err := rc.Task.Output(name)
	if err != nil {
		return "", err
	}
	return s.Target()
}

// PrepareOutputDir readies d for writing and records it on the task.
func (rc *RunContext) PrepareOutputDir(d string) error {
	return rc.Task.PrepareOutputDir(rc.Fs, d)
}

func hasDecl(decls []params.Decl, name string) bool {
	for _, d := range decls {
		if d.Name == name {
			return true
		}
	}
	return false
}
