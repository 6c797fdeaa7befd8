package component

import (
	"fmt"
	"strings"

	"github.com/kbukum/nlpwire/errors"
	"github.com/kbukum/nlpwire/format"
	"github.com/kbukum/nlpwire/logger"
	"github.com/kbukum/nlpwire/params"
	"github.com/kbukum/nlpwire/task"
	"github.com/kbukum/nlpwire/validation"
)

// Reserved parameter names.
const (
	DefaultInputParameter = "inputfile"
	ParamStartComponent   = "startcomponent"
	ParamInputSlot        = "inputslot"
)

// Item is one element of an acceptance group: a FormatItem or a
// ComponentRef.
type Item interface {
	isItem()
	String() string
}

// FormatItem accepts the component's primary input directly when it
// matches a registered format. Force makes the item match regardless of
// the path's suffix.
type FormatItem struct {
	FormatID string
	Force    bool
	// Format may be given inline instead of FormatID; it must match a
	// registered format. Freeze replaces it with the registered descriptor.
	Format *format.Descriptor
}

func (FormatItem) isItem() {}

func (f FormatItem) String() string {
	if f.Force {
		return "format " + f.FormatID + " (forced)"
	}
	return "format " + f.FormatID
}

// Format returns an item accepting the given registered format id.
func Format(id string) FormatItem { return FormatItem{FormatID: id} }

// Forced returns an item that always matches, assuming the given format.
func Forced(id string) FormatItem { return FormatItem{FormatID: id, Force: true} }

// ComponentRef accepts the output of another component, resolved for the
// same primary input. Args bind positionally to the referenced
// component's declared parameters; Overrides bind by name. Parameters not
// given explicitly are propagated from the referring component.
type ComponentRef struct {
	Name      string
	Args      []params.Value
	Overrides params.Values
}

func (ComponentRef) isItem() {}

func (c ComponentRef) String() string { return "component " + c.Name }

// Ref returns a reference to the named component.
func Ref(name string, overrides params.Values) ComponentRef {
	return ComponentRef{Name: name, Overrides: overrides}
}

// Explicit returns the values the reference gives the child directly.
func (c ComponentRef) Explicit(child *Descriptor) (params.Values, error) {
	if len(c.Args) > len(child.Parameters) {
		return nil, errors.InvalidDeclaration(child.Name, fmt.Sprintf("%d positional arguments given, %s declares %d parameters", len(c.Args), child.Name, len(child.Parameters)))
	}
	out := c.Overrides.Clone()
	for i, v := range c.Args {
		name := child.Parameters[i].Name
		if _, dup := out[name]; dup {
			return nil, errors.InvalidDeclaration(child.Name, fmt.Sprintf("parameter %s given both positionally and by name", name))
		}
		out[name] = v
	}
	return out, nil
}

// Group is one alternative way of satisfying a component's inputs.
type Group []Item

func (g Group) String() string {
	parts := make([]string, len(g))
	for i, it := range g {
		parts[i] = it.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// SetupContext is handed to a component's Setup. It creates tasks in the
// graph being planned, scoped to the component instance.
type SetupContext interface {
	// Component returns the name of the component being set up.
	Component() string
	// Params returns the component instance's bound parameters.
	Params() params.Values
	// NewTask creates a task of class. Parameters the class declares are
	// propagated from the component unless overridden.
	NewTask(name string, class *task.Class, overrides params.Values) (*task.Task, error)
	// Logger returns a logger scoped to the component.
	Logger() *logger.Logger
}

// SetupFunc wires a component's processing tasks to its resolved inputs
// and returns the task(s) whose outputs the component exposes.
type SetupFunc func(sc SetupContext, feed *task.Feed) ([]*task.Task, error)

// Descriptor declares a component.
type Descriptor struct {
	Name        string        `yaml:"name" validate:"required,identifier"`
	Description string        `yaml:"description"`
	Parameters  []params.Decl `yaml:"parameters" validate:"dive"`
	// InputParameter names the parameter holding the primary input path.
	InputParameter string  `yaml:"input_parameter" validate:"omitempty,identifier"`
	Accepts        []Group `yaml:"-"`
	// Setup wires tasks by hand. When nil, AutoSetup is used.
	Setup SetupFunc `yaml:"-"`
	// AutoSetup lists candidate task classes for single-step components.
	AutoSetup []*task.Class `yaml:"-"`
}

// Validate checks the declaration's own fields.
func (d *Descriptor) Validate() error {
	if err := validation.Validate(d); err != nil {
		return err
	}
	v := validation.New(d.Name)
	v.Unique("parameters", params.Names(d.Parameters))
	v.Custom(d.Setup != nil || len(d.AutoSetup) > 0, "setup", "either a setup function or autosetup task classes are required")
	for i, g := range d.Accepts {
		v.Custom(len(g) > 0, "accepts", fmt.Sprintf("group %d is empty", i+1))
	}
	for _, c := range d.AutoSetup {
		v.Custom(c != nil, "autosetup", "nil task class")
	}
	if err := v.Validate(); err != nil {
		return err
	}
	for _, c := range d.AutoSetup {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Input returns the name of the primary input parameter.
func (d *Descriptor) Input() string {
	if d.InputParameter == "" {
		return DefaultInputParameter
	}
	return d.InputParameter
}

// reserved returns the implicit declarations missing from decls.
func (d *Descriptor) reserved(decls []params.Decl) []params.Decl {
	var out []params.Decl
	for _, name := range []string{d.Input(), task.ParamOutputDir, task.ParamReplaceInputDir, ParamStartComponent, ParamInputSlot} {
		if !declares(decls, name) && !declares(out, name) {
			out = append(out, params.Decl{Name: name, Kind: params.KindString})
		}
	}
	return out
}

func (d *Descriptor) clone() *Descriptor {
	c := *d
	c.Parameters = append([]params.Decl(nil), d.Parameters...)
	c.Accepts = make([]Group, len(d.Accepts))
	for i, g := range d.Accepts {
		c.Accepts[i] = append(Group(nil), g...)
	}
	c.AutoSetup = append([]*task.Class(nil), d.AutoSetup...)
	return &c
}

func declares(decls []params.Decl, name string) bool {
	for _, d := range decls {
		if d.Name == name {
			return true
		}
	}
	return false
}
