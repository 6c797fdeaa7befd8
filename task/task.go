package task

import (
	"fmt"
	"sort"

	"github.com/spf13/afero"

	"github.com/kbukum/nlpwire/errors"
	"github.com/kbukum/nlpwire/params"
)

// Task is a Class bound to parameters and input producers.
type Task struct {
	ID     string
	Class  *Class
	Params params.Values

	inputs map[string][]*OutputSlot
	// OutputDirs lists every directory prepared by the task's run.
	OutputDirs []string
}

func newTask(id string, class *Class, p params.Values) *Task {
	return &Task{ID: id, Class: class, Params: p, inputs: make(map[string][]*OutputSlot)}
}

// String returns the task id.
func (t *Task) String() string { return t.ID }

// Output returns the named output slot.
func (t *Task) Output(name string) (*OutputSlot, error) {
	if _, ok := t.Class.Output(name); !ok {
		return nil, errors.NotFound("output slot", t.ID+"."+name)
	}
	return &OutputSlot{Task: t, Name: name}, nil
}

// OutputSlots returns all output slots in declaration order.
func (t *Task) OutputSlots() []*OutputSlot {
	slots := make([]*OutputSlot, len(t.Class.Outputs))
	for i, o := range t.Class.Outputs {
		slots[i] = &OutputSlot{Task: t, Name: o.Name}
	}
	return slots
}

// Bind assigns producers to the named input slot, replacing earlier ones.
func (t *Task) Bind(input string, slots ...*OutputSlot) error {
	if !t.Class.HasInput(input) {
		return errors.NotFound("input slot", t.ID+"."+input)
	}
	if len(slots) == 0 {
		return errors.InvalidParameter(input, fmt.Sprintf("no producer given for %s.%s", t.ID, input))
	}
	t.inputs[input] = append([]*OutputSlot(nil), slots...)
	return nil
}

// Inputs returns the producers bound to the named input slot.
func (t *Task) Inputs(name string) []*OutputSlot {
	return t.inputs[name]
}

// Bound reports whether every declared input slot has a producer.
func (t *Task) Bound() bool {
	for _, in := range t.Class.Inputs {
		if len(t.inputs[in]) == 0 {
			return false
		}
	}
	return true
}

// InputTarget returns the artifact path of the first producer bound to
// the named input slot.
func (t *Task) InputTarget(name string) (string, error) {
	paths, err := t.InputTargets(name)
	if err != nil {
		return "", err
	}
	return paths[0], nil
}

// InputTargets returns the artifact paths of all producers bound to the
// named input slot, in binding order.
func (t *Task) InputTargets(name string) ([]string, error) {
	if !t.Class.HasInput(name) {
		return nil, errors.NotFound("input slot", t.ID+"."+name)
	}
	slots := t.inputs[name]
	if len(slots) == 0 {
		return nil, errors.InvalidParameter(name, fmt.Sprintf("input slot %s of %s is not connected to any output slot", name, t.ID))
	}
	paths := make([]string, 0, len(slots))
	for _, s := range slots {
		p, err := s.Target()
		if err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// Upstream returns the distinct producer tasks, ordered by id.
func (t *Task) Upstream() []*Task {
	seen := make(map[string]*Task)
	for _, slots := range t.inputs {
		for _, s := range slots {
			seen[s.Task.ID] = s.Task
		}
	}
	out := make([]*Task, 0, len(seen))
	for _, u := range seen {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Targets returns the artifact paths of all output slots.
func (t *Task) Targets() ([]string, error) {
	out := make([]string, 0, len(t.Class.Outputs))
	for _, s := range t.OutputSlots() {
		p, err := s.Target()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Complete reports whether every output artifact already exists.
// A task without outputs is never complete, and an empty directory
// output left by an interrupted attempt does not count as produced.
func (t *Task) Complete(fs Fs) bool {
	slots := t.OutputSlots()
	if len(slots) == 0 {
		return false
	}
	for _, s := range slots {
		p, err := s.Target()
		if err != nil {
			return false
		}
		if _, err := fs.Stat(p); err != nil {
			return false
		}
		if decl, _ := t.Class.Output(s.Name); decl.Directory && !t.Class.External {
			if empty, err := afero.IsEmpty(fs, p); err != nil || empty {
				return false
			}
		}
	}
	return true
}
