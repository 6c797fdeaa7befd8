package component

import (
	"fmt"
	"slices"
	"sync"

	"github.com/kbukum/nlpwire/errors"
	"github.com/kbukum/nlpwire/format"
	"github.com/kbukum/nlpwire/logger"
	"github.com/kbukum/nlpwire/params"
	"github.com/kbukum/nlpwire/task"
)

// entry holds a registered component and what other declarations added
// to it.
type entry struct {
	desc     *Descriptor
	params   []params.Decl
	injected []Group
}

// Registry catalogs formats, task classes and components.
type Registry struct {
	mu     sync.RWMutex
	frozen bool

	formats     map[string]*format.Descriptor
	sources     map[string]*task.Class
	formatOrder []string

	tasks     map[string]*task.Class
	taskOrder []string

	entries []*entry
	lookup  map[string]*entry
}

// NewRegistry creates an empty registry in its initialization phase.
func NewRegistry() *Registry {
	return &Registry{
		formats: make(map[string]*format.Descriptor),
		sources: make(map[string]*task.Class),
		tasks:   make(map[string]*task.Class),
		lookup:  make(map[string]*entry),
	}
}

// RegisterFormat adds an input format.
func (r *Registry) RegisterFormat(d *format.Descriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return errors.Frozen("register format " + d.ID)
	}
	d.Normalize()
	if err := d.Validate(); err != nil {
		return err
	}
	if _, exists := r.formats[d.ID]; exists {
		return errors.AlreadyExists("format", d.ID)
	}
	r.formats[d.ID] = d
	r.sources[d.ID] = task.SourceClass(d)
	r.formatOrder = append(r.formatOrder, d.ID)

	logger.Debug("Format registered", map[string]interface{}{
		logger.FieldFormat: d.ID,
		"extensions":       d.Extensions,
	})
	return nil
}

// RegisterTask adds a task class so declarations can refer to it by name.
func (r *Registry) RegisterTask(c *task.Class) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return errors.Frozen("register task " + c.Name)
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if _, exists := r.tasks[c.Name]; exists {
		return errors.AlreadyExists("task class", c.Name)
	}
	r.tasks[c.Name] = c
	r.taskOrder = append(r.taskOrder, c.Name)
	return nil
}

// Register adds a component. The descriptor is copied; later changes to
// the caller's value have no effect.
func (r *Registry) Register(d *Descriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return errors.Frozen("register component " + d.Name)
	}
	if err := d.Validate(); err != nil {
		return err
	}
	if _, exists := r.lookup[d.Name]; exists {
		return errors.AlreadyExists("component", d.Name)
	}

	desc := d.clone()
	e := &entry{desc: desc, params: append([]params.Decl(nil), desc.Parameters...)}
	r.entries = append(r.entries, e)
	r.lookup[desc.Name] = e

	logger.Debug("Component registered", map[string]interface{}{
		logger.FieldComponent: desc.Name,
		"groups":              len(desc.Accepts),
	})
	return nil
}

// Accept makes target additionally accept the output of each named
// component. Injected groups are tried after target's own groups, in the
// order they were accepted.
func (r *Registry) Accept(target string, components ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return errors.Frozen("extend component " + target)
	}
	e, ok := r.lookup[target]
	if !ok {
		return errors.NotFound("component", target)
	}
	for _, name := range components {
		if hasInjected(e.injected, name) {
			continue
		}
		e.injected = append(e.injected, Group{ComponentRef{Name: name}})
	}
	return nil
}

// InheritParameters copies the parameter declarations of the named
// components or task classes into target, skipping names target already
// declares.
func (r *Registry) InheritParameters(target string, from ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return errors.Frozen("extend component " + target)
	}
	e, ok := r.lookup[target]
	if !ok {
		return errors.NotFound("component", target)
	}
	for _, name := range from {
		var decls []params.Decl
		if src, ok := r.lookup[name]; ok {
			decls = src.params
		} else if c, ok := r.tasks[name]; ok {
			decls = c.Parameters
		} else {
			return errors.NotFound("component or task class", name)
		}
		for _, d := range decls {
			if !declares(e.params, d.Name) {
				e.params = append(e.params, d)
			}
		}
	}
	return nil
}

// Freeze ends the initialization phase. Every format and component
// reference is checked; on success the registry becomes read-only.
func (r *Registry) Freeze() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return nil
	}
	for _, e := range r.entries {
		for gi, g := range e.desc.Accepts {
			for ii, item := range g {
				resolved, err := r.checkItem(e.desc.Name, item)
				if err != nil {
					return err
				}
				e.desc.Accepts[gi][ii] = resolved
			}
		}
		for _, g := range e.injected {
			for _, item := range g {
				if _, err := r.checkItem(e.desc.Name, item); err != nil {
					return err
				}
			}
		}
	}
	r.frozen = true

	logger.Debug("Registry frozen", map[string]interface{}{
		"components": len(r.entries),
		"formats":    len(r.formats),
		"tasks":      len(r.tasks),
	})
	return nil
}

// Frozen reports whether the initialization phase is over.
func (r *Registry) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}

func (r *Registry) checkItem(owner string, item Item) (Item, error) {
	switch it := item.(type) {
	case FormatItem:
		id := it.FormatID
		if id == "" && it.Format != nil {
			id = it.Format.ID
		}
		d, ok := r.formats[id]
		if !ok {
			return nil, errors.InvalidDeclaration(owner, fmt.Sprintf("%s accepts unknown format %s", owner, id))
		}
		if it.Format != nil && !sameFormat(it.Format, d) {
			return nil, errors.InvalidDeclaration(owner, fmt.Sprintf("%s declares format %s differently from its registration", owner, id))
		}
		it.FormatID, it.Format = id, d
		return it, nil
	case ComponentRef:
		child, ok := r.lookup[it.Name]
		if !ok {
			return nil, errors.InvalidDeclaration(owner, fmt.Sprintf("%s accepts unknown component %s", owner, it.Name))
		}
		if _, err := it.Explicit(child.desc); err != nil {
			return nil, err
		}
		return it, nil
	default:
		return nil, errors.InvalidDeclaration(owner, fmt.Sprintf("unsupported acceptance item %T", item))
	}
}

func sameFormat(a, b *format.Descriptor) bool {
	return a.ID == b.ID && a.Directory == b.Directory && slices.Equal(a.Extensions, b.Extensions)
}

// Lookup returns the named component.
func (r *Registry) Lookup(name string) (*Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.lookup[name]
	if !ok {
		return nil, errors.NotFound("component", name)
	}
	return e.desc, nil
}

// Parameters returns everything the named component accepts: its own
// declarations, inherited ones and the reserved parameters.
func (r *Registry) Parameters(name string) ([]params.Decl, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.lookup[name]
	if !ok {
		return nil, errors.NotFound("component", name)
	}
	decls := append([]params.Decl(nil), e.params...)
	return append(decls, e.desc.reserved(decls)...), nil
}

// Groups returns the acceptance groups of the named component: its own
// declarations first, then injected ones.
func (r *Registry) Groups(name string) ([]Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.lookup[name]
	if !ok {
		return nil, errors.NotFound("component", name)
	}
	groups := make([]Group, 0, len(e.desc.Accepts)+len(e.injected))
	groups = append(groups, e.desc.Accepts...)
	return append(groups, e.injected...), nil
}

// Format returns the registered format with the given id.
func (r *Registry) Format(id string) (*format.Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.formats[id]
	if !ok {
		return nil, errors.NotFound("format", id)
	}
	return d, nil
}

// SourceClass returns the source task class for a registered format.
func (r *Registry) SourceClass(id string) (*task.Class, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.sources[id]
	if !ok {
		return nil, errors.NotFound("format", id)
	}
	return c, nil
}

// Task returns the named task class.
func (r *Registry) Task(name string) (*task.Class, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.tasks[name]
	if !ok {
		return nil, errors.NotFound("task class", name)
	}
	return c, nil
}

// Names returns component names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.desc.Name
	}
	return names
}

// Formats returns format ids in registration order.
func (r *Registry) Formats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.formatOrder...)
}

// Tasks returns task class names in registration order.
func (r *Registry) Tasks() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.taskOrder...)
}

func hasInjected(groups []Group, name string) bool {
	for _, g := range groups {
		if ref, ok := g[0].(ComponentRef); ok && ref.Name == name && len(g) == 1 {
			return true
		}
	}
	return false
}
