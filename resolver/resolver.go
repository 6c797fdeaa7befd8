package resolver

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/kbukum/nlpwire/component"
	"github.com/kbukum/nlpwire/errors"
	"github.com/kbukum/nlpwire/format"
	"github.com/kbukum/nlpwire/logger"
	"github.com/kbukum/nlpwire/params"
	"github.com/kbukum/nlpwire/task"
)

// DefaultMaxDepth bounds the nesting of component references.
const DefaultMaxDepth = 32

// Option configures a Resolver.
type Option func(*Resolver)

// WithMaxDepth sets the recursion bound. Values below 1 are ignored.
func WithMaxDepth(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.maxDepth = n
		}
	}
}

// WithLogger sets the logger used for resolution traces.
func WithLogger(l *logger.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.log = l
		}
	}
}

// Resolver plans component instances against a frozen registry.
type Resolver struct {
	reg      *component.Registry
	matcher  *format.Matcher
	maxDepth int
	log      *logger.Logger
}

// New returns a resolver checking inputs on fs. It ends the registry's
// initialization phase if that has not happened yet.
func New(reg *component.Registry, fs afero.Fs, opts ...Option) (*Resolver, error) {
	if err := reg.Freeze(); err != nil {
		return nil, err
	}
	r := &Resolver{
		reg:      reg,
		matcher:  format.NewMatcher(fs),
		maxDepth: DefaultMaxDepth,
		log:      logger.GetGlobalLogger().WithComponent("resolver"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Registry returns the registry the resolver reads.
func (r *Resolver) Registry() *component.Registry { return r.reg }

// Instance is a resolved component instance.
type Instance struct {
	Component string
	Scope     string
	Params    params.Values
	// Feed holds the producers the component's tasks were wired to.
	Feed *task.Feed
	// Tasks are the tasks whose outputs the component exposes.
	Tasks []*task.Task
}

// Plan is the graph produced for one or more top-level instances.
type Plan struct {
	Component string
	Graph     *task.Graph
	Instances []*Instance
}

// Roots returns the exposed tasks of every instance, in instance order.
func (p *Plan) Roots() []*task.Task {
	var roots []*task.Task
	for _, inst := range p.Instances {
		roots = append(roots, inst.Tasks...)
	}
	return roots
}

// Tasks returns every task the roots depend on, in execution order.
func (p *Plan) Tasks() []*task.Task {
	return p.Graph.Reachable(p.Roots()...)
}

// Plan resolves a single instance of the named component.
func (r *Resolver) Plan(name string, given params.Values) (*Plan, error) {
	g := task.NewGraph()
	inst, err := r.PlanInto(g, name, name, given)
	if err != nil {
		return nil, err
	}
	return &Plan{Component: name, Graph: g, Instances: []*Instance{inst}}, nil
}

// PlanInto resolves an instance of the named component into an existing
// graph, with task ids under scope. On failure the graph is left as it
// was.
func (r *Resolver) PlanInto(g *task.Graph, scope, name string, given params.Values) (*Instance, error) {
	mark := g.Mark()
	inst, err := r.instantiate(g, scope, name, given.Clone(), 0)
	if err != nil {
		g.Rollback(mark)
		fields := map[string]interface{}{logger.FieldComponent: name}
		if appErr, ok := errors.AsAppError(err); ok && len(appErr.Trace) > 0 {
			fields["trace"] = appErr.Trace
		}
		r.log.WithError(err).Error("Resolution failed", fields)
		return nil, err
	}
	r.log.Info("Resolved component", map[string]interface{}{
		logger.FieldComponent: name,
		"scope":               scope,
		"tasks":               len(g.Reachable(inst.Tasks...)),
	})
	return inst, nil
}

// instance is a component being resolved.
type instance struct {
	desc   *component.Descriptor
	params params.Values
	scope  string
	depth  int
}

func (r *Resolver) instantiate(g *task.Graph, scope, name string, given params.Values, depth int) (*Instance, error) {
	if depth > r.maxDepth {
		return nil, errors.Scheduling(fmt.Sprintf("component references nest deeper than %d at %s; check for self-referential acceptance groups", r.maxDepth, name)).
			WithComponent(name).
			WithDetail(logger.FieldDepth, depth)
	}
	desc, err := r.reg.Lookup(name)
	if err != nil {
		return nil, err
	}
	decls, err := r.reg.Parameters(name)
	if err != nil {
		return nil, err
	}
	bound, err := params.Bind(name, decls, given)
	if err != nil {
		return nil, err
	}

	inst := &instance{desc: desc, params: bound, scope: scope, depth: depth}
	feed, err := r.resolve(g, inst)
	if err != nil {
		return nil, err
	}
	tasks, err := r.setup(g, inst, feed)
	if err != nil {
		return nil, err
	}
	return &Instance{Component: name, Scope: scope, Params: bound, Feed: feed, Tasks: tasks}, nil
}

func (r *Resolver) setup(g *task.Graph, inst *instance, feed *task.Feed) ([]*task.Task, error) {
	sc := &setupContext{r: r, g: g, inst: inst}
	var (
		tasks []*task.Task
		err   error
	)
	if inst.desc.Setup != nil {
		tasks, err = inst.desc.Setup(sc, feed)
	} else {
		tasks, err = r.autoSetup(sc, feed)
	}
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, errors.AutoSetup(inst.desc.Name, "setup returned no tasks")
	}
	return tasks, nil
}

// setupContext implements component.SetupContext for one instance.
type setupContext struct {
	r    *Resolver
	g    *task.Graph
	inst *instance
}

func (sc *setupContext) Component() string      { return sc.inst.desc.Name }
func (sc *setupContext) Params() params.Values  { return sc.inst.params.Clone() }
func (sc *setupContext) Logger() *logger.Logger { return sc.r.log.WithComponent(sc.inst.desc.Name) }

func (sc *setupContext) NewTask(name string, class *task.Class, overrides params.Values) (*task.Task, error) {
	given := params.Propagate(sc.inst.params, class.ParameterNames(), overrides)
	return sc.g.NewTask(sc.inst.scope, name, class, given)
}
