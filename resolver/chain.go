package resolver

import (
	"fmt"

	"github.com/kbukum/nlpwire/component"
	"github.com/kbukum/nlpwire/errors"
	"github.com/kbukum/nlpwire/format"
	"github.com/kbukum/nlpwire/logger"
	"github.com/kbukum/nlpwire/params"
	"github.com/kbukum/nlpwire/task"
)

// outcome is the result of trying one acceptance group: a matched feed or
// the reason the group was rejected.
type outcome struct {
	feed   *task.Feed
	reason string
}

func matched(f *task.Feed) outcome   { return outcome{feed: f} }
func rejected(reason string) outcome { return outcome{reason: reason} }
func (o outcome) Matched() bool      { return o.feed != nil && !o.feed.Empty() }

func rejectedf(msg string, args ...any) outcome {
	return rejected(fmt.Sprintf(msg, args...))
}

// resolve tries the component's groups in order and returns the feed of
// the first one that matches.
func (r *Resolver) resolve(g *task.Graph, inst *instance) (*task.Feed, error) {
	name := inst.desc.Name
	groups, err := r.reg.Groups(name)
	if err != nil {
		return nil, err
	}

	inputParam := inst.desc.Input()
	trace := []string{inputParam + "=" + inst.params.String(inputParam)}
	log := r.log.WithFields(map[string]interface{}{
		logger.FieldComponent: name,
		logger.FieldDepth:     inst.depth,
	})

	for i, group := range groups {
		mark := g.Mark()
		out, err := r.tryGroup(g, inst, group)
		if err != nil {
			g.Rollback(mark)
			if appErr, ok := errors.AsAppError(err); ok && appErr.Component == "" {
				appErr.WithComponent(name)
			}
			return nil, err
		}
		if out.Matched() {
			log.Debug("Acceptance group matched", map[string]interface{}{
				"group": i + 1,
				"feed":  out.feed.String(),
			})
			return out.feed, nil
		}
		g.Rollback(mark)
		trace = append(trace, fmt.Sprintf("group %d: %s", i+1, out.reason))
		log.Debug("Acceptance group rejected", map[string]interface{}{
			"group":  i + 1,
			"reason": out.reason,
		})
	}

	return nil, errors.InvalidInput(name, "unable to find an entry point for supplied input").WithTrace(trace)
}

// tryGroup resolves every item of a group; the first item that does not
// resolve rejects the group.
func (r *Resolver) tryGroup(g *task.Graph, inst *instance, group component.Group) (outcome, error) {
	name := inst.desc.Name
	input := inst.params.String(inst.desc.Input())
	start := inst.params.String(component.ParamStartComponent)
	slot := inst.params.String(component.ParamInputSlot)

	feed := task.NewFeed()
	for _, item := range group {
		switch it := item.(type) {
		case component.FormatItem:
			if start != "" && start != name {
				return rejectedf("startcomponent %s does not match %s, skipping format %s", start, name, it.FormatID), nil
			}
			res, err := r.matcher.Match(input, it.Format, it.Force)
			if err != nil {
				return outcome{}, err
			}
			if !res.Valid {
				return rejectedf("format %s does not match %q", it.FormatID, input), nil
			}
			if slot != "" && slot != it.FormatID {
				return rejectedf("format %s excluded by inputslot=%s", it.FormatID, slot), nil
			}
			src, err := r.sourceTask(g, inst, res)
			if err != nil {
				return outcome{}, err
			}
			out, err := src.Output(it.FormatID)
			if err != nil {
				return outcome{}, err
			}
			feed.Add(it.FormatID, out)

		case component.ComponentRef:
			sub, err := r.instantiateRef(g, inst, it)
			if err != nil {
				if errors.CodeOf(err) == errors.ErrCodeInvalidInput {
					return rejectedf("tried component %s in accept chain, does not handle provided input: %v", it.Name, err), nil
				}
				return outcome{}, err
			}
			for _, t := range sub.Tasks {
				feed.AddTask(t)
			}

		default:
			return outcome{}, errors.Internal(fmt.Errorf("unsupported acceptance item %T", item))
		}
	}
	return matched(feed), nil
}

// instantiateRef builds a referenced component instance: explicit
// arguments first, everything else the child declares propagated from
// the parent.
func (r *Resolver) instantiateRef(g *task.Graph, parent *instance, ref component.ComponentRef) (*Instance, error) {
	child, err := r.reg.Lookup(ref.Name)
	if err != nil {
		return nil, err
	}
	explicit, err := ref.Explicit(child)
	if err != nil {
		return nil, err
	}
	decls, err := r.reg.Parameters(ref.Name)
	if err != nil {
		return nil, err
	}
	given := params.Propagate(parent.params, params.Names(decls), explicit)
	return r.instantiate(g, parent.scope+"/"+ref.Name, ref.Name, given, parent.depth+1)
}

func (r *Resolver) sourceTask(g *task.Graph, inst *instance, res format.Resolved) (*task.Task, error) {
	class, err := r.reg.SourceClass(res.FormatID)
	if err != nil {
		return nil, err
	}
	return g.NewTask(inst.scope, class.Name, class, task.SourceParams(res))
}
