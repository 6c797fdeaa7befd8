package task

import (
	"fmt"

	"github.com/kbukum/nlpwire/params"
)

// Graph owns the tasks created while planning.
type Graph struct {
	tasks []*Task
	ids   map[string]*Task
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{ids: make(map[string]*Task)}
}

// NewTask binds p against the class declaration and adds the task. The id
// is scope/name, suffixed when already taken.
func (g *Graph) NewTask(scope, name string, class *Class, p params.Values) (*Task, error) {
	bound, err := params.Bind(class.Name, class.AllParameters(), p)
	if err != nil {
		return nil, err
	}
	id := name
	if scope != "" {
		id = scope + "/" + name
	}
	if _, taken := g.ids[id]; taken {
		base := id
		for n := 2; ; n++ {
			id = fmt.Sprintf("%s#%d", base, n)
			if _, taken := g.ids[id]; !taken {
				break
			}
		}
	}
	t := newTask(id, class, bound)
	g.tasks = append(g.tasks, t)
	g.ids[id] = t
	return t, nil
}

// Task returns the task with the given id.
func (g *Graph) Task(id string) (*Task, bool) {
	t, ok := g.ids[id]
	return t, ok
}

// Tasks returns all tasks in creation order.
func (g *Graph) Tasks() []*Task {
	return append([]*Task(nil), g.tasks...)
}

// Len returns the number of tasks.
func (g *Graph) Len() int { return len(g.tasks) }

// Mark returns a position Rollback can return to.
func (g *Graph) Mark() int { return len(g.tasks) }

// Rollback discards every task created after mark.
func (g *Graph) Rollback(mark int) {
	if mark < 0 || mark >= len(g.tasks) {
		return
	}
	for _, t := range g.tasks[mark:] {
		delete(g.ids, t.ID)
	}
	for i := mark; i < len(g.tasks); i++ {
		g.tasks[i] = nil
	}
	g.tasks = g.tasks[:mark]
}

// Reachable returns roots and everything they depend on, in creation
// order. Producers are always created before their consumers, so the
// result is a valid execution order.
func (g *Graph) Reachable(roots ...*Task) []*Task {
	seen := make(map[*Task]bool)
	var visit func(t *Task)
	visit = func(t *Task) {
		if seen[t] {
			return
		}
		seen[t] = true
		for _, u := range t.Upstream() {
			visit(u)
		}
	}
	for _, r := range roots {
		visit(r)
	}
	out := make([]*Task, 0, len(seen))
	for _, t := range g.tasks {
		if seen[t] {
			out = append(out, t)
		}
	}
	return out
}

// Edge connects a producer slot to a consumer input.
type Edge struct {
	From   *Task
	Output string
	To     *Task
	Input  string
}

// Edges returns all bindings, ordered by consumer then input declaration.
func (g *Graph) Edges() []Edge {
	var edges []Edge
	for _, t := range g.tasks {
		for _, in := range t.Class.Inputs {
			for _, s := range t.inputs[in] {
				edges = append(edges, Edge{From: s.Task, Output: s.Name, To: t, Input: in})
			}
		}
	}
	return edges
}
