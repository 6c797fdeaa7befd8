package dag

import (
	"fmt"
	"sort"
)

// Graph declares nodes and edges (dependency relationships).
type Graph struct {
	Nodes map[string]Node
	Edges []Edge
}

// Edge represents a dependency: To depends on From.
type Edge struct {
	From string
	To   string
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{Nodes: make(map[string]Node)}
}

// Add registers a node under its name. A later node with the same name
// replaces the earlier one.
func (g *Graph) Add(n Node) {
	if g.Nodes == nil {
		g.Nodes = make(map[string]Node)
	}
	g.Nodes[n.Name()] = n
}

// Connect declares that to depends on from.
func (g *Graph) Connect(from, to string) {
	g.Edges = append(g.Edges, Edge{From: from, To: to})
}

// Upstream returns the names each node depends on, deduplicated and sorted.
func (g *Graph) Upstream() map[string][]string {
	seen := make(map[Edge]bool, len(g.Edges))
	up := make(map[string][]string)
	for _, e := range g.Edges {
		if seen[e] {
			continue
		}
		seen[e] = true
		up[e.To] = append(up[e.To], e.From)
	}
	for _, deps := range up {
		sort.Strings(deps)
	}
	return up
}

// BuildLevels uses Kahn's algorithm to group nodes by dependency level.
// Nodes within the same level can execute in parallel and are sorted by
// name so repeated runs see the same order.
// Returns an error if a cycle is detected.
func BuildLevels(g *Graph) ([][]string, error) {
	inDegree := make(map[string]int, len(g.Nodes))
	dependents := make(map[string][]string) // from -> [to...]
	seen := make(map[Edge]bool, len(g.Edges))

	for name := range g.Nodes {
		inDegree[name] = 0
	}

	for _, e := range g.Edges {
		if _, ok := g.Nodes[e.From]; !ok {
			return nil, fmt.Errorf("dag: edge references unknown node %q", e.From)
		}
		if _, ok := g.Nodes[e.To]; !ok {
			return nil, fmt.Errorf("dag: edge references unknown node %q", e.To)
		}
		if seen[e] {
			continue
		}
		seen[e] = true
		inDegree[e.To]++
		dependents[e.From] = append(dependents[e.From], e.To)
	}

	var queue []string
	for name, deg := range inDegree {
		if deg == 0 {
			queue = append(queue, name)
		}
	}

	var levels [][]string
	visited := 0

	for len(queue) > 0 {
		sort.Strings(queue)
		levels = append(levels, queue)
		visited += len(queue)

		var next []string
		for _, name := range queue {
			for _, dep := range dependents[name] {
				inDegree[dep]--
				if inDegree[dep] == 0 {
					next = append(next, dep)
				}
			}
		}
		queue = next
	}

	if visited != len(g.Nodes) {
		return nil, fmt.Errorf("dag: cycle detected, processed %d of %d nodes", visited, len(g.Nodes))
	}

	return levels, nil
}
