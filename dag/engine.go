package dag

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Engine executes a graph in dependency order.
type Engine struct {
	// MaxParallel limits concurrent nodes per level (0 = unlimited).
	MaxParallel int
}

// Execute runs all nodes level by level. A node runs only when every node
// it depends on completed; otherwise it is recorded as skipped. Node
// failures are reported in the Result, the returned error is reserved for
// graph errors and cancellation.
func (e *Engine) Execute(ctx context.Context, g *Graph) (*Result, error) {
	start := time.Now()

	levels, err := BuildLevels(g)
	if err != nil {
		return nil, err
	}
	upstream := g.Upstream()

	result := &Result{
		NodeResults: make(map[string]NodeResult, len(g.Nodes)),
	}

	for _, level := range levels {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var toRun []string
		for _, name := range level {
			if blocker := blockedBy(upstream[name], result); blocker != "" {
				result.NodeResults[name] = NodeResult{
					Name:      name,
					Status:    StatusSkipped,
					BlockedBy: blocker,
				}
				continue
			}
			toRun = append(toRun, name)
		}

		if len(toRun) == 0 {
			continue
		}

		e.executeLevel(ctx, g, toRun, result)
	}

	result.Duration = time.Since(start)
	return result, nil
}

func blockedBy(deps []string, result *Result) string {
	for _, dep := range deps {
		if result.NodeResults[dep].Status != StatusCompleted {
			return dep
		}
	}
	return ""
}

func (e *Engine) executeLevel(ctx context.Context, g *Graph, names []string, result *Result) {
	var mu sync.Mutex
	var eg errgroup.Group
	eg.SetLimit(e.concurrency(len(names)))

	for _, name := range names {
		node := g.Nodes[name]
		eg.Go(func() error {
			nr := executeNode(ctx, node)
			mu.Lock()
			result.NodeResults[name] = nr
			mu.Unlock()
			return nil
		})
	}

	_ = eg.Wait()
}

func executeNode(ctx context.Context, node Node) NodeResult {
	start := time.Now()
	err := node.Run(ctx)
	duration := time.Since(start)

	if err != nil {
		return NodeResult{
			Name:     node.Name(),
			Status:   StatusFailed,
			Duration: duration,
			Error:    err,
		}
	}

	return NodeResult{
		Name:     node.Name(),
		Status:   StatusCompleted,
		Duration: duration,
	}
}

func (e *Engine) concurrency(levelSize int) int {
	if e.MaxParallel <= 0 || e.MaxParallel > levelSize {
		return levelSize
	}
	return e.MaxParallel
}
