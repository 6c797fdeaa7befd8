package dag

import (
	"sort"
	"time"
)

// Node statuses.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusSkipped   = "skipped"
)

// Result holds the outcome of a graph execution.
type Result struct {
	NodeResults map[string]NodeResult
	Duration    time.Duration
}

// NodeResult holds the outcome of a single node execution.
type NodeResult struct {
	Name     string
	Status   string // "completed" | "skipped" | "failed"
	Duration time.Duration
	Error    error
	// BlockedBy names the upstream node that caused a skip.
	BlockedBy string
}

// Success reports whether every node completed.
func (r *Result) Success() bool {
	for _, nr := range r.NodeResults {
		if nr.Status != StatusCompleted {
			return false
		}
	}
	return true
}

// Failed returns the names of failed nodes, sorted.
func (r *Result) Failed() []string {
	return r.withStatus(StatusFailed)
}

// Skipped returns the names of skipped nodes, sorted.
func (r *Result) Skipped() []string {
	return r.withStatus(StatusSkipped)
}

func (r *Result) withStatus(status string) []string {
	var names []string
	for name, nr := range r.NodeResults {
		if nr.Status == status {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
