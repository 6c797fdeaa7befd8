package engine

import (
	"time"
)

// Task outcomes.
const (
	// OutcomeDone means the task ran and produced its outputs.
	OutcomeDone = "done"
	// OutcomeComplete means the outputs already existed.
	OutcomeComplete = "complete"
	// OutcomeFailed means the task or its output check failed.
	OutcomeFailed = "failed"
	// OutcomeSkipped means an upstream task did not succeed.
	OutcomeSkipped = "skipped"
)

// TaskResult is the outcome of one task.
type TaskResult struct {
	ID       string        `json:"id"`
	Class    string        `json:"class"`
	Outcome  string        `json:"outcome"`
	Outputs  []string      `json:"outputs,omitempty"`
	Duration time.Duration `json:"duration"`
	Error    error         `json:"-"`
}

// Report summarizes a run.
type Report struct {
	RunID     string        `json:"run_id"`
	Success   bool          `json:"success"`
	LogFile   string        `json:"log_file,omitempty"`
	Scheduler string        `json:"scheduler"`
	Tasks     []TaskResult  `json:"tasks"`
	Duration  time.Duration `json:"duration"`
}

// Err returns the first task error, in task order.
func (r *Report) Err() error {
	for _, t := range r.Tasks {
		if t.Error != nil {
			return t.Error
		}
	}
	return nil
}

// Count returns how many tasks ended with the given outcome.
func (r *Report) Count(outcome string) int {
	n := 0
	for _, t := range r.Tasks {
		if t.Outcome == outcome {
			n++
		}
	}
	return n
}
