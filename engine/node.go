package engine

import (
	"context"
	"sync"
	"time"

	"github.com/kbukum/nlpwire/errors"
	"github.com/kbukum/nlpwire/logger"
	"github.com/kbukum/nlpwire/task"
)

// taskNode runs one task through its lifecycle as a dag node.
type taskNode struct {
	t     *task.Task
	run   *run
	mu    sync.Mutex
	state TaskResult
}

func (n *taskNode) Name() string { return n.t.ID }

func (n *taskNode) Run(ctx context.Context) error {
	start := time.Now()
	outcome, outputs, err := n.execute(ctx)
	n.mu.Lock()
	n.state = TaskResult{
		ID:       n.t.ID,
		Class:    n.t.Class.Name,
		Outcome:  outcome,
		Outputs:  outputs,
		Duration: time.Since(start),
		Error:    err,
	}
	n.mu.Unlock()
	return err
}

func (n *taskNode) result() TaskResult {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

func (n *taskNode) execute(ctx context.Context) (string, []string, error) {
	t, fs := n.t, n.run.fs
	log := n.run.log.WithFields(map[string]interface{}{logger.FieldTask: t.ID})

	if t.Class.External {
		if t.Complete(fs) {
			return OutcomeComplete, nil, nil
		}
		return OutcomeFailed, nil, missingSource(t)
	}
	if t.Complete(fs) {
		log.Debug("Task already complete")
		n.run.report(ctx, t, StatusDone)
		return OutcomeComplete, nil, nil
	}
	if t.Class.Run == nil {
		return OutcomeFailed, nil, errors.TaskFailed(t.ID,
			errors.InvalidDeclaration(t.Class.Name, "no run function implemented for task class "+t.Class.Name))
	}

	n.run.report(ctx, t, StatusRunning)
	err := n.prepareDirectoryOutputs()
	if err == nil {
		err = t.Class.Run(ctx, &task.RunContext{Task: t, Fs: fs, Log: log})
	}
	if err == nil {
		err = task.VerifyOutputDirs(fs, t.OutputDirs)
	} else if markErr := t.MarkFailed(fs); markErr != nil {
		log.WithError(markErr).Warn("Could not mark output directories failed")
	}
	if err != nil {
		n.run.report(ctx, t, StatusFailed)
		return OutcomeFailed, nil, errors.TaskFailed(t.ID, err)
	}

	outputs, _ := t.Targets()
	for _, p := range outputs {
		log.Info("Produced output "+p, map[string]interface{}{logger.FieldOutput: p})
	}
	n.run.report(ctx, t, StatusDone)
	return OutcomeDone, outputs, nil
}

// prepareDirectoryOutputs readies every output slot declared as a
// directory.
func (n *taskNode) prepareDirectoryOutputs() error {
	for _, slot := range n.t.OutputSlots() {
		decl, _ := n.t.Class.Output(slot.Name)
		if !decl.Directory {
			continue
		}
		target, err := slot.Target()
		if err != nil {
			return err
		}
		if err := n.t.PrepareOutputDir(n.run.fs, target); err != nil {
			return err
		}
	}
	return nil
}

func missingSource(t *task.Task) error {
	formatID := t.Params.String(task.ParamFormatID)
	path := t.Params.String(task.ParamPath)
	if targets, err := t.Targets(); err == nil && len(targets) > 0 {
		path = targets[0]
	}
	return errors.MissingInput(formatID, "", path)
}
