package engine

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/kbukum/nlpwire/dag"
	"github.com/kbukum/nlpwire/logger"
	"github.com/kbukum/nlpwire/observability"
	"github.com/kbukum/nlpwire/resolver"
	"github.com/kbukum/nlpwire/task"
)

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger runs write to.
func WithLogger(l *logger.Logger) Option {
	return func(r *Runner) { r.log = l }
}

// WithScheduler bypasses the probe and reports to s.
func WithScheduler(s Scheduler) Option {
	return func(r *Runner) { r.scheduler = s }
}

// WithMetrics records every finished task and run on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(r *Runner) { r.metrics = m }
}

// Runner executes plans.
type Runner struct {
	cfg       Config
	fs        afero.Fs
	log       *logger.Logger
	scheduler Scheduler
	metrics   *observability.Metrics
}

// New creates a runner writing to fs. A nil fs means the OS filesystem.
func New(cfg Config, fs afero.Fs, opts ...Option) (*Runner, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if fs == nil {
		fs = afero.NewOsFs()
	}
	r := &Runner{cfg: cfg, fs: fs, log: logger.GetGlobalLogger()}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// run is the state of one Runner.Run call.
type run struct {
	id        string
	fs        afero.Fs
	log       *logger.Logger
	scheduler Scheduler
}

func (r *run) report(ctx context.Context, t *task.Task, status string) {
	if r.scheduler.Name() == LocalName {
		return
	}
	deps := make([]string, 0)
	for _, u := range t.Upstream() {
		deps = append(deps, u.ID)
	}
	u := Update{
		TaskID: t.ID,
		Family: t.Class.Name,
		Status: status,
		Worker: r.id,
		Params: t.Params.Map(),
		Deps:   deps,
	}
	if err := r.scheduler.Report(ctx, u); err != nil {
		r.log.WithError(err).Warn("Scheduler update failed", map[string]interface{}{
			logger.FieldTask:   t.ID,
			logger.FieldStatus: status,
		})
	}
}

// Run executes every task the plan's roots depend on. Task failures are
// reported in the Report; the error is reserved for failures to start or
// finish the run itself.
func (r *Runner) Run(ctx context.Context, plan *resolver.Plan) (*Report, error) {
	start := time.Now()
	rn := &run{id: uuid.NewString(), fs: r.fs}

	logFile, f, err := r.openLog(rn.id)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	rn.log = r.log.Tee(f).WithFields(map[string]interface{}{logger.FieldRunID: rn.id})
	rn.log.Info("Starting workflow (logging to "+logFile+")", map[string]interface{}{"log_file": logFile})

	rn.scheduler = r.scheduler
	if rn.scheduler == nil {
		rn.scheduler = SelectScheduler(ctx, r.cfg.Scheduler, rn.log)
	}

	tasks := plan.Tasks()
	nodes := make([]*taskNode, len(tasks))
	g := dag.NewGraph()
	for i, t := range tasks {
		nodes[i] = &taskNode{t: t, run: rn}
		var node dag.Node = nodes[i]
		if r.cfg.Tracing {
			node = dag.WithTracing(node, "nlpwire")
		}
		g.Add(dag.WithLogging(node, rn.log))
		for _, u := range t.Upstream() {
			g.Connect(u.ID, t.ID)
		}
	}

	for _, inst := range plan.Instances {
		rn.log.Info(">>> Starting component "+inst.Scope, map[string]interface{}{logger.FieldComponent: inst.Component})
	}

	engine := &dag.Engine{MaxParallel: r.cfg.Workers}
	result, err := engine.Execute(ctx, g)
	if err != nil {
		rn.log.WithError(err).Error("There were errors in scheduling the workflow, inspect the log at " + logFile)
		return nil, err
	}

	report := &Report{
		RunID:     rn.id,
		Success:   true,
		LogFile:   logFile,
		Scheduler: rn.scheduler.Name(),
		Tasks:     make([]TaskResult, len(tasks)),
	}
	outcome := make(map[string]string, len(tasks))
	for i, n := range nodes {
		tr := n.result()
		if nr := result.NodeResults[n.t.ID]; nr.Status == dag.StatusSkipped {
			tr = TaskResult{ID: n.t.ID, Class: n.t.Class.Name, Outcome: OutcomeSkipped}
		}
		if tr.Outcome != OutcomeDone && tr.Outcome != OutcomeComplete {
			report.Success = false
		}
		outcome[tr.ID] = tr.Outcome
		report.Tasks[i] = tr
	}

	for _, inst := range plan.Instances {
		if instanceSucceeded(plan, inst, outcome) {
			rn.log.Info("<<< Finished component "+inst.Scope, map[string]interface{}{logger.FieldComponent: inst.Component})
		}
	}

	report.Duration = time.Since(start)
	if r.metrics != nil {
		for _, tr := range report.Tasks {
			r.metrics.RecordTask(ctx, tr.Class, tr.Outcome, tr.Duration)
		}
		r.metrics.RecordRun(ctx, plan.Component, report.Success, report.Duration)
	}
	if report.Success {
		rn.log.Info("Workflow run completed successfully (logged to " + logFile + ")")
	} else {
		rn.log.Error("There were errors in scheduling the workflow, inspect the log at "+logFile+" for more details",
			map[string]interface{}{"failed": report.Count(OutcomeFailed), "skipped": report.Count(OutcomeSkipped)})
	}
	return report, nil
}

func instanceSucceeded(plan *resolver.Plan, inst *resolver.Instance, outcome map[string]string) bool {
	for _, t := range plan.Graph.Reachable(inst.Tasks...) {
		if o := outcome[t.ID]; o != OutcomeDone && o != OutcomeComplete {
			return false
		}
	}
	return true
}

// openLog creates the run's log file under the configured directory.
func (r *Runner) openLog(runID string) (string, afero.File, error) {
	if err := r.fs.MkdirAll(r.cfg.LogDir, 0o755); err != nil {
		return "", nil, err
	}
	path := filepath.Join(r.cfg.LogDir, "nlpwire-"+runID+".log")
	f, err := r.fs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return "", nil, err
	}
	return path, f, nil
}
