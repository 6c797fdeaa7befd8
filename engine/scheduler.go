package engine

import (
	"context"
	"net"

	"github.com/kbukum/nlpwire/logger"
)

// Task states reported to a scheduler.
const (
	StatusPending = "PENDING"
	StatusRunning = "RUNNING"
	StatusDone    = "DONE"
	StatusFailed  = "FAILED"
)

// Update is one task state transition.
type Update struct {
	TaskID string         `json:"task_id"`
	Family string         `json:"family"`
	Status string         `json:"status"`
	Worker string         `json:"worker"`
	Params map[string]any `json:"params,omitempty"`
	Deps   []string       `json:"deps,omitempty"`
}

// Scheduler receives task state transitions.
type Scheduler interface {
	Name() string
	Report(ctx context.Context, u Update) error
}

// LocalName names the in-process scheduler.
const LocalName = "local"

type localScheduler struct{}

// Local returns the scheduler used when no remote one is reachable.
func Local() Scheduler { return localScheduler{} }

func (localScheduler) Name() string                         { return LocalName }
func (localScheduler) Report(context.Context, Update) error { return nil }

// SelectScheduler probes cfg's address and returns a remote scheduler if
// something accepts connections there, the local one otherwise.
func SelectScheduler(ctx context.Context, cfg SchedulerConfig, log *logger.Logger) Scheduler {
	if cfg.Local {
		log.Info("Using local scheduler")
		return Local()
	}
	addr := cfg.Address()
	if err := probe(ctx, addr, cfg); err != nil {
		log.Info("Using local scheduler", map[string]interface{}{
			"address": addr,
			"reason":  err.Error(),
		})
		return Local()
	}
	log.Info("Using scheduler at " + addr)
	return NewRemote(cfg, log)
}

func probe(ctx context.Context, addr string, cfg SchedulerConfig) error {
	d := net.Dialer{Timeout: cfg.ProbeTimeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	return conn.Close()
}
