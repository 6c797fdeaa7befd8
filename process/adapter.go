package process

import (
	"context"
	"time"

	"github.com/kbukum/nlpwire/logger"
	"github.com/kbukum/nlpwire/resilience"
)

// Config configures a process adapter.
type Config struct {
	// GracePeriod is the default grace period for SIGTERM→SIGKILL.
	GracePeriod time.Duration `yaml:"grace_period,omitempty" mapstructure:"grace_period"`
	// Timeout is the default execution timeout. Zero means no timeout.
	Timeout time.Duration `yaml:"timeout,omitempty" mapstructure:"timeout"`
	// Attempts is how often a failing tool is run before giving up.
	Attempts int `yaml:"attempts,omitempty" mapstructure:"attempts" validate:"omitempty,min=1,max=10"`
	// Backoff is the delay between attempts.
	Backoff time.Duration `yaml:"backoff,omitempty" mapstructure:"backoff"`
}

// Adapter runs commands with adapter-level defaults, retries and logging.
type Adapter struct {
	config Config
	log    *logger.Logger
}

// NewAdapter creates a new process adapter.
func NewAdapter(cfg Config, log *logger.Logger) *Adapter {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Adapter{config: cfg, log: log.WithComponent("process")}
}

// Run executes a command. With IgnoreFailure set, a failing tool is
// logged and reported as success.
func (a *Adapter) Run(ctx context.Context, cmd Command, ignoreFailure bool) (*Result, error) {
	if cmd.GracePeriod == 0 && a.config.GracePeriod > 0 {
		cmd.GracePeriod = a.config.GracePeriod
	}
	a.log.Info("Executing command", map[string]interface{}{"command": CommandLine(cmd)})

	attempts := a.config.Attempts
	if attempts <= 0 {
		attempts = 1
	}
	retry := resilience.DefaultRetryConfig()
	retry.MaxAttempts = attempts
	if a.config.Backoff > 0 {
		retry.InitialBackoff = a.config.Backoff
	}
	retry.OnRetry = func(attempt int, err error, backoff time.Duration) {
		a.log.Warn("Command failed, retrying", map[string]interface{}{
			"attempt":         attempt,
			logger.FieldError: err.Error(),
			"backoff":         backoff.String(),
		})
	}

	result, err := resilience.Retry(ctx, retry, func() (*Result, error) {
		runCtx := ctx
		if a.config.Timeout > 0 {
			var cancel context.CancelFunc
			runCtx, cancel = context.WithTimeout(ctx, a.config.Timeout)
			defer cancel()
		}
		return Run(runCtx, cmd)
	})
	if err != nil && ignoreFailure {
		a.log.Warn("Ignoring failure on request", map[string]interface{}{logger.FieldError: err.Error()})
		if result == nil {
			result = &Result{ExitCode: -1}
		}
		return result, nil
	}
	return result, err
}
