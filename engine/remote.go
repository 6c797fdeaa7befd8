package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kbukum/nlpwire/logger"
	"github.com/kbukum/nlpwire/resilience"
	"github.com/kbukum/nlpwire/version"
)

// AddTaskPath is where task updates are posted.
const AddTaskPath = "/api/add_task"

// Remote reports task state transitions to a scheduler over HTTP. Each
// update is retried; a scheduler that keeps failing is left alone for the
// breaker's cooldown.
type Remote struct {
	baseURL string
	client  *http.Client
	retry   resilience.RetryConfig
	breaker *resilience.Breaker
	log     *logger.Logger
}

// NewRemote creates a reporter for the scheduler at cfg's address.
func NewRemote(cfg SchedulerConfig, log *logger.Logger) *Remote {
	cfg.ApplyDefaults()
	log = log.WithComponent("scheduler")

	retry := resilience.DefaultRetryConfig()
	retry.OnRetry = func(attempt int, err error, backoff time.Duration) {
		log.Debug("Retrying scheduler update", map[string]interface{}{
			"attempt":         attempt,
			"backoff":         backoff.String(),
			logger.FieldError: err.Error(),
		})
	}

	return &Remote{
		baseURL: "http://" + cfg.Address(),
		client:  &http.Client{Timeout: cfg.ReportTimeout},
		retry:   retry,
		breaker: resilience.NewBreaker(resilience.BreakerConfig{
			Name:        cfg.Address(),
			MaxFailures: cfg.MaxFailures,
			Cooldown:    cfg.Cooldown,
			OnStateChange: func(name string, from, to resilience.State) {
				log.Warn("Scheduler breaker changed state", map[string]interface{}{
					"address": name,
					"from":    from.String(),
					"to":      to.String(),
				})
			},
		}),
		log: log,
	}
}

// Name returns the scheduler address.
func (r *Remote) Name() string { return r.breaker.Name() }

// Report posts u, retrying transient failures.
func (r *Remote) Report(ctx context.Context, u Update) error {
	return r.breaker.Execute(func() error {
		return resilience.RetryFunc(ctx, r.retry, func() error {
			return r.post(ctx, u)
		})
	})
}

func (r *Remote) post(ctx context.Context, u Update) error {
	data, err := json.Marshal(u)
	if err != nil {
		return resilience.Permanent(fmt.Errorf("encode update: %w", err))
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+AddTaskPath, bytes.NewReader(data))
	if err != nil {
		return resilience.Permanent(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("post update: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests:
		return resilience.Permanent(fmt.Errorf("scheduler rejected update: HTTP %d", resp.StatusCode))
	default:
		return fmt.Errorf("scheduler error: HTTP %d", resp.StatusCode)
	}
}
