package process_test

import (
	"context"
	"testing"
	"time"

	"github.com/kbukum/nlpwire/logger"
	"github.com/kbukum/nlpwire/process"
)

func TestAdapterRetries(t *testing.T) {
	a := process.NewAdapter(process.Config{Attempts: 2, Backoff: time.Millisecond}, logger.NewNop())
	start := time.Now()
	_, err := a.Run(context.Background(), process.Command{Binary: "false"}, false)
	if err == nil {
		t.Fatal("expected error from failing command")
	}
	if time.Since(start) > 5*time.Second {
		t.Fatal("retries took too long")
	}
}

func TestAdapterIgnoreFailure(t *testing.T) {
	a := process.NewAdapter(process.Config{}, logger.NewNop())
	result, err := a.Run(context.Background(), process.Command{Binary: "false"}, true)
	if err != nil {
		t.Fatalf("failure should be ignored, got %v", err)
	}
	if result == nil {
		t.Fatal("expected a result")
	}
}

func TestAdapterTimeout(t *testing.T) {
	a := process.NewAdapter(process.Config{Timeout: 100 * time.Millisecond, GracePeriod: 100 * time.Millisecond}, logger.NewNop())
	_, err := a.Run(context.Background(), process.Command{Binary: "sleep", Args: []string{"10"}}, false)
	if err == nil {
		t.Fatal("expected timeout error")
	}
}
