package dag

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kbukum/nlpwire/logger"
)

func TestWithTracing_WrapsNode(t *testing.T) {
	called := false
	traced := WithTracing(Func("tokenize", func(ctx context.Context) error {
		called = ctx != nil
		return nil
	}), "nlpwire")

	if traced.Name() != "tokenize" {
		t.Fatalf("expected 'tokenize', got %q", traced.Name())
	}
	if err := traced.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatal("inner node was not called")
	}
}

func TestWithTracing_PropagatesError(t *testing.T) {
	nodeErr := errors.New("fail")
	traced := WithTracing(Func("fail-node", func(context.Context) error { return nodeErr }), "dag")
	if err := traced.Run(context.Background()); !errors.Is(err, nodeErr) {
		t.Fatalf("expected node error, got %v", err)
	}
}

func TestWithLogging_Error(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "debug", Format: "json"}, "dag-test", &buf)
	nodeErr := errors.New("log-fail")

	logged := WithLogging(Func("fail-log", func(context.Context) error { return nodeErr }), log)
	if logged.Name() != "fail-log" {
		t.Fatalf("expected 'fail-log', got %q", logged.Name())
	}
	if err := logged.Run(context.Background()); !errors.Is(err, nodeErr) {
		t.Fatalf("expected node error, got %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "dag node failed") || !strings.Contains(out, "log-fail") {
		t.Errorf("log output missing failure entry: %s", out)
	}
}
