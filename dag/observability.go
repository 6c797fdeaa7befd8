package dag

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/nlpwire/logger"
)

const tracerName = "github.com/kbukum/nlpwire/dag"

// WithTracing wraps a Node with OpenTelemetry span creation.
// Each execution creates a span named "{prefix}.{nodeName}".
func WithTracing(node Node, prefix string) Node {
	return &tracingNode{inner: node, prefix: prefix}
}

type tracingNode struct {
	inner  Node
	prefix string
}

func (n *tracingNode) Name() string { return n.inner.Name() }

func (n *tracingNode) Run(ctx context.Context) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, n.prefix+"."+n.inner.Name(),
		trace.WithAttributes(attribute.String("dag.node", n.inner.Name())))
	defer span.End()

	err := n.inner.Run(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

// WithLogging wraps a Node with execution logging.
// Logs: node name, duration, and success/error status.
func WithLogging(node Node, log *logger.Logger) Node {
	return &loggingNode{inner: node, log: log}
}

type loggingNode struct {
	inner Node
	log   *logger.Logger
}

func (n *loggingNode) Name() string { return n.inner.Name() }

func (n *loggingNode) Run(ctx context.Context) error {
	start := time.Now()
	err := n.inner.Run(ctx)

	fields := logger.DurationFields(n.inner.Name(), time.Since(start))
	if err != nil {
		fields[logger.FieldError] = err.Error()
		n.log.Error("dag node failed", fields)
	} else {
		n.log.Debug("dag node completed", fields)
	}

	return err
}
