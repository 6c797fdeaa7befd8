package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// Metric names.
const (
	MetricTaskTotal    = "nlpwire.task.total"
	MetricTaskDuration = "nlpwire.task.duration"
	MetricRunTotal     = "nlpwire.run.total"
	MetricRunDuration  = "nlpwire.run.duration"
)

// InitMeter installs a global meter provider pushing to cfg.Endpoint every
// cfg.MetricInterval.
func InitMeter(ctx context.Context, cfg Config, res Resource) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}
	r, err := newResource(res)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if cfg.MetricInterval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.MetricInterval))
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(r),
	)
	otel.SetMeterProvider(mp)
	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the instruments recording workflow runs.
type Metrics struct {
	taskTotal    metric.Int64Counter
	taskDuration metric.Float64Histogram
	runTotal     metric.Int64Counter
	runDuration  metric.Float64Histogram
}

// NewMetrics creates the instruments on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	taskTotal, err := meter.Int64Counter(MetricTaskTotal,
		metric.WithDescription("Tasks finished, by class and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricTaskTotal, err)
	}
	taskDuration, err := meter.Float64Histogram(MetricTaskDuration,
		metric.WithDescription("Task run time in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricTaskDuration, err)
	}
	runTotal, err := meter.Int64Counter(MetricRunTotal,
		metric.WithDescription("Workflow runs, by component and result"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricRunTotal, err)
	}
	runDuration, err := meter.Float64Histogram(MetricRunDuration,
		metric.WithDescription("Workflow run time in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricRunDuration, err)
	}
	return &Metrics{
		taskTotal:    taskTotal,
		taskDuration: taskDuration,
		runTotal:     runTotal,
		runDuration:  runDuration,
	}, nil
}

// RecordTask records one finished task. Tasks that did not run record
// no duration.
func (m *Metrics) RecordTask(ctx context.Context, class, outcome string, d time.Duration) {
	m.taskTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("class", class),
		attribute.String("outcome", outcome),
	))
	if d > 0 {
		m.taskDuration.Record(ctx, d.Seconds(), metric.WithAttributes(attribute.String("class", class)))
	}
}

// RecordRun records one finished workflow run.
func (m *Metrics) RecordRun(ctx context.Context, component string, success bool, d time.Duration) {
	result := "success"
	if !success {
		result = "failure"
	}
	m.runTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("component", component),
		attribute.String("result", result),
	))
	m.runDuration.Record(ctx, d.Seconds(), metric.WithAttributes(attribute.String("component", component)))
}
