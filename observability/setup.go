package observability

import (
	"context"
	stderrors "errors"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/nlpwire/logger"
)

// Providers are the installed export pipelines.
type Providers struct {
	tracer *sdktrace.TracerProvider
	meter  *sdkmetric.MeterProvider
}

// Setup installs tracer and meter providers when cfg enables export and
// returns them for shutdown. With export off it returns empty Providers.
func Setup(ctx context.Context, cfg Config, serviceName, serviceVersion string, log *logger.Logger) (*Providers, error) {
	cfg.ApplyDefaults()
	if !cfg.Enabled() {
		return &Providers{}, nil
	}
	res := Resource{ServiceName: serviceName, ServiceVersion: serviceVersion, Environment: cfg.Environment}

	tp, err := InitTracer(ctx, cfg, res)
	if err != nil {
		return nil, err
	}
	mp, err := InitMeter(ctx, cfg, res)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, err
	}
	log.Info("Telemetry export enabled", logger.Fields(
		"endpoint", cfg.Endpoint,
		"sample_rate", cfg.SampleRate,
		"metric_interval", cfg.MetricInterval.String(),
	))
	return &Providers{tracer: tp, meter: mp}, nil
}

// Shutdown flushes and stops the providers.
func (p *Providers) Shutdown(ctx context.Context) error {
	var errs []error
	if p.tracer != nil {
		errs = append(errs, p.tracer.Shutdown(ctx))
	}
	if p.meter != nil {
		errs = append(errs, p.meter.Shutdown(ctx))
	}
	return stderrors.Join(errs...)
}
