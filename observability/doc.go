// Package observability exports traces and metrics of workflow runs over
// OTLP/HTTP.
//
// Setup installs global tracer and meter providers; the task spans that
// dag.WithTracing opens and the instruments of Metrics then reach the
// collector:
//
//	p, err := observability.Setup(ctx, cfg.Telemetry, "nlpwire", version.Get().Short(), log)
//	defer p.Shutdown(ctx)
//
//	m, err := observability.NewMetrics(observability.Meter("nlpwire"))
//	m.RecordTask(ctx, "Tokenizer", "done", elapsed)
//
// Without Setup the global providers are no-ops.
package observability
