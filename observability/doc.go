// Package observability wires OpenTelemetry tracing and metrics for the
// gateway and the CLI.
//
// Gateway calls are always traced and measured against the global
// providers, which are no-ops until Init installs real ones:
//
//	shutdown, err := observability.Init(ctx, cfg.Telemetry)
//	defer shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, "gateway.get")
//	defer span.End()
package observability
