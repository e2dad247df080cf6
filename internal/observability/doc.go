// Package observability groups the cross-cutting observability concerns of
// the notifier job.
//
// Subpackages:
//   - logging: structured logging utilities with slog
//   - metrics: Prometheus metrics registry and recorders
//   - tracing: OpenTelemetry tracer handle
package observability
