// Package tracing provides the OpenTelemetry tracer handle for the notifier job.
// Spans are no-ops unless a trace provider is installed by the runtime environment.
package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// tracer is the global tracer instance for the blog-notify application.
var tracer = otel.Tracer("blog-notify")

// GetTracer returns the global tracer for creating spans.
//
// Example usage:
//
//	ctx, span := tracing.GetTracer().Start(ctx, "digest.run")
//	defer span.End()
func GetTracer() trace.Tracer {
	return tracer
}
