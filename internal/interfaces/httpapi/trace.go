package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "robo-companion/internal/interfaces/httpapi"

var noopSpan = trace.SpanFromContext(context.Background())

// startSpan opens a handler span under the otelhttp request span, tagged with
// the request id. Filtered routes have no parent and get a noop span.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if !shouldCreateHTTPAPISpan(name) {
		return ctx, noopSpan
	}
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		return ctx, noopSpan
	}

	var attrs []attribute.KeyValue
	if id := requestIDFromContext(ctx); id != "" {
		attrs = append(attrs, attribute.String("request.id", id))
	}
	return parent.TracerProvider().Tracer(tracerName).Start(ctx, name, trace.WithAttributes(attrs...))
}

func shouldCreateHTTPAPISpan(name string) bool {
	return strings.HasPrefix(name, "httpapi.Handler.")
}
