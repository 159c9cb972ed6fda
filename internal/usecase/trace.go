package usecase

import (
	"context"
	"strings"

	"github.com/riskibarqy/robo-companion/internal/domain/program"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var usecaseTracer = otel.Tracer("robo-companion/internal/usecase")
var usecaseNoopSpan = trace.SpanFromContext(context.Background())

// startUsecaseSpan opens a child span only under an existing trace, so
// background work (failure checks, archive writes) never starts new roots.
func startUsecaseSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if strings.TrimSpace(name) == "" {
		return ctx, usecaseNoopSpan
	}
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, usecaseNoopSpan
	}
	return usecaseTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func programAttributes(p program.Descriptor) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int("program.id", p.ID),
		attribute.String("program.code", p.Code),
		attribute.String("program.family", string(p.Family)),
	}
}
