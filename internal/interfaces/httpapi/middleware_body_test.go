package httpapi

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func spanAttr(span sdktrace.ReadOnlySpan, key string) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestCaptureRequestBody(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		body          string
		maxBytes      int
		wantCaptured  string
		wantTruncated bool
	}{
		{name: "fits", body: `{"program_id":1}`, maxBytes: 64, wantCaptured: `{"program_id":1}`},
		{name: "truncated", body: `{"ui_id":"5002-session-2"}`, maxBytes: 8, wantCaptured: `{"ui_id"`, wantTruncated: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			recorder := tracetest.NewSpanRecorder()
			provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
			t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

			var seen string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				b, err := io.ReadAll(r.Body)
				if err != nil {
					t.Fatalf("read body: %v", err)
				}
				seen = string(b)
				w.WriteHeader(http.StatusNoContent)
			})
			handler := CaptureRequestBody(true, tt.maxBytes, next)

			ctx, span := provider.Tracer("test").Start(context.Background(), "POST /v1/favorites/collapse")
			req := httptest.NewRequest(http.MethodPost, "/v1/favorites/collapse", strings.NewReader(tt.body)).WithContext(ctx)
			handler.ServeHTTP(httptest.NewRecorder(), req)
			span.End()

			if seen != tt.body {
				t.Fatalf("handler saw %q, want full body %q", seen, tt.body)
			}
			ended := recorder.Ended()
			if len(ended) != 1 {
				t.Fatalf("expected one span, got %d", len(ended))
			}
			captured, ok := spanAttr(ended[0], "http.request.body")
			if !ok || captured.AsString() != tt.wantCaptured {
				t.Fatalf("captured body=%q want=%q", captured.AsString(), tt.wantCaptured)
			}
			truncated, _ := spanAttr(ended[0], "http.request.body.truncated")
			if truncated.AsBool() != tt.wantTruncated {
				t.Fatalf("truncated=%v want=%v", truncated.AsBool(), tt.wantTruncated)
			}
		})
	}
}

func TestCaptureRequestBody_Disabled(t *testing.T) {
	t.Parallel()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	handler := CaptureRequestBody(false, 0, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	ctx, span := provider.Tracer("test").Start(context.Background(), "POST /v1/favorites/collapse")
	req := httptest.NewRequest(http.MethodPost, "/v1/favorites/collapse", strings.NewReader(`{"program_id":1}`)).WithContext(ctx)
	handler.ServeHTTP(httptest.NewRecorder(), req)
	span.End()

	if _, ok := spanAttr(recorder.Ended()[0], "http.request.body"); ok {
		t.Fatalf("expected no captured body when disabled")
	}
}
