package observability

import (
	"errors"
	"testing"
	"time"

	otellog "go.opentelemetry.io/otel/log"
	"go.uber.org/zap/zapcore"
)

func TestIsQuietRequestLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		msg  string
		args []any
		want bool
	}{
		{name: "health probe", msg: "http_request", args: []any{"http_method", "GET", "http_path", "/healthz"}, want: true},
		{name: "metrics scrape", msg: "http_request", args: []any{"http_path", "/metrics"}, want: true},
		{name: "api request", msg: "http_request", args: []any{"http_path", "/v1/programs/1/seasons"}, want: false},
		{name: "other message", msg: "live event resolved", args: []any{"http_path", "/healthz"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isQuietRequestLog(tt.msg, tt.args); got != tt.want {
				t.Fatalf("isQuietRequestLog = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLogAttributes(t *testing.T) {
	t.Parallel()

	attrs := logAttributes([]any{
		"program_id", 1,
		"event_sku", "RE-V5RC-25-5003",
		"candidates", []int{5002, 5003},
		"error", errors.New("upstream down"),
		"took", 1500 * time.Millisecond,
		"dangling",
	})
	if len(attrs) != 6 {
		t.Fatalf("expected 6 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "program_id" || attrs[0].Value.AsInt64() != 1 {
		t.Fatalf("unexpected program_id attr: %+v", attrs[0])
	}
	if attrs[1].Value.AsString() != "RE-V5RC-25-5003" {
		t.Fatalf("unexpected sku attr: %+v", attrs[1])
	}
	if attrs[2].Value.Kind() != otellog.KindSlice || len(attrs[2].Value.AsSlice()) != 2 {
		t.Fatalf("unexpected candidates attr: %+v", attrs[2])
	}
	if attrs[3].Value.AsString() != "upstream down" || attrs[4].Value.AsString() != "1.5s" {
		t.Fatalf("unexpected error/duration attrs: %+v %+v", attrs[3], attrs[4])
	}
	if attrs[5].Key != "dangling" || attrs[5].Value.Kind() != otellog.KindEmpty {
		t.Fatalf("unexpected dangling attr: %+v", attrs[5])
	}
}

func TestSeverityOf(t *testing.T) {
	t.Parallel()

	if severityOf(zapcore.WarnLevel) != otellog.SeverityWarn {
		t.Fatalf("warn mapped incorrectly")
	}
	if severityOf(zapcore.ErrorLevel) != otellog.SeverityError {
		t.Fatalf("error mapped incorrectly")
	}
}
