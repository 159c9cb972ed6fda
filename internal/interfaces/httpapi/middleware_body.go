package httpapi

import (
	"bytes"
	"io"
	"net/http"
	"unicode/utf8"

	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const defaultRequestBodyMaxBytes = 8192

// CaptureRequestBody copies up to maxBytes of a request body onto the active
// span. The handler still sees the full body.
func CaptureRequestBody(enabled bool, maxBytes int, next http.Handler) http.Handler {
	if !enabled {
		return next
	}
	if maxBytes <= 0 {
		maxBytes = defaultRequestBodyMaxBytes
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		span := trace.SpanFromContext(r.Context())
		if r.Body == nil || r.Body == http.NoBody || !span.IsRecording() {
			next.ServeHTTP(w, r)
			return
		}

		buf := bytebufferpool.Get()
		defer bytebufferpool.Put(buf)

		n, err := buf.ReadFrom(io.LimitReader(r.Body, int64(maxBytes)+1))
		if err != nil {
			span.SetAttributes(attribute.String("http.request.body.error", err.Error()))
		}
		captured := append([]byte(nil), buf.B...)
		r.Body = struct {
			io.Reader
			io.Closer
		}{io.MultiReader(bytes.NewReader(captured), r.Body), r.Body}

		truncated := n > int64(maxBytes)
		if truncated {
			captured = captured[:maxBytes]
		}
		span.SetAttributes(
			attribute.String("http.request.body", printableBody(captured)),
			attribute.Bool("http.request.body.truncated", truncated),
		)
		next.ServeHTTP(w, r)
	})
}

func printableBody(b []byte) string {
	for !utf8.Valid(b) && len(b) > 0 {
		b = b[:len(b)-1]
	}
	return string(b)
}
