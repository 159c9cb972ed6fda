package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCORS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		allowed     []string
		method      string
		origin      string
		wantOrigin  string
		wantStatus  int
		wantExposed bool
	}{
		{name: "configured origin", allowed: []string{"https://scout.example.com"}, method: http.MethodGet, origin: "https://scout.example.com", wantOrigin: "https://scout.example.com", wantStatus: http.StatusOK, wantExposed: true},
		{name: "wildcard preflight", allowed: []string{" ", "*"}, method: http.MethodOptions, origin: "https://pit.example.com", wantOrigin: "*", wantStatus: http.StatusNoContent, wantExposed: true},
		{name: "unconfigured origin", allowed: []string{"https://scout.example.com"}, method: http.MethodGet, origin: "https://elsewhere.example.com", wantStatus: http.StatusOK},
		{name: "no origin header", allowed: []string{"*"}, method: http.MethodGet, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			req := httptest.NewRequest(tt.method, "/v1/programs/1/seasons", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()
			CORS(tt.allowed, next).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status=%d want=%d", rec.Code, tt.wantStatus)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Fatalf("Access-Control-Allow-Origin=%q want=%q", got, tt.wantOrigin)
			}
			exposed := rec.Header().Get("Access-Control-Expose-Headers") == requestIDHeader
			if exposed != tt.wantExposed {
				t.Fatalf("expose headers=%v want=%v", exposed, tt.wantExposed)
			}
		})
	}
}

func TestCORS_VaryOnlyForExplicitOrigins(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	req := httptest.NewRequest(http.MethodGet, "/v1/programs", nil)
	req.Header.Set("Origin", "https://scout.example.com")

	rec := httptest.NewRecorder()
	CORS([]string{"https://scout.example.com"}, next).ServeHTTP(rec, req)
	if rec.Header().Get("Vary") != "Origin" {
		t.Fatalf("expected Vary: Origin for an explicit allow-list")
	}

	rec = httptest.NewRecorder()
	CORS([]string{"*"}, next).ServeHTTP(rec, req)
	if rec.Header().Get("Vary") != "" {
		t.Fatalf("expected no Vary header for wildcard origins")
	}
}
