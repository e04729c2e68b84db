package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORS_AllowsConfiguredOrigin(t *testing.T) {
	handler := CORS([]string{"https://bench.example.com"}, okHandler())

	req := httptest.NewRequest(http.MethodGet, "/v1/games", nil)
	req.Header.Set("Origin", "https://bench.example.com")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://bench.example.com" {
		t.Fatalf("unexpected Access-Control-Allow-Origin: %q", got)
	}
}

func TestCORS_OptionsPreflight(t *testing.T) {
	handler := CORS([]string{"*"}, okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/v1/games/game-1/live/actions", nil)
	req.Header.Set("Origin", "https://bench.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d", http.StatusNoContent, rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("unexpected Access-Control-Allow-Origin: %q", got)
	}
}

func TestCORS_DisallowsUnconfiguredOrigin(t *testing.T) {
	handler := CORS([]string{"https://allowed.example.com"}, okHandler())

	req := httptest.NewRequest(http.MethodGet, "/v1/games", nil)
	req.Header.Set("Origin", "https://not-allowed.example.com")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected empty Access-Control-Allow-Origin, got %q", got)
	}
}

func TestRequireInternalJobToken(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		provided   string
		want       int
	}{
		{name: "not configured", configured: "", provided: "x", want: http.StatusServiceUnavailable},
		{name: "missing header", configured: "secret", provided: "", want: http.StatusUnauthorized},
		{name: "wrong token", configured: "secret", provided: "nope", want: http.StatusUnauthorized},
		{name: "valid token", configured: "secret", provided: " secret ", want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := RequireInternalJobToken(tt.configured, okHandler())
			req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/overdue-sweep", nil)
			if tt.provided != "" {
				req.Header.Set(internalJobTokenHeader, tt.provided)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("expected status %d, got %d", tt.want, rec.Code)
			}
		})
	}
}
