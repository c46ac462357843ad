package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GrantCuster/extra-grantcuster-com/config"
)

func corsConfig(debug bool, origins ...string) *config.Config {
	return &config.Config{
		Debug:  debug,
		Server: config.Server{AllowedOrigins: origins},
	}
}

func TestAllowCORS_AllowedOrigin(t *testing.T) {
	handler := AllowCORS(corsConfig(false, "https://extra.example.com"), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/files", nil)
	req.Header.Set("Origin", "https://extra.example.com")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://extra.example.com" {
		t.Fatalf("unexpected allow-origin header: %q", got)
	}
}

func TestAllowCORS_UnknownOrigin(t *testing.T) {
	handler := AllowCORS(corsConfig(false, "https://extra.example.com"), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/files", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("unexpected allow-origin header for unknown origin: %q", got)
	}
}

func TestAllowCORS_DebugAllowsAnyOrigin(t *testing.T) {
	handler := AllowCORS(corsConfig(true), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/files", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("expected debug to reflect any origin, got %q", got)
	}
}

func TestAllowCORS_PreflightShortCircuits(t *testing.T) {
	handler := AllowCORS(corsConfig(false, "https://extra.example.com"), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("preflight must not reach the handler")
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/upload", nil)
	req.Header.Set("Origin", "https://extra.example.com")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); got == "" {
		t.Fatalf("expected allow-methods header on preflight")
	}
}
