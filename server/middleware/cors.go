package middleware

import (
	"net/http"
	"slices"

	"github.com/GrantCuster/extra-grantcuster-com/config"
)

// AllowCORS reflects the request origin when it is on the configured
// allow-list, or unconditionally when debug is set. Preflight requests are
// answered here and never reach the handler.
func AllowCORS(cfg *config.Config, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && (cfg.Debug || slices.Contains(cfg.Server.AllowedOrigins, origin)) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
			w.Header().Add("Vary", "Origin")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
