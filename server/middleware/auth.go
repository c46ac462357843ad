package middleware

import (
	"crypto/subtle"
	"log"
	"net/http"
	"strings"

	"github.com/GrantCuster/extra-grantcuster-com/config"
	"github.com/GrantCuster/extra-grantcuster-com/server/resp"
	"github.com/GrantCuster/extra-grantcuster-com/server/util"
)

func extractBearerHeader(auth string) string {
	if auth == "" {
		return ""
	}

	scheme, token, ok := strings.Cut(auth, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}

	return strings.TrimSpace(token)
}

// RequireAdminToken gates a handler behind the shared admin bearer token. The
// comparison is constant time and a mismatch is rejected before any request
// body is read.
func RequireAdminToken(cfg *config.Config, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerHeader(r.Header.Get("Authorization"))
		if token == "" {
			resp.WriteForbidden(w, "An access token is required")
			return
		}

		if subtle.ConstantTimeCompare([]byte(token), []byte(cfg.Auth.AdminToken)) != 1 {
			resp.WriteForbidden(w, "Token validation failed")
			return
		}

		rl := util.WithRequest(log.Default(), r)
		next.ServeHTTP(w, r.WithContext(util.ContextWithLogger(r.Context(), rl)))
	})
}
