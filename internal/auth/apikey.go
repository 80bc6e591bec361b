// Package auth guards the administrative endpoints with a pre-shared API key.
package auth

import (
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/itbizone/itbizone-api/internal/platform/httpx"
)

// HeaderAPIKey carries the admin key on protected requests.
const HeaderAPIKey = "X-Admin-Key"

// APIKeyGate compares the request key against a bcrypt hash of the admin key.
// With no hash configured the gate stays closed, so a missing deployment
// secret can never expose the admin surface.
type APIKeyGate struct {
	hash   []byte
	logger *slog.Logger
}

// NewAPIKeyGate constructs the gate from the configured bcrypt hash.
func NewAPIKeyGate(hash string, logger *slog.Logger) *APIKeyGate {
	return &APIKeyGate{hash: []byte(hash), logger: logger}
}

// Middleware rejects requests without a matching admin key.
func (g *APIKeyGate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(g.hash) == 0 {
			g.logger.Warn("admin endpoint hit with no admin key configured",
				slog.String("path", r.URL.Path))
			httpx.Fail(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		key := r.Header.Get(HeaderAPIKey)
		if key == "" {
			httpx.Fail(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		if err := bcrypt.CompareHashAndPassword(g.hash, []byte(key)); err != nil {
			httpx.Fail(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}
