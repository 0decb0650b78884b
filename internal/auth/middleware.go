package auth

import (
	"net/http"
	"strings"

	"github.com/leadforge/leadforge/internal/platform/httpx"
	"github.com/leadforge/leadforge/internal/shared"
)

// RequireAuth rejects requests without a valid bearer token and stores the
// verified actor in the request context.
func RequireAuth(tokens *TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "Authentication credentials were not provided.")
				return
			}
			actor, err := tokens.Verify(raw)
			if err != nil {
				httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "Invalid or expired token.")
				return
			}
			next.ServeHTTP(w, r.WithContext(shared.ContextWithActor(r.Context(), actor)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(header[len(prefix):]), true
}
