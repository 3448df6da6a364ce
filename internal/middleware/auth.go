package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/avikbasu/healthlog/internal/session"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// SessionKey is the context key for the resolved session.
	SessionKey contextKey = "session"

	// TokenCookie is the cookie carrying the session token.
	TokenCookie = "session"
)

// GetSession extracts the resolved session from the context.
// Returns nil if the request was not authenticated.
func GetSession(ctx context.Context) *session.Session {
	sess, _ := ctx.Value(SessionKey).(*session.Session)
	return sess
}

// Token extracts the session token from the request: the session cookie
// first, then an Authorization bearer header. Returns "" if neither is set.
func Token(r *http.Request) string {
	if cookie, err := r.Cookie(TokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	authHeader := r.Header.Get("Authorization")
	if parts := strings.SplitN(authHeader, " ", 2); len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// RequireAuth resolves the request's session token and injects the session
// into the context. The token is resolved on every request, never cached,
// so destroyed and expired sessions take effect immediately. Failures are
// rejected with 401 before any other processing.
func RequireAuth(sessions session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := Token(r)
			if token == "" {
				unauthorized(w)
				return
			}

			sess, err := sessions.Resolve(r.Context(), token)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), SessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"not authenticated"}`))
}
