// Package session implements opaque session tokens binding requests to
// user identities. Every protected operation resolves its token through a
// Store before touching any per-user data.
package session

import (
	"context"
	"errors"
	"time"
)

// DefaultTTL is the absolute session lifetime. Sessions are not renewed on
// use; resolve fails once the window elapses.
const DefaultTTL = 24 * time.Hour

// ErrUnauthenticated is returned when a token is unknown or expired.
// The two cases are indistinguishable to the caller.
var ErrUnauthenticated = errors.New("not authenticated")

// Session is the identity a valid token resolves to.
type Session struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

// Store issues and resolves session tokens. A user may hold any number of
// concurrent sessions; each token maps to exactly one session.
type Store interface {
	// Create issues a new opaque, unguessable token for the user.
	Create(ctx context.Context, userID, username string) (string, error)

	// Resolve returns the session for the token, or ErrUnauthenticated if
	// the token is unknown or expired.
	Resolve(ctx context.Context, token string) (*Session, error)

	// Destroy removes the session. Destroying an absent session is not an
	// error; destruction is idempotent.
	Destroy(ctx context.Context, token string) error
}
