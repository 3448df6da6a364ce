package auth

import (
	"context"

	"github.com/avikbasu/healthlog/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between different auth methods (password,
// passkeys, OAuth, etc.) without changing the handler code.
type Authenticator interface {
	// Register creates a new user account. Email is optional.
	// Returns the created user or an error if registration fails.
	Register(ctx context.Context, username, password, email string) (*models.User, error)

	// Authenticate verifies the user's credentials and returns the user if
	// successful. Returns an error if authentication fails.
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
}
