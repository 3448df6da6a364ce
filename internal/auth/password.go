package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/avikbasu/healthlog/internal/models"
	"github.com/avikbasu/healthlog/internal/storage"
)

var (
	// ErrInvalidCredentials is returned for a wrong password and for an
	// unknown username alike, so callers cannot enumerate usernames.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrMissingFields is returned when username or password is empty.
	ErrMissingFields = errors.New("username and password are required")
)

// Seeder initializes a new user's default collections after registration.
type Seeder interface {
	InitUser(ctx context.Context, userID string) error
}

// PasswordAuthenticator implements password-based authentication using bcrypt.
type PasswordAuthenticator struct {
	storage storage.UserStore
	seeder  Seeder
}

// NewPasswordAuthenticator creates a new password-based authenticator.
// seeder may be nil if no collections should be initialized on registration.
func NewPasswordAuthenticator(storage storage.UserStore, seeder Seeder) *PasswordAuthenticator {
	return &PasswordAuthenticator{
		storage: storage,
		seeder:  seeder,
	}
}

// Register creates a new user account with a hashed password.
// Input is validated before any storage access; the raw password is hashed
// through bcrypt and never persisted or logged.
func (a *PasswordAuthenticator) Register(ctx context.Context, username, password, email string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, ErrMissingFields
	}

	// Friendly fast path; the UNIQUE constraint in storage is what makes
	// the check-and-insert race free.
	existing, err := a.storage.GetUserByUsername(ctx, username)
	if err == nil && existing != nil {
		return nil, ErrUsernameTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.NewUser(username, email, string(hashed))

	if err := a.storage.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrDuplicateUser) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Seed default collections so a fresh account reads consistently.
	// Reads fall back to empty anyway, so a seed failure is not fatal.
	if a.seeder != nil {
		if err := a.seeder.InitUser(ctx, user.ID); err != nil {
			slog.Warn("failed to seed default collections", "user_id", user.ID, "error", err)
		}
	}

	return user, nil
}

// Authenticate verifies the username and password, returning the user if
// valid. Unknown usernames and wrong passwords fail identically.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := a.storage.GetUserByUsername(ctx, username)
	if err != nil || user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
