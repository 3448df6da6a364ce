package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/avikbasu/healthlog/internal/models"
	"github.com/avikbasu/healthlog/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "healthlog-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func TestSQLiteStoreUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateUser and look up by username and id", func(t *testing.T) {
		user := models.NewUser("alice", "alice@example.com", "hashed")
		if err := store.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}

		byName, err := store.GetUserByUsername(ctx, "alice")
		if err != nil {
			t.Fatalf("GetUserByUsername failed: %v", err)
		}
		if byName == nil || byName.ID != user.ID {
			t.Fatalf("expected user %s, got %+v", user.ID, byName)
		}
		if byName.PasswordHash != "hashed" {
			t.Errorf("expected password hash to round-trip, got %q", byName.PasswordHash)
		}

		byID, err := store.GetUserByID(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetUserByID failed: %v", err)
		}
		if byID == nil || byID.Username != "alice" {
			t.Fatalf("expected alice, got %+v", byID)
		}
	})

	t.Run("unknown user is nil, not an error", func(t *testing.T) {
		user, err := store.GetUserByUsername(ctx, "nobody")
		if err != nil {
			t.Fatalf("GetUserByUsername failed: %v", err)
		}
		if user != nil {
			t.Errorf("expected nil user, got %+v", user)
		}
	})

	t.Run("duplicate username is rejected", func(t *testing.T) {
		first := models.NewUser("bob", "", "hash1")
		if err := store.CreateUser(ctx, first); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}

		second := models.NewUser("bob", "", "hash2")
		err := store.CreateUser(ctx, second)
		if !errors.Is(err, storage.ErrDuplicateUser) {
			t.Fatalf("expected ErrDuplicateUser, got %v", err)
		}

		// The original record is untouched.
		existing, err := store.GetUserByUsername(ctx, "bob")
		if err != nil {
			t.Fatalf("GetUserByUsername failed: %v", err)
		}
		if existing.ID != first.ID {
			t.Errorf("expected original user %s to survive, got %s", first.ID, existing.ID)
		}
	})

	t.Run("usernames are case-sensitive", func(t *testing.T) {
		if err := store.CreateUser(ctx, models.NewUser("Carol", "", "h")); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		if err := store.CreateUser(ctx, models.NewUser("carol", "", "h")); err != nil {
			t.Fatalf("expected distinct case to register, got %v", err)
		}
	})
}

func TestSQLiteStoreDocuments(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("absent document reads as nil without error", func(t *testing.T) {
		data, err := store.ReadDoc(ctx, "u1", "weight")
		if err != nil {
			t.Fatalf("ReadDoc failed: %v", err)
		}
		if data != nil {
			t.Errorf("expected nil for absent document, got %q", data)
		}
	})

	t.Run("write then read round-trips", func(t *testing.T) {
		payload := []byte(`[{"id":1,"date":"2024-01-01","weight":80}]`)
		if err := store.WriteDoc(ctx, "u1", "weight", payload); err != nil {
			t.Fatalf("WriteDoc failed: %v", err)
		}

		data, err := store.ReadDoc(ctx, "u1", "weight")
		if err != nil {
			t.Fatalf("ReadDoc failed: %v", err)
		}
		if string(data) != string(payload) {
			t.Errorf("expected %q, got %q", payload, data)
		}
	})

	t.Run("write replaces the whole document", func(t *testing.T) {
		if err := store.WriteDoc(ctx, "u1", "weight", []byte(`[]`)); err != nil {
			t.Fatalf("WriteDoc failed: %v", err)
		}

		data, err := store.ReadDoc(ctx, "u1", "weight")
		if err != nil {
			t.Fatalf("ReadDoc failed: %v", err)
		}
		if string(data) != `[]` {
			t.Errorf("expected full replace, got %q", data)
		}
	})

	t.Run("documents are isolated per user and collection", func(t *testing.T) {
		if err := store.WriteDoc(ctx, "userA", "nutrition", []byte(`["a"]`)); err != nil {
			t.Fatalf("WriteDoc failed: %v", err)
		}
		if err := store.WriteDoc(ctx, "userB", "nutrition", []byte(`["b"]`)); err != nil {
			t.Fatalf("WriteDoc failed: %v", err)
		}

		data, err := store.ReadDoc(ctx, "userA", "nutrition")
		if err != nil {
			t.Fatalf("ReadDoc failed: %v", err)
		}
		if string(data) != `["a"]` {
			t.Errorf("userA document leaked: %q", data)
		}

		other, err := store.ReadDoc(ctx, "userA", "diet")
		if err != nil {
			t.Fatalf("ReadDoc failed: %v", err)
		}
		if other != nil {
			t.Errorf("expected no diet document for userA, got %q", other)
		}
	})
}
