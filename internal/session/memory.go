package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Ensure MemoryStore implements Store
var _ Store = (*MemoryStore)(nil)

type memorySession struct {
	session   Session
	expiresAt time.Time
}

// MemoryStore keeps sessions in an in-process map. Suitable for a single
// instance; multi-instance deployments should use RedisStore instead.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memorySession
	ttl      time.Duration
	now      func() time.Time
}

// NewMemoryStore creates a memory-backed session store with the given
// lifetime. Pass DefaultTTL outside of tests.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memorySession),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create issues a new token for the user.
func (s *MemoryStore) Create(ctx context.Context, userID, username string) (string, error) {
	token := uuid.New().String()

	s.mu.Lock()
	s.sessions[token] = memorySession{
		session:   Session{UserID: userID, Username: username},
		expiresAt: s.now().Add(s.ttl),
	}
	s.mu.Unlock()

	return token, nil
}

// Resolve returns the session for the token. Expired sessions resolve
// exactly like unknown ones and are removed lazily.
func (s *MemoryStore) Resolve(ctx context.Context, token string) (*Session, error) {
	s.mu.RLock()
	entry, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrUnauthenticated
	}
	if s.now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, ErrUnauthenticated
	}

	sess := entry.session
	return &sess, nil
}

// Destroy removes the session if present.
func (s *MemoryStore) Destroy(ctx context.Context, token string) error {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
	return nil
}
