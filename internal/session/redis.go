package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Ensure RedisStore implements Store
var _ Store = (*RedisStore)(nil)

const redisKeyPrefix = "session:"

// RedisStore keeps sessions in Redis so they survive restarts and can be
// shared across instances. Expiry is enforced by Redis key TTLs.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore wraps the given client as a session store.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

// Create issues a new token for the user.
func (s *RedisStore) Create(ctx context.Context, userID, username string) (string, error) {
	token := uuid.New().String()

	data, err := json.Marshal(Session{UserID: userID, Username: username})
	if err != nil {
		return "", fmt.Errorf("encode session: %w", err)
	}
	if err := s.rdb.Set(ctx, redisKeyPrefix+token, data, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

// Resolve returns the session for the token. Expired keys are gone from
// Redis, so expiry and absence are already the same case.
func (s *RedisStore) Resolve(ctx context.Context, token string) (*Session, error) {
	data, err := s.rdb.Get(ctx, redisKeyPrefix+token).Bytes()
	if err == redis.Nil {
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &sess, nil
}

// Destroy removes the session if present.
func (s *RedisStore) Destroy(ctx context.Context, token string) error {
	if err := s.rdb.Del(ctx, redisKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// NewRedisClient creates and pings a Redis client with optional password auth.
func NewRedisClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return rdb, nil
}
