package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"todoapp/internal/models"
)

const redisKeyPrefix = "session:"

// RedisStore persists sessions in Redis so they survive restarts and are
// shared across server instances. Expiry rides on the key TTL, which makes
// the sliding refresh a single EXPIRE call.
type RedisStore struct {
	client *redis.Client
	now    func() time.Time
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, now: time.Now}
}

func key(token string) string {
	return redisKeyPrefix + token
}

func (s *RedisStore) Create(ctx context.Context, sess models.Session) error {
	ttl := sess.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return fmt.Errorf("create session: expiry %v is in the past", sess.ExpiresAt)
	}
	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, key(sess.Token), payload, ttl).Err(); err != nil {
		return fmt.Errorf("set session: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, token string) (*models.Session, error) {
	payload, err := s.client.Get(ctx, key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	var sess models.Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	// The key TTL is authoritative; the stored ExpiresAt goes stale after
	// a Refresh, so re-derive it for callers that look at it.
	if ttl, err := s.client.TTL(ctx, key(token)).Result(); err == nil && ttl > 0 {
		sess.ExpiresAt = s.now().Add(ttl)
	}
	return &sess, nil
}

func (s *RedisStore) Refresh(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	// Expire on a missing key is a no-op, matching the idempotent contract.
	if err := s.client.Expire(ctx, key(token), ttl).Err(); err != nil {
		return fmt.Errorf("refresh session: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, key(token)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
