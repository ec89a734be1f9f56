package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps sessions in Redis so they survive restarts and can be
// shared by multiple web instances.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to redis with short timeouts.
func NewRedisStore(addr string, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  1 * time.Second,
		WriteTimeout: 1 * time.Second,
	})
	return &RedisStore{client: client, ttl: ttl}
}

func sessionKey(sid string) string { return "attendweb:session:" + sid }

// Get returns the session for sid if present.
func (s *RedisStore) Get(ctx context.Context, sid string) (Session, bool, error) {
	raw, err := s.client.Get(ctx, sessionKey(sid)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Session{}, false, nil
	}
	if err != nil {
		return Session{}, false, fmt.Errorf("session get: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return Session{}, false, fmt.Errorf("session decode: %w", err)
	}
	return sess, true, nil
}

// Put stores the session, resetting its TTL.
func (s *RedisStore) Put(ctx context.Context, sid string, sess Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("session encode: %w", err)
	}
	return s.client.Set(ctx, sessionKey(sid), raw, s.ttl).Err()
}

// Delete removes the session.
func (s *RedisStore) Delete(ctx context.Context, sid string) error {
	return s.client.Del(ctx, sessionKey(sid)).Err()
}

// Healthy verifies redis connectivity.
func (s *RedisStore) Healthy(ctx context.Context) bool {
	if s == nil || s.client == nil {
		return false
	}
	return s.client.Ping(ctx).Err() == nil
}
