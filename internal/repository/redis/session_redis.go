package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/trackventory/gateway/internal/repository"
)

// RedisSessionRepository implements SessionRepository using Redis. It is
// meant for running several gateway replicas behind one load balancer;
// single-instance deployments use the in-memory repository instead.
type RedisSessionRepository struct {
	client *redis.Client
}

// Helper to construct the session key
func makeSessionKey(sessionID string) string {
	return fmt.Sprintf("gw_session:%s", sessionID)
}

func NewRedisSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

// Put saves the payload under the session key with the backstop TTL.
func (r *RedisSessionRepository) Put(ctx context.Context, sessionID string, payload []byte, ttl time.Duration) error {
	if sessionID == "" {
		return errors.New("session ID must be set")
	}
	if ttl < 0 {
		ttl = 0
	}

	if err := r.client.Set(ctx, makeSessionKey(sessionID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis SET failed: %w", err)
	}
	return nil
}

// Get retrieves the payload; expired keys are handled by Redis TTL.
func (r *RedisSessionRepository) Get(ctx context.Context, sessionID string) ([]byte, error) {
	payload, err := r.client.Get(ctx, makeSessionKey(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, repository.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis GET failed: %w", err)
	}
	return payload, nil
}

// Delete removes the session key; absent keys are ignored.
func (r *RedisSessionRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, makeSessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis DEL failed: %w", err)
	}
	return nil
}

var _ repository.SessionRepository = (*RedisSessionRepository)(nil)
