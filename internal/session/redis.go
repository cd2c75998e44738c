package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
)

// DefaultSessionTTL expires abandoned sessions; a disconnected user's
// state is simply overwritten on the next trigger phrase anyway.
const DefaultSessionTTL = 30 * time.Minute

const redisKeyPrefix = "session:"

// RedisStore keeps sessions in Redis so multiple bot instances share
// dialogue state.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed session store and verifies the
// connection.
func NewRedisStore(addr, password string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		slog.Error("Redis ping failed", "error", err, "addr", addr)
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	slog.Debug("Redis session store connected", "addr", addr)
	return &RedisStore{client: client, ttl: DefaultSessionTTL}, nil
}

func (s *RedisStore) Get(ctx context.Context, userID string) (*Session, error) {
	data, err := s.client.Get(ctx, redisKeyPrefix+userID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		slog.Error("RedisStore Get failed", "error", err, "userID", userID)
		return nil, fmt.Errorf("failed to get session for %s: %w", userID, err)
	}
	var sess Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		slog.Error("RedisStore Get unmarshal failed", "error", err, "userID", userID)
		return nil, fmt.Errorf("failed to decode session for %s: %w", userID, err)
	}
	return &sess, nil
}

func (s *RedisStore) Set(ctx context.Context, sess *Session) error {
	sess.UpdatedAt = time.Now()
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session for %s: %w", sess.UserID, err)
	}
	if err := s.client.Set(ctx, redisKeyPrefix+sess.UserID, data, s.ttl).Err(); err != nil {
		slog.Error("RedisStore Set failed", "error", err, "userID", sess.UserID)
		return fmt.Errorf("failed to store session for %s: %w", sess.UserID, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, redisKeyPrefix+userID).Err(); err != nil {
		slog.Error("RedisStore Delete failed", "error", err, "userID", userID)
		return fmt.Errorf("failed to delete session for %s: %w", userID, err)
	}
	return nil
}
