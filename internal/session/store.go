package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"memberportal/internal/model"
)

const keyPrefix = "session:"

// Store is an interface that defines the methods required for session persistence.
type Store interface {
	// Save persists a session record under its token for at most ttl.
	Save(ctx context.Context, sess *model.Session, ttl time.Duration) (err error)

	// Get retrieves a session record by token. It returns nil, nil when no
	// record exists (unknown token or already expired by the store).
	Get(ctx context.Context, token string) (sess *model.Session, err error)

	// Delete destroys the session record for the given token.
	Delete(ctx context.Context, token string) (err error)
}

// RedisStore implements the Store interface on a Redis server.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a new RedisStore instance with the provided client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
	}
}

func (rs *RedisStore) Save(ctx context.Context, sess *model.Session, ttl time.Duration) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := rs.client.Set(ctx, keyPrefix+sess.Token, payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

func (rs *RedisStore) Get(ctx context.Context, token string) (*model.Session, error) {
	payload, err := rs.client.Get(ctx, keyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var sess model.Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}

	return &sess, nil
}

func (rs *RedisStore) Delete(ctx context.Context, token string) error {
	if err := rs.client.Del(ctx, keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}
