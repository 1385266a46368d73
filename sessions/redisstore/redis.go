// Package redisstore keeps VK sessions in Redis, relying on key expiry for the
// session TTL.
package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	vkerrors "github.com/jrsteele09/go-vk-client/internal/errors"
	"github.com/jrsteele09/go-vk-client/sessions"
	"github.com/redis/rueidis"
)

var _ sessions.Store = (*RedisStore)(nil)

// RedisStore implements sessions.Store using Redis via rueidis.
type RedisStore struct {
	client rueidis.Client
}

// NewRedisStore creates a new instance of RedisStore with the provided rueidis client.
func NewRedisStore(client rueidis.Client) *RedisStore {
	return &RedisStore{
		client: client,
	}
}

// RedisOptions contains configuration for Redis connection.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisStoreFromOptions creates a new RedisStore with simplified options.
func NewRedisStoreFromOptions(opts RedisOptions) (*RedisStore, error) {
	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress: []string{opts.Addr},
		Password:    opts.Password,
		SelectDB:    opts.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create redis client: %w", err)
	}
	return NewRedisStore(client), nil
}

// Close closes the Redis client connection.
func (r *RedisStore) Close() {
	r.client.Close()
}

// Get loads the session stored under key. Expired keys are gone from Redis, so
// they read as an empty session.
func (r *RedisStore) Get(ctx context.Context, key string) (*sessions.Session, error) {
	if key == "" {
		return nil, vkerrors.ErrEmptySessionKey
	}

	cmd := r.client.B().Get().Key(key).Build()
	result, err := r.client.Do(ctx, cmd).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return &sessions.Session{}, nil
		}
		return nil, fmt.Errorf("failed to get session from redis: %w", err)
	}

	var session sessions.Session
	if err := json.Unmarshal([]byte(result), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

// Set writes the session with SET, adding PX when ttl is positive.
func (r *RedisStore) Set(ctx context.Context, key string, session *sessions.Session, ttl time.Duration) error {
	if key == "" {
		return vkerrors.ErrEmptySessionKey
	}
	if session == nil {
		return vkerrors.ErrNilSession
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	var cmd rueidis.Completed
	if ttl > 0 {
		cmd = r.client.B().Set().Key(key).Value(string(data)).PxMilliseconds(ttl.Milliseconds()).Build()
	} else {
		cmd = r.client.B().Set().Key(key).Value(string(data)).Build()
	}
	if err := r.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("failed to save session to redis: %w", err)
	}
	return nil
}

// Delete removes the session stored under key.
func (r *RedisStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return vkerrors.ErrEmptySessionKey
	}

	cmd := r.client.B().Del().Key(key).Build()
	if err := r.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("failed to delete session from redis: %w", err)
	}
	return nil
}
