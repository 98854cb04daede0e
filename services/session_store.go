// file: services/session_store.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrSessionNotFound covers unknown ids and expired sessions alike.
var ErrSessionNotFound = errors.New("registration session not found")

// SessionStore holds in-progress registrations. Nothing reaches MySQL until
// payment verification succeeds; abandoned sessions simply expire.
type SessionStore interface {
	Get(ctx context.Context, id string) (*FormSession, error)
	Save(ctx context.Context, s *FormSession) error
	Delete(ctx context.Context, id string) error
}

const sessionKeyPrefix = "gen201:regsession:"

type RedisSessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisSessionStore(rdb *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb, ttl: 2 * time.Hour}
}

func (s *RedisSessionStore) Get(ctx context.Context, id string) (*FormSession, error) {
	raw, err := s.rdb.Get(ctx, sessionKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	var sess FormSession
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *RedisSessionStore) Save(ctx context.Context, sess *FormSession) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	// TTL refreshes on every save, so active users never lose a session.
	return s.rdb.Set(ctx, sessionKeyPrefix+sess.ID, raw, s.ttl).Err()
}

func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, sessionKeyPrefix+id).Err()
}
