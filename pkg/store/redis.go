package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/alemhq/alem/pkg/errorsx"
	"github.com/alemhq/alem/pkg/triage"
)

const (
	sessionKeyPrefix = "alem:session:"
	defaultTTL       = 24 * time.Hour
)

// RedisStore persists sessions as JSON values with a sliding TTL, so idle
// conversations expire on their own.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

// Load implements Store. Reads refresh the TTL so active conversations stay
// alive.
func (s *RedisStore) Load(ctx context.Context, id string) (*triage.Session, error) {
	val, err := s.client.Get(ctx, s.key(id)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, errorsx.Wrap(err, errorsx.ReasonStoreLoad)
	}

	var sess triage.Session
	if err := json.Unmarshal([]byte(val), &sess); err != nil {
		return nil, errorsx.Wrap(err, errorsx.ReasonStoreLoad)
	}
	_ = s.client.Expire(ctx, s.key(id), s.ttl).Err()
	return &sess, nil
}

// Save implements Store.
func (s *RedisStore) Save(ctx context.Context, id string, sess *triage.Session) error {
	val, err := json.Marshal(sess)
	if err != nil {
		return errorsx.Wrap(err, errorsx.ReasonStoreSave)
	}
	if err := s.client.Set(ctx, s.key(id), val, s.ttl).Err(); err != nil {
		return errorsx.Wrap(err, errorsx.ReasonStoreSave)
	}
	return nil
}

// Clear implements Store.
func (s *RedisStore) Clear(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return errorsx.Wrap(err, errorsx.ReasonStoreClear)
	}
	return nil
}

// Close implements Store.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) key(id string) string {
	return sessionKeyPrefix + id
}
