// File: services/session/store.go
package session

import (
	"context"
	"encoding/json"
	"time"

	"frontdesk/models"

	"github.com/go-redis/redis/v8"
)

const sessionPrefix = "fd:session:"

// Store loads and saves dialogue sessions between turns. Load returns nil
// when no session exists; Save writes the whole session in one SET so a turn
// either lands completely or not at all.
type Store interface {
	Load(ctx context.Context, sessionID string) (*models.Session, error)
	Save(ctx context.Context, s *models.Session) error
	Delete(ctx context.Context, sessionID string) error
}

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Load(ctx context.Context, sessionID string) (*models.Session, error) {
	key := sessionPrefix + sessionID
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var sess models.Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *RedisStore) Save(ctx context.Context, sess *models.Session) error {
	sess.UpdatedAt = time.Now()
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionPrefix+sess.ID, b, s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionPrefix+sessionID).Err()
}
