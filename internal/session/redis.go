package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	inErrors "github.com/Alturino/storefront/internal/errors"
)

const keySessions = "sessions:%s"

// RedisStore persists sessions in redis with the manager's TTL so expired
// sessions vanish without a sweeper.
type RedisStore struct {
	cache *redis.Client
}

func NewRedisStore(cache *redis.Client) *RedisStore {
	return &RedisStore{cache: cache}
}

func (s *RedisStore) Save(c context.Context, session Session, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed marshaling session with error=%w", err)
	}
	err = s.cache.Set(c, fmt.Sprintf(keySessions, session.ID.String()), payload, ttl).Err()
	if err != nil {
		return fmt.Errorf("failed saving session to cache with error=%w", err)
	}
	return nil
}

func (s *RedisStore) Find(c context.Context, id uuid.UUID) (Session, error) {
	payload, err := s.cache.Get(c, fmt.Sprintf(keySessions, id.String())).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Session{}, inErrors.ErrSessionNotFound
		}
		return Session{}, fmt.Errorf("failed finding session in cache with error=%w", err)
	}
	session := Session{}
	err = json.Unmarshal([]byte(payload), &session)
	if err != nil {
		return Session{}, fmt.Errorf("failed unmarshaling session with error=%w", err)
	}
	return session, nil
}

func (s *RedisStore) Delete(c context.Context, id uuid.UUID) error {
	err := s.cache.Del(c, fmt.Sprintf(keySessions, id.String())).Err()
	if err != nil {
		return fmt.Errorf("failed deleting session from cache with error=%w", err)
	}
	return nil
}
