package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	r "github.com/redis/go-redis/v9"
	"github.com/scienceol/labportal/pkg/common/uuid"
)

const (
	sessionPrefix = "labportal:session:"
	flashPrefix   = "labportal:flash:"
)

type Data struct {
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	IsStaff   bool      `json:"is_staff"`
	CreatedAt time.Time `json:"created_at"`
}

type Store interface {
	Create(ctx context.Context, data *Data) (string, error)
	// Get returns nil, nil for an unknown or expired session.
	Get(ctx context.Context, id string) (*Data, error)
	Delete(ctx context.Context, id string) error
	AddFlash(ctx context.Context, id string, msg string) error
	// PopFlashes returns pending messages once and clears them.
	PopFlashes(ctx context.Context, id string) ([]string, error)
}

type redisStore struct {
	client r.UniversalClient
	ttl    time.Duration
}

func NewRedisStore(client r.UniversalClient, ttl time.Duration) Store {
	return &redisStore{client: client, ttl: ttl}
}

func (s *redisStore) Create(ctx context.Context, data *Data) (string, error) {
	if data.CreatedAt.IsZero() {
		data.CreatedAt = time.Now()
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	id := uuid.NewV4().String()
	if err := s.client.Set(ctx, sessionPrefix+id, raw, s.ttl).Err(); err != nil {
		return "", err
	}
	return id, nil
}

func (s *redisStore) Get(ctx context.Context, id string) (*Data, error) {
	if id == "" {
		return nil, nil
	}
	raw, err := s.client.Get(ctx, sessionPrefix+id).Bytes()
	if errors.Is(err, r.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	data := &Data{}
	if err := json.Unmarshal(raw, data); err != nil {
		return nil, err
	}
	return data, nil
}

func (s *redisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, sessionPrefix+id, flashPrefix+id).Err()
}

func (s *redisStore) AddFlash(ctx context.Context, id string, msg string) error {
	key := flashPrefix + id
	_, err := s.client.TxPipelined(ctx, func(pipe r.Pipeliner) error {
		pipe.RPush(ctx, key, msg)
		pipe.Expire(ctx, key, s.ttl)
		return nil
	})
	return err
}

func (s *redisStore) PopFlashes(ctx context.Context, id string) ([]string, error) {
	key := flashPrefix + id
	var lr *r.StringSliceCmd
	_, err := s.client.TxPipelined(ctx, func(pipe r.Pipeliner) error {
		lr = pipe.LRange(ctx, key, 0, -1)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lr.Val(), nil
}
