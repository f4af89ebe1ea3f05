package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/madhupandey29/shopy-admin-api/internal/draft"
)

const draftKeyPrefix = "draft:base:"

// RedisStore is the default staged-record store. Records are JSON under one
// key per session; ttl zero keeps them until overwritten or submitted.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Put(ctx context.Context, key string, rec *draft.StagedRecord) error {
	buf, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode staged record: %w", err)
	}
	if err := s.client.Set(ctx, draftKeyPrefix+key, buf, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store staged record: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (*draft.StagedRecord, error) {
	buf, err := s.client.Get(ctx, draftKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, ErrNotStaged
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load staged record: %w", err)
	}

	var rec draft.StagedRecord
	if err := json.Unmarshal(buf, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode staged record: %w", err)
	}
	return &rec, nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, draftKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to clear staged record: %w", err)
	}
	return nil
}
