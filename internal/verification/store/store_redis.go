package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"schemetrust/internal/verification/models"
)

// RedisStore is a Redis-backed ResultStore. This is the recommended
// implementation for distributed deployments where multiple verifier
// instances share cached results.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore constructs a Redis-backed result store. The client lifecycle
// is managed externally.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Get retrieves and decodes a cached result. Returns ErrNotFound when the
// key is absent; Redis handles TTL expiry itself.
func (s *RedisStore) Get(ctx context.Context, schemeID string) (*models.VerificationResult, error) {
	payload, err := s.client.Get(ctx, Key(schemeID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get verification result: %w", err)
	}

	var result models.VerificationResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("decode verification result: %w", err)
	}
	return &result, nil
}

// Set serializes a result and stores it with the given TTL using an atomic
// set-with-expiry.
func (s *RedisStore) Set(ctx context.Context, schemeID string, result *models.VerificationResult, ttl time.Duration) error {
	if result == nil {
		return nil
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode verification result: %w", err)
	}
	if err := s.client.Set(ctx, Key(schemeID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("set verification result: %w", err)
	}
	return nil
}
