package store

import (
	"context"
	"sync"
	"time"

	"schemetrust/internal/verification/models"
)

type cachedResult struct {
	result    models.VerificationResult
	expiresAt time.Time
}

// MemoryStore is an in-memory ResultStore with per-entry TTL expiration.
// Suitable for single-process deployments and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]cachedResult
}

// NewMemoryStore creates an empty in-memory result store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]cachedResult),
	}
}

// Get retrieves a cached result. Returns ErrNotFound when the entry does not
// exist or has expired.
func (s *MemoryStore) Get(_ context.Context, schemeID string) (*models.VerificationResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if cached, ok := s.entries[Key(schemeID)]; ok {
		if time.Now().Before(cached.expiresAt) {
			result := cached.result
			return &result, nil
		}
	}
	return nil, ErrNotFound
}

// Set stores a result with the given TTL. A nil result is a no-op.
func (s *MemoryStore) Set(_ context.Context, schemeID string, result *models.VerificationResult, ttl time.Duration) error {
	if result == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[Key(schemeID)] = cachedResult{
		result:    *result,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}
