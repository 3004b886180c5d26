// Package store persists verification results behind a TTL key/value
// contract. The engine reads through it before querying registries and
// writes every freshly computed result back.
package store

import (
	"context"
	"errors"
	"time"

	"schemetrust/internal/verification/models"
)

// ErrNotFound is returned when no cached result exists for a scheme or the
// entry has expired.
var ErrNotFound = errors.New("verification result not found")

// keyPrefix namespaces result entries in shared stores.
const keyPrefix = "verification:"

// ResultStore caches verification results keyed by scheme id.
type ResultStore interface {
	// Get retrieves the cached result for a scheme.
	// Returns ErrNotFound when absent or expired.
	Get(ctx context.Context, schemeID string) (*models.VerificationResult, error)

	// Set stores a result with the given TTL, replacing any previous entry.
	Set(ctx context.Context, schemeID string, result *models.VerificationResult, ttl time.Duration) error
}

// Key returns the cache key for a scheme id.
func Key(schemeID string) string {
	return keyPrefix + schemeID
}
