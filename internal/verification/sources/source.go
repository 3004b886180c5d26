// Package sources adapts the five registry clients into a uniform
// evidence-collection capability. Every adapter maps loosely-shaped upstream
// records into models.Evidence tagged with the registry's fixed trust weight.
package sources

import (
	"context"

	"schemetrust/internal/verification/models"
)

// Query carries the search input shared by all registries.
type Query struct {
	SchemeName string
	Ministry   string // optional, narrows gazette/legislation/parliament searches
}

// EvidenceSource is the universal interface every registry adapter
// implements. Keeping the aggregator source-count-agnostic means adding a
// sixth registry is a new adapter, not a new engine method.
type EvidenceSource interface {
	// Name returns the registry this adapter collects from.
	Name() models.Source

	// Collect searches the registry and maps matches to evidence items.
	Collect(ctx context.Context, q Query) ([]models.Evidence, error)
}
