package sources

import (
	"context"

	"schemetrust/internal/verification/models"
)

// LegislationClient searches the legislation registry for enabling acts.
type LegislationClient interface {
	SearchActs(ctx context.Context, query, ministry string) ([]models.SourceRecord, error)
}

// LegislationSource collects acts from the legislation registry. An enabling
// act is strong evidence of a scheme's legal basis.
type LegislationSource struct {
	client LegislationClient
}

// NewLegislationSource wraps a legislation registry client as an evidence source.
func NewLegislationSource(client LegislationClient) *LegislationSource {
	return &LegislationSource{client: client}
}

func (s *LegislationSource) Name() models.Source {
	return models.SourceLegislationRegistry
}

func (s *LegislationSource) Collect(ctx context.Context, q Query) ([]models.Evidence, error) {
	records, err := s.client.SearchActs(ctx, q.SchemeName, q.Ministry)
	if err != nil {
		return nil, NewSourceError(ErrorOutage, s.Name(), "search acts", err)
	}
	return mapRecords(s.Name(), "legislation", records), nil
}
