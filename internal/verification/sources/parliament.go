package sources

import (
	"context"

	"schemetrust/internal/verification/models"
)

// ParliamentClient searches parliamentary records for bills and acts.
type ParliamentClient interface {
	SearchBills(ctx context.Context, query, ministry string) ([]models.SourceRecord, error)
}

// ParliamentSource collects bill and act records from parliament. These
// matter most when a scheme was established through legislation rather than
// an executive order.
type ParliamentSource struct {
	client ParliamentClient
}

// NewParliamentSource wraps a parliamentary-records client as an evidence source.
func NewParliamentSource(client ParliamentClient) *ParliamentSource {
	return &ParliamentSource{client: client}
}

func (s *ParliamentSource) Name() models.Source {
	return models.SourceParliamentaryRecords
}

func (s *ParliamentSource) Collect(ctx context.Context, q Query) ([]models.Evidence, error) {
	records, err := s.client.SearchBills(ctx, q.SchemeName, q.Ministry)
	if err != nil {
		return nil, NewSourceError(ErrorOutage, s.Name(), "search bills", err)
	}
	return mapRecords(s.Name(), "parliamentary_record", records), nil
}
