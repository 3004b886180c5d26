package sources

import (
	"context"

	"schemetrust/internal/verification/models"
)

// GazetteClient searches the official gazette for notifications.
type GazetteClient interface {
	SearchNotifications(ctx context.Context, query, ministry string) ([]models.SourceRecord, error)
}

// GazetteSource collects notifications from the official gazette, the
// highest-authority registry. A gazette notification is definitive proof a
// scheme was established, amended, or revoked.
type GazetteSource struct {
	client GazetteClient
}

// NewGazetteSource wraps a gazette client as an evidence source.
func NewGazetteSource(client GazetteClient) *GazetteSource {
	return &GazetteSource{client: client}
}

func (s *GazetteSource) Name() models.Source {
	return models.SourceOfficialGazette
}

func (s *GazetteSource) Collect(ctx context.Context, q Query) ([]models.Evidence, error) {
	records, err := s.client.SearchNotifications(ctx, q.SchemeName, q.Ministry)
	if err != nil {
		return nil, NewSourceError(ErrorOutage, s.Name(), "search notifications", err)
	}
	return mapRecords(s.Name(), "gazette_notification", records), nil
}

// mapRecords converts normalized registry records to evidence items tagged
// with the source's fixed weight.
func mapRecords(source models.Source, documentType string, records []models.SourceRecord) []models.Evidence {
	evidences := make([]models.Evidence, 0, len(records))
	for _, record := range records {
		evidences = append(evidences, models.NewEvidence(source, documentType, record))
	}
	return evidences
}
