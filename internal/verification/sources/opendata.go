package sources

import (
	"context"
	"time"

	"schemetrust/internal/verification/models"
)

// Dataset relevance is looser than the portal's: expenditure and beneficiary
// datasets rarely repeat the full scheme name.
const openDataMatchThreshold = 0.4

// defaultDatasetLimit bounds one dataset search.
const defaultDatasetLimit = 10

// DatasetRecord is one dataset entry from the open-data platform.
type DatasetRecord struct {
	ResourceID  string
	Title       string
	Description string
	URL         string
	Org         string
	Sector      string
	UpdatedDate *time.Time
}

// OpenDataClient searches the open-data platform for datasets.
type OpenDataClient interface {
	SearchDatasets(ctx context.Context, query string, limit int) ([]DatasetRecord, error)
}

// OpenDataSource collects supplementary evidence from the open-data
// platform: a dataset mentioning the scheme suggests it is operational.
type OpenDataSource struct {
	client OpenDataClient
	limit  int
}

// NewOpenDataSource wraps an open-data client as an evidence source.
func NewOpenDataSource(client OpenDataClient) *OpenDataSource {
	return &OpenDataSource{client: client, limit: defaultDatasetLimit}
}

func (s *OpenDataSource) Name() models.Source {
	return models.SourceOpenDataPlatform
}

func (s *OpenDataSource) Collect(ctx context.Context, q Query) ([]models.Evidence, error) {
	datasets, err := s.client.SearchDatasets(ctx, q.SchemeName, s.limit)
	if err != nil {
		return nil, NewSourceError(ErrorOutage, s.Name(), "search datasets", err)
	}

	var evidences []models.Evidence
	for _, dataset := range datasets {
		if nameTokenOverlap(q.SchemeName, dataset.Title) < openDataMatchThreshold {
			continue
		}
		evidences = append(evidences, models.NewEvidence(s.Name(), "government_dataset", models.SourceRecord{
			URL:              dataset.URL,
			Title:            dataset.Title,
			DocumentID:       dataset.ResourceID,
			Date:             dataset.UpdatedDate,
			Snippet:          dataset.Description,
			StatusIndication: "active",
			Metadata: map[string]string{
				"org":    dataset.Org,
				"sector": dataset.Sector,
			},
		}))
	}
	return evidences, nil
}
