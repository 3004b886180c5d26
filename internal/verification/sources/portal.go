package sources

import (
	"context"
	"strings"
	"time"

	"schemetrust/internal/verification/models"
)

// portalMatchThreshold is the minimum name-token overlap for a catalogue
// listing to count as evidence for the target scheme.
const portalMatchThreshold = 0.6

// PortalListing is one scheme entry from the official scheme portal's
// catalogue.
type PortalListing struct {
	SchemeID    string
	Name        string
	Description string
	Ministry    string
	Category    string
	Website     string
	LastUpdated *time.Time
}

// PortalClient fetches the (paged) catalogue of scheme listings.
type PortalClient interface {
	FetchSchemes(ctx context.Context) ([]PortalListing, error)
}

// PortalSource matches the target scheme against the portal catalogue. A
// listing confirms the scheme is recognized, though at a lower weight than
// gazette or legislative sources.
type PortalSource struct {
	client PortalClient
}

// NewPortalSource wraps a scheme-portal client as an evidence source.
func NewPortalSource(client PortalClient) *PortalSource {
	return &PortalSource{client: client}
}

func (s *PortalSource) Name() models.Source {
	return models.SourceSchemePortal
}

func (s *PortalSource) Collect(ctx context.Context, q Query) ([]models.Evidence, error) {
	listings, err := s.client.FetchSchemes(ctx)
	if err != nil {
		return nil, NewSourceError(ErrorOutage, s.Name(), "fetch scheme catalogue", err)
	}

	var evidences []models.Evidence
	target := strings.ToLower(q.SchemeName)
	for _, listing := range listings {
		name := strings.ToLower(listing.Name)
		if !strings.Contains(name, target) &&
			!strings.Contains(target, name) &&
			nameTokenOverlap(q.SchemeName, listing.Name) < portalMatchThreshold {
			continue
		}
		evidences = append(evidences, models.NewEvidence(s.Name(), "scheme_portal_listing", models.SourceRecord{
			URL:        listing.Website,
			Title:      listing.Name,
			DocumentID: listing.SchemeID,
			Date:       listing.LastUpdated,
			Snippet:    listing.Description,
			// The live catalogue only lists schemes currently offered.
			StatusIndication: "active",
			Metadata: map[string]string{
				"ministry": listing.Ministry,
				"category": listing.Category,
			},
		}))
	}
	return evidences, nil
}
