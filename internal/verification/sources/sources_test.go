package sources

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schemetrust/internal/verification/models"
)

type fakeGazetteClient struct {
	records []models.SourceRecord
	err     error

	gotQuery    string
	gotMinistry string
}

func (c *fakeGazetteClient) SearchNotifications(_ context.Context, query, ministry string) ([]models.SourceRecord, error) {
	c.gotQuery = query
	c.gotMinistry = ministry
	return c.records, c.err
}

type fakeLegislationClient struct {
	records []models.SourceRecord
	err     error
}

func (c *fakeLegislationClient) SearchActs(context.Context, string, string) ([]models.SourceRecord, error) {
	return c.records, c.err
}

type fakeParliamentClient struct {
	records []models.SourceRecord
	err     error
}

func (c *fakeParliamentClient) SearchBills(context.Context, string, string) ([]models.SourceRecord, error) {
	return c.records, c.err
}

type fakePortalClient struct {
	listings []PortalListing
	err      error
}

func (c *fakePortalClient) FetchSchemes(context.Context) ([]PortalListing, error) {
	return c.listings, c.err
}

type fakeOpenDataClient struct {
	datasets []DatasetRecord
	err      error

	gotLimit int
}

func (c *fakeOpenDataClient) SearchDatasets(_ context.Context, _ string, limit int) ([]DatasetRecord, error) {
	c.gotLimit = limit
	return c.datasets, c.err
}

func TestGazetteSourceCollect(t *testing.T) {
	t.Run("maps records to weighted evidence", func(t *testing.T) {
		client := &fakeGazetteClient{records: []models.SourceRecord{
			{Title: "Scheme Establishment Notification", DocumentID: "GSR-1(E)", StatusIndication: "active"},
			{Title: "Scheme Amendment Notification", DocumentID: "GSR-9(E)"},
		}}
		source := NewGazetteSource(client)

		evidences, err := source.Collect(context.Background(), Query{
			SchemeName: "Jal Jeevan Mission",
			Ministry:   "Jal Shakti",
		})

		require.NoError(t, err)
		require.Len(t, evidences, 2)
		assert.Equal(t, "Jal Jeevan Mission", client.gotQuery)
		assert.Equal(t, "Jal Shakti", client.gotMinistry)
		for _, ev := range evidences {
			assert.Equal(t, models.SourceOfficialGazette, ev.Source)
			assert.Equal(t, "gazette_notification", ev.DocumentType)
			assert.Equal(t, 1.0, ev.TrustWeight)
		}
		assert.Equal(t, "active", evidences[0].StatusIndication)
		assert.Empty(t, evidences[1].StatusIndication)
	})

	t.Run("client failure becomes a retryable outage", func(t *testing.T) {
		source := NewGazetteSource(&fakeGazetteClient{err: errors.New("connection refused")})

		evidences, err := source.Collect(context.Background(), Query{SchemeName: "any"})

		require.Error(t, err)
		assert.Nil(t, evidences)
		assert.True(t, IsRetryable(err))
		assert.Equal(t, ErrorOutage, GetCategory(err))

		var se *SourceError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, models.SourceOfficialGazette, se.Source)
	})
}

func TestLegislationSourceCollect(t *testing.T) {
	source := NewLegislationSource(&fakeLegislationClient{records: []models.SourceRecord{
		{Title: "Food Security Act", DocumentID: "act-20-2013", StatusIndication: "in_force"},
	}})

	evidences, err := source.Collect(context.Background(), Query{SchemeName: "Food Security"})

	require.NoError(t, err)
	require.Len(t, evidences, 1)
	assert.Equal(t, models.SourceLegislationRegistry, evidences[0].Source)
	assert.Equal(t, "legislation", evidences[0].DocumentType)
	assert.Equal(t, 0.9, evidences[0].TrustWeight)
}

func TestParliamentSourceCollect(t *testing.T) {
	source := NewParliamentSource(&fakeParliamentClient{records: []models.SourceRecord{
		{Title: "Food Security Bill", DocumentID: "bill-109-2013", StatusIndication: "enacted"},
	}})

	evidences, err := source.Collect(context.Background(), Query{SchemeName: "Food Security"})

	require.NoError(t, err)
	require.Len(t, evidences, 1)
	assert.Equal(t, models.SourceParliamentaryRecords, evidences[0].Source)
	assert.Equal(t, "parliamentary_record", evidences[0].DocumentType)
	assert.Equal(t, 0.85, evidences[0].TrustWeight)
}

func TestPortalSourceCollect(t *testing.T) {
	listings := []PortalListing{
		{SchemeID: "p-1", Name: "Pradhan Mantri Ujjwala Yojana", Ministry: "Petroleum", Category: "Welfare"},
		{SchemeID: "p-2", Name: "Ujjwala"},
		{SchemeID: "p-3", Name: "Digital Literacy Mission"},
	}

	t.Run("keeps substring and high-overlap matches only", func(t *testing.T) {
		source := NewPortalSource(&fakePortalClient{listings: listings})

		evidences, err := source.Collect(context.Background(), Query{SchemeName: "Ujjwala Yojana"})

		require.NoError(t, err)
		require.Len(t, evidences, 2)
		assert.Equal(t, "p-1", evidences[0].DocumentID)
		assert.Equal(t, "p-2", evidences[1].DocumentID)
		for _, ev := range evidences {
			assert.Equal(t, models.SourceSchemePortal, ev.Source)
			assert.Equal(t, "scheme_portal_listing", ev.DocumentType)
			assert.Equal(t, 0.7, ev.TrustWeight)
			assert.Equal(t, "active", ev.StatusIndication, "catalogue listings are live by definition")
		}
		assert.Equal(t, "Petroleum", evidences[0].Metadata["ministry"])
		assert.Equal(t, "Welfare", evidences[0].Metadata["category"])
	})

	t.Run("no match yields no evidence and no error", func(t *testing.T) {
		source := NewPortalSource(&fakePortalClient{listings: listings})

		evidences, err := source.Collect(context.Background(), Query{SchemeName: "Kisan Credit Card"})

		require.NoError(t, err)
		assert.Empty(t, evidences)
	})

	t.Run("client failure becomes a source error", func(t *testing.T) {
		source := NewPortalSource(&fakePortalClient{err: errors.New("HTTP 503")})

		_, err := source.Collect(context.Background(), Query{SchemeName: "any"})

		require.Error(t, err)
		assert.Equal(t, ErrorOutage, GetCategory(err))
	})
}

func TestOpenDataSourceCollect(t *testing.T) {
	datasets := []DatasetRecord{
		{ResourceID: "d-1", Title: "Ujjwala Yojana Beneficiaries", Org: "MoPNG", Sector: "Welfare"},
		{ResourceID: "d-2", Title: "State Highway Expenditure"},
	}

	t.Run("filters datasets below the relevance threshold", func(t *testing.T) {
		client := &fakeOpenDataClient{datasets: datasets}
		source := NewOpenDataSource(client)

		evidences, err := source.Collect(context.Background(), Query{SchemeName: "Ujjwala Yojana"})

		require.NoError(t, err)
		require.Len(t, evidences, 1)
		assert.Equal(t, defaultDatasetLimit, client.gotLimit)
		assert.Equal(t, "d-1", evidences[0].DocumentID)
		assert.Equal(t, models.SourceOpenDataPlatform, evidences[0].Source)
		assert.Equal(t, "government_dataset", evidences[0].DocumentType)
		assert.Equal(t, 0.5, evidences[0].TrustWeight)
		assert.Equal(t, "MoPNG", evidences[0].Metadata["org"])
	})

	t.Run("client failure becomes a retryable source error", func(t *testing.T) {
		source := NewOpenDataSource(&fakeOpenDataClient{err: errors.New("rate limited")})

		_, err := source.Collect(context.Background(), Query{SchemeName: "any"})

		require.Error(t, err)
		assert.True(t, IsRetryable(err))
	})
}
