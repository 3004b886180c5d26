package verification

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"schemetrust/internal/verification/models"
	"schemetrust/internal/verification/sources"
	"schemetrust/internal/verification/store"
)

type ReverifySuite struct {
	suite.Suite

	ctx context.Context
	now time.Time
}

func TestReverifySuite(t *testing.T) {
	suite.Run(t, new(ReverifySuite))
}

func (s *ReverifySuite) SetupTest() {
	s.ctx = context.Background()
	s.now = time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)
}

func (s *ReverifySuite) newService(srcs ...sources.EvidenceSource) (*Service, *store.MemoryStore) {
	resultStore := store.NewMemoryStore()
	svc, err := New(srcs, resultStore, WithClock(func() time.Time { return s.now }))
	s.Require().NoError(err)
	return svc, resultStore
}

func (s *ReverifySuite) agedResult(schemeID string, age time.Duration, evidences ...models.Evidence) *models.VerificationResult {
	completed := s.now.Add(-age)
	trustScore, status := 0.0, models.StatusUnverified
	if len(evidences) > 0 {
		status = models.StatusPartiallyVerified
		trustScore = 0.25
	}
	return &models.VerificationResult{
		SchemeID:                    schemeID,
		Status:                      status,
		TrustScore:                  trustScore,
		Evidences:                   evidences,
		CompletedAt:                 &completed,
		ReverificationIntervalHours: models.DefaultReverificationIntervalHours,
	}
}

func (s *ReverifySuite) TestFreshResultsPassThrough() {
	gazette := &stubSource{name: models.SourceOfficialGazette}
	svc, _ := s.newService(gazette)

	fresh := s.agedResult("scheme-001", 24*time.Hour)

	updated := svc.ReverifyStale(s.ctx, []*models.VerificationResult{fresh}, DefaultMaxResultAge, nil)

	s.Require().Len(updated, 1)
	s.Same(fresh, updated[0], "a fresh result must be returned untouched")
	s.Equal(int32(0), gazette.calls.Load())
}

func (s *ReverifySuite) TestStaleResultIsReverified() {
	gazette := &stubSource{
		name:      models.SourceOfficialGazette,
		evidences: []models.Evidence{stubEvidence(models.SourceOfficialGazette, "GSR-2(E)", "active")},
	}
	svc, resultStore := s.newService(gazette)

	stale := s.agedResult("scheme-001", 200*time.Hour)

	updated := svc.ReverifyStale(s.ctx, []*models.VerificationResult{stale}, DefaultMaxResultAge,
		map[string]string{"scheme-001": "Ujjwala Yojana"})

	s.Require().Len(updated, 1)
	s.Equal(int32(1), gazette.calls.Load())

	refreshed := updated[0]
	s.Equal("scheme-001", refreshed.SchemeID)
	s.Require().NotNil(refreshed.LastReverificationAt)
	s.Equal(s.now, *refreshed.LastReverificationAt)
	s.Len(refreshed.Evidences, 1)
	s.Equal("GSR-2(E)", refreshed.Evidences[0].DocumentID)

	cached, err := resultStore.Get(s.ctx, "scheme-001")
	s.Require().NoError(err)
	s.Equal(refreshed, cached, "the refreshed result must be written back to the store")
}

func (s *ReverifySuite) TestMissingTimestampForcesReverification() {
	gazette := &stubSource{
		name:      models.SourceOfficialGazette,
		evidences: []models.Evidence{stubEvidence(models.SourceOfficialGazette, "GSR-2(E)", "active")},
	}
	svc, _ := s.newService(gazette)

	noTimestamp := &models.VerificationResult{SchemeID: "scheme-001", Status: models.StatusUnverified}

	updated := svc.ReverifyStale(s.ctx, []*models.VerificationResult{noTimestamp}, DefaultMaxResultAge,
		map[string]string{"scheme-001": "Ujjwala Yojana"})

	s.Require().Len(updated, 1)
	s.Equal(int32(1), gazette.calls.Load())
	s.NotNil(updated[0].LastReverificationAt)
}

func (s *ReverifySuite) TestStrongEvidenceIsCarriedForward() {
	// The fresh query finds nothing, so only carried evidence can survive.
	gazette := &stubSource{name: models.SourceOfficialGazette}
	svc, _ := s.newService(gazette)

	stale := s.agedResult("scheme-001", 200*time.Hour,
		stubEvidence(models.SourceOfficialGazette, "GSR-1(E)", "active"),
		stubEvidence(models.SourceSchemePortal, "p-1", "active"),
		stubEvidence(models.SourceOpenDataPlatform, "d-1", "active"),
	)

	updated := svc.ReverifyStale(s.ctx, []*models.VerificationResult{stale}, DefaultMaxResultAge,
		map[string]string{"scheme-001": "Ujjwala Yojana"})

	s.Require().Len(updated, 1)
	refreshed := updated[0]
	s.Require().Len(refreshed.Evidences, 2, "only evidence at or above the portal tier is carried")
	s.Equal("GSR-1(E)", refreshed.Evidences[0].DocumentID)
	s.Equal("p-1", refreshed.Evidences[1].DocumentID)
}

func (s *ReverifySuite) TestReverificationErrorKeepsPreviousResult() {
	gazette := &stubSource{name: models.SourceOfficialGazette}
	svc, _ := s.newService(gazette)

	// A result without a scheme id cannot be re-verified; the previous
	// result must survive instead of being dropped.
	broken := &models.VerificationResult{Status: models.StatusPartiallyVerified}

	updated := svc.ReverifyStale(s.ctx, []*models.VerificationResult{broken}, DefaultMaxResultAge, nil)

	s.Require().Len(updated, 1)
	s.Same(broken, updated[0])
}

func (s *ReverifySuite) TestNonPositiveMaxAgeUsesDefault() {
	gazette := &stubSource{name: models.SourceOfficialGazette}
	svc, _ := s.newService(gazette)

	justFresh := s.agedResult("scheme-001", DefaultMaxResultAge-time.Hour)

	updated := svc.ReverifyStale(s.ctx, []*models.VerificationResult{justFresh}, 0, nil)

	s.Require().Len(updated, 1)
	s.Same(justFresh, updated[0])
	s.Equal(int32(0), gazette.calls.Load())
}

func (s *ReverifySuite) TestMixedFreshAndStalePreservesOrder() {
	gazette := &stubSource{
		name:      models.SourceOfficialGazette,
		evidences: []models.Evidence{stubEvidence(models.SourceOfficialGazette, "GSR-2(E)", "active")},
	}
	svc, _ := s.newService(gazette)

	fresh := s.agedResult("scheme-001", time.Hour)
	stale := s.agedResult("scheme-002", 300*time.Hour)

	updated := svc.ReverifyStale(s.ctx, []*models.VerificationResult{fresh, stale, fresh}, DefaultMaxResultAge,
		map[string]string{"scheme-002": "Jal Jeevan Mission"})

	s.Require().Len(updated, 3)
	s.Same(fresh, updated[0])
	s.Equal("scheme-002", updated[1].SchemeID)
	s.NotNil(updated[1].LastReverificationAt)
	s.Same(fresh, updated[2])
}
