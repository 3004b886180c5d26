package verification

import (
	"context"
	"time"

	"schemetrust/internal/verification/models"
)

// DefaultMaxResultAge is the staleness window after which a result is
// re-verified (one week).
const DefaultMaxResultAge = models.DefaultReverificationIntervalHours * time.Hour

// ReverifyStale re-runs verification for results older than maxAge.
//
// A result's age is measured from its freshest known verification timestamp
// (last re-verification, falling back to completion); a result with no
// timestamp at all is always treated as stale. Fresh results pass through
// unchanged.
//
// For each stale result, evidence at or above the scheme-portal trust tier
// is carried forward as a merge hint and all sources are re-queried; the
// carried evidence only survives de-duplication, it never suppresses a
// registry query. schemeNames maps scheme ids to searchable names, falling
// back to the id itself. The old result is kept only when the fresh attempt
// errors.
func (s *Service) ReverifyStale(ctx context.Context, results []*models.VerificationResult, maxAge time.Duration, schemeNames map[string]string) []*models.VerificationResult {
	if maxAge <= 0 {
		maxAge = DefaultMaxResultAge
	}

	now := s.now().UTC()
	updated := make([]*models.VerificationResult, 0, len(results))
	staleCount := 0

	s.log().InfoContext(ctx, "stale reverification started",
		"total_results", len(results),
		"max_age_hours", maxAge.Hours(),
	)

	for _, result := range results {
		verifiedAt := result.VerifiedAt()
		if verifiedAt != nil && now.Sub(*verifiedAt) <= maxAge {
			updated = append(updated, result)
			continue
		}
		staleCount++

		age := time.Duration(0)
		if verifiedAt != nil {
			age = now.Sub(*verifiedAt)
		}
		s.log().InfoContext(ctx, "reverifying stale result",
			"scheme_id", result.SchemeID,
			"age_hours", age.Hours(),
		)

		schemeName := schemeNames[result.SchemeID]
		if schemeName == "" {
			schemeName = result.SchemeID
		}

		refreshed, err := s.VerifyScheme(ctx, VerifyRequest{
			SchemeID:         result.SchemeID,
			SchemeName:       schemeName,
			ExistingEvidence: strongEvidence(result.Evidences),
		})
		if err != nil {
			s.log().ErrorContext(ctx, "reverification failed, keeping previous result",
				"scheme_id", result.SchemeID,
				"error", err,
			)
			updated = append(updated, result)
			continue
		}

		stamped := *refreshed
		reverifiedAt := s.now().UTC()
		stamped.LastReverificationAt = &reverifiedAt
		if err := s.store.Set(ctx, stamped.SchemeID, &stamped, s.cacheTTL); err != nil {
			s.log().WarnContext(ctx, "result cache write failed",
				"scheme_id", stamped.SchemeID,
				"error", err,
			)
		}
		updated = append(updated, &stamped)
	}

	s.log().InfoContext(ctx, "stale reverification completed",
		"total", len(results),
		"stale", staleCount,
	)
	return updated
}

// strongEvidence keeps items whose weight meets the scheme-portal tier;
// weaker evidence is re-earned from a fresh query.
func strongEvidence(evidences []models.Evidence) []models.Evidence {
	threshold := models.SourceSchemePortal.TrustWeight()
	var strong []models.Evidence
	for _, ev := range evidences {
		if ev.TrustWeight >= threshold {
			strong = append(strong, ev)
		}
	}
	return strong
}
