package verification

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"schemetrust/internal/verification/models"
)

// DefaultMaxConcurrent bounds in-flight verifications in a batch so upstream
// registries are not overwhelmed.
const DefaultMaxConcurrent = 3

// SchemeRef identifies one scheme in a batch request.
type SchemeRef struct {
	SchemeID   string
	SchemeName string
	Ministry   string // optional
}

// VerifyBatch verifies multiple schemes with bounded concurrency.
//
// The output always has exactly one result per input, in input order,
// regardless of completion order: results are written into pre-indexed
// slots. A per-item failure is converted into an unverified fallback result
// carrying an explanatory note; no item is ever silently dropped.
func (s *Service) VerifyBatch(ctx context.Context, schemes []SchemeRef, maxConcurrent int) []*models.VerificationResult {
	if len(schemes) == 0 {
		return nil
	}
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrent
	}

	batchID := uuid.NewString()
	s.log().InfoContext(ctx, "batch verification started",
		"batch_id", batchID,
		"scheme_count", len(schemes),
		"max_concurrent", maxConcurrent,
	)

	results := make([]*models.VerificationResult, len(schemes))
	sem := semaphore.NewWeighted(int64(maxConcurrent))
	var wg sync.WaitGroup

	for i, scheme := range schemes {
		i, scheme := i, scheme
		wg.Add(1)
		go func() {
			defer wg.Done()

			if err := sem.Acquire(ctx, 1); err != nil {
				results[i] = s.fallbackResult(scheme.SchemeID, err)
				return
			}
			defer sem.Release(1)

			result, err := s.VerifyScheme(ctx, VerifyRequest{
				SchemeID:   scheme.SchemeID,
				SchemeName: scheme.SchemeName,
				Ministry:   scheme.Ministry,
			})
			if err != nil {
				s.log().ErrorContext(ctx, "batch item failed",
					"batch_id", batchID,
					"scheme_id", scheme.SchemeID,
					"error", err,
				)
				results[i] = s.fallbackResult(scheme.SchemeID, err)
				return
			}
			results[i] = result
		}()
	}
	wg.Wait()

	s.log().InfoContext(ctx, "batch verification completed",
		"batch_id", batchID,
		"scheme_count", len(schemes),
	)
	return results
}

// fallbackResult stands in for a scheme whose verification failed outright,
// preserving batch output cardinality.
func (s *Service) fallbackResult(schemeID string, cause error) *models.VerificationResult {
	completed := s.now().UTC()
	return &models.VerificationResult{
		SchemeID:                    schemeID,
		Status:                      models.StatusUnverified,
		TrustScore:                  0.0,
		CompletedAt:                 &completed,
		ReverificationIntervalHours: models.DefaultReverificationIntervalHours,
		Notes:                       []string{fmt.Sprintf("Verification failed: %v", cause)},
	}
}
