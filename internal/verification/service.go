// Package verification orchestrates multi-source verification of government
// schemes. It queries every registry concurrently, collects evidence,
// computes a weighted trust score, and determines the final verification
// status. Repeated verification of the same scheme is deterministic given
// the same upstream data.
package verification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"schemetrust/internal/verification/metrics"
	"schemetrust/internal/verification/models"
	"schemetrust/internal/verification/score"
	"schemetrust/internal/verification/sources"
	"schemetrust/internal/verification/store"
	dErrors "schemetrust/pkg/domain-errors"
)

const (
	// DefaultCacheTTL is how long a computed result stays valid in the
	// result cache.
	DefaultCacheTTL = 24 * time.Hour

	// DefaultSourceTimeout bounds the registry fan-out of one verification.
	DefaultSourceTimeout = 30 * time.Second
)

// Service coordinates evidence collection, scoring, and result caching.
type Service struct {
	sources       []sources.EvidenceSource
	store         store.ResultStore
	logger        *slog.Logger
	metrics       *metrics.Metrics
	now           func() time.Time
	cacheTTL      time.Duration
	sourceTimeout time.Duration

	// inflight deduplicates concurrent verifications of the same scheme so
	// the registries are queried at most once per scheme at a time.
	inflight singleflight.Group
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithClock overrides the time source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithCacheTTL overrides the result cache TTL.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		s.cacheTTL = ttl
	}
}

// WithSourceTimeout overrides the per-verification registry fan-out timeout.
func WithSourceTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		s.sourceTimeout = timeout
	}
}

// New constructs the verification engine. At least one evidence source and
// a result store are required.
func New(evidenceSources []sources.EvidenceSource, resultStore store.ResultStore, opts ...Option) (*Service, error) {
	if len(evidenceSources) == 0 {
		return nil, fmt.Errorf("at least one evidence source is required")
	}
	if resultStore == nil {
		return nil, fmt.Errorf("result store is required")
	}
	seen := make(map[models.Source]struct{}, len(evidenceSources))
	for _, src := range evidenceSources {
		if _, dup := seen[src.Name()]; dup {
			return nil, fmt.Errorf("duplicate evidence source %q", src.Name())
		}
		seen[src.Name()] = struct{}{}
	}

	svc := &Service{
		sources:       evidenceSources,
		store:         resultStore,
		now:           time.Now,
		cacheTTL:      DefaultCacheTTL,
		sourceTimeout: DefaultSourceTimeout,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// VerifyRequest identifies the scheme to verify.
type VerifyRequest struct {
	SchemeID   string
	SchemeName string
	Ministry   string // optional

	// ExistingEvidence is merged with freshly collected evidence,
	// de-duplicated on (source, document id). Used by incremental
	// re-verification.
	ExistingEvidence []models.Evidence
}

// VerifyScheme runs a full verification of a single scheme across all
// configured sources.
//
// A cached result within its TTL is returned unchanged with no registry
// queries. On a miss, concurrent calls for the same scheme id are collapsed
// into one flight; all callers receive the single computed result. A failed
// cache write never prevents returning a correctly computed result.
func (s *Service) VerifyScheme(ctx context.Context, req VerifyRequest) (*models.VerificationResult, error) {
	if req.SchemeID == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "scheme_id is required")
	}
	if req.SchemeName == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "scheme_name is required")
	}

	if cached, err := s.store.Get(ctx, req.SchemeID); err == nil {
		s.metrics.RecordCacheHit()
		s.log().InfoContext(ctx, "verification cache hit", "scheme_id", req.SchemeID)
		return cached, nil
	} else if !errors.Is(err, store.ErrNotFound) {
		s.log().WarnContext(ctx, "result cache read failed",
			"scheme_id", req.SchemeID,
			"error", err,
		)
	}
	s.metrics.RecordCacheMiss()

	result, err, _ := s.inflight.Do(req.SchemeID, func() (any, error) {
		return s.verify(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.VerificationResult), nil
}

// verify performs the uncached verification flow.
func (s *Service) verify(ctx context.Context, req VerifyRequest) (*models.VerificationResult, error) {
	start := s.now().UTC()

	s.log().InfoContext(ctx, "verification started",
		"scheme_id", req.SchemeID,
		"scheme_name", req.SchemeName,
		"ministry", req.Ministry,
	)

	collected := s.collectEvidence(ctx, sources.Query{
		SchemeName: req.SchemeName,
		Ministry:   req.Ministry,
	})

	evidences := mergeEvidence(collected.evidences, req.ExistingEvidence)
	if len(req.ExistingEvidence) > 0 {
		s.log().InfoContext(ctx, "merged existing evidence",
			"scheme_id", req.SchemeID,
			"existing_count", len(req.ExistingEvidence),
			"total_count", len(evidences),
		)
	}

	conflicts := score.DetectConflicts(evidences)
	if len(conflicts) > 0 {
		s.log().WarnContext(ctx, "conflicting evidence detected",
			"scheme_id", req.SchemeID,
			"conflict_count", len(conflicts),
		)
	}

	trustScore, status := score.Compute(evidences)

	notes := collected.notes
	for _, c := range conflicts {
		notes = append(notes, "Conflict: "+c)
	}

	completed := s.now().UTC()
	result := &models.VerificationResult{
		SchemeID:                    req.SchemeID,
		Status:                      status,
		TrustScore:                  trustScore,
		Evidences:                   evidences,
		SourcesChecked:              collected.checked,
		SourcesConfirmed:            confirmedSources(evidences),
		StartedAt:                   &start,
		CompletedAt:                 &completed,
		ReverificationIntervalHours: models.DefaultReverificationIntervalHours,
		Notes:                       notes,
	}

	s.metrics.IncrementOutcome(status.String())
	s.metrics.ObserveVerifyLatency(completed.Sub(start))

	s.log().InfoContext(ctx, "verification completed",
		"scheme_id", req.SchemeID,
		"status", status,
		"trust_score", trustScore,
		"evidence_count", len(evidences),
		"conflict_count", len(conflicts),
		"duration_ms", completed.Sub(start).Milliseconds(),
	)

	if err := s.store.Set(ctx, req.SchemeID, result, s.cacheTTL); err != nil {
		s.log().WarnContext(ctx, "result cache write failed",
			"scheme_id", req.SchemeID,
			"error", err,
		)
	}

	return result, nil
}

// mergeEvidence appends previously known evidence to the fresh set,
// de-duplicating on (source, document id) so the same document is never
// double-counted.
func mergeEvidence(fresh, existing []models.Evidence) []models.Evidence {
	if len(existing) == 0 {
		return fresh
	}

	type evidenceKey struct {
		source     models.Source
		documentID string
	}
	seen := make(map[evidenceKey]struct{}, len(fresh))
	for _, ev := range fresh {
		seen[evidenceKey{ev.Source, ev.DocumentID}] = struct{}{}
	}

	merged := fresh
	for _, ev := range existing {
		key := evidenceKey{ev.Source, ev.DocumentID}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, ev)
	}
	return merged
}

// confirmedSources lists the distinct registries that contributed at least
// one evidence item, in descending trust order.
func confirmedSources(evidences []models.Evidence) []models.Source {
	present := make(map[models.Source]struct{}, len(evidences))
	for _, ev := range evidences {
		present[ev.Source] = struct{}{}
	}
	var confirmed []models.Source
	for _, source := range models.AllSources() {
		if _, ok := present[source]; ok {
			confirmed = append(confirmed, source)
		}
	}
	return confirmed
}

func (s *Service) log() *slog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return slog.Default()
}
