// Package models defines the evidence and result types for multi-source
// scheme verification. Only official registries are accepted as sources;
// anything else carries zero trust weight and never enters the model.
package models

import (
	"strings"
	"time"
)

// Source identifies one of the authoritative registries consulted during
// verification. The set is closed and ordered by trust tier.
type Source string

const (
	SourceOfficialGazette      Source = "official-gazette"
	SourceLegislationRegistry  Source = "legislation-registry"
	SourceParliamentaryRecords Source = "parliamentary-records"
	SourceSchemePortal         Source = "scheme-portal"
	SourceOpenDataPlatform     Source = "open-data-platform"
)

// AllSources returns the registries in descending trust order.
func AllSources() []Source {
	return []Source{
		SourceOfficialGazette,
		SourceLegislationRegistry,
		SourceParliamentaryRecords,
		SourceSchemePortal,
		SourceOpenDataPlatform,
	}
}

// IsValid checks if the source is one of the recognized registries.
func (s Source) IsValid() bool {
	_, ok := sourceWeights[s]
	return ok
}

// String returns the string representation.
func (s Source) String() string {
	return string(s)
}

// sourceWeights assigns each registry its fixed trust weight. The weight is
// a property of the registry tier, never of an individual document.
var sourceWeights = map[Source]float64{
	SourceOfficialGazette:      1.0,
	SourceLegislationRegistry:  0.9,
	SourceParliamentaryRecords: 0.85,
	SourceSchemePortal:         0.7,
	SourceOpenDataPlatform:     0.5,
}

// MaxTrustScore is the normalization denominator: the sum of all five
// source weights (1.0 + 0.9 + 0.85 + 0.7 + 0.5).
const MaxTrustScore = 3.95

// TrustWeight returns the fixed weight for this source tier, or 0 for an
// unrecognized source.
func (s Source) TrustWeight() float64 {
	return sourceWeights[s]
}

// Status is the verification state of a scheme.
type Status string

const (
	StatusUnverified        Status = "unverified"
	StatusPending           Status = "pending"
	StatusPartiallyVerified Status = "partially_verified"
	StatusVerified          Status = "verified"
	StatusDisputed          Status = "disputed"
	StatusRevoked           Status = "revoked"
)

// IsValid checks if the status is one of the supported enum values.
func (s Status) IsValid() bool {
	switch s {
	case StatusUnverified, StatusPending, StatusPartiallyVerified,
		StatusVerified, StatusDisputed, StatusRevoked:
		return true
	}
	return false
}

// String returns the string representation.
func (s Status) String() string {
	return string(s)
}

// Status-indication keyword sets. Free-form indications outside both sets
// are treated as absent.
var (
	positiveIndications = map[string]struct{}{
		"active": {}, "enacted": {}, "in_force": {}, "operational": {},
	}
	negativeIndications = map[string]struct{}{
		"revoked": {}, "repealed": {}, "superseded": {}, "cancelled": {}, "inactive": {},
	}
)

// IsPositiveIndication reports whether the indication signals the scheme
// is in force.
func IsPositiveIndication(indication string) bool {
	_, ok := positiveIndications[normalizeIndication(indication)]
	return ok
}

// IsNegativeIndication reports whether the indication signals the scheme
// was withdrawn.
func IsNegativeIndication(indication string) bool {
	_, ok := negativeIndications[normalizeIndication(indication)]
	return ok
}

func normalizeIndication(indication string) string {
	return strings.ToLower(strings.TrimSpace(indication))
}

// MaxExcerptLen bounds the stored excerpt of a source document.
const MaxExcerptLen = 500

// Evidence is one item of proof: a single document or listing returned by a
// single registry. Evidence is immutable after construction.
type Evidence struct {
	Source           Source            `json:"source"`
	SourceURL        string            `json:"source_url"`
	DocumentType     string            `json:"document_type"`
	DocumentID       string            `json:"document_id,omitempty"`
	DocumentDate     *time.Time        `json:"document_date,omitempty"`
	Title            string            `json:"title"`
	Excerpt          string            `json:"excerpt,omitempty"`
	TrustWeight      float64           `json:"trust_weight"`
	StatusIndication string            `json:"status_indication,omitempty"`
	CollectedAt      time.Time         `json:"collected_at"`
	Metadata         map[string]string `json:"metadata,omitempty"`
}

// NewEvidence builds an evidence item from a normalized source record. The
// trust weight is derived solely from the source and the excerpt is capped
// at MaxExcerptLen runes.
func NewEvidence(source Source, documentType string, record SourceRecord) Evidence {
	return Evidence{
		Source:           source,
		SourceURL:        record.URL,
		DocumentType:     documentType,
		DocumentID:       record.DocumentID,
		DocumentDate:     record.Date,
		Title:            record.Title,
		Excerpt:          truncateRunes(record.Snippet, MaxExcerptLen),
		TrustWeight:      source.TrustWeight(),
		StatusIndication: normalizeIndication(record.StatusIndication),
		CollectedAt:      time.Now().UTC(),
		Metadata:         record.Metadata,
	}
}

// SourceRecord is the normalized shape every registry client adapter must
// produce. Optional fields stay zero-valued when the upstream record omits
// them.
type SourceRecord struct {
	URL              string            `json:"url"`
	Title            string            `json:"title"`
	DocumentID       string            `json:"document_id,omitempty"`
	Date             *time.Time        `json:"date,omitempty"`
	Snippet          string            `json:"snippet,omitempty"`
	StatusIndication string            `json:"status_indication,omitempty"`
	Metadata         map[string]string `json:"metadata,omitempty"`
}

// DefaultReverificationIntervalHours is one week.
const DefaultReverificationIntervalHours = 168

// VerificationResult is the aggregate outcome of verifying one scheme.
// Results are never mutated in place; re-verification produces a new one.
type VerificationResult struct {
	SchemeID                    string     `json:"scheme_id"`
	Status                      Status     `json:"status"`
	TrustScore                  float64    `json:"trust_score"`
	Evidences                   []Evidence `json:"evidences,omitempty"`
	SourcesChecked              []Source   `json:"sources_checked,omitempty"`
	SourcesConfirmed            []Source   `json:"sources_confirmed,omitempty"`
	StartedAt                   *time.Time `json:"started_at,omitempty"`
	CompletedAt                 *time.Time `json:"completed_at,omitempty"`
	LastReverificationAt        *time.Time `json:"last_reverification_at,omitempty"`
	ReverificationIntervalHours int        `json:"reverification_interval_hours"`
	Notes                       []string   `json:"notes,omitempty"`
}

// VerifiedAt returns the freshest known verification timestamp, preferring
// the last re-verification over the initial completion. Returns nil when the
// result carries no timestamp at all.
func (r *VerificationResult) VerifiedAt() *time.Time {
	if r.LastReverificationAt != nil {
		if r.CompletedAt == nil || r.LastReverificationAt.After(*r.CompletedAt) {
			return r.LastReverificationAt
		}
	}
	return r.CompletedAt
}

func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
