package models

import "time"

// Summary is a lightweight view of a scheme's verification state for list
// views and dashboard cards where the full result payload would be excessive.
type Summary struct {
	SchemeID            string     `json:"scheme_id"`
	SchemeName          string     `json:"scheme_name"`
	Status              Status     `json:"status"`
	TrustScore          float64    `json:"trust_score"`
	SourceCount         int        `json:"source_count"`
	LastVerified        *time.Time `json:"last_verified,omitempty"`
	GazetteConfirmed    bool       `json:"gazette_confirmed"`
	ActConfirmed        bool       `json:"act_confirmed"`
	ParliamentConfirmed bool       `json:"parliament_confirmed"`
}

// Summarize condenses a verification result into a Summary.
func Summarize(result *VerificationResult, schemeName string) Summary {
	s := Summary{
		SchemeID:     result.SchemeID,
		SchemeName:   schemeName,
		Status:       result.Status,
		TrustScore:   result.TrustScore,
		SourceCount:  len(result.SourcesConfirmed),
		LastVerified: result.VerifiedAt(),
	}
	for _, src := range result.SourcesConfirmed {
		switch src {
		case SourceOfficialGazette:
			s.GazetteConfirmed = true
		case SourceLegislationRegistry:
			s.ActConfirmed = true
		case SourceParliamentaryRecords:
			s.ParliamentConfirmed = true
		}
	}
	return s
}

// DashboardStats is a snapshot of the verification state across a result set.
type DashboardStats struct {
	TotalSchemes           int     `json:"total_schemes"`
	VerifiedCount          int     `json:"verified_count"`
	PartiallyVerifiedCount int     `json:"partially_verified_count"`
	UnverifiedCount        int     `json:"unverified_count"`
	DisputedCount          int     `json:"disputed_count"`
	RevokedCount           int     `json:"revoked_count"`
	AverageTrustScore      float64 `json:"average_trust_score"`
}

// ComputeDashboardStats aggregates per-status counts and the mean trust
// score over a set of results.
func ComputeDashboardStats(results []*VerificationResult) DashboardStats {
	stats := DashboardStats{TotalSchemes: len(results)}
	if len(results) == 0 {
		return stats
	}
	var sum float64
	for _, r := range results {
		sum += r.TrustScore
		switch r.Status {
		case StatusVerified:
			stats.VerifiedCount++
		case StatusPartiallyVerified:
			stats.PartiallyVerifiedCount++
		case StatusDisputed:
			stats.DisputedCount++
		case StatusRevoked:
			stats.RevokedCount++
		default:
			stats.UnverifiedCount++
		}
	}
	stats.AverageTrustScore = sum / float64(len(results))
	return stats
}
