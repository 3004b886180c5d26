// Package score computes trust scores and verification statuses from
// collected evidence. All functions are pure: the same evidence set always
// produces the same score and status.
package score

import (
	"schemetrust/internal/verification/models"
)

// Status thresholds.
const (
	verifiedThreshold  = 0.70
	verifiedMinSources = 2
	partialThreshold   = 0.40
	partialMinSources  = 1
)

// Compute derives the normalized trust score and final status for an
// evidence set.
//
// Rules, applied in order:
//  1. A gazette item with a negative status indication revokes the scheme
//     outright; no other evidence can overrule it.
//  2. Each distinct source contributes at most its single best trust weight,
//     so duplicate items from one registry never inflate the score.
//  3. The capped sum is normalized by models.MaxTrustScore and clamped to [0,1].
//  4. Conflicting indications force StatusDisputed; the score is still
//     reported for reference.
//  5. Otherwise thresholds decide: verified, partially_verified, unverified.
func Compute(evidences []models.Evidence) (float64, models.Status) {
	if len(evidences) == 0 {
		return 0.0, models.StatusUnverified
	}

	if hasGazetteRevocation(evidences) {
		return 0.0, models.StatusRevoked
	}

	bestWeight := make(map[models.Source]float64)
	for _, ev := range evidences {
		if ev.TrustWeight > bestWeight[ev.Source] {
			bestWeight[ev.Source] = ev.TrustWeight
		}
	}

	var weightedSum float64
	for _, w := range bestWeight {
		weightedSum += w
	}
	trustScore := clamp01(weightedSum / models.MaxTrustScore)

	if len(DetectConflicts(evidences)) > 0 {
		return trustScore, models.StatusDisputed
	}

	confirming := len(bestWeight)
	switch {
	case trustScore >= verifiedThreshold && confirming >= verifiedMinSources:
		return trustScore, models.StatusVerified
	case trustScore >= partialThreshold || confirming >= partialMinSources:
		return trustScore, models.StatusPartiallyVerified
	default:
		return trustScore, models.StatusUnverified
	}
}

func hasGazetteRevocation(evidences []models.Evidence) bool {
	for _, ev := range evidences {
		if ev.Source == models.SourceOfficialGazette && models.IsNegativeIndication(ev.StatusIndication) {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0.0 {
		return 0.0
	}
	if v > 1.0 {
		return 1.0
	}
	return v
}
