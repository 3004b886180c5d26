package verification

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"schemetrust/internal/verification/models"
	"schemetrust/internal/verification/sources"
)

// collectedEvidence is the outcome of one registry fan-out.
type collectedEvidence struct {
	evidences []models.Evidence
	checked   []models.Source
	notes     []string
}

// collectEvidence queries all configured sources concurrently. Each source's
// failure is captured independently: a failing registry contributes zero
// evidence and one note, never aborting the others. The fan-out as a whole
// is bounded by the configured source timeout.
func (s *Service) collectEvidence(ctx context.Context, q sources.Query) collectedEvidence {
	ctx, cancel := context.WithTimeout(ctx, s.sourceTimeout)
	defer cancel()

	perSource := make([][]models.Evidence, len(s.sources))
	failures := make([]error, len(s.sources))

	var g errgroup.Group
	for i, src := range s.sources {
		i, src := i, src
		g.Go(func() error {
			start := time.Now()
			evidences, err := src.Collect(ctx, q)
			s.metrics.ObserveSourceLatency(src.Name().String(), time.Since(start))

			if err != nil {
				failures[i] = err
				s.log().ErrorContext(ctx, "source check failed",
					"source", src.Name(),
					"scheme_name", q.SchemeName,
					"error", err,
				)
				return nil
			}
			perSource[i] = evidences
			s.log().InfoContext(ctx, "source checked",
				"source", src.Name(),
				"scheme_name", q.SchemeName,
				"evidence_count", len(evidences),
			)
			return nil
		})
	}
	// Goroutines never return errors; failures land in pre-indexed slots.
	_ = g.Wait()

	collected := collectedEvidence{
		checked: make([]models.Source, 0, len(s.sources)),
	}
	for i, src := range s.sources {
		collected.checked = append(collected.checked, src.Name())
		if failures[i] != nil {
			collected.notes = append(collected.notes,
				fmt.Sprintf("%s check failed: %v", src.Name(), failures[i]))
			continue
		}
		collected.evidences = append(collected.evidences, perSource[i]...)
	}
	return collected
}
