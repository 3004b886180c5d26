package score

import (
	"fmt"
	"sort"
	"strings"

	"schemetrust/internal/verification/models"
)

// DetectConflicts flags contradictory status signals in an evidence set.
//
// Two kinds of contradictions are reported: one source says the scheme is in
// force while another says it was withdrawn, and a single source's own items
// carry both positive and negative indications. Evidence without a
// recognized indication participates in neither. The returned descriptions
// are human-readable; an empty slice means no conflict.
func DetectConflicts(evidences []models.Evidence) []string {
	var conflicts []string
	if len(evidences) == 0 {
		return conflicts
	}

	var positive, negative []models.Evidence
	for _, ev := range evidences {
		switch {
		case models.IsNegativeIndication(ev.StatusIndication):
			negative = append(negative, ev)
		case models.IsPositiveIndication(ev.StatusIndication):
			positive = append(positive, ev)
		}
	}

	if len(positive) > 0 && len(negative) > 0 {
		conflicts = append(conflicts, fmt.Sprintf(
			"status conflict: %s indicate active but %s indicate revoked/repealed",
			describeEvidence(positive), describeEvidence(negative),
		))
	}

	// Internal contradictions: the same registry returning both kinds of
	// indication across its own records.
	perSource := make(map[models.Source]map[string]struct{})
	for _, ev := range evidences {
		indication := ev.StatusIndication
		if indication == "" {
			continue
		}
		if perSource[ev.Source] == nil {
			perSource[ev.Source] = make(map[string]struct{})
		}
		perSource[ev.Source][indication] = struct{}{}
	}

	for _, source := range models.AllSources() {
		indications, ok := perSource[source]
		if !ok {
			continue
		}
		var active, withdrawn []string
		for indication := range indications {
			switch {
			case models.IsNegativeIndication(indication):
				withdrawn = append(withdrawn, indication)
			case models.IsPositiveIndication(indication):
				active = append(active, indication)
			}
		}
		if len(active) > 0 && len(withdrawn) > 0 {
			sort.Strings(active)
			sort.Strings(withdrawn)
			conflicts = append(conflicts, fmt.Sprintf(
				"internal conflict in %s: found both %s and %s indications",
				source, strings.Join(active, ", "), strings.Join(withdrawn, ", "),
			))
		}
	}

	return conflicts
}

func describeEvidence(evidences []models.Evidence) string {
	names := make([]string, 0, len(evidences))
	for _, ev := range evidences {
		names = append(names, fmt.Sprintf("%s (%s)", ev.Title, ev.DocumentID))
	}
	return strings.Join(names, ", ")
}
