package sources

import "strings"

// noiseTokens are articles and generic program words that carry no signal
// when comparing scheme names.
var noiseTokens = map[string]struct{}{
	"the": {}, "of": {}, "for": {}, "and": {}, "in": {}, "to": {}, "a": {}, "an": {}, "is": {},
	"scheme": {}, "yojana": {}, "yojna": {}, "mission": {}, "abhiyan": {}, "pradhan": {},
	"mantri": {}, "pm": {}, "national": {}, "central": {}, "government": {}, "india": {},
}

// nameTokenOverlap computes Jaccard similarity between two scheme names over
// noise-stripped tokens. Returns a value in [0, 1]; 0 when either name has no
// significant tokens.
func nameTokenOverlap(a, b string) float64 {
	tokensA := tokenize(a)
	tokensB := tokenize(b)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0.0
	}

	intersection := 0
	union := len(tokensB)
	for token := range tokensA {
		if _, ok := tokensB[token]; ok {
			intersection++
		} else {
			union++
		}
	}
	return float64(intersection) / float64(union)
}

func tokenize(name string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, token := range strings.Fields(strings.ToLower(name)) {
		token = strings.Trim(token, "()[]{}.,;:-\"'")
		if len(token) <= 1 {
			continue
		}
		if _, noisy := noiseTokens[token]; noisy {
			continue
		}
		tokens[token] = struct{}{}
	}
	return tokens
}
