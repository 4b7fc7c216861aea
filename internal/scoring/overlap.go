package scoring

import "strings"

// tokenOverlapRatio computes the share of the requirement's objective
// tokens that also appear in the candidate's objective text. Tokens are
// naive whitespace-split, lowercased words; no stemming or stopword
// removal is applied, for compatibility with the historical scoring
// behavior.
func tokenOverlapRatio(required, candidate string) float64 {
	requiredTokens := tokenSet(required)
	if len(requiredTokens) == 0 {
		return 0
	}
	candidateTokens := tokenSet(candidate)

	matched := 0
	for token := range requiredTokens {
		if candidateTokens[token] {
			matched++
		}
	}
	return float64(matched) / float64(len(requiredTokens))
}

// tokenSet splits text on whitespace into a lowercased word set.
func tokenSet(text string) map[string]bool {
	tokens := strings.Fields(strings.ToLower(text))
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[t] = true
	}
	return set
}
