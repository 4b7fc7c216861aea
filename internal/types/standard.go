// Package types defines the core data structures shared across the
// recommendation and matching subsystem.
package types

// Standard is a domain reference entity representing a certifiable
// competency. Standards are read-mostly: once created only the embedding
// is backfilled, everything else is immutable.
type Standard struct {
	Code        string    `json:"code"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Embedding   []float32 `json:"embedding,omitempty"` // nil until computed
}

// HasEmbedding reports whether the standard's vector has been computed.
func (s *Standard) HasEmbedding() bool {
	return len(s.Embedding) > 0
}

// RetrievedStandard pairs a standard with its similarity to the query.
// Lexical fallback hits carry no meaningful similarity; Lexical marks them
// so response shaping can omit the score.
type RetrievedStandard struct {
	Standard   Standard
	Similarity float64
	Lexical    bool
}

// RetrievalResult is a ranked list of retrieved standards, sorted
// descending by similarity and truncated to the caller's topK.
type RetrievalResult struct {
	Hits []RetrievedStandard
}

// Empty reports whether retrieval produced no hits.
func (r *RetrievalResult) Empty() bool {
	return len(r.Hits) == 0
}
