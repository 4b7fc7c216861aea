// Package retrieval provides semantic search over the standards corpus:
// a versioned in-memory index, cosine-similarity retrieval and a lexical
// fallback for when no embeddings have been computed yet.
package retrieval

import (
	"math"
	"sort"
	"strings"

	"github.com/jonathan/certmatch/internal/types"
)

// Index is an immutable snapshot of the standards corpus. Request
// handling only ever reads a snapshot; rebuilds swap in a fresh one.
type Index struct {
	standards []types.Standard
	embedded  int // standards with a non-nil embedding
	version   int
}

// NewIndex builds a snapshot over the given standards.
func NewIndex(standards []types.Standard, version int) *Index {
	embedded := 0
	for i := range standards {
		if standards[i].HasEmbedding() {
			embedded++
		}
	}
	return &Index{standards: standards, embedded: embedded, version: version}
}

// Version returns the rebuild counter of this snapshot.
func (idx *Index) Version() int {
	return idx.version
}

// Size returns the number of standards in this snapshot.
func (idx *Index) Size() int {
	return len(idx.standards)
}

// Embedded returns the number of standards with a computed embedding.
func (idx *Index) Embedded() int {
	return idx.embedded
}

// Ready reports whether at least one standard has an embedding, i.e.
// whether vector search can serve.
func (idx *Index) Ready() bool {
	return idx.embedded > 0
}

// Retrieve computes cosine similarity between the query vector and every
// embedded standard, returning hits at or above threshold, sorted
// descending by similarity (ties broken by code ascending), truncated to
// topK. Standards without an embedding are excluded from vector search.
//
// An empty query vector or non-positive topK is a caller contract
// violation. An index with no embeddings at all returns ErrIndexNotReady
// rather than an empty result, so the caller can route to lexical search
// instead of silently answering with no context.
func (idx *Index) Retrieve(queryVector []float32, threshold float64, topK int) (*types.RetrievalResult, error) {
	if len(queryVector) == 0 {
		return nil, &ErrInvalidQuery{Reason: "query vector is empty"}
	}
	if topK <= 0 {
		return nil, &ErrInvalidQuery{Reason: "topK must be positive"}
	}
	if !idx.Ready() {
		return nil, ErrIndexNotReady
	}

	hits := make([]types.RetrievedStandard, 0, topK)
	for i := range idx.standards {
		std := &idx.standards[i]
		if !std.HasEmbedding() {
			continue
		}
		sim := cosineSimilarity(queryVector, std.Embedding)
		if sim < threshold {
			continue
		}
		hits = append(hits, types.RetrievedStandard{Standard: *std, Similarity: sim})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Similarity != hits[j].Similarity {
			return hits[i].Similarity > hits[j].Similarity
		}
		return hits[i].Standard.Code < hits[j].Standard.Code
	})

	if len(hits) > topK {
		hits = hits[:topK]
	}
	return &types.RetrievalResult{Hits: hits}, nil
}

// Lexical performs a case-insensitive substring search of the query
// against title, description and category. Matches carry no similarity
// score (ranked as 1.0, original corpus order preserved) and are
// truncated to topK.
func (idx *Index) Lexical(query string, topK int) (*types.RetrievalResult, error) {
	if topK <= 0 {
		return nil, &ErrInvalidQuery{Reason: "topK must be positive"}
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	hits := make([]types.RetrievedStandard, 0, topK)
	if needle == "" {
		return &types.RetrievalResult{Hits: hits}, nil
	}

	for i := range idx.standards {
		std := &idx.standards[i]
		if strings.Contains(strings.ToLower(std.Title), needle) ||
			strings.Contains(strings.ToLower(std.Description), needle) ||
			strings.Contains(strings.ToLower(std.Category), needle) {
			hits = append(hits, types.RetrievedStandard{Standard: *std, Similarity: 1.0, Lexical: true})
			if len(hits) == topK {
				break
			}
		}
	}
	return &types.RetrievalResult{Hits: hits}, nil
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Mismatched dimensions compare over the shorter prefix; a zero-magnitude
// vector yields 0.
func cosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
