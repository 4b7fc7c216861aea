package retrieval

import (
	"errors"
	"fmt"
)

// ErrIndexNotReady indicates no standard in the corpus has an embedding
// yet. Surfaced distinctly so the caller can route to lexical search or
// prompt an index build instead of presenting an empty answer.
var ErrIndexNotReady = errors.New("vector index not ready: no standard has an embedding")

// ErrInvalidQuery indicates a caller contract violation (empty query
// vector, non-positive topK). Rejected, not silently handled.
type ErrInvalidQuery struct {
	Reason string
}

func (e *ErrInvalidQuery) Error() string {
	return fmt.Sprintf("invalid retrieval query: %s", e.Reason)
}
