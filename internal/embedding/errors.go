package embedding

import "fmt"

// ErrEmbeddingUnavailable indicates the embedding service failed or timed
// out. The chat path degrades to lexical retrieval when it sees this.
type ErrEmbeddingUnavailable struct {
	Model string
	Cause error
}

func (e *ErrEmbeddingUnavailable) Error() string {
	return fmt.Sprintf("embedding unavailable (model %s): %v", e.Model, e.Cause)
}

func (e *ErrEmbeddingUnavailable) Unwrap() error {
	return e.Cause
}
