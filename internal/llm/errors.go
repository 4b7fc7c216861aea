package llm

import "fmt"

// ErrCompletionUnavailable indicates the language model service failed or
// timed out. The orchestrator maps it to a user-visible "try again"
// outcome instead of fabricating an answer.
type ErrCompletionUnavailable struct {
	Model string
	Cause error
}

func (e *ErrCompletionUnavailable) Error() string {
	return fmt.Sprintf("completion unavailable (model %s): %v", e.Model, e.Cause)
}

func (e *ErrCompletionUnavailable) Unwrap() error {
	return e.Cause
}
