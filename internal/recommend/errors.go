package recommend

import "fmt"

// ErrInvalidRequest indicates a malformed chat or matching request.
// Rejected before any scoring or retrieval begins; never partially
// processed.
type ErrInvalidRequest struct {
	Reason string
}

func (e *ErrInvalidRequest) Error() string {
	return fmt.Sprintf("invalid request: %s", e.Reason)
}
