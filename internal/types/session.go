package types

// Turn roles. Both roles count equally toward the session cap.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is a single message in a conversation session.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ConversationSession is a bounded, ordered conversational history keyed
// by an opaque id. The turn list never exceeds the configured cap; eviction
// is strictly FIFO.
type ConversationSession struct {
	ID    string `json:"id"`
	Turns []Turn `json:"turns"`
}

// Append adds a turn at the tail and evicts from the head until the list
// is back at cap. A cap of zero or less leaves the list unbounded.
func (s *ConversationSession) Append(turn Turn, cap int) {
	s.Turns = append(s.Turns, turn)
	if cap > 0 && len(s.Turns) > cap {
		s.Turns = s.Turns[len(s.Turns)-cap:]
	}
}

// SessionRef identifies the session a request belongs to. An absent or
// unknown id resolves to a new session exactly once, at the orchestrator
// boundary, instead of threading nullable ids through every component.
type SessionRef struct {
	ID string
}

// IsNew reports whether the caller supplied no session id.
func (r SessionRef) IsNew() bool {
	return r.ID == ""
}
