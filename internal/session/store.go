// Package session provides persistence for bounded conversation
// histories keyed by an opaque session id.
package session

import (
	"context"
	"sync"

	"github.com/jonathan/certmatch/internal/types"
)

// Store is a key-value store for conversation sessions. Load returns
// (nil, nil) for an unknown id; the caller starts a fresh session.
// Save replaces the whole session atomically, so concurrent appends to
// the same id cannot interleave into a corrupted turn list (last writer
// wins at the storage layer).
type Store interface {
	Load(ctx context.Context, id string) (*types.ConversationSession, error)
	Save(ctx context.Context, session *types.ConversationSession) error
}

// MemoryStore keeps sessions in process memory. Used by tests and by the
// one-shot CLI commands; the server runs on the Postgres store.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]types.ConversationSession
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]types.ConversationSession)}
}

// Load returns a copy of the stored session, or (nil, nil) if unknown.
func (s *MemoryStore) Load(_ context.Context, id string) (*types.ConversationSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}

	copied := types.ConversationSession{ID: stored.ID, Turns: make([]types.Turn, len(stored.Turns))}
	copy(copied.Turns, stored.Turns)
	return &copied, nil
}

// Save stores a copy of the session, replacing any previous state.
func (s *MemoryStore) Save(_ context.Context, session *types.ConversationSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := types.ConversationSession{ID: session.ID, Turns: make([]types.Turn, len(session.Turns))}
	copy(copied.Turns, session.Turns)
	s.sessions[session.ID] = copied
	return nil
}
