package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/certmatch/internal/types"
)

// PostgresStore persists sessions as one JSONB row per session id.
// External TTL/cleanup of stale sessions is a collaborator concern; the
// core never deletes sessions.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a session store over an existing pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Load retrieves a session by id. An unknown id returns (nil, nil).
// Stored data that fails to parse is treated as session-not-found: a
// fresh session is started rather than propagating the corruption.
func (s *PostgresStore) Load(ctx context.Context, id string) (*types.ConversationSession, error) {
	var turnsJSON []byte
	err := s.pool.QueryRow(ctx,
		`SELECT turns FROM chat_sessions WHERE id = $1`,
		id,
	).Scan(&turnsJSON)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load session %s: %w", id, err)
	}

	var turns []types.Turn
	if err := json.Unmarshal(turnsJSON, &turns); err != nil {
		log.Printf("[session] corrupt session %s, starting fresh: %v", id, err)
		return nil, nil
	}

	return &types.ConversationSession{ID: id, Turns: turns}, nil
}

// Save upserts the whole session row. The single-statement upsert keeps
// each append atomic per call.
func (s *PostgresStore) Save(ctx context.Context, session *types.ConversationSession) error {
	turnsJSON, err := json.Marshal(session.Turns)
	if err != nil {
		return fmt.Errorf("failed to marshal session %s: %w", session.ID, err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO chat_sessions (id, turns, updated_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (id) DO UPDATE SET turns = $2, updated_at = NOW()`,
		session.ID, turnsJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to save session %s: %w", session.ID, err)
	}
	return nil
}
