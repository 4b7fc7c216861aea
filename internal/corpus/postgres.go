package corpus

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/certmatch/internal/types"
)

// PostgresRepository reads standards and candidates from PostgreSQL and
// persists embedding backfills. Schema management (migrations) is a
// collaborator concern.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool and verifies it.
func Connect(ctx context.Context, databaseURL string) (*PostgresRepository, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{pool: pool}, nil
}

// Pool exposes the underlying pool so sibling stores (sessions) can
// share the connection.
func (r *PostgresRepository) Pool() *pgxpool.Pool {
	return r.pool
}

// Close closes the connection pool.
func (r *PostgresRepository) Close() {
	if r.pool != nil {
		r.pool.Close()
	}
}

// ListStandards returns every standard, embedded or not.
func (r *PostgresRepository) ListStandards(ctx context.Context) ([]types.Standard, error) {
	return r.listStandards(ctx, false)
}

// ListStandardsWithEmbeddings returns only standards with a computed
// embedding.
func (r *PostgresRepository) ListStandardsWithEmbeddings(ctx context.Context) ([]types.Standard, error) {
	return r.listStandards(ctx, true)
}

func (r *PostgresRepository) listStandards(ctx context.Context, embeddedOnly bool) ([]types.Standard, error) {
	query := `SELECT code, title, description, category, embedding
		FROM standards`
	if embeddedOnly {
		query += ` WHERE embedding IS NOT NULL`
	}
	query += ` ORDER BY code`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list standards: %w", err)
	}
	defer rows.Close()

	var standards []types.Standard
	for rows.Next() {
		var std types.Standard
		if err := rows.Scan(&std.Code, &std.Title, &std.Description, &std.Category, &std.Embedding); err != nil {
			return nil, fmt.Errorf("failed to scan standard: %w", err)
		}
		standards = append(standards, std)
	}
	return standards, rows.Err()
}

// SaveEmbedding backfills the vector for one standard.
func (r *PostgresRepository) SaveEmbedding(ctx context.Context, code string, vector []float32) error {
	result, err := r.pool.Exec(ctx,
		`UPDATE standards SET embedding = $1 WHERE code = $2`,
		vector, code,
	)
	if err != nil {
		return fmt.Errorf("failed to save embedding for %s: %w", code, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("standard not found: %s", code)
	}
	return nil
}

// ListCandidates returns candidate profiles matching the filter. A
// candidate whose certifications column fails to parse is skipped, not
// fatal; the matching pass continues over the rest of the pool.
func (r *PostgresRepository) ListCandidates(ctx context.Context, filter CandidateFilter) ([]types.CandidateProfile, error) {
	query := `SELECT id, location, education_level, objectives, experiences, certifications
		FROM candidates`
	args := []any{}
	if filter.Location != "" {
		query += ` WHERE location ILIKE $1`
		args = append(args, filter.Location)
	}
	query += ` ORDER BY id`
	if filter.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, filter.Limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	var candidates []types.CandidateProfile
	for rows.Next() {
		var candidate types.CandidateProfile
		var certsJSON []byte
		if err := rows.Scan(&candidate.ID, &candidate.Location, &candidate.EducationLevel,
			&candidate.Objectives, &candidate.Experiences, &certsJSON); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		if len(certsJSON) > 0 {
			if err := json.Unmarshal(certsJSON, &candidate.Certifications); err != nil {
				// Malformed certifications only disqualify this candidate.
				continue
			}
		}
		candidates = append(candidates, candidate)
	}
	return candidates, rows.Err()
}
