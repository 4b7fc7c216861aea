// Package corpus provides read access to the standards reference data
// and the candidate pool. Source of truth lives outside the core; the
// only write the core ever performs is the embedding backfill.
package corpus

import (
	"context"
	"strings"
	"sync"

	"github.com/jonathan/certmatch/internal/types"
)

// StandardRepository is the entity corpus contract.
type StandardRepository interface {
	// ListStandards returns every standard, embedded or not.
	ListStandards(ctx context.Context) ([]types.Standard, error)
	// ListStandardsWithEmbeddings returns only standards whose embedding
	// has been computed. Used to detect "index not ready".
	ListStandardsWithEmbeddings(ctx context.Context) ([]types.Standard, error)
	// SaveEmbedding backfills the vector for one standard.
	SaveEmbedding(ctx context.Context, code string, vector []float32) error
}

// CandidateFilter narrows the candidate pool read.
type CandidateFilter struct {
	Location string
	Limit    int
}

// CandidatePool is the read-only candidate source for the matching path.
type CandidatePool interface {
	ListCandidates(ctx context.Context, filter CandidateFilter) ([]types.CandidateProfile, error)
}

// MemoryRepository is an in-memory StandardRepository and CandidatePool
// used by tests and the offline CLI commands.
type MemoryRepository struct {
	mu         sync.RWMutex
	standards  []types.Standard
	candidates []types.CandidateProfile
}

// NewMemoryRepository creates a repository seeded with the given data.
func NewMemoryRepository(standards []types.Standard, candidates []types.CandidateProfile) *MemoryRepository {
	return &MemoryRepository{standards: standards, candidates: candidates}
}

// ListStandards returns a copy of every standard.
func (r *MemoryRepository) ListStandards(_ context.Context) ([]types.Standard, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]types.Standard, len(r.standards))
	copy(out, r.standards)
	return out, nil
}

// ListStandardsWithEmbeddings returns a copy of every embedded standard.
func (r *MemoryRepository) ListStandardsWithEmbeddings(_ context.Context) ([]types.Standard, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []types.Standard
	for _, std := range r.standards {
		if std.HasEmbedding() {
			out = append(out, std)
		}
	}
	return out, nil
}

// SaveEmbedding stores the vector on the matching standard.
func (r *MemoryRepository) SaveEmbedding(_ context.Context, code string, vector []float32) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.standards {
		if r.standards[i].Code == code {
			r.standards[i].Embedding = vector
			return nil
		}
	}
	return nil
}

// ListCandidates returns candidates matching the filter.
func (r *MemoryRepository) ListCandidates(_ context.Context, filter CandidateFilter) ([]types.CandidateProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []types.CandidateProfile
	for _, candidate := range r.candidates {
		if filter.Location != "" && !strings.EqualFold(candidate.Location, filter.Location) {
			continue
		}
		out = append(out, candidate)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}
