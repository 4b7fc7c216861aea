package retrieval

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/certmatch/internal/embedding"
	"github.com/jonathan/certmatch/internal/types"
)

type fakeSource struct {
	mu        sync.Mutex
	standards []types.Standard
	saved     map[string][]float32
	listErr   error
}

func (f *fakeSource) ListStandards(_ context.Context) ([]types.Standard, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]types.Standard, len(f.standards))
	copy(out, f.standards)
	return out, nil
}

func (f *fakeSource) SaveEmbedding(_ context.Context, code string, vector []float32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saved == nil {
		f.saved = make(map[string][]float32)
	}
	f.saved[code] = vector
	return nil
}

type fakeEmbedder struct {
	mu      sync.Mutex
	calls   int
	failFor map[string]bool
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	for key := range f.failFor {
		if strings.Contains(text, key) {
			return nil, &embedding.ErrEmbeddingUnavailable{Model: "fake", Cause: errors.New("boom")}
		}
	}
	return []float32{1, 0, 0}, nil
}

func (f *fakeEmbedder) Close() error { return nil }

func TestRebuild_BackfillsMissingEmbeddings(t *testing.T) {
	source := &fakeSource{standards: []types.Standard{
		{Code: "EC0217", Title: "Impartición de cursos"},
		{Code: "EC0301", Title: "Diseño de cursos", Embedding: []float32{0, 1, 0}},
	}}
	embedder := &fakeEmbedder{}
	indexer := NewIndexer(source, embedder)

	idx, err := indexer.Rebuild(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, embedder.calls, "only the unembedded standard is embedded")
	assert.Contains(t, source.saved, "EC0217")
	assert.Equal(t, 2, idx.Embedded())
	assert.Equal(t, 1, idx.Version())
	assert.Same(t, idx, indexer.Current())
}

func TestRebuild_EmbeddingFailureSkipsStandard(t *testing.T) {
	source := &fakeSource{standards: []types.Standard{
		{Code: "EC0217", Title: "Impartición de cursos"},
		{Code: "EC0366", Title: "Paneles solares"},
	}}
	embedder := &fakeEmbedder{failFor: map[string]bool{"Paneles": true}}
	indexer := NewIndexer(source, embedder)

	idx, err := indexer.Rebuild(context.Background())
	require.NoError(t, err, "individual embedding failures do not fail the rebuild")

	assert.Equal(t, 1, idx.Embedded())
	assert.NotContains(t, source.saved, "EC0366")
}

func TestRebuild_SourceErrorKeepsOldSnapshot(t *testing.T) {
	source := &fakeSource{standards: []types.Standard{{Code: "EC0217", Embedding: []float32{1}}}}
	indexer := NewIndexer(source, nil)

	first, err := indexer.Rebuild(context.Background())
	require.NoError(t, err)

	source.listErr = errors.New("db down")
	_, err = indexer.Rebuild(context.Background())
	require.Error(t, err)
	assert.Same(t, first, indexer.Current(), "failed rebuild leaves the previous snapshot active")
}

func TestRebuild_NilEmbedderIndexesExistingVectors(t *testing.T) {
	source := &fakeSource{standards: []types.Standard{
		{Code: "EC0217"},
		{Code: "EC0301", Embedding: []float32{0, 1}},
	}}
	indexer := NewIndexer(source, nil)

	idx, err := indexer.Rebuild(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, idx.Embedded())
	assert.Empty(t, source.saved, "no backfill without an embedder")
}

func TestNewIndexer_CurrentNeverNil(t *testing.T) {
	indexer := NewIndexer(&fakeSource{}, nil)
	idx := indexer.Current()
	require.NotNil(t, idx)
	assert.False(t, idx.Ready())
	assert.Equal(t, 0, idx.Version())
}
