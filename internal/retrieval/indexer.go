package retrieval

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/certmatch/internal/embedding"
	"github.com/jonathan/certmatch/internal/types"
)

// embedConcurrency bounds parallel embedding calls during a rebuild.
const embedConcurrency = 4

// StandardSource is the corpus access the indexer needs: list the
// reference standards and persist backfilled embeddings.
type StandardSource interface {
	ListStandards(ctx context.Context) ([]types.Standard, error)
	SaveEmbedding(ctx context.Context, code string, vector []float32) error
}

// Indexer owns the current index snapshot and rebuilds it on demand.
// Rebuilds are serialized; readers always get a consistent snapshot via
// Current without locking.
type Indexer struct {
	source   StandardSource
	embedder embedding.Embedder

	rebuildMu sync.Mutex
	current   atomic.Pointer[Index]
	version   atomic.Int64
}

// NewIndexer creates an indexer over the given corpus source. The
// embedder may be nil, in which case rebuilds index whatever embeddings
// the corpus already has and never backfill.
func NewIndexer(source StandardSource, embedder embedding.Embedder) *Indexer {
	idx := &Indexer{source: source, embedder: embedder}
	idx.current.Store(NewIndex(nil, 0))
	return idx
}

// Current returns the active index snapshot. Never nil.
func (ix *Indexer) Current() *Index {
	return ix.current.Load()
}

// Rebuild loads the corpus, backfills missing embeddings with bounded
// concurrency, persists them, and atomically swaps in a fresh snapshot.
// Returns the new snapshot. A standard whose embedding fails is indexed
// without a vector and retried on the next rebuild.
func (ix *Indexer) Rebuild(ctx context.Context) (*Index, error) {
	ix.rebuildMu.Lock()
	defer ix.rebuildMu.Unlock()

	standards, err := ix.source.ListStandards(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load standards: %w", err)
	}

	if ix.embedder != nil {
		if err := ix.backfill(ctx, standards); err != nil {
			return nil, err
		}
	}

	version := int(ix.version.Add(1))
	index := NewIndex(standards, version)
	ix.current.Store(index)
	log.Printf("[index] rebuilt: version=%d standards=%d embedded=%d", version, index.Size(), index.embedded)
	return index, nil
}

// backfill embeds every standard that has no vector yet and persists the
// result. Individual embedding failures are logged and skipped; a
// cancelled context aborts the whole rebuild.
func (ix *Indexer) backfill(ctx context.Context, standards []types.Standard) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(embedConcurrency)

	for i := range standards {
		if standards[i].HasEmbedding() {
			continue
		}
		std := &standards[i]
		g.Go(func() error {
			vector, err := ix.embedder.Embed(gctx, embeddingText(std))
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				log.Printf("[index] embedding failed for %s: %v", std.Code, err)
				return nil
			}
			if err := ix.source.SaveEmbedding(gctx, std.Code, vector); err != nil {
				log.Printf("[index] failed to persist embedding for %s: %v", std.Code, err)
				return nil
			}
			std.Embedding = vector
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("index rebuild aborted: %w", err)
	}
	return nil
}

// embeddingText is the canonical text representation of a standard used
// for vectorization.
func embeddingText(std *types.Standard) string {
	return fmt.Sprintf("%s. %s. %s", std.Title, std.Category, std.Description)
}
