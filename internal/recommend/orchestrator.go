// Package recommend coordinates the recommendation subsystem: it routes
// each request down the semantic chat path or the structured matching
// path and shapes the final response.
package recommend

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/jonathan/certmatch/internal/config"
	"github.com/jonathan/certmatch/internal/corpus"
	"github.com/jonathan/certmatch/internal/embedding"
	"github.com/jonathan/certmatch/internal/llm"
	"github.com/jonathan/certmatch/internal/prompt"
	"github.com/jonathan/certmatch/internal/retrieval"
	"github.com/jonathan/certmatch/internal/scoring"
	"github.com/jonathan/certmatch/internal/session"
	"github.com/jonathan/certmatch/internal/types"
)

// defaultMatchLimit bounds the matching response when the caller does
// not request a limit.
const defaultMatchLimit = 10

// Orchestrator wires the retriever, composer, scorer and clients
// together. Each request is an independent unit of work; the session
// store is the only shared-mutable state.
type Orchestrator struct {
	cfg      *config.Config
	indexer  *retrieval.Indexer
	embedder embedding.Embedder
	llm      llm.Client
	sessions session.Store
	pool     corpus.CandidatePool
	scorer   *scoring.Scorer
	composer *prompt.Composer
}

// New creates an orchestrator.
func New(cfg *config.Config, indexer *retrieval.Indexer, embedder embedding.Embedder,
	llmClient llm.Client, sessions session.Store, pool corpus.CandidatePool) *Orchestrator {
	return &Orchestrator{
		cfg:      cfg,
		indexer:  indexer,
		embedder: embedder,
		llm:      llmClient,
		sessions: sessions,
		pool:     pool,
		scorer:   scoring.NewScorer(cfg.Scoring),
		composer: prompt.NewComposer(cfg.Session.TurnCap),
	}
}

// Recommend dispatches a combined request to the right path: the
// matching path takes precedence when criteria are supplied, otherwise
// the message routes through chat. Exactly one of the response fields is
// set.
func (o *Orchestrator) Recommend(ctx context.Context, req RecommendRequest) (*RecommendResponse, error) {
	if req.Criteria != nil {
		match, err := o.Match(ctx, MatchRequest{Criteria: *req.Criteria, Limit: req.Limit})
		if err != nil {
			return nil, err
		}
		return &RecommendResponse{Match: match}, nil
	}
	if req.Message == "" {
		return nil, &ErrInvalidRequest{Reason: "neither criteria nor message supplied"}
	}
	chat, err := o.Chat(ctx, ChatRequest{Message: req.Message, SessionID: req.SessionID})
	if err != nil {
		return nil, err
	}
	return &RecommendResponse{Chat: chat}, nil
}

// Chat runs the semantic chat path: embed the query, retrieve relevant
// standards (falling back to lexical search when embeddings are
// unavailable or produce nothing), compose the prompt with recent
// history, call the language model and persist both turns.
func (o *Orchestrator) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if req.Message == "" {
		return nil, &ErrInvalidRequest{Reason: "message is empty"}
	}

	// Resolve the session reference once, here, instead of threading a
	// nullable id through every component.
	ref := types.SessionRef{ID: req.SessionID}
	sessionID := ref.ID
	if ref.IsNew() {
		sessionID = uuid.NewString()
	}

	conversation, err := o.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if conversation == nil {
		conversation = &types.ConversationSession{ID: sessionID}
	}

	result, err := o.retrieve(ctx, req.Message)
	if err != nil {
		return nil, err
	}

	payload := o.composer.Compose(result, conversation.Turns, req.Message)
	answer, err := o.llm.Complete(ctx, payload)
	if err != nil {
		// Never fabricate an answer; the caller gets a distinct
		// upstream-unavailable outcome instead.
		return nil, err
	}

	conversation.Append(types.Turn{Role: types.RoleUser, Content: req.Message}, o.cfg.Session.TurnCap)
	conversation.Append(types.Turn{Role: types.RoleAssistant, Content: answer}, o.cfg.Session.TurnCap)
	if err := o.sessions.Save(ctx, conversation); err != nil {
		// The answer is already produced; losing one save costs history,
		// not correctness. At-least-once append semantics are acceptable.
		log.Printf("[chat] failed to save session %s: %v", sessionID, err)
	}

	return shapeChatResponse(answer, sessionID, req.Message, result), nil
}

// retrieve runs vector search with the configured threshold/topK and
// applies the fallback policy: lexical search when the index has no
// embeddings or when the embedding service is down, and again when
// vector search returns nothing above the threshold.
func (o *Orchestrator) retrieve(ctx context.Context, query string) (*types.RetrievalResult, error) {
	index := o.indexer.Current()
	topK := o.cfg.Retrieval.TopK

	queryVector, err := o.embedder.Embed(ctx, query)
	if err != nil {
		var unavailable *embedding.ErrEmbeddingUnavailable
		if errors.As(err, &unavailable) {
			if ctx.Err() != nil {
				return nil, err
			}
			log.Printf("[chat] embedding unavailable, degrading to lexical search: %v", err)
			return index.Lexical(query, topK)
		}
		return nil, err
	}

	result, err := index.Retrieve(queryVector, o.cfg.Retrieval.SimilarityThreshold, topK)
	if errors.Is(err, retrieval.ErrIndexNotReady) {
		lexical, lerr := index.Lexical(query, topK)
		if lerr != nil {
			return nil, lerr
		}
		if lexical.Empty() {
			// Nothing to answer from and no index to blame it on:
			// surface the initializing state instead of a confusing
			// empty answer.
			return nil, retrieval.ErrIndexNotReady
		}
		return lexical, nil
	}
	if err != nil {
		return nil, err
	}

	if result.Empty() {
		return index.Lexical(query, topK)
	}
	return result, nil
}

// Match runs the structured matching path: score every candidate in the
// pool against the criteria, drop those below the floor, rank and
// truncate.
func (o *Orchestrator) Match(ctx context.Context, req MatchRequest) (*MatchResponse, error) {
	if req.Limit < 0 {
		return nil, &ErrInvalidRequest{Reason: "limit must not be negative"}
	}
	limit := req.Limit
	if limit == 0 {
		limit = defaultMatchLimit
	}

	pool, err := o.pool.ListCandidates(ctx, corpus.CandidateFilter{Location: req.Criteria.Location})
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate pool: %w", err)
	}

	ranked := o.scorer.Rank(pool, &req.Criteria, 0)
	total := len(ranked)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	return &MatchResponse{
		Candidates:      ranked,
		TotalMatches:    total,
		TotalConsidered: len(pool),
		SearchCriteria:  req.Criteria,
	}, nil
}
