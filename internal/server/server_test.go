package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/certmatch/internal/config"
	"github.com/jonathan/certmatch/internal/corpus"
	"github.com/jonathan/certmatch/internal/recommend"
	"github.com/jonathan/certmatch/internal/retrieval"
	"github.com/jonathan/certmatch/internal/session"
	"github.com/jonathan/certmatch/internal/types"
)

type staticEmbedder struct{ vector []float32 }

func (s *staticEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	return s.vector, nil
}

func (s *staticEmbedder) Close() error { return nil }

type staticLLM struct{ answer string }

func (s *staticLLM) Complete(_ context.Context, _ string) (string, error) {
	return s.answer, nil
}

func (s *staticLLM) Close() error { return nil }

func testServer(t *testing.T) *Server {
	t.Helper()

	repo := corpus.NewMemoryRepository(
		[]types.Standard{
			{Code: "EC0217", Title: "Impartición de cursos", Category: "Educación",
				Description: "Impartir cursos de formación.", Embedding: []float32{1, 0}},
		},
		[]types.CandidateProfile{
			{ID: "c-1", EducationLevel: "Licenciatura",
				Certifications: []types.CertificationProgress{
					{StandardCode: "EC0217", CompletedModules: 3, TotalModules: 3},
				}},
		},
	)

	indexer := retrieval.NewIndexer(repo, nil)
	_, err := indexer.Rebuild(context.Background())
	require.NoError(t, err)

	orchestrator := recommend.New(config.Default(), indexer, &staticEmbedder{vector: []float32{1, 0}},
		&staticLLM{answer: "EC0217 aplica."}, session.NewMemoryStore(), repo)

	srv, err := New(Config{Port: 0, Orchestrator: orchestrator, Indexer: indexer})
	require.NoError(t, err)
	return srv
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	rec := doJSON(t, testServer(t), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleChat_OK(t *testing.T) {
	rec := doJSON(t, testServer(t), http.MethodPost, "/chat",
		map[string]string{"message": "¿Cómo doy cursos?"})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp recommend.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "EC0217 aplica.", resp.Message)
	assert.NotEmpty(t, resp.SessionID)
}

func TestHandleChat_MissingMessage(t *testing.T) {
	rec := doJSON(t, testServer(t), http.MethodPost, "/chat", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleChat_InvalidJSON(t *testing.T) {
	srv := testServer(t)
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewBufferString("{nope"))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleMatch_OK(t *testing.T) {
	rec := doJSON(t, testServer(t), http.MethodPost, "/match", map[string]any{
		"criteria": map[string]any{
			"required_standards": []string{"EC0217"},
			"education_level":    "Licenciatura",
		},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp recommend.MatchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Candidates, 1)
	assert.Equal(t, "c-1", resp.Candidates[0].CandidateID)
}

func TestHandleMatch_SchemaViolation(t *testing.T) {
	rec := doJSON(t, testServer(t), http.MethodPost, "/match", map[string]any{
		"criteria": map[string]any{"required_standards": "not-an-array"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleMatch_MissingCriteria(t *testing.T) {
	rec := doJSON(t, testServer(t), http.MethodPost, "/match", map[string]any{"limit": 2})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleRecommend_CriteriaRunsMatching(t *testing.T) {
	rec := doJSON(t, testServer(t), http.MethodPost, "/recommend", map[string]any{
		"message": "ignored when criteria present",
		"criteria": map[string]any{
			"required_standards": []string{"EC0217"},
		},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp recommend.RecommendResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Nil(t, resp.Chat)
	require.NotNil(t, resp.Match)
}

func TestHandleRecommend_MessageRunsChat(t *testing.T) {
	rec := doJSON(t, testServer(t), http.MethodPost, "/recommend",
		map[string]any{"message": "hola"})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp recommend.RecommendResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Chat)
	assert.Equal(t, "EC0217 aplica.", resp.Chat.Message)
}

func TestHandleIndexStatus(t *testing.T) {
	rec := doJSON(t, testServer(t), http.MethodGet, "/index/status", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var status map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, true, status["ready"])
	assert.Equal(t, float64(1), status["standards"])
}

func TestHandleIndexRebuild(t *testing.T) {
	rec := doJSON(t, testServer(t), http.MethodPost, "/index/rebuild", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(2), body["version"], "rebuild bumps the snapshot version")
}

func TestRateLimitHeadersPresent(t *testing.T) {
	rec := doJSON(t, testServer(t), http.MethodPost, "/chat",
		map[string]string{"message": "hola"})
	assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Limit"))
}

func TestCORSPreflight(t *testing.T) {
	srv := testServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/chat", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
