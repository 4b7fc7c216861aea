package server

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/jonathan/certmatch/internal/recommend"
	"github.com/jonathan/certmatch/internal/schemas"
)

// maxRequestBody bounds request payload size.
const maxRequestBody = 1 << 20 // 1 MB

// handleChat handles POST /chat
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req recommend.ChatRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		return
	}

	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid_request", "message is required")
		return
	}

	resp, err := s.orchestrator.Chat(r.Context(), req)
	if err != nil {
		log.Printf("[CHAT] error: %v", err)
		s.errorResponse(w, HTTPStatus(err), errorCode(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleMatch handles POST /match. The criteria document is validated
// against the JSON schema before it reaches the scorer.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid_request", "failed to read request body")
		return
	}

	var raw struct {
		Criteria json.RawMessage `json:"criteria"`
		Limit    int             `json:"limit,omitempty"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid_request", "invalid JSON payload")
		return
	}
	if len(raw.Criteria) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "invalid_request", "criteria is required")
		return
	}

	if err := s.validateCriteria(raw.Criteria); err != nil {
		s.errorResponse(w, HTTPStatus(err), errorCode(err), err.Error())
		return
	}

	var req recommend.MatchRequest
	req.Limit = raw.Limit
	if err := json.Unmarshal(raw.Criteria, &req.Criteria); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid_request", "invalid criteria payload")
		return
	}

	resp, err := s.orchestrator.Match(r.Context(), req)
	if err != nil {
		log.Printf("[MATCH] error: %v", err)
		s.errorResponse(w, HTTPStatus(err), errorCode(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleRecommend handles POST /recommend, the combined entry point.
// Requests carrying criteria run the matching path; otherwise the
// message routes through chat.
func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid_request", "failed to read request body")
		return
	}

	var probe struct {
		Criteria json.RawMessage `json:"criteria"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid_request", "invalid JSON payload")
		return
	}
	if len(probe.Criteria) > 0 {
		if err := s.validateCriteria(probe.Criteria); err != nil {
			s.errorResponse(w, HTTPStatus(err), errorCode(err), err.Error())
			return
		}
	}

	var req recommend.RecommendRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid_request", "invalid JSON payload")
		return
	}

	resp, err := s.orchestrator.Recommend(r.Context(), req)
	if err != nil {
		log.Printf("[RECOMMEND] error: %v", err)
		s.errorResponse(w, HTTPStatus(err), errorCode(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleIndexRebuild handles POST /index/rebuild
func (s *Server) handleIndexRebuild(w http.ResponseWriter, r *http.Request) {
	idx, err := s.indexer.Rebuild(r.Context())
	if err != nil {
		log.Printf("[INDEX] rebuild error: %v", err)
		s.errorResponse(w, HTTPStatus(err), errorCode(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"version":   idx.Version(),
		"standards": idx.Size(),
		"embedded":  idx.Embedded(),
	})
}

// handleIndexStatus handles GET /index/status
func (s *Server) handleIndexStatus(w http.ResponseWriter, _ *http.Request) {
	idx := s.indexer.Current()
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"ready":     idx.Ready(),
		"version":   idx.Version(),
		"standards": idx.Size(),
		"embedded":  idx.Embedded(),
	})
}

// validateCriteria checks the raw criteria document against its schema.
func (s *Server) validateCriteria(doc json.RawMessage) error {
	return schemas.Validate(schemas.MatchCriteriaSchema, doc)
}

// decodeJSON decodes a JSON request body, writing an error response on
// failure.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody))
	if err := dec.Decode(dst); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid_request", "invalid JSON payload")
		return err
	}
	return nil
}

// errorResponse writes a JSON error response
func (s *Server) errorResponse(w http.ResponseWriter, status int, code, message string) {
	s.jsonResponse(w, status, map[string]string{
		"error":   code,
		"message": message,
	})
}
