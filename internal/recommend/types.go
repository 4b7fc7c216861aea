package recommend

import (
	"github.com/jonathan/certmatch/internal/types"
)

// ChatRequest is one chat turn. SessionID is empty on the first message;
// the response carries the id to use for continuity.
type ChatRequest struct {
	Message   string `json:"message" validate:"required"`
	SessionID string `json:"session_id,omitempty"`
}

// RelevantStandard is the subset of a standard returned to the caller.
// Similarity is omitted for lexical fallback hits.
type RelevantStandard struct {
	Code        string   `json:"code"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Similarity  *float64 `json:"similarity,omitempty"`
}

// ChatContext summarizes what the answer was grounded on.
type ChatContext struct {
	StandardsFound int    `json:"standards_found"`
	SearchQuery    string `json:"search_query"`
}

// ChatResponse is the chat path response shape.
type ChatResponse struct {
	Message           string             `json:"message"`
	SessionID         string             `json:"session_id"`
	RelevantStandards []RelevantStandard `json:"relevant_standards"`
	Context           ChatContext        `json:"context"`
}

// MatchRequest is one structured matching call. A limit of zero means
// the default; a negative limit is rejected before scoring begins.
type MatchRequest struct {
	Criteria types.MatchCriteria `json:"criteria"`
	Limit    int                 `json:"limit,omitempty"`
}

// RecommendRequest is a combined request that may carry a free-text
// message, structured criteria, or both.
type RecommendRequest struct {
	Message   string               `json:"message,omitempty"`
	SessionID string               `json:"session_id,omitempty"`
	Criteria  *types.MatchCriteria `json:"criteria,omitempty"`
	Limit     int                  `json:"limit,omitempty"`
}

// RecommendResponse carries the outcome of whichever path ran.
type RecommendResponse struct {
	Chat  *ChatResponse  `json:"chat,omitempty"`
	Match *MatchResponse `json:"match,omitempty"`
}

// MatchResponse is the matching path response shape.
type MatchResponse struct {
	Candidates      []types.MatchResult `json:"candidates"`
	TotalMatches    int                 `json:"total_matches"`
	TotalConsidered int                 `json:"total_considered"`
	SearchCriteria  types.MatchCriteria `json:"search_criteria"`
}

// shapeChatResponse maps retrieval hits into the outward response.
func shapeChatResponse(answer, sessionID, query string, result *types.RetrievalResult) *ChatResponse {
	standards := make([]RelevantStandard, 0, len(result.Hits))
	for _, hit := range result.Hits {
		rs := RelevantStandard{
			Code:        hit.Standard.Code,
			Title:       hit.Standard.Title,
			Description: hit.Standard.Description,
			Category:    hit.Standard.Category,
		}
		if !hit.Lexical {
			similarity := hit.Similarity
			rs.Similarity = &similarity
		}
		standards = append(standards, rs)
	}

	return &ChatResponse{
		Message:           answer,
		SessionID:         sessionID,
		RelevantStandards: standards,
		Context: ChatContext{
			StandardsFound: len(standards),
			SearchQuery:    query,
		},
	}
}
