package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/certmatch/internal/embedding"
	"github.com/jonathan/certmatch/internal/llm"
	"github.com/jonathan/certmatch/internal/recommend"
	"github.com/jonathan/certmatch/internal/retrieval"
	"github.com/jonathan/certmatch/internal/schemas"
)

// HTTPStatus maps typed errors to HTTP status codes.
func HTTPStatus(err error) int {
	var invalidReq *recommend.ErrInvalidRequest
	var invalidQuery *retrieval.ErrInvalidQuery
	var validationErr *schemas.ValidationError
	var embedErr *embedding.ErrEmbeddingUnavailable
	var completionErr *llm.ErrCompletionUnavailable

	switch {
	case errors.As(err, &invalidReq),
		errors.As(err, &invalidQuery),
		errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.Is(err, retrieval.ErrIndexNotReady):
		return http.StatusServiceUnavailable
	case errors.As(err, &embedErr),
		errors.As(err, &completionErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// errorCode returns a stable machine-readable code for the error.
func errorCode(err error) string {
	switch HTTPStatus(err) {
	case http.StatusBadRequest:
		return "invalid_request"
	case http.StatusServiceUnavailable:
		return "index_not_ready"
	case http.StatusBadGateway:
		return "upstream_unavailable"
	default:
		return "internal_error"
	}
}
