package api

import (
	"errors"
	"net/http"

	"explorerScope/internal/explorer"
	"explorerScope/internal/normalize"
	"explorerScope/internal/search"
	"explorerScope/internal/shape"
	"explorerScope/internal/storage"
)

const (
	CodeUnsupportedQuery = "UNSUPPORTED_QUERY"
	CodeInternal         = "INTERNAL"
	CodeBadResult        = "BAD_RESULT"
	CodeDataIntegrity    = "DATA_INTEGRITY"
	CodeNotFound         = "NOT_FOUND"
	CodeBadRequest       = "BAD_REQUEST"
	CodeUpstream         = "UPSTREAM"
	CodeRateLimited      = "RATE_LIMITED"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// classifyError maps a resolution error to its status and response body.
// Anything not recognized is treated as an upstream failure.
func classifyError(err error) (int, ErrorResponse) {
	var (
		violation *shape.ViolationError
		marker    *normalize.MissingMarkerError
		field     *normalize.MissingFieldError
	)
	switch {
	case errors.Is(err, search.ErrUnrecognized):
		return http.StatusUnprocessableEntity, ErrorResponse{Code: CodeUnsupportedQuery, Message: "unsupported search query"}
	case errors.Is(err, search.ErrNormalizationFailed):
		return http.StatusInternalServerError, ErrorResponse{Code: CodeInternal, Message: "could not search query"}
	case errors.As(err, &violation):
		return http.StatusBadGateway, ErrorResponse{Code: CodeBadResult, Message: "could not process result: " + violation.Field}
	case errors.As(err, &marker):
		return http.StatusInternalServerError, ErrorResponse{Code: CodeDataIntegrity, Message: marker.Error()}
	case errors.As(err, &field):
		return http.StatusInternalServerError, ErrorResponse{Code: CodeDataIntegrity, Message: field.Error()}
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound, ErrorResponse{Code: CodeNotFound, Message: "no record matches the query"}
	case errors.Is(err, explorer.ErrInvalidPage):
		return http.StatusBadRequest, ErrorResponse{Code: CodeBadRequest, Message: err.Error()}
	default:
		return http.StatusServiceUnavailable, ErrorResponse{Code: CodeUpstream, Message: "data source unavailable"}
	}
}
