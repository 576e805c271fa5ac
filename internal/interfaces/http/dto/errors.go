package dto

import (
	"net/http"

	"github.com/shopfeed/backend/internal/domain/shared"
)

// Codes used only by the HTTP layer
const (
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeInternal        = "INTERNAL_ERROR"
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
	ErrCodeRouteNotFound   = "ROUTE_NOT_FOUND"
	ErrCodeRateLimited     = "RATE_LIMIT_EXCEEDED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	shared.CodeValidation:            http.StatusUnprocessableEntity,
	shared.CodeNotAuthenticated:      http.StatusUnauthorized,
	shared.CodeForbidden:             http.StatusForbidden,
	shared.CodeNotFound:              http.StatusNotFound,
	shared.CodeDuplicateEntity:       http.StatusConflict,
	shared.CodeConflict:              http.StatusConflict,
	shared.CodeInvalidState:          http.StatusUnprocessableEntity,
	shared.CodeInvalidURL:            http.StatusBadRequest,
	shared.CodeInvalidBooleanLiteral: http.StatusBadRequest,
	shared.CodeInvalidStatus:         http.StatusBadRequest,
	shared.CodeUpstreamFetch:         http.StatusBadGateway,

	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,
	ErrCodeRouteNotFound:   http.StatusNotFound,
	ErrCodeRateLimited:     http.StatusTooManyRequests,
	ErrCodeInternal:        http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for an error code, 500 when unknown
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
