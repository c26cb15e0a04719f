package dto

import (
	"net/http"
	"strings"
)

// General error codes
const (
	ErrCodeUnknown      = "UNKNOWN_ERROR"
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeValidation   = "VALIDATION_ERROR"

	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes carrying an INVALID_ prefix default to 400 without needing an
// entry here; unknown codes map to 500.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:         http.StatusInternalServerError,
	ErrCodeInternal:        http.StatusInternalServerError,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeUnauthorized:    http.StatusUnauthorized,
	ErrCodeForbidden:       http.StatusForbidden,
	ErrCodeNotFound:        http.StatusNotFound,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,

	"ALREADY_EXISTS":        http.StatusConflict,
	"CONCURRENCY_CONFLICT":  http.StatusConflict,
	"OPTIMISTIC_LOCK_ERROR": http.StatusConflict,

	// Business rule violations -> 422 Unprocessable Entity
	"INVALID_STATE":          http.StatusUnprocessableEntity,
	"INSUFFICIENT_BALANCE":   http.StatusUnprocessableEntity,
	"EMPTY_BATCH":            http.StatusUnprocessableEntity,
	"TERMS_NOT_ACCEPTED":     http.StatusUnprocessableEntity,
	"BULK_RESOLUTION_FAILED": http.StatusUnprocessableEntity,
	"SERVICE_NOT_FOUND":      http.StatusUnprocessableEntity,

	// Upload problems are client errors
	"INVALID_UPLOAD": http.StatusBadRequest,
	"EMPTY_UPLOAD":   http.StatusBadRequest,

	"TOKEN_EXPIRED": http.StatusUnauthorized,
	"INVALID_TOKEN": http.StatusUnauthorized,
}

// GetHTTPStatus returns the HTTP status code for an error code
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
