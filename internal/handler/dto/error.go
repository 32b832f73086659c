package dto

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mtlprog/complytrack/internal/domain"
)

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error code and message.
type ErrorDetail struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable,omitempty"`
}

// NewErrorResponse creates a new error response.
func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: ErrorDetail{
			Code:      code,
			Message:   message,
			Retryable: code == CodeConcurrentModification,
		},
	}
}

// Error codes returned to clients.
const (
	CodeNotFound               = "NOT_FOUND"
	CodeInvalidTransition      = "INVALID_TRANSITION"
	CodeConcurrentModification = "CONCURRENT_MODIFICATION"
	CodeForbidden              = "FORBIDDEN"
	CodeValidation             = "VALIDATION_ERROR"
	CodeComputation            = "COMPUTATION_ERROR"
	CodeTimeout                = "TIMEOUT"
	CodeInvalidToken           = "INVALID_TOKEN"
	CodeInvalidRequest         = "INVALID_REQUEST"
	CodeInvalidJSON            = "INVALID_JSON"
	CodeInternal               = "INTERNAL_ERROR"
	CodeCanceled               = "REQUEST_CANCELED"
)

// StatusClientClosedRequest is reported when the caller went away mid-request.
const StatusClientClosedRequest = 499

// MapDomainError maps domain errors to HTTP status codes and error codes.
// Specific sentinels are checked before the base kinds they wrap.
func MapDomainError(err error) (status int, code string, message string) {
	message = err.Error()

	switch {
	case errors.Is(err, domain.ErrTaskRecordNotFound):
		return http.StatusNotFound, "TASK_RECORD_NOT_FOUND", message
	case errors.Is(err, domain.ErrAssetNotFound):
		return http.StatusNotFound, "ASSET_NOT_FOUND", message
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, CodeNotFound, message

	case errors.Is(err, domain.ErrConcurrentModification):
		return http.StatusConflict, CodeConcurrentModification, message
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, CodeInvalidTransition, message

	case errors.Is(err, domain.ErrNotAssignee):
		return http.StatusForbidden, "NOT_ASSIGNEE", message
	case errors.Is(err, domain.ErrUserInactive):
		return http.StatusUnauthorized, "USER_INACTIVE", message
	case errors.Is(err, domain.ErrMissingActor):
		return http.StatusUnauthorized, CodeInvalidToken, message
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, CodeForbidden, message

	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity, CodeValidation, message

	case errors.Is(err, domain.ErrTimeout):
		return http.StatusGatewayTimeout, CodeTimeout, message
	case errors.Is(err, domain.ErrCanceled), errors.Is(err, context.Canceled):
		return StatusClientClosedRequest, CodeCanceled, message
	case errors.Is(err, domain.ErrComputation):
		return http.StatusServiceUnavailable, CodeComputation, message

	default:
		slog.Error("unmapped domain error returned to client",
			"error", err,
			"error_type", fmt.Sprintf("%T", err),
		)
		return http.StatusInternalServerError, CodeInternal, "Internal server error"
	}
}
