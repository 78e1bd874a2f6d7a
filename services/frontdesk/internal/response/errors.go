package response

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/diagnosis/hotel-frontdesk/pkg/logger"
	"github.com/diagnosis/hotel-frontdesk/services/frontdesk/internal/domain"
)

// ErrorResponse is the JSON body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
	Field string `json:"field,omitempty"`

	// set on conflicts
	ConflictingReservationID int64  `json:"conflicting_reservation_id,omitempty"`
	ConflictingStay          string `json:"conflicting_stay,omitempty"`
}

const (
	CodeInvalidInput  = "INVALID_INPUT"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeForbidden     = "FORBIDDEN"
	CodeNotFound      = "NOT_FOUND"
	CodeConflict      = "CONFLICT"
	CodeInternalError = "INTERNAL_ERROR"
	CodeInvalidToken  = "INVALID_TOKEN"
)

func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func WriteError(w http.ResponseWriter, statusCode int, message, code string) {
	JSON(w, statusCode, ErrorResponse{Error: message, Code: code})
}

func Unauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, message, CodeUnauthorized)
}

// FromError maps a service error to its status code. Infrastructure faults
// are logged and reported without detail.
func FromError(ctx context.Context, w http.ResponseWriter, err error) {
	switch domain.Kind(err) {
	case domain.KindValidation:
		body := ErrorResponse{Error: err.Error(), Code: CodeInvalidInput}
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			body.Field = ve.Field
		}
		JSON(w, http.StatusBadRequest, body)
	case domain.KindConflict:
		body := ErrorResponse{Error: err.Error(), Code: CodeConflict}
		var ce *domain.ConflictError
		if errors.As(err, &ce) {
			body.ConflictingReservationID = ce.ExistingID
			body.ConflictingStay = ce.Existing.String()
		}
		JSON(w, http.StatusConflict, body)
	case domain.KindForbidden:
		WriteError(w, http.StatusForbidden, err.Error(), CodeForbidden)
	case domain.KindNotFound:
		WriteError(w, http.StatusNotFound, err.Error(), CodeNotFound)
	default:
		logger.ErrorContext(ctx, "Request failed", "error", err)
		WriteError(w, http.StatusInternalServerError, "internal server error", CodeInternalError)
	}
}
