package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Leyinc1/manuelbest/internal/apperrors"
	"github.com/Leyinc1/manuelbest/internal/lib/logger/sl"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func JSON(w http.ResponseWriter, log *slog.Logger, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error("failed to encode response", sl.Err(err))
	}
}

func Error(w http.ResponseWriter, log *slog.Logger, status int, message string, err error) {
	resp := ErrorResponse{
		Error: message,
		Code:  codeFor(status),
	}
	if err != nil && status < http.StatusInternalServerError {
		resp.Details = err.Error()
	}
	JSON(w, log, status, resp)
}

// ServiceError maps an error kind to its HTTP status. Unclassified errors are
// reported as 500 without details.
func ServiceError(w http.ResponseWriter, log *slog.Logger, err error) {
	status := StatusFor(err)

	message := apperrors.Message(err)
	if message == "" || status == http.StatusInternalServerError {
		message = http.StatusText(status)
	}

	if status == http.StatusInternalServerError {
		log.Error("request failed", sl.Err(err))
	}

	Error(w, log, status, message, err)
}

func StatusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func codeFor(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return "UNAUTHENTICATED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusConflict:
		return "CONFLICT"
	case http.StatusBadRequest, http.StatusRequestEntityTooLarge:
		return "VALIDATION"
	default:
		return "INTERNAL"
	}
}
