package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/kepran/PickemBot_Go/internal/domain"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent at this point
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"

	ErrMsgInvalidSelectionError = "That choice does not match any option on this poll"
	ErrMsgMatchNotFoundError    = "Match not found"
	ErrMsgQuestionNotFoundError = "Bonus question not found"
	ErrMsgUserNotFoundError     = "User not found"
	ErrMsgAlreadySettledError   = "That match already has a result"
	ErrMsgAnswerLimitError      = "You have already used all your answers for this question"
	ErrMsgAlreadyFinalizedError = "That question has already been finalized"
	ErrMsgPeriodOrderingError   = "Periods must move forward"
	ErrMsgInvalidFormatError    = "Match format must be BO1, BO3 or BO5"
	ErrMsgInvalidInputError     = "Invalid request. Please check your inputs."
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrInvalidSelection):
		return http.StatusBadRequest, ErrMsgInvalidSelectionError
	case errors.Is(err, domain.ErrMatchNotFound):
		return http.StatusNotFound, ErrMsgMatchNotFoundError
	case errors.Is(err, domain.ErrQuestionNotFound):
		return http.StatusNotFound, ErrMsgQuestionNotFoundError
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, ErrMsgUserNotFoundError
	case errors.Is(err, domain.ErrAlreadySettled):
		return http.StatusConflict, ErrMsgAlreadySettledError
	case errors.Is(err, domain.ErrAnswerLimitReached):
		return http.StatusConflict, ErrMsgAnswerLimitError
	case errors.Is(err, domain.ErrAlreadyFinalized):
		return http.StatusConflict, ErrMsgAlreadyFinalizedError
	case errors.Is(err, domain.ErrPeriodOrdering):
		return http.StatusConflict, ErrMsgPeriodOrderingError
	case errors.Is(err, domain.ErrInvalidFormat):
		return http.StatusBadRequest, ErrMsgInvalidFormatError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	}

	// For wrapped errors with domain errors as the base, try unwrapping
	unwrapped := errors.Unwrap(err)
	if unwrapped != nil && unwrapped != err {
		return mapServiceErrorToUserMessage(unwrapped)
	}

	errMsg := err.Error()
	if errMsg != "" && len(errMsg) < 200 {
		return http.StatusInternalServerError, errMsg
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
