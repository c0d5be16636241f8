package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/playventures/bizlab/internal/domain"
	"github.com/playventures/bizlab/internal/logger"
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

	// Encode to a pooled buffer first so a marshal failure cannot produce a
	// half-written body
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
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

// respondServiceError logs a failed service call and writes the mapped
// user-facing error response
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	log := logger.FromContext(r.Context())
	status, message := mapServiceErrorToUserMessage(err)
	if status >= http.StatusInternalServerError {
		log.Error(opName+" failed", "error", err)
	} else {
		log.Warn(opName+" rejected", "error", err)
	}
	respondError(w, status, message)
}

// User-facing error messages for service errors
const (
	// Generic messages
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"

	// User messages
	ErrMsgUserNotFoundError  = "User not found"
	ErrMsgUsernameTakenError = "Username is already taken"

	// Business and config messages
	ErrMsgBusinessNotFoundError = "Business not found"
	ErrMsgUnknownGameTypeError  = "Unknown game type"
	ErrMsgBadConfigError        = "Business config is invalid"

	// Session messages
	ErrMsgNoActiveSessionError = "No active game session. Start one first"
	ErrMsgSessionEndedError    = "Game session already ended"
	ErrMsgInvalidActionError   = "Invalid game action"

	// Economy messages
	ErrMsgNotEnoughCoinsError = "Not enough coins"
	ErrMsgUpgradeOwnedError   = "Upgrade already owned"
	ErrMsgUpgradeUnknownError = "Upgrade not found"
	ErrMsgAlreadyHiredError   = "Manager already hired for that business"
	ErrMsgNotHiredError       = "No manager hired for that business"

	// Input messages
	ErrMsgInvalidInputError = "Invalid request. Please check your inputs."
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP
// responses. Internal details never reach the client.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusBadRequest, ErrMsgUserNotFoundError
	case errors.Is(err, domain.ErrUsernameTaken):
		return http.StatusBadRequest, ErrMsgUsernameTakenError
	case errors.Is(err, domain.ErrBusinessNotFound):
		return http.StatusBadRequest, ErrMsgBusinessNotFoundError
	case errors.Is(err, domain.ErrUnknownGameType):
		return http.StatusBadRequest, ErrMsgUnknownGameTypeError
	case errors.Is(err, domain.ErrInvalidConfig):
		return http.StatusInternalServerError, ErrMsgBadConfigError
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusBadRequest, ErrMsgNoActiveSessionError
	case errors.Is(err, domain.ErrSessionEnded):
		return http.StatusBadRequest, ErrMsgSessionEndedError
	case errors.Is(err, domain.ErrInvalidAction):
		return http.StatusBadRequest, ErrMsgInvalidActionError
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest, ErrMsgNotEnoughCoinsError
	case errors.Is(err, domain.ErrUpgradeOwned):
		return http.StatusBadRequest, ErrMsgUpgradeOwnedError
	case errors.Is(err, domain.ErrUpgradeNotFound):
		return http.StatusBadRequest, ErrMsgUpgradeUnknownError
	case errors.Is(err, domain.ErrManagerAlreadyHired):
		return http.StatusBadRequest, ErrMsgAlreadyHiredError
	case errors.Is(err, domain.ErrManagerNotHired):
		return http.StatusBadRequest, ErrMsgNotHiredError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	}

	// For wrapped errors with domain errors as the base, try unwrapping
	unwrapped := errors.Unwrap(err)
	if unwrapped != nil && unwrapped != err {
		return mapServiceErrorToUserMessage(unwrapped)
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
