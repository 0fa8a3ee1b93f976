package handlers

import (
	"encoding/json"
	"log"
	"net/http"
)

// ErrorDetail is one field-level problem inside a structured error response.
type ErrorDetail struct {
	Field   string `json:"field,omitempty"`
	Reason  string `json:"reason"`
	Current *int   `json:"current,omitempty"`
	Limit   *int   `json:"limit,omitempty"`
}

// AppError is a terminal per-request error surfaced as structured JSON:
// {"error":{"code","message","details"}}.
type AppError struct {
	Status  int
	Code    string
	Message string
	Details []ErrorDetail
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(status int, code, message string, details ...ErrorDetail) *AppError {
	return &AppError{Status: status, Code: code, Message: message, Details: details}
}

func errNotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, "not_found", message)
}

func errValidation(message string, details ...ErrorDetail) *AppError {
	return NewAppError(http.StatusBadRequest, "validation_error", message, details...)
}

type errorBody struct {
	Error struct {
		Code    string        `json:"code"`
		Message string        `json:"message"`
		Details []ErrorDetail `json:"details,omitempty"`
	} `json:"error"`
}

// writeError renders an AppError to the client. Anything else is logged with
// full detail server-side and surfaced as a generic internal error, never
// leaking datastore messages.
func writeError(w http.ResponseWriter, err error) {
	appErr, ok := err.(*AppError)
	if !ok {
		log.Printf("Unexpected error: %v", err)
		appErr = NewAppError(http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}

	var body errorBody
	body.Error.Code = appErr.Code
	body.Error.Message = appErr.Message
	body.Error.Details = appErr.Details

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Error encoding error response: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
