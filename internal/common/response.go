package common

import (
	"encoding/json"
	"net/http"
)

type ErrorResponse struct {
	Success   bool   `json:"success"`
	ErrorType string `json:"errorType"`
	Message   string `json:"message"`
}

func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, ErrorResponse{Success: false, ErrorType: CodeServerError, Message: message})
}

// RespondWithDomainError renders the structured failure payload for a domain error,
// keeping the errorType code the clients key off.
func RespondWithDomainError(w http.ResponseWriter, err error) {
	RespondWithJSON(w, HTTPStatusFromError(err), ErrorResponse{
		Success:   false,
		ErrorType: ErrorCode(err),
		Message:   err.Error(),
	})
}

func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
