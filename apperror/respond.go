package apperror

// This file holds the response-writing helpers shared by every handler
// package. Centralizing them keeps the JSON error contract identical across
// endpoints and avoids an import cycle between the feature packages.

import (
	"encoding/json"
	"log"
	"net/http"
)

// WriteJSON serializes data to JSON and writes it with the given status.
// A nil data value writes only the status line, so 204 responses stay empty.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Encoding failures after the status line is written can only be logged.
			log.Printf("failed to encode response body: %v", err)
		}
	}
}

// WriteError converts any error into the standard JSON error response.
// Errors that are not *AppError are wrapped as generic internal errors so the
// client never sees raw driver or encoding details. Server-side causes of 5xx
// responses are logged here, at the single point every error passes through.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := FromError(err)
	if !ok {
		appErr = NewInternalError("an unexpected error occurred", err)
	}

	if appErr.StatusCode() >= http.StatusInternalServerError {
		log.Printf("%s %s: %v", r.Method, r.URL.Path, appErr)
	}

	WriteJSON(w, appErr.StatusCode(), appErr.ToResponse())
}
