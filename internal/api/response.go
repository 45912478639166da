package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// messageResponse is the body of a successful mutation.
type messageResponse struct {
	ID      int64  `json:"id,omitempty"`
	Message string `json:"message"`
}

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("error encoding response", "error", err)
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// storeError logs a persistence failure and answers 500 with the database's
// own message.
func storeError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("store operation failed",
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", GetRequestID(r.Context()),
		"error", err,
	)
	jsonError(w, http.StatusInternalServerError, rootCause(err).Error())
}

// rootCause strips the wrapping added by the store so clients see the
// driver's message.
func rootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}
