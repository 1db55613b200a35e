package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/fbsfernando/bot-link-manager/internal/errors"
)

// ErrorResponse is the envelope returned for every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

// WriteError maps an error to its HTTP status and writes the error
// envelope. Internal details never reach the client; only the safe
// user-facing message is serialized.
func WriteError(w http.ResponseWriter, err error) {
	WriteJSON(w, errors.HTTPStatusCode(err), ErrorResponse{
		Success: false,
		Error:   errors.GetUserMessage(err),
	})
}
