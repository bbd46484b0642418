package server

import (
	"encoding/json"
	"net/http"

	"github.com/apex/log"
)

// WriteJSON writes v as a JSON response with the given status. Encoding
// failures are logged since the status line has already been sent.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).WithField("status", status).Warn("encoding JSON response")
	}
}
