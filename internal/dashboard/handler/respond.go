package handler

import (
	"encoding/json"
	"net/http"

	dErrors "github.com/jtquiroga/DAA-por-region/pkg/domain-errors"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeRaw(w http.ResponseWriter, status int, payload []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}

// writeError translates domain errors into the JSON error envelope.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, dErrors.ToHTTPStatus(err), map[string]string{
		"error":   string(dErrors.CodeOf(err)),
		"message": dErrors.MessageOf(err),
	})
}
