package api

import (
	"encoding/json"
	"net/http"
	"time"
)

// envelope is the fixed JSON response shape. Exactly one of Data and
// Error is set; Timestamp is unix seconds.
type envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// writeSuccess writes a 200 success envelope around data.
func writeSuccess(w http.ResponseWriter, data any) {
	writeEnvelope(w, http.StatusOK, envelope{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().Unix(),
	})
}

// writeError writes an error envelope with the given status.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeEnvelope(w, statusCode, envelope{
		Success:   false,
		Error:     message,
		Timestamp: time.Now().Unix(),
	})
}

// writeEnvelope serialises an envelope.
func writeEnvelope(w http.ResponseWriter, statusCode int, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	//nolint:errcheck // Best-effort write; connection may be closed
	json.NewEncoder(w).Encode(env)
}

// writeBadRequest writes a 400 error envelope.
func writeBadRequest(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, message)
}

// writeUnauthorized writes a 401 error envelope.
func writeUnauthorized(w http.ResponseWriter, message string) {
	writeError(w, http.StatusUnauthorized, message)
}

// writeForbidden writes a 403 error envelope.
func writeForbidden(w http.ResponseWriter, message string) {
	writeError(w, http.StatusForbidden, message)
}

// writeNotFound writes a 404 error envelope.
func writeNotFound(w http.ResponseWriter, message string) {
	writeError(w, http.StatusNotFound, message)
}

// writeInternalError writes a 500 error envelope.
func writeInternalError(w http.ResponseWriter, message string) {
	writeError(w, http.StatusInternalServerError, message)
}

// writeUnavailable writes a 503 error envelope.
func writeUnavailable(w http.ResponseWriter, message string) {
	writeError(w, http.StatusServiceUnavailable, message)
}
