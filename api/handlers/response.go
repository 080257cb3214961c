package handlers

import (
	"encoding/json"
	"net/http"
)

const (
	errInvalidPayload   = "Invalid JSON payload"
	errIncidentNotFound = "Incident not found"
	errInternal         = "internal server error"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
