package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"incident-registry/core/incidents"
	"incident-registry/core/store"
	"incident-registry/core/utils"
)

var errEmptyPayload = errors.New("empty payload")

type IncidentsHandler struct {
	svc    *incidents.Service
	logger *utils.Logger
}

func NewIncidentsHandler(svc *incidents.Service, logger *utils.Logger) *IncidentsHandler {
	return &IncidentsHandler{svc: svc, logger: logger}
}

func (h *IncidentsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *IncidentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	payload, err := decodeObject(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "payload too large")
			return
		}
		writeError(w, http.StatusBadRequest, errInvalidPayload)
		return
	}
	var in store.CreateIncidentInput
	for key, dst := range map[string]**string{
		"title":       &in.Title,
		"description": &in.Description,
		"status":      &in.Status,
	} {
		val, err := stringField(payload, key)
		if err != nil {
			writeError(w, http.StatusBadRequest, errInvalidPayload)
			return
		}
		*dst = val
	}
	created, err := h.svc.Create(r.Context(), in)
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *IncidentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := incidentIDParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, errIncidentNotFound)
		return
	}
	incident, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, incident)
}

// Update changes only the status. An unknown id is reported before any
// problem with the body, so a malformed body is passed on as a missing status.
func (h *IncidentsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := incidentIDParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, errIncidentNotFound)
		return
	}
	var status *string
	if payload, err := decodeObject(r); err == nil {
		if val, err := stringField(payload, "status"); err == nil {
			status = val
		}
	}
	updated, err := h.svc.UpdateStatus(r.Context(), id, status)
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *IncidentsHandler) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *store.ValidationError
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, errIncidentNotFound)
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Message)
	default:
		if h.logger != nil {
			h.logger.Errorf("incidents %s %s: %v", r.Method, r.URL.Path, err)
		}
		writeError(w, http.StatusInternalServerError, errInternal)
	}
}

// decodeObject reads a JSON object body. A missing body, a non-object value
// and an empty object are all rejected.
func decodeObject(r *http.Request) (map[string]json.RawMessage, error) {
	if r.Body == nil {
		return nil, errEmptyPayload
	}
	var payload map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return nil, err
	}
	if len(payload) == 0 {
		return nil, errEmptyPayload
	}
	return payload, nil
}

// stringField returns nil when key is absent or null.
func stringField(payload map[string]json.RawMessage, key string) (*string, error) {
	raw, ok := payload[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, nil
	}
	var val string
	if err := json.Unmarshal(raw, &val); err != nil {
		return nil, fmt.Errorf("field %q: %w", key, err)
	}
	return &val, nil
}
