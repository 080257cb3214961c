package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"incident-registry/core/incidents"
	"incident-registry/core/store"
	"incident-registry/core/utils"
)

func newTestHandler() *IncidentsHandler {
	svc := incidents.NewService(store.NewMemoryIncidentsStore(), nil, utils.NewNopLogger())
	return NewIncidentsHandler(svc, utils.NewNopLogger())
}

func do(h http.HandlerFunc, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func decodeIncident(t *testing.T, rr *httptest.ResponseRecorder) store.Incident {
	t.Helper()
	var inc store.Incident
	if err := json.Unmarshal(rr.Body.Bytes(), &inc); err != nil {
		t.Fatalf("decode incident %q: %v", rr.Body.String(), err)
	}
	return inc
}

func errorBody(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", rr.Body.String(), err)
	}
	return body["error"]
}

func TestCreateIncidentHandler(t *testing.T) {
	h := newTestHandler()
	rr := do(h.Create, http.MethodPost, "/incidents", `{"title":"Coffee maker broken","description":"Leaking water"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	want := store.Incident{ID: 1, Title: "Coffee maker broken", Description: "Leaking water", Status: "open"}
	if diff := cmp.Diff(want, decodeIncident(t, rr)); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if rr.Header().Get("Content-Type") != "application/json" {
		t.Fatalf("expected json content type")
	}
}

func TestCreateIncidentHandlerRejections(t *testing.T) {
	cases := []struct {
		name string
		body string
		code int
		msg  string
	}{
		{name: "no body", body: "", code: http.StatusBadRequest, msg: errInvalidPayload},
		{name: "malformed", body: `{"title":`, code: http.StatusBadRequest, msg: errInvalidPayload},
		{name: "empty object", body: `{}`, code: http.StatusBadRequest, msg: errInvalidPayload},
		{name: "json null", body: `null`, code: http.StatusBadRequest, msg: errInvalidPayload},
		{name: "array", body: `[1,2]`, code: http.StatusBadRequest, msg: errInvalidPayload},
		{name: "non string title", body: `{"title":5,"description":"d"}`, code: http.StatusBadRequest, msg: errInvalidPayload},
		{name: "missing title", body: `{"description":"d"}`, code: http.StatusBadRequest, msg: "'title' and 'description' are required fields"},
		{name: "null description", body: `{"title":"t","description":null}`, code: http.StatusBadRequest, msg: "'title' and 'description' are required fields"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newTestHandler()
			rr := do(h.Create, http.MethodPost, "/incidents", tc.body)
			if rr.Code != tc.code {
				t.Fatalf("expected %d, got %d: %s", tc.code, rr.Code, rr.Body.String())
			}
			if got := errorBody(t, rr); got != tc.msg {
				t.Fatalf("expected error %q, got %q", tc.msg, got)
			}
			// rejected requests must not consume an id
			ok := do(h.Create, http.MethodPost, "/incidents", `{"title":"t","description":"d"}`)
			if inc := decodeIncident(t, ok); inc.ID != 1 {
				t.Fatalf("expected id 1 after rejected create, got %d", inc.ID)
			}
		})
	}
}

func TestCreateKeepsExplicitStatusAndEmptyStrings(t *testing.T) {
	h := newTestHandler()
	rr := do(h.Create, http.MethodPost, "/incidents", `{"title":"","description":"","status":"inprogress"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rr.Code)
	}
	inc := decodeIncident(t, rr)
	if inc.Status != "inprogress" || inc.Title != "" || inc.Description != "" {
		t.Fatalf("unexpected incident %+v", inc)
	}
}

func TestUpdateIncidentHandler(t *testing.T) {
	h := newTestHandler()
	do(h.Create, http.MethodPost, "/incidents", `{"title":"t","description":"d"}`)

	rr := do(h.Update, http.MethodPut, "/incidents/1", `{"status":"closed"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if inc := decodeIncident(t, rr); inc.Status != "closed" || inc.Title != "t" {
		t.Fatalf("unexpected incident %+v", inc)
	}

	// title is immutable through update
	rr = do(h.Update, http.MethodPut, "/incidents/1", `{"status":"open","title":"changed"}`)
	if inc := decodeIncident(t, rr); inc.Title != "t" || inc.Status != "open" {
		t.Fatalf("unexpected incident %+v", inc)
	}
}

func TestUpdateIncidentHandlerErrors(t *testing.T) {
	h := newTestHandler()
	do(h.Create, http.MethodPost, "/incidents", `{"title":"t","description":"d"}`)

	cases := []struct {
		name string
		path string
		body string
		code int
		msg  string
	}{
		{name: "unknown id", path: "/incidents/99", body: `{"status":"closed"}`, code: http.StatusNotFound, msg: errIncidentNotFound},
		{name: "unknown id with bad body", path: "/incidents/99", body: `nope`, code: http.StatusNotFound, msg: errIncidentNotFound},
		{name: "zero id", path: "/incidents/0", body: `{"status":"closed"}`, code: http.StatusNotFound, msg: errIncidentNotFound},
		{name: "missing status", path: "/incidents/1", body: `{"state":"closed"}`, code: http.StatusBadRequest, msg: "'status' field is required"},
		{name: "null status", path: "/incidents/1", body: `{"status":null}`, code: http.StatusBadRequest, msg: "'status' field is required"},
		{name: "no body", path: "/incidents/1", body: "", code: http.StatusBadRequest, msg: "'status' field is required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := do(h.Update, http.MethodPut, tc.path, tc.body)
			if rr.Code != tc.code {
				t.Fatalf("expected %d, got %d: %s", tc.code, rr.Code, rr.Body.String())
			}
			if got := errorBody(t, rr); got != tc.msg {
				t.Fatalf("expected error %q, got %q", tc.msg, got)
			}
		})
	}

	rr := do(h.Get, http.MethodGet, "/incidents/1", "")
	if inc := decodeIncident(t, rr); inc.Status != "open" {
		t.Fatalf("failed updates changed status to %q", inc.Status)
	}
}

func TestListAndGetHandlers(t *testing.T) {
	h := newTestHandler()
	rr := do(h.List, http.MethodGet, "/incidents", "")
	if rr.Code != http.StatusOK || strings.TrimSpace(rr.Body.String()) != "[]" {
		t.Fatalf("expected empty array, got %d %q", rr.Code, rr.Body.String())
	}

	do(h.Create, http.MethodPost, "/incidents", `{"title":"a","description":"1"}`)
	do(h.Create, http.MethodPost, "/incidents", `{"title":"b","description":"2"}`)

	rr = do(h.List, http.MethodGet, "/incidents", "")
	var items []store.Incident
	if err := json.Unmarshal(rr.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(items) != 2 || items[0].ID != 1 || items[1].ID != 2 {
		t.Fatalf("unexpected list %+v", items)
	}

	rr = do(h.Get, http.MethodGet, "/incidents/2", "")
	if inc := decodeIncident(t, rr); inc.Title != "b" {
		t.Fatalf("unexpected get %+v", inc)
	}
	rr = do(h.Get, http.MethodGet, "/incidents/3", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestHealthCheck(t *testing.T) {
	rr := do(NewHealthHandler().Check, http.MethodGet, "/", "")
	if rr.Code != http.StatusOK || strings.TrimSpace(rr.Body.String()) != `{"status":"ok"}` {
		t.Fatalf("unexpected health response %d %q", rr.Code, rr.Body.String())
	}
}
