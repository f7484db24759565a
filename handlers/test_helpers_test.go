package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"bidmanager/services"
)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

// postFormEvent builds a POST RequestEvent with form data and path values.
func postFormEvent(app *pocketbase.PocketBase, path string, form url.Values, pathValues map[string]string) (*core.RequestEvent, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for k, v := range pathValues {
		req.SetPathValue(k, v)
	}
	rec := httptest.NewRecorder()
	return newTestRequestEvent(app, req, rec), rec
}

// getEvent builds a GET RequestEvent with path values.
func getEvent(app *pocketbase.PocketBase, path string, pathValues map[string]string) (*core.RequestEvent, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range pathValues {
		req.SetPathValue(k, v)
	}
	rec := httptest.NewRecorder()
	return newTestRequestEvent(app, req, rec), rec
}

// storedJob reads a job record's document back from the database.
func storedJob(t *testing.T, app *pocketbase.PocketBase, recordID string) *services.Job {
	t.Helper()
	record, err := app.FindRecordById("jobs", recordID)
	if err != nil {
		t.Fatalf("record lookup: %v", err)
	}
	var job services.Job
	if err := record.UnmarshalJSONField("data", &job); err != nil {
		t.Fatalf("stored document unreadable: %v", err)
	}
	return &job
}

// decodeJSON unmarshals a recorded JSON response body.
func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("response is not valid JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return out
}
