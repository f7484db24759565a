package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"bidmanager/services"
	"bidmanager/testhelpers"
)

func TestHandleJobCreate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleJobCreate(app)

	form := url.Values{}
	form.Set("name", "Riverside Tower")

	e, rec := postFormEvent(app, "/jobs", form, nil)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	body := decodeJSON(t, rec)
	recordID, _ := body["record_id"].(string)
	if recordID == "" {
		t.Fatal("response missing record_id")
	}

	record, err := app.FindRecordById("jobs", recordID)
	if err != nil {
		t.Fatalf("record not persisted: %v", err)
	}
	if record.GetString("name") != "Riverside Tower" {
		t.Errorf("record name = %q", record.GetString("name"))
	}

	var job services.Job
	if err := record.UnmarshalJSONField("data", &job); err != nil {
		t.Fatalf("stored document unreadable: %v", err)
	}
	if job.JobName != "Riverside Tower" {
		t.Errorf("job name = %q", job.JobName)
	}
	if job.Config == nil || len(job.Config.MaterialsTemplate) == 0 {
		t.Error("config snapshot missing from new job")
	}
}

func TestHandleJobCreate_MissingName(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleJobCreate(app)

	e, rec := postFormEvent(app, "/jobs", url.Values{}, nil)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleJobView(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	record := testhelpers.CreateTestJob(t, app, &services.Job{
		JobName:   "View Me",
		CostCodes: []*services.CostCode{{Code: "08 41 13"}},
	})

	handler := HandleJobView(app)
	e, rec := getEvent(app, "/jobs/"+record.Id, map[string]string{"id": record.Id})
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	body := decodeJSON(t, rec)
	if _, ok := body["job"]; !ok {
		t.Error("response missing job")
	}
	lines, ok := body["bid_lines"].([]any)
	if !ok || len(lines) != 1 {
		t.Errorf("bid_lines = %v, want one line", body["bid_lines"])
	}
}

func TestHandleJobView_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	handler := HandleJobView(app)
	e, rec := getEvent(app, "/jobs/missing", map[string]string{"id": "missing"})
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestHandleJobList(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestJob(t, app, &services.Job{JobName: "Job A"})
	testhelpers.CreateTestJob(t, app, &services.Job{JobName: "Job B"})

	handler := HandleJobList(app)
	e, rec := getEvent(app, "/jobs", nil)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	body := decodeJSON(t, rec)
	jobs, ok := body["jobs"].([]any)
	if !ok || len(jobs) != 2 {
		t.Errorf("jobs = %v, want 2 entries", body["jobs"])
	}
}

func TestHandleJobInfoUpdate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	record := testhelpers.CreateTestJob(t, app, &services.Job{JobName: "Old Name"})

	form := url.Values{}
	form.Set("job_name", "New Name")
	form.Set("estimator", "R. Alvarez")
	form.Set("walkthrough", "true")

	handler := HandleJobInfoUpdate(app)
	e, rec := postFormEvent(app, "/jobs/"+record.Id+"/info", form, map[string]string{"id": record.Id})
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\nbody: %s", rec.Code, rec.Body.String())
	}

	saved, err := app.FindRecordById("jobs", record.Id)
	if err != nil {
		t.Fatalf("record lookup: %v", err)
	}
	var job services.Job
	if err := saved.UnmarshalJSONField("data", &job); err != nil {
		t.Fatalf("stored document unreadable: %v", err)
	}
	if job.JobName != "New Name" {
		t.Errorf("job name = %q, want New Name", job.JobName)
	}
	if job.Estimator != "R. Alvarez" {
		t.Errorf("estimator = %q", job.Estimator)
	}
	if !job.Walkthrough {
		t.Error("walkthrough flag not set")
	}
	if saved.GetString("name") != "New Name" {
		t.Errorf("record name = %q, want it to track the job name", saved.GetString("name"))
	}
}

func TestHandleJobDelete_ConfirmFlow(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	record := testhelpers.CreateTestJob(t, app, &services.Job{JobName: "Delete Me"})

	handler := HandleJobDelete(app)

	// Without the confirm flag the delete is refused.
	req := httptest.NewRequest(http.MethodDelete, "/jobs/"+record.Id, nil)
	req.SetPathValue("id", record.Id)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
	if _, err := app.FindRecordById("jobs", record.Id); err != nil {
		t.Fatal("job deleted without confirmation")
	}

	// With confirm=true it goes through.
	req = httptest.NewRequest(http.MethodDelete, "/jobs/"+record.Id+"?confirm=true", nil)
	req.SetPathValue("id", record.Id)
	rec = httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if _, err := app.FindRecordById("jobs", record.Id); err == nil {
		t.Error("job still present after confirmed delete")
	}
}
