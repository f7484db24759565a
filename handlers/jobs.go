package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"bidmanager/services"
)

// jobSummary is the list-view projection of a job record.
type jobSummary struct {
	RecordID      string `json:"record_id"`
	JobName       string `json:"job_name"`
	BidDueDate    string `json:"bid_due_date"`
	Estimator     string `json:"estimator"`
	BidSheetTotal int    `json:"bid_sheet_total"`
	Updated       string `json:"updated"`
}

// HandleJobList lists all jobs, newest first.
func HandleJobList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		jobsCol, err := app.FindCollectionByNameOrId("jobs")
		if err != nil {
			log.Printf("job_list: %v", err)
			return e.String(http.StatusInternalServerError, "Jobs collection unavailable")
		}

		records, err := app.FindRecordsByFilter(jobsCol, "id != ''", "-updated", 0, 0, nil)
		if err != nil {
			log.Printf("job_list: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to list jobs")
		}

		summaries := make([]jobSummary, 0, len(records))
		for _, record := range records {
			var job services.Job
			if err := record.UnmarshalJSONField("data", &job); err != nil {
				log.Printf("job_list: job %s has an unreadable document: %v", record.Id, err)
				continue
			}
			summaries = append(summaries, jobSummary{
				RecordID:      record.Id,
				JobName:       job.JobName,
				BidDueDate:    job.BidDueDate,
				Estimator:     job.Estimator,
				BidSheetTotal: job.BidSheetTotal,
				Updated:       record.GetDateTime("updated").String(),
			})
		}

		return e.JSON(http.StatusOK, map[string]any{"jobs": summaries})
	}
}

// HandleJobCreate creates a new job. The global config is snapshotted into
// the document so the job stays self-contained.
func HandleJobCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		name := strings.TrimSpace(e.Request.FormValue("name"))
		if name == "" {
			return e.String(http.StatusBadRequest, "Job name is required")
		}

		job := &services.Job{
			JobName: name,
			Config:  services.MergeConfig(loadGlobalConfig(app), nil),
		}
		services.EnsureJobDefaults(job)

		jobsCol, err := app.FindCollectionByNameOrId("jobs")
		if err != nil {
			log.Printf("job_create: %v", err)
			return e.String(http.StatusInternalServerError, "Jobs collection unavailable")
		}

		record := core.NewRecord(jobsCol)
		if err := saveJob(app, record, job); err != nil {
			log.Printf("job_create: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to create job")
		}

		return e.JSON(http.StatusOK, map[string]any{"record_id": record.Id, "job": job})
	}
}

// HandleJobView returns the full job document plus the computed bid lines.
func HandleJobView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		recordID := e.Request.PathValue("id")
		record, job, err := loadJob(app, recordID)
		if err != nil {
			log.Printf("job_view: %v", err)
			return e.String(http.StatusNotFound, "Job not found")
		}

		return e.JSON(http.StatusOK, map[string]any{
			"record_id": record.Id,
			"job":       job,
			"bid_lines": services.BidLines(job),
		})
	}
}

// jobInfoSetters maps form field names onto job-info fields. Checkbox fields
// parse separately below.
var jobInfoSetters = map[string]func(*services.Job, string){
	"job_name":             func(j *services.Job, v string) { j.JobName = v },
	"bid_due_date":         func(j *services.Job, v string) { j.BidDueDate = v },
	"project_number":       func(j *services.Job, v string) { j.ProjectNumber = v },
	"mwd_po":               func(j *services.Job, v string) { j.MWDPO = v },
	"addenda_count":        func(j *services.Job, v string) { j.AddendaCount = v },
	"job_address":          func(j *services.Job, v string) { j.JobAddress = v },
	"plan_source":          func(j *services.Job, v string) { j.PlanSource = v },
	"owner_name":           func(j *services.Job, v string) { j.OwnerName = v },
	"start_date":           func(j *services.Job, v string) { j.StartDate = v },
	"owner_address":        func(j *services.Job, v string) { j.OwnerAddress = v },
	"completion_date":      func(j *services.Job, v string) { j.CompletionDate = v },
	"architects":           func(j *services.Job, v string) { j.Architects = v },
	"fab_start_date":       func(j *services.Job, v string) { j.FabStartDate = v },
	"project_type":         func(j *services.Job, v string) { j.ProjectType = v },
	"fab_due_date":         func(j *services.Job, v string) { j.FabDueDate = v },
	"building_type":        func(j *services.Job, v string) { j.BuildingType = v },
	"wage_data":            func(j *services.Job, v string) { j.WageData = v },
	"estimator":            func(j *services.Job, v string) { j.Estimator = v },
	"project_manager":      func(j *services.Job, v string) { j.ProjectManager = v },
	"contract_type":        func(j *services.Job, v string) { j.ContractType = v },
	"engineer":             func(j *services.Job, v string) { j.Engineer = v },
	"frame_colors":         func(j *services.Job, v string) { j.FrameColors = v },
	"general_contractor":   func(j *services.Job, v string) { j.GeneralContractor = v },
	"field_shop_hours":     func(j *services.Job, v string) { j.FieldShopHours = v },
	"construction_manager": func(j *services.Job, v string) { j.ConstructionManager = v },
	"frame_information":    func(j *services.Job, v string) { j.FrameInformation = v },
	"product_vendors":      func(j *services.Job, v string) { j.ProductVendors = v },
}

// HandleJobInfoUpdate applies the submitted job-info fields. Only fields
// present in the form change.
func HandleJobInfoUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		recordID := e.Request.PathValue("id")
		job, err := mutateJob(app, recordID, func(job *services.Job) error {
			for field, set := range jobInfoSetters {
				if values, ok := e.Request.Form[field]; ok && len(values) > 0 {
					set(job, strings.TrimSpace(values[0]))
				}
			}
			if values, ok := e.Request.Form["walkthrough"]; ok && len(values) > 0 {
				job.Walkthrough = values[0] == "true" || values[0] == "on"
			}
			if values, ok := e.Request.Form["tax_exemption"]; ok && len(values) > 0 {
				job.TaxExemption = values[0] == "true" || values[0] == "on"
			}
			return nil
		})
		if err != nil {
			log.Printf("job_info: %v", err)
			return e.String(http.StatusNotFound, "Job not found")
		}

		return e.JSON(http.StatusOK, map[string]any{"job": job})
	}
}

// HandleJobDelete removes a job record and its session after confirmation.
func HandleJobDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		recordID := e.Request.PathValue("id")
		record, err := app.FindRecordById("jobs", recordID)
		if err != nil {
			return e.String(http.StatusNotFound, "Job not found")
		}

		if !confirmPolicy(e)("Delete this job?") {
			return e.JSON(http.StatusConflict, map[string]any{
				"confirm_required": true,
				"prompt":           "Delete this job? This cannot be undone.",
			})
		}

		if err := app.Delete(record); err != nil {
			log.Printf("job_delete: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to delete job")
		}
		dropSession(recordID)

		return e.JSON(http.StatusOK, map[string]any{"deleted": recordID})
	}
}
