package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"bidmanager/services"
)

// HandleBidSheetView returns the computed bid lines and total for a job.
func HandleBidSheetView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		recordID := e.Request.PathValue("id")
		_, job, err := loadJob(app, recordID)
		if err != nil {
			log.Printf("bid_sheet_view: %v", err)
			return e.String(http.StatusNotFound, "Job not found")
		}

		return e.JSON(http.StatusOK, map[string]any{
			"bid_lines":       services.BidLines(job),
			"bid_sheet_total": job.BidSheetTotal,
		})
	}
}

// HandleBidEntryUpdate applies one field edit to a bid-sheet entry. Editing
// a markup field switches the entry's markup source to match.
func HandleBidEntryUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		recordID := e.Request.PathValue("id")
		specID := e.Request.FormValue("spec_id")
		field := e.Request.FormValue("field")
		value := e.Request.FormValue("value")

		job, err := mutateJob(app, recordID, func(job *services.Job) error {
			return services.SetBidEntryField(job, specID, field, value)
		})
		if err != nil {
			return mutationError(e, "bid_entry_update", err)
		}

		return e.JSON(http.StatusOK, map[string]any{
			"bid_lines":       services.BidLines(job),
			"bid_sheet_total": job.BidSheetTotal,
		})
	}
}
