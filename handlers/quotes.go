package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cast"

	"bidmanager/services"
)

// HandleQuoteAdd appends a blank quote to a spec's bucket. The spec id comes
// from the spec_id form value since codes contain spaces.
func HandleQuoteAdd(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		recordID := e.Request.PathValue("id")
		specID := e.Request.FormValue("spec_id")

		job, err := mutateJob(app, recordID, func(job *services.Job) error {
			return services.AddQuote(job, specID)
		})
		if err != nil {
			return mutationError(e, "quote_add", err)
		}

		return e.JSON(http.StatusOK, map[string]any{"job": job})
	}
}

// HandleQuoteUpdate applies the submitted quote fields. Only fields present
// in the form change; a price entry autofills a blank date.
func HandleQuoteUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		recordID := e.Request.PathValue("id")
		specID := e.Request.FormValue("spec_id")
		idx := cast.ToInt(e.Request.FormValue("index"))

		var upd services.QuoteUpdate
		if values, ok := e.Request.Form["date"]; ok && len(values) > 0 {
			upd.Date = &values[0]
		}
		if values, ok := e.Request.Form["vendor"]; ok && len(values) > 0 {
			upd.Vendor = &values[0]
		}
		if values, ok := e.Request.Form["price"]; ok && len(values) > 0 {
			upd.Price = &values[0]
		}
		if values, ok := e.Request.Form["surcharge"]; ok && len(values) > 0 {
			upd.Surcharge = &values[0]
		}
		if values, ok := e.Request.Form["notes"]; ok && len(values) > 0 {
			upd.Notes = &values[0]
		}

		job, err := mutateJob(app, recordID, func(job *services.Job) error {
			return services.UpdateQuote(job, specID, idx, upd)
		})
		if err != nil {
			return mutationError(e, "quote_update", err)
		}

		total, avg := services.QuoteSummary(job.Quotes[specID])
		return e.JSON(http.StatusOK, map[string]any{
			"job":         job,
			"quote_total": total,
			"quote_avg":   avg,
		})
	}
}

// HandleQuoteDelete removes one quote, asking for confirmation when it holds
// data.
func HandleQuoteDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		recordID := e.Request.PathValue("id")
		specID := e.Request.FormValue("spec_id")
		idx := cast.ToInt(e.Request.FormValue("index"))
		confirm := confirmPolicy(e)

		job, err := mutateJob(app, recordID, func(job *services.Job) error {
			ok, err := services.DeleteQuote(job, specID, idx, confirm)
			if err != nil {
				return err
			}
			if !ok {
				return errConfirmRequired
			}
			return nil
		})
		if err != nil {
			return mutationError(e, "quote_delete", err)
		}

		return e.JSON(http.StatusOK, map[string]any{"job": job})
	}
}
