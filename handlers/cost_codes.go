package handlers

import (
	"fmt"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"bidmanager/services"
)

// HandleCostCodeAdd appends a placeholder cost code to a job.
func HandleCostCodeAdd(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		recordID := e.Request.PathValue("id")

		var added *services.CostCode
		job, err := mutateJob(app, recordID, func(job *services.Job) error {
			added = services.AddCostCode(job)
			return nil
		})
		if err != nil {
			return mutationError(e, "cost_code_add", err)
		}

		return e.JSON(http.StatusOK, map[string]any{"cost_code": added, "job": job})
	}
}

// HandleCostCodeUpdate applies one field edit to a cost code. Renaming the
// code string migrates every dependent quote and schedule key.
func HandleCostCodeUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		recordID := e.Request.PathValue("id")
		costCodeID := e.Request.PathValue("costCodeId")
		field := e.Request.FormValue("field")
		value := e.Request.FormValue("value")

		job, err := mutateJob(app, recordID, func(job *services.Job) error {
			switch field {
			case "code":
				return services.SetCostCodeCode(job, costCodeID, value)
			case "description":
				return services.SetCostCodeDescription(job, costCodeID, value)
			case "alts":
				return services.SetCostCodeAlternates(job, costCodeID, value)
			default:
				return fmt.Errorf("cost code field %q is not editable", field)
			}
		})
		if err != nil {
			return mutationError(e, "cost_code_update", err)
		}

		return e.JSON(http.StatusOK, map[string]any{"job": job})
	}
}

// HandleCostCodeDelete removes a cost code and everything keyed under it.
func HandleCostCodeDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		recordID := e.Request.PathValue("id")
		costCodeID := e.Request.PathValue("costCodeId")
		confirm := confirmPolicy(e)

		job, err := mutateJob(app, recordID, func(job *services.Job) error {
			ok, err := services.DeleteCostCode(job, costCodeID, confirm)
			if err != nil {
				return err
			}
			if !ok {
				return errConfirmRequired
			}
			return nil
		})
		if err != nil {
			return mutationError(e, "cost_code_delete", err)
		}

		return e.JSON(http.StatusOK, map[string]any{"job": job})
	}
}
