package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cast"

	"bidmanager/services"
)

// HandleSectionAdd creates a new frame-schedule section under a spec id.
func HandleSectionAdd(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		recordID := e.Request.PathValue("id")
		specID := e.Request.FormValue("spec_id")

		var added *services.ScheduleSection
		job, err := mutateJob(app, recordID, func(job *services.Job) error {
			section, err := services.AddScheduleSection(job, specID)
			if err != nil {
				return err
			}
			added = section
			return nil
		})
		if err != nil {
			return mutationError(e, "section_add", err)
		}

		return e.JSON(http.StatusOK, map[string]any{"section": added, "job": job})
	}
}

// HandleSectionDelete removes a section after confirmation.
func HandleSectionDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		recordID := e.Request.PathValue("id")
		sectionID := e.Request.PathValue("sectionId")
		specID := e.Request.FormValue("spec_id")
		confirm := confirmPolicy(e)

		job, err := mutateJob(app, recordID, func(job *services.Job) error {
			ok, err := services.DeleteScheduleSection(job, specID, sectionID, confirm)
			if err != nil {
				return err
			}
			if !ok {
				return errConfirmRequired
			}
			return nil
		})
		if err != nil {
			return mutationError(e, "section_delete", err)
		}

		return e.JSON(http.StatusOK, map[string]any{"job": job})
	}
}

// HandleRowAdd appends a blank measurement row to a section.
func HandleRowAdd(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		recordID := e.Request.PathValue("id")
		sectionID := e.Request.PathValue("sectionId")

		job, err := mutateJob(app, recordID, func(job *services.Job) error {
			return services.AddScheduleRow(job, sectionID)
		})
		if err != nil {
			return mutationError(e, "row_add", err)
		}

		return e.JSON(http.StatusOK, map[string]any{"job": job})
	}
}

// HandleRowUpdate applies one raw field edit to a measurement row and
// returns the recomputed job.
func HandleRowUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		recordID := e.Request.PathValue("id")
		sectionID := e.Request.PathValue("sectionId")
		idx := cast.ToInt(e.Request.FormValue("index"))
		field := e.Request.FormValue("field")
		value := e.Request.FormValue("value")

		job, err := mutateJob(app, recordID, func(job *services.Job) error {
			return services.SetScheduleRowField(job, sectionID, idx, field, value)
		})
		if err != nil {
			return mutationError(e, "row_update", err)
		}

		return e.JSON(http.StatusOK, map[string]any{"job": job})
	}
}

// HandleRowDelete removes a measurement row, asking for confirmation when it
// holds data.
func HandleRowDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		recordID := e.Request.PathValue("id")
		sectionID := e.Request.PathValue("sectionId")
		idx := cast.ToInt(e.Request.FormValue("index"))
		confirm := confirmPolicy(e)

		job, err := mutateJob(app, recordID, func(job *services.Job) error {
			ok, err := services.DeleteScheduleRow(job, sectionID, idx, confirm)
			if err != nil {
				return err
			}
			if !ok {
				return errConfirmRequired
			}
			return nil
		})
		if err != nil {
			return mutationError(e, "row_delete", err)
		}

		return e.JSON(http.StatusOK, map[string]any{"job": job})
	}
}

// HandleMaterialAdd appends a freeform install-material line to a section.
func HandleMaterialAdd(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		recordID := e.Request.PathValue("id")
		sectionID := e.Request.PathValue("sectionId")

		var added *services.Material
		job, err := mutateJob(app, recordID, func(job *services.Job) error {
			m, err := services.AddFreeformMaterial(job, sectionID)
			if err != nil {
				return err
			}
			added = m
			return nil
		})
		if err != nil {
			return mutationError(e, "material_add", err)
		}

		return e.JSON(http.StatusOK, map[string]any{"material": added, "job": job})
	}
}

// HandleMaterialUpdate applies one field edit to an install-material line.
func HandleMaterialUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		recordID := e.Request.PathValue("id")
		sectionID := e.Request.PathValue("sectionId")
		idx := cast.ToInt(e.Request.FormValue("index"))
		field := e.Request.FormValue("field")
		value := e.Request.FormValue("value")

		job, err := mutateJob(app, recordID, func(job *services.Job) error {
			return services.SetMaterialField(job, sectionID, idx, field, value)
		})
		if err != nil {
			return mutationError(e, "material_update", err)
		}

		return e.JSON(http.StatusOK, map[string]any{"job": job})
	}
}

// HandleMaterialDelete removes a freeform material line after confirmation.
func HandleMaterialDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		recordID := e.Request.PathValue("id")
		sectionID := e.Request.PathValue("sectionId")
		idx := cast.ToInt(e.Request.FormValue("index"))
		confirm := confirmPolicy(e)

		job, err := mutateJob(app, recordID, func(job *services.Job) error {
			ok, err := services.DeleteMaterial(job, sectionID, idx, confirm)
			if err != nil {
				return err
			}
			if !ok {
				return errConfirmRequired
			}
			return nil
		})
		if err != nil {
			return mutationError(e, "material_delete", err)
		}

		return e.JSON(http.StatusOK, map[string]any{"job": job})
	}
}
