package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleUndo restores the most recent snapshot from the job's undo stack and
// saves it back. With no history the job is returned unchanged.
func HandleUndo(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		recordID := e.Request.PathValue("id")
		session := sessionFor(recordID)
		session.mu.Lock()
		defer session.mu.Unlock()

		record, job, err := loadJob(app, recordID)
		if err != nil {
			log.Printf("undo: %v", err)
			return e.String(http.StatusNotFound, "Job not found")
		}

		snap := session.undo.Pop()
		if snap == nil {
			return e.JSON(http.StatusOK, map[string]any{
				"job":        job,
				"undone":     false,
				"undo_depth": 0,
			})
		}

		if err := saveJob(app, record, snap); err != nil {
			log.Printf("undo: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to restore job")
		}

		return e.JSON(http.StatusOK, map[string]any{
			"job":        snap,
			"undone":     true,
			"undo_depth": session.undo.Len(),
		})
	}
}
