package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"bidmanager/services"
)

// mutationError maps an engine mutation failure onto the HTTP response:
// declined confirms ask the client to retry with confirm=true, unknown spec
// ids are client errors, anything else is logged and reported generically.
func mutationError(e *core.RequestEvent, op string, err error) error {
	if errors.Is(err, errConfirmRequired) {
		return e.JSON(http.StatusConflict, map[string]any{
			"confirm_required": true,
		})
	}
	if errors.Is(err, services.ErrInvalidSpec) {
		return e.String(http.StatusBadRequest, "Unknown spec id")
	}
	log.Printf("%s: %v", op, err)
	return e.String(http.StatusInternalServerError, "Failed to update job")
}
