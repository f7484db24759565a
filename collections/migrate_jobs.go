package collections

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/tools/types"

	"bidmanager/services"
)

// MigrateJobRecords loads every stored job, runs it through the engine's
// default-and-reconcile pass, and writes back any record whose document
// shape changed. This is how legacy documents (bare cost-code keys, missing
// maps, stale derived fields) catch up with the current format. Safe to call
// on every startup.
func MigrateJobRecords(app *pocketbase.PocketBase) error {
	jobsCol, err := app.FindCollectionByNameOrId("jobs")
	if err != nil {
		return fmt.Errorf("migrate: could not find jobs collection: %w", err)
	}

	records, err := app.FindAllRecords(jobsCol)
	if err != nil {
		return fmt.Errorf("migrate: could not query jobs: %w", err)
	}

	migrated := 0
	for _, record := range records {
		before := record.GetString("data")

		var job services.Job
		if err := record.UnmarshalJSONField("data", &job); err != nil {
			log.Printf("migrate: job %s has an unreadable document: %v\n", record.Id, err)
			continue
		}

		services.EnsureJobDefaults(&job)

		after, err := json.Marshal(&job)
		if err != nil {
			log.Printf("migrate: could not marshal job %s: %v\n", record.Id, err)
			continue
		}
		if string(after) == before {
			continue
		}

		record.Set("data", types.JSONRaw(after))
		if err := app.Save(record); err != nil {
			log.Printf("migrate: failed to save job %s: %v\n", record.Id, err)
			continue
		}
		migrated++
	}

	if migrated > 0 {
		log.Printf("migrate: normalized %d job record(s)\n", migrated)
	}
	return nil
}
