package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"bidmanager/services"
)

// GlobalSettingsKey names the settings record holding the shop-wide config:
// dropdown options and the install-material template every new job inherits.
const GlobalSettingsKey = "global"

// Seed inserts the global settings record when none exists. Safe to call on
// every startup.
func Seed(app *pocketbase.PocketBase) error {
	settingsCol, err := app.FindCollectionByNameOrId("settings")
	if err != nil {
		return fmt.Errorf("seed: could not find settings collection: %w", err)
	}

	existing, err := app.FindFirstRecordByData(settingsCol.Name, "key", GlobalSettingsKey)
	if err == nil && existing != nil {
		return nil // already seeded
	}

	log.Println("seed: no global settings record – inserting defaults …")

	record := core.NewRecord(settingsCol)
	record.Set("key", GlobalSettingsKey)
	record.Set("data", &services.JobConfig{
		MaterialsTemplate: services.DefaultMaterialsTemplate(),
		Options:           services.DefaultOptions(),
	})

	if err := app.Save(record); err != nil {
		return fmt.Errorf("seed: could not save global settings: %w", err)
	}

	log.Printf("seed: global settings record created (%s)\n", record.Id)
	return nil
}
