// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"encoding/json"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"

	"bidmanager/collections"
	"bidmanager/services"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestJob saves a job document as a jobs record and returns the record.
// The document is normalized first so the stored shape matches what the
// handlers expect to read back.
func CreateTestJob(t *testing.T, app *pocketbase.PocketBase, job *services.Job) *core.Record {
	t.Helper()

	services.EnsureJobDefaults(job)

	col, err := app.FindCollectionByNameOrId("jobs")
	if err != nil {
		t.Fatalf("failed to find jobs collection: %v", err)
	}

	raw, err := json.Marshal(job)
	if err != nil {
		t.Fatalf("failed to marshal test job: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", job.JobName)
	record.Set("data", types.JSONRaw(raw))

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test job: %v", err)
	}

	return record
}

// CreateTestSettings saves a settings record under the given key.
func CreateTestSettings(t *testing.T, app *pocketbase.PocketBase, key string, cfg *services.JobConfig) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("settings")
	if err != nil {
		t.Fatalf("failed to find settings collection: %v", err)
	}

	raw, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("failed to marshal test settings: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("key", key)
	record.Set("data", types.JSONRaw(raw))

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test settings: %v", err)
	}

	return record
}
