package collections_test

import (
	"testing"

	"bidmanager/collections"
	"bidmanager/services"
	"bidmanager/testhelpers"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"
)

// saveRawJob stores a raw document string as a jobs record, bypassing the
// normalization that CreateTestJob applies.
func saveRawJob(t *testing.T, app *pocketbase.PocketBase, name, raw string) *core.Record {
	t.Helper()
	col, err := app.FindCollectionByNameOrId("jobs")
	if err != nil {
		t.Fatalf("jobs collection not found: %v", err)
	}
	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("data", types.JSONRaw(raw))
	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save raw job: %v", err)
	}
	return record
}

func TestMigrateJobRecords_NormalizesLegacyDocument(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	// A legacy document: bare cost-code quote key, no bid sheet, no
	// schedule or rollup maps.
	raw := `{
		"id": "job1",
		"job_name": "Legacy Job",
		"cost_codes": [{"id": "cc1", "code": "08 41 13"}],
		"quotes": {"08 41 13": [{"vendor": "Acme", "price": 1000}]}
	}`
	record := saveRawJob(t, app, "Legacy Job", raw)

	if err := collections.MigrateJobRecords(app); err != nil {
		t.Fatalf("MigrateJobRecords() error: %v", err)
	}

	saved, err := app.FindRecordById("jobs", record.Id)
	if err != nil {
		t.Fatalf("record lookup: %v", err)
	}
	var job services.Job
	if err := saved.UnmarshalJSONField("data", &job); err != nil {
		t.Fatalf("migrated document unreadable: %v", err)
	}

	bucket := job.Quotes["08 41 13||BASE"]
	if len(bucket) != 1 || bucket[0].Vendor != "Acme" {
		t.Errorf("bare quote key not migrated: %v", job.Quotes)
	}
	if bucket[0].Cost != 1000 {
		t.Errorf("quote cost = %d, want recomputed 1000", bucket[0].Cost)
	}
	if job.BidSheet["08 41 13||BASE"] == nil {
		t.Error("bid sheet entry not seeded")
	}
	if job.Rollups == nil {
		t.Error("rollup map not seeded")
	}
}

func TestMigrateJobRecords_LeavesCurrentDocumentAlone(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	record := testhelpers.CreateTestJob(t, app, &services.Job{
		JobName:   "Current Job",
		CostCodes: []*services.CostCode{{ID: "cc1", Code: "08 41 13"}},
	})

	before, _ := app.FindRecordById("jobs", record.Id)
	beforeUpdated := before.GetString("updated")

	if err := collections.MigrateJobRecords(app); err != nil {
		t.Fatalf("MigrateJobRecords() error: %v", err)
	}

	after, _ := app.FindRecordById("jobs", record.Id)
	if after.GetString("updated") != beforeUpdated {
		t.Error("already-normalized record was re-saved")
	}
}

func TestMigrateJobRecords_SkipsUnreadableDocument(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	saveRawJob(t, app, "Broken Job", `"not an object"`)

	if err := collections.MigrateJobRecords(app); err != nil {
		t.Fatalf("MigrateJobRecords() error: %v", err)
	}
}
