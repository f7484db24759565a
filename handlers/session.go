package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"

	"bidmanager/collections"
	"bidmanager/services"
)

// jobSession serializes edits to one job record and carries its undo stack.
// Sessions live for the process lifetime; the undo history is in-memory only.
type jobSession struct {
	mu   sync.Mutex
	undo services.UndoStack
}

var (
	sessionsMu sync.Mutex
	sessions   = map[string]*jobSession{}
)

// sessionFor returns the session for a job record id, creating it on first
// use.
func sessionFor(recordID string) *jobSession {
	sessionsMu.Lock()
	defer sessionsMu.Unlock()
	s, ok := sessions[recordID]
	if !ok {
		s = &jobSession{}
		sessions[recordID] = s
	}
	return s
}

// dropSession discards a deleted job's session and undo history.
func dropSession(recordID string) {
	sessionsMu.Lock()
	defer sessionsMu.Unlock()
	delete(sessions, recordID)
}

// loadGlobalConfig reads the global settings record; a missing or unreadable
// record reads as no overrides.
func loadGlobalConfig(app *pocketbase.PocketBase) *services.JobConfig {
	record, err := app.FindFirstRecordByData("settings", "key", collections.GlobalSettingsKey)
	if err != nil || record == nil {
		return nil
	}
	var cfg services.JobConfig
	if err := record.UnmarshalJSONField("data", &cfg); err != nil {
		return nil
	}
	return &cfg
}

// loadJob reads a job record's document and normalizes it. The document is
// self-contained: a job snapshots the global config at creation time, so no
// merge happens on read.
func loadJob(app *pocketbase.PocketBase, recordID string) (*core.Record, *services.Job, error) {
	record, err := app.FindRecordById("jobs", recordID)
	if err != nil {
		return nil, nil, fmt.Errorf("job %s not found: %w", recordID, err)
	}

	var job services.Job
	if err := record.UnmarshalJSONField("data", &job); err != nil {
		return nil, nil, fmt.Errorf("job %s has an unreadable document: %w", recordID, err)
	}

	services.EnsureJobDefaults(&job)

	return record, &job, nil
}

// saveJob writes the job document back to its record. The record name tracks
// the job name so list views stay readable without parsing documents.
func saveJob(app *pocketbase.PocketBase, record *core.Record, job *services.Job) error {
	raw, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job %s: %w", record.Id, err)
	}
	record.Set("name", job.JobName)
	record.Set("data", types.JSONRaw(raw))
	if err := app.Save(record); err != nil {
		return fmt.Errorf("save job %s: %w", record.Id, err)
	}
	return nil
}

// errConfirmRequired signals that a destructive mutation was declined by the
// confirm policy and needs client confirmation.
var errConfirmRequired = errors.New("confirmation required")

// mutateJob runs one engine mutation under the job's session lock: undo
// snapshot first, then the edit, then the save. A failed or declined edit
// rolls the snapshot back off the stack and leaves the record untouched.
func mutateJob(app *pocketbase.PocketBase, recordID string, fn func(job *services.Job) error) (*services.Job, error) {
	session := sessionFor(recordID)
	session.mu.Lock()
	defer session.mu.Unlock()

	record, job, err := loadJob(app, recordID)
	if err != nil {
		return nil, err
	}

	if err := session.undo.Push(job); err != nil {
		return nil, fmt.Errorf("snapshot job %s: %w", recordID, err)
	}
	if err := fn(job); err != nil {
		session.undo.Pop()
		return nil, err
	}

	if err := saveJob(app, record, job); err != nil {
		session.undo.Pop()
		return nil, err
	}
	return job, nil
}

// confirmPolicy maps the request's confirm flag onto the engine's confirm
// callback. Clients re-send the mutation with confirm=true after showing
// the prompt.
func confirmPolicy(e *core.RequestEvent) services.Confirm {
	if e.Request.FormValue("confirm") == "true" {
		return services.ConfirmAlways
	}
	return services.ConfirmNever
}
