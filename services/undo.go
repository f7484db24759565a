package services

import "github.com/tiendc/go-deepcopy"

// undoLimit caps how many snapshots a stack retains; older ones fall off.
const undoLimit = 50

// UndoStack holds full deep-copied job snapshots, newest last.
type UndoStack struct {
	snapshots []*Job
}

// SnapshotJob returns an independent deep copy of the job.
func SnapshotJob(job *Job) (*Job, error) {
	var c Job
	if err := deepcopy.Copy(&c, job); err != nil {
		return nil, err
	}
	return &c, nil
}

// Push records the job's current state before a mutation.
func (u *UndoStack) Push(job *Job) error {
	snap, err := SnapshotJob(job)
	if err != nil {
		return err
	}
	u.snapshots = append(u.snapshots, snap)
	if len(u.snapshots) > undoLimit {
		u.snapshots = u.snapshots[len(u.snapshots)-undoLimit:]
	}
	return nil
}

// Pop returns the most recent snapshot, or nil when nothing is undoable.
func (u *UndoStack) Pop() *Job {
	if len(u.snapshots) == 0 {
		return nil
	}
	snap := u.snapshots[len(u.snapshots)-1]
	u.snapshots = u.snapshots[:len(u.snapshots)-1]
	return snap
}

// Len reports how many undo steps are available.
func (u *UndoStack) Len() int { return len(u.snapshots) }
