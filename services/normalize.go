package services

import (
	"strings"

	"github.com/google/uuid"
)

// Reconcile is the top-level normalization pass, run after every structural
// edit and before every save or export. Order matters: the valid spec-id set
// drives the quote and bid-sheet maps, schedules repair before rollups, and
// the bid total reads the finished rollups.
func Reconcile(job *Job) {
	NormalizeQuotes(job)
	NormalizeBidSheet(job)
	NormalizeFrameSchedules(job)
	ComputeRollups(job)
	job.BidSheetTotal = ComputeBidSheetTotal(job)
}

// NormalizeFrameSchedules reconciles the frame-schedule map against the
// current cost codes: legacy bare-code keys migrate to "code||BASE" (merging
// into an existing BASE entry), stale spec ids are dropped, every valid spec
// id gets an entry, and each section is repaired to a well-formed shape and
// recomputed.
func NormalizeFrameSchedules(job *Job) {
	if job.FrameSchedules == nil {
		job.FrameSchedules = map[string][]*ScheduleSection{}
	}

	for key, sections := range job.FrameSchedules {
		if strings.Contains(key, "||") {
			continue
		}
		delete(job.FrameSchedules, key)
		base := strings.TrimSpace(key)
		if base == "" {
			continue
		}
		newKey := SpecID(base, "BASE")
		job.FrameSchedules[newKey] = append(job.FrameSchedules[newKey], sections...)
	}

	valid := ValidSpecIDs(job)
	for id := range job.FrameSchedules {
		if !valid[id] {
			delete(job.FrameSchedules, id)
		}
	}
	for id := range valid {
		if _, ok := job.FrameSchedules[id]; !ok {
			job.FrameSchedules[id] = []*ScheduleSection{}
		}
	}

	for id, sections := range job.FrameSchedules {
		for i, s := range sections {
			if s == nil {
				s = DefaultScheduleSection(job, id)
				sections[i] = s
			}
			repairSection(job, id, s)
			RecomputeSectionTotals(s)
		}
	}
}

// repairSection defaults missing fields and replaces malformed row and
// material lists so a section always has an id, its owning spec id, at least
// one row, and a material set.
func repairSection(job *Job, specID string, s *ScheduleSection) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	s.SpecID = specID

	rows := s.Rows[:0]
	for _, r := range s.Rows {
		if r != nil {
			rows = append(rows, r)
		}
	}
	if len(rows) == 0 {
		rows = append(rows, DefaultScheduleRow())
	}
	s.Rows = rows

	mats := s.Materials[:0]
	for _, m := range s.Materials {
		if m != nil {
			mats = append(mats, m)
		}
	}
	if len(mats) == 0 {
		mats = materialsTemplate(job)
	}
	s.Materials = mats
}

// MigrateCodeKey moves every quote bucket and frame-schedule entry from one
// cost-code string to another after a rename, merging into any data already
// stored under the new code rather than overwriting it.
func MigrateCodeKey(job *Job, oldCode, newCode string) {
	oldCode = strings.TrimSpace(oldCode)
	newCode = strings.TrimSpace(newCode)
	if oldCode == "" || oldCode == newCode {
		return
	}

	for id, quotes := range job.Quotes {
		base, variant := ParseSpecID(id)
		if base != oldCode {
			continue
		}
		delete(job.Quotes, id)
		newID := SpecID(newCode, variant)
		job.Quotes[newID] = append(job.Quotes[newID], quotes...)
	}

	for id, sections := range job.FrameSchedules {
		base, variant := ParseSpecID(id)
		if base != oldCode {
			continue
		}
		delete(job.FrameSchedules, id)
		newID := SpecID(newCode, variant)
		job.FrameSchedules[newID] = append(job.FrameSchedules[newID], sections...)
	}
}

// ComputeRollups sums each spec's section install-material totals into the
// rollup map. Sections recompute first, so a rollup can never read a stale
// total.
func ComputeRollups(job *Job) {
	job.Rollups = map[string]*Rollup{}
	for id, sections := range job.FrameSchedules {
		total := 0
		for _, s := range sections {
			if s != nil {
				total += RecomputeSectionTotals(s)
			}
		}
		job.Rollups[id] = &Rollup{InstallMaterialTotal: total}
	}
}
