package services

import (
	"github.com/google/uuid"
)

// defaultCostCodeText is the placeholder code assigned to a freshly added
// cost code until the estimator renames it.
const defaultCostCodeText = "00 00 00"

// DefaultScheduleRow returns a blank measurement row.
func DefaultScheduleRow() *ScheduleRow {
	return &ScheduleRow{}
}

// DefaultMaterialsTemplate is the fixed install-material template seeded into
// every new section. Factors and rates are the shop defaults; the sealants
// factor is one sausage tube per 12 linear feet.
func DefaultMaterialsTemplate() []*Material {
	return []*Material{
		{Key: "bracing", Label: "Bracing and Anchoring", Basis: BasisPerim, Factor: "1.00", Rate: "1.50", Unit: "Linear Foot"},
		{Key: "sheet_metal", Label: "Sheet Metal Membrane Air Barriers", Basis: BasisPerim, Factor: "1.00", Rate: "1.00", Unit: "Linear Foot"},
		{Key: "flashing", Label: "Flashing and Sheet Metal", Basis: BasisHeadSill, Factor: "1.00", Rate: "8.00", Unit: "Linear Foot"},
		{Key: "backer_rods", Label: "Backer Rods", Basis: BasisCaulkLF, Factor: "1.00", Rate: "0.50", Unit: "Linear Foot"},
		{Key: "sealants", Label: "Joint Sealants", Basis: BasisCaulkLF, Factor: "0.0833", Rate: "12.00", Unit: "Sausage"},
		{Key: "tie_back", Label: "Tie Back", Basis: BasisManual, Rate: "45.00", Unit: "Each"},
		{Key: "backpans", Label: "Backpans Insulation", Basis: BasisManual, Rate: "48.32", Unit: "Linear Foot"},
	}
}

// materialsTemplate returns a fresh copy of the job's material template,
// falling back to the built-in template when the job config has none.
func materialsTemplate(job *Job) []*Material {
	tpl := DefaultMaterialsTemplate()
	if job != nil && job.Config != nil && len(job.Config.MaterialsTemplate) > 0 {
		tpl = job.Config.MaterialsTemplate
	}
	out := make([]*Material, 0, len(tpl))
	for _, m := range tpl {
		copied := *m
		out = append(out, &copied)
	}
	return out
}

// DefaultScheduleSection returns a new section for the given spec identifier,
// seeded with one blank row and the material template.
func DefaultScheduleSection(job *Job, specID string) *ScheduleSection {
	return &ScheduleSection{
		ID:        uuid.NewString(),
		SpecID:    specID,
		Rows:      []*ScheduleRow{DefaultScheduleRow()},
		Materials: materialsTemplate(job),
	}
}

// DefaultBidEntry returns a bid-sheet entry with the seed markup fields:
// percentage-sourced markup and no color.
func DefaultBidEntry() *BidEntry {
	return &BidEntry{MarkupSource: MarkupSourcePct, Color: "None"}
}

// EnsureJobDefaults fills structural gaps on a freshly loaded job record
// (missing id, nil maps, incomplete cost codes) and then runs a full
// reconciliation so every derived field is current.
func EnsureJobDefaults(job *Job) {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.Quotes == nil {
		job.Quotes = map[string][]*Quote{}
	}
	if job.BidSheet == nil {
		job.BidSheet = map[string]*BidEntry{}
	}
	if job.FrameSchedules == nil {
		job.FrameSchedules = map[string][]*ScheduleSection{}
	}
	if job.Rollups == nil {
		job.Rollups = map[string]*Rollup{}
	}

	kept := job.CostCodes[:0]
	for _, cc := range job.CostCodes {
		if cc == nil {
			continue
		}
		if cc.ID == "" {
			cc.ID = uuid.NewString()
		}
		kept = append(kept, cc)
	}
	job.CostCodes = kept

	Reconcile(job)
}
