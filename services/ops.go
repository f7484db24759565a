package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidSpec is returned when an operation names a spec identifier that
// no current cost code produces.
var ErrInvalidSpec = errors.New("invalid spec id")

// Confirm gates destructive operations. The engine never renders dialogs;
// callers inject the policy (a UI prompt, an HTTP confirm flag, a test stub).
type Confirm func(prompt string) bool

// ConfirmAlways approves every destructive operation.
func ConfirmAlways(string) bool { return true }

// ConfirmNever declines every destructive operation.
func ConfirmNever(string) bool { return false }

// ── Cost codes ──────────────────────────────────────────────────────────

// AddCostCode appends a placeholder cost code and reconciles, which creates
// its BASE quote bucket, bid-sheet entry and schedule slot.
func AddCostCode(job *Job) *CostCode {
	cc := &CostCode{ID: uuid.NewString(), Code: defaultCostCodeText}
	job.CostCodes = append(job.CostCodes, cc)
	Reconcile(job)
	return cc
}

func findCostCode(job *Job, id string) *CostCode {
	for _, cc := range job.CostCodes {
		if cc.ID == id {
			return cc
		}
	}
	return nil
}

// SetCostCodeCode renames a cost code and migrates every dependent quote and
// schedule key from the old code string to the new one.
func SetCostCodeCode(job *Job, id, code string) error {
	cc := findCostCode(job, id)
	if cc == nil {
		return fmt.Errorf("cost code %q not found", id)
	}
	old := cc.Code
	cc.Code = strings.TrimSpace(code)
	MigrateCodeKey(job, old, cc.Code)
	Reconcile(job)
	return nil
}

// SetCostCodeDescription updates the description text.
func SetCostCodeDescription(job *Job, id, description string) error {
	cc := findCostCode(job, id)
	if cc == nil {
		return fmt.Errorf("cost code %q not found", id)
	}
	cc.Description = strings.TrimSpace(description)
	Reconcile(job)
	return nil
}

// SetCostCodeAlternates re-parses the alternate list; adding or removing an
// alternate creates or prunes that variant's buckets on reconcile.
func SetCostCodeAlternates(job *Job, id, altsText string) error {
	cc := findCostCode(job, id)
	if cc == nil {
		return fmt.Errorf("cost code %q not found", id)
	}
	cc.Alts = ParseAlternates(altsText)
	Reconcile(job)
	return nil
}

// DeleteCostCode removes a cost code and everything keyed under it, for BASE
// and every alternate. Returns false without mutating when the confirm
// policy declines.
func DeleteCostCode(job *Job, id string, confirm Confirm) (bool, error) {
	cc := findCostCode(job, id)
	if cc == nil {
		return false, fmt.Errorf("cost code %q not found", id)
	}
	code := strings.TrimSpace(cc.Code)
	if !confirm(fmt.Sprintf("Delete cost code %s? This removes schedules for BASE + ALTs.", code)) {
		return false, nil
	}

	kept := job.CostCodes[:0]
	for _, c := range job.CostCodes {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	job.CostCodes = kept

	for specID := range job.Quotes {
		if base, _ := ParseSpecID(specID); base == code {
			delete(job.Quotes, specID)
		}
	}
	for specID := range job.FrameSchedules {
		if base, _ := ParseSpecID(specID); base == code {
			delete(job.FrameSchedules, specID)
		}
	}

	Reconcile(job)
	return true, nil
}

// ── Quotes ──────────────────────────────────────────────────────────────

// AddQuote appends a blank quote to the spec's bucket.
func AddQuote(job *Job, specID string) error {
	if _, ok := job.Quotes[specID]; !ok {
		return fmt.Errorf("%w: %s", ErrInvalidSpec, specID)
	}
	job.Quotes[specID] = append(job.Quotes[specID], &Quote{})
	Reconcile(job)
	return nil
}

// QuoteUpdate carries raw text-field edits for one quote. Nil fields are
// left untouched.
type QuoteUpdate struct {
	Date      *string
	Vendor    *string
	Price     *string
	Surcharge *string
	Notes     *string
}

// UpdateQuote applies a field edit to one quote, re-deriving its cost. A
// blank date autofills with today once the price turns positive, matching
// how estimators log a quote the day they receive it.
func UpdateQuote(job *Job, specID string, idx int, upd QuoteUpdate) error {
	bucket, ok := job.Quotes[specID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrInvalidSpec, specID)
	}
	if idx < 0 || idx >= len(bucket) {
		return fmt.Errorf("quote %d out of range for %s", idx, specID)
	}
	q := bucket[idx]

	if upd.Date != nil {
		q.Date = strings.TrimSpace(*upd.Date)
	}
	if upd.Vendor != nil {
		q.Vendor = strings.TrimSpace(*upd.Vendor)
	}
	if upd.Price != nil {
		q.Price = ParseMoney(*upd.Price)
	}
	if upd.Surcharge != nil {
		q.Surcharge = ParsePct(*upd.Surcharge)
	}
	if upd.Notes != nil {
		q.Notes = strings.TrimSpace(*upd.Notes)
	}

	if q.Price > 0 && strings.TrimSpace(q.Date) == "" {
		q.Date = time.Now().Format("2006-01-02")
	}
	q.Cost = CalcQuoteCost(q.Price, q.Surcharge)

	Reconcile(job)
	return nil
}

// DeleteQuote removes one quote, confirming first when it holds data. The
// bucket is refilled with a blank placeholder if the last quote goes.
func DeleteQuote(job *Job, specID string, idx int, confirm Confirm) (bool, error) {
	bucket, ok := job.Quotes[specID]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrInvalidSpec, specID)
	}
	if idx < 0 || idx >= len(bucket) {
		return false, fmt.Errorf("quote %d out of range for %s", idx, specID)
	}
	q := bucket[idx]
	if quoteHasData(q) && !confirm("This quote has data. Remove it?") {
		return false, nil
	}
	job.Quotes[specID] = append(bucket[:idx], bucket[idx+1:]...)
	Reconcile(job)
	return true, nil
}

func quoteHasData(q *Quote) bool {
	return q.Date != "" || q.Vendor != "" || q.Price != 0 || q.Surcharge != 0 || q.Notes != ""
}

// ── Frame schedule sections ─────────────────────────────────────────────

// AddScheduleSection creates a new section under the given spec identifier.
// An id outside the valid set is the one named validation error.
func AddScheduleSection(job *Job, specID string) (*ScheduleSection, error) {
	if !ValidSpecIDs(job)[specID] {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSpec, specID)
	}
	section := DefaultScheduleSection(job, specID)
	RecomputeSectionTotals(section)
	job.FrameSchedules[specID] = append(job.FrameSchedules[specID], section)
	Reconcile(job)
	return section, nil
}

// DeleteScheduleSection removes a section after confirmation.
func DeleteScheduleSection(job *Job, specID, sectionID string, confirm Confirm) (bool, error) {
	sections, ok := job.FrameSchedules[specID]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrInvalidSpec, specID)
	}
	found := false
	for _, s := range sections {
		if s != nil && s.ID == sectionID {
			found = true
		}
	}
	if !found {
		return false, fmt.Errorf("section %q not found under %s", sectionID, specID)
	}
	if !confirm("Remove this schedule section?") {
		return false, nil
	}
	kept := sections[:0]
	for _, s := range sections {
		if s == nil || s.ID != sectionID {
			kept = append(kept, s)
		}
	}
	job.FrameSchedules[specID] = kept
	Reconcile(job)
	return true, nil
}

func findSection(job *Job, sectionID string) *ScheduleSection {
	for _, sections := range job.FrameSchedules {
		for _, s := range sections {
			if s != nil && s.ID == sectionID {
				return s
			}
		}
	}
	return nil
}

// ── Schedule rows ───────────────────────────────────────────────────────

// AddScheduleRow appends a blank row to a section.
func AddScheduleRow(job *Job, sectionID string) error {
	s := findSection(job, sectionID)
	if s == nil {
		return fmt.Errorf("section %q not found", sectionID)
	}
	s.Rows = append(s.Rows, DefaultScheduleRow())
	Reconcile(job)
	return nil
}

// SetScheduleRowField applies one raw text edit to a row, then commits the
// row (pass-count default plus derived-column recompute) and reconciles.
// Derived columns are not writable.
func SetScheduleRowField(job *Job, sectionID string, rowIdx int, field, value string) error {
	s := findSection(job, sectionID)
	if s == nil {
		return fmt.Errorf("section %q not found", sectionID)
	}
	if rowIdx < 0 || rowIdx >= len(s.Rows) {
		return fmt.Errorf("row %d out of range", rowIdx)
	}
	row := s.Rows[rowIdx]
	value = strings.TrimSpace(value)

	switch field {
	case "spec_mark":
		row.SpecMark = value
	case "qty":
		row.Qty = value
	case "width":
		row.Width = value
	case "height":
		row.Height = value
	case "caulk_passes":
		row.CaulkPasses = value
	case "head":
		row.Head = value
	case "jamb":
		row.Jamb = value
	case "sill":
		row.Sill = value
	case "type":
		row.Type = value
	case "matl":
		row.Matl = value
	case "finish":
		row.Finish = value
	case "notes":
		row.Notes = value
	default:
		return fmt.Errorf("row field %q is not editable", field)
	}

	CommitScheduleRow(row)
	Reconcile(job)
	return nil
}

// DeleteScheduleRow removes a row, confirming first when it holds data. A
// section keeps at least one row; deleting the last one leaves a blank.
func DeleteScheduleRow(job *Job, sectionID string, rowIdx int, confirm Confirm) (bool, error) {
	s := findSection(job, sectionID)
	if s == nil {
		return false, fmt.Errorf("section %q not found", sectionID)
	}
	if rowIdx < 0 || rowIdx >= len(s.Rows) {
		return false, fmt.Errorf("row %d out of range", rowIdx)
	}
	if rowHasData(s.Rows[rowIdx]) && !confirm("This row has data. Remove it?") {
		return false, nil
	}
	s.Rows = append(s.Rows[:rowIdx], s.Rows[rowIdx+1:]...)
	Reconcile(job)
	return true, nil
}

// ── Install materials ───────────────────────────────────────────────────

// AddFreeformMaterial appends a user-defined manual-basis material row.
// Template rows are fixed; only these freeform rows may be deleted later.
func AddFreeformMaterial(job *Job, sectionID string) (*Material, error) {
	s := findSection(job, sectionID)
	if s == nil {
		return nil, fmt.Errorf("section %q not found", sectionID)
	}
	m := &Material{
		Key:   "free_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8],
		Basis: BasisManual,
	}
	s.Materials = append(s.Materials, m)
	Reconcile(job)
	return m, nil
}

// SetMaterialField applies one raw text edit to a material line. Manual
// quantity edits on a subtotal-basis row are stored but ignored by the
// quantity resolution until the basis is manual.
func SetMaterialField(job *Job, sectionID string, matIdx int, field, value string) error {
	s := findSection(job, sectionID)
	if s == nil {
		return fmt.Errorf("section %q not found", sectionID)
	}
	if matIdx < 0 || matIdx >= len(s.Materials) {
		return fmt.Errorf("material %d out of range", matIdx)
	}
	m := s.Materials[matIdx]
	value = strings.TrimSpace(value)

	switch field {
	case "label":
		m.Label = value
	case "qty":
		m.Qty = value
	case "factor":
		m.Factor = value
	case "rate":
		m.Rate = value
	case "unit":
		m.Unit = value
	default:
		return fmt.Errorf("material field %q is not editable", field)
	}

	Reconcile(job)
	return nil
}

// DeleteMaterial removes a freeform material row, confirming first when it
// holds data. Template rows cannot be deleted.
func DeleteMaterial(job *Job, sectionID string, matIdx int, confirm Confirm) (bool, error) {
	s := findSection(job, sectionID)
	if s == nil {
		return false, fmt.Errorf("section %q not found", sectionID)
	}
	if matIdx < 0 || matIdx >= len(s.Materials) {
		return false, fmt.Errorf("material %d out of range", matIdx)
	}
	m := s.Materials[matIdx]
	if !strings.HasPrefix(m.Key, "free_") {
		return false, fmt.Errorf("material %q is a template row and cannot be removed", m.Key)
	}
	if materialHasData(m) && !confirm("This install material row has data. Remove it?") {
		return false, nil
	}
	s.Materials = append(s.Materials[:matIdx], s.Materials[matIdx+1:]...)
	Reconcile(job)
	return true, nil
}

// ── Bid sheet ───────────────────────────────────────────────────────────

// SetBidEntryField applies one raw text edit to a bid-sheet entry. Setting
// the source switches which markup field is authoritative.
func SetBidEntryField(job *Job, specID, field, value string) error {
	entry, ok := job.BidSheet[specID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrInvalidSpec, specID)
	}
	value = strings.TrimSpace(value)

	switch field {
	case "markup_pct":
		entry.MarkupPct = value
		entry.MarkupSource = MarkupSourcePct
	case "markup_amt":
		entry.MarkupAmt = value
		entry.MarkupSource = MarkupSourceAmt
	case "markup_source":
		if value != MarkupSourcePct && value != MarkupSourceAmt {
			return fmt.Errorf("markup source %q must be %q or %q", value, MarkupSourcePct, MarkupSourceAmt)
		}
		entry.MarkupSource = value
	case "notes":
		entry.Notes = value
	case "color":
		entry.Color = value
	default:
		return fmt.Errorf("bid entry field %q is not editable", field)
	}

	Reconcile(job)
	return nil
}
