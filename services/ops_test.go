package services

import (
	"errors"
	"strings"
	"testing"
)

func strp(s string) *string { return &s }

func TestAddCostCode(t *testing.T) {
	job := &Job{}
	EnsureJobDefaults(job)

	cc := AddCostCode(job)
	if cc.ID == "" {
		t.Error("new cost code missing id")
	}
	if cc.Code != "00 00 00" {
		t.Errorf("placeholder code = %q, want 00 00 00", cc.Code)
	}
	if _, ok := job.Quotes["00 00 00||BASE"]; !ok {
		t.Error("quote bucket not created for new code")
	}
	if _, ok := job.BidSheet["00 00 00||BASE"]; !ok {
		t.Error("bid entry not created for new code")
	}
}

func TestSetCostCodeCode_RenamesDependents(t *testing.T) {
	job := testJob()
	job.Quotes["08 41 13||BASE"] = []*Quote{{Vendor: "Acme", Price: 1000}}

	if err := SetCostCodeCode(job, "cc1", "08 44 00"); err != nil {
		t.Fatalf("SetCostCodeCode: %v", err)
	}

	bucket := job.Quotes["08 44 00||BASE"]
	if len(bucket) != 1 || bucket[0].Vendor != "Acme" {
		t.Fatalf("quotes did not follow rename: %+v", bucket)
	}
	if _, ok := job.Quotes["08 41 13||BASE"]; ok {
		t.Error("old bucket survived rename")
	}

	if err := SetCostCodeCode(job, "missing", "x"); err == nil {
		t.Error("expected error for unknown cost code id")
	}
}

func TestSetCostCodeAlternates(t *testing.T) {
	job := testJob()

	if err := SetCostCodeAlternates(job, "cc1", "2,5"); err != nil {
		t.Fatalf("SetCostCodeAlternates: %v", err)
	}

	if _, ok := job.Quotes["08 41 13||ALT5"]; !ok {
		t.Error("ALT5 bucket not created")
	}
	if _, ok := job.Quotes["08 41 13||ALT1"]; ok {
		t.Error("removed ALT1 bucket survived")
	}
}

func TestDeleteCostCode(t *testing.T) {
	job := testJob()

	ok, err := DeleteCostCode(job, "cc1", ConfirmNever)
	if err != nil {
		t.Fatalf("DeleteCostCode: %v", err)
	}
	if ok {
		t.Error("declined confirm still deleted")
	}
	if len(job.CostCodes) != 1 {
		t.Fatal("cost code removed despite declined confirm")
	}

	ok, err = DeleteCostCode(job, "cc1", ConfirmAlways)
	if err != nil || !ok {
		t.Fatalf("DeleteCostCode = (%v, %v), want (true, nil)", ok, err)
	}
	if len(job.CostCodes) != 0 {
		t.Error("cost code not removed")
	}
	if len(job.Quotes) != 0 || len(job.BidSheet) != 0 || len(job.FrameSchedules) != 0 {
		t.Error("dependent maps not emptied with the last cost code")
	}
}

func TestAddQuote(t *testing.T) {
	job := testJob()

	if err := AddQuote(job, "08 41 13||BASE"); err != nil {
		t.Fatalf("AddQuote: %v", err)
	}
	if got := len(job.Quotes["08 41 13||BASE"]); got != 2 {
		t.Errorf("bucket size = %d, want 2", got)
	}

	err := AddQuote(job, "09 99 99||BASE")
	if !errors.Is(err, ErrInvalidSpec) {
		t.Errorf("err = %v, want ErrInvalidSpec", err)
	}
}

func TestUpdateQuote(t *testing.T) {
	job := testJob()

	err := UpdateQuote(job, "08 41 13||BASE", 0, QuoteUpdate{
		Vendor:    strp("Acme Glass"),
		Price:     strp("$12,500"),
		Surcharge: strp("8%"),
	})
	if err != nil {
		t.Fatalf("UpdateQuote: %v", err)
	}

	q := job.Quotes["08 41 13||BASE"][0]
	if q.Price != 12500 {
		t.Errorf("Price = %d, want 12500", q.Price)
	}
	if q.Surcharge != 8 {
		t.Errorf("Surcharge = %v, want 8", q.Surcharge)
	}
	if q.Cost != 13500 {
		t.Errorf("Cost = %d, want 13500", q.Cost)
	}
	if strings.TrimSpace(q.Date) == "" {
		t.Error("date not autofilled on priced quote")
	}

	if err := UpdateQuote(job, "08 41 13||BASE", 5, QuoteUpdate{}); err == nil {
		t.Error("expected out-of-range error")
	}
	if err := UpdateQuote(job, "09 99 99||BASE", 0, QuoteUpdate{}); !errors.Is(err, ErrInvalidSpec) {
		t.Errorf("err = %v, want ErrInvalidSpec", err)
	}
}

func TestUpdateQuote_KeepsExplicitDate(t *testing.T) {
	job := testJob()

	err := UpdateQuote(job, "08 41 13||BASE", 0, QuoteUpdate{
		Date:  strp("2026-01-15"),
		Price: strp("500"),
	})
	if err != nil {
		t.Fatalf("UpdateQuote: %v", err)
	}
	if got := job.Quotes["08 41 13||BASE"][0].Date; got != "2026-01-15" {
		t.Errorf("Date = %q, want the entered date", got)
	}
}

func TestDeleteQuote(t *testing.T) {
	job := testJob()
	job.Quotes["08 41 13||BASE"] = []*Quote{{Vendor: "Acme", Price: 100}}
	Reconcile(job)

	ok, err := DeleteQuote(job, "08 41 13||BASE", 0, ConfirmNever)
	if err != nil {
		t.Fatalf("DeleteQuote: %v", err)
	}
	if ok {
		t.Error("declined confirm still deleted")
	}

	ok, err = DeleteQuote(job, "08 41 13||BASE", 0, ConfirmAlways)
	if err != nil || !ok {
		t.Fatalf("DeleteQuote = (%v, %v), want (true, nil)", ok, err)
	}

	// The empty bucket refills with a blank placeholder.
	bucket := job.Quotes["08 41 13||BASE"]
	if len(bucket) != 1 || quoteHasData(bucket[0]) {
		t.Errorf("bucket = %+v, want one blank quote", bucket)
	}

	// A blank placeholder deletes without confirmation.
	ok, err = DeleteQuote(job, "08 41 13||BASE", 0, ConfirmNever)
	if err != nil || !ok {
		t.Errorf("blank quote delete = (%v, %v), want (true, nil)", ok, err)
	}
}

func TestAddScheduleSection(t *testing.T) {
	job := testJob()

	section, err := AddScheduleSection(job, "08 41 13||ALT1")
	if err != nil {
		t.Fatalf("AddScheduleSection: %v", err)
	}
	if section.SpecID != "08 41 13||ALT1" {
		t.Errorf("SpecID = %q", section.SpecID)
	}
	if len(section.Rows) != 1 {
		t.Errorf("row count = %d, want 1 blank row", len(section.Rows))
	}
	if len(section.Materials) != len(DefaultMaterialsTemplate()) {
		t.Errorf("material count = %d, want template size", len(section.Materials))
	}

	if _, err := AddScheduleSection(job, "09 99 99||BASE"); !errors.Is(err, ErrInvalidSpec) {
		t.Errorf("err = %v, want ErrInvalidSpec", err)
	}
}

func TestScheduleRowOps(t *testing.T) {
	job := testJob()
	section, err := AddScheduleSection(job, "08 41 13||BASE")
	if err != nil {
		t.Fatalf("AddScheduleSection: %v", err)
	}

	if err := AddScheduleRow(job, section.ID); err != nil {
		t.Fatalf("AddScheduleRow: %v", err)
	}
	if len(section.Rows) != 2 {
		t.Fatalf("row count = %d, want 2", len(section.Rows))
	}

	for field, value := range map[string]string{
		"qty": "25", "width": "12", "height": "12",
	} {
		if err := SetScheduleRowField(job, section.ID, 0, field, value); err != nil {
			t.Fatalf("SetScheduleRowField(%s): %v", field, err)
		}
	}

	row := section.Rows[0]
	if row.CaulkPasses != "3" {
		t.Errorf("CaulkPasses = %q, want default 3", row.CaulkPasses)
	}
	if row.Perim != "100" {
		t.Errorf("Perim = %q, want 100", row.Perim)
	}
	if job.Rollups["08 41 13||BASE"].InstallMaterialTotal <= 0 {
		t.Error("rollup not recomputed after row edit")
	}

	if err := SetScheduleRowField(job, section.ID, 0, "sqft", "999"); err == nil {
		t.Error("derived column accepted an edit")
	}

	// Populated row needs confirmation.
	ok, err := DeleteScheduleRow(job, section.ID, 0, ConfirmNever)
	if err != nil || ok {
		t.Errorf("DeleteScheduleRow declined = (%v, %v), want (false, nil)", ok, err)
	}
	ok, err = DeleteScheduleRow(job, section.ID, 0, ConfirmAlways)
	if err != nil || !ok {
		t.Fatalf("DeleteScheduleRow = (%v, %v), want (true, nil)", ok, err)
	}

	// Deleting the last row leaves one blank behind.
	ok, err = DeleteScheduleRow(job, section.ID, 0, ConfirmAlways)
	if err != nil || !ok {
		t.Fatalf("DeleteScheduleRow = (%v, %v), want (true, nil)", ok, err)
	}
	if len(section.Rows) != 1 || rowHasData(section.Rows[0]) {
		t.Errorf("rows = %+v, want one blank row", section.Rows)
	}
}

func TestDeleteScheduleSection(t *testing.T) {
	job := testJob()
	section, err := AddScheduleSection(job, "08 41 13||BASE")
	if err != nil {
		t.Fatalf("AddScheduleSection: %v", err)
	}

	ok, err := DeleteScheduleSection(job, "08 41 13||BASE", section.ID, ConfirmNever)
	if err != nil || ok {
		t.Errorf("declined delete = (%v, %v), want (false, nil)", ok, err)
	}

	ok, err = DeleteScheduleSection(job, "08 41 13||BASE", section.ID, ConfirmAlways)
	if err != nil || !ok {
		t.Fatalf("DeleteScheduleSection = (%v, %v), want (true, nil)", ok, err)
	}
	if len(job.FrameSchedules["08 41 13||BASE"]) != 0 {
		t.Error("section not removed")
	}
}

func TestMaterialOps(t *testing.T) {
	job := testJob()
	section, err := AddScheduleSection(job, "08 41 13||BASE")
	if err != nil {
		t.Fatalf("AddScheduleSection: %v", err)
	}
	templateSize := len(section.Materials)

	m, err := AddFreeformMaterial(job, section.ID)
	if err != nil {
		t.Fatalf("AddFreeformMaterial: %v", err)
	}
	if !strings.HasPrefix(m.Key, "free_") {
		t.Errorf("freeform key = %q, want free_ prefix", m.Key)
	}
	if m.Basis != BasisManual {
		t.Errorf("freeform basis = %q, want manual", m.Basis)
	}

	idx := len(section.Materials) - 1
	if err := SetMaterialField(job, section.ID, idx, "label", "Shims"); err != nil {
		t.Fatalf("SetMaterialField: %v", err)
	}
	if err := SetMaterialField(job, section.ID, idx, "qty", "10"); err != nil {
		t.Fatalf("SetMaterialField: %v", err)
	}
	if err := SetMaterialField(job, section.ID, idx, "rate", "2.50"); err != nil {
		t.Fatalf("SetMaterialField: %v", err)
	}
	if section.InstallMaterialTotal != 25 {
		t.Errorf("InstallMaterialTotal = %d, want 25", section.InstallMaterialTotal)
	}

	// Template rows never delete.
	if _, err := DeleteMaterial(job, section.ID, 0, ConfirmAlways); err == nil {
		t.Error("template row deletion succeeded")
	}

	ok, err := DeleteMaterial(job, section.ID, idx, ConfirmNever)
	if err != nil || ok {
		t.Errorf("declined delete = (%v, %v), want (false, nil)", ok, err)
	}
	ok, err = DeleteMaterial(job, section.ID, idx, ConfirmAlways)
	if err != nil || !ok {
		t.Fatalf("DeleteMaterial = (%v, %v), want (true, nil)", ok, err)
	}
	if len(section.Materials) != templateSize {
		t.Errorf("material count = %d, want %d", len(section.Materials), templateSize)
	}
}

func TestSetBidEntryField(t *testing.T) {
	job := testJob()

	if err := SetBidEntryField(job, "08 41 13||BASE", "markup_pct", "10"); err != nil {
		t.Fatalf("SetBidEntryField: %v", err)
	}
	entry := job.BidSheet["08 41 13||BASE"]
	if entry.MarkupSource != MarkupSourcePct {
		t.Errorf("source = %q, want pct", entry.MarkupSource)
	}

	if err := SetBidEntryField(job, "08 41 13||BASE", "markup_amt", "$500"); err != nil {
		t.Fatalf("SetBidEntryField: %v", err)
	}
	if entry.MarkupSource != MarkupSourceAmt {
		t.Errorf("source = %q, want amt after dollar edit", entry.MarkupSource)
	}
	if job.BidSheetTotal != 500 {
		t.Errorf("BidSheetTotal = %d, want 500", job.BidSheetTotal)
	}

	if err := SetBidEntryField(job, "08 41 13||BASE", "markup_source", "bogus"); err == nil {
		t.Error("bogus source accepted")
	}
	if err := SetBidEntryField(job, "09 99 99||BASE", "notes", "x"); !errors.Is(err, ErrInvalidSpec) {
		t.Errorf("err = %v, want ErrInvalidSpec", err)
	}
}
