package services

import (
	"strconv"
	"strings"
)

// QtyPopulated reports whether the row's quantity text is non-blank. Rows
// without a quantity are excluded from section subtotals even if other
// columns hold data.
func QtyPopulated(row *ScheduleRow) bool {
	return strings.TrimSpace(row.Qty) != ""
}

// CalcScheduleRow recomputes the derived geometry columns from the raw qty,
// width and height text. A non-positive quantity clears all four derived
// columns. Dimensions are inches; sqft and the linear-foot columns ceiling
// to whole units.
func CalcScheduleRow(row *ScheduleRow) {
	qty := SafeFloat(row.Qty)
	wid := SafeFloat(row.Width)
	hei := SafeFloat(row.Height)

	if qty <= 0 {
		row.Sqft = ""
		row.Perim = ""
		row.CaulkLF = ""
		row.HeadSill = ""
		return
	}

	row.Sqft = strconv.Itoa(RoundUp(wid * hei * qty / 144.0))
	row.Perim = strconv.Itoa(RoundUp(2.0 * (wid/12.0 + hei/12.0) * qty))

	// Caulk length is perimeter times the entered pass count; no passes, no
	// caulk.
	passes := SafeFloat(row.CaulkPasses)
	if passes > 0 {
		row.CaulkLF = strconv.Itoa(RoundUp(float64(SafeInt(row.Perim)) * passes))
	} else {
		row.CaulkLF = ""
	}

	row.HeadSill = strconv.Itoa(RoundUp(qty * wid / 6.0))
}

// CommitScheduleRow is the row-edit entry point: once any input column on the
// row holds data, a blank caulk pass count defaults to 3 before the derived
// columns recompute.
func CommitScheduleRow(row *ScheduleRow) {
	if strings.TrimSpace(row.CaulkPasses) == "" && rowHasInput(row) {
		row.CaulkPasses = "3"
	}
	CalcScheduleRow(row)
}

// rowHasInput reports whether any editable column besides the pass count is
// populated.
func rowHasInput(row *ScheduleRow) bool {
	for _, v := range []string{
		row.SpecMark, row.Qty, row.Width, row.Height,
		row.Head, row.Jamb, row.Sill, row.Type, row.Matl, row.Finish, row.Notes,
	} {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

// rowHasData reports whether any editable column at all is populated; used to
// gate destructive row operations behind confirmation.
func rowHasData(row *ScheduleRow) bool {
	return rowHasInput(row) || strings.TrimSpace(row.CaulkPasses) != ""
}

// ScheduleSubtotals sums the quantity and derived columns over rows whose
// quantity text is populated, using each row's already-computed values.
func ScheduleSubtotals(rows []*ScheduleRow) Subtotals {
	var subs Subtotals
	for _, r := range rows {
		if r == nil || !QtyPopulated(r) {
			continue
		}
		subs.Qty += SafeInt(r.Qty)
		subs.Sqft += SafeInt(r.Sqft)
		subs.Perim += SafeInt(r.Perim)
		subs.CaulkLF += SafeInt(r.CaulkLF)
		subs.HeadSill += SafeInt(r.HeadSill)
	}
	return subs
}
