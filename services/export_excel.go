package services

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// GenerateScheduleExcel creates a frame-schedule workbook and returns the
// file contents as a byte slice. All sections share one sheet, each headed
// by its spec label, matching how estimators print takeoff sheets.
func GenerateScheduleExcel(data *ScheduleExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// Sheet name (max 31 chars, counted in runes so multi-byte names
	// never split mid-sequence).
	sheetName := data.JobName
	if runes := []rune(sheetName); len(runes) > 31 {
		sheetName = string(runes[:31])
	}
	if sheetName == "" {
		sheetName = "Frame Schedule"
	}

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M", "N", "O", "P"}
	lastCol := columns[len(columns)-1]

	widths := []float64{12, 6, 8, 8, 8, 8, 8, 10, 10, 8, 8, 8, 10, 10, 10, 24}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	// ── Styles ──────────────────────────────────────────────────────────

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	sectionStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#F5F3EF"},
			Pattern: 1,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create section style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 10},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#333333"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	bodyStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create body style: %w", err)
	}

	subtotalStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create subtotal style: %w", err)
	}

	totalStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create total style: %w", err)
	}

	// ── Title (rows 1-2) ────────────────────────────────────────────────

	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, "A1", sanitizeExcelCell(data.JobName+" — Frame Schedule"))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)
	f.SetCellValue(sheetName, "A2", "Date: "+data.GeneratedDate)

	rowHeaders := []string{
		"Spec/Mark", "Qty", "Width", "Height", "SQFT", "Perim", "Caulk Passes",
		"Caulk LF", "Head+Sill", "Head", "Jamb", "Sill", "Type", "Matl", "Finish", "Notes",
	}

	rowNum := 4
	for _, section := range data.Sections {
		// Section heading.
		rowStr := strconv.Itoa(rowNum)
		if err := f.MergeCell(sheetName, "A"+rowStr, lastCol+rowStr); err != nil {
			return nil, fmt.Errorf("merge section heading: %w", err)
		}
		f.SetCellValue(sheetName, "A"+rowStr, sanitizeExcelCell(section.SpecLabel))
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, sectionStyle)
		rowNum++

		// Column headers.
		rowStr = strconv.Itoa(rowNum)
		for i, h := range rowHeaders {
			f.SetCellValue(sheetName, columns[i]+rowStr, h)
		}
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, headerStyle)
		rowNum++

		// Measurement rows.
		for _, r := range section.Rows {
			if r == nil || !rowHasData(r) {
				continue
			}
			rowStr = strconv.Itoa(rowNum)
			values := []string{
				r.SpecMark, r.Qty, r.Width, r.Height, r.Sqft, r.Perim, r.CaulkPasses,
				r.CaulkLF, r.HeadSill, r.Head, r.Jamb, r.Sill, r.Type, r.Matl, r.Finish, r.Notes,
			}
			for i, v := range values {
				f.SetCellValue(sheetName, columns[i]+rowStr, sanitizeExcelCell(v))
			}
			f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, bodyStyle)
			rowNum++
		}

		// Subtotals.
		rowStr = strconv.Itoa(rowNum)
		f.SetCellValue(sheetName, "A"+rowStr, "Subtotals")
		f.SetCellValue(sheetName, "B"+rowStr, section.Subtotals.Qty)
		f.SetCellValue(sheetName, "E"+rowStr, section.Subtotals.Sqft)
		f.SetCellValue(sheetName, "F"+rowStr, section.Subtotals.Perim)
		f.SetCellValue(sheetName, "H"+rowStr, section.Subtotals.CaulkLF)
		f.SetCellValue(sheetName, "I"+rowStr, section.Subtotals.HeadSill)
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, subtotalStyle)
		rowNum += 2

		// Install materials.
		rowStr = strconv.Itoa(rowNum)
		matHeaders := []string{"Install Material", "Basis", "Factor", "Rate", "Qty", "Unit", "Cost"}
		for i, h := range matHeaders {
			f.SetCellValue(sheetName, columns[i]+rowStr, h)
		}
		f.SetCellStyle(sheetName, "A"+rowStr, "G"+rowStr, headerStyle)
		rowNum++

		subtotals := section.Subtotals
		for _, mat := range section.Materials {
			if mat == nil {
				continue
			}
			rowStr = strconv.Itoa(rowNum)
			f.SetCellValue(sheetName, "A"+rowStr, sanitizeExcelCell(mat.Label))
			f.SetCellValue(sheetName, "B"+rowStr, mat.Basis)
			f.SetCellValue(sheetName, "C"+rowStr, sanitizeExcelCell(mat.Factor))
			f.SetCellValue(sheetName, "D"+rowStr, sanitizeExcelCell(mat.Rate))
			f.SetCellValue(sheetName, "E"+rowStr, fmt.Sprintf("%.2f", MaterialQty(mat, subtotals)))
			f.SetCellValue(sheetName, "F"+rowStr, sanitizeExcelCell(mat.Unit))
			f.SetCellValue(sheetName, "G"+rowStr, FormatMoney(MaterialCost(mat, subtotals)))
			f.SetCellStyle(sheetName, "A"+rowStr, "G"+rowStr, bodyStyle)
			rowNum++
		}

		// Install total.
		rowStr = strconv.Itoa(rowNum)
		f.SetCellValue(sheetName, "F"+rowStr, "Install Total:")
		f.SetCellValue(sheetName, "G"+rowStr, FormatMoney(section.InstallMaterialTotal))
		f.SetCellStyle(sheetName, "F"+rowStr, "G"+rowStr, totalStyle)
		rowNum += 2
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
