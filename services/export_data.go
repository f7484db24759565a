package services

// QuoteExportRow is one vendor quote line in the bid report.
type QuoteExportRow struct {
	SpecLabel string
	Date      string
	Vendor    string
	Price     int
	Surcharge float64
	Cost      int
	Notes     string
}

// BidExportData holds everything the bid PDF needs, pre-formatted where the
// layout wants strings.
type BidExportData struct {
	JobName       string
	GC            string
	Estimator     string
	BidDueDate    string
	GeneratedDate string
	Lines         []BidLine
	Quotes        []QuoteExportRow
	BidTotal      int
}

// BuildBidExport flattens a job into the bid report shape. Lines and quotes
// come out in spec order.
func BuildBidExport(job *Job, generatedDate string) *BidExportData {
	data := &BidExportData{
		JobName:       job.JobName,
		GC:            job.GeneralContractor,
		Estimator:     job.Estimator,
		BidDueDate:    job.BidDueDate,
		GeneratedDate: generatedDate,
		Lines:         BidLines(job),
		BidTotal:      job.BidSheetTotal,
	}

	for _, specID := range sortedSpecIDs(job.Quotes) {
		code, variant := ParseSpecID(specID)
		label := SpecLabel(code, variant)
		for _, q := range job.Quotes[specID] {
			if !quoteHasData(q) {
				continue
			}
			data.Quotes = append(data.Quotes, QuoteExportRow{
				SpecLabel: label,
				Date:      q.Date,
				Vendor:    q.Vendor,
				Price:     q.Price,
				Surcharge: q.Surcharge,
				Cost:      q.Cost,
				Notes:     q.Notes,
			})
		}
	}

	return data
}

// ScheduleExportSection is one schedule section flattened for the workbook.
type ScheduleExportSection struct {
	SpecLabel            string
	Rows                 []*ScheduleRow
	Subtotals            Subtotals
	Materials            []*Material
	InstallMaterialTotal int
}

// ScheduleExportData holds everything the frame-schedule workbook needs.
type ScheduleExportData struct {
	JobName       string
	GeneratedDate string
	Sections      []ScheduleExportSection
}

// BuildScheduleExport flattens a job's frame schedules in spec order,
// skipping empty sections so the workbook reads like the estimate.
func BuildScheduleExport(job *Job, generatedDate string) *ScheduleExportData {
	data := &ScheduleExportData{
		JobName:       job.JobName,
		GeneratedDate: generatedDate,
	}

	for _, specID := range sortedSpecIDs(job.FrameSchedules) {
		code, variant := ParseSpecID(specID)
		label := SpecLabel(code, variant)
		for _, section := range job.FrameSchedules[specID] {
			if section == nil || !sectionHasData(section) {
				continue
			}
			data.Sections = append(data.Sections, ScheduleExportSection{
				SpecLabel:            label,
				Rows:                 section.Rows,
				Subtotals:            ScheduleSubtotals(section.Rows),
				Materials:            section.Materials,
				InstallMaterialTotal: section.InstallMaterialTotal,
			})
		}
	}

	return data
}

func sectionHasData(s *ScheduleSection) bool {
	for _, r := range s.Rows {
		if r != nil && rowHasData(r) {
			return true
		}
	}
	for _, m := range s.Materials {
		if m != nil && materialHasData(m) {
			return true
		}
	}
	return false
}
