package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"bidmanager/services"
)

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}

// HandleExportBidPDF generates and downloads the bid summary PDF for a job.
func HandleExportBidPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		recordID := e.Request.PathValue("id")
		_, job, err := loadJob(app, recordID)
		if err != nil {
			log.Printf("export_bid_pdf: %v", err)
			return e.String(http.StatusNotFound, "Job not found")
		}

		data := services.BuildBidExport(job, time.Now().Format("2006-01-02"))
		pdfBytes, err := services.GenerateBidPDF(data)
		if err != nil {
			log.Printf("export_bid_pdf: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate PDF file")
		}

		filename := fmt.Sprintf("Bid_%s_%d.pdf", sanitizeFilename(job.JobName), time.Now().Year())

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}

// HandleExportQuotesPDF generates and downloads the vendor quote log PDF.
func HandleExportQuotesPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		recordID := e.Request.PathValue("id")
		_, job, err := loadJob(app, recordID)
		if err != nil {
			log.Printf("export_quotes_pdf: %v", err)
			return e.String(http.StatusNotFound, "Job not found")
		}

		data := services.BuildBidExport(job, time.Now().Format("2006-01-02"))
		pdfBytes, err := services.GenerateQuotesPDF(data)
		if err != nil {
			log.Printf("export_quotes_pdf: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate PDF file")
		}

		filename := fmt.Sprintf("Quotes_%s_%d.pdf", sanitizeFilename(job.JobName), time.Now().Year())

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}

// HandleExportScheduleExcel generates and downloads the frame-schedule
// workbook for a job.
func HandleExportScheduleExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		recordID := e.Request.PathValue("id")
		_, job, err := loadJob(app, recordID)
		if err != nil {
			log.Printf("export_schedule_excel: %v", err)
			return e.String(http.StatusNotFound, "Job not found")
		}

		data := services.BuildScheduleExport(job, time.Now().Format("2006-01-02"))
		xlsxBytes, err := services.GenerateScheduleExcel(data)
		if err != nil {
			log.Printf("export_schedule_excel: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate Excel file")
		}

		filename := fmt.Sprintf("FrameSchedule_%s_%d.xlsx", sanitizeFilename(job.JobName), time.Now().Year())

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}
