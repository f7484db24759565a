package main

import (
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"bidmanager/collections"
	"bidmanager/handlers"
)

func main() {
	app := pocketbase.New()

	// Create collections, seed settings, and normalize stored jobs on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		if err := collections.MigrateJobRecords(app); err != nil {
			log.Printf("Warning: job migration failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// ── Jobs ─────────────────────────────────────────────────
		se.Router.GET("/jobs", handlers.HandleJobList(app))
		se.Router.POST("/jobs", handlers.HandleJobCreate(app))
		se.Router.GET("/jobs/{id}", handlers.HandleJobView(app))
		se.Router.POST("/jobs/{id}/info", handlers.HandleJobInfoUpdate(app))
		se.Router.DELETE("/jobs/{id}", handlers.HandleJobDelete(app))
		se.Router.POST("/jobs/{id}/undo", handlers.HandleUndo(app))

		// ── Cost codes ───────────────────────────────────────────
		se.Router.POST("/jobs/{id}/cost-codes", handlers.HandleCostCodeAdd(app))
		se.Router.POST("/jobs/{id}/cost-codes/{costCodeId}", handlers.HandleCostCodeUpdate(app))
		se.Router.DELETE("/jobs/{id}/cost-codes/{costCodeId}", handlers.HandleCostCodeDelete(app))

		// ── Quotes (spec id travels as a form value) ─────────────
		se.Router.POST("/jobs/{id}/quotes", handlers.HandleQuoteAdd(app))
		se.Router.POST("/jobs/{id}/quotes/update", handlers.HandleQuoteUpdate(app))
		se.Router.POST("/jobs/{id}/quotes/delete", handlers.HandleQuoteDelete(app))

		// ── Frame schedules ──────────────────────────────────────
		se.Router.POST("/jobs/{id}/sections", handlers.HandleSectionAdd(app))
		se.Router.POST("/jobs/{id}/sections/{sectionId}/delete", handlers.HandleSectionDelete(app))
		se.Router.POST("/jobs/{id}/sections/{sectionId}/rows", handlers.HandleRowAdd(app))
		se.Router.POST("/jobs/{id}/sections/{sectionId}/rows/update", handlers.HandleRowUpdate(app))
		se.Router.POST("/jobs/{id}/sections/{sectionId}/rows/delete", handlers.HandleRowDelete(app))
		se.Router.POST("/jobs/{id}/sections/{sectionId}/materials", handlers.HandleMaterialAdd(app))
		se.Router.POST("/jobs/{id}/sections/{sectionId}/materials/update", handlers.HandleMaterialUpdate(app))
		se.Router.POST("/jobs/{id}/sections/{sectionId}/materials/delete", handlers.HandleMaterialDelete(app))

		// ── Bid sheet ────────────────────────────────────────────
		se.Router.GET("/jobs/{id}/bid-sheet", handlers.HandleBidSheetView(app))
		se.Router.POST("/jobs/{id}/bid-sheet/update", handlers.HandleBidEntryUpdate(app))

		// ── Exports ──────────────────────────────────────────────
		se.Router.GET("/jobs/{id}/export/bid.pdf", handlers.HandleExportBidPDF(app))
		se.Router.GET("/jobs/{id}/export/quotes.pdf", handlers.HandleExportQuotesPDF(app))
		se.Router.GET("/jobs/{id}/export/schedules.xlsx", handlers.HandleExportScheduleExcel(app))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
