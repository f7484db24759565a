package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GenerateBidPDF creates the bid summary PDF using maroto/v2. It returns the
// raw PDF bytes or an error.
func GenerateBidPDF(data *BidExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addBidHeader(m, data, "BID SUMMARY")
	addBidSheetTable(m, data)
	addBidTotal(m, data)
	addQuoteLog(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate bid PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// GenerateQuotesPDF creates the standalone vendor quote log PDF.
func GenerateQuotesPDF(data *BidExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addBidHeader(m, data, "QUOTE LOG")
	addQuoteLog(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate quotes PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addBidHeader adds the job name, report title, and bid metadata.
func addBidHeader(m core.Maroto, data *BidExportData, title string) {
	m.AddRows(
		row.New(10).Add(
			col.New(6).Add(
				text.New(data.JobName, props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
			col.New(6).Add(
				text.New(title, props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Right,
					Color: &props.Color{Red: 33, Green: 37, Blue: 41},
				}),
			),
		),
	)

	metaStyle := props.Text{
		Size:  8,
		Align: align.Left,
		Color: &props.Color{Red: 100, Green: 100, Blue: 100},
	}

	meta := ""
	if data.GC != "" {
		meta = "GC: " + data.GC
	}
	if data.Estimator != "" {
		if meta != "" {
			meta += " | "
		}
		meta += "Estimator: " + data.Estimator
	}
	if data.BidDueDate != "" {
		if meta != "" {
			meta += " | "
		}
		meta += "Bid Due: " + data.BidDueDate
	}

	m.AddRows(
		row.New(8).Add(
			col.New(8).Add(text.New(meta, metaStyle)),
			col.New(4).Add(text.New("Generated: "+data.GeneratedDate, props.Text{
				Size:  8,
				Align: align.Right,
				Color: &props.Color{Red: 100, Green: 100, Blue: 100},
			})),
		),
	)

	m.AddRows(row.New(3))
}

// addBidSheetTable adds the per-spec bid line table.
func addBidSheetTable(m core.Maroto, data *BidExportData) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left
	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(3).Add(text.New("Spec", headerTextLeft)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Base Cost", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Install Matl", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Markup %", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Markup $", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Line Total", headerText)).WithStyle(&headerCell),
		),
	)

	altBg := &props.Color{Red: 248, Green: 249, Blue: 250}

	for i, line := range data.Lines {
		bodyTextLeft := props.Text{Size: 7, Align: align.Left}
		bodyTextRight := props.Text{Size: 7, Align: align.Right}
		bodyTextCenter := props.Text{Size: 7, Align: align.Center}

		var cellStyle *props.Cell
		if i%2 == 1 {
			cellStyle = &props.Cell{BackgroundColor: altBg}
		}

		colSpec := col.New(3).Add(text.New(line.Label, bodyTextLeft))
		colBase := col.New(2).Add(text.New(FormatMoney(line.BaseCost), bodyTextRight))
		colInstall := col.New(2).Add(text.New(FormatMoney(line.InstallTotal), bodyTextRight))
		colPct := col.New(1).Add(text.New(FormatPct(line.MarkupPct), bodyTextCenter))
		colAmt := col.New(2).Add(text.New(FormatMoney(line.MarkupAmt), bodyTextRight))
		colTotal := col.New(2).Add(text.New(FormatMoney(line.LineTotal), bodyTextRight))

		if cellStyle != nil {
			colSpec = colSpec.WithStyle(cellStyle)
			colBase = colBase.WithStyle(cellStyle)
			colInstall = colInstall.WithStyle(cellStyle)
			colPct = colPct.WithStyle(cellStyle)
			colAmt = colAmt.WithStyle(cellStyle)
			colTotal = colTotal.WithStyle(cellStyle)
		}

		m.AddRows(
			row.New(7).Add(colSpec, colBase, colInstall, colPct, colAmt, colTotal),
		)
	}

	m.AddRows(row.New(2))
}

// addBidTotal adds the grand-total row.
func addBidTotal(m core.Maroto, data *BidExportData) {
	grandBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	grandCell := &props.Cell{BackgroundColor: grandBg}
	white := &props.Color{Red: 255, Green: 255, Blue: 255}

	m.AddRows(
		row.New(8).Add(
			col.New(9).Add(text.New("Bid Total", props.Text{
				Size:  9,
				Style: fontstyle.Bold,
				Align: align.Right,
				Color: white,
			})).WithStyle(grandCell),
			col.New(3).Add(text.New(FormatMoney(data.BidTotal), props.Text{
				Size:  9,
				Style: fontstyle.Bold,
				Align: align.Right,
				Color: white,
			})).WithStyle(grandCell),
		),
	)

	m.AddRows(row.New(4))
}

// addQuoteLog adds the vendor quote log beneath the bid table. Skipped when
// no quote carries data.
func addQuoteLog(m core.Maroto, data *BidExportData) {
	if len(data.Quotes) == 0 {
		return
	}

	sectionLabel := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: &props.Color{Red: 33, Green: 37, Blue: 41},
	}
	m.AddRows(
		row.New(7).Add(
			col.New(12).Add(text.New("VENDOR QUOTES", sectionLabel)),
		),
	)

	headerBg := &props.Color{Red: 245, Green: 243, Blue: 239}
	headerCell := props.Cell{BackgroundColor: headerBg}
	headerText := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: &props.Color{Red: 100, Green: 100, Blue: 100},
	}

	m.AddRows(
		row.New(7).Add(
			col.New(2).Add(text.New("Spec", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Date", headerText)).WithStyle(&headerCell),
			col.New(3).Add(text.New("Vendor", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Price", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Surch %", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Cost", headerText)).WithStyle(&headerCell),
		),
	)

	for _, q := range data.Quotes {
		bodyText := props.Text{Size: 7, Align: align.Left}
		bodyRight := props.Text{Size: 7, Align: align.Right}

		m.AddRows(
			row.New(6).Add(
				col.New(2).Add(text.New(q.SpecLabel, bodyText)),
				col.New(2).Add(text.New(q.Date, bodyText)),
				col.New(3).Add(text.New(q.Vendor, bodyText)),
				col.New(2).Add(text.New(FormatMoney(q.Price), bodyRight)),
				col.New(1).Add(text.New(FormatPct(q.Surcharge), bodyText)),
				col.New(2).Add(text.New(FormatMoney(q.Cost), bodyRight)),
			),
		)
	}
}
