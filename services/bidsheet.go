package services

// BidLine is the computed bid-sheet projection for one spec identifier.
// CostValue is the quoted base plus the install-material rollup; LineTotal is
// the markup-inclusive schedule-of-values figure.
type BidLine struct {
	SpecID       string  `json:"spec_id"`
	Label        string  `json:"label"`
	BaseCost     int     `json:"base_cost"`
	InstallTotal int     `json:"install_total"`
	CostValue    int     `json:"cost_value"`
	MarkupPct    float64 `json:"markup_pct"`
	MarkupAmt    int     `json:"markup_amt"`
	LineTotal    int     `json:"line_total"`
	Notes        string  `json:"notes"`
	Color        string  `json:"color"`
}

// NormalizeBidSheet reconciles the bid-sheet map against the current cost
// codes: one entry per valid spec identifier, seeded with default markup
// fields, stale entries dropped, and the discriminator and color repaired to
// known values.
func NormalizeBidSheet(job *Job) {
	if job.BidSheet == nil {
		job.BidSheet = map[string]*BidEntry{}
	}

	valid := ValidSpecIDs(job)
	for id := range job.BidSheet {
		if !valid[id] {
			delete(job.BidSheet, id)
		}
	}
	for id := range valid {
		entry := job.BidSheet[id]
		if entry == nil {
			entry = DefaultBidEntry()
			job.BidSheet[id] = entry
		}
		if entry.MarkupSource != MarkupSourcePct && entry.MarkupSource != MarkupSourceAmt {
			entry.MarkupSource = MarkupSourcePct
		}
		if entry.Color == "" {
			entry.Color = "None"
		}
	}
}

// CalcBidLine computes one spec's bid line. The base cost sums only quotes
// with a positive cost, skipping unpriced placeholders. The markup resolves
// by the entry's source: a dollar-sourced entry derives its percentage for
// display only; a percent-sourced entry ceilings the derived dollar amount.
func CalcBidLine(job *Job, specID string) BidLine {
	base := 0
	for _, q := range job.Quotes[specID] {
		if q != nil && q.Cost > 0 {
			base += q.Cost
		}
	}

	install := 0
	if r := job.Rollups[specID]; r != nil {
		install = r.InstallMaterialTotal
	}

	costValue := base + install

	entry := job.BidSheet[specID]
	if entry == nil {
		entry = DefaultBidEntry()
	}

	var pctVal float64
	var amtVal int
	switch entry.MarkupSource {
	case MarkupSourceAmt:
		amtVal = ParseMoney(entry.MarkupAmt)
		if amtVal < 0 {
			amtVal = 0
		}
		if costValue > 0 {
			pctVal = float64(amtVal) / float64(costValue) * 100.0
		}
	default:
		pctVal = ParsePct(entry.MarkupPct)
		if pctVal < 0 {
			pctVal = 0
		}
		amtVal = RoundUp(float64(costValue) * pctVal / 100.0)
	}

	code, variant := ParseSpecID(specID)
	return BidLine{
		SpecID:       specID,
		Label:        SpecLabel(code, variant),
		BaseCost:     base,
		InstallTotal: install,
		CostValue:    costValue,
		MarkupPct:    pctVal,
		MarkupAmt:    amtVal,
		LineTotal:    costValue + amtVal,
		Notes:        entry.Notes,
		Color:        entry.Color,
	}
}

// BidLines computes every bid line in deterministic order (code, then BASE
// before ALTs).
func BidLines(job *Job) []BidLine {
	ids := sortedSpecIDs(job.BidSheet)
	out := make([]BidLine, 0, len(ids))
	for _, id := range ids {
		out = append(out, CalcBidLine(job, id))
	}
	return out
}

// ComputeBidSheetTotal sums the line totals across every bid-sheet entry.
func ComputeBidSheetTotal(job *Job) int {
	total := 0
	for id := range job.BidSheet {
		total += CalcBidLine(job, id).LineTotal
	}
	return total
}
