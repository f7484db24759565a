// Package services implements the bid estimation engine: cost code and
// variant resolution, quote and frame-schedule normalization, derived
// geometry and install-material math, and bid sheet markup rollups.
package services

// Job is the aggregate root. Its JSON shape is the persisted job record
// consumed by the storage and report collaborators.
type Job struct {
	ID string `json:"id"`

	JobName             string `json:"job_name"`
	BidDueDate          string `json:"bid_due_date"`
	ProjectNumber       string `json:"project_number"`
	Walkthrough         bool   `json:"walkthrough"`
	MWDPO               string `json:"mwd_po"`
	AddendaCount        string `json:"addenda_count"`
	JobAddress          string `json:"job_address"`
	PlanSource          string `json:"plan_source"`
	OwnerName           string `json:"owner_name"`
	StartDate           string `json:"start_date"`
	OwnerAddress        string `json:"owner_address"`
	CompletionDate      string `json:"completion_date"`
	Architects          string `json:"architects"`
	FabStartDate        string `json:"fab_start_date"`
	ProjectType         string `json:"project_type"`
	FabDueDate          string `json:"fab_due_date"`
	BuildingType        string `json:"building_type"`
	WageData            string `json:"wage_data"`
	Estimator           string `json:"estimator"`
	TaxExemption        bool   `json:"tax_exemption"`
	ProjectManager      string `json:"project_manager"`
	ContractType        string `json:"contract_type"`
	Engineer            string `json:"engineer"`
	FrameColors         string `json:"frame_colors"`
	GeneralContractor   string `json:"general_contractor"`
	FieldShopHours      string `json:"field_shop_hours"`
	ConstructionManager string `json:"construction_manager"`
	FrameInformation    string `json:"frame_information"`
	ProductVendors      string `json:"product_vendors"`

	CostCodes []*CostCode `json:"cost_codes"`

	// Quotes and BidSheet are keyed by the composite spec identifier
	// ("code||variant"), as are FrameSchedules and Rollups.
	Quotes         map[string][]*Quote           `json:"quotes"`
	BidSheet       map[string]*BidEntry          `json:"bid_sheet"`
	FrameSchedules map[string][]*ScheduleSection `json:"frame_schedules"`
	Rollups        map[string]*Rollup            `json:"frame_schedule_rollups"`

	Config        *JobConfig `json:"config,omitempty"`
	BidSheetTotal int        `json:"bid_sheet_total"`
}

// CostCode groups quotes and frame schedules under a classification string
// (conventionally "NN NN NN"). Alts holds the numbered bid alternates.
type CostCode struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Description string `json:"description"`
	Alts        []int  `json:"alts"`
}

// Quote is one vendor quote. Price and Cost are whole dollars; Cost is
// derived from Price and Surcharge and never stored stale.
type Quote struct {
	Date      string  `json:"date"`
	Vendor    string  `json:"vendor"`
	Price     int     `json:"price"`
	Surcharge float64 `json:"surcharge"`
	Cost      int     `json:"cost"`
	Notes     string  `json:"notes"`
}

// ScheduleRow is one frame measurement line. Raw inputs stay as the text the
// estimator typed; derived columns (Sqft, Perim, CaulkLF, HeadSill) are
// rendered integers, blank when the row has no quantity.
type ScheduleRow struct {
	SpecMark    string `json:"spec_mark"`
	Qty         string `json:"qty"`
	Width       string `json:"width"`
	Height      string `json:"height"`
	Sqft        string `json:"sqft"`
	Perim       string `json:"perim"`
	CaulkPasses string `json:"caulk_passes"`
	CaulkLF     string `json:"caulk_lf"`
	HeadSill    string `json:"head_sill"`
	Head        string `json:"head"`
	Jamb        string `json:"jamb"`
	Sill        string `json:"sill"`
	Type        string `json:"type"`
	Matl        string `json:"matl"`
	Finish      string `json:"finish"`
	Notes       string `json:"notes"`
}

// Material basis values.
const (
	BasisPerim    = "perim_subtotal"
	BasisHeadSill = "head_sill_subtotal"
	BasisCaulkLF  = "caulk_lf_subtotal"
	BasisManual   = "manual"
)

// Material is one install-material line in a section. Template rows come from
// the material template; user-added rows carry a "free_" key prefix and a
// manual basis.
type Material struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Basis  string `json:"basis"`
	Factor string `json:"factor"`
	Rate   string `json:"rate"`
	Qty    string `json:"qty"`
	Unit   string `json:"unit"`
}

// ScheduleSection is one measurement worksheet for a spec identifier.
type ScheduleSection struct {
	ID                   string         `json:"id"`
	SpecID               string         `json:"spec_id"`
	Rows                 []*ScheduleRow `json:"rows"`
	Materials            []*Material    `json:"materials"`
	InstallMaterialTotal int            `json:"install_material_total"`
}

// Markup source discriminator values.
const (
	MarkupSourcePct = "pct"
	MarkupSourceAmt = "amt"
)

// BidEntry holds the user-entered markup fields for one spec identifier.
// MarkupSource selects which of the two fields is authoritative.
type BidEntry struct {
	MarkupPct    string `json:"markup_pct"`
	MarkupAmt    string `json:"markup_amt"`
	MarkupSource string `json:"markup_source"`
	Notes        string `json:"notes"`
	Color        string `json:"color"`
}

// Rollup aggregates install-material totals across all sections of a spec.
type Rollup struct {
	InstallMaterialTotal int `json:"install_material_total"`
}

// JobConfig is the job-local override of the global configuration: the
// material template seeded into new sections and the dropdown option lists.
type JobConfig struct {
	MaterialsTemplate []*Material         `json:"materials_template,omitempty"`
	Options           map[string][]string `json:"options,omitempty"`
}

// Subtotals are the per-section sums of derived row columns, taken over rows
// whose quantity text is populated.
type Subtotals struct {
	Qty      int
	Sqft     int
	Perim    int
	CaulkLF  int
	HeadSill int
}
