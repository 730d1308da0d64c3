package engine

// ============================================================================
// ORDERLENS ENGINE TYPES
// ============================================================================
// Filters go in, a Dashboard comes out. Every section of the Dashboard is a
// plain table of primitive values with highlight markers on top-ranked rows,
// ready for any presentation layer (terminal, JSON, chart images, xlsx).
// ============================================================================

// NoData marks a metric or section that is undefined for the filtered rows.
const NoData = "no data"

// NoCancellationData is reported when no filtered row has status "canceled".
const NoCancellationData = "no cancellation data"

// ============================================================================
// FILTERS
// ============================================================================

// Filters select which rows enter the Aggregation Stage.
// The zero value keeps every row with a purchase timestamp.
type Filters struct {
	Dates      DateRange `json:"dates"`
	Regions    Selection `json:"regions"`
	Categories Selection `json:"categories"`
}

// ============================================================================
// DASHBOARD — Render-ready output
// ============================================================================

// Dashboard is the output of one pipeline run.
type Dashboard struct {
	Filters      Filters `json:"filters"`
	TotalRows    int     `json:"totalRows"`
	FilteredRows int     `json:"filteredRows"`
	Currency     string  `json:"currency"`
	Locale       string  `json:"locale"`

	RFM           RFMSection          `json:"rfm"`
	Spend         SpendSection        `json:"spend"`
	Cancellations CancellationSection `json:"cancellations"`
	Products      ProductSection      `json:"products"`
	Monthly       MonthlySection      `json:"monthly"`
}

// Empty reports whether no row survived filtering.
func (d *Dashboard) Empty() bool { return d.FilteredRows == 0 }

// Metric is a single summary value. When Valid is false, Value is NoData.
type Metric struct {
	Label string  `json:"label"`
	Value string  `json:"value"`
	Raw   float64 `json:"raw"`
	Valid bool    `json:"valid"`
}

func noDataMetric(label string) Metric {
	return Metric{Label: label, Value: NoData}
}

// ============================================================================
// RFM
// ============================================================================

// CustomerRFM is one row of the RFM table.
type CustomerRFM struct {
	CustomerUniqueID string  `json:"customer_unique_id"`
	Recency          int     `json:"recency"`   // days before the latest filtered purchase
	Frequency        int     `json:"frequency"` // distinct orders
	Monetary         float64 `json:"monetary"`  // row-sum of total_order_value
}

// RFMSection holds the full RFM table, its two top lists and summary metrics.
type RFMSection struct {
	Customers    []CustomerRFM `json:"customers"` // ascending customer id
	TopRecency   []CustomerRFM `json:"topRecency"`
	TopFrequency []CustomerRFM `json:"topFrequency"`

	AvgRecency   Metric `json:"avgRecency"`
	AvgFrequency Metric `json:"avgFrequency"`
	AvgMonetary  Metric `json:"avgMonetary"`
}

func (s RFMSection) Empty() bool { return len(s.Customers) == 0 }

// ============================================================================
// SPEND
// ============================================================================

// CustomerSpend is one row of the top-spenders table.
type CustomerSpend struct {
	CustomerUniqueID string  `json:"customer_unique_id"`
	TotalSpent       float64 `json:"total_spent"`
	TotalOrders      int     `json:"total_orders"`
	Highlight        bool    `json:"highlight"`
}

// SpendSection holds the top spenders, highest first.
type SpendSection struct {
	Top []CustomerSpend `json:"top"`
}

func (s SpendSection) Empty() bool { return len(s.Top) == 0 }

// ============================================================================
// CANCELLATIONS
// ============================================================================

// RegionCancellations is one row of the cancellation table.
type RegionCancellations struct {
	Region    string `json:"customer_state"`
	Canceled  int    `json:"canceled"`
	Highlight bool   `json:"highlight"`
}

// CancellationSection lists cancellations per region, highest first.
// Available is false when no filtered row is canceled; Message then
// explains why the section is skipped.
type CancellationSection struct {
	Available bool                  `json:"available"`
	Message   string                `json:"message,omitempty"`
	Regions   []RegionCancellations `json:"regions"`
}

func (s CancellationSection) Empty() bool { return !s.Available }

// ============================================================================
// PRODUCTS
// ============================================================================

// CategoryRevenue is one row of a product revenue table.
type CategoryRevenue struct {
	Category  string  `json:"product_category"`
	Revenue   float64 `json:"revenue"` // sum of price
	Highlight bool    `json:"highlight"`
}

// ProductSection holds the highest and lowest earning categories.
type ProductSection struct {
	Top    []CategoryRevenue `json:"top"`    // descending
	Bottom []CategoryRevenue `json:"bottom"` // ascending
}

func (s ProductSection) Empty() bool { return len(s.Top) == 0 }

// ============================================================================
// MONTHLY
// ============================================================================

// MonthCount is the row count for one calendar month, labelled "2006-01".
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// MonthlySection is the chronological transaction trend.
type MonthlySection struct {
	Months []MonthCount `json:"months"`
}

func (s MonthlySection) Empty() bool { return len(s.Months) == 0 }

// Total sums the monthly counts.
func (s MonthlySection) Total() int {
	total := 0
	for _, m := range s.Months {
		total += m.Count
	}
	return total
}

// ============================================================================
// CHART TYPES
// ============================================================================

// ChartConfig defines how to render a chart.
type ChartConfig struct {
	Name       string        `json:"name"`
	ChartType  string        `json:"chartType"` // "bar", "line"
	Title      string        `json:"title"`
	XAxis      string        `json:"xAxis,omitempty"`
	YAxis      string        `json:"yAxis,omitempty"`
	Horizontal bool          `json:"horizontal,omitempty"`
	Series     []ChartSeries `json:"series"`
	Colors     []string      `json:"colors,omitempty"`
	ShowLegend bool          `json:"showLegend"`
	ShowGrid   bool          `json:"showGrid"`
}

// ChartSeries represents a data series in a chart.
type ChartSeries struct {
	Name  string       `json:"name"`
	Data  []ChartPoint `json:"data"`
	Color string       `json:"color,omitempty"`
}

// ChartPoint represents a single data point. Color overrides the series color.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color,omitempty"`
}

// ============================================================================
// TABLE TYPES
// ============================================================================

// TableData defines how to render a table.
// Highlight runs parallel to Rows and marks top-ranked rows.
type TableData struct {
	Name      string     `json:"name"`
	Title     string     `json:"title"`
	Columns   []Column   `json:"columns"`
	Rows      [][]string `json:"rows"`
	Highlight []bool     `json:"highlight"`
	Summary   *Summary   `json:"summary,omitempty"`
	Message   string     `json:"message,omitempty"` // set when the table has no rows
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text", "number", "currency"
	Align string `json:"align"` // "left", "center", "right"
}

// Summary provides totals for a table.
type Summary struct {
	Label  string            `json:"label"`
	Values map[string]string `json:"values"`
}

// ============================================================================
// TEXT TYPES
// ============================================================================

// TextData is a metric card.
type TextData struct {
	Key      string  `json:"key"`
	Label    string  `json:"label"`
	Value    string  `json:"value"`
	RawValue float64 `json:"rawValue"`
	Unit     string  `json:"unit,omitempty"`
	Period   string  `json:"period"`
	Count    int     `json:"count"`
}
