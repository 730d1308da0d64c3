package engine

import (
	"errors"
	"fmt"
)

// ============================================================================
// CHART BUILDER — Produces ChartConfig from Dashboard sections
// ============================================================================

// Chart names, as used by /v1/charts/:name and export file names.
const (
	ChartRFMRecency     = "rfm-recency"
	ChartRFMFrequency   = "rfm-frequency"
	ChartTopSpenders    = "top-spenders"
	ChartCancellations  = "cancellations"
	ChartProductsTop    = "products-top"
	ChartProductsBottom = "products-bottom"
	ChartMonthly        = "monthly"
)

// ChartNames lists every chart in dashboard order.
var ChartNames = []string{
	ChartRFMRecency, ChartRFMFrequency, ChartTopSpenders, ChartCancellations,
	ChartProductsTop, ChartProductsBottom, ChartMonthly,
}

var (
	// ErrUnknownChart is returned for a chart name not in ChartNames.
	ErrUnknownChart = errors.New("unknown chart")
	// ErrNoChartData is returned when the chart's section has no rows.
	ErrNoChartData = errors.New(NoData)
)

// Section colors.
const (
	colorRFM          = "#69b3a2"
	colorRankFirst    = "darkblue"
	colorRankOther    = "lightblue"
	colorProductTop1  = "#008080"
	colorProductTop   = "#20B2AA"
	colorProductLast1 = "#FF8C00"
	colorProductLast  = "#FFA07A"
	colorMonthly      = "blue"
)

// BuildCharts produces one chart per dashboard section that has data.
func BuildCharts(d *Dashboard) []ChartConfig {
	charts := make([]ChartConfig, 0, len(ChartNames))
	for _, name := range ChartNames {
		if c, err := BuildChart(d, name); err == nil {
			charts = append(charts, *c)
		}
	}
	return charts
}

// BuildChart produces the named chart.
func BuildChart(d *Dashboard, name string) (*ChartConfig, error) {
	var c *ChartConfig
	switch name {
	case ChartRFMRecency:
		c = rfmChart(name, "Top Customers by Recency", "Recency (days)", d.RFM.TopRecency,
			func(r CustomerRFM) float64 { return float64(r.Recency) })
	case ChartRFMFrequency:
		c = rfmChart(name, "Top Customers by Frequency", "Frequency (orders)", d.RFM.TopFrequency,
			func(r CustomerRFM) float64 { return float64(r.Frequency) })
	case ChartTopSpenders:
		c = spendChart(d)
	case ChartCancellations:
		c = cancellationChart(d)
	case ChartProductsTop:
		c = productChart(name, "Top Categories by Revenue", d.Products.Top, colorProductTop1, colorProductTop, d.Currency)
	case ChartProductsBottom:
		c = productChart(name, "Lowest Categories by Revenue", d.Products.Bottom, colorProductLast1, colorProductLast, d.Currency)
	case ChartMonthly:
		c = monthlyChart(d)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownChart, name)
	}
	if c == nil {
		return nil, fmt.Errorf("chart %s: %w", name, ErrNoChartData)
	}
	return c, nil
}

// ============================================================================
// SECTION CHARTS
// ============================================================================

func rfmChart(name, title, yAxis string, rows []CustomerRFM, value func(CustomerRFM) float64) *ChartConfig {
	if len(rows) == 0 {
		return nil
	}
	points := make([]ChartPoint, len(rows))
	for i, r := range rows {
		points[i] = ChartPoint{Label: r.CustomerUniqueID, Value: value(r), Color: colorRFM}
	}
	return barChart(name, title, "Customer Unique ID", yAxis, false, points)
}

func spendChart(d *Dashboard) *ChartConfig {
	if d.Spend.Empty() {
		return nil
	}
	points := make([]ChartPoint, len(d.Spend.Top))
	for i, r := range d.Spend.Top {
		points[i] = ChartPoint{Label: r.CustomerUniqueID, Value: roundTo(r.TotalSpent, 2), Color: rankColor(r.Highlight)}
	}
	return barChart(ChartTopSpenders, "Top Customers by Total Spend", "Customer Unique ID",
		"Total Spend ("+d.Currency+")", true, points)
}

func cancellationChart(d *Dashboard) *ChartConfig {
	if d.Cancellations.Empty() {
		return nil
	}
	points := make([]ChartPoint, len(d.Cancellations.Regions))
	for i, r := range d.Cancellations.Regions {
		points[i] = ChartPoint{Label: r.Region, Value: float64(r.Canceled), Color: rankColor(r.Highlight)}
	}
	return barChart(ChartCancellations, "Canceled Orders by Region", "Region", "Cancellations", false, points)
}

func productChart(name, title string, rows []CategoryRevenue, first, other, unit string) *ChartConfig {
	if len(rows) == 0 {
		return nil
	}
	points := make([]ChartPoint, len(rows))
	for i, r := range rows {
		color := other
		if r.Highlight {
			color = first
		}
		points[i] = ChartPoint{Label: r.Category, Value: roundTo(r.Revenue, 2), Color: color}
	}
	return barChart(name, title, "Product Category", "Revenue ("+unit+")", false, points)
}

func monthlyChart(d *Dashboard) *ChartConfig {
	if d.Monthly.Empty() {
		return nil
	}
	points := make([]ChartPoint, len(d.Monthly.Months))
	for i, m := range d.Monthly.Months {
		points[i] = ChartPoint{Label: m.Month, Value: float64(m.Count)}
	}
	return &ChartConfig{
		Name:      ChartMonthly,
		ChartType: "line",
		Title:     "Monthly Transactions",
		XAxis:     "Month",
		YAxis:     "Transactions",
		Series:    []ChartSeries{{Name: "Transactions", Data: points, Color: colorMonthly}},
		Colors:    []string{colorMonthly},
		ShowGrid:  true,
	}
}

// ============================================================================
// HELPERS
// ============================================================================

func barChart(name, title, xAxis, yAxis string, horizontal bool, points []ChartPoint) *ChartConfig {
	colors := make([]string, len(points))
	for i, p := range points {
		colors[i] = p.Color
	}
	return &ChartConfig{
		Name:       name,
		ChartType:  "bar",
		Title:      title,
		XAxis:      xAxis,
		YAxis:      yAxis,
		Horizontal: horizontal,
		Series:     []ChartSeries{{Name: yAxis, Data: points}},
		Colors:     colors,
		ShowGrid:   true,
	}
}

func rankColor(highlight bool) string {
	if highlight {
		return colorRankFirst
	}
	return colorRankOther
}
