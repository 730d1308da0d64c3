package engine

import (
	"strconv"
)

// ============================================================================
// TABLE BUILDER — Produces TableData from Dashboard sections
// ============================================================================
// Every table is built even when its section is empty; an empty table
// carries a Message instead of rows.
// ============================================================================

// TableRFM is the full per-customer RFM table. The other tables share the
// chart names.
const TableRFM = "rfm"

// BuildTables produces every dashboard table in display order.
func BuildTables(d *Dashboard) []TableData {
	money := NewMoney(d.Currency, d.Locale)
	return []TableData{
		rfmTable(TableRFM, "RFM by Customer", d.RFM.Customers, money),
		rfmTable(ChartRFMRecency, "Top Customers by Recency", d.RFM.TopRecency, money),
		rfmTable(ChartRFMFrequency, "Top Customers by Frequency", d.RFM.TopFrequency, money),
		spendTable(d, money),
		cancellationTable(d),
		productTable(ChartProductsTop, "Top Categories by Revenue", d.Products.Top, money),
		productTable(ChartProductsBottom, "Lowest Categories by Revenue", d.Products.Bottom, money),
		monthlyTable(d),
	}
}

// ============================================================================
// SECTION TABLES
// ============================================================================

func rfmTable(name, title string, rows []CustomerRFM, money Money) TableData {
	t := newTable(name, title, []Column{
		{Key: "customer_unique_id", Label: "Customer Unique ID", Type: "text", Align: "left"},
		{Key: "recency", Label: "Recency (days)", Type: "number", Align: "right"},
		{Key: "frequency", Label: "Frequency", Type: "number", Align: "right"},
		{Key: "monetary", Label: "Monetary", Type: "currency", Align: "right"},
	})
	for _, r := range rows {
		t.add(false, r.CustomerUniqueID, strconv.Itoa(r.Recency), strconv.Itoa(r.Frequency), money.Format(r.Monetary))
	}
	return t.done(NoData)
}

func spendTable(d *Dashboard, money Money) TableData {
	t := newTable(ChartTopSpenders, "Top Customers by Total Spend", []Column{
		{Key: "customer_unique_id", Label: "Customer Unique ID", Type: "text", Align: "left"},
		{Key: "total_spent", Label: "Total Spent", Type: "currency", Align: "right"},
		{Key: "total_orders", Label: "Orders", Type: "number", Align: "right"},
	})
	var total float64
	for _, r := range d.Spend.Top {
		t.add(r.Highlight, r.CustomerUniqueID, money.Format(r.TotalSpent), strconv.Itoa(r.TotalOrders))
		total += r.TotalSpent
	}
	out := t.done(NoData)
	if len(out.Rows) > 0 {
		out.Summary = &Summary{
			Label:  "Total (top " + strconv.Itoa(len(out.Rows)) + ")",
			Values: map[string]string{"total_spent": money.Format(total)},
		}
	}
	return out
}

func cancellationTable(d *Dashboard) TableData {
	t := newTable(ChartCancellations, "Canceled Orders by Region", []Column{
		{Key: "customer_state", Label: "Region", Type: "text", Align: "left"},
		{Key: "canceled", Label: "Cancellations", Type: "number", Align: "right"},
	})
	total := 0
	for _, r := range d.Cancellations.Regions {
		t.add(r.Highlight, r.Region, strconv.Itoa(r.Canceled))
		total += r.Canceled
	}
	out := t.done(NoCancellationData)
	if len(out.Rows) > 0 {
		out.Summary = &Summary{Label: "Total", Values: map[string]string{"canceled": strconv.Itoa(total)}}
	}
	return out
}

func productTable(name, title string, rows []CategoryRevenue, money Money) TableData {
	t := newTable(name, title, []Column{
		{Key: "product_category", Label: "Product Category", Type: "text", Align: "left"},
		{Key: "revenue", Label: "Revenue", Type: "currency", Align: "right"},
	})
	for _, r := range rows {
		t.add(r.Highlight, r.Category, money.Format(r.Revenue))
	}
	return t.done(NoData)
}

func monthlyTable(d *Dashboard) TableData {
	t := newTable(ChartMonthly, "Monthly Transactions", []Column{
		{Key: "month", Label: "Month", Type: "text", Align: "left"},
		{Key: "count", Label: "Transactions", Type: "number", Align: "right"},
	})
	for _, m := range d.Monthly.Months {
		t.add(false, m.Month, strconv.Itoa(m.Count))
	}
	out := t.done(NoData)
	if len(out.Rows) > 0 {
		out.Summary = &Summary{Label: "Total", Values: map[string]string{"count": strconv.Itoa(d.Monthly.Total())}}
	}
	return out
}

// ============================================================================
// HELPERS
// ============================================================================

type tableBuilder struct {
	data TableData
}

func newTable(name, title string, columns []Column) *tableBuilder {
	return &tableBuilder{data: TableData{
		Name:      name,
		Title:     title,
		Columns:   columns,
		Rows:      [][]string{},
		Highlight: []bool{},
	}}
}

func (b *tableBuilder) add(highlight bool, cells ...string) {
	b.data.Rows = append(b.data.Rows, cells)
	b.data.Highlight = append(b.data.Highlight, highlight)
}

func (b *tableBuilder) done(emptyMessage string) TableData {
	if len(b.data.Rows) == 0 {
		b.data.Message = emptyMessage
	}
	return b.data
}
