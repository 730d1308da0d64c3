package engine

import (
	"sort"
	"time"

	"github.com/spektr-org/orderlens/schema"
)

// ============================================================================
// AGGREGATORS — The five dashboard tables, computed via OrderView
// ============================================================================
// Every aggregation is pure: same rows in, same table out.
// Pipeline per table: group → aggregate → sort → limit.
// Groups are formed in ascending key order and every ranking is a stable
// sort, so ties always keep ascending key order.
// ============================================================================

const oneDay = 24 * time.Hour

// ============================================================================
// RFM
// ============================================================================

// ComputeRFM builds the per-customer Recency/Frequency/Monetary table, the
// two top lists and the mean metrics. Rows without a customer id or a
// purchase timestamp are ignored.
func ComputeRFM(view OrderView, opts ...Option) RFMSection {
	cfg := applyOptions(opts)
	money := NewMoney(cfg.CurrencyCode, cfg.Locale)

	section := RFMSection{
		AvgRecency:   noDataMetric("Average Recency (days)"),
		AvgFrequency: noDataMetric("Average Frequency"),
		AvgMonetary:  noDataMetric("Average Monetary (" + money.Code() + ")"),
	}

	groups := groupByCustomer(view)
	if len(groups) == 0 {
		return section
	}

	// Reference date: latest purchase across the whole view, not per customer.
	var reference time.Time
	for _, g := range groups {
		if g.lastPurchase.After(reference) {
			reference = g.lastPurchase
		}
	}

	customers := make([]CustomerRFM, len(groups))
	var sumRecency, sumFrequency, sumMonetary float64
	for i, g := range groups {
		c := CustomerRFM{
			CustomerUniqueID: g.key,
			Recency:          int(reference.Sub(g.lastPurchase) / oneDay),
			Frequency:        len(g.orders),
			Monetary:         g.totalValue,
		}
		customers[i] = c
		sumRecency += float64(c.Recency)
		sumFrequency += float64(c.Frequency)
		sumMonetary += c.Monetary
	}
	section.Customers = customers

	n := float64(len(customers))
	section.AvgRecency = numberMetric(section.AvgRecency.Label, roundTo(sumRecency/n, 1))
	section.AvgFrequency = numberMetric(section.AvgFrequency.Label, roundTo(sumFrequency/n, 2))
	section.AvgMonetary = Metric{
		Label: section.AvgMonetary.Label,
		Value: money.Format(sumMonetary / n),
		Raw:   sumMonetary / n,
		Valid: true,
	}

	byRecency := append([]CustomerRFM(nil), customers...)
	sort.SliceStable(byRecency, func(i, j int) bool { return byRecency[i].Recency < byRecency[j].Recency })
	section.TopRecency = limit(byRecency, cfg.RFMTopN)

	byFrequency := append([]CustomerRFM(nil), customers...)
	sort.SliceStable(byFrequency, func(i, j int) bool { return byFrequency[i].Frequency > byFrequency[j].Frequency })
	section.TopFrequency = limit(byFrequency, cfg.RFMTopN)

	return section
}

func numberMetric(label string, v float64) Metric {
	return Metric{Label: label, Value: plainNumber(v), Raw: v, Valid: true}
}

// ============================================================================
// SPEND
// ============================================================================

// ComputeSpend ranks customers by row-summed total_order_value.
// Row 0 is highlighted.
func ComputeSpend(view OrderView, opts ...Option) SpendSection {
	cfg := applyOptions(opts)

	groups := groupByCustomer(view)
	rows := make([]CustomerSpend, len(groups))
	for i, g := range groups {
		rows[i] = CustomerSpend{
			CustomerUniqueID: g.key,
			TotalSpent:       g.totalValue,
			TotalOrders:      len(g.orders),
		}
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].TotalSpent > rows[j].TotalSpent })
	rows = limit(rows, cfg.SpendTopN)
	if len(rows) > 0 {
		rows[0].Highlight = true
	}
	return SpendSection{Top: rows}
}

// ============================================================================
// CANCELLATIONS
// ============================================================================

// ComputeCancellations counts canceled rows per region. Only rows with both a
// region and a status take part; regions without cancellations count zero.
// When none of those rows is canceled the section is unavailable.
func ComputeCancellations(view OrderView) CancellationSection {
	counts := make(map[string]int)
	anyCanceled := false

	for i := 0; i < view.Len(); i++ {
		o := view.At(i)
		if o.CustomerState == "" || o.OrderStatus == "" {
			continue
		}
		if o.OrderStatus == schema.StatusCanceled {
			counts[o.CustomerState]++
			anyCanceled = true
		} else if _, seen := counts[o.CustomerState]; !seen {
			counts[o.CustomerState] = 0
		}
	}

	if !anyCanceled {
		return CancellationSection{Message: NoCancellationData}
	}

	regions := make([]RegionCancellations, 0, len(counts))
	for _, region := range sortedKeys(counts) {
		regions = append(regions, RegionCancellations{Region: region, Canceled: counts[region]})
	}
	sort.SliceStable(regions, func(i, j int) bool { return regions[i].Canceled > regions[j].Canceled })
	regions[0].Highlight = true

	return CancellationSection{Available: true, Regions: regions}
}

// ============================================================================
// PRODUCTS
// ============================================================================

// ComputeProductRevenue sums price (never total_order_value) per category and
// returns the top and bottom earners. Row 0 of each list is highlighted.
func ComputeProductRevenue(view OrderView, opts ...Option) ProductSection {
	cfg := applyOptions(opts)

	revenue := make(map[string]float64)
	for i := 0; i < view.Len(); i++ {
		o := view.At(i)
		if o.ProductCategory == "" {
			continue
		}
		revenue[o.ProductCategory] += o.Price
	}
	if len(revenue) == 0 {
		return ProductSection{}
	}

	rows := make([]CategoryRevenue, 0, len(revenue))
	for _, category := range sortedKeys(revenue) {
		rows = append(rows, CategoryRevenue{Category: category, Revenue: revenue[category]})
	}

	top := append([]CategoryRevenue(nil), rows...)
	sort.SliceStable(top, func(i, j int) bool { return top[i].Revenue > top[j].Revenue })
	top = limit(top, cfg.ProductTopN)
	top[0].Highlight = true

	bottom := append([]CategoryRevenue(nil), rows...)
	sort.SliceStable(bottom, func(i, j int) bool { return bottom[i].Revenue < bottom[j].Revenue })
	bottom = limit(bottom, cfg.ProductTopN)
	bottom[0].Highlight = true

	return ProductSection{Top: top, Bottom: bottom}
}

// ============================================================================
// MONTHLY
// ============================================================================

// ComputeMonthly counts rows (not distinct orders) per calendar month,
// oldest month first.
func ComputeMonthly(view OrderView) MonthlySection {
	counts := make(map[string]int)
	for i := 0; i < view.Len(); i++ {
		o := view.At(i)
		if !o.HasTimestamp() {
			continue
		}
		counts[MonthKey(o.PurchasedAt)]++
	}

	// "2006-01" keys sort chronologically as strings.
	months := make([]MonthCount, 0, len(counts))
	for _, m := range sortedKeys(counts) {
		months = append(months, MonthCount{Month: m, Count: counts[m]})
	}
	return MonthlySection{Months: months}
}

// MonthKey labels the calendar month of t as "2006-01".
func MonthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// ============================================================================
// GROUPING
// ============================================================================

type customerGroup struct {
	key          string
	orders       map[string]struct{} // distinct order ids
	totalValue   float64
	lastPurchase time.Time
}

// groupByCustomer groups rows by customer_unique_id in ascending key order.
func groupByCustomer(view OrderView) []*customerGroup {
	grouped := make(map[string]*customerGroup)

	for i := 0; i < view.Len(); i++ {
		o := view.At(i)
		if o.CustomerUniqueID == "" || !o.HasTimestamp() {
			continue
		}
		g, ok := grouped[o.CustomerUniqueID]
		if !ok {
			g = &customerGroup{key: o.CustomerUniqueID, orders: make(map[string]struct{})}
			grouped[o.CustomerUniqueID] = g
		}
		if o.OrderID != "" {
			g.orders[o.OrderID] = struct{}{}
		}
		g.totalValue += o.TotalOrderValue
		if o.PurchasedAt.After(g.lastPurchase) {
			g.lastPurchase = o.PurchasedAt
		}
	}

	groups := make([]*customerGroup, 0, len(grouped))
	for _, key := range sortedKeys(grouped) {
		groups = append(groups, grouped[key])
	}
	return groups
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func limit[T any](rows []T, n int) []T {
	if n > 0 && len(rows) > n {
		return rows[:n]
	}
	return rows
}
