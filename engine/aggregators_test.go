package engine

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/orderlens/store"
)

func filteredSample(f Filters) OrderView {
	return ApplyFilters(sampleView(), f)
}

func rfmByCustomer(rows []CustomerRFM) map[string]CustomerRFM {
	out := make(map[string]CustomerRFM, len(rows))
	for _, r := range rows {
		out[r.CustomerUniqueID] = r
	}
	return out
}

// ============================================================================
// RFM
// ============================================================================

func TestComputeRFM(t *testing.T) {
	section := ComputeRFM(filteredSample(Filters{}))
	require.Len(t, section.Customers, 3)

	got := rfmByCustomer(section.Customers)

	// Reference date is a3 (2017-06-01 10:00).
	assert.Equal(t, 0, got["A"].Recency, "latest customer has zero recency")
	assert.Equal(t, 100, got["B"].Recency, "partial days are floored")
	assert.Equal(t, 92, got["C"].Recency)

	assert.Equal(t, 3, got["A"].Frequency, "a1 counted once despite two line items")
	assert.Equal(t, 1, got["B"].Frequency)

	// a1's total is repeated on both line items and summed per row.
	assert.InDelta(t, 320.0, got["A"].Monetary, 1e-9)

	for _, r := range section.Customers {
		assert.GreaterOrEqual(t, r.Recency, 0)
	}
}

func TestComputeRFMCustomersAscending(t *testing.T) {
	section := ComputeRFM(filteredSample(Filters{}))
	ids := make([]string, len(section.Customers))
	for i, r := range section.Customers {
		ids[i] = r.CustomerUniqueID
	}
	assert.True(t, sort.StringsAreSorted(ids))
}

func TestComputeRFMMetrics(t *testing.T) {
	section := ComputeRFM(filteredSample(Filters{}))

	assert.True(t, section.AvgRecency.Valid)
	assert.Equal(t, "64.0", section.AvgRecency.Value) // (0+100+92)/3
	assert.Equal(t, "1.67", section.AvgFrequency.Value)
	assert.InDelta(t, 1.67, section.AvgFrequency.Raw, 1e-9)
	assert.Equal(t, "R$\u00a0143,33", section.AvgMonetary.Value)
	assert.Equal(t, "Average Monetary (BRL)", section.AvgMonetary.Label)
}

func TestComputeRFMAveragesRoundHalfToEven(t *testing.T) {
	recency := ComputeRFM(store.New([]store.Order{
		order("r1", "A", "SP", "toys", "2017-01-10 09:00:00", "delivered", 10, 10),
		order("r2", "B", "SP", "toys", "2017-01-10 12:00:00", "delivered", 10, 10),
		order("r3", "C", "SP", "toys", "2017-01-06 09:00:00", "delivered", 10, 10),
		order("r4", "D", "SP", "toys", "2017-01-05 09:00:00", "delivered", 10, 10),
	}))
	assert.Equal(t, "2.2", recency.AvgRecency.Value, "(0+0+4+5)/4 = 2.25")

	rows := []store.Order{order("f0", "A", "SP", "toys", "2017-01-01 09:00:00", "delivered", 10, 10)}
	for _, c := range []string{"A", "B", "C", "D", "E", "F", "G", "H"} {
		rows = append(rows, order("f"+c, c, "SP", "toys", "2017-01-02 09:00:00", "delivered", 10, 10))
	}
	frequency := ComputeRFM(store.New(rows))
	assert.Equal(t, "1.12", frequency.AvgFrequency.Value, "9 orders / 8 customers = 1.125")
}

func TestComputeRFMEmpty(t *testing.T) {
	section := ComputeRFM(NewSliceView(nil))

	assert.True(t, section.Empty())
	assert.Empty(t, section.TopRecency)
	assert.Empty(t, section.TopFrequency)
	for _, m := range []Metric{section.AvgRecency, section.AvgFrequency, section.AvgMonetary} {
		assert.False(t, m.Valid)
		assert.Equal(t, NoData, m.Value)
	}
}

func TestComputeRFMScenarioFrequency(t *testing.T) {
	// A has three orders, two in range; B has one in range.
	section := ComputeRFM(filteredSample(Filters{
		Dates:   days("2017-01-01", "2017-02-28"),
		Regions: OneOf("SP", "RJ"),
	}))
	got := rfmByCustomer(section.Customers)

	assert.Equal(t, 2, got["A"].Frequency)
	assert.Equal(t, 1, got["B"].Frequency)
	require.NotEmpty(t, section.TopFrequency)
	assert.Equal(t, "A", section.TopFrequency[0].CustomerUniqueID)
	assert.Equal(t, "B", section.TopFrequency[1].CustomerUniqueID)
}

func TestComputeRFMTopListsStable(t *testing.T) {
	section := ComputeRFM(filteredSample(Filters{Dates: days("2017-01-01", "2017-03-31")}))

	// Reference is c1 (2017-03-01 00:00): C=0, B=8, A=23.
	recency := []string{}
	for _, r := range section.TopRecency {
		recency = append(recency, r.CustomerUniqueID)
	}
	assert.Equal(t, []string{"C", "B", "A"}, recency)

	// B and C tie on one order each and keep ascending key order.
	frequency := []string{}
	for _, r := range section.TopFrequency {
		frequency = append(frequency, r.CustomerUniqueID)
	}
	assert.Equal(t, []string{"A", "B", "C"}, frequency)
}

func TestComputeRFMTopN(t *testing.T) {
	section := ComputeRFM(filteredSample(Filters{}), WithRFMTopN(2))
	assert.Len(t, section.TopRecency, 2)
	assert.Len(t, section.TopFrequency, 2)
	assert.Len(t, section.Customers, 3)
}

// ============================================================================
// SPEND
// ============================================================================

func TestComputeSpend(t *testing.T) {
	section := ComputeSpend(filteredSample(Filters{}))
	require.Len(t, section.Top, 3)

	assert.Equal(t, "A", section.Top[0].CustomerUniqueID)
	assert.InDelta(t, 320.0, section.Top[0].TotalSpent, 1e-9)
	assert.Equal(t, 3, section.Top[0].TotalOrders)

	for i := 1; i < len(section.Top); i++ {
		assert.GreaterOrEqual(t, section.Top[i-1].TotalSpent, section.Top[i].TotalSpent)
	}

	assert.True(t, section.Top[0].Highlight)
	for _, r := range section.Top[1:] {
		assert.False(t, r.Highlight)
	}
}

func TestComputeSpendLimitAndTies(t *testing.T) {
	var orders []store.Order
	for _, id := range []string{"k", "c", "x", "a", "m", "b", "z", "d", "y", "e", "f", "g"} {
		orders = append(orders, order(id+"1", id, "SP", "toys", "2018-01-01 00:00:00", "delivered", 10, 10))
	}
	section := ComputeSpend(NewSliceView(orders))

	require.Len(t, section.Top, DefaultSpendTopN)
	ids := make([]string, len(section.Top))
	for i, r := range section.Top {
		ids[i] = r.CustomerUniqueID
	}
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f", "g", "k", "m", "x"}, ids)
	assert.True(t, section.Top[0].Highlight)
}

func TestComputeSpendEmpty(t *testing.T) {
	assert.True(t, ComputeSpend(NewSliceView(nil)).Empty())
}

// ============================================================================
// CANCELLATIONS
// ============================================================================

func TestComputeCancellations(t *testing.T) {
	section := ComputeCancellations(filteredSample(Filters{}))
	require.True(t, section.Available)
	require.Len(t, section.Regions, 2, "c1 has no region and is left out")

	assert.Equal(t, RegionCancellations{Region: "SP", Canceled: 1, Highlight: true}, section.Regions[0])
	assert.Equal(t, RegionCancellations{Region: "RJ", Canceled: 0}, section.Regions[1])
}

func TestComputeCancellationsUnavailable(t *testing.T) {
	noneCanceled := ComputeCancellations(filteredSample(Filters{Regions: OneOf("RJ")}))
	assert.False(t, noneCanceled.Available)
	assert.True(t, noneCanceled.Empty())
	assert.Equal(t, NoCancellationData, noneCanceled.Message)
	assert.Empty(t, noneCanceled.Regions)

	// The only canceled row has no region, so nothing is cross-tabulated.
	nullRegion := ComputeCancellations(filteredSample(Filters{Dates: days("2017-03-01", "2017-03-01")}))
	assert.False(t, nullRegion.Available)
}

func TestComputeCancellationsSortedDescending(t *testing.T) {
	orders := []store.Order{
		order("1", "u", "RJ", "", "2018-01-01 00:00:00", "canceled", 0, 0),
		order("2", "u", "AM", "", "2018-01-01 00:00:00", "canceled", 0, 0),
		order("3", "u", "SP", "", "2018-01-01 00:00:00", "canceled", 0, 0),
		order("4", "u", "SP", "", "2018-01-01 00:00:00", "canceled", 0, 0),
		order("5", "u", "BA", "", "2018-01-01 00:00:00", "delivered", 0, 0),
	}
	section := ComputeCancellations(NewSliceView(orders))

	var regions []string
	for _, r := range section.Regions {
		regions = append(regions, r.Region)
	}
	assert.Equal(t, []string{"SP", "AM", "RJ", "BA"}, regions)
}

// ============================================================================
// PRODUCTS
// ============================================================================

func TestComputeProductRevenue(t *testing.T) {
	section := ComputeProductRevenue(filteredSample(Filters{}))

	require.Len(t, section.Top, 2, "null category is left out")
	assert.Equal(t, CategoryRevenue{Category: "toys", Revenue: 180, Highlight: true}, section.Top[0])
	assert.Equal(t, CategoryRevenue{Category: "books", Revenue: 120}, section.Top[1])

	require.Len(t, section.Bottom, 2)
	assert.Equal(t, CategoryRevenue{Category: "books", Revenue: 120, Highlight: true}, section.Bottom[0])
	assert.Equal(t, "toys", section.Bottom[1].Category)
}

func TestProductRevenueUsesPriceNotOrderTotal(t *testing.T) {
	// One order, two line items priced 60 and 40, order total 100.
	orders := []store.Order{
		order("o1", "u1", "SP", "toys", "2018-01-01 10:00:00", "delivered", 100, 60),
		order("o1", "u1", "SP", "toys", "2018-01-01 10:00:00", "delivered", 100, 40),
	}
	view := NewSliceView(orders)

	products := ComputeProductRevenue(view)
	spend := ComputeSpend(view)

	require.Len(t, products.Top, 1)
	require.Len(t, spend.Top, 1)
	assert.InDelta(t, 100.0, products.Top[0].Revenue, 1e-9)
	assert.InDelta(t, 200.0, spend.Top[0].TotalSpent, 1e-9)
	assert.NotEqual(t, products.Top[0].Revenue, spend.Top[0].TotalSpent)
}

func TestComputeProductRevenueLimit(t *testing.T) {
	var orders []store.Order
	for i, c := range []string{"a", "b", "c", "d", "e"} {
		orders = append(orders, order("o", "u", "SP", c, "2018-01-01 00:00:00", "delivered", 0, float64(i+1)))
	}
	section := ComputeProductRevenue(NewSliceView(orders), WithProductTopN(2))

	require.Len(t, section.Top, 2)
	require.Len(t, section.Bottom, 2)
	assert.Equal(t, "e", section.Top[0].Category)
	assert.Equal(t, "a", section.Bottom[0].Category)
}

func TestComputeProductRevenueEmpty(t *testing.T) {
	section := ComputeProductRevenue(NewSliceView(nil))
	assert.True(t, section.Empty())
	assert.Empty(t, section.Bottom)
}

// ============================================================================
// MONTHLY
// ============================================================================

func TestComputeMonthly(t *testing.T) {
	view := filteredSample(Filters{})
	section := ComputeMonthly(view)

	assert.Equal(t, []MonthCount{
		{Month: "2017-01", Count: 2},
		{Month: "2017-02", Count: 2},
		{Month: "2017-03", Count: 1},
		{Month: "2017-06", Count: 1},
	}, section.Months)
	assert.Equal(t, view.Len(), section.Total())
}

func TestComputeMonthlyChronologicalAcrossYears(t *testing.T) {
	orders := []store.Order{
		order("1", "u", "", "", "2018-01-15 00:00:00", "delivered", 0, 0),
		order("2", "u", "", "", "2017-12-31 23:59:59", "delivered", 0, 0),
		order("3", "u", "", "", "2017-02-01 00:00:00", "delivered", 0, 0),
	}
	section := ComputeMonthly(NewSliceView(orders))

	require.Len(t, section.Months, 3)
	for i := 1; i < len(section.Months); i++ {
		assert.Less(t, section.Months[i-1].Month, section.Months[i].Month)
	}
	assert.Equal(t, 3, section.Total())
}

func TestMonthKey(t *testing.T) {
	assert.Equal(t, "2017-02", MonthKey(ts("2017-02-28 23:59:59")))
}
