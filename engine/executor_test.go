package engine

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute(t *testing.T) {
	d, err := Execute(context.Background(), sampleView(), Filters{})
	require.NoError(t, err)

	assert.Equal(t, 7, d.TotalRows)
	assert.Equal(t, 6, d.FilteredRows)
	assert.Equal(t, "BRL", d.Currency)
	assert.Equal(t, "pt-BR", d.Locale)
	assert.False(t, d.Empty())

	assert.Len(t, d.RFM.Customers, 3)
	assert.Equal(t, "A", d.Spend.Top[0].CustomerUniqueID)
	assert.True(t, d.Cancellations.Available)
	assert.Equal(t, "toys", d.Products.Top[0].Category)
	assert.Equal(t, d.FilteredRows, d.Monthly.Total())
}

func TestExecuteInvertedRangeReportsNoData(t *testing.T) {
	filters := Filters{Dates: days("2017-06-01", "2017-01-01")}
	d, err := Execute(context.Background(), sampleView(), filters)
	require.NoError(t, err)

	assert.True(t, d.Empty())
	assert.True(t, d.RFM.Empty())
	assert.True(t, d.Spend.Empty())
	assert.True(t, d.Cancellations.Empty())
	assert.True(t, d.Products.Empty())
	assert.True(t, d.Monthly.Empty())

	assert.Equal(t, NoData, d.RFM.AvgRecency.Value)
	assert.Equal(t, NoData, d.RFM.AvgFrequency.Value)
	assert.Equal(t, NoData, d.RFM.AvgMonetary.Value)
	assert.Equal(t, NoCancellationData, d.Cancellations.Message)

	assert.Empty(t, BuildCharts(d))
	for _, table := range BuildTables(d) {
		assert.Empty(t, table.Rows, table.Name)
		assert.NotEmpty(t, table.Message, table.Name)
	}
}

func TestExecuteOptions(t *testing.T) {
	d, err := Execute(context.Background(), sampleView(), Filters{},
		WithSpendTopN(1),
		WithProductTopN(1),
		WithCurrency("USD", "en-US"),
	)
	require.NoError(t, err)

	assert.Len(t, d.Spend.Top, 1)
	assert.Len(t, d.Products.Top, 1)
	assert.Len(t, d.Products.Bottom, 1)
	assert.Equal(t, "$\u00a0143.33", d.RFM.AvgMonetary.Value)
}

func TestExecuteNilView(t *testing.T) {
	_, err := Execute(context.Background(), nil, Filters{})
	assert.ErrorIs(t, err, ErrNilView)
}

func TestExecuteCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Execute(ctx, sampleView(), Filters{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExecuteIsDeterministic(t *testing.T) {
	filters := Filters{Dates: days("2017-01-01", "2017-12-31"), Categories: OneOf("toys", "books")}

	first, err := Execute(context.Background(), sampleView(), filters)
	require.NoError(t, err)
	second, err := Execute(context.Background(), sampleView(), filters)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))
}
