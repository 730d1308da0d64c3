package observability

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMetrics(t *testing.T) (*Metrics, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	return NewMetrics(reg), reg
}

func TestObserveBuildSuccess(t *testing.T) {
	m, _ := newTestMetrics(t)

	m.ObserveBuild("http", 42, 5*time.Millisecond, nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.BuildsTotal.WithLabelValues("http", "success")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.BuildsTotal.WithLabelValues("http", "error")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.EmptyDashboardsTotal))
}

func TestObserveBuildEmptyAndError(t *testing.T) {
	m, _ := newTestMetrics(t)

	m.ObserveBuild("cli", 0, time.Millisecond, nil)
	m.ObserveBuild("cli", 0, time.Millisecond, errors.New("canceled"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.EmptyDashboardsTotal), "errors are not counted as empty")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BuildsTotal.WithLabelValues("cli", "error")))
}

func TestMetricsExposition(t *testing.T) {
	m, reg := newTestMetrics(t)
	m.DatasetRows.Set(1000)

	expected := `
# HELP orderlens_dataset_rows Rows in the loaded order dataset
# TYPE orderlens_dataset_rows gauge
orderlens_dataset_rows 1000
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "orderlens_dataset_rows"))
}

func TestNewMetricsRegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewMetrics(reg)
	assert.Panics(t, func() { NewMetrics(reg) }, "duplicate registration must fail loudly")
}
