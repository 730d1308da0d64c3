package engine

// ============================================================================
// TEXT BUILDER — Metric cards for the RFM summary
// ============================================================================

// BuildMetrics produces the average recency, frequency and monetary cards.
// Undefined metrics carry the NoData value.
func BuildMetrics(d *Dashboard) []TextData {
	period := d.Filters.Dates.String()
	count := len(d.RFM.Customers)
	return []TextData{
		metricCard("avg_recency", d.RFM.AvgRecency, "days", period, count),
		metricCard("avg_frequency", d.RFM.AvgFrequency, "orders", period, count),
		metricCard("avg_monetary", d.RFM.AvgMonetary, d.Currency, period, count),
	}
}

func metricCard(key string, m Metric, unit, period string, count int) TextData {
	return TextData{
		Key:      key,
		Label:    m.Label,
		Value:    m.Value,
		RawValue: m.Raw,
		Unit:     unit,
		Period:   period,
		Count:    count,
	}
}
