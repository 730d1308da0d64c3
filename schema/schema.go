package schema

// ============================================================================
// SCHEMA — Describes the shape of the loaded order dataset
// ============================================================================
// Built once from the Record Store after load (store.Describe).
// Presentation layers use it to offer filter choices: the regions and
// categories that exist in the data and the purchase date bounds.
// ============================================================================

// Config describes the loaded dataset and its filterable facets.
type Config struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	RowCount    int    `json:"rowCount"`

	Dimensions []DimensionMeta `json:"dimensions"`
	Measures   []MeasureMeta   `json:"measures"`

	// Purchase timestamp bounds, "2006-01-02". Empty when no row has a timestamp.
	MinDate string `json:"minDate,omitempty"`
	MaxDate string `json:"maxDate,omitempty"`

	DiscoveredFrom string `json:"discoveredFrom,omitempty"`
}

// DimensionMeta describes a string column used for grouping/filtering.
type DimensionMeta struct {
	Key         string   `json:"key"`
	DisplayName string   `json:"displayName"`
	Values      []string `json:"values,omitempty"` // sorted distinct non-null values
	Filterable  bool     `json:"filterable"`
	IsTemporal  bool     `json:"isTemporal,omitempty"`
	Nullable    bool     `json:"nullable,omitempty"`
}

// MeasureMeta describes a numeric column used for aggregation.
type MeasureMeta struct {
	Key         string `json:"key"`
	DisplayName string `json:"displayName"`
	Unit        string `json:"unit,omitempty"` // "currency"
	Description string `json:"description,omitempty"`
}

// DefaultDimension creates a DimensionMeta with sensible defaults.
func DefaultDimension(key string, values []string) DimensionMeta {
	return DimensionMeta{
		Key:         key,
		DisplayName: toDisplayName(key),
		Values:      values,
		Filterable:  true,
	}
}

// DefaultMeasure creates a currency MeasureMeta.
func DefaultMeasure(key, description string) MeasureMeta {
	return MeasureMeta{
		Key:         key,
		DisplayName: toDisplayName(key),
		Unit:        "currency",
		Description: description,
	}
}

// Dimension returns the dimension with the given key.
func (c Config) Dimension(key string) (DimensionMeta, bool) {
	for _, d := range c.Dimensions {
		if d.Key == key {
			return d, true
		}
	}
	return DimensionMeta{}, false
}

// DimensionKeys returns all dimension keys.
func (c Config) DimensionKeys() []string {
	keys := make([]string, len(c.Dimensions))
	for i, d := range c.Dimensions {
		keys[i] = d.Key
	}
	return keys
}

// MeasureKeys returns all measure keys.
func (c Config) MeasureKeys() []string {
	keys := make([]string, len(c.Measures))
	for i, m := range c.Measures {
		keys[i] = m.Key
	}
	return keys
}
