package engine

import (
	"encoding/json"
	"sort"
	"time"
)

// ============================================================================
// FILTERS — Date range, region and category narrowing via OrderView
// ============================================================================
// Single-pass filter: checks ALL constraints per row in one loop.
// Returns a SubView (index list into parent); rows are not copied.
// Rows without a purchase timestamp never pass.
// ============================================================================

// DateRange is an inclusive range of calendar days (UTC).
// A zero Start or End leaves that side open.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewDateRange floors both bounds to their calendar day.
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: floorDay(start), End: floorDay(end)}
}

// Inverted reports whether Start falls on a later day than End.
// An inverted range matches nothing.
func (r DateRange) Inverted() bool {
	return !r.Start.IsZero() && !r.End.IsZero() && floorDay(r.Start).After(floorDay(r.End))
}

// Contains reports whether t falls on a day within the range.
// A timestamp on either boundary day qualifies at any time of day.
func (r DateRange) Contains(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	day := floorDay(t)
	if !r.Start.IsZero() && day.Before(floorDay(r.Start)) {
		return false
	}
	if !r.End.IsZero() && day.After(floorDay(r.End)) {
		return false
	}
	return true
}

// String renders the range as "2006-01-02 – 2006-01-02".
func (r DateRange) String() string {
	start, end := "…", "…"
	if !r.Start.IsZero() {
		start = r.Start.Format(dayLayout)
	}
	if !r.End.IsZero() {
		end = r.End.Format(dayLayout)
	}
	return start + " – " + end
}

const dayLayout = "2006-01-02"

func floorDay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ============================================================================
// SELECTION — explicit optional value set
// ============================================================================

// Selection restricts a dimension to a set of values, or leaves it open.
// The zero value is unrestricted. Matching is exact and case-sensitive,
// and the null value ("") never matches a restricted selection.
type Selection struct {
	values map[string]struct{}
}

// Unrestricted matches every value, null included.
func Unrestricted() Selection { return Selection{} }

// OneOf restricts to the given values. With no (non-empty) values the
// selection is unrestricted.
func OneOf(values ...string) Selection {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v != "" {
			set[v] = struct{}{}
		}
	}
	if len(set) == 0 {
		return Selection{}
	}
	return Selection{values: set}
}

// Restricted reports whether the selection narrows anything.
func (s Selection) Restricted() bool { return len(s.values) > 0 }

// Allows reports whether v passes the selection.
func (s Selection) Allows(v string) bool {
	if !s.Restricted() {
		return true
	}
	if v == "" {
		return false
	}
	_, ok := s.values[v]
	return ok
}

// Values returns the selected values in ascending order; nil when unrestricted.
func (s Selection) Values() []string {
	if !s.Restricted() {
		return nil
	}
	out := make([]string, 0, len(s.values))
	for v := range s.values {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// MarshalJSON encodes an unrestricted selection as null.
func (s Selection) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Values())
}

// UnmarshalJSON accepts null or a list of values.
func (s *Selection) UnmarshalJSON(data []byte) error {
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	*s = OneOf(values...)
	return nil
}

// ============================================================================
// APPLY
// ============================================================================

// ApplyFilters returns a view of rows matching the date range and both selections.
// An inverted date range yields an empty view.
func ApplyFilters(view OrderView, filters Filters) OrderView {
	if filters.Dates.Inverted() {
		return newSubView(view, nil)
	}

	n := view.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		o := view.At(i)
		if !filters.Dates.Contains(o.PurchasedAt) {
			continue
		}
		if !filters.Regions.Allows(o.CustomerState) {
			continue
		}
		if !filters.Categories.Allows(o.ProductCategory) {
			continue
		}
		indices = append(indices, i)
	}

	return newSubView(view, indices)
}
