package schema

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
)

// ============================================================================
// COLUMNS — Header mapping, presence checks, timestamp parsing
// ============================================================================
// The order dataset is a pre-joined export. Header spelling varies between
// exports ("Order ID", "order-id", "orderId"), so headers are snake_cased
// before lookup, and a few known aliases map onto the canonical keys.
// ============================================================================

// Canonical column keys.
const (
	ColOrderID          = "order_id"
	ColCustomerUniqueID = "customer_unique_id"
	ColCustomerState    = "customer_state"
	ColProductCategory  = "product_category"
	ColPurchasedAt      = "order_purchase_timestamp"
	ColOrderStatus      = "order_status"
	ColTotalOrderValue  = "total_order_value"
	ColPrice            = "price"
)

// StatusCanceled is the order_status value counted by the cancellation table.
const StatusCanceled = "canceled"

// ErrMissingColumns is returned when the input lacks required columns.
var ErrMissingColumns = errors.New("missing required columns")

// RFMColumns are needed by the RFM table; without them no dashboard is produced.
var RFMColumns = []string{ColPurchasedAt, ColCustomerUniqueID, ColOrderID, ColTotalOrderValue}

// RequiredColumns lists every column the dashboard reads, RFM columns first.
var RequiredColumns = []string{
	ColPurchasedAt, ColCustomerUniqueID, ColOrderID, ColTotalOrderValue,
	ColCustomerState, ColProductCategory, ColOrderStatus, ColPrice,
}

// aliases maps alternative snake_cased headers onto canonical keys.
// Lower rank wins when an export carries several spellings; an exact
// canonical header has rank 0.
var aliases = map[string]alias{
	"product_category_name_english": {ColProductCategory, 1},
	"product_category_name":         {ColProductCategory, 2},
	"category":                      {ColProductCategory, 3},
	"state":                         {ColCustomerState, 1},
	"customer_region":               {ColCustomerState, 2},
	"purchase_timestamp":            {ColPurchasedAt, 1},
	"status":                        {ColOrderStatus, 1},
}

type alias struct {
	key  string
	rank int
}

// ColumnIndex maps canonical column keys to their position in a header row.
type ColumnIndex map[string]int

// MapHeaders resolves a header row into a ColumnIndex and checks that every
// required column is present. Among equal-rank spellings the first wins.
func MapHeaders(headers []string) (ColumnIndex, error) {
	idx := make(ColumnIndex, len(headers))
	ranks := make(map[string]int)

	for i, h := range headers {
		key := NormalizeHeader(h)
		if key == "" {
			continue
		}
		rank := 0
		if a, ok := aliases[key]; ok {
			key, rank = a.key, a.rank
		}
		if prev, seen := ranks[key]; seen && prev <= rank {
			continue
		}
		idx[key] = i
		ranks[key] = rank
	}

	if missing := idx.Missing(RequiredColumns); len(missing) > 0 {
		return idx, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	return idx, nil
}

// Missing returns the keys in want that the index does not contain, in order.
func (c ColumnIndex) Missing(want []string) []string {
	var missing []string
	for _, k := range want {
		if _, ok := c[k]; !ok {
			missing = append(missing, k)
		}
	}
	return missing
}

// Value returns the trimmed cell for key, or "" when the column or cell is absent.
func (c ColumnIndex) Value(row []string, key string) string {
	i, ok := c[key]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// ============================================================================
// NULLS AND TIMESTAMPS
// ============================================================================

// IsNull reports whether a raw cell should be treated as a missing value.
func IsNull(s string) bool {
	switch strings.TrimSpace(s) {
	case "", "null", "NULL", "NaN", "nan", "N/A", "n/a", "NaT":
		return true
	}
	return false
}

var timestampFormats = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04",
	"01/02/2006",
}

// ParseTimestamp parses a purchase timestamp. Values without a zone are UTC.
// Returns false for null or unparseable cells.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if IsNull(s) {
		return time.Time{}, false
	}
	for _, layout := range timestampFormats {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// ============================================================================
// STRING UTILITIES
// ============================================================================

// NormalizeHeader converts "Column Name" or "columnName" → "column_name".
func NormalizeHeader(s string) string {
	s = strings.TrimSpace(strings.TrimPrefix(s, "\ufeff"))

	var result strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) && i > 0 {
			prev := rune(s[i-1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) {
				result.WriteRune('_')
			}
		}
		result.WriteRune(r)
	}

	s = result.String()
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	for strings.Contains(s, "__") {
		s = strings.ReplaceAll(s, "__", "_")
	}
	return strings.Trim(s, "_")
}

// toDisplayName converts snake_case keys for human display.
// "customer_state" → "Customer State"
func toDisplayName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")

	words := strings.Fields(s)
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
		}
	}
	return strings.Join(words, " ")
}
