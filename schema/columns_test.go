package schema

import (
	"errors"
	"strings"
	"testing"
	"time"
)

// ============================================================================
// HEADER MAPPING TESTS
// ============================================================================

var olistHeaders = []string{
	"order_id", "customer_id", "order_status", "order_purchase_timestamp",
	"customer_unique_id", "customer_state", "price", "freight_value",
	"product_category_name", "product_category_name_english", "total_order_value",
}

func TestMapHeadersOlistExport(t *testing.T) {
	idx, err := MapHeaders(olistHeaders)
	if err != nil {
		t.Fatalf("MapHeaders failed: %v", err)
	}

	assertIndex(t, idx, ColOrderID, 0)
	assertIndex(t, idx, ColOrderStatus, 2)
	assertIndex(t, idx, ColPurchasedAt, 3)
	assertIndex(t, idx, ColCustomerUniqueID, 4)
	assertIndex(t, idx, ColCustomerState, 5)
	assertIndex(t, idx, ColPrice, 6)
	assertIndex(t, idx, ColTotalOrderValue, 10)

	// The English category name outranks the Portuguese one.
	assertIndex(t, idx, ColProductCategory, 9)
}

func TestMapHeadersCanonicalBeatsAlias(t *testing.T) {
	headers := []string{
		"category", "order_id", "customer_unique_id", "customer_state",
		"order_purchase_timestamp", "order_status", "total_order_value", "price",
		"product_category",
	}
	idx, err := MapHeaders(headers)
	if err != nil {
		t.Fatalf("MapHeaders failed: %v", err)
	}
	assertIndex(t, idx, ColProductCategory, 8)
}

func TestMapHeadersHumanSpelling(t *testing.T) {
	headers := []string{
		"Order ID", "Customer Unique ID", "Customer State", "Product Category",
		"Order Purchase Timestamp", "Order Status", "Total Order Value", "Price",
	}
	idx, err := MapHeaders(headers)
	if err != nil {
		t.Fatalf("MapHeaders failed: %v", err)
	}
	for i, key := range []string{
		ColOrderID, ColCustomerUniqueID, ColCustomerState, ColProductCategory,
		ColPurchasedAt, ColOrderStatus, ColTotalOrderValue, ColPrice,
	} {
		assertIndex(t, idx, key, i)
	}
}

func TestMapHeadersMissingColumns(t *testing.T) {
	_, err := MapHeaders([]string{"order_id", "customer_state", "price"})
	if err == nil {
		t.Fatal("expected error for missing columns")
	}
	if !errors.Is(err, ErrMissingColumns) {
		t.Errorf("expected ErrMissingColumns, got %v", err)
	}
	for _, col := range RFMColumns {
		if col == ColOrderID {
			continue
		}
		if !strings.Contains(err.Error(), col) {
			t.Errorf("error %q should name missing column %s", err.Error(), col)
		}
	}
	if strings.Contains(err.Error(), ColOrderID+",") {
		t.Errorf("error %q should not name present column order_id", err.Error())
	}
}

func TestColumnValue(t *testing.T) {
	idx := ColumnIndex{ColOrderID: 0, ColPrice: 5}
	row := []string{"  o1 ", "x"}

	if got := idx.Value(row, ColOrderID); got != "o1" {
		t.Errorf("Value(order_id) = %q, want %q", got, "o1")
	}
	if got := idx.Value(row, ColPrice); got != "" {
		t.Errorf("short row Value(price) = %q, want empty", got)
	}
	if got := idx.Value(row, ColOrderStatus); got != "" {
		t.Errorf("unmapped Value(order_status) = %q, want empty", got)
	}
}

// ============================================================================
// TIMESTAMP TESTS
// ============================================================================

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
		ok    bool
	}{
		{"2017-10-02 10:56:33", time.Date(2017, 10, 2, 10, 56, 33, 0, time.UTC), true},
		{"2017-10-02T10:56:33", time.Date(2017, 10, 2, 10, 56, 33, 0, time.UTC), true},
		{"2017-10-02T10:56:33Z", time.Date(2017, 10, 2, 10, 56, 33, 0, time.UTC), true},
		{"2017-10-02", time.Date(2017, 10, 2, 0, 0, 0, 0, time.UTC), true},
		{"10/02/2017", time.Date(2017, 10, 2, 0, 0, 0, 0, time.UTC), true},
		{"", time.Time{}, false},
		{"NaT", time.Time{}, false},
		{"yesterday", time.Time{}, false},
	}

	for _, tc := range tests {
		got, ok := ParseTimestamp(tc.input)
		if ok != tc.ok {
			t.Errorf("ParseTimestamp(%q) ok = %v, want %v", tc.input, ok, tc.ok)
			continue
		}
		if !got.Equal(tc.want) {
			t.Errorf("ParseTimestamp(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

// ============================================================================
// STRING UTILITY TESTS
// ============================================================================

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Order ID", "order_id"},
		{"orderId", "order_id"},
		{"customer-state", "customer_state"},
		{"  Total  Order Value ", "total_order_value"},
		{"\ufefforder_id", "order_id"},
		{"price", "price"},
	}

	for _, tc := range tests {
		if got := NormalizeHeader(tc.input); got != tc.expected {
			t.Errorf("NormalizeHeader(%q) = %q, expected %q", tc.input, got, tc.expected)
		}
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"customer_state", "Customer State"},
		{"price", "Price"},
		{"total_order_value", "Total Order Value"},
	}

	for _, tc := range tests {
		if got := toDisplayName(tc.input); got != tc.expected {
			t.Errorf("toDisplayName(%q) = %q, expected %q", tc.input, got, tc.expected)
		}
	}
}

func TestIsNull(t *testing.T) {
	for _, v := range []string{"", " ", "null", "NaN", "N/A", "NaT"} {
		if !IsNull(v) {
			t.Errorf("IsNull(%q) = false, want true", v)
		}
	}
	for _, v := range []string{"SP", "0", "canceled"} {
		if IsNull(v) {
			t.Errorf("IsNull(%q) = true, want false", v)
		}
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func assertIndex(t *testing.T, idx ColumnIndex, key string, want int) {
	t.Helper()
	got, ok := idx[key]
	if !ok {
		t.Errorf("column %s not mapped", key)
		return
	}
	if got != want {
		t.Errorf("column %s mapped to %d, want %d", key, got, want)
	}
}
