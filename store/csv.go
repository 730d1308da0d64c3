package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spektr-org/orderlens/schema"
)

// ============================================================================
// CSV LOADER — Parses an order export into []Order
// ============================================================================
// Headers are resolved through schema.MapHeaders, so column order and
// spelling may vary. Cell values are parsed leniently: a bad timestamp is
// null and a bad amount is zero. Only a missing column is an error.
// ============================================================================

// ParseCSV reads a CSV order export.
func ParseCSV(r io.Reader) ([]Order, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read CSV headers: empty input")
		}
		return nil, fmt.Errorf("read CSV headers: %w", err)
	}

	idx, err := schema.MapHeaders(headers)
	if err != nil {
		return nil, err
	}

	var orders []Order
	line := 1
	for {
		row, err := reader.Read()
		line++
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read CSV line %d: %w", line, err)
		}
		if blankRow(row) {
			continue
		}
		orders = append(orders, orderFromRow(idx, row))
	}
	return orders, nil
}

// orderFromRow converts one raw row using a resolved column index.
// Shared by the CSV and xlsx loaders.
func orderFromRow(idx schema.ColumnIndex, row []string) Order {
	o := Order{
		OrderID:          text(idx, row, schema.ColOrderID),
		CustomerUniqueID: text(idx, row, schema.ColCustomerUniqueID),
		CustomerState:    text(idx, row, schema.ColCustomerState),
		ProductCategory:  text(idx, row, schema.ColProductCategory),
		OrderStatus:      text(idx, row, schema.ColOrderStatus),
		TotalOrderValue:  amount(idx, row, schema.ColTotalOrderValue),
		Price:            amount(idx, row, schema.ColPrice),
	}
	if ts, ok := schema.ParseTimestamp(idx.Value(row, schema.ColPurchasedAt)); ok {
		o.PurchasedAt = ts
	}
	return o
}

func text(idx schema.ColumnIndex, row []string, key string) string {
	v := idx.Value(row, key)
	if schema.IsNull(v) {
		return ""
	}
	return v
}

func amount(idx schema.ColumnIndex, row []string, key string) float64 {
	v := text(idx, row, key)
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
