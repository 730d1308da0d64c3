package store

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/spektr-org/orderlens/schema"
)

// ParseXLSX reads the first sheet of an xlsx workbook as an order export.
// The first row is the header.
func ParseXLSX(r io.Reader) ([]Order, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("open workbook: no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("read sheet %q: empty sheet", sheets[0])
	}

	idx, err := schema.MapHeaders(rows[0])
	if err != nil {
		return nil, err
	}

	orders := make([]Order, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		orders = append(orders, orderFromRow(idx, row))
	}
	return orders, nil
}
