package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/spektr-org/orderlens/engine"
)

const metricsSheet = "Metrics"

// Excel caps sheet names at 31 characters.
const maxSheetName = 31

// workbook accumulates sheets and the shared cell styles.
type workbook struct {
	f         *excelize.File
	title     int
	header    int
	highlight int
	summary   int
}

func newWorkbook() (*workbook, error) {
	f := excelize.NewFile()
	wb := &workbook{f: f}

	var err error
	if wb.title, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}}); err != nil {
		return nil, err
	}
	if wb.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"00008B"}, Pattern: 1},
	}); err != nil {
		return nil, err
	}
	if wb.highlight, err = f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"ADD8E6"}, Pattern: 1},
	}); err != nil {
		return nil, err
	}
	if wb.summary, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err != nil {
		return nil, err
	}
	return wb, nil
}

// XLSX writes a workbook with a metrics sheet followed by one sheet per
// dashboard table.
func XLSX(w io.Writer, d *engine.Dashboard) error {
	wb, err := newWorkbook()
	if err != nil {
		return fmt.Errorf("create workbook: %w", err)
	}
	defer wb.f.Close()

	if err := wb.f.SetSheetName("Sheet1", metricsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := wb.metrics(d); err != nil {
		return fmt.Errorf("sheet %s: %w", metricsSheet, err)
	}
	for _, t := range engine.BuildTables(d) {
		if err := wb.table(t); err != nil {
			return fmt.Errorf("sheet %s: %w", t.Name, err)
		}
	}

	if err := wb.f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func (wb *workbook) metrics(d *engine.Dashboard) error {
	f := wb.f
	rows := [][]any{
		{"Order Dashboard"},
		{"Period", d.Filters.Dates.String()},
		{"Regions", selectionLabel(d.Filters.Regions)},
		{"Categories", selectionLabel(d.Filters.Categories)},
		{"Rows (filtered / total)", d.FilteredRows, d.TotalRows},
		{},
		{"Metric", "Value", "Unit", "Customers"},
	}
	for _, m := range engine.BuildMetrics(d) {
		rows = append(rows, []any{m.Label, m.Value, m.Unit, m.Count})
	}
	if err := setRows(f, metricsSheet, 1, rows); err != nil {
		return err
	}
	if err := f.SetCellStyle(metricsSheet, "A1", "A1", wb.title); err != nil {
		return err
	}
	if err := f.SetCellStyle(metricsSheet, "A7", "D7", wb.header); err != nil {
		return err
	}
	return f.SetColWidth(metricsSheet, "A", "D", 28)
}

func (wb *workbook) table(t engine.TableData) error {
	f := wb.f
	sheet := sheetName(t.Name)
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	if err := f.SetCellValue(sheet, "A1", t.Title); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "A1", wb.title); err != nil {
		return err
	}

	header := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c.Label
	}
	if err := f.SetSheetRow(sheet, "A2", &header); err != nil {
		return err
	}
	last, err := excelize.ColumnNumberToName(len(t.Columns))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A2", last+"2", wb.header); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", last, 24); err != nil {
		return err
	}

	if len(t.Rows) == 0 {
		return f.SetCellValue(sheet, "A3", t.Message)
	}

	for i, r := range t.Rows {
		row := i + 3
		if err := setRow(f, sheet, row, toAny(r)); err != nil {
			return err
		}
		if i < len(t.Highlight) && t.Highlight[i] {
			if err := f.SetCellStyle(sheet, cell(1, row), cell(len(t.Columns), row), wb.highlight); err != nil {
				return err
			}
		}
	}

	if t.Summary != nil {
		row := len(t.Rows) + 3
		if err := setRow(f, sheet, row, toAny(summaryRow(t))); err != nil {
			return err
		}
		return f.SetCellStyle(sheet, cell(1, row), cell(len(t.Columns), row), wb.summary)
	}
	return nil
}

func setRows(f *excelize.File, sheet string, first int, rows [][]any) error {
	for i, r := range rows {
		if err := setRow(f, sheet, first+i, r); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	if len(values) == 0 {
		return nil
	}
	return f.SetSheetRow(sheet, cell(1, row), &values)
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func sheetName(name string) string {
	if len(name) > maxSheetName {
		return name[:maxSheetName]
	}
	return name
}

func selectionLabel(s engine.Selection) string {
	if !s.Restricted() {
		return "All"
	}
	return strings.Join(s.Values(), ", ")
}
