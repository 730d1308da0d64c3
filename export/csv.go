package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/spektr-org/orderlens/engine"
)

// CSV writes t with a header of column labels. A summary, when present,
// becomes a trailing row with its label in the first column.
func CSV(w io.Writer, t engine.TableData) error {
	cw := csv.NewWriter(w)

	header := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c.Label
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write %s header: %w", t.Name, err)
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("write %s rows: %w", t.Name, err)
	}
	if t.Summary != nil {
		if err := cw.Write(summaryRow(t)); err != nil {
			return fmt.Errorf("write %s summary: %w", t.Name, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func summaryRow(t engine.TableData) []string {
	row := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		row[i] = t.Summary.Values[c.Key]
	}
	if len(row) > 0 && row[0] == "" {
		row[0] = t.Summary.Label
	}
	return row
}
