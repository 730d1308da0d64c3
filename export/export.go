// Package export writes a computed dashboard to files: an Excel workbook,
// one CSV per table, a JSON document or one PNG per chart.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spektr-org/orderlens/engine"
	"github.com/spektr-org/orderlens/render"
)

// Format selects the output kind of WriteDir.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatPNG  Format = "png"
)

// Formats lists every supported format.
var Formats = []Format{FormatXLSX, FormatCSV, FormatJSON, FormatPNG}

// ErrUnknownFormat is returned by ParseFormat for an unsupported name.
var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat resolves a case-insensitive format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Document is the serialised form of a dashboard: the raw sections plus the
// presentation-ready metrics, tables and charts.
type Document struct {
	Dashboard *engine.Dashboard    `json:"dashboard"`
	Metrics   []engine.TextData    `json:"metrics"`
	Tables    []engine.TableData   `json:"tables"`
	Charts    []engine.ChartConfig `json:"charts"`
}

// NewDocument builds every presentation view of d.
func NewDocument(d *engine.Dashboard) Document {
	return Document{
		Dashboard: d,
		Metrics:   engine.BuildMetrics(d),
		Tables:    engine.BuildTables(d),
		Charts:    engine.BuildCharts(d),
	}
}

// JSON writes the indented Document for d.
func JSON(w io.Writer, d *engine.Dashboard) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewDocument(d)); err != nil {
		return fmt.Errorf("encode dashboard: %w", err)
	}
	return nil
}

// WriteDir writes d into dir in the given format and returns the paths
// written. The directory is created when missing.
func WriteDir(dir string, format Format, d *engine.Dashboard) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	var paths []string
	write := func(name string, fn func(io.Writer) error) error {
		path := filepath.Join(dir, name)
		if err := writeFile(path, fn); err != nil {
			return err
		}
		paths = append(paths, path)
		return nil
	}

	switch format {
	case FormatXLSX:
		if err := write("dashboard.xlsx", func(w io.Writer) error { return XLSX(w, d) }); err != nil {
			return paths, err
		}
	case FormatJSON:
		if err := write("dashboard.json", func(w io.Writer) error { return JSON(w, d) }); err != nil {
			return paths, err
		}
	case FormatCSV:
		for _, t := range engine.BuildTables(d) {
			if err := write(t.Name+".csv", func(w io.Writer) error { return CSV(w, t) }); err != nil {
				return paths, err
			}
		}
	case FormatPNG:
		for _, c := range engine.BuildCharts(d) {
			if err := write(c.Name+".png", func(w io.Writer) error { return render.PNG(w, &c) }); err != nil {
				return paths, err
			}
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	slog.Debug("dashboard exported", "format", format, "dir", dir, "files", len(paths))
	return paths, nil
}

func writeFile(path string, fn func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	if err := fn(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
