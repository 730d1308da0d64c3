package store

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for input files that are neither CSV nor xlsx.
var ErrUnsupportedFormat = errors.New("unsupported input format")

// Load reads an order export from path. The format follows the extension:
// ".csv" (or ".txt") is CSV, ".xlsx" is a workbook.
func Load(path string) (*Store, error) {
	parse, err := parserFor(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	orders, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", filepath.Base(path), err)
	}

	slog.Debug("dataset loaded", "path", path, "rows", len(orders))
	return newStore(orders, path), nil
}

func parserFor(path string) (func(io.Reader) ([]Order, error), error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return ParseCSV, nil
	case ".xlsx":
		return ParseXLSX, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}
