package loader

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	apperrors "tableqc/internal/errors"
	"tableqc/pkg/contracts/domain"
)

// Options configures a load.
type Options struct {
	// Encoding selects the input character encoding for delimited files:
	// utf-8 (default), latin-1, or windows-1252.
	Encoding string
	// Sheet names the spreadsheet sheet to read; empty means the first
	// sheet in the workbook.
	Sheet string
}

// Loader reads tabular files into tables.
type Loader struct {
	logger *slog.Logger
}

// New creates a Loader. A nil logger falls back to slog.Default.
func New(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load reads the file at path into a table, dispatching on the extension.
func (l *Loader) Load(ctx context.Context, path string, opts Options) (*domain.Table, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, apperrors.FileNotFound(path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	var (
		t   *domain.Table
		err error
	)
	switch ext {
	case ".csv":
		t, err = l.loadCSV(ctx, path, opts.Encoding)
	case ".xlsx", ".xls":
		t, err = l.loadExcel(ctx, path, opts.Sheet)
	default:
		return nil, apperrors.UnsupportedFormat(ext)
	}
	if err != nil {
		return nil, err
	}

	if err := t.Rectangular(); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeMalformedTable, err, "loaded table is not rectangular")
	}

	l.logger.InfoContext(ctx, "loaded table",
		slog.String("file", path),
		slog.Int("rows", t.NumRows()),
		slog.Int("columns", t.NumCols()))
	return t, nil
}

// buildTable assembles a table from a header and raw row data, inferring a
// kind per column and parsing cells accordingly.
func buildTable(source string, header []string, rows [][]string) *domain.Table {
	t := &domain.Table{Source: source, Columns: make([]domain.Column, len(header))}

	for j, name := range header {
		raw := make([]string, len(rows))
		for i := range rows {
			if j < len(rows[i]) {
				raw[i] = rows[i][j]
			}
		}

		kind, layout := inferKind(raw)
		cells := make([]domain.Value, len(raw))
		for i, s := range raw {
			cells[i] = parseCell(s, kind, layout)
		}

		t.Columns[j] = domain.Column{Name: name, Kind: kind, Cells: cells}
	}
	return t
}
