package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"tableqc/pkg/contracts/domain"
)

// CSVWriter writes tables out as delimited files.
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance.
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger}
}

// WriteOptions configures CSV writing behavior.
type WriteOptions struct {
	// BOMPrefix adds a UTF-8 BOM for Excel compatibility.
	BOMPrefix bool
}

// WriteTable writes a table to filePath, creating parent directories as
// needed. Missing cells render as empty fields.
func (w *CSVWriter) WriteTable(filePath string, t *domain.Table, options WriteOptions) error {
	w.logger.Info("writing CSV file",
		slog.String("file_path", filePath),
		slog.Int("rows", t.NumRows()),
		slog.Int("columns", t.NumCols()))

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(t.ColumnNames()); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	rows := t.NumRows()
	record := make([]string, t.NumCols())
	for i := 0; i < rows; i++ {
		for j := range t.Columns {
			// Canonical text form; missing cells become empty fields.
			record[j] = t.Columns[j].Cells[i].String()
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	return writer.Error()
}

// CleanedFileName returns the output name for a cleaned copy of name,
// always with a .csv extension.
func CleanedFileName(name string) string {
	ext := filepath.Ext(name)
	base := name[:len(name)-len(ext)]
	return "cleaned_" + base + ".csv"
}
