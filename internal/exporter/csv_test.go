package exporter

import (
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableqc/pkg/contracts/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleTable() *domain.Table {
	return &domain.Table{
		Source: "sample.csv",
		Columns: []domain.Column{
			{Name: "id", Kind: domain.KindInteger, Cells: []domain.Value{domain.Int(1), domain.Int(2)}},
			{Name: "name", Kind: domain.KindText, Cells: []domain.Value{domain.Text("alice"), domain.Missing()}},
			{Name: "joined", Kind: domain.KindDate, Cells: []domain.Value{
				domain.Date(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), ""),
				domain.Date(time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), ""),
			}},
		},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriteTable(t *testing.T) {
	w := NewCSVWriter(testLogger())
	path := filepath.Join(t.TempDir(), "out", "cleaned.csv")

	require.NoError(t, w.WriteTable(path, sampleTable(), WriteOptions{}))

	records := readCSV(t, path)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"id", "name", "joined"}, records[0])
	assert.Equal(t, []string{"1", "alice", "2024-01-05"}, records[1])
	// Missing cells become empty fields.
	assert.Equal(t, []string{"2", "", "2024-02-10"}, records[2])
}

func TestWriteTableWithBOM(t *testing.T) {
	w := NewCSVWriter(testLogger())
	path := filepath.Join(t.TempDir(), "cleaned.csv")

	require.NoError(t, w.WriteTable(path, sampleTable(), WriteOptions{BOMPrefix: true}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(data), 3)
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, data[:3])
}

func TestWriteTableEmptyRows(t *testing.T) {
	w := NewCSVWriter(testLogger())
	path := filepath.Join(t.TempDir(), "empty.csv")

	tbl := &domain.Table{Columns: []domain.Column{
		{Name: "a", Kind: domain.KindInteger},
		{Name: "b", Kind: domain.KindText},
	}}
	require.NoError(t, w.WriteTable(path, tbl, WriteOptions{}))

	records := readCSV(t, path)
	require.Len(t, records, 1)
	assert.Equal(t, []string{"a", "b"}, records[0])
}

func TestCleanedFileName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "sales.csv", want: "cleaned_sales.csv"},
		{input: "report.xlsx", want: "cleaned_report.csv"},
		{input: "no_ext", want: "cleaned_no_ext.csv"},
		{input: "dotted.name.csv", want: "cleaned_dotted.name.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanedFileName(tt.input))
		})
	}
}
