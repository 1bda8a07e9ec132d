package loader

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "tableqc/internal/errors"
	"tableqc/pkg/contracts/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeTempCSV(t, "id,name,price,active,joined\n"+
		"1,alice,9.50,true,2024-01-05\n"+
		"2,bob,12.00,false,2024-02-10\n")

	l := New(testLogger())
	tbl, err := l.Load(context.Background(), path, Options{})
	require.NoError(t, err)

	require.Equal(t, 5, tbl.NumCols())
	require.Equal(t, 2, tbl.NumRows())
	assert.Equal(t, path, tbl.Source)

	assert.Equal(t, domain.KindInteger, tbl.Column("id").Kind)
	assert.Equal(t, domain.KindText, tbl.Column("name").Kind)
	assert.Equal(t, domain.KindFloat, tbl.Column("price").Kind)
	assert.Equal(t, domain.KindBool, tbl.Column("active").Kind)
	assert.Equal(t, domain.KindDate, tbl.Column("joined").Kind)

	assert.Equal(t, int64(1), tbl.Column("id").Cells[0].Int64())
	assert.True(t, tbl.Column("active").Cells[0].BoolValue())
	assert.Equal(t, "2024-01-05", tbl.Column("joined").Cells[0].String())
}

func TestLoadCSVMissingMarkers(t *testing.T) {
	path := writeTempCSV(t, "a,b,c,d,e,f\n"+
		"1,NA,n/a,NULL,NaN,None\n"+
		"2,x,y,z,w,v\n")

	l := New(testLogger())
	tbl, err := l.Load(context.Background(), path, Options{})
	require.NoError(t, err)

	for _, name := range []string{"b", "c", "d", "e", "f"} {
		assert.True(t, tbl.Column(name).Cells[0].IsMissing(), "column %s row 0", name)
		assert.False(t, tbl.Column(name).Cells[1].IsMissing(), "column %s row 1", name)
	}
}

func TestLoadCSVMixedColumnDegradesToText(t *testing.T) {
	path := writeTempCSV(t, "v\n1\ntwo\n3\n")

	l := New(testLogger())
	tbl, err := l.Load(context.Background(), path, Options{})
	require.NoError(t, err)

	assert.Equal(t, domain.KindText, tbl.Column("v").Kind)
}

func TestLoadCSVAllMissingColumnIsUnknown(t *testing.T) {
	path := writeTempCSV(t, "a,b\n1,\n2,NA\n")

	l := New(testLogger())
	tbl, err := l.Load(context.Background(), path, Options{})
	require.NoError(t, err)

	col := tbl.Column("b")
	assert.Equal(t, domain.KindUnknown, col.Kind)
	assert.True(t, col.IsEmpty())
}

func TestLoadCSVPreservesWhitespaceInText(t *testing.T) {
	path := writeTempCSV(t, "name\n  alice  \nbob\n")

	l := New(testLogger())
	tbl, err := l.Load(context.Background(), path, Options{})
	require.NoError(t, err)

	assert.Equal(t, "  alice  ", tbl.Column("name").Cells[0].String())
}

func TestLoadCSVWithBOM(t *testing.T) {
	path := writeTempCSV(t, "\xEF\xBB\xBFid,name\n1,a\n")

	l := New(testLogger())
	tbl, err := l.Load(context.Background(), path, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "name"}, tbl.ColumnNames())
}

func TestLoadCSVLatin1(t *testing.T) {
	// "café" with an ISO-8859-1 encoded é (0xE9).
	path := writeTempCSV(t, "name\ncaf\xE9\n")

	l := New(testLogger())
	tbl, err := l.Load(context.Background(), path, Options{Encoding: "latin-1"})
	require.NoError(t, err)

	assert.Equal(t, "café", tbl.Column("name").Cells[0].String())
}

func TestLoadCSVUnsupportedEncoding(t *testing.T) {
	path := writeTempCSV(t, "a\n1\n")

	l := New(testLogger())
	_, err := l.Load(context.Background(), path, Options{Encoding: "ebcdic"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ebcdic")
}

func TestLoadCSVJaggedFileFails(t *testing.T) {
	path := writeTempCSV(t, "a,b\n1,2\n3\n")

	l := New(testLogger())
	_, err := l.Load(context.Background(), path, Options{})
	require.Error(t, err)
	code, ok := apperrors.CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeLoadFailed, code)
}

func TestLoadCSVEmptyFileFails(t *testing.T) {
	path := writeTempCSV(t, "")

	l := New(testLogger())
	_, err := l.Load(context.Background(), path, Options{})
	require.Error(t, err)
	code, ok := apperrors.CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeMalformedTable, code)
}

func TestLoadMissingFile(t *testing.T) {
	l := New(testLogger())
	_, err := l.Load(context.Background(), filepath.Join(t.TempDir(), "ghost.csv"), Options{})
	require.Error(t, err)
	code, ok := apperrors.CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeFileNotFound, code)
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.parquet")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	l := New(testLogger())
	_, err := l.Load(context.Background(), path, Options{})
	require.Error(t, err)
	code, ok := apperrors.CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeUnsupportedFormat, code)
}

func writeTempExcel(t *testing.T, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	path := filepath.Join(t.TempDir(), "data.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoadExcel(t *testing.T) {
	path := writeTempExcel(t, [][]any{
		{"id", "name"},
		{1, "alice"},
		{2, "bob"},
	})

	l := New(testLogger())
	tbl, err := l.Load(context.Background(), path, Options{})
	require.NoError(t, err)

	require.Equal(t, 2, tbl.NumRows())
	assert.Equal(t, domain.KindInteger, tbl.Column("id").Kind)
	assert.Equal(t, "alice", tbl.Column("name").Cells[0].String())
}

func TestLoadExcelPadsShortRows(t *testing.T) {
	path := writeTempExcel(t, [][]any{
		{"a", "b", "c"},
		{1, "x"}, // trailing cell absent
		{2, "y", "z"},
	})

	l := New(testLogger())
	tbl, err := l.Load(context.Background(), path, Options{})
	require.NoError(t, err)

	require.NoError(t, tbl.Rectangular())
	assert.True(t, tbl.Column("c").Cells[0].IsMissing())
	assert.Equal(t, "z", tbl.Column("c").Cells[1].String())
}

func TestLoadExcelNamesBlankHeaders(t *testing.T) {
	path := writeTempExcel(t, [][]any{
		{"a", "", "c"},
		{1, 2, 3},
	})

	l := New(testLogger())
	tbl, err := l.Load(context.Background(), path, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "column_2", "c"}, tbl.ColumnNames())
}

func TestLoadExcelNamedSheet(t *testing.T) {
	f := excelize.NewFile()
	_, err := f.NewSheet("extra")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("extra", "A1", &[]any{"v"}))
	require.NoError(t, f.SetSheetRow("extra", "A2", &[]any{42}))

	path := filepath.Join(t.TempDir(), "multi.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	l := New(testLogger())
	tbl, err := l.Load(context.Background(), path, Options{Sheet: "extra"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), tbl.Column("v").Cells[0].Int64())
}
