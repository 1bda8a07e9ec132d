package domain

import (
	"fmt"
	"strings"
)

// Column is a named, kinded sequence of cells.
type Column struct {
	Name  string
	Kind  Kind
	Cells []Value
}

// MissingCount returns the number of missing cells in the column.
func (c *Column) MissingCount() int {
	n := 0
	for _, cell := range c.Cells {
		if cell.IsMissing() {
			n++
		}
	}
	return n
}

// IsEmpty reports whether every cell in the column is missing.
func (c *Column) IsEmpty() bool {
	return c.MissingCount() == len(c.Cells)
}

// Table is an in-memory columnar dataset. All columns hold the same number
// of rows; the loader guarantees rectangularity before the engine sees it.
type Table struct {
	Source  string
	Columns []Column
}

// NumRows returns the row count. Zero for a table with no columns.
func (t *Table) NumRows() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Cells)
}

// NumCols returns the column count.
func (t *Table) NumCols() int {
	return len(t.Columns)
}

// ColumnNames returns the column names in order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		names[i] = col.Name
	}
	return names
}

// Column returns a pointer to the named column, or nil if absent.
func (t *Table) Column(name string) *Column {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i]
		}
	}
	return nil
}

// Rectangular verifies that every column holds the same number of cells.
func (t *Table) Rectangular() error {
	if len(t.Columns) == 0 {
		return nil
	}
	want := len(t.Columns[0].Cells)
	for _, col := range t.Columns[1:] {
		if len(col.Cells) != want {
			return fmt.Errorf("column %q has %d rows, expected %d", col.Name, len(col.Cells), want)
		}
	}
	return nil
}

// Clone returns a deep copy of the table. Cleaning operates on a clone so
// the original stays available for before/after comparison.
func (t *Table) Clone() *Table {
	out := &Table{Source: t.Source, Columns: make([]Column, len(t.Columns))}
	for i, col := range t.Columns {
		cells := make([]Value, len(col.Cells))
		copy(cells, col.Cells)
		out.Columns[i] = Column{Name: col.Name, Kind: col.Kind, Cells: cells}
	}
	return out
}

// Row returns the cells at the given row position across all columns.
func (t *Table) Row(i int) []Value {
	row := make([]Value, len(t.Columns))
	for j := range t.Columns {
		row[j] = t.Columns[j].Cells[i]
	}
	return row
}

// RowKey returns a canonical key for the row, used for exact duplicate
// detection. Missing cells contribute their own marker so a missing value
// only matches another missing value.
func (t *Table) RowKey(i int) string {
	parts := make([]string, len(t.Columns))
	for j := range t.Columns {
		parts[j] = t.Columns[j].Cells[i].Key()
	}
	return strings.Join(parts, "\x1f")
}

// SelectRows returns a new table containing only the rows whose positions
// appear in keep, preserving order.
func (t *Table) SelectRows(keep []int) *Table {
	out := &Table{Source: t.Source, Columns: make([]Column, len(t.Columns))}
	for i, col := range t.Columns {
		cells := make([]Value, 0, len(keep))
		for _, r := range keep {
			cells = append(cells, col.Cells[r])
		}
		out.Columns[i] = Column{Name: col.Name, Kind: col.Kind, Cells: cells}
	}
	return out
}

// TotalCells returns rows × columns.
func (t *Table) TotalCells() int {
	return t.NumRows() * t.NumCols()
}

// MissingCells returns the total number of missing cells across all columns.
func (t *Table) MissingCells() int {
	n := 0
	for i := range t.Columns {
		n += t.Columns[i].MissingCount()
	}
	return n
}
