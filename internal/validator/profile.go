package validator

import (
	"strings"

	"tableqc/pkg/contracts/domain"
)

// columnMissing describes missing cells in one column.
type columnMissing struct {
	Name    string
	Count   int
	Percent float64
}

// profile holds the structural defect counts shared by the findings pass
// and the quality scorer.
type profile struct {
	Rows              int
	Cols              int
	DuplicateRows     int
	DuplicatePercent  float64
	MissingCells      int
	MissingPercent    float64
	MissingByColumn   []columnMissing
	EmptyColumns      []string
	WhitespaceColumns []string
}

// profileTable computes the defect counts for a table in a single pass per
// concern. The first occurrence of a row is never counted as a duplicate.
func profileTable(t *domain.Table) profile {
	p := profile{Rows: t.NumRows(), Cols: t.NumCols()}

	seen := make(map[string]struct{}, p.Rows)
	for i := 0; i < p.Rows; i++ {
		key := t.RowKey(i)
		if _, ok := seen[key]; ok {
			p.DuplicateRows++
		} else {
			seen[key] = struct{}{}
		}
	}
	if p.Rows > 0 {
		p.DuplicatePercent = float64(p.DuplicateRows) / float64(p.Rows) * 100
	}

	for i := range t.Columns {
		col := &t.Columns[i]
		missing := col.MissingCount()
		p.MissingCells += missing
		if missing > 0 && p.Rows > 0 {
			p.MissingByColumn = append(p.MissingByColumn, columnMissing{
				Name:    col.Name,
				Count:   missing,
				Percent: float64(missing) / float64(p.Rows) * 100,
			})
		}
		if p.Rows > 0 && missing == p.Rows {
			p.EmptyColumns = append(p.EmptyColumns, col.Name)
		}
		if col.Kind == domain.KindText && columnHasWhitespace(col) {
			p.WhitespaceColumns = append(p.WhitespaceColumns, col.Name)
		}
	}
	if total := p.Rows * p.Cols; total > 0 {
		p.MissingPercent = float64(p.MissingCells) / float64(total) * 100
	}

	return p
}

// columnHasWhitespace reports whether any non-missing value differs from its
// leading/trailing-trimmed form.
func columnHasWhitespace(col *domain.Column) bool {
	for _, cell := range col.Cells {
		if cell.IsMissing() {
			continue
		}
		if s := cell.String(); s != strings.TrimSpace(s) {
			return true
		}
	}
	return false
}
