package cleaner

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	apperrors "tableqc/internal/errors"
	"tableqc/pkg/contracts/domain"
)

// dateLayouts are the candidate layouts tried during auto-detection, most
// specific first.
var dateLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"02-Jan-2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// ConvertColumn converts a named column to the target kind in a new table.
// Out-of-range or unparsable cells become missing rather than failing the
// operation; only an absent column is an error.
func (c *Cleaner) ConvertColumn(ctx context.Context, t *domain.Table, column string, target domain.Kind) (*domain.Table, domain.ChangelogEntry, error) {
	out := t.Clone()
	col := out.Column(column)
	if col == nil {
		return nil, domain.ChangelogEntry{}, apperrors.ColumnOperation(column, domain.OpConvertColumn,
			fmt.Errorf("column not found"))
	}

	converted, unconvertible := 0, 0
	for i, cell := range col.Cells {
		if cell.IsMissing() {
			continue
		}
		v, ok := convertValue(cell, target)
		if !ok {
			col.Cells[i] = domain.Missing()
			unconvertible++
			continue
		}
		col.Cells[i] = v
		converted++
	}
	col.Kind = target

	entry := domain.ChangelogEntry{
		Operation: domain.OpConvertColumn,
		Detail:    fmt.Sprintf("converted %q to %s (%d unconvertible values set to missing)", column, target, unconvertible),
		Columns:   1,
		Cells:     converted,
	}
	c.logger.InfoContext(ctx, "converted column",
		slog.String("column", column),
		slog.String("target", string(target)),
		slog.Int("converted", converted),
		slog.Int("unconvertible", unconvertible))

	return out, entry, nil
}

// convertValue converts one cell to the target kind from its canonical text
// form. Returns false when the value cannot be represented in the target.
func convertValue(cell domain.Value, target domain.Kind) (domain.Value, bool) {
	s := strings.TrimSpace(cell.String())

	switch target {
	case domain.KindText:
		return domain.Text(cell.String()), true

	case domain.KindInteger:
		clean := strings.ReplaceAll(s, ",", "")
		if i, err := strconv.ParseInt(clean, 10, 64); err == nil {
			return domain.Int(i), true
		}
		if f, err := strconv.ParseFloat(clean, 64); err == nil && f == math.Trunc(f) &&
			math.Abs(f) < float64(1<<62) {
			return domain.Int(int64(f)), true
		}
		return domain.Missing(), false

	case domain.KindFloat:
		clean := strings.ReplaceAll(s, ",", "")
		if f, err := strconv.ParseFloat(clean, 64); err == nil {
			return domain.Float(f), true
		}
		return domain.Missing(), false

	case domain.KindBool:
		switch strings.ToLower(s) {
		case "true", "t", "yes", "y", "1":
			return domain.Bool(true), true
		case "false", "f", "no", "n", "0":
			return domain.Bool(false), true
		}
		return domain.Missing(), false

	case domain.KindDate:
		for _, layout := range dateLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return domain.Date(ts, domain.DefaultDateLayout), true
			}
		}
		return domain.Missing(), false

	default:
		return domain.Missing(), false
	}
}

// NormalizeDates reparses a column's values with a known or auto-detected
// input layout and rewrites them using the output layout. Unparsable values
// become missing. When no layout can be detected the column is left in its
// prior state and the failure is logged, never propagated.
func (c *Cleaner) NormalizeDates(ctx context.Context, t *domain.Table, column, inputLayout, outputLayout string) (*domain.Table, domain.ChangelogEntry, error) {
	if outputLayout == "" {
		outputLayout = domain.DefaultDateLayout
	}

	out := t.Clone()
	col := out.Column(column)
	if col == nil {
		return nil, domain.ChangelogEntry{}, apperrors.ColumnOperation(column, domain.OpNormalizeDates,
			fmt.Errorf("column not found"))
	}

	layout := inputLayout
	if layout == "" {
		layout = detectDateLayout(col)
		if layout == "" {
			c.logger.WarnContext(ctx, "could not detect date layout, column left unchanged",
				slog.String("column", column))
			return out, domain.ChangelogEntry{Operation: domain.OpNormalizeDates}, nil
		}
	}

	normalized, unparsable := 0, 0
	for i, cell := range col.Cells {
		if cell.IsMissing() {
			continue
		}
		ts, err := time.Parse(layout, strings.TrimSpace(cell.String()))
		if err != nil {
			col.Cells[i] = domain.Missing()
			unparsable++
			continue
		}
		col.Cells[i] = domain.Date(ts, outputLayout)
		normalized++
	}
	col.Kind = domain.KindDate

	entry := domain.ChangelogEntry{
		Operation: domain.OpNormalizeDates,
		Detail:    fmt.Sprintf("normalized dates in %q to %s (%d unparsable values set to missing)", column, outputLayout, unparsable),
		Columns:   1,
		Cells:     normalized,
	}
	c.logger.InfoContext(ctx, "normalized dates",
		slog.String("column", column),
		slog.String("layout", layout),
		slog.Int("normalized", normalized),
		slog.Int("unparsable", unparsable))

	return out, entry, nil
}

// detectDateLayout returns the first candidate layout that parses the first
// non-missing value, or empty when none does.
func detectDateLayout(col *domain.Column) string {
	for _, cell := range col.Cells {
		if cell.IsMissing() {
			continue
		}
		s := strings.TrimSpace(cell.String())
		for _, layout := range dateLayouts {
			if _, err := time.Parse(layout, s); err == nil {
				return layout
			}
		}
		return ""
	}
	return ""
}
