package cleaner

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"tableqc/internal/stats"
	"tableqc/pkg/contracts/domain"
)

// OutlierMethod selects the outlier detection rule.
type OutlierMethod string

const (
	OutlierIQR    OutlierMethod = "iqr"
	OutlierZScore OutlierMethod = "zscore"
)

// Default thresholds per method.
const (
	DefaultIQRFactor       = 1.5
	DefaultZScoreThreshold = 3.0
)

// RemoveOutliers removes rows whose value in ANY of the selected numeric
// columns fails the chosen rule. A nil or empty column list selects every
// numeric column. Bounds and deviations are computed per column over its
// non-missing values. Under the IQR rule a missing value cannot satisfy the
// bounds and the row is removed; under the z-score rule a missing value has
// no deviation and the row is kept.
func (c *Cleaner) RemoveOutliers(ctx context.Context, t *domain.Table, columns []string, method OutlierMethod, threshold float64) (*domain.Table, domain.ChangelogEntry, error) {
	if threshold <= 0 {
		if method == OutlierZScore {
			threshold = DefaultZScoreThreshold
		} else {
			threshold = DefaultIQRFactor
		}
	}

	out := t.Clone()
	selected := selectNumericColumns(out, columns)
	if len(selected) == 0 {
		return out, domain.ChangelogEntry{Operation: domain.OpRemoveOutliers}, nil
	}

	var remove []bool
	switch method {
	case OutlierIQR:
		remove = iqrOutliers(out, selected, threshold)
	case OutlierZScore:
		remove = zscoreOutliers(out, selected, threshold)
	default:
		return nil, domain.ChangelogEntry{}, fmt.Errorf("unrecognized outlier method %q", method)
	}

	keep := make([]int, 0, out.NumRows())
	for i, r := range remove {
		if !r {
			keep = append(keep, i)
		}
	}
	removed := out.NumRows() - len(keep)
	if removed > 0 {
		out = out.SelectRows(keep)
	}

	entry := domain.ChangelogEntry{
		Operation: domain.OpRemoveOutliers,
		Detail:    fmt.Sprintf("removed %d outlier rows (%s, threshold %g)", removed, method, threshold),
		Rows:      removed,
	}
	c.logger.InfoContext(ctx, "removed outliers",
		slog.String("method", string(method)),
		slog.Float64("threshold", threshold),
		slog.Int("rows_removed", removed))

	return out, entry, nil
}

// selectNumericColumns resolves the requested column names to numeric-kind
// column indices; names that are absent or non-numeric are skipped.
func selectNumericColumns(t *domain.Table, columns []string) []int {
	var selected []int
	if len(columns) == 0 {
		for i := range t.Columns {
			if t.Columns[i].Kind.IsNumeric() {
				selected = append(selected, i)
			}
		}
		return selected
	}
	for _, name := range columns {
		for i := range t.Columns {
			if t.Columns[i].Name == name && t.Columns[i].Kind.IsNumeric() {
				selected = append(selected, i)
				break
			}
		}
	}
	return selected
}

func iqrOutliers(t *domain.Table, selected []int, factor float64) []bool {
	remove := make([]bool, t.NumRows())

	for _, ci := range selected {
		col := &t.Columns[ci]
		values := columnFloats(col)
		if len(values) == 0 {
			continue
		}
		q1 := stats.Quantile(values, 0.25)
		q3 := stats.Quantile(values, 0.75)
		iqr := q3 - q1
		lower := q1 - factor*iqr
		upper := q3 + factor*iqr

		for i, cell := range col.Cells {
			f, ok := cell.AsFloat()
			if !ok || f < lower || f > upper {
				remove[i] = true
			}
		}
	}
	return remove
}

func zscoreOutliers(t *domain.Table, selected []int, threshold float64) []bool {
	remove := make([]bool, t.NumRows())

	for _, ci := range selected {
		col := &t.Columns[ci]
		values := columnFloats(col)
		if len(values) == 0 {
			continue
		}
		m := stats.Mean(values)
		sd := stats.StdDev(values)
		if sd == 0 {
			continue
		}

		for i, cell := range col.Cells {
			f, ok := cell.AsFloat()
			if !ok {
				continue
			}
			if math.Abs(f-m)/sd >= threshold {
				remove[i] = true
			}
		}
	}
	return remove
}
