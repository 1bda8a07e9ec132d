package cleaner

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"tableqc/internal/stats"
	"tableqc/pkg/contracts/domain"
)

// handleMissing dispatches the missing-value strategy. Every strategy
// returns a table (possibly the same instance when nothing changed).
func (c *Cleaner) handleMissing(ctx context.Context, t *domain.Table, strategy MissingStrategy, report *domain.CleaningReport) *domain.Table {
	switch strategy {
	case StrategyDrop:
		return c.dropMissingRows(ctx, t, report)
	case StrategyMean, StrategyMedian:
		c.fillNumeric(ctx, t, strategy, report)
		return t
	case StrategyMode:
		c.fillMode(ctx, t, report)
		return t
	case StrategyForwardFill:
		c.fillDirectional(ctx, t, true, report)
		return t
	case StrategyBackwardFill:
		c.fillDirectional(ctx, t, false, report)
		return t
	default:
		c.logger.WarnContext(ctx, "unknown missing-value strategy, skipping",
			slog.String("strategy", string(strategy)))
		return t
	}
}

// dropMissingRows removes every row containing at least one missing cell.
func (c *Cleaner) dropMissingRows(ctx context.Context, t *domain.Table, report *domain.CleaningReport) *domain.Table {
	rows := t.NumRows()
	keep := make([]int, 0, rows)

rowLoop:
	for i := 0; i < rows; i++ {
		for j := range t.Columns {
			if t.Columns[j].Cells[i].IsMissing() {
				continue rowLoop
			}
		}
		keep = append(keep, i)
	}

	removed := rows - len(keep)
	if removed == 0 {
		return t
	}
	report.Add(domain.ChangelogEntry{
		Operation: domain.OpHandleMissing,
		Detail:    fmt.Sprintf("dropped %d rows with missing values", removed),
		Rows:      removed,
	})
	c.logger.InfoContext(ctx, "dropped rows with missing values", slog.Int("count", removed))
	return t.SelectRows(keep)
}

// fillNumeric replaces missing cells of numeric columns with the column's
// own mean or median over its non-missing values. Non-numeric columns are
// untouched; a column with no non-missing values stays as-is.
func (c *Cleaner) fillNumeric(ctx context.Context, t *domain.Table, strategy MissingStrategy, report *domain.CleaningReport) {
	filled := 0

	for i := range t.Columns {
		col := &t.Columns[i]
		if !col.Kind.IsNumeric() || col.MissingCount() == 0 {
			continue
		}
		values := columnFloats(col)
		if len(values) == 0 {
			continue
		}

		var fill float64
		if strategy == StrategyMean {
			fill = stats.Mean(values)
		} else {
			fill = stats.Median(values)
		}

		fillValue := domain.Float(fill)
		if col.Kind == domain.KindInteger {
			if fill == math.Trunc(fill) {
				fillValue = domain.Int(int64(fill))
			} else {
				// Non-integral fill promotes the column to float.
				col.Kind = domain.KindFloat
			}
		}

		for j, cell := range col.Cells {
			if cell.IsMissing() {
				col.Cells[j] = fillValue
				filled++
			}
		}
	}

	if filled == 0 {
		return
	}
	report.Add(domain.ChangelogEntry{
		Operation: domain.OpHandleMissing,
		Detail:    fmt.Sprintf("filled %d missing values with %s", filled, strategy),
		Cells:     filled,
	})
	c.logger.InfoContext(ctx, "filled missing numeric values",
		slog.String("strategy", string(strategy)),
		slog.Int("cells", filled))
}

// fillMode replaces missing cells of every column with the single most
// frequent non-missing value of that column. Ties resolve to the value seen
// first in row order. Columns with no non-missing values are left alone.
func (c *Cleaner) fillMode(ctx context.Context, t *domain.Table, report *domain.CleaningReport) {
	filled := 0

	for i := range t.Columns {
		col := &t.Columns[i]
		if col.MissingCount() == 0 {
			continue
		}

		counts := make(map[string]int)
		order := make(map[string]int)
		values := make(map[string]domain.Value)
		for j, cell := range col.Cells {
			if cell.IsMissing() {
				continue
			}
			key := cell.Key()
			if _, ok := counts[key]; !ok {
				order[key] = j
				values[key] = cell
			}
			counts[key]++
		}
		if len(counts) == 0 {
			continue
		}

		var bestKey string
		for key, n := range counts {
			if bestKey == "" || n > counts[bestKey] || (n == counts[bestKey] && order[key] < order[bestKey]) {
				bestKey = key
			}
		}
		fillValue := values[bestKey]

		for j, cell := range col.Cells {
			if cell.IsMissing() {
				col.Cells[j] = fillValue
				filled++
			}
		}
	}

	if filled == 0 {
		return
	}
	report.Add(domain.ChangelogEntry{
		Operation: domain.OpHandleMissing,
		Detail:    fmt.Sprintf("filled %d missing values with mode", filled),
		Cells:     filled,
	})
	c.logger.InfoContext(ctx, "filled missing values with mode", slog.Int("cells", filled))
}

// fillDirectional propagates the nearest prior (forward) or subsequent
// (backward) non-missing value in row order, independently per column.
// Runs with no donor value remain missing.
func (c *Cleaner) fillDirectional(ctx context.Context, t *domain.Table, forward bool, report *domain.CleaningReport) {
	filled := 0

	for i := range t.Columns {
		col := &t.Columns[i]
		n := len(col.Cells)
		last := domain.Missing()

		if forward {
			for j := 0; j < n; j++ {
				if !col.Cells[j].IsMissing() {
					last = col.Cells[j]
				} else if !last.IsMissing() {
					col.Cells[j] = last
					filled++
				}
			}
		} else {
			for j := n - 1; j >= 0; j-- {
				if !col.Cells[j].IsMissing() {
					last = col.Cells[j]
				} else if !last.IsMissing() {
					col.Cells[j] = last
					filled++
				}
			}
		}
	}

	if filled == 0 {
		return
	}
	direction := "forward"
	if !forward {
		direction = "backward"
	}
	report.Add(domain.ChangelogEntry{
		Operation: domain.OpHandleMissing,
		Detail:    fmt.Sprintf("%s filled %d missing values", direction, filled),
		Cells:     filled,
	})
	c.logger.InfoContext(ctx, "directionally filled missing values",
		slog.String("direction", direction),
		slog.Int("cells", filled))
}
