package cleaner

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"tableqc/pkg/contracts/domain"
)

// MissingStrategy selects how missing values are handled during cleaning.
type MissingStrategy string

const (
	StrategyNone         MissingStrategy = "none"
	StrategyDrop         MissingStrategy = "drop"
	StrategyMean         MissingStrategy = "mean"
	StrategyMedian       MissingStrategy = "median"
	StrategyMode         MissingStrategy = "mode"
	StrategyForwardFill  MissingStrategy = "forward_fill"
	StrategyBackwardFill MissingStrategy = "backward_fill"
)

// ParseStrategy converts a user-supplied strategy name into a MissingStrategy.
func ParseStrategy(s string) (MissingStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return StrategyNone, nil
	case "drop":
		return StrategyDrop, nil
	case "mean":
		return StrategyMean, nil
	case "median":
		return StrategyMedian, nil
	case "mode":
		return StrategyMode, nil
	case "forward_fill", "ffill":
		return StrategyForwardFill, nil
	case "backward_fill", "bfill":
		return StrategyBackwardFill, nil
	default:
		return StrategyNone, fmt.Errorf("unrecognized missing-value strategy %q", s)
	}
}

// Options configures the cleaning pipeline. Each step is independently
// toggleable; steps always run in the fixed pipeline order.
type Options struct {
	// DropDuplicates removes every row after the first occurrence of an
	// exact duplicate.
	DropDuplicates bool
	// MissingStrategy selects the missing-value handling step.
	MissingStrategy MissingStrategy
	// TrimWhitespace strips leading/trailing whitespace in text columns.
	TrimWhitespace bool
	// StandardizeColumnNames lowercases names, collapses whitespace runs
	// to underscores and strips characters outside [a-z0-9_].
	StandardizeColumnNames bool
}

// Cleaner applies transformation pipelines to tables.
type Cleaner struct {
	logger *slog.Logger
}

// New creates a Cleaner. A nil logger falls back to slog.Default.
func New(logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cleaner{logger: logger}
}

// Clean runs the default pipeline and returns the cleaned table plus the
// ordered changelog. The input table is not modified.
func (c *Cleaner) Clean(ctx context.Context, t *domain.Table, opts Options) (*domain.Table, domain.CleaningReport) {
	logger := c.logger.With(slog.String("file", t.Source))
	logger.InfoContext(ctx, "starting data cleaning",
		slog.Int("rows", t.NumRows()),
		slog.Int("columns", t.NumCols()))

	report := domain.CleaningReport{
		RowsBefore: t.NumRows(),
		ColsBefore: t.NumCols(),
	}
	out := t.Clone()

	if opts.StandardizeColumnNames {
		c.standardizeColumnNames(ctx, out, &report)
	}
	if opts.TrimWhitespace {
		c.trimWhitespace(ctx, out, &report)
	}
	if opts.DropDuplicates {
		out = c.dropDuplicates(ctx, out, &report)
	}
	if opts.MissingStrategy != "" && opts.MissingStrategy != StrategyNone {
		out = c.handleMissing(ctx, out, opts.MissingStrategy, &report)
	}

	// Empty columns are dropped unconditionally, after every other step.
	c.dropEmptyColumns(ctx, out, &report)

	report.RowsAfter = out.NumRows()
	report.ColsAfter = out.NumCols()

	logger.InfoContext(ctx, "cleaning completed",
		slog.Int("rows_before", report.RowsBefore),
		slog.Int("rows_after", report.RowsAfter),
		slog.Int("rows_removed", report.RowsBefore-report.RowsAfter))

	return out, report
}

var nonIdentifier = regexp.MustCompile(`[^a-z0-9_]`)
var whitespaceRun = regexp.MustCompile(`\s+`)

// standardizeName lowercases, collapses whitespace runs to a single
// underscore and strips any remaining character outside [a-z0-9_].
func standardizeName(name string) string {
	s := strings.ToLower(name)
	s = whitespaceRun.ReplaceAllString(s, "_")
	return nonIdentifier.ReplaceAllString(s, "")
}

func (c *Cleaner) standardizeColumnNames(ctx context.Context, t *domain.Table, report *domain.CleaningReport) {
	var changed []string
	seen := make(map[string]string, t.NumCols())

	for i := range t.Columns {
		col := &t.Columns[i]
		name := standardizeName(col.Name)
		if name != col.Name {
			changed = append(changed, fmt.Sprintf("%s -> %s", col.Name, name))
		}
		if prev, ok := seen[name]; ok {
			// Colliding names are kept as-is; downstream lookups resolve
			// to the first column with the name.
			c.logger.WarnContext(ctx, "column names collide after standardization",
				slog.String("name", name),
				slog.String("first", prev),
				slog.String("second", col.Name))
		} else {
			seen[name] = col.Name
		}
		col.Name = name
	}

	if len(changed) == 0 {
		return
	}
	detail := changed
	if len(detail) > 5 {
		detail = detail[:5]
	}
	report.Add(domain.ChangelogEntry{
		Operation: domain.OpStandardizeNames,
		Detail:    strings.Join(detail, ", "),
		Columns:   len(changed),
	})
	c.logger.InfoContext(ctx, "standardized column names", slog.Int("count", len(changed)))
}

func (c *Cleaner) trimWhitespace(ctx context.Context, t *domain.Table, report *domain.CleaningReport) {
	columnsChanged := 0
	cellsChanged := 0

	for i := range t.Columns {
		col := &t.Columns[i]
		if col.Kind != domain.KindText {
			continue
		}
		changed := 0
		for j, cell := range col.Cells {
			if cell.IsMissing() {
				continue
			}
			s := cell.String()
			if trimmed := strings.TrimSpace(s); trimmed != s {
				col.Cells[j] = domain.Text(trimmed)
				changed++
			}
		}
		if changed > 0 {
			columnsChanged++
			cellsChanged += changed
		}
	}

	if columnsChanged == 0 {
		return
	}
	report.Add(domain.ChangelogEntry{
		Operation: domain.OpTrimWhitespace,
		Detail:    fmt.Sprintf("cleaned whitespace in %d columns", columnsChanged),
		Columns:   columnsChanged,
		Cells:     cellsChanged,
	})
	c.logger.InfoContext(ctx, "removed whitespace",
		slog.Int("columns", columnsChanged),
		slog.Int("cells", cellsChanged))
}

func (c *Cleaner) dropDuplicates(ctx context.Context, t *domain.Table, report *domain.CleaningReport) *domain.Table {
	rows := t.NumRows()
	seen := make(map[string]struct{}, rows)
	keep := make([]int, 0, rows)

	for i := 0; i < rows; i++ {
		key := t.RowKey(i)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keep = append(keep, i)
	}

	removed := rows - len(keep)
	if removed == 0 {
		return t
	}

	report.Add(domain.ChangelogEntry{
		Operation: domain.OpDropDuplicates,
		Detail:    fmt.Sprintf("removed %d duplicate rows (kept first)", removed),
		Rows:      removed,
	})
	c.logger.InfoContext(ctx, "removed duplicate rows", slog.Int("count", removed))
	return t.SelectRows(keep)
}

func (c *Cleaner) dropEmptyColumns(ctx context.Context, t *domain.Table, report *domain.CleaningReport) {
	var dropped []string
	kept := t.Columns[:0]

	for i := range t.Columns {
		col := t.Columns[i]
		if len(col.Cells) > 0 && col.IsEmpty() {
			dropped = append(dropped, col.Name)
			continue
		}
		kept = append(kept, col)
	}
	t.Columns = kept

	if len(dropped) == 0 {
		return
	}
	report.Add(domain.ChangelogEntry{
		Operation: domain.OpDropEmptyColumns,
		Detail:    fmt.Sprintf("removed empty columns: %s", strings.Join(dropped, ", ")),
		Columns:   len(dropped),
	})
	c.logger.InfoContext(ctx, "removed empty columns",
		slog.Int("count", len(dropped)),
		slog.String("columns", strings.Join(dropped, ", ")))
}
