package reporter

import (
	"fmt"
	"log/slog"
	"sort"

	"tableqc/internal/stats"
	"tableqc/pkg/contracts/domain"
)

// maxCategoricalColumns limits the value-count section to the first few
// text columns, matching the report's readable-at-a-glance intent.
const maxCategoricalColumns = 5

// maxTopValues limits how many distinct values are listed per text column.
const maxTopValues = 10

// WriteSummaryStatistics writes a describe-style statistics file for a
// table: distribution metrics for numeric columns and top value counts for
// text columns.
func (r *Reporter) WriteSummaryStatistics(t *domain.Table, outputPath string) error {
	var lines []string
	lines = append(lines, rule("="), "SUMMARY STATISTICS", rule("="), "")

	lines = append(lines, numericStatistics(t)...)
	lines = append(lines, categoricalStatistics(t)...)

	if err := writeLines(outputPath, lines); err != nil {
		return err
	}
	r.logger.Info("summary statistics saved", slog.String("path", outputPath))
	return nil
}

func numericStatistics(t *domain.Table) []string {
	var numeric []*domain.Column
	for i := range t.Columns {
		if t.Columns[i].Kind.IsNumeric() {
			numeric = append(numeric, &t.Columns[i])
		}
	}
	if len(numeric) == 0 {
		return nil
	}

	lines := []string{"Numeric Columns:", rule("-")}
	lines = append(lines, fmt.Sprintf("%-20s %8s %12s %12s %12s %12s %12s %12s",
		"Column", "Count", "Mean", "Std", "Min", "Median", "75%", "Max"))
	for _, col := range numeric {
		values := nonMissingFloats(col)
		if len(values) == 0 {
			lines = append(lines, fmt.Sprintf("%-20s %8d", col.Name, 0))
			continue
		}
		lines = append(lines, fmt.Sprintf("%-20s %8d %12.2f %12.2f %12.2f %12.2f %12.2f %12.2f",
			col.Name,
			len(values),
			stats.Mean(values),
			stats.StdDev(values),
			stats.Min(values),
			stats.Median(values),
			stats.Quantile(values, 0.75),
			stats.Max(values)))
	}
	lines = append(lines, "")
	return lines
}

func categoricalStatistics(t *domain.Table) []string {
	var textCols []*domain.Column
	for i := range t.Columns {
		if t.Columns[i].Kind == domain.KindText {
			textCols = append(textCols, &t.Columns[i])
		}
	}
	if len(textCols) == 0 {
		return nil
	}
	if len(textCols) > maxCategoricalColumns {
		textCols = textCols[:maxCategoricalColumns]
	}

	lines := []string{"Categorical Columns:", rule("-")}
	for _, col := range textCols {
		lines = append(lines, "", fmt.Sprintf("%s:", col.Name))
		for _, vc := range topValues(col, maxTopValues) {
			lines = append(lines, fmt.Sprintf("  %-30s %d", vc.value, vc.count))
		}
	}
	lines = append(lines, "")
	return lines
}

type valueCount struct {
	value string
	count int
	first int
}

// topValues returns the most frequent non-missing values of a column, ties
// resolved by first appearance.
func topValues(col *domain.Column, limit int) []valueCount {
	counts := make(map[string]*valueCount)
	for i, cell := range col.Cells {
		if cell.IsMissing() {
			continue
		}
		s := cell.String()
		if vc, ok := counts[s]; ok {
			vc.count++
		} else {
			counts[s] = &valueCount{value: s, count: 1, first: i}
		}
	}

	out := make([]valueCount, 0, len(counts))
	for _, vc := range counts {
		out = append(out, *vc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].first < out[j].first
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func nonMissingFloats(col *domain.Column) []float64 {
	out := make([]float64, 0, len(col.Cells))
	for _, cell := range col.Cells {
		if f, ok := cell.AsFloat(); ok {
			out = append(out, f)
		}
	}
	return out
}
