package reporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tableqc/pkg/contracts/domain"
)

const lineWidth = 80

// Reporter generates validation and cleaning reports.
type Reporter struct {
	logger *slog.Logger
}

// New creates a Reporter. A nil logger falls back to slog.Default.
func New(logger *slog.Logger) *Reporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reporter{logger: logger}
}

// GenerateReport writes the full data quality report for one file. The
// cleaned table and cleaning report are optional; when present a before/after
// comparison section is included.
func (r *Reporter) GenerateReport(original, cleaned *domain.Table, result domain.ValidationResult, cleaning *domain.CleaningReport, outputPath, filename string) error {
	r.logger.Info("generating report", slog.String("file", filename))

	var lines []string
	lines = append(lines, header(filename)...)
	lines = append(lines, fileStats(original)...)
	lines = append(lines, qualitySummary(original, result)...)
	lines = append(lines, findingsSection(result)...)
	lines = append(lines, columnAnalysis(original)...)
	lines = append(lines, missingAnalysis(original)...)
	lines = append(lines, duplicateAnalysis(original)...)
	if cleaned != nil {
		lines = append(lines, cleaningComparison(original, cleaned)...)
	}
	if cleaning != nil && len(cleaning.Entries) > 0 {
		lines = append(lines, CleaningSummary(*cleaning), "")
	}
	lines = append(lines, recommendations(original)...)
	lines = append(lines, rule("="), "END OF REPORT", rule("="))

	if err := writeLines(outputPath, lines); err != nil {
		return err
	}
	r.logger.Info("report saved", slog.String("path", outputPath))
	return nil
}

func writeLines(path string, lines []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func rule(ch string) string {
	return strings.Repeat(ch, lineWidth)
}

func header(filename string) []string {
	return []string{
		rule("="),
		"DATA QUALITY VALIDATION REPORT",
		rule("="),
		"",
		fmt.Sprintf("File: %s", filename),
		fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04:05")),
		"",
	}
}

func fileStats(t *domain.Table) []string {
	return []string{
		"FILE STATISTICS",
		rule("-"),
		fmt.Sprintf("Total Rows:          %d", t.NumRows()),
		fmt.Sprintf("Total Columns:       %d", t.NumCols()),
		"",
	}
}

func qualitySummary(t *domain.Table, result domain.ValidationResult) []string {
	total := t.TotalCells()
	missing := t.MissingCells()
	completeness := 100.0
	if total > 0 {
		completeness = float64(total-missing) / float64(total) * 100
	}

	dupes := duplicateCount(t)
	uniqueness := 100.0
	if rows := t.NumRows(); rows > 0 {
		uniqueness = float64(rows-dupes) / float64(rows) * 100
	}

	status := "FAILED"
	if result.Valid {
		status = "PASSED"
	}

	return []string{
		"DATA QUALITY SUMMARY",
		rule("-"),
		fmt.Sprintf("Validation:          %s", status),
		fmt.Sprintf("Completeness:        %.2f%%", completeness),
		fmt.Sprintf("Uniqueness:          %.2f%%", uniqueness),
		fmt.Sprintf("Quality Score:       %d/100", result.Score),
		fmt.Sprintf("Assessment:          %s", assessment(result.Score)),
		"",
	}
}

// assessment maps a quality score to a verbal band.
func assessment(score int) string {
	switch {
	case score >= 90:
		return "EXCELLENT"
	case score >= 75:
		return "GOOD"
	case score >= 60:
		return "FAIR"
	default:
		return "NEEDS IMPROVEMENT"
	}
}

func findingsSection(result domain.ValidationResult) []string {
	if len(result.Findings) == 0 {
		return nil
	}
	lines := []string{"VALIDATION FINDINGS", rule("-")}
	for _, f := range result.Findings {
		marker := "WARN "
		if f.Severity == domain.SeverityError {
			marker = "ERROR"
		}
		lines = append(lines, fmt.Sprintf("[%s] %s", marker, f.Message))
	}
	lines = append(lines, "")
	return lines
}

func columnAnalysis(t *domain.Table) []string {
	lines := []string{"COLUMN ANALYSIS", rule("-")}

	for i := range t.Columns {
		col := &t.Columns[i]
		missing := col.MissingCount()
		unique := uniqueCount(col)

		lines = append(lines,
			"",
			fmt.Sprintf("%s:", col.Name),
			fmt.Sprintf("  Kind:        %s", col.Kind),
			fmt.Sprintf("  Non-null:    %d", len(col.Cells)-missing),
			fmt.Sprintf("  Null:        %d", missing),
			fmt.Sprintf("  Unique:      %d", unique),
		)
		if col.Kind.IsNumeric() {
			lines = append(lines, numericRange(col)...)
		}
	}

	lines = append(lines, "")
	return lines
}

func numericRange(col *domain.Column) []string {
	var min, max, sum float64
	n := 0
	for _, cell := range col.Cells {
		f, ok := cell.AsFloat()
		if !ok {
			continue
		}
		if n == 0 || f < min {
			min = f
		}
		if n == 0 || f > max {
			max = f
		}
		sum += f
		n++
	}
	if n == 0 {
		return nil
	}
	return []string{
		fmt.Sprintf("  Range:       %g to %g", min, max),
		fmt.Sprintf("  Mean:        %.2f", sum/float64(n)),
	}
}

func missingAnalysis(t *domain.Table) []string {
	lines := []string{"MISSING VALUES ANALYSIS", rule("-")}

	type entry struct {
		name  string
		count int
	}
	var entries []entry
	for i := range t.Columns {
		if n := t.Columns[i].MissingCount(); n > 0 {
			entries = append(entries, entry{t.Columns[i].Name, n})
		}
	}

	if len(entries) == 0 {
		lines = append(lines, "No missing values found")
	} else {
		lines = append(lines,
			fmt.Sprintf("Columns with missing values: %d", len(entries)),
			"",
			fmt.Sprintf("%-30s %-15s %s", "Column", "Missing", "Percentage"),
			rule("-"))
		rows := t.NumRows()
		for _, e := range entries {
			pct := float64(e.count) / float64(rows) * 100
			lines = append(lines, fmt.Sprintf("%-30s %-15d %.2f%%", e.name, e.count, pct))
		}
	}

	lines = append(lines, "")
	return lines
}

func duplicateAnalysis(t *domain.Table) []string {
	lines := []string{"DUPLICATE ANALYSIS", rule("-")}

	dupes := duplicateCount(t)
	if dupes == 0 {
		lines = append(lines, "No duplicate rows found")
	} else {
		pct := float64(dupes) / float64(t.NumRows()) * 100
		lines = append(lines, fmt.Sprintf("Found %d duplicate rows (%.2f%%)", dupes, pct))
	}

	lines = append(lines, "")
	return lines
}

func cleaningComparison(original, cleaned *domain.Table) []string {
	row := func(metric string, before, after int) string {
		return fmt.Sprintf("%-30s %-15d %-15d %+d", metric, before, after, after-before)
	}
	return []string{
		"CLEANING RESULTS",
		rule("-"),
		fmt.Sprintf("%-30s %-15s %-15s %s", "Metric", "Before", "After", "Change"),
		rule("-"),
		row("Rows", original.NumRows(), cleaned.NumRows()),
		row("Columns", original.NumCols(), cleaned.NumCols()),
		row("Missing Values", original.MissingCells(), cleaned.MissingCells()),
		row("Duplicates", duplicateCount(original), duplicateCount(cleaned)),
		"",
	}
}

func recommendations(t *domain.Table) []string {
	lines := []string{"RECOMMENDATIONS", rule("-")}

	var recs []string
	if duplicateCount(t) > 0 {
		recs = append(recs, "- Remove duplicate rows to ensure data uniqueness")
	}

	missingCols, emptyCols, whitespaceCols := 0, 0, 0
	for i := range t.Columns {
		col := &t.Columns[i]
		missing := col.MissingCount()
		if missing > 0 {
			missingCols++
		}
		if len(col.Cells) > 0 && missing == len(col.Cells) {
			emptyCols++
		}
		if col.Kind == domain.KindText && hasWhitespaceDefect(col) {
			whitespaceCols++
		}
	}
	if missingCols > 0 {
		recs = append(recs, fmt.Sprintf("- Handle missing values in %d columns", missingCols))
	}
	if emptyCols > 0 {
		recs = append(recs, fmt.Sprintf("- Remove %d completely empty columns", emptyCols))
	}
	if whitespaceCols > 0 {
		recs = append(recs, "- Trim whitespace from text columns")
	}

	if len(recs) == 0 {
		lines = append(lines, "No major data quality issues detected")
	} else {
		lines = append(lines, recs...)
	}

	lines = append(lines, "")
	return lines
}

func duplicateCount(t *domain.Table) int {
	rows := t.NumRows()
	seen := make(map[string]struct{}, rows)
	dupes := 0
	for i := 0; i < rows; i++ {
		key := t.RowKey(i)
		if _, ok := seen[key]; ok {
			dupes++
		} else {
			seen[key] = struct{}{}
		}
	}
	return dupes
}

func uniqueCount(col *domain.Column) int {
	seen := make(map[string]struct{}, len(col.Cells))
	for _, cell := range col.Cells {
		if cell.IsMissing() {
			continue
		}
		seen[cell.Key()] = struct{}{}
	}
	return len(seen)
}

func hasWhitespaceDefect(col *domain.Column) bool {
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
