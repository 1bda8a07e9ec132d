package reporter

import (
	"fmt"
	"strings"

	"tableqc/pkg/contracts/domain"
)

// ValidationSummary renders a multi-file summary from accumulated
// validation records.
func ValidationSummary(records []domain.ValidationRecord) string {
	if len(records) == 0 {
		return "No validations performed yet"
	}

	var lines []string
	lines = append(lines, rule("="), "VALIDATION SUMMARY", rule("="), "")

	for _, rec := range records {
		status := "FAILED"
		if rec.Valid {
			status = "PASSED"
		}
		lines = append(lines,
			fmt.Sprintf("File: %s", rec.File),
			fmt.Sprintf("Timestamp: %s", rec.Timestamp.Format("2006-01-02 15:04:05")),
			fmt.Sprintf("Rows: %d", rec.Rows),
			fmt.Sprintf("Columns: %d", rec.Columns),
			fmt.Sprintf("Score: %d/100", rec.Score),
			fmt.Sprintf("Status: %s", status),
		)

		if errs := filterFindings(rec.Findings, domain.SeverityError); len(errs) > 0 {
			lines = append(lines, "", "Errors:")
			for _, f := range errs {
				lines = append(lines, fmt.Sprintf("  x %s", f.Message))
			}
		}
		if warns := filterFindings(rec.Findings, domain.SeverityWarning); len(warns) > 0 {
			lines = append(lines, "", "Warnings:")
			for _, f := range warns {
				lines = append(lines, fmt.Sprintf("  ! %s", f.Message))
			}
		}

		lines = append(lines, rule("-"), "")
	}

	return strings.Join(lines, "\n")
}

// CleaningSummary renders the ordered changelog of one cleaning run.
func CleaningSummary(report domain.CleaningReport) string {
	if len(report.Entries) == 0 {
		return "No cleaning operations performed"
	}

	var lines []string
	lines = append(lines, rule("="), "CLEANING OPERATIONS SUMMARY", rule("="), "")

	for i, entry := range report.Entries {
		detail := entry.Detail
		if detail == "" {
			detail = entry.Operation
		}
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, detail))
	}

	lines = append(lines, "",
		fmt.Sprintf("Rows: %d -> %d, Columns: %d -> %d",
			report.RowsBefore, report.RowsAfter, report.ColsBefore, report.ColsAfter),
		rule("="))

	return strings.Join(lines, "\n")
}

func filterFindings(findings []domain.Finding, severity domain.Severity) []domain.Finding {
	var out []domain.Finding
	for _, f := range findings {
		if f.Severity == severity {
			out = append(out, f)
		}
	}
	return out
}
