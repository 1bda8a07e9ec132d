package reporter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tableqc/pkg/contracts/domain"
)

func TestValidationSummaryEmpty(t *testing.T) {
	assert.Equal(t, "No validations performed yet", ValidationSummary(nil))
}

func TestValidationSummary(t *testing.T) {
	records := []domain.ValidationRecord{
		{
			File: "good.csv", Rows: 10, Columns: 3, Valid: true, Score: 95,
			Timestamp: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			File: "bad.csv", Rows: 5, Columns: 2, Valid: false, Score: 40,
			Timestamp: time.Date(2026, 8, 1, 12, 5, 0, 0, time.UTC),
			Findings: []domain.Finding{
				{Severity: domain.SeverityError, Message: "missing required columns: email"},
				{Severity: domain.SeverityWarning, Message: "found 2 duplicate rows (40.0%)"},
			},
		},
	}

	out := ValidationSummary(records)

	assert.Contains(t, out, "VALIDATION SUMMARY")
	assert.Contains(t, out, "File: good.csv")
	assert.Contains(t, out, "Status: PASSED")
	assert.Contains(t, out, "Score: 95/100")
	assert.Contains(t, out, "File: bad.csv")
	assert.Contains(t, out, "Status: FAILED")
	assert.Contains(t, out, "Errors:")
	assert.Contains(t, out, "x missing required columns: email")
	assert.Contains(t, out, "Warnings:")
	assert.Contains(t, out, "! found 2 duplicate rows")
	assert.Contains(t, out, "Timestamp: 2026-08-01 12:00:00")
}

func TestCleaningSummaryEmpty(t *testing.T) {
	assert.Equal(t, "No cleaning operations performed", CleaningSummary(domain.CleaningReport{}))
}

func TestCleaningSummary(t *testing.T) {
	report := domain.CleaningReport{
		RowsBefore: 10, RowsAfter: 7, ColsBefore: 4, ColsAfter: 3,
		Entries: []domain.ChangelogEntry{
			{Operation: domain.OpTrimWhitespace, Detail: "cleaned whitespace in 2 columns"},
			{Operation: domain.OpDropDuplicates, Detail: "removed 3 duplicate rows (kept first)"},
			{Operation: domain.OpDropEmptyColumns},
		},
	}

	out := CleaningSummary(report)

	assert.Contains(t, out, "CLEANING OPERATIONS SUMMARY")
	assert.Contains(t, out, "1. cleaned whitespace in 2 columns")
	assert.Contains(t, out, "2. removed 3 duplicate rows (kept first)")
	// An entry without detail falls back to its operation name.
	assert.Contains(t, out, "3. "+domain.OpDropEmptyColumns)
	assert.Contains(t, out, "Rows: 10 -> 7, Columns: 4 -> 3")
}
