package domain

import "time"

// Severity classifies a validation finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is a classified validation message. Column is empty for findings
// that concern the table as a whole.
type Finding struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Column   string   `json:"column,omitempty"`
}

// ValidationResult is the outcome of validating one table. Valid is true
// iff no error-severity finding was generated; warnings never flip it.
// Score is computed independently of the verdict.
type ValidationResult struct {
	Valid    bool      `json:"valid"`
	Findings []Finding `json:"findings"`
	Score    int       `json:"score"`
}

// Errors returns the error-severity findings in order.
func (r ValidationResult) Errors() []Finding {
	return r.filter(SeverityError)
}

// Warnings returns the warning-severity findings in order.
func (r ValidationResult) Warnings() []Finding {
	return r.filter(SeverityWarning)
}

func (r ValidationResult) filter(s Severity) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Severity == s {
			out = append(out, f)
		}
	}
	return out
}

// ValidationRecord is one entry of a validation history: a summary of a
// single Validate call, later rendered into a multi-file summary.
type ValidationRecord struct {
	RunID     string    `json:"run_id"`
	File      string    `json:"file"`
	Rows      int       `json:"rows"`
	Columns   int       `json:"columns"`
	Valid     bool      `json:"valid"`
	Score     int       `json:"score"`
	Findings  []Finding `json:"findings"`
	Timestamp time.Time `json:"timestamp"`
}

// Cleaning operation names recorded in changelog entries.
const (
	OpStandardizeNames = "standardize_column_names"
	OpTrimWhitespace   = "trim_whitespace"
	OpDropDuplicates   = "drop_duplicates"
	OpHandleMissing    = "handle_missing"
	OpDropEmptyColumns = "drop_empty_columns"
	OpRemoveOutliers   = "remove_outliers"
	OpConvertColumn    = "convert_column"
	OpNormalizeDates   = "normalize_dates"
)

// ChangelogEntry records one transformation applied during cleaning and its
// effect size. Counts that do not apply to an operation stay zero.
type ChangelogEntry struct {
	Operation string `json:"operation"`
	Detail    string `json:"detail,omitempty"`
	Rows      int    `json:"rows_affected,omitempty"`
	Columns   int    `json:"columns_affected,omitempty"`
	Cells     int    `json:"cells_affected,omitempty"`
}

// CleaningReport is the ordered changelog of a cleaning run.
type CleaningReport struct {
	Entries    []ChangelogEntry `json:"entries"`
	RowsBefore int              `json:"rows_before"`
	RowsAfter  int              `json:"rows_after"`
	ColsBefore int              `json:"columns_before"`
	ColsAfter  int              `json:"columns_after"`
}

// Add appends an entry to the changelog.
func (r *CleaningReport) Add(e ChangelogEntry) {
	r.Entries = append(r.Entries, e)
}
