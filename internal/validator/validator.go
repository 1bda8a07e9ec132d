package validator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"tableqc/internal/infrastructure"
	"tableqc/pkg/contracts/domain"
)

// Options declares the caller's expectations for a table.
type Options struct {
	// RequiredColumns must all be present; absences produce a single
	// error finding naming every missing column.
	RequiredColumns []string
	// ExpectedKinds maps column name to expected kind; mismatches produce
	// one warning finding per column, never an error.
	ExpectedKinds map[string]domain.Kind
}

// Validator inspects tables and records results into an optional shared
// History. Validation never mutates the table.
type Validator struct {
	logger  *slog.Logger
	history *History
}

// New creates a Validator. A nil logger falls back to slog.Default; a nil
// history disables record keeping.
func New(logger *slog.Logger, history *History) *Validator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Validator{logger: logger, history: history}
}

// kindCompatibility enumerates, per expected kind, the observed kinds that
// satisfy it without a warning. Integer and float never satisfy each other;
// text accepts untyped columns.
var kindCompatibility = map[domain.Kind][]domain.Kind{
	domain.KindInteger: {domain.KindInteger},
	domain.KindFloat:   {domain.KindFloat},
	domain.KindText:    {domain.KindText, domain.KindUnknown},
	domain.KindBool:    {domain.KindBool},
	domain.KindDate:    {domain.KindDate},
	domain.KindUnknown: {domain.KindUnknown, domain.KindInteger, domain.KindFloat, domain.KindText, domain.KindBool, domain.KindDate},
}

func kindsCompatible(expected, actual domain.Kind) bool {
	for _, k := range kindCompatibility[expected] {
		if k == actual {
			return true
		}
	}
	return false
}

// Validate checks a table against the options and structural heuristics.
// A zero-row table fails fast with a single error finding and no further
// checks. The verdict is pass iff no error finding was generated.
func (v *Validator) Validate(ctx context.Context, t *domain.Table, opts Options) domain.ValidationResult {
	logger := v.logger.With(slog.String("file", t.Source))
	logger.InfoContext(ctx, "validating table",
		slog.Int("rows", t.NumRows()),
		slog.Int("columns", t.NumCols()))

	var findings []domain.Finding

	if t.NumRows() == 0 {
		findings = append(findings, domain.Finding{
			Severity: domain.SeverityError,
			Message:  "table is empty (0 rows)",
		})
		logger.ErrorContext(ctx, "validation failed", slog.String("reason", "empty table"))
		result := domain.ValidationResult{Valid: false, Findings: findings, Score: 0}
		v.record(ctx, t, result)
		return result
	}

	findings = append(findings, v.checkRequiredColumns(t, opts.RequiredColumns)...)
	findings = append(findings, v.checkExpectedKinds(t, opts.ExpectedKinds)...)

	p := profileTable(t)
	findings = append(findings, structuralFindings(p)...)

	result := domain.ValidationResult{
		Valid:    countErrors(findings) == 0,
		Findings: findings,
		Score:    scoreProfile(p),
	}

	if result.Valid {
		logger.InfoContext(ctx, "validation passed",
			slog.Int("warnings", len(result.Warnings())),
			slog.Int("score", result.Score))
	} else {
		logger.ErrorContext(ctx, "validation failed",
			slog.Int("errors", len(result.Errors())),
			slog.Int("warnings", len(result.Warnings())))
	}

	v.record(ctx, t, result)
	return result
}

func (v *Validator) checkRequiredColumns(t *domain.Table, required []string) []domain.Finding {
	if len(required) == 0 {
		return nil
	}
	present := make(map[string]struct{}, t.NumCols())
	for _, name := range t.ColumnNames() {
		present[name] = struct{}{}
	}
	var missing []string
	for _, name := range required {
		if _, ok := present[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return []domain.Finding{{
		Severity: domain.SeverityError,
		Message:  fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", ")),
	}}
}

func (v *Validator) checkExpectedKinds(t *domain.Table, expected map[string]domain.Kind) []domain.Finding {
	if len(expected) == 0 {
		return nil
	}
	var findings []domain.Finding
	// Iterate columns in table order so finding order is deterministic.
	for i := range t.Columns {
		col := &t.Columns[i]
		want, ok := expected[col.Name]
		if !ok {
			continue
		}
		if !kindsCompatible(want, col.Kind) {
			findings = append(findings, domain.Finding{
				Severity: domain.SeverityWarning,
				Column:   col.Name,
				Message:  fmt.Sprintf("column %q kind mismatch: expected %s, got %s", col.Name, want, col.Kind),
			})
		}
	}
	return findings
}

// structuralFindings converts a defect profile into warning findings, in the
// fixed order duplicates, missing values, empty columns, whitespace.
func structuralFindings(p profile) []domain.Finding {
	var findings []domain.Finding

	if p.DuplicateRows > 0 {
		findings = append(findings, domain.Finding{
			Severity: domain.SeverityWarning,
			Message:  fmt.Sprintf("found %d duplicate rows (%.1f%%)", p.DuplicateRows, p.DuplicatePercent),
		})
	}

	if len(p.MissingByColumn) > 0 {
		var b strings.Builder
		b.WriteString("missing values detected:")
		for _, m := range p.MissingByColumn {
			fmt.Fprintf(&b, "\n  - %s: %d (%.1f%%)", m.Name, m.Count, m.Percent)
		}
		findings = append(findings, domain.Finding{
			Severity: domain.SeverityWarning,
			Message:  b.String(),
		})
	}

	if len(p.EmptyColumns) > 0 {
		findings = append(findings, domain.Finding{
			Severity: domain.SeverityWarning,
			Message:  fmt.Sprintf("completely empty columns: %s", strings.Join(p.EmptyColumns, ", ")),
		})
	}

	if len(p.WhitespaceColumns) > 0 {
		findings = append(findings, domain.Finding{
			Severity: domain.SeverityWarning,
			Message:  fmt.Sprintf("whitespace issues in columns: %s", strings.Join(p.WhitespaceColumns, ", ")),
		})
	}

	return findings
}

func countErrors(findings []domain.Finding) int {
	n := 0
	for _, f := range findings {
		if f.Severity == domain.SeverityError {
			n++
		}
	}
	return n
}

func (v *Validator) record(ctx context.Context, t *domain.Table, result domain.ValidationResult) {
	if v.history == nil {
		return
	}
	v.history.Append(domain.ValidationRecord{
		RunID:     infrastructure.GetRunID(ctx),
		File:      t.Source,
		Rows:      t.NumRows(),
		Columns:   t.NumCols(),
		Valid:     result.Valid,
		Score:     result.Score,
		Findings:  result.Findings,
		Timestamp: time.Now(),
	})
}
