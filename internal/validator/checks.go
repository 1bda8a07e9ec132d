package validator

import (
	"fmt"
	"regexp"
	"time"

	"tableqc/pkg/contracts/domain"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateNumericRange checks that every non-missing value of a numeric
// column falls within [min, max]. A nil bound disables that side.
func (v *Validator) ValidateNumericRange(t *domain.Table, column string, min, max *float64) (bool, string) {
	col := t.Column(column)
	if col == nil {
		return false, fmt.Sprintf("column %q not found", column)
	}
	if !col.Kind.IsNumeric() {
		return false, fmt.Sprintf("column %q is not numeric", column)
	}

	belowMin, aboveMax := 0, 0
	for _, cell := range col.Cells {
		f, ok := cell.AsFloat()
		if !ok {
			continue
		}
		if min != nil && f < *min {
			belowMin++
		}
		if max != nil && f > *max {
			aboveMax++
		}
	}

	if belowMin > 0 {
		return false, fmt.Sprintf("column %q has %d values below %v", column, belowMin, *min)
	}
	if aboveMax > 0 {
		return false, fmt.Sprintf("column %q has %d values above %v", column, aboveMax, *max)
	}
	return true, ""
}

// ValidateEmailFormat counts non-missing values in a column that do not look
// like email addresses. Returns true when every value matches.
func (v *Validator) ValidateEmailFormat(t *domain.Table, column string) (bool, int) {
	col := t.Column(column)
	if col == nil {
		return false, 0
	}

	invalid := 0
	for _, cell := range col.Cells {
		if cell.IsMissing() {
			continue
		}
		if !emailPattern.MatchString(cell.String()) {
			invalid++
		}
	}
	return invalid == 0, invalid
}

// ValidateDateFormat counts non-missing values in a column that do not parse
// under the given layout. Returns true when every value parses.
func (v *Validator) ValidateDateFormat(t *domain.Table, column, layout string) (bool, int) {
	col := t.Column(column)
	if col == nil {
		return false, 0
	}

	invalid := 0
	for _, cell := range col.Cells {
		if cell.IsMissing() {
			continue
		}
		if _, err := time.Parse(layout, cell.String()); err != nil {
			invalid++
		}
	}
	return invalid == 0, invalid
}
