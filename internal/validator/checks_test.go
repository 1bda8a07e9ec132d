package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tableqc/pkg/contracts/domain"
)

func floatPtr(f float64) *float64 { return &f }

func TestValidateNumericRange(t *testing.T) {
	v := New(testLogger(), nil)
	tbl := table(
		intCol("age", 18, 35, 70),
		textCol("name", "a", "b", "c"),
	)

	tests := []struct {
		name    string
		column  string
		min     *float64
		max     *float64
		ok      bool
		message string
	}{
		{name: "within bounds", column: "age", min: floatPtr(0), max: floatPtr(120), ok: true},
		{name: "below minimum", column: "age", min: floatPtr(21), ok: false, message: "below"},
		{name: "above maximum", column: "age", max: floatPtr(65), ok: false, message: "above"},
		{name: "open-ended bounds", column: "age", ok: true},
		{name: "missing column", column: "salary", ok: false, message: "not found"},
		{name: "non-numeric column", column: "name", ok: false, message: "not numeric"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, msg := v.ValidateNumericRange(tbl, tt.column, tt.min, tt.max)
			assert.Equal(t, tt.ok, ok)
			if tt.message != "" {
				assert.Contains(t, msg, tt.message)
			}
		})
	}
}

func TestValidateNumericRangeSkipsMissing(t *testing.T) {
	v := New(testLogger(), nil)
	tbl := table(domain.Column{Name: "n", Kind: domain.KindInteger, Cells: []domain.Value{
		domain.Int(5), domain.Missing(),
	}})

	ok, _ := v.ValidateNumericRange(tbl, "n", floatPtr(0), floatPtr(10))
	assert.True(t, ok)
}

func TestValidateEmailFormat(t *testing.T) {
	v := New(testLogger(), nil)

	tbl := table(domain.Column{Name: "email", Kind: domain.KindText, Cells: []domain.Value{
		domain.Text("user@example.com"),
		domain.Text("other@sub.domain.org"),
		domain.Missing(),
		domain.Text("not-an-email"),
		domain.Text("missing@tld"),
	}})

	ok, invalid := v.ValidateEmailFormat(tbl, "email")
	assert.False(t, ok)
	assert.Equal(t, 2, invalid)

	ok, invalid = v.ValidateEmailFormat(tbl, "absent")
	assert.False(t, ok)
	assert.Equal(t, 0, invalid)
}

func TestValidateDateFormat(t *testing.T) {
	v := New(testLogger(), nil)

	tbl := table(domain.Column{Name: "when", Kind: domain.KindText, Cells: []domain.Value{
		domain.Text("2024-01-15"),
		domain.Text("2024-13-45"),
		domain.Missing(),
		domain.Text("15/01/2024"),
	}})

	ok, invalid := v.ValidateDateFormat(tbl, "when", "2006-01-02")
	assert.False(t, ok)
	assert.Equal(t, 2, invalid)

	clean := table(domain.Column{Name: "when", Kind: domain.KindText, Cells: []domain.Value{
		domain.Text("2024-01-15"),
	}})
	ok, invalid = v.ValidateDateFormat(clean, "when", "2006-01-02")
	assert.True(t, ok)
	assert.Equal(t, 0, invalid)
}
