package domain

import (
	"strconv"
	"time"
)

// DefaultDateLayout is the layout used to render date cells unless a column
// has been normalized to a different output layout.
const DefaultDateLayout = "2006-01-02"

// Value is a single table cell: either a typed value or an explicit missing
// marker. The zero Value is missing.
type Value struct {
	kind    Kind
	present bool
	str     string
	i       int64
	f       float64
	b       bool
	t       time.Time
	layout  string
}

// Missing returns the explicit missing marker.
func Missing() Value {
	return Value{}
}

// Int creates an integer cell.
func Int(v int64) Value {
	return Value{kind: KindInteger, present: true, i: v}
}

// Float creates a float cell.
func Float(v float64) Value {
	return Value{kind: KindFloat, present: true, f: v}
}

// Text creates a text cell.
func Text(s string) Value {
	return Value{kind: KindText, present: true, str: s}
}

// Bool creates a boolean cell.
func Bool(v bool) Value {
	return Value{kind: KindBool, present: true, b: v}
}

// Date creates a date cell rendered with the given layout.
// An empty layout falls back to DefaultDateLayout.
func Date(t time.Time, layout string) Value {
	if layout == "" {
		layout = DefaultDateLayout
	}
	return Value{kind: KindDate, present: true, t: t, layout: layout}
}

// IsMissing reports whether the cell is the missing marker.
func (v Value) IsMissing() bool {
	return !v.present
}

// Kind returns the cell's kind. Missing cells report KindUnknown.
func (v Value) Kind() Kind {
	if !v.present {
		return KindUnknown
	}
	return v.kind
}

// Int64 returns the integer value. Only meaningful for KindInteger cells.
func (v Value) Int64() int64 {
	return v.i
}

// BoolValue returns the boolean value. Only meaningful for KindBool cells.
func (v Value) BoolValue() bool {
	return v.b
}

// Time returns the date value. Only meaningful for KindDate cells.
func (v Value) Time() time.Time {
	return v.t
}

// AsFloat returns the cell as a float64 when it holds a numeric value.
func (v Value) AsFloat() (float64, bool) {
	if !v.present {
		return 0, false
	}
	switch v.kind {
	case KindInteger:
		return float64(v.i), true
	case KindFloat:
		return v.f, true
	default:
		return 0, false
	}
}

// String renders the cell in its canonical text form. Missing cells render
// as the empty string.
func (v Value) String() string {
	if !v.present {
		return ""
	}
	switch v.kind {
	case KindInteger:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindDate:
		return v.t.Format(v.layout)
	default:
		return v.str
	}
}

// Key returns a canonical string that distinguishes cells by kind, value and
// missing status. Used for exact duplicate-row detection.
func (v Value) Key() string {
	if !v.present {
		return "\x00"
	}
	switch v.kind {
	case KindDate:
		return string(v.kind) + ":" + v.t.Format(time.RFC3339Nano)
	default:
		return string(v.kind) + ":" + v.String()
	}
}

// Equal reports whether two cells hold the same value, treating two missing
// markers as equal.
func (v Value) Equal(other Value) bool {
	return v.Key() == other.Key()
}
