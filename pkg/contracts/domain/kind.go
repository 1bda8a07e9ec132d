package domain

import (
	"fmt"
	"strings"
)

// Kind identifies the declared or inferred data kind of a column.
type Kind string

const (
	KindUnknown Kind = "unknown"
	KindInteger Kind = "integer"
	KindFloat   Kind = "float"
	KindText    Kind = "text"
	KindBool    Kind = "boolean"
	KindDate    Kind = "date"
)

// IsNumeric reports whether the kind belongs to the numeric family.
func (k Kind) IsNumeric() bool {
	return k == KindInteger || k == KindFloat
}

// ParseKind converts a user-supplied kind name into a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "int", "integer":
		return KindInteger, nil
	case "float", "double", "number":
		return KindFloat, nil
	case "text", "string", "str":
		return KindText, nil
	case "bool", "boolean":
		return KindBool, nil
	case "date", "datetime":
		return KindDate, nil
	case "unknown", "":
		return KindUnknown, nil
	default:
		return KindUnknown, fmt.Errorf("unrecognized kind %q", s)
	}
}
