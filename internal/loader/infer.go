package loader

import (
	"strconv"
	"strings"
	"time"

	"tableqc/pkg/contracts/domain"
)

// missingMarkers are the raw forms (trimmed, lowercased) treated as the
// explicit missing marker.
var missingMarkers = map[string]struct{}{
	"":     {},
	"na":   {},
	"n/a":  {},
	"null": {},
	"nan":  {},
	"none": {},
}

// candidateLayouts are tried during date-kind inference, most specific first.
var candidateLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"02-Jan-2006",
}

func isMissingMarker(raw string) bool {
	_, ok := missingMarkers[strings.ToLower(strings.TrimSpace(raw))]
	return ok
}

// inferKind decides a column kind from its raw values. Every non-missing
// value must fit the kind; otherwise the column degrades to text. A column
// of only missing markers stays unknown. For date columns the detected
// layout is returned so all cells parse consistently.
func inferKind(raw []string) (domain.Kind, string) {
	var values []string
	for _, s := range raw {
		if !isMissingMarker(s) {
			values = append(values, strings.TrimSpace(s))
		}
	}
	if len(values) == 0 {
		return domain.KindUnknown, ""
	}

	if allOf(values, isInteger) {
		return domain.KindInteger, ""
	}
	if allOf(values, isFloat) {
		return domain.KindFloat, ""
	}
	if allOf(values, isBool) {
		return domain.KindBool, ""
	}
	if layout := commonDateLayout(values); layout != "" {
		return domain.KindDate, layout
	}
	return domain.KindText, ""
}

func allOf(values []string, pred func(string) bool) bool {
	for _, v := range values {
		if !pred(v) {
			return false
		}
	}
	return true
}

func isInteger(s string) bool {
	_, err := strconv.ParseInt(s, 10, 64)
	return err == nil
}

func isFloat(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

func isBool(s string) bool {
	switch strings.ToLower(s) {
	case "true", "false":
		return true
	}
	return false
}

// commonDateLayout returns the first candidate layout under which every
// value parses, or empty when none fits.
func commonDateLayout(values []string) string {
layoutLoop:
	for _, layout := range candidateLayouts {
		for _, v := range values {
			if _, err := time.Parse(layout, v); err != nil {
				continue layoutLoop
			}
		}
		return layout
	}
	return ""
}

// parseCell converts one raw value into a typed cell. Text cells keep the
// raw form untrimmed so whitespace defects stay observable.
func parseCell(raw string, kind domain.Kind, layout string) domain.Value {
	if isMissingMarker(raw) {
		return domain.Missing()
	}
	s := strings.TrimSpace(raw)

	switch kind {
	case domain.KindInteger:
		i, _ := strconv.ParseInt(s, 10, 64)
		return domain.Int(i)
	case domain.KindFloat:
		f, _ := strconv.ParseFloat(s, 64)
		return domain.Float(f)
	case domain.KindBool:
		return domain.Bool(strings.EqualFold(s, "true"))
	case domain.KindDate:
		ts, _ := time.Parse(layout, s)
		return domain.Date(ts, layout)
	default:
		return domain.Text(raw)
	}
}
