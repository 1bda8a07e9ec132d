// Package validator inspects tables against declared expectations and
// structural heuristics. It produces a pass/fail verdict, a list of
// classified findings, and a 0-100 quality score.
//
// Validation never mutates the table. Error-severity findings (empty table,
// missing required columns) fail the verdict; warning-severity findings
// (duplicates, missing values, whitespace defects, kind mismatches) never do.
// The score is computed independently of the verdict, so a table can score
// low and still pass.
//
// A History accumulator can be shared across calls to collect one
// ValidationRecord per validated table; it is safe for concurrent use.
package validator
