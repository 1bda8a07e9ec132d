// Package loader reads delimited files and spreadsheet sheets into tables.
//
// The loader owns the rectangularity guarantee: every table it returns has
// columns of equal length, with short spreadsheet rows padded by missing
// markers. A load failure surfaces as a single error, never as a partially
// populated table. Cell kinds are inferred per column from the observed
// values (integer, float, boolean, date, otherwise text); a fully empty
// column stays unknown.
package loader
