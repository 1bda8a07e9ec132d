// Package cleaner applies ordered, configurable transformations to tables,
// producing a new table plus a changelog of every transformation applied.
//
// The default pipeline runs its steps in a fixed order regardless of which
// are enabled: column-name standardization, whitespace trimming, duplicate
// removal, missing-value handling, then unconditional empty-column removal.
// The input table is never mutated; Clean operates on a deep copy so the
// original stays available for before/after comparison.
//
// Outlier removal, type coercion, and date normalization are standalone
// operations invoked explicitly rather than as pipeline steps. Conversion
// failures are isolated per column: an unconvertible cell becomes missing,
// and a column that cannot be processed at all is left in its prior state
// and logged, never aborting the rest of the call.
package cleaner
