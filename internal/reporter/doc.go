// Package reporter renders validation results, cleaning changelogs and
// table statistics into plain-text artifacts. It only reads the structures
// the engine produced; it never re-runs validation or cleaning logic beyond
// the descriptive counts shown in each section.
package reporter
