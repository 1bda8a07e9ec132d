package validator

import "tableqc/pkg/contracts/domain"

// Score deductions. The formula is a fixed contract: existing reports
// depend on it producing the same numbers.
const (
	missingPenaltyCap   = 30.0
	duplicatePenaltyCap = 20.0
	emptyColumnPenalty  = 5.0
	whitespacePenalty   = 2.0
)

// Score computes the 0-100 quality score for a table, independent of the
// pass/fail verdict. A zero-row table scores 0.
func Score(t *domain.Table) int {
	if t.NumRows() == 0 {
		return 0
	}
	return scoreProfile(profileTable(t))
}

func scoreProfile(p profile) int {
	score := 100.0

	score -= minFloat(p.MissingPercent, missingPenaltyCap)
	score -= minFloat(p.DuplicatePercent, duplicatePenaltyCap)
	score -= emptyColumnPenalty * float64(len(p.EmptyColumns))
	score -= whitespacePenalty * float64(len(p.WhitespaceColumns))

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return int(score)
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
