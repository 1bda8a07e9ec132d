package cleaner

import "tableqc/pkg/contracts/domain"

// columnFloats collects the non-missing numeric values of a column.
func columnFloats(col *domain.Column) []float64 {
	out := make([]float64, 0, len(col.Cells))
	for _, cell := range col.Cells {
		if f, ok := cell.AsFloat(); ok {
			out = append(out, f)
		}
	}
	return out
}
