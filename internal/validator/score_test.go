package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tableqc/pkg/contracts/domain"
)

func TestScoreCleanTable(t *testing.T) {
	tbl := table(intCol("id", 1, 2, 3), textCol("name", "a", "b", "c"))
	assert.Equal(t, 100, Score(tbl))
}

func TestScoreEmptyTable(t *testing.T) {
	tbl := table(domain.Column{Name: "id", Kind: domain.KindInteger})
	assert.Equal(t, 0, Score(tbl))
}

func TestScoreDeductions(t *testing.T) {
	tests := []struct {
		name  string
		table *domain.Table
		want  int
	}{
		{
			// 1 missing of 4 cells = 25% -> 100 - 25 = 75.
			name: "missing percentage",
			table: table(
				domain.Column{Name: "a", Kind: domain.KindInteger, Cells: []domain.Value{
					domain.Int(1), domain.Missing(),
				}},
				intCol("b", 1, 2),
			),
			want: 75,
		},
		{
			// 2 duplicates of 4 rows = 50%, capped at 20 -> 80.
			name:  "duplicate penalty capped",
			table: table(textCol("x", "a", "a", "b", "b")),
			want:  80,
		},
		{
			// One fully-empty column: 5 for the column itself plus the
			// missing percentage it contributes (3 of 6 cells = 50%,
			// capped at 30) -> 100 - 30 - 5 = 65.
			name: "empty column",
			table: table(
				intCol("a", 1, 2, 3),
				domain.Column{Name: "gone", Kind: domain.KindUnknown, Cells: []domain.Value{
					domain.Missing(), domain.Missing(), domain.Missing(),
				}},
			),
			want: 65,
		},
		{
			// Two whitespace-afflicted text columns -> 100 - 2*2 = 96.
			name: "whitespace columns",
			table: table(
				textCol("a", " x", "y"),
				textCol("b", "x ", "y"),
			),
			want: 96,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.table))
		})
	}
}

func TestScoreNeverNegative(t *testing.T) {
	// Stack every deduction: heavy missing data, duplicates, many empty
	// columns. The score clamps at 0.
	cols := []domain.Column{textCol("dup", "a", "a", "a", "a")}
	for _, name := range []string{"e1", "e2", "e3", "e4", "e5", "e6", "e7", "e8", "e9", "e10", "e11", "e12", "e13", "e14", "e15"} {
		cols = append(cols, domain.Column{Name: name, Kind: domain.KindUnknown, Cells: []domain.Value{
			domain.Missing(), domain.Missing(), domain.Missing(), domain.Missing(),
		}})
	}
	tbl := table(cols...)

	score := Score(tbl)
	assert.GreaterOrEqual(t, score, 0)
	assert.Equal(t, 0, score)
}

func TestScoreMonotonicInMissing(t *testing.T) {
	build := func(missing int) *domain.Table {
		cells := make([]domain.Value, 10)
		for i := range cells {
			if i < missing {
				cells[i] = domain.Missing()
			} else {
				cells[i] = domain.Int(int64(i))
			}
		}
		return table(domain.Column{Name: "v", Kind: domain.KindInteger, Cells: cells})
	}

	prev := Score(build(0))
	for missing := 1; missing < 10; missing++ {
		cur := Score(build(missing))
		assert.LessOrEqual(t, cur, prev, "score must not increase as missing data grows")
		prev = cur
	}
}
