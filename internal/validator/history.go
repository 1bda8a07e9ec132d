package validator

import (
	"sync"

	"tableqc/pkg/contracts/domain"
)

// History is a caller-owned accumulator of validation records. Each run owns
// its own instance; appends are safe across concurrent Validate calls.
type History struct {
	mu      sync.Mutex
	records []domain.ValidationRecord
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{}
}

// Append adds a record. Safe for concurrent use.
func (h *History) Append(rec domain.ValidationRecord) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, rec)
}

// Records returns a copy of the accumulated records in append order.
func (h *History) Records() []domain.ValidationRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]domain.ValidationRecord, len(h.records))
	copy(out, h.records)
	return out
}

// Len returns the number of records.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.records)
}
