package dataset

import "sync"

// Holder hands the current table to the HTTP handlers and lets a reload
// swap in a fresh one. The table itself is never mutated; only the pointer
// changes.
type Holder struct {
	mu sync.RWMutex
	t  *Table
}

func NewHolder(t *Table) *Holder {
	return &Holder{t: t}
}

func (h *Holder) Get() *Table {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.t
}

func (h *Holder) Set(t *Table) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.t = t
}
