// Package audit keeps a bounded in-memory record of product changes.
package audit

import (
	"sync"

	"github.com/fairyhunter13/versioned-product-api/internal/model"
)

// Journal holds the most recent change events and running totals per kind.
type Journal struct {
	mu     sync.RWMutex
	ring   []model.Event
	next   int
	full   bool
	counts map[model.EventKind]uint64
}

// NewJournal returns a journal keeping up to capacity events.
func NewJournal(capacity int) *Journal {
	if capacity <= 0 {
		capacity = 256
	}
	return &Journal{
		ring:   make([]model.Event, capacity),
		counts: make(map[model.EventKind]uint64),
	}
}

// Record stores ev, evicting the oldest entry when full.
func (j *Journal) Record(ev model.Event) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.ring[j.next] = ev
	j.next = (j.next + 1) % len(j.ring)
	if j.next == 0 {
		j.full = true
	}
	j.counts[ev.Kind]++
}

// Recent returns up to n events, newest first. n <= 0 returns all retained.
func (j *Journal) Recent(n int) []model.Event {
	j.mu.RLock()
	defer j.mu.RUnlock()
	size := j.next
	if j.full {
		size = len(j.ring)
	}
	if n <= 0 || n > size {
		n = size
	}
	out := make([]model.Event, 0, n)
	for i := 1; i <= n; i++ {
		idx := (j.next - i + len(j.ring)) % len(j.ring)
		out = append(out, j.ring[idx])
	}
	return out
}

// Counts returns a copy of the per-kind totals.
func (j *Journal) Counts() map[model.EventKind]uint64 {
	j.mu.RLock()
	defer j.mu.RUnlock()
	out := make(map[model.EventKind]uint64, len(j.counts))
	for k, v := range j.counts {
		out[k] = v
	}
	return out
}
