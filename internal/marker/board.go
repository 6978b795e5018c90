package marker

import (
	"sort"
	"sync"
)

// Board holds the current marker set of each namespace (typically one per
// submission or file). Replace swaps a namespace's set wholesale so markers
// never accumulate across runs. Board is safe for concurrent use.
type Board struct {
	mu  sync.RWMutex
	set map[string][]Marker
}

func NewBoard() *Board {
	return &Board{set: make(map[string][]Marker)}
}

// Replace clears ns and applies markers. An empty set removes ns.
func (b *Board) Replace(ns string, markers []Marker) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(markers) == 0 {
		delete(b.set, ns)
		return
	}
	b.set[ns] = append([]Marker(nil), markers...)
}

// Markers returns a copy of the markers applied to ns.
func (b *Board) Markers(ns string) []Marker {
	b.mu.RLock()
	defer b.mu.RUnlock()
	ms := b.set[ns]
	if len(ms) == 0 {
		return nil
	}
	return append([]Marker(nil), ms...)
}

// Clear removes ns.
func (b *Board) Clear(ns string) {
	b.Replace(ns, nil)
}

// Namespaces lists namespaces with at least one marker, sorted.
func (b *Board) Namespaces() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]string, 0, len(b.set))
	for ns := range b.set {
		out = append(out, ns)
	}
	sort.Strings(out)
	return out
}

// Len returns the total number of markers across namespaces.
func (b *Board) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	n := 0
	for _, ms := range b.set {
		n += len(ms)
	}
	return n
}
