package traveltime

import (
	"container/list"
	"context"
	"sync"

	"github.com/jordi-domingo/webdc3/pkg/contracts"
)

// Memo wraps a Table with an LRU memo keyed by the exact (origin, site)
// pair. Predictions are pure, so entries never expire; they only age out
// by capacity. Requests fanning many channels of one station hit the memo
// for every channel after the first. Errors are not cached.
type Memo struct {
	inner    Table
	capacity int

	mu      sync.Mutex
	entries map[memoKey]*list.Element
	lru     *list.List
}

type memoKey struct {
	origin contracts.Origin
	site   contracts.Site
}

type memoEntry struct {
	key      memoKey
	arrivals []contracts.PhaseArrival
}

// NewMemo wraps inner with a memo holding up to capacity pairs
// (default 1024).
func NewMemo(inner Table, capacity int) *Memo {
	if capacity <= 0 {
		capacity = 1024
	}
	return &Memo{
		inner:    inner,
		capacity: capacity,
		entries:  make(map[memoKey]*list.Element),
		lru:      list.New(),
	}
}

// Arrivals implements Table.
func (m *Memo) Arrivals(ctx context.Context, origin contracts.Origin, site contracts.Site) ([]contracts.PhaseArrival, error) {
	key := memoKey{origin: origin, site: site}

	m.mu.Lock()
	if el, ok := m.entries[key]; ok {
		m.lru.MoveToFront(el)
		arrivals := el.Value.(*memoEntry).arrivals
		m.mu.Unlock()
		return arrivals, nil
	}
	m.mu.Unlock()

	arrivals, err := m.inner.Arrivals(ctx, origin, site)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if el, ok := m.entries[key]; ok {
		// Lost a race with a concurrent computation of the same pair.
		m.lru.MoveToFront(el)
		return el.Value.(*memoEntry).arrivals, nil
	}

	m.entries[key] = m.lru.PushFront(&memoEntry{key: key, arrivals: arrivals})
	if m.lru.Len() > m.capacity {
		oldest := m.lru.Back()
		if oldest != nil {
			m.lru.Remove(oldest)
			delete(m.entries, oldest.Value.(*memoEntry).key)
		}
	}
	return arrivals, nil
}

// Len reports how many pairs are memoized.
func (m *Memo) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
