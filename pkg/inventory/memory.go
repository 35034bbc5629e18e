package inventory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jordi-domingo/webdc3/pkg/contracts"
)

// Memory is an in-process inventory, the default backend for tests and
// single-node deployments. Safe for concurrent readers; Add may not race
// with lookups.
type Memory struct {
	mu     sync.RWMutex
	epochs map[contracts.ChannelKey][]StreamEpoch
}

// NewMemory returns an empty in-memory inventory.
func NewMemory() *Memory {
	return &Memory{epochs: make(map[contracts.ChannelKey][]StreamEpoch)}
}

// Add inserts epochs, keeping each channel's epochs ordered by start.
func (m *Memory) Add(epochs ...StreamEpoch) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range epochs {
		list := append(m.epochs[e.Key], e)
		sort.Slice(list, func(i, j int) bool { return list[i].Start.Before(list[j].Start) })
		m.epochs[e.Key] = list
	}
}

// StreamInfo implements Cache.
func (m *Memory) StreamInfo(ctx context.Context, start, end time.Time, key contracts.ChannelKey) (*contracts.StreamInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, e := range m.epochs[key] {
		if e.Covers(start, end) {
			return e.Info(start, end), nil
		}
	}
	return nil, nil
}

// List implements Cache.
func (m *Memory) List(ctx context.Context, start, end time.Time, pattern contracts.ChannelKey) ([]StreamEpoch, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []StreamEpoch
	for key, epochs := range m.epochs {
		if !matches(key, pattern) {
			continue
		}
		for _, e := range epochs {
			if e.Covers(start, end) {
				out = append(out, e)
			}
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Key != out[j].Key {
			return out[i].Key.String() < out[j].Key.String()
		}
		return out[i].Start.Before(out[j].Start)
	})
	return out, nil
}
