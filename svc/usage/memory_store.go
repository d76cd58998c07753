package usage

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/storykit/pkg/period"
)

// MemoryStore is a Store for tests and local runs.
type MemoryStore struct {
	mu       sync.Mutex
	counters map[memKey]*Counter
}

// memKey normalizes the window start so equal instants in different
// locations share a counter.
type memKey struct {
	userID   uuid.UUID
	resource Resource
	period   period.Period
	start    int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{counters: make(map[memKey]*Counter)}
}

func toMemKey(k Key) memKey {
	return memKey{userID: k.UserID, resource: k.Resource, period: k.Period, start: k.PeriodStart.UnixNano()}
}

func (m *MemoryStore) Get(_ context.Context, key Key) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.counters[toMemKey(key)]
	if !ok {
		return 0, ErrNotFound
	}
	return c.Count, nil
}

func (m *MemoryStore) Increment(_ context.Context, key Key, periodEnd *time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	mk := toMemKey(key)
	c, ok := m.counters[mk]
	if !ok {
		c = &Counter{Key: key, PeriodEnd: periodEnd}
		m.counters[mk] = c
	}
	c.Count++
	c.UpdatedAt = time.Now().UTC()
	return c.Count, nil
}

func (m *MemoryStore) List(_ context.Context, userID uuid.UUID) ([]Counter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []Counter
	for k, c := range m.counters {
		if k.userID == userID {
			out = append(out, *c)
		}
	}
	slices.SortFunc(out, func(a, b Counter) int {
		if c := b.PeriodStart.Compare(a.PeriodStart); c != 0 {
			return c
		}
		return cmp.Compare(a.Resource, b.Resource)
	})
	return out, nil
}
