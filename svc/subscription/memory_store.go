package subscription

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/storykit/pkg/tier"
)

// MemoryStore is a Store for tests and local runs without a database.
type MemoryStore struct {
	mu     sync.RWMutex
	subs   map[uuid.UUID]Subscription
	bypass map[uuid.UUID]DevBypass
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		subs:   make(map[uuid.UUID]Subscription),
		bypass: make(map[uuid.UUID]DevBypass),
	}
}

func (m *MemoryStore) Get(_ context.Context, userID uuid.UUID) (*Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sub, ok := m.subs[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &sub, nil
}

func (m *MemoryStore) Insert(_ context.Context, sub *Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.subs[sub.UserID]; ok {
		return ErrAlreadyExists
	}
	m.subs[sub.UserID] = *sub
	return nil
}

func (m *MemoryStore) SetTier(_ context.Context, userID uuid.UUID, t tier.Tier, status Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	sub, ok := m.subs[userID]
	if !ok {
		sub = *Default(userID)
	}
	sub.Tier = t
	sub.Status = status
	sub.UpdatedAt = time.Now().UTC()
	m.subs[userID] = sub
	return nil
}

func (m *MemoryStore) GetDevBypass(_ context.Context, userID uuid.UUID) (*DevBypass, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.bypass[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &b, nil
}

func (m *MemoryStore) UpsertDevBypass(_ context.Context, b *DevBypass) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bypass[b.UserID] = *b
	return nil
}
