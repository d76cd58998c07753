package feature

import (
	"context"
	"errors"
	"sync"
	"time"
)

// MemoryProvider keeps flags in process memory. Flags are loaded from
// configuration at startup, so nothing needs to survive a restart.
type MemoryProvider struct {
	flags map[string]*Flag
	mu    sync.RWMutex
}

// NewMemoryProvider returns a provider seeded with initialFlags. Nil entries are skipped.
func NewMemoryProvider(initialFlags ...*Flag) (*MemoryProvider, error) {
	p := &MemoryProvider{flags: make(map[string]*Flag, len(initialFlags))}
	for _, flag := range initialFlags {
		if flag == nil {
			continue
		}
		if err := p.SetFlag(context.Background(), flag); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (m *MemoryProvider) IsEnabled(ctx context.Context, flagName string) (bool, error) {
	m.mu.RLock()
	flag, exists := m.flags[flagName]
	m.mu.RUnlock()

	if !exists {
		return false, ErrFlagNotFound
	}
	if !flag.Enabled {
		return false, nil
	}
	if flag.Strategy == nil {
		return true, nil
	}
	return flag.Strategy.Evaluate(ctx)
}

func (m *MemoryProvider) GetFlag(_ context.Context, flagName string) (*Flag, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	flag, exists := m.flags[flagName]
	if !exists {
		return nil, ErrFlagNotFound
	}
	cp := *flag
	return &cp, nil
}

func (m *MemoryProvider) SetFlag(_ context.Context, flag *Flag) error {
	if flag == nil {
		return errors.Join(ErrInvalidFlag, errors.New("flag cannot be nil"))
	}
	if flag.Name == "" {
		return errors.Join(ErrInvalidFlag, errors.New("flag name cannot be empty"))
	}

	cp := *flag
	if cp.UpdatedAt.IsZero() {
		cp.UpdatedAt = time.Now()
	}

	m.mu.Lock()
	m.flags[cp.Name] = &cp
	m.mu.Unlock()
	return nil
}
