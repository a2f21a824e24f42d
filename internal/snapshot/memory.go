package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStore keeps snapshots in process memory. Used in tests and when no
// redis address is configured; state then lives only as long as the process.
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[string][]byte)}
}

func (m *MemoryStore) Save(_ context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal snapshot failed: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[key] = data
	return nil
}

func (m *MemoryStore) Load(_ context.Context, key string, dst any) error {
	m.mu.RLock()
	data, ok := m.slots[key]
	m.mu.RUnlock()

	if !ok {
		return ErrNoSnapshot
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("unmarshal snapshot failed: %w", err)
	}
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.slots, key)
	return nil
}
