package storage

import (
	"context"
	"sync"
)

type memoryKey struct {
	shopper string
	ns      Namespace
}

// Memory is an in-process Store. Used by tests and local development so the
// domain stores can run without Postgres.
type Memory struct {
	mu   sync.RWMutex
	data map[memoryKey][]byte
}

func NewMemory() *Memory {
	return &Memory{data: make(map[memoryKey][]byte)}
}

func (m *Memory) Get(_ context.Context, shopper string, ns Namespace) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	body, ok := m.data[memoryKey{shopper, ns}]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(body))
	copy(out, body)
	return out, nil
}

func (m *Memory) Put(_ context.Context, shopper string, ns Namespace, body []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(body))
	copy(stored, body)
	m.data[memoryKey{shopper, ns}] = stored
	return nil
}

func (m *Memory) Delete(_ context.Context, shopper string, ns Namespace) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, memoryKey{shopper, ns})
	return nil
}

// Has reports whether a snapshot exists. Test helper.
func (m *Memory) Has(shopper string, ns Namespace) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.data[memoryKey{shopper, ns}]
	return ok
}
