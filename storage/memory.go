package storage

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/arloliu/vecio/errs"
)

// MemoryStore is an in-memory Store. It is safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string][]byte
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string][]byte)}
}

// Put stores a copy of data.
func (m *MemoryStore) Put(_ context.Context, name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records[name] = slices.Clone(data)

	return nil
}

// Get returns a copy of the stored record.
func (m *MemoryStore) Get(_ context.Context, name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.records[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errs.ErrNotFound, name)
	}

	return slices.Clone(data), nil
}

// Delete removes a record.
func (m *MemoryStore) Delete(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.records, name)

	return nil
}

// List returns all names matching the prefix.
func (m *MemoryStore) List(_ context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var names []string
	for name := range m.records {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	slices.Sort(names)

	return names, nil
}
