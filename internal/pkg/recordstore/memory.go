// Package recordstore provides an in-memory keyed record store that keeps
// insertion order for listing.
package recordstore

import (
	"errors"
	"sync"
)

var (
	ErrNotFound  = errors.New("recordstore: record not found")
	ErrDuplicate = errors.New("recordstore: duplicate id")
)

// Memory stores values of T keyed by string id. It is safe for concurrent
// use; values are copied in and out so callers never share state with the
// store.
type Memory[T any] struct {
	mu      sync.RWMutex
	records map[string]T
	order   []string
}

func NewMemory[T any]() *Memory[T] {
	return &Memory[T]{records: make(map[string]T)}
}

func (m *Memory[T]) Insert(id string, v T) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.records[id]; exists {
		return ErrDuplicate
	}
	m.records[id] = v
	m.order = append(m.order, id)
	return nil
}

func (m *Memory[T]) Get(id string) (T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.records[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	return v, nil
}

func (m *Memory[T]) List() []T {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]T, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.records[id])
	}
	return out
}

func (m *Memory[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}
