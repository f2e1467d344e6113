package storage

import (
	"context"
	"sync"
)

// Memory is an in-process KV used by tests.
type Memory struct {
	mu    sync.RWMutex
	items map[string]string

	// FailSet, when true, makes every SetItem return an error. Tests use it
	// to exercise the swallowed write-failure path.
	FailSet bool

	// FailGet, when true, makes every GetItem return an error. Tests use it
	// to drive the unrecoverable load path.
	FailGet bool
}

func NewMemory() *Memory {
	return &Memory{items: make(map[string]string)}
}

func (m *Memory) GetItem(ctx context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailGet {
		return "", false, errReadFailed
	}
	v, ok := m.items[key]
	return v, ok, nil
}

func (m *Memory) SetItem(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSet {
		return errWriteFailed
	}
	m.items[key] = value
	return nil
}

func (m *Memory) RemoveItem(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

func (m *Memory) MultiRemove(ctx context.Context, keys []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.items, k)
	}
	return nil
}

func (m *Memory) AllKeys(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.items))
	for k := range m.items {
		keys = append(keys, k)
	}
	return keys, nil
}

type kvError string

func (e kvError) Error() string { return string(e) }

const (
	errWriteFailed = kvError("kv: write failed")
	errReadFailed  = kvError("kv: read failed")
)
