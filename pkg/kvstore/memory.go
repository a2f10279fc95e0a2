package kvstore

import (
	"context"
	"sync"
)

// Memory is a volatile Store used by tests and as the fallback when no
// durable backend is reachable.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]string

	// FailWrites makes every Set fail, simulating a full backend.
	FailWrites bool
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]string)}
}

func (m *Memory) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.entries[key]
	return value, ok, nil
}

func (m *Memory) Set(ctx context.Context, key, value string) error {
	if m.FailWrites {
		return errWriteRejected
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	return nil
}

func (m *Memory) Remove(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

func (m *Memory) Ping(ctx context.Context) error { return nil }

func (m *Memory) Close() error { return nil }

// Len reports how many keys are stored.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

type writeRejectedError struct{}

func (writeRejectedError) Error() string { return "write rejected: store quota exceeded" }

var errWriteRejected = writeRejectedError{}
