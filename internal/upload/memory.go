package upload

import (
	"context"
	"errors"
	"io"
	"sync"
)

// MemoryStore is an in-process ObjectStore for tests and local development
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string][]byte

	// FailAfter, when >= 0, makes Put fail once that many objects are stored
	FailAfter int
}

// NewMemoryStore creates an empty in-memory object store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		objects:   make(map[string][]byte),
		FailAfter: -1,
	}
}

// Ensure MemoryStore implements the interface
var _ ObjectStore = (*MemoryStore)(nil)

// Put stores the body under key
func (m *MemoryStore) Put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailAfter >= 0 && len(m.objects) >= m.FailAfter {
		return "", errors.New("object store unavailable")
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	m.objects[key] = data
	return "memory://" + key, nil
}

// Delete removes the object under key
func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

// Get returns a stored object's content, for test assertions
func (m *MemoryStore) Get(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.objects[key]
	return data, ok
}

// Len returns the number of stored objects
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
