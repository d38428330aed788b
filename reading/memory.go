package reading

import (
	"context"
	"sync"
)

// MemoryStore keeps reads in process memory.
type MemoryStore struct {
	mu    sync.Mutex
	reads map[string]map[string]struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{reads: make(map[string]map[string]struct{})}
}

func (m *MemoryStore) Count(_ context.Context, userID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.reads[userID]), nil
}

func (m *MemoryStore) MarkRead(_ context.Context, userID, storyID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.reads[userID] == nil {
		m.reads[userID] = make(map[string]struct{})
	}
	m.reads[userID][storyID] = struct{}{}
	return nil
}
