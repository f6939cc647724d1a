package storage

import (
	"context"
	"sync"
)

// MemoryStore keeps the slots in process memory. The mutex only protects the
// map; it does not order concurrent saves.
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[Kind]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[Kind]string)}
}

func (s *MemoryStore) Save(_ context.Context, kind Kind, text string) (string, error) {
	if !kind.valid() {
		return "", invalidKind(kind)
	}
	s.mu.Lock()
	s.slots[kind] = text
	s.mu.Unlock()
	return "memory://" + string(kind), nil
}

func (s *MemoryStore) Get(_ context.Context, kind Kind) (string, error) {
	if !kind.valid() {
		return "", invalidKind(kind)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.slots[kind], nil
}

func (s *MemoryStore) Close() error { return nil }
