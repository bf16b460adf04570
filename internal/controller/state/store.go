package state

import (
	"context"
	"sync"
)

// SessionStore - хранилище сессий по ID чата.
// Get возвращает nil, nil, если сессии нет.
type SessionStore interface {
	Get(ctx context.Context, id int64) (*Session, error)
	Put(ctx context.Context, id int64, s *Session) error
	Clear(ctx context.Context, id int64) error
}

// MemoryStore хранит сессии в памяти процесса
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[int64]*Session),
	}
}

func (m *MemoryStore) Get(_ context.Context, id int64) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if s, ok := m.sessions[id]; ok {
		// Копия, чтобы изменения без Put не попадали в хранилище
		return s.Clone(), nil
	}
	return nil, nil
}

func (m *MemoryStore) Put(_ context.Context, id int64, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[id] = s.Clone()
	return nil
}

func (m *MemoryStore) Clear(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, id)
	return nil
}
