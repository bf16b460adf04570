package state

import (
	"context"
	"fmt"
)

// Manager - операции над сессией поверх SessionStore
type Manager struct {
	store SessionStore
}

func NewManager(store SessionStore) *Manager {
	return &Manager{store: store}
}

// Load возвращает сессию или новую пустую в состоянии idle
func (m *Manager) Load(ctx context.Context, id int64) (*Session, error) {
	s, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load session %d: %w", id, err)
	}
	if s == nil {
		return NewSession(), nil
	}
	if s.State == "" {
		s.State = StateIdle
	}
	return s, nil
}

func (m *Manager) Save(ctx context.Context, id int64, s *Session) error {
	if err := m.store.Put(ctx, id, s); err != nil {
		return fmt.Errorf("save session %d: %w", id, err)
	}
	return nil
}

func (m *Manager) GetState(ctx context.Context, id int64) (State, error) {
	s, err := m.Load(ctx, id)
	if err != nil {
		return StateIdle, err
	}
	return s.State, nil
}

func (m *Manager) SetState(ctx context.Context, id int64, st State) error {
	s, err := m.Load(ctx, id)
	if err != nil {
		return err
	}
	s.State = st
	return m.Save(ctx, id, s)
}

// UpdateFields сливает значения в черновик сессии
func (m *Manager) UpdateFields(ctx context.Context, id int64, partial map[string]string) error {
	s, err := m.Load(ctx, id)
	if err != nil {
		return err
	}
	s.UpdateFields(partial)
	return m.Save(ctx, id, s)
}

// Clear сбрасывает состояние в idle и очищает черновик
func (m *Manager) Clear(ctx context.Context, id int64) error {
	if err := m.store.Clear(ctx, id); err != nil {
		return fmt.Errorf("clear session %d: %w", id, err)
	}
	return nil
}
