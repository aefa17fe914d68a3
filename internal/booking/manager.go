package booking

import (
	"sync"

	"github.com/google/uuid"
)

// Manager holds live drafts keyed by draft ID. Drafts are session-scoped
// and never persisted; submission removes the draft from the manager. All
// mutation goes through Update under the write lock; Get hands out clones,
// so no caller ever reads a draft the manager is mutating.
type Manager struct {
	mu     sync.RWMutex
	drafts map[uuid.UUID]*Draft
}

func NewManager() *Manager {
	return &Manager{drafts: make(map[uuid.UUID]*Draft)}
}

func (m *Manager) Put(d *Draft) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drafts[d.ID] = d
}

// Get returns a clone of the draft, safe to read without holding the lock.
func (m *Manager) Get(id uuid.UUID) (*Draft, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	d, ok := m.drafts[id]
	if !ok {
		return nil, ErrDraftNotFound
	}
	return d.Clone(), nil
}

func (m *Manager) Delete(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.drafts, id)
}

// Update runs fn against the draft under the write lock, serializing all
// mutations of a single draft.
func (m *Manager) Update(id uuid.UUID, fn func(d *Draft) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.drafts[id]
	if !ok {
		return ErrDraftNotFound
	}
	return fn(d)
}
