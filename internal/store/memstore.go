package store

import (
	"sync"

	"checkers-server/internal/room"
)

// MemoryStore keeps live sessions in process memory. Rooms do not
// survive a restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*room.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: map[string]*room.Session{},
	}
}

func (m *MemoryStore) Get(roomID string) (*room.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[roomID]
	return s, ok
}

func (m *MemoryStore) Save(s *room.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
}

func (m *MemoryStore) Delete(roomID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, roomID)
}

func (m *MemoryStore) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	return ids
}
