package sessionstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/pet-sitting-booking/internal/domain/booking"
)

type memoryEntry struct {
	session *domain.Session
	expires time.Time
}

// Memory keeps sessions in process. It is used when Redis is not
// configured and in tests; sessions do not survive a restart.
type Memory struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]memoryEntry
	now      func() time.Time
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		ttl:      ttl,
		sessions: make(map[string]memoryEntry),
		now:      time.Now,
	}
}

func (m *Memory) Create(_ context.Context, s *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.sessions[s.ID]; ok && m.now().Before(e.expires) {
		return fmt.Errorf("session %s already exists", s.ID)
	}
	s.Version = 1
	m.put(s)
	return nil
}

func (m *Memory) Get(_ context.Context, id string) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.live(id)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return e.session.Clone(), nil
}

func (m *Memory) Save(_ context.Context, s *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.live(s.ID)
	if !ok {
		return domain.ErrSessionNotFound
	}
	if e.session.Version != s.Version {
		return domain.ErrVersionConflict
	}

	s.Version++
	m.put(s)
	return nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, id)
	return nil
}

func (m *Memory) put(s *domain.Session) {
	m.sessions[s.ID] = memoryEntry{session: s.Clone(), expires: m.now().Add(m.ttl)}
}

func (m *Memory) live(id string) (memoryEntry, bool) {
	e, ok := m.sessions[id]
	if !ok {
		return memoryEntry{}, false
	}
	if !m.now().Before(e.expires) {
		delete(m.sessions, id)
		return memoryEntry{}, false
	}
	return e, true
}

var _ domain.SessionStore = (*Memory)(nil)
