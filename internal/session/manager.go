package session

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/mike-warlet/megarealms/internal/catalog"
	"github.com/mike-warlet/megarealms/internal/store"
)

// Manager is the actor registry: one Session per character id, created on
// first touch and kept for the life of the process.
type Manager struct {
	cat    *catalog.Catalog
	store  store.Store
	events EventPublisher

	now    func() time.Time
	jitter func() int

	mu       sync.Mutex
	sessions map[string]*Session
}

// ManagerOpt configures a Manager.
type ManagerOpt func(*Manager)

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) ManagerOpt {
	return func(m *Manager) {
		m.now = now
	}
}

// WithJitter overrides the damage jitter source. Used by tests.
func WithJitter(jitter func() int) ManagerOpt {
	return func(m *Manager) {
		m.jitter = jitter
	}
}

// NewManager creates a session registry. events may be nil to disable realm
// event delivery.
func NewManager(cat *catalog.Catalog, st store.Store, events EventPublisher, opts ...ManagerOpt) *Manager {
	m := &Manager{
		cat:      cat,
		store:    st,
		events:   events,
		now:      time.Now,
		jitter:   func() int { return rand.IntN(3) - 1 },
		sessions: map[string]*Session{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Session returns the actor for a character id, creating it on first touch.
func (m *Manager) Session(charID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[charID]; ok {
		return s
	}
	s := &Session{
		id:         charID,
		cat:        m.cat,
		store:      m.store,
		events:     m.events,
		now:        m.now,
		jitter:     m.jitter,
		spellReady: map[string]time.Time{},
	}
	m.sessions[charID] = s
	return s
}
