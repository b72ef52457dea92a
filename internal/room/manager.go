package room

import (
	"log/slog"
	"sync"
	"time"

	"github.com/mike-warlet/megarealms/internal/messaging"
)

// Subscriber is the slice of the event bus rooms depend on.
type Subscriber interface {
	Subscribe(subject string, handler func(data []byte)) (func(), error)
}

// Manager is the room registry: one Room per floor, created on first touch.
// Each new room subscribes to its floor's realm event subject.
type Manager struct {
	bus Subscriber
	now func() time.Time

	mu    sync.Mutex
	rooms map[int]*Room
}

// ManagerOpt configures a Manager.
type ManagerOpt func(*Manager)

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) ManagerOpt {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a room registry. bus may be nil to disable realm event
// relay.
func NewManager(bus Subscriber, opts ...ManagerOpt) *Manager {
	m := &Manager{
		bus:   bus,
		now:   time.Now,
		rooms: map[int]*Room{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Room returns the hub for a floor, creating it on first touch.
func (m *Manager) Room(floor int) *Room {
	m.mu.Lock()
	defer m.mu.Unlock()

	if r, ok := m.rooms[floor]; ok {
		return r
	}
	r := newRoom(floor, m.now)
	if m.bus != nil {
		// Rooms are never torn down, so the subscription lives for the
		// rest of the process and the unsubscribe handle is not kept.
		if _, err := m.bus.Subscribe(messaging.FloorSubject(floor), r.relayEvent); err != nil {
			slog.Warn("realm event subscription failed", "floor", floor, "error", err)
		}
	}
	m.rooms[floor] = r
	return r
}

// OnlineCount returns the total number of connections across all rooms.
func (m *Manager) OnlineCount() int {
	m.mu.Lock()
	rooms := make([]*Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		rooms = append(rooms, r)
	}
	m.mu.Unlock()

	total := 0
	for _, r := range rooms {
		total += r.Count()
	}
	return total
}
