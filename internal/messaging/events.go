package messaging

import (
	"encoding/json"
	"fmt"
)

// Realm event types published by player sessions.
const (
	EventLevelUp        = "levelup"
	EventQuestCompleted = "quest"
)

// RealmEvent is a game event relayed to every presence on a floor.
type RealmEvent struct {
	Type  string `json:"type"`
	Name  string `json:"name"`
	Level int    `json:"lv,omitempty"`
	Quest string `json:"qid,omitempty"`
}

// FloorSubject returns the bus subject carrying one floor's realm events.
func FloorSubject(floor int) string {
	return fmt.Sprintf("realm.floor.%d", floor)
}

// RealmPublisher publishes realm events to per-floor subjects.
type RealmPublisher struct {
	bus *Bus
}

// NewRealmPublisher wraps a Bus for realm event delivery.
func NewRealmPublisher(bus *Bus) *RealmPublisher {
	return &RealmPublisher{bus: bus}
}

// PublishRealmEvent sends an event to the given floor's subject.
func (p *RealmPublisher) PublishRealmEvent(floor int, ev RealmEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshalling realm event: %w", err)
	}
	return p.bus.Publish(FloorSubject(floor), data)
}
