// Package session implements the per-character authoritative actor: it owns
// one character's durable state, applies actions under a per-character lock,
// enforces cooldowns, and persists snapshots opportunistically.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mike-warlet/megarealms/internal/catalog"
	"github.com/mike-warlet/megarealms/internal/game"
	"github.com/mike-warlet/megarealms/internal/messaging"
	"github.com/mike-warlet/megarealms/internal/store"
)

const (
	attackCooldown  = 200 * time.Millisecond
	sellCooldown    = 500 * time.Millisecond
	persistInterval = 30 * time.Second
)

// EventPublisher delivers realm events to the floor's presence hub. A nil
// publisher disables event delivery.
type EventPublisher interface {
	PublishRealmEvent(floor int, ev messaging.RealmEvent) error
}

// Session is the actor owning one character. All operations serialize on the
// internal mutex, so no two actions for the same character ever interleave
// their mutations.
type Session struct {
	id     string
	cat    *catalog.Catalog
	store  store.Store
	events EventPublisher

	now    func() time.Time
	jitter func() int

	mu          sync.Mutex
	char        *game.Character
	lastAttack  time.Time
	lastSell    time.Time
	spellReady  map[string]time.Time
	lastPersist time.Time
}

// Load hydrates the session. When durable state exists it wins; the proposed
// snapshot is only used on a true first load, sanitized into canonical form
// and persisted. With neither, the load fails with store.ErrNotFound.
func (s *Session) Load(ctx context.Context, initial *game.Character) (*game.Character, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.char != nil {
		return s.char.Clone(), nil
	}

	stored, err := s.store.Load(ctx, s.id)
	switch {
	case err == nil:
		s.char = game.Sanitize(stored, s.cat, s.now().UnixMilli())
	case errors.Is(err, store.ErrNotFound):
		if initial == nil {
			return nil, store.ErrNotFound
		}
		now := s.now()
		s.char = game.Sanitize(initial, s.cat, now.UnixMilli())
		if err := s.store.Save(ctx, s.id, s.char); err != nil {
			s.char = nil
			return nil, fmt.Errorf("persisting initial snapshot: %w", err)
		}
		s.lastPersist = now
	default:
		return nil, fmt.Errorf("loading character: %w", err)
	}

	return s.char.Clone(), nil
}

// State returns the current snapshot, hydrating from durable storage when
// the session has not been touched yet.
func (s *Session) State(ctx context.Context) (*game.Character, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.hydrate(ctx); err != nil {
		return nil, err
	}
	return s.char.Clone(), nil
}

// Apply runs one action against the character. Errors abort with no partial
// mutation. A snapshot write piggy-backs on the call when the persist
// interval has elapsed, or always for an explicit save.
func (s *Session) Apply(ctx context.Context, act Action) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.hydrate(ctx); err != nil {
		return nil, err
	}

	now := s.now()

	var result any
	var err error
	switch a := act.(type) {
	case *AttackAction:
		result, err = s.attack(now, a)
	case *SpellAction:
		result, err = s.spell(now, a)
	case *LootAction:
		result, err = s.loot(a)
	case *KillAction:
		result, err = s.kill(a)
	case *BuyAction:
		result, err = s.buy(a)
	case *SellAction:
		result, err = s.sell(now, a)
	case *SellDjinnAction:
		result, err = s.sellDjinn(a)
	case *EquipAction:
		result, err = s.equip(a)
	case *UnequipAction:
		result, err = s.unequip(a)
	case *UseAction:
		result, err = s.use(a)
	case *QuestAcceptAction:
		result, err = s.questAccept(a)
	case *QuestCheckAction:
		result, err = s.questCheck(now)
	case *BuyPremiumAction:
		result, err = s.buyPremium(now)
	case *BuyBlessingAction:
		result, err = s.buyBlessing(now, a)
	case *DiscardAction:
		result, err = s.discard(a)
	case *MoveAction:
		result, err = s.move(a)
	case *SaveAction:
		result, err = &SaveResult{OK: 1, Timestamp: now.UnixMilli()}, nil
	default:
		err = NewUserError("Unknown action type")
	}
	if err != nil {
		return nil, err
	}

	_, forced := act.(*SaveAction)
	if err := s.persistIfDue(ctx, now, forced); err != nil {
		return nil, err
	}

	return result, nil
}

// hydrate loads durable state into memory on first touch. Callers hold the
// lock.
func (s *Session) hydrate(ctx context.Context) error {
	if s.char != nil {
		return nil
	}
	stored, err := s.store.Load(ctx, s.id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.ErrNotFound
		}
		return fmt.Errorf("loading character: %w", err)
	}
	s.char = game.Sanitize(stored, s.cat, s.now().UnixMilli())
	return nil
}

func (s *Session) persistIfDue(ctx context.Context, now time.Time, force bool) error {
	if !force && now.Sub(s.lastPersist) <= persistInterval {
		return nil
	}
	s.char.LastSave = now.UnixMilli()
	if err := s.store.Save(ctx, s.id, s.char); err != nil {
		if force {
			return fmt.Errorf("persisting snapshot: %w", err)
		}
		// Opportunistic writes retry on the next action.
		slog.WarnContext(ctx, "snapshot write failed", "charId", s.id, "error", err)
		return nil
	}
	s.lastPersist = now
	return nil
}

// publish delivers a realm event to the character's current floor. Delivery
// is best-effort; a failed publish never fails the action.
func (s *Session) publish(ev messaging.RealmEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishRealmEvent(s.char.Floor, ev); err != nil {
		slog.Warn("realm event publish failed", "charId", s.id, "type", ev.Type, "error", err)
	}
}
