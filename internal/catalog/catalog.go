// Package catalog holds the static game-content tables: items, monsters,
// spells, vocations, and quests, plus the experience and damage formulas.
//
// A Catalog is built once at startup and shared by reference. It is never
// mutated afterwards, so concurrent readers need no locking.
package catalog

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

// Catalog is the immutable set of game-content tables.
type Catalog struct {
	items     map[string]*Item
	monsters  map[string]*Monster
	spells    map[string]*Spell
	vocations map[string]*Vocation
	quests    map[string]*Quest
}

// Tables bundles the raw table maps used to construct a Catalog.
type Tables struct {
	Items     map[string]*Item
	Monsters  map[string]*Monster
	Spells    map[string]*Spell
	Vocations map[string]*Vocation
	Quests    map[string]*Quest
}

// New builds a Catalog after validating every entry and cross-checking
// references between tables.
func New(t Tables) (*Catalog, error) {
	c := &Catalog{
		items:     t.Items,
		monsters:  t.Monsters,
		spells:    t.Spells,
		vocations: t.Vocations,
		quests:    t.Quests,
	}

	el := errors.NewErrorList()
	for id, item := range c.items {
		if err := item.Validate(); err != nil {
			el.Add(fmt.Errorf("item %q: %w", id, err))
		}
	}
	for id, mon := range c.monsters {
		if err := mon.Validate(); err != nil {
			el.Add(fmt.Errorf("monster %q: %w", id, err))
		}
	}
	for id, sp := range c.spells {
		if err := sp.Validate(); err != nil {
			el.Add(fmt.Errorf("spell %q: %w", id, err))
			continue
		}
		for _, voc := range sp.Vocations {
			if _, ok := c.vocations[voc]; !ok {
				el.Add(fmt.Errorf("spell %q: unknown vocation %q", id, voc))
			}
		}
	}
	for id, voc := range c.vocations {
		if err := voc.Validate(); err != nil {
			el.Add(fmt.Errorf("vocation %q: %w", id, err))
		}
	}
	for id, q := range c.quests {
		if err := q.Validate(); err != nil {
			el.Add(fmt.Errorf("quest %q: %w", id, err))
			continue
		}
		switch q.Type {
		case QuestTypeKill:
			if _, ok := c.monsters[q.Target]; !ok {
				el.Add(fmt.Errorf("quest %q: unknown monster %q", id, q.Target))
			}
		case QuestTypeCollect:
			if _, ok := c.items[q.Target]; !ok {
				el.Add(fmt.Errorf("quest %q: unknown item %q", id, q.Target))
			}
		}
	}

	if err := el.Err(); err != nil {
		return nil, err
	}
	return c, nil
}

// Item returns the item definition for id.
func (c *Catalog) Item(id string) (*Item, bool) {
	item, ok := c.items[id]
	return item, ok
}

// Monster returns the monster definition for id.
func (c *Catalog) Monster(id string) (*Monster, bool) {
	mon, ok := c.monsters[id]
	return mon, ok
}

// Spell returns the spell definition for id.
func (c *Catalog) Spell(id string) (*Spell, bool) {
	sp, ok := c.spells[id]
	return sp, ok
}

// Vocation returns the vocation definition for id.
func (c *Catalog) Vocation(id string) (*Vocation, bool) {
	voc, ok := c.vocations[id]
	return voc, ok
}

// Quest returns the quest definition for id.
func (c *Catalog) Quest(id string) (*Quest, bool) {
	q, ok := c.quests[id]
	return q, ok
}

// HasVocation reports whether id names a known vocation.
func (c *Catalog) HasVocation(id string) bool {
	_, ok := c.vocations[id]
	return ok
}

// SpellsForLevel returns the ids of spells learned at exactly the given
// level by the given vocation.
func (c *Catalog) SpellsForLevel(voc string, level int) []string {
	var ids []string
	for id, sp := range c.spells {
		if sp.Level == level && sp.AllowsVocation(voc) {
			ids = append(ids, id)
		}
	}
	return ids
}

// SkillMultiplier returns the skill advancement multiplier for a vocation
// and skill, defaulting to 1.0.
func (c *Catalog) SkillMultiplier(voc, skill string) float64 {
	v, ok := c.vocations[voc]
	if !ok {
		return 1.0
	}
	mult, ok := v.SkillMult[skill]
	if !ok || mult <= 0 {
		return 1.0
	}
	return mult
}

// DjinnPrice returns the bulk-sale unit price of an item for the given
// tier ("blue" or "grey"). Unknown tiers fall back to the blue table.
func (c *Catalog) DjinnPrice(id, tier string) int {
	item, ok := c.items[id]
	if !ok {
		return 0
	}
	if tier == "grey" {
		return item.Djinn.Grey
	}
	return item.Djinn.Blue
}
