package game

import (
	"github.com/mike-warlet/megarealms/internal/catalog"
)

// Sanitize normalizes a client-proposed bootstrap snapshot into canonical
// form. Client values are never trusted: everything is clamped or defaulted
// into the documented invariants. The input is not modified.
func Sanitize(raw *Character, cat *catalog.Catalog, nowMS int64) *Character {
	c := raw.Clone()
	c.ensureDefaults()

	if c.CharID == "" {
		c.CharID = "unknown"
	}
	c.Name = truncateName(c.Name)
	if !cat.HasVocation(c.Vocation) {
		c.Vocation = "knight"
	}

	c.Level = clampInt(c.Level, 1, MaxLevel)
	if c.Experience < 0 {
		c.Experience = 0
	}

	if c.MaxHP < 1 {
		c.MaxHP = 100
	}
	if c.MaxMP < 1 {
		c.MaxMP = 50
	}
	c.HP = clampInt(c.HP, 0, c.MaxHP)
	c.MP = clampInt(c.MP, 0, c.MaxMP)

	if c.BaseAttack < 1 {
		c.BaseAttack = 10
	}
	if c.BaseDefense < 0 {
		c.BaseDefense = 5
	}

	if c.Gold < 0 {
		c.Gold = 0
	}
	if c.Gold > MaxGold {
		c.Gold = MaxGold
	}

	if c.Dir < 0 || c.Dir > 3 {
		c.Dir = DefaultDir
	}
	if c.Floor < 0 {
		c.Floor = 0
	}

	if len(c.Inventory) > MaxInventorySlots {
		c.Inventory = c.Inventory[:MaxInventorySlots]
	}
	sane := c.Inventory[:0]
	for _, stack := range c.Inventory {
		if _, ok := cat.Item(stack.ID); ok && stack.Quantity > 0 {
			sane = append(sane, stack)
		}
	}
	c.Inventory = sane

	for slot, itemID := range c.Equipment {
		item, ok := cat.Item(itemID)
		if !ok || item.Slot != slot || !item.AllowsVocation(c.Vocation) {
			delete(c.Equipment, slot)
		}
	}

	for _, skill := range catalog.SkillNames {
		if c.Skills[skill] < 10 {
			c.Skills[skill] = 10
		}
		if c.SkillExp[skill] < 0 {
			c.SkillExp[skill] = 0
		}
	}

	seen := map[string]bool{}
	quests := c.Quests[:0]
	for _, q := range c.Quests {
		if seen[q.ID] {
			continue
		}
		if _, ok := cat.Quest(q.ID); !ok {
			continue
		}
		seen[q.ID] = true
		quests = append(quests, q)
	}
	c.Quests = quests

	if c.SoftBootCharges < 0 {
		c.SoftBootCharges = 0
	}

	RecalculateStats(c, cat)
	c.LastSave = nowMS
	return c
}

func truncateName(name string) string {
	if name == "" {
		return "Player"
	}
	runes := []rune(name)
	if len(runes) > MaxNameLength {
		return string(runes[:MaxNameLength])
	}
	return name
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
