package game

import (
	"github.com/mike-warlet/megarealms/internal/catalog"
)

// RecalculateStats recomputes the derived attack and defense values from the
// vocation base, per-level gains, and the full equipment set. It is always a
// full recompute, never incremental, so equip/unequip can never drift.
func RecalculateStats(c *Character, cat *catalog.Catalog) {
	voc, ok := cat.Vocation(c.Vocation)
	if !ok {
		return
	}

	atk := voc.BaseAttack + (c.Level-1)*voc.AttackPerLevel
	def := voc.BaseDefense + (c.Level-1)*voc.DefensePerLevel

	for _, itemID := range c.Equipment {
		if item, ok := cat.Item(itemID); ok {
			atk += item.Attack
			def += item.Defense
		}
	}

	c.BaseAttack = atk
	c.BaseDefense = def
}

// EffectiveAttack returns the melee attack value used in damage rolls: the
// derived base attack plus the equipped weapon's attack bonus on top.
func EffectiveAttack(c *Character, cat *catalog.Catalog) int {
	atk := c.BaseAttack
	if weaponID, ok := c.Equipment["weapon"]; ok {
		if item, ok := cat.Item(weaponID); ok {
			atk += item.Attack
		}
	}
	return atk
}

// MagicPower returns the power value for offensive spells: the equipped
// weapon's magic-attack bonus, or the base attack when the weapon grants
// none.
func MagicPower(c *Character, cat *catalog.Catalog) int {
	if weaponID, ok := c.Equipment["weapon"]; ok {
		if item, ok := cat.Item(weaponID); ok && item.MagicAttack > 0 {
			return item.MagicAttack
		}
	}
	return c.BaseAttack
}
