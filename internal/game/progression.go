package game

import (
	"github.com/mike-warlet/megarealms/internal/catalog"
)

// GainExperience credits experience and advances the character while the
// accumulated total crosses level thresholds. Each level gained adds the
// vocation's per-level stat growth, fully restores health and mana, and
// grants any spell unlocked at the new level. One large award may advance
// several levels in a single call. Returns the number of levels gained.
func GainExperience(c *Character, cat *catalog.Catalog, amount int64) int {
	if amount < 0 {
		return 0
	}
	c.Experience += amount

	voc, ok := cat.Vocation(c.Vocation)
	if !ok {
		return 0
	}

	gained := 0
	for c.Level < MaxLevel && c.Experience >= catalog.ExpForLevel(c.Level) {
		c.Experience -= catalog.ExpForLevel(c.Level)
		c.Level++
		gained++

		c.MaxHP += voc.HealthPerLevel
		c.MaxMP += voc.ManaPerLevel
		c.BaseAttack += voc.AttackPerLevel
		c.BaseDefense += voc.DefensePerLevel

		c.HP = c.MaxHP
		c.MP = c.MaxMP

		for _, spellID := range cat.SpellsForLevel(c.Vocation, c.Level) {
			if !c.KnowsSpell(spellID) {
				c.Spells = append(c.Spells, spellID)
			}
		}
	}
	return gained
}

// GainSkillExp credits experience to a skill and performs a single-step
// advancement check: when the accumulated skill experience reaches the
// threshold for the current skill level, the skill advances one level and
// the counter resets. Returns whether the skill advanced.
func GainSkillExp(c *Character, cat *catalog.Catalog, skill string, exp int) bool {
	if exp <= 0 {
		return false
	}
	if c.Skills[skill] < 10 {
		c.Skills[skill] = 10
	}
	c.SkillExp[skill] += exp

	level := c.Skills[skill]
	mult := cat.SkillMultiplier(c.Vocation, skill)
	if c.SkillExp[skill] >= catalog.SkillExpForLevel(mult, level) {
		c.Skills[skill] = level + 1
		c.SkillExp[skill] = 0
		return true
	}
	return false
}
