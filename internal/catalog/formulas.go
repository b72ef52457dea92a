package catalog

import "math"

// ExpForLevel returns the experience a character must accumulate to advance
// from the given level to the next one. The curve is quadratic so early
// levels come quickly and high levels take sustained play.
func ExpForLevel(level int) int64 {
	if level < 1 {
		level = 1
	}
	return int64(50 * level * level)
}

// SkillExpForLevel returns the experience needed to advance a skill from the
// given skill level to the next. Skills start at level 10; each level costs
// 10% more than the last, scaled by the vocation's multiplier for the skill.
func SkillExpForLevel(mult float64, level int) int {
	if level < 10 {
		level = 10
	}
	if mult <= 0 {
		mult = 1.0
	}
	return int(50 * mult * math.Pow(1.1, float64(level-10)))
}

// AttackDamage computes melee damage from an effective attack value against
// a target defense: floor(attack - defense/2) + jitter, never below 1. The
// floor covers the whole expression, so an odd defense rounds the damage
// down. jitter is expected in {-1, 0, 1}.
func AttackDamage(attack, defense, jitter int) int {
	dmg := attack - (defense+1)/2 + jitter
	if dmg < 1 {
		return 1
	}
	return dmg
}

// SpellDamage computes damage for an offensive spell. power is the caster's
// magic attack (weapon magic bonus, or base attack when the weapon has
// none), pct the spell's damage percentage. Damage never drops below 1.
func SpellDamage(power, pct, defense int) int {
	dmg := power*pct/100 - defense/3
	if dmg < 1 {
		return 1
	}
	return dmg
}
