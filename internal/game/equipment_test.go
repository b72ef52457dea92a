package game

import (
	"testing"

	"github.com/pixil98/go-testutil"

	"github.com/mike-warlet/megarealms/internal/catalog"
)

func TestRecalculateStats(t *testing.T) {
	cat := catalog.Default()

	tests := map[string]struct {
		voc     string
		level   int
		eq      map[string]string
		wantAtk int
		wantDef int
	}{
		"bare knight": {
			voc: "knight", level: 1, wantAtk: 10, wantDef: 8,
		},
		"level gains": {
			voc: "knight", level: 5, wantAtk: 10 + 4*2, wantDef: 8 + 4*2,
		},
		"full kit": {
			voc: "knight", level: 1,
			eq:      map[string]string{"weapon": "sword", "armor": "plate_armor", "shield": "wooden_shield"},
			wantAtk: 18, wantDef: 22,
		},
		"unknown vocation untouched": {
			voc: "druid", level: 1, wantAtk: 0, wantDef: 0,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c := testCharacter(tt.voc)
			c.Level = tt.level
			for slot, id := range tt.eq {
				c.Equipment[slot] = id
			}

			RecalculateStats(c, cat)

			testutil.AssertEqual(t, "attack", c.BaseAttack, tt.wantAtk)
			testutil.AssertEqual(t, "defense", c.BaseDefense, tt.wantDef)
		})
	}
}

func TestRecalculateStatsRoundTrip(t *testing.T) {
	cat := catalog.Default()
	c := testCharacter("knight")
	RecalculateStats(c, cat)
	atk, def := c.BaseAttack, c.BaseDefense

	c.Equipment["weapon"] = "sword"
	RecalculateStats(c, cat)
	delete(c.Equipment, "weapon")
	RecalculateStats(c, cat)

	testutil.AssertEqual(t, "attack restored", c.BaseAttack, atk)
	testutil.AssertEqual(t, "defense restored", c.BaseDefense, def)
}

func TestEffectiveAttack(t *testing.T) {
	cat := catalog.Default()
	c := testCharacter("knight")
	RecalculateStats(c, cat)

	testutil.AssertEqual(t, "bare hands", EffectiveAttack(c, cat), 10)

	c.Equipment["weapon"] = "sword"
	RecalculateStats(c, cat)
	testutil.AssertEqual(t, "with sword", EffectiveAttack(c, cat), 18+8)
}

func TestMagicPower(t *testing.T) {
	cat := catalog.Default()

	c := testCharacter("mage")
	RecalculateStats(c, cat)
	testutil.AssertEqual(t, "no weapon falls back to attack", MagicPower(c, cat), c.BaseAttack)

	c.Equipment["weapon"] = "wand_of_frost"
	testutil.AssertEqual(t, "wand magic attack", MagicPower(c, cat), 14)

	k := testCharacter("knight")
	k.Equipment["weapon"] = "sword"
	RecalculateStats(k, cat)
	testutil.AssertEqual(t, "weapon without magic falls back", MagicPower(k, cat), k.BaseAttack)
}
