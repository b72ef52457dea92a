package game

import (
	"testing"

	"github.com/pixil98/go-testutil"

	"github.com/mike-warlet/megarealms/internal/catalog"
)

func TestGainExperienceSingleLevel(t *testing.T) {
	cat := catalog.Default()
	c := testCharacter("knight")
	c.HP = 40
	c.MP = 10

	gained := GainExperience(c, cat, 60)

	testutil.AssertEqual(t, "levels gained", gained, 1)
	testutil.AssertEqual(t, "level", c.Level, 2)
	testutil.AssertEqual(t, "leftover xp", c.Experience, int64(10))
	testutil.AssertEqual(t, "max hp", c.MaxHP, 115)
	testutil.AssertEqual(t, "full heal", c.HP, c.MaxHP)
	testutil.AssertEqual(t, "full mana", c.MP, c.MaxMP)
}

func TestGainExperienceMultiLevel(t *testing.T) {
	cat := catalog.Default()
	c := testCharacter("knight")

	// 50 + 200 + 450 = 700 carries level 1 through 4 exactly.
	gained := GainExperience(c, cat, 700)

	testutil.AssertEqual(t, "levels gained", gained, 3)
	testutil.AssertEqual(t, "level", c.Level, 4)
	testutil.AssertEqual(t, "leftover xp", c.Experience, int64(0))
	testutil.AssertEqual(t, "max hp", c.MaxHP, 100+3*15)
	testutil.AssertEqual(t, "full heal", c.HP, c.MaxHP)
}

func TestGainExperienceGrantsSpells(t *testing.T) {
	cat := catalog.Default()
	c := testCharacter("knight")

	GainExperience(c, cat, 60)

	testutil.AssertEqual(t, "knows light healing", c.KnowsSpell("light_healing"), true)

	// A spell already known is not re-added on a repeat pass through the
	// same level.
	c.Level = 1
	c.Experience = 0
	GainExperience(c, cat, 60)

	count := 0
	for _, id := range c.Spells {
		if id == "light_healing" {
			count++
		}
	}
	testutil.AssertEqual(t, "spell granted once", count, 1)
}

func TestGainExperienceCapsAtMaxLevel(t *testing.T) {
	cat := catalog.Default()
	c := testCharacter("knight")
	c.Level = MaxLevel

	gained := GainExperience(c, cat, 1_000_000_000)

	testutil.AssertEqual(t, "levels gained", gained, 0)
	testutil.AssertEqual(t, "level", c.Level, MaxLevel)
}

func TestGainSkillExp(t *testing.T) {
	cat := catalog.Default()

	tests := map[string]struct {
		voc         string
		skill       string
		exp         int
		wantAdvance bool
		wantLevel   int
		wantExp     int
	}{
		"advances at threshold": {
			voc: "knight", skill: catalog.SkillMelee, exp: 50,
			wantAdvance: true, wantLevel: 11, wantExp: 0,
		},
		"below threshold accumulates": {
			voc: "knight", skill: catalog.SkillMelee, exp: 49,
			wantAdvance: false, wantLevel: 10, wantExp: 49,
		},
		"single step only": {
			voc: "knight", skill: catalog.SkillMelee, exp: 500,
			wantAdvance: true, wantLevel: 11, wantExp: 0,
		},
		"vocation multiplier raises cost": {
			voc: "knight", skill: catalog.SkillMagic, exp: 149,
			wantAdvance: false, wantLevel: 10, wantExp: 149,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c := testCharacter(tt.voc)

			advanced := GainSkillExp(c, cat, tt.skill, tt.exp)

			testutil.AssertEqual(t, "advanced", advanced, tt.wantAdvance)
			testutil.AssertEqual(t, "skill level", c.Skills[tt.skill], tt.wantLevel)
			testutil.AssertEqual(t, "skill exp", c.SkillExp[tt.skill], tt.wantExp)
		})
	}
}
