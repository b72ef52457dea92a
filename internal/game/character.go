// Package game holds the authoritative character state model and the pure
// state transitions on it: inventory stacking, equipment and derived stats,
// leveling, skill advancement, and quest completion.
//
// Nothing here performs I/O or locking; callers (the session actor) are
// responsible for serializing access to a Character.
package game

import "encoding/json"

const (
	// MaxInventorySlots caps the number of inventory stacks a character
	// may carry.
	MaxInventorySlots = 30

	// MaxGold caps the gold balance.
	MaxGold = 99_999_999

	// MaxLevel caps character level.
	MaxLevel = 1000

	// MaxNameLength caps the display name, in runes.
	MaxNameLength = 20

	// DefaultDir is the default facing direction (down).
	DefaultDir = 2
)

// ItemStack is one inventory entry: an item id and its quantity.
type ItemStack struct {
	ID       string `json:"id"`
	Quantity int    `json:"q"`
}

// QuestRecord tracks one accepted quest on a character.
type QuestRecord struct {
	ID       string `json:"id"`
	Progress int    `json:"progress"`
	Done     bool   `json:"done"`
	DoneAt   int64  `json:"doneAt,omitempty"`
}

// Premium is the subscription state.
type Premium struct {
	Active bool  `json:"active"`
	Expiry int64 `json:"expiry"`
}

// Character is the full persisted state of one player character. Field tags
// match the client wire format.
type Character struct {
	CharID   string `json:"charId"`
	Name     string `json:"name"`
	Vocation string `json:"voc"`

	Level      int   `json:"lv"`
	Experience int64 `json:"xp"`

	HP     int `json:"hp"`
	MaxHP  int `json:"mhp"`
	MP     int `json:"mp"`
	MaxMP  int `json:"mmp"`

	// Derived stats: vocation base plus equipment bonuses. Recomputed from
	// the full equipment set on every equip/unequip.
	BaseAttack  int `json:"batk"`
	BaseDefense int `json:"bdef"`

	Gold int64 `json:"gold"`

	X     int `json:"x"`
	Y     int `json:"y"`
	Dir   int `json:"dir"`
	Floor int `json:"floor"`

	Inventory []ItemStack       `json:"inv"`
	Equipment map[string]string `json:"eq"`

	Skills   map[string]int `json:"skills"`
	SkillExp map[string]int `json:"skillXp"`

	Quests []QuestRecord  `json:"quests"`
	Kills  map[string]int `json:"kills"`
	Spells []string       `json:"spells"`

	Premium   Premium  `json:"premium"`
	Blessings []string `json:"blessings"`

	SoftBootCharges int `json:"softBootCharges"`

	// LastSave is the unix-millisecond timestamp of the last persisted
	// snapshot.
	LastSave int64 `json:"lastSave"`
}

// UnmarshalJSON defaults nil collections so loaded snapshots are always
// safe to mutate.
func (c *Character) UnmarshalJSON(b []byte) error {
	type alias Character
	if err := json.Unmarshal(b, (*alias)(c)); err != nil {
		return err
	}
	c.ensureDefaults()
	return nil
}

func (c *Character) ensureDefaults() {
	if c.Inventory == nil {
		c.Inventory = []ItemStack{}
	}
	if c.Equipment == nil {
		c.Equipment = map[string]string{}
	}
	if c.Skills == nil {
		c.Skills = map[string]int{}
	}
	if c.SkillExp == nil {
		c.SkillExp = map[string]int{}
	}
	if c.Quests == nil {
		c.Quests = []QuestRecord{}
	}
	if c.Kills == nil {
		c.Kills = map[string]int{}
	}
	if c.Spells == nil {
		c.Spells = []string{}
	}
	if c.Blessings == nil {
		c.Blessings = []string{}
	}
}

// Clone returns a deep copy. Snapshots handed outside the owning session
// must never alias the live state.
func (c *Character) Clone() *Character {
	out := *c

	out.Inventory = make([]ItemStack, len(c.Inventory))
	copy(out.Inventory, c.Inventory)

	out.Equipment = make(map[string]string, len(c.Equipment))
	for k, v := range c.Equipment {
		out.Equipment[k] = v
	}
	out.Skills = make(map[string]int, len(c.Skills))
	for k, v := range c.Skills {
		out.Skills[k] = v
	}
	out.SkillExp = make(map[string]int, len(c.SkillExp))
	for k, v := range c.SkillExp {
		out.SkillExp[k] = v
	}
	out.Kills = make(map[string]int, len(c.Kills))
	for k, v := range c.Kills {
		out.Kills[k] = v
	}

	out.Quests = make([]QuestRecord, len(c.Quests))
	copy(out.Quests, c.Quests)
	out.Spells = make([]string, len(c.Spells))
	copy(out.Spells, c.Spells)
	out.Blessings = make([]string, len(c.Blessings))
	copy(out.Blessings, c.Blessings)

	return &out
}

// QuestByID returns a pointer into the character's quest set, or nil.
func (c *Character) QuestByID(id string) *QuestRecord {
	for i := range c.Quests {
		if c.Quests[i].ID == id {
			return &c.Quests[i]
		}
	}
	return nil
}

// KnowsSpell reports whether the spell id is in the known set.
func (c *Character) KnowsSpell(id string) bool {
	for _, s := range c.Spells {
		if s == id {
			return true
		}
	}
	return false
}

// IsPremium reports whether the premium subscription is active at the given
// unix-millisecond time.
func (c *Character) IsPremium(nowMS int64) bool {
	return c.Premium.Active && nowMS < c.Premium.Expiry
}

// HasBlessing reports whether the blessing id has been purchased.
func (c *Character) HasBlessing(id string) bool {
	for _, b := range c.Blessings {
		if b == id {
			return true
		}
	}
	return false
}

// AddGold credits gold, clamped to [0, MaxGold].
func (c *Character) AddGold(amount int64) {
	c.Gold += amount
	if c.Gold > MaxGold {
		c.Gold = MaxGold
	}
	if c.Gold < 0 {
		c.Gold = 0
	}
}
