package catalog

import (
	"fmt"
	"slices"

	"github.com/pixil98/go-errors"
)

// GoldItemID is the pseudo-item credited straight to a character's gold
// balance. It never occupies an inventory slot.
const GoldItemID = "gold_coin"

// Economy constants for the gated purchases.
const (
	// PremiumCost is the gold price of a 30-day premium subscription.
	PremiumCost = 10000

	// PremiumDurationMS is the subscription length granted per purchase.
	PremiumDurationMS = 30 * 24 * 60 * 60 * 1000

	// BlessingCost is the gold price of one blessing.
	BlessingCost = 5000

	// BlessingCount is the number of purchasable blessing slots.
	BlessingCount = 5
)

// Skill names tracked per character.
const (
	SkillMelee     = "melee"
	SkillDistance  = "distance"
	SkillMagic     = "magic"
	SkillShielding = "shielding"
)

// SkillNames lists every trained skill in a fixed order.
var SkillNames = []string{SkillMelee, SkillDistance, SkillMagic, SkillShielding}

// ItemType classifies a catalog item.
type ItemType string

const (
	ItemTypeWeapon ItemType = "weapon"
	ItemTypeArmor  ItemType = "armor"
	ItemTypeHelmet ItemType = "helmet"
	ItemTypeLegs   ItemType = "legs"
	ItemTypeBoots  ItemType = "boots"
	ItemTypeShield ItemType = "shield"
	ItemTypeAmulet ItemType = "amulet"
	ItemTypeRing   ItemType = "ring"
	ItemTypePotion ItemType = "potion"
	ItemTypeFood   ItemType = "food"
	ItemTypeLoot   ItemType = "loot"
	ItemTypeGold   ItemType = "gold"
)

var itemTypes = []ItemType{
	ItemTypeWeapon, ItemTypeArmor, ItemTypeHelmet, ItemTypeLegs, ItemTypeBoots,
	ItemTypeShield, ItemTypeAmulet, ItemTypeRing, ItemTypePotion, ItemTypeFood,
	ItemTypeLoot, ItemTypeGold,
}

// DjinnPrices is the pair of bulk-sale price tiers an item can be sold at.
type DjinnPrices struct {
	Blue int `json:"blue,omitempty"`
	Grey int `json:"grey,omitempty"`
}

// Item defines one catalog item.
type Item struct {
	Name string   `json:"name"`
	Type ItemType `json:"type"`

	// Slot is the equipment slot this item occupies. Empty means the item
	// cannot be equipped.
	Slot string `json:"slot,omitempty"`

	Attack      int `json:"atk,omitempty"`
	Defense     int `json:"def,omitempty"`
	MagicAttack int `json:"matk,omitempty"`

	Price     int         `json:"price"`
	Stackable bool        `json:"stackable,omitempty"`
	Djinn     DjinnPrices `json:"djinn,omitempty"`

	// Consumable restoration amounts.
	Heal int `json:"heal,omitempty"`
	Mana int `json:"mana,omitempty"`

	// Vocations restricts who may buy, use, or equip the item. Empty means
	// unrestricted.
	Vocations []string `json:"vocs,omitempty"`
}

func (i *Item) Validate() error {
	el := errors.NewErrorList()

	if i.Name == "" {
		el.Add(fmt.Errorf("name must be set"))
	}
	if !slices.Contains(itemTypes, i.Type) {
		el.Add(fmt.Errorf("unknown item type %q", i.Type))
	}
	if i.Price < 0 {
		el.Add(fmt.Errorf("price must not be negative"))
	}

	return el.Err()
}

// Equippable reports whether the item occupies an equipment slot.
func (i *Item) Equippable() bool {
	return i.Slot != ""
}

// Consumable reports whether the item can be used from the inventory.
func (i *Item) Consumable() bool {
	return i.Type == ItemTypePotion || i.Type == ItemTypeFood
}

// AllowsVocation reports whether a character of the given vocation may use
// the item.
func (i *Item) AllowsVocation(voc string) bool {
	return len(i.Vocations) == 0 || slices.Contains(i.Vocations, voc)
}

// Monster defines one catalog monster.
type Monster struct {
	Name       string `json:"name"`
	Health     int    `json:"hp"`
	Attack     int    `json:"atk"`
	Defense    int    `json:"def"`
	Experience int64  `json:"xp"`
}

func (m *Monster) Validate() error {
	el := errors.NewErrorList()

	if m.Name == "" {
		el.Add(fmt.Errorf("name must be set"))
	}
	if m.Health <= 0 {
		el.Add(fmt.Errorf("hp must be positive"))
	}

	return el.Err()
}

// Spell defines one castable spell.
type Spell struct {
	Name string `json:"name"`

	// Level is the character level at which the spell is learned.
	Level     int      `json:"lvl"`
	Vocations []string `json:"vocs"`

	Mana       int   `json:"mana"`
	CooldownMS int64 `json:"cd"`

	// Exactly one effect class is expected: heal, damage, or buff.
	Heal       int    `json:"heal,omitempty"`
	DamagePct  int    `json:"dmg,omitempty"`
	Buff       string `json:"buff,omitempty"`
	BuffAmount int    `json:"amt,omitempty"`
	BuffMS     int64  `json:"dur,omitempty"`
}

func (s *Spell) Validate() error {
	el := errors.NewErrorList()

	if s.Name == "" {
		el.Add(fmt.Errorf("name must be set"))
	}
	if s.Level < 1 {
		el.Add(fmt.Errorf("lvl must be at least 1"))
	}
	if len(s.Vocations) == 0 {
		el.Add(fmt.Errorf("vocs must not be empty"))
	}
	if s.Mana < 0 {
		el.Add(fmt.Errorf("mana must not be negative"))
	}
	if s.Heal == 0 && s.DamagePct == 0 && s.Buff == "" {
		el.Add(fmt.Errorf("spell must have a heal, dmg, or buff effect"))
	}

	return el.Err()
}

// AllowsVocation reports whether the given vocation may learn the spell.
func (s *Spell) AllowsVocation(voc string) bool {
	return slices.Contains(s.Vocations, voc)
}

// Vocation defines a character class: base combat stats, per-level growth,
// and skill advancement speed.
type Vocation struct {
	Name string `json:"name"`

	BaseAttack  int `json:"atk"`
	BaseDefense int `json:"def"`

	HealthPerLevel  int `json:"hpL"`
	ManaPerLevel    int `json:"mpL"`
	AttackPerLevel  int `json:"aL"`
	DefensePerLevel int `json:"dL"`

	// SkillMult scales the experience required to advance each skill.
	// Missing skills default to 1.0.
	SkillMult map[string]float64 `json:"skillMult,omitempty"`
}

func (v *Vocation) Validate() error {
	el := errors.NewErrorList()

	if v.Name == "" {
		el.Add(fmt.Errorf("name must be set"))
	}
	if v.BaseAttack < 1 {
		el.Add(fmt.Errorf("atk must be at least 1"))
	}
	if v.HealthPerLevel <= 0 || v.ManaPerLevel < 0 {
		el.Add(fmt.Errorf("per-level gains must be positive"))
	}
	for skill := range v.SkillMult {
		if !slices.Contains(SkillNames, skill) {
			el.Add(fmt.Errorf("unknown skill %q", skill))
		}
	}

	return el.Err()
}

// QuestType is the completion condition class of a quest.
type QuestType string

const (
	QuestTypeKill    QuestType = "kill"
	QuestTypeCollect QuestType = "collect"
)

// Quest defines one acceptable quest.
type Quest struct {
	Name     string    `json:"name"`
	MinLevel int       `json:"lvl"`
	Type     QuestType `json:"type"`

	// Target is a monster id for kill quests, an item id for collect quests.
	Target string `json:"target"`
	Need   int    `json:"need"`

	RewardXP   int64 `json:"xp,omitempty"`
	RewardGold int64 `json:"gold,omitempty"`
}

func (q *Quest) Validate() error {
	el := errors.NewErrorList()

	if q.Name == "" {
		el.Add(fmt.Errorf("name must be set"))
	}
	if q.Type != QuestTypeKill && q.Type != QuestTypeCollect {
		el.Add(fmt.Errorf("unknown quest type %q", q.Type))
	}
	if q.Target == "" {
		el.Add(fmt.Errorf("target must be set"))
	}
	if q.Need < 1 {
		el.Add(fmt.Errorf("need must be at least 1"))
	}

	return el.Err()
}
