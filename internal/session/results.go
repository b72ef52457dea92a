package session

import (
	"github.com/mike-warlet/megarealms/internal/game"
)

// Result payloads returned from action application. Field tags match the
// client wire format. Slices and maps inside results are snapshots; they
// never alias the live character state.

type AttackResult struct {
	Damage int `json:"dmg"`
}

// BuffInfo describes a buff for the caller to apply. The session does not
// track buff durations.
type BuffInfo struct {
	Type     string `json:"type"`
	Amount   int    `json:"amt"`
	Duration int64  `json:"dur"`
}

type SpellResult struct {
	ManaLeft int       `json:"mpLeft"`
	HPLeft   int       `json:"hpLeft,omitempty"`
	Heal     int       `json:"heal,omitempty"`
	Buff     *BuffInfo `json:"buff,omitempty"`
	Damage   int       `json:"dmg,omitempty"`
}

// WalletResult reports the gold balance and inventory after an economy
// action (loot, buy, sell, sell_djinn).
type WalletResult struct {
	Gold      int64            `json:"gold"`
	Inventory []game.ItemStack `json:"inv"`
}

type EquipResult struct {
	Equipment map[string]string `json:"eq"`
	Inventory []game.ItemStack  `json:"inv"`
}

type UseResult struct {
	HP        int              `json:"hp"`
	MP        int              `json:"mp"`
	Inventory []game.ItemStack `json:"inv"`
}

type QuestsResult struct {
	Quests []game.QuestRecord `json:"quests"`
}

type QuestCheckResult struct {
	Quests     []game.QuestRecord `json:"quests"`
	Experience int64              `json:"xp"`
	Level      int                `json:"lv"`
	LevelUp    bool               `json:"levelUp"`
	Gold       int64              `json:"gold"`
	Inventory  []game.ItemStack   `json:"inv"`
	Completed  []string           `json:"completed"`
}

type KillResult struct {
	Kills      int   `json:"kills"`
	Experience int64 `json:"xp"`
	Level      int   `json:"lv"`
	LevelUp    bool  `json:"levelUp"`
}

type PremiumResult struct {
	Gold    int64        `json:"gold"`
	Premium game.Premium `json:"premium"`
}

type BlessingResult struct {
	Gold      int64    `json:"gold"`
	Blessings []string `json:"blessings"`
}

type InventoryResult struct {
	Inventory []game.ItemStack `json:"inv"`
}

type AckResult struct {
	OK int `json:"ok"`
}

type SaveResult struct {
	OK        int   `json:"ok"`
	Timestamp int64 `json:"ts"`
}

func snapshotInventory(c *game.Character) []game.ItemStack {
	out := make([]game.ItemStack, len(c.Inventory))
	copy(out, c.Inventory)
	return out
}

func snapshotEquipment(c *game.Character) map[string]string {
	out := make(map[string]string, len(c.Equipment))
	for k, v := range c.Equipment {
		out[k] = v
	}
	return out
}

func snapshotQuests(c *game.Character) []game.QuestRecord {
	out := make([]game.QuestRecord, len(c.Quests))
	copy(out, c.Quests)
	return out
}

func snapshotBlessings(c *game.Character) []string {
	out := make([]string, len(c.Blessings))
	copy(out, c.Blessings)
	return out
}
