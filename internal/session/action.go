package session

import (
	"encoding/json"

	"github.com/mike-warlet/megarealms/internal/game"
)

// Action is one of the tagged action variants below. Decoding produces a
// concrete variant; dispatch is a single total type switch, so adding an
// action is a compile-time exhaustiveness concern rather than a string
// comparison scattered across handlers.
type Action interface {
	actionName() string
}

type AttackAction struct {
	Target string `json:"tid"`
}

type SpellAction struct {
	Spell  string `json:"sid"`
	Target string `json:"tid,omitempty"`
}

type LootAction struct {
	Items []game.ItemStack `json:"items"`
}

type KillAction struct {
	Monster string `json:"mid"`
}

type BuyAction struct {
	ItemID string `json:"itemId"`
}

type SellAction struct {
	Index int `json:"idx"`
}

type SellDjinnAction struct {
	Index    int    `json:"idx"`
	Quantity int    `json:"qty"`
	Tier     string `json:"djinnType"`
}

type EquipAction struct {
	Index int `json:"idx"`
}

type UnequipAction struct {
	Slot string `json:"slot"`
}

type UseAction struct {
	Index int `json:"idx"`
}

type QuestAcceptAction struct {
	Quest string `json:"qid"`
}

type QuestCheckAction struct{}

type BuyPremiumAction struct{}

type BuyBlessingAction struct {
	Index int `json:"idx"`
}

type DiscardAction struct {
	Index    int `json:"idx"`
	Quantity int `json:"qty"`
}

type MoveAction struct {
	X     *int `json:"x,omitempty"`
	Y     *int `json:"y,omitempty"`
	Dir   *int `json:"dir,omitempty"`
	Floor *int `json:"floor,omitempty"`
}

type SaveAction struct{}

func (AttackAction) actionName() string      { return "attack" }
func (SpellAction) actionName() string       { return "spell" }
func (LootAction) actionName() string        { return "loot" }
func (KillAction) actionName() string        { return "kill" }
func (BuyAction) actionName() string         { return "buy" }
func (SellAction) actionName() string        { return "sell" }
func (SellDjinnAction) actionName() string   { return "sell_djinn" }
func (EquipAction) actionName() string       { return "equip" }
func (UnequipAction) actionName() string     { return "unequip" }
func (UseAction) actionName() string         { return "use" }
func (QuestAcceptAction) actionName() string { return "quest_accept" }
func (QuestCheckAction) actionName() string  { return "quest_check" }
func (BuyPremiumAction) actionName() string  { return "buy_premium" }
func (BuyBlessingAction) actionName() string { return "buy_blessing" }
func (DiscardAction) actionName() string     { return "discard" }
func (MoveAction) actionName() string        { return "move" }
func (SaveAction) actionName() string        { return "save" }

// DecodeAction parses a JSON action body into its typed variant.
func DecodeAction(data []byte) (Action, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, NewUserError("Malformed action")
	}

	var act Action
	switch probe.Type {
	case "attack":
		act = &AttackAction{}
	case "spell":
		act = &SpellAction{}
	case "loot":
		act = &LootAction{}
	case "kill":
		act = &KillAction{}
	case "buy":
		act = &BuyAction{}
	case "sell":
		act = &SellAction{}
	case "sell_djinn":
		act = &SellDjinnAction{}
	case "equip":
		act = &EquipAction{}
	case "unequip":
		act = &UnequipAction{}
	case "use":
		act = &UseAction{}
	case "quest_accept":
		act = &QuestAcceptAction{}
	case "quest_check":
		act = &QuestCheckAction{}
	case "buy_premium":
		act = &BuyPremiumAction{}
	case "buy_blessing":
		act = &BuyBlessingAction{}
	case "discard":
		act = &DiscardAction{}
	case "move":
		act = &MoveAction{}
	case "save":
		act = &SaveAction{}
	default:
		return nil, NewUserError("Unknown action type: " + probe.Type)
	}

	if err := json.Unmarshal(data, act); err != nil {
		return nil, NewUserError("Malformed action")
	}
	return act, nil
}
