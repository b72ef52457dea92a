package session

import (
	"fmt"
	"time"

	"github.com/mike-warlet/megarealms/internal/catalog"
	"github.com/mike-warlet/megarealms/internal/game"
	"github.com/mike-warlet/megarealms/internal/messaging"
)

// Action handlers. Every handler runs with the session lock held and must
// validate fully before mutating, so a failed action leaves the character
// untouched.

func (s *Session) attack(now time.Time, act *AttackAction) (*AttackResult, error) {
	if now.Sub(s.lastAttack) < attackCooldown {
		return nil, NewUserError("Attack cooldown")
	}
	s.lastAttack = now

	if s.char.HP <= 0 {
		return nil, NewUserError("Player is dead")
	}

	monDef := 0
	if mon, ok := s.cat.Monster(act.Target); ok {
		monDef = mon.Defense
	}

	// Monster health bookkeeping stays with the caller; the session only
	// resolves the damage roll.
	dmg := catalog.AttackDamage(game.EffectiveAttack(s.char, s.cat), monDef, s.jitter())
	return &AttackResult{Damage: dmg}, nil
}

func (s *Session) spell(now time.Time, act *SpellAction) (*SpellResult, error) {
	sp, ok := s.cat.Spell(act.Spell)
	if !ok {
		return nil, NewUserError("Spell not found")
	}
	if ready, exists := s.spellReady[act.Spell]; exists && now.Before(ready) {
		return nil, NewUserError("Spell cooldown")
	}
	if s.char.MP < sp.Mana {
		return nil, NewUserError("Not enough mana")
	}

	s.char.MP -= sp.Mana
	s.spellReady[act.Spell] = now.Add(time.Duration(sp.CooldownMS) * time.Millisecond)

	result := &SpellResult{ManaLeft: s.char.MP}

	if sp.Heal > 0 {
		oldHP := s.char.HP
		s.char.HP = min(s.char.MaxHP, s.char.HP+sp.Heal)
		result.HPLeft = s.char.HP
		result.Heal = s.char.HP - oldHP
	}

	if sp.Buff != "" {
		result.Buff = &BuffInfo{Type: sp.Buff, Amount: sp.BuffAmount, Duration: sp.BuffMS}
	}

	if sp.DamagePct > 0 {
		monDef := 0
		if mon, ok := s.cat.Monster(act.Target); ok {
			monDef = mon.Defense
		}
		result.Damage = catalog.SpellDamage(game.MagicPower(s.char, s.cat), sp.DamagePct, monDef)
	}

	game.GainSkillExp(s.char, s.cat, catalog.SkillMagic, max(1, sp.Mana/10))

	return result, nil
}

func (s *Session) loot(act *LootAction) (*WalletResult, error) {
	for _, stack := range act.Items {
		game.AddItem(s.char, s.cat, stack.ID, stack.Quantity)
	}
	return &WalletResult{Gold: s.char.Gold, Inventory: snapshotInventory(s.char)}, nil
}

func (s *Session) kill(act *KillAction) (*KillResult, error) {
	mon, ok := s.cat.Monster(act.Monster)
	if !ok {
		return nil, NewUserError("Monster not found")
	}

	s.char.Kills[act.Monster]++
	gained := game.GainExperience(s.char, s.cat, mon.Experience)
	if gained > 0 {
		s.publish(messaging.RealmEvent{
			Type:  messaging.EventLevelUp,
			Name:  s.char.Name,
			Level: s.char.Level,
		})
	}

	return &KillResult{
		Kills:      s.char.Kills[act.Monster],
		Experience: mon.Experience,
		Level:      s.char.Level,
		LevelUp:    gained > 0,
	}, nil
}

func (s *Session) buy(act *BuyAction) (*WalletResult, error) {
	item, ok := s.cat.Item(act.ItemID)
	if !ok {
		return nil, NewUserError("Item not found")
	}
	if s.char.Gold < int64(item.Price) {
		return nil, NewUserError("Not enough gold")
	}
	if len(s.char.Inventory) >= game.MaxInventorySlots {
		return nil, NewUserError("Inventory full")
	}
	if !item.AllowsVocation(s.char.Vocation) {
		return nil, NewUserError("Cannot equip this item")
	}

	s.char.Gold -= int64(item.Price)
	game.AddItem(s.char, s.cat, act.ItemID, 1)

	return &WalletResult{Gold: s.char.Gold, Inventory: snapshotInventory(s.char)}, nil
}

func (s *Session) sell(now time.Time, act *SellAction) (*WalletResult, error) {
	if now.Sub(s.lastSell) < sellCooldown {
		return nil, NewUserError("Sell cooldown")
	}
	s.lastSell = now

	if act.Index < 0 || act.Index >= len(s.char.Inventory) {
		return nil, NewUserError("Item not found")
	}

	price := 0
	if item, ok := s.cat.Item(s.char.Inventory[act.Index].ID); ok {
		price = item.Price / 3
	}

	s.char.AddGold(int64(price))
	game.RemoveAt(s.char, act.Index, 1)

	return &WalletResult{Gold: s.char.Gold, Inventory: snapshotInventory(s.char)}, nil
}

func (s *Session) sellDjinn(act *SellDjinnAction) (*WalletResult, error) {
	if act.Quantity < 1 {
		return nil, NewUserError("Invalid quantity")
	}
	if act.Index < 0 || act.Index >= len(s.char.Inventory) {
		return nil, NewUserError("Item not found")
	}
	stack := s.char.Inventory[act.Index]
	if stack.Quantity < act.Quantity {
		return nil, NewUserError("Not enough items")
	}

	unit := s.cat.DjinnPrice(stack.ID, act.Tier)
	s.char.AddGold(int64(unit) * int64(act.Quantity))
	game.RemoveAt(s.char, act.Index, act.Quantity)

	return &WalletResult{Gold: s.char.Gold, Inventory: snapshotInventory(s.char)}, nil
}

func (s *Session) equip(act *EquipAction) (*EquipResult, error) {
	if act.Index < 0 || act.Index >= len(s.char.Inventory) {
		return nil, NewUserError("Item not found")
	}
	stack := s.char.Inventory[act.Index]
	item, ok := s.cat.Item(stack.ID)
	if !ok || !item.Equippable() {
		return nil, NewUserError("Item cannot be equipped")
	}
	if !item.AllowsVocation(s.char.Vocation) {
		return nil, NewUserError("Cannot equip this item")
	}

	slot := item.Slot
	displaced, hasDisplaced := s.char.Equipment[slot]

	// The displaced item must have a guaranteed way back into the
	// inventory before anything moves; equip never silently drops it.
	if hasDisplaced {
		needsSlot := true
		if disp, ok := s.cat.Item(displaced); ok && disp.Stackable {
			if _, exists := game.FindStack(s.char, displaced); exists {
				needsSlot = false
			}
		}
		freesSlot := stack.Quantity == 1
		if needsSlot && !freesSlot && len(s.char.Inventory) >= game.MaxInventorySlots {
			return nil, NewUserError("Inventory full")
		}
	}

	game.RemoveAt(s.char, act.Index, 1)
	if hasDisplaced {
		game.AddItem(s.char, s.cat, displaced, 1)
	}
	s.char.Equipment[slot] = stack.ID
	game.RecalculateStats(s.char, s.cat)

	return &EquipResult{Equipment: snapshotEquipment(s.char), Inventory: snapshotInventory(s.char)}, nil
}

func (s *Session) unequip(act *UnequipAction) (*EquipResult, error) {
	itemID, ok := s.char.Equipment[act.Slot]
	if !ok {
		return nil, NewUserError("Slot is empty")
	}
	if len(s.char.Inventory) >= game.MaxInventorySlots {
		return nil, NewUserError("Inventory full")
	}

	game.AddItem(s.char, s.cat, itemID, 1)
	delete(s.char.Equipment, act.Slot)
	game.RecalculateStats(s.char, s.cat)

	return &EquipResult{Equipment: snapshotEquipment(s.char), Inventory: snapshotInventory(s.char)}, nil
}

func (s *Session) use(act *UseAction) (*UseResult, error) {
	if act.Index < 0 || act.Index >= len(s.char.Inventory) {
		return nil, NewUserError("Item not found")
	}
	item, ok := s.cat.Item(s.char.Inventory[act.Index].ID)
	if !ok || !item.Consumable() {
		return nil, NewUserError("Cannot use this item")
	}
	if !item.AllowsVocation(s.char.Vocation) {
		return nil, NewUserError("Cannot use this item")
	}

	if item.Heal > 0 {
		s.char.HP = min(s.char.MaxHP, s.char.HP+item.Heal)
	}
	if item.Mana > 0 {
		s.char.MP = min(s.char.MaxMP, s.char.MP+item.Mana)
	}
	game.RemoveAt(s.char, act.Index, 1)

	return &UseResult{HP: s.char.HP, MP: s.char.MP, Inventory: snapshotInventory(s.char)}, nil
}

func (s *Session) questAccept(act *QuestAcceptAction) (*QuestsResult, error) {
	def, ok := s.cat.Quest(act.Quest)
	if !ok {
		return nil, NewUserError("Quest not found")
	}
	if s.char.Level < def.MinLevel {
		return nil, NewUserError("Level too low")
	}
	if s.char.QuestByID(act.Quest) != nil {
		return nil, NewUserError("Quest already accepted")
	}

	s.char.Quests = append(s.char.Quests, game.QuestRecord{ID: act.Quest})

	return &QuestsResult{Quests: snapshotQuests(s.char)}, nil
}

func (s *Session) questCheck(now time.Time) (*QuestCheckResult, error) {
	gains := game.CheckQuests(s.char, s.cat, now.UnixMilli())
	s.char.AddGold(gains.Gold)

	oldLevel := s.char.Level
	game.GainExperience(s.char, s.cat, gains.Experience)
	leveled := s.char.Level > oldLevel

	for _, qid := range gains.Completed {
		s.publish(messaging.RealmEvent{
			Type:  messaging.EventQuestCompleted,
			Name:  s.char.Name,
			Quest: qid,
		})
	}
	if leveled {
		s.publish(messaging.RealmEvent{
			Type:  messaging.EventLevelUp,
			Name:  s.char.Name,
			Level: s.char.Level,
		})
	}

	return &QuestCheckResult{
		Quests:     snapshotQuests(s.char),
		Experience: gains.Experience,
		Level:      s.char.Level,
		LevelUp:    leveled,
		Gold:       s.char.Gold,
		Inventory:  snapshotInventory(s.char),
		Completed:  gains.Completed,
	}, nil
}

func (s *Session) buyPremium(now time.Time) (*PremiumResult, error) {
	nowMS := now.UnixMilli()
	if s.char.IsPremium(nowMS) {
		return nil, NewUserError("Already premium")
	}
	if s.char.Gold < catalog.PremiumCost {
		return nil, NewUserError("Not enough gold")
	}

	s.char.Gold -= catalog.PremiumCost
	s.char.Premium = game.Premium{Active: true, Expiry: nowMS + catalog.PremiumDurationMS}

	return &PremiumResult{Gold: s.char.Gold, Premium: s.char.Premium}, nil
}

func (s *Session) buyBlessing(now time.Time, act *BuyBlessingAction) (*BlessingResult, error) {
	if !s.char.IsPremium(now.UnixMilli()) {
		return nil, NewUserError("Must be premium")
	}
	if s.char.Gold < catalog.BlessingCost {
		return nil, NewUserError("Not enough gold")
	}
	if act.Index < 0 || act.Index >= catalog.BlessingCount {
		return nil, NewUserError("Blessing not found")
	}

	blessingID := fmt.Sprintf("blessing_%d", act.Index)
	if s.char.HasBlessing(blessingID) {
		return nil, NewUserError("Already have this blessing")
	}

	s.char.Gold -= catalog.BlessingCost
	s.char.Blessings = append(s.char.Blessings, blessingID)

	return &BlessingResult{Gold: s.char.Gold, Blessings: snapshotBlessings(s.char)}, nil
}

func (s *Session) discard(act *DiscardAction) (*InventoryResult, error) {
	if act.Quantity < 1 {
		return nil, NewUserError("Invalid quantity")
	}
	if act.Index < 0 || act.Index >= len(s.char.Inventory) {
		return nil, NewUserError("Item not found")
	}

	game.RemoveAt(s.char, act.Index, act.Quantity)

	return &InventoryResult{Inventory: snapshotInventory(s.char)}, nil
}

func (s *Session) move(act *MoveAction) (*AckResult, error) {
	if act.X != nil {
		s.char.X = *act.X
	}
	if act.Y != nil {
		s.char.Y = *act.Y
	}
	if act.Dir != nil && *act.Dir >= 0 && *act.Dir <= 3 {
		s.char.Dir = *act.Dir
	}
	if act.Floor != nil && *act.Floor >= 0 {
		s.char.Floor = *act.Floor
	}
	return &AckResult{OK: 1}, nil
}
