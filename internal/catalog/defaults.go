package catalog

// Default returns the built-in content tables used when no asset path is
// configured. The set is intentionally small but covers every item type,
// spell effect class, and quest type.
func Default() *Catalog {
	cat, err := New(Tables{
		Items:     defaultItems(),
		Monsters:  defaultMonsters(),
		Spells:    defaultSpells(),
		Vocations: defaultVocations(),
		Quests:    defaultQuests(),
	})
	if err != nil {
		// The built-in tables are covered by tests; a validation failure
		// here is a programming error.
		panic(err)
	}
	return cat
}

func defaultItems() map[string]*Item {
	return map[string]*Item{
		GoldItemID: {Name: "Gold Coin", Type: ItemTypeGold, Price: 1, Stackable: true},

		"sword":         {Name: "Sword", Type: ItemTypeWeapon, Slot: "weapon", Attack: 8, Price: 85, Djinn: DjinnPrices{Blue: 25, Grey: 15}},
		"battle_axe":    {Name: "Battle Axe", Type: ItemTypeWeapon, Slot: "weapon", Attack: 12, Price: 235, Vocations: []string{"knight"}, Djinn: DjinnPrices{Blue: 80, Grey: 50}},
		"wand_of_frost": {Name: "Wand of Frost", Type: ItemTypeWeapon, Slot: "weapon", MagicAttack: 14, Price: 500, Vocations: []string{"mage"}, Djinn: DjinnPrices{Blue: 160, Grey: 100}},
		"bow":           {Name: "Bow", Type: ItemTypeWeapon, Slot: "weapon", Attack: 10, Price: 400, Vocations: []string{"paladin"}, Djinn: DjinnPrices{Blue: 130, Grey: 90}},

		"plate_armor":   {Name: "Plate Armor", Type: ItemTypeArmor, Slot: "armor", Defense: 10, Price: 400, Djinn: DjinnPrices{Blue: 130, Grey: 80}},
		"chain_legs":    {Name: "Chain Legs", Type: ItemTypeLegs, Slot: "legs", Defense: 6, Price: 200, Djinn: DjinnPrices{Blue: 70, Grey: 40}},
		"steel_helmet":  {Name: "Steel Helmet", Type: ItemTypeHelmet, Slot: "helmet", Defense: 5, Price: 290, Djinn: DjinnPrices{Blue: 95, Grey: 60}},
		"leather_boots": {Name: "Leather Boots", Type: ItemTypeBoots, Slot: "boots", Defense: 2, Price: 40, Djinn: DjinnPrices{Blue: 12, Grey: 8}},
		"wooden_shield": {Name: "Wooden Shield", Type: ItemTypeShield, Slot: "shield", Defense: 4, Price: 50, Djinn: DjinnPrices{Blue: 15, Grey: 10}},
		"silver_amulet": {Name: "Silver Amulet", Type: ItemTypeAmulet, Slot: "amulet", Defense: 2, Price: 500, Djinn: DjinnPrices{Blue: 160, Grey: 110}},

		"health_potion": {Name: "Health Potion", Type: ItemTypePotion, Heal: 75, Price: 45, Stackable: true},
		"mana_potion":   {Name: "Mana Potion", Type: ItemTypePotion, Mana: 60, Price: 50, Stackable: true, Vocations: []string{"paladin", "mage"}},
		"brown_bread":   {Name: "Brown Bread", Type: ItemTypeFood, Heal: 10, Price: 3, Stackable: true},

		"wolf_pelt":    {Name: "Wolf Pelt", Type: ItemTypeLoot, Price: 12, Stackable: true, Djinn: DjinnPrices{Blue: 4, Grey: 2}},
		"troll_tusk":   {Name: "Troll Tusk", Type: ItemTypeLoot, Price: 30, Stackable: true, Djinn: DjinnPrices{Blue: 10, Grey: 6}},
		"dragon_scale": {Name: "Dragon Scale", Type: ItemTypeLoot, Price: 240, Stackable: true, Djinn: DjinnPrices{Blue: 80, Grey: 55}},
	}
}

func defaultMonsters() map[string]*Monster {
	return map[string]*Monster{
		"wolf":   {Name: "Wolf", Health: 25, Attack: 6, Defense: 2, Experience: 18},
		"troll":  {Name: "Troll", Health: 60, Attack: 10, Defense: 6, Experience: 55},
		"dragon": {Name: "Dragon", Health: 1000, Attack: 45, Defense: 25, Experience: 700},
	}
}

func defaultSpells() map[string]*Spell {
	return map[string]*Spell{
		"light_healing": {Name: "Light Healing", Level: 2, Vocations: []string{"knight", "paladin", "mage"}, Mana: 20, CooldownMS: 1000, Heal: 40},
		"great_healing": {Name: "Great Healing", Level: 20, Vocations: []string{"paladin", "mage"}, Mana: 70, CooldownMS: 1000, Heal: 180},
		"energy_strike": {Name: "Energy Strike", Level: 8, Vocations: []string{"mage"}, Mana: 25, CooldownMS: 2000, DamagePct: 130},
		"flame_burst":   {Name: "Flame Burst", Level: 14, Vocations: []string{"mage"}, Mana: 45, CooldownMS: 4000, DamagePct: 210},
		"haste":         {Name: "Haste", Level: 6, Vocations: []string{"knight", "paladin", "mage"}, Mana: 30, CooldownMS: 2000, Buff: "speed", BuffAmount: 30, BuffMS: 20000},
	}
}

func defaultVocations() map[string]*Vocation {
	return map[string]*Vocation{
		"knight": {
			Name: "Knight", BaseAttack: 10, BaseDefense: 8,
			HealthPerLevel: 15, ManaPerLevel: 5, AttackPerLevel: 2, DefensePerLevel: 2,
			SkillMult: map[string]float64{SkillMelee: 1.0, SkillDistance: 2.0, SkillMagic: 3.0, SkillShielding: 1.0},
		},
		"paladin": {
			Name: "Paladin", BaseAttack: 8, BaseDefense: 6,
			HealthPerLevel: 10, ManaPerLevel: 15, AttackPerLevel: 1, DefensePerLevel: 1,
			SkillMult: map[string]float64{SkillMelee: 1.5, SkillDistance: 1.0, SkillMagic: 1.5, SkillShielding: 1.2},
		},
		"mage": {
			Name: "Mage", BaseAttack: 6, BaseDefense: 4,
			HealthPerLevel: 5, ManaPerLevel: 30, AttackPerLevel: 1, DefensePerLevel: 1,
			SkillMult: map[string]float64{SkillMelee: 2.0, SkillDistance: 2.0, SkillMagic: 1.0, SkillShielding: 1.5},
		},
	}
}

func defaultQuests() map[string]*Quest {
	return map[string]*Quest{
		"wolf_hunt":      {Name: "Wolf Hunt", MinLevel: 2, Type: QuestTypeKill, Target: "wolf", Need: 10, RewardXP: 300, RewardGold: 100},
		"troll_trouble":  {Name: "Troll Trouble", MinLevel: 8, Type: QuestTypeKill, Target: "troll", Need: 15, RewardXP: 1200, RewardGold: 350},
		"pelt_collector": {Name: "Pelt Collector", MinLevel: 3, Type: QuestTypeCollect, Target: "wolf_pelt", Need: 5, RewardXP: 250, RewardGold: 80},
		"scale_trader":   {Name: "Scale Trader", MinLevel: 25, Type: QuestTypeCollect, Target: "dragon_scale", Need: 3, RewardXP: 4000, RewardGold: 1500},
	}
}
