package game

import (
	"github.com/mike-warlet/megarealms/internal/catalog"
)

// QuestGains aggregates the rewards from one quest_check pass.
type QuestGains struct {
	Completed  []string
	Experience int64
	Gold       int64
}

// CheckQuests re-evaluates every active quest against the current kill
// counters and inventory. Newly satisfied quests are marked done with the
// given timestamp and their rewards aggregated; collect quests consume the
// required items immediately, so two collect quests targeting the same item
// compete within one pass, in quest-set order. The caller applies the
// aggregated experience (and its leveling check) once, after the pass.
func CheckQuests(c *Character, cat *catalog.Catalog, nowMS int64) QuestGains {
	var gains QuestGains

	for i := range c.Quests {
		rec := &c.Quests[i]
		if rec.Done {
			continue
		}
		def, ok := cat.Quest(rec.ID)
		if !ok {
			continue
		}

		satisfied := false
		switch def.Type {
		case catalog.QuestTypeKill:
			satisfied = c.Kills[def.Target] >= def.Need
		case catalog.QuestTypeCollect:
			if idx, ok := FindStack(c, def.Target); ok {
				satisfied = c.Inventory[idx].Quantity >= def.Need
			}
		}
		if !satisfied {
			continue
		}

		rec.Done = true
		rec.DoneAt = nowMS
		gains.Completed = append(gains.Completed, rec.ID)
		gains.Experience += def.RewardXP
		gains.Gold += def.RewardGold

		if def.Type == catalog.QuestTypeCollect {
			if idx, ok := FindStack(c, def.Target); ok {
				RemoveAt(c, idx, def.Need)
			}
		}
	}

	return gains
}
