package game

import (
	"github.com/mike-warlet/megarealms/internal/catalog"
)

// AddItem places a pickup into the inventory following the stacking rules:
// unknown items are ignored, gold credits the balance directly, stackable
// items merge into an existing stack of the same id, and anything else takes
// a new slot if one of the 30 is free. A pickup that needs a new slot when
// none is free is dropped. Returns whether the pickup was applied.
func AddItem(c *Character, cat *catalog.Catalog, id string, qty int) bool {
	item, ok := cat.Item(id)
	if !ok || qty <= 0 {
		return false
	}

	if id == catalog.GoldItemID || item.Type == catalog.ItemTypeGold {
		c.AddGold(int64(qty))
		return true
	}

	if item.Stackable {
		for i := range c.Inventory {
			if c.Inventory[i].ID == id {
				c.Inventory[i].Quantity += qty
				return true
			}
		}
	}

	if len(c.Inventory) >= MaxInventorySlots {
		return false
	}
	c.Inventory = append(c.Inventory, ItemStack{ID: id, Quantity: qty})
	return true
}

// RemoveAt removes qty units from the stack at slot idx, dropping the slot
// entirely when its quantity reaches zero. Out-of-range indexes are ignored.
func RemoveAt(c *Character, idx, qty int) {
	if idx < 0 || idx >= len(c.Inventory) {
		return
	}
	c.Inventory[idx].Quantity -= qty
	if c.Inventory[idx].Quantity <= 0 {
		c.Inventory = append(c.Inventory[:idx], c.Inventory[idx+1:]...)
	}
}

// FindStack returns the index of the first stack holding the given item id.
func FindStack(c *Character, id string) (int, bool) {
	for i := range c.Inventory {
		if c.Inventory[i].ID == id {
			return i, true
		}
	}
	return 0, false
}
