package game

import (
	"fmt"
	"testing"

	"github.com/pixil98/go-testutil"

	"github.com/mike-warlet/megarealms/internal/catalog"
)

func testCharacter(voc string) *Character {
	c := &Character{
		CharID:   "test",
		Name:     "Tester",
		Vocation: voc,
		Level:    1,
		MaxHP:    100,
		HP:       100,
		MaxMP:    50,
		MP:       50,
	}
	c.ensureDefaults()
	return c
}

func TestAddItem(t *testing.T) {
	cat := catalog.Default()

	tests := map[string]struct {
		setup     func(*Character)
		id        string
		qty       int
		wantOK    bool
		wantSlots int
		wantGold  int64
	}{
		"new slot": {
			id: "sword", qty: 1, wantOK: true, wantSlots: 1,
		},
		"stackable merges": {
			setup: func(c *Character) {
				c.Inventory = append(c.Inventory, ItemStack{ID: "wolf_pelt", Quantity: 2})
			},
			id: "wolf_pelt", qty: 3, wantOK: true, wantSlots: 1,
		},
		"non-stackable takes a new slot": {
			setup: func(c *Character) {
				c.Inventory = append(c.Inventory, ItemStack{ID: "sword", Quantity: 1})
			},
			id: "sword", qty: 1, wantOK: true, wantSlots: 2,
		},
		"gold never occupies a slot": {
			id: catalog.GoldItemID, qty: 500, wantOK: true, wantSlots: 0, wantGold: 500,
		},
		"unknown item ignored": {
			id: "moss", qty: 1, wantOK: false, wantSlots: 0,
		},
		"zero quantity ignored": {
			id: "sword", qty: 0, wantOK: false, wantSlots: 0,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c := testCharacter("knight")
			if tt.setup != nil {
				tt.setup(c)
			}

			ok := AddItem(c, cat, tt.id, tt.qty)

			testutil.AssertEqual(t, "ok", ok, tt.wantOK)
			testutil.AssertEqual(t, "slots", len(c.Inventory), tt.wantSlots)
			testutil.AssertEqual(t, "gold", c.Gold, tt.wantGold)
		})
	}
}

func TestAddItemFullInventory(t *testing.T) {
	cat := catalog.Default()
	c := testCharacter("knight")
	for i := 0; i < MaxInventorySlots; i++ {
		c.Inventory = append(c.Inventory, ItemStack{ID: "sword", Quantity: 1})
	}

	ok := AddItem(c, cat, "plate_armor", 1)
	testutil.AssertEqual(t, "dropped", ok, false)
	testutil.AssertEqual(t, "slots", len(c.Inventory), MaxInventorySlots)

	// A stackable pickup still merges into an existing stack.
	c.Inventory[0] = ItemStack{ID: "wolf_pelt", Quantity: 1}
	ok = AddItem(c, cat, "wolf_pelt", 4)
	testutil.AssertEqual(t, "merged", ok, true)
	testutil.AssertEqual(t, "stack quantity", c.Inventory[0].Quantity, 5)
	testutil.AssertEqual(t, "slots unchanged", len(c.Inventory), MaxInventorySlots)
}

func TestAddGoldClamps(t *testing.T) {
	c := testCharacter("knight")

	c.AddGold(MaxGold + 5)
	testutil.AssertEqual(t, "upper clamp", c.Gold, int64(MaxGold))

	c.AddGold(-2 * MaxGold)
	testutil.AssertEqual(t, "lower clamp", c.Gold, int64(0))
}

func TestRemoveAt(t *testing.T) {
	tests := map[string]struct {
		inv       []ItemStack
		idx       int
		qty       int
		wantSlots int
		wantQty   int
	}{
		"decrements a stack": {
			inv: []ItemStack{{ID: "wolf_pelt", Quantity: 5}}, idx: 0, qty: 2,
			wantSlots: 1, wantQty: 3,
		},
		"removes an emptied slot": {
			inv: []ItemStack{{ID: "sword", Quantity: 1}, {ID: "wolf_pelt", Quantity: 2}}, idx: 0, qty: 1,
			wantSlots: 1, wantQty: 2,
		},
		"out of range ignored": {
			inv: []ItemStack{{ID: "sword", Quantity: 1}}, idx: 5, qty: 1,
			wantSlots: 1, wantQty: 1,
		},
		"negative index ignored": {
			inv: []ItemStack{{ID: "sword", Quantity: 1}}, idx: -1, qty: 1,
			wantSlots: 1, wantQty: 1,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c := testCharacter("knight")
			c.Inventory = tt.inv

			RemoveAt(c, tt.idx, tt.qty)

			testutil.AssertEqual(t, "slots", len(c.Inventory), tt.wantSlots)
			if tt.wantSlots > 0 {
				testutil.AssertEqual(t, "quantity", c.Inventory[0].Quantity, tt.wantQty)
			}
		})
	}
}

func TestInventoryNeverExceedsCap(t *testing.T) {
	cat := catalog.Default()
	c := testCharacter("knight")

	for i := 0; i < 100; i++ {
		AddItem(c, cat, "sword", 1)
		AddItem(c, cat, fmt.Sprintf("unknown_%d", i), 1)
		if len(c.Inventory) > MaxInventorySlots {
			t.Fatalf("inventory grew to %d slots", len(c.Inventory))
		}
	}
	testutil.AssertEqual(t, "slots", len(c.Inventory), MaxInventorySlots)
}
