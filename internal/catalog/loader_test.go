package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pixil98/go-testutil"
)

func writeAsset(t *testing.T, dir, table, id string, spec any) {
	t.Helper()

	tableDir := filepath.Join(dir, table)
	if err := os.MkdirAll(tableDir, 0o755); err != nil {
		t.Fatalf("creating %s dir: %v", table, err)
	}

	data, err := json.Marshal(map[string]any{
		"version": 1,
		"id":      id,
		"spec":    spec,
	})
	if err != nil {
		t.Fatalf("marshalling asset: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tableDir, id+".json"), data, 0o644); err != nil {
		t.Fatalf("writing asset: %v", err)
	}
}

func scaffoldTables(t *testing.T, dir string) {
	t.Helper()
	for _, table := range []string{"items", "monsters", "spells", "vocations", "quests"} {
		if err := os.MkdirAll(filepath.Join(dir, table), 0o755); err != nil {
			t.Fatalf("creating %s dir: %v", table, err)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	scaffoldTables(t, dir)

	writeAsset(t, dir, "items", "rusty_sword", &Item{Name: "Rusty Sword", Type: ItemTypeWeapon, Slot: "weapon", Attack: 4, Price: 10})
	writeAsset(t, dir, "monsters", "rat", &Monster{Name: "Rat", Health: 10, Attack: 2, Defense: 1, Experience: 4})
	writeAsset(t, dir, "vocations", "knight", &Vocation{Name: "Knight", BaseAttack: 10, BaseDefense: 8, HealthPerLevel: 15, ManaPerLevel: 5})
	writeAsset(t, dir, "quests", "rat_hunt", &Quest{Name: "Rat Hunt", Type: QuestTypeKill, Target: "rat", Need: 5, RewardXP: 50})

	cat, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	item, ok := cat.Item("rusty_sword")
	if !ok {
		t.Fatal("expected rusty_sword to be loaded")
	}
	testutil.AssertEqual(t, "item name", item.Name, "Rusty Sword")
	testutil.AssertEqual(t, "item attack", item.Attack, 4)

	mon, ok := cat.Monster("rat")
	if !ok {
		t.Fatal("expected rat to be loaded")
	}
	testutil.AssertEqual(t, "monster xp", mon.Experience, int64(4))
}

func TestLoad_MissingVersion(t *testing.T) {
	dir := t.TempDir()
	scaffoldTables(t, dir)

	data, _ := json.Marshal(map[string]any{
		"id":   "rusty_sword",
		"spec": &Item{Name: "Rusty Sword", Type: ItemTypeLoot, Price: 1},
	})
	if err := os.WriteFile(filepath.Join(dir, "items", "rusty_sword.json"), data, 0o644); err != nil {
		t.Fatalf("writing asset: %v", err)
	}

	_, err := Load(dir)
	testutil.AssertErrorContains(t, err, "version must be set")
}

func TestLoad_BadIdentifier(t *testing.T) {
	dir := t.TempDir()
	scaffoldTables(t, dir)

	data, _ := json.Marshal(map[string]any{
		"version": 1,
		"id":      "rusty sword!",
		"spec":    &Item{Name: "Rusty Sword", Type: ItemTypeLoot, Price: 1},
	})
	if err := os.WriteFile(filepath.Join(dir, "items", "bad.json"), data, 0o644); err != nil {
		t.Fatalf("writing asset: %v", err)
	}

	_, err := Load(dir)
	testutil.AssertErrorContains(t, err, "invalid id")
}

func TestLoad_DanglingQuestTarget(t *testing.T) {
	dir := t.TempDir()
	scaffoldTables(t, dir)

	writeAsset(t, dir, "quests", "ghost_hunt", &Quest{Name: "Ghost Hunt", Type: QuestTypeKill, Target: "ghost", Need: 1})

	_, err := Load(dir)
	testutil.AssertErrorContains(t, err, `unknown monster "ghost"`)
}

func TestLoad_MissingDirectory(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Error("expected error for missing asset directory")
	}
}
