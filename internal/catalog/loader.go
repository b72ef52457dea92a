package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

var identifierPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

type validating interface {
	Validate() error
}

// asset is the versioned on-disk envelope wrapping every catalog entry.
type asset[T validating] struct {
	Version    uint   `json:"version"`
	Identifier string `json:"id"`
	Spec       T      `json:"spec"`
}

// Load reads a full catalog from an asset directory laid out as one
// subdirectory per table (items, monsters, spells, vocations, quests), each
// holding one JSON asset file per entry.
func Load(path string) (*Catalog, error) {
	items, err := loadDir[*Item](filepath.Join(path, "items"))
	if err != nil {
		return nil, fmt.Errorf("loading items: %w", err)
	}
	monsters, err := loadDir[*Monster](filepath.Join(path, "monsters"))
	if err != nil {
		return nil, fmt.Errorf("loading monsters: %w", err)
	}
	spells, err := loadDir[*Spell](filepath.Join(path, "spells"))
	if err != nil {
		return nil, fmt.Errorf("loading spells: %w", err)
	}
	vocations, err := loadDir[*Vocation](filepath.Join(path, "vocations"))
	if err != nil {
		return nil, fmt.Errorf("loading vocations: %w", err)
	}
	quests, err := loadDir[*Quest](filepath.Join(path, "quests"))
	if err != nil {
		return nil, fmt.Errorf("loading quests: %w", err)
	}

	return New(Tables{
		Items:     items,
		Monsters:  monsters,
		Spells:    spells,
		Vocations: vocations,
		Quests:    quests,
	})
}

func loadDir[T validating](path string) (map[string]T, error) {
	records := map[string]T{}

	err := filepath.Walk(path, func(p string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if info.IsDir() || filepath.Ext(p) != ".json" {
			return nil
		}

		data, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("reading %s: %w", filepath.Base(p), err)
		}

		var a asset[T]
		if err := json.Unmarshal(data, &a); err != nil {
			return fmt.Errorf("unmarshalling %s: %w", filepath.Base(p), err)
		}
		if a.Version == 0 {
			return fmt.Errorf("%s: version must be set", filepath.Base(p))
		}
		if !identifierPattern.MatchString(a.Identifier) {
			return fmt.Errorf("%s: invalid id %q", filepath.Base(p), a.Identifier)
		}
		if _, ok := records[a.Identifier]; ok {
			return fmt.Errorf("duplicate id detected: %s", a.Identifier)
		}

		records[a.Identifier] = a.Spec
		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}
