package command

import (
	"fmt"
	"os"

	"github.com/pixil98/go-errors"

	"github.com/mike-warlet/megarealms/internal/catalog"
)

type CatalogConfig struct {
	// Path points at the content table directory. Empty uses the built-in
	// tables.
	Path string `json:"path,omitempty"`
}

func (c *CatalogConfig) validate() error {
	el := errors.NewErrorList()

	if c.Path != "" {
		if _, err := os.Stat(c.Path); err != nil {
			el.Add(fmt.Errorf("invalid path %q: %w", c.Path, err))
		}
	}

	return el.Err()
}

func (c *CatalogConfig) buildCatalog() (*catalog.Catalog, error) {
	if c.Path == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(c.Path)
}
