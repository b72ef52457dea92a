package command

import (
	"fmt"

	"github.com/pixil98/go-errors"

	"github.com/mike-warlet/megarealms/internal/store"
)

type StorageDriver int

const (
	StorageDriverFile StorageDriver = iota
	StorageDriverSQLite
)

func (d *StorageDriver) UnmarshalText(text []byte) error {
	switch string(text) {
	case "file", "":
		*d = StorageDriverFile
	case "sqlite":
		*d = StorageDriverSQLite
	default:
		return fmt.Errorf("unknown storage driver: %s", text)
	}
	return nil
}

type StorageConfig struct {
	Driver StorageDriver `json:"driver"`

	// Path is a directory for the file driver, a database file for sqlite.
	Path string `json:"path"`
}

func (c *StorageConfig) validate() error {
	el := errors.NewErrorList()

	if c.Path == "" {
		el.Add(fmt.Errorf("path is required"))
	}

	return el.Err()
}

func (c *StorageConfig) buildStore() (store.Store, error) {
	switch c.Driver {
	case StorageDriverFile:
		return store.NewFileStore(c.Path)
	case StorageDriverSQLite:
		return store.NewSQLiteStore(c.Path)
	default:
		return nil, fmt.Errorf("unknown storage driver: %v", c.Driver)
	}
}
