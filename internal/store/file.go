package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mike-warlet/megarealms/internal/game"
)

// FileStore keeps one JSON file per character under a directory.
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed and returns a store over it.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating snapshot directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Load(_ context.Context, id string) (*game.Character, error) {
	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var c game.Character
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("unmarshalling snapshot: %w", err)
	}
	return &c, nil
}

func (s *FileStore) Save(_ context.Context, id string, c *game.Character) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling snapshot: %w", err)
	}
	return atomicWrite(s.path(id), data, 0o644)
}

func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, sanitizeID(id)+".json")
}

// atomicWrite writes data to a temp file then renames it to the target path.
// This prevents partial or empty snapshots if the process is interrupted.
func atomicWrite(path string, data []byte, perm os.FileMode) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, perm); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		if removeErr := os.Remove(tmp); removeErr != nil {
			slog.Warn("failed to remove temp file after rename failure", "path", tmp, "error", removeErr)
		}
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
