// Package store persists character snapshots. Each character is a single
// keyed record holding the full state; there are no secondary indices.
package store

import (
	"context"
	"errors"
	"strings"

	"github.com/mike-warlet/megarealms/internal/game"
)

// ErrNotFound is returned when no snapshot exists for a character id.
var ErrNotFound = errors.New("character not found")

// Store loads and saves whole character snapshots.
type Store interface {
	Load(ctx context.Context, id string) (*game.Character, error)
	Save(ctx context.Context, id string, c *game.Character) error
}

// sanitizeID maps a character id to a key safe for filenames and database
// keys. Unsupported runes are dropped; spaces become underscores.
func sanitizeID(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	var b strings.Builder
	for _, ch := range id {
		switch {
		case ch >= 'a' && ch <= 'z', ch >= '0' && ch <= '9', ch == '_', ch == '-':
			b.WriteRune(ch)
		case ch == ' ':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "unknown"
	}
	return b.String()
}
