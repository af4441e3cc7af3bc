package storage

import (
	"fmt"
	"strings"
)

// Package storage provides durable persistence for the set of listing ids
// that have already been notified.

// SeenStore persists the notified listing ids between runs. Load tolerates
// missing or corrupt prior state by returning an empty set; Save replaces the
// persisted set wholesale (no merge semantics).
type SeenStore interface {
	Load() (map[string]struct{}, error)
	Save(ids map[string]struct{}) error
	Close() error
}

// NewStore creates the configured storage backend. The file backend receives
// seenPath, the bbolt backend boltPath.
func NewStore(typ, seenPath, boltPath string) (SeenStore, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))

	switch typ {
	case "", "file":
		if strings.TrimSpace(seenPath) == "" {
			return nil, fmt.Errorf("file storage requires a path")
		}
		return newFileStore(seenPath), nil
	case "bbolt":
		if strings.TrimSpace(boltPath) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(boltPath)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}
