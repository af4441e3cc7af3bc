package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// fileStore persists the seen set as line-delimited ids in a plain text file.
// Missing or unreadable prior state loads as the empty set; a failed save is
// the caller's problem to surface.
type fileStore struct {
	path string
}

func newFileStore(path string) *fileStore {
	return &fileStore{path: path}
}

// Load reads the persisted ids. Any read problem (no file yet, unreadable
// file) yields an empty set rather than an error: the first run and a corrupt
// state file are both treated as "nothing seen".
func (f *fileStore) Load() (map[string]struct{}, error) {
	ids := make(map[string]struct{})

	raw, err := os.ReadFile(f.path)
	if err != nil {
		return ids, nil
	}

	for _, line := range strings.Split(string(raw), "\n") {
		id := strings.TrimSpace(line)
		if id == "" {
			continue
		}
		ids[id] = struct{}{}
	}
	return ids, nil
}

// Save overwrites the persisted set wholesale. Ids are written sorted so the
// file is stable across runs; the write goes through a temp file and rename.
func (f *fileStore) Save(ids map[string]struct{}) error {
	dir := filepath.Dir(f.path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create storage directory: %w", err)
		}
	}

	sorted := make([]string, 0, len(ids))
	for id := range ids {
		sorted = append(sorted, id)
	}
	sort.Strings(sorted)

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp seen file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(strings.Join(sorted, "\n")); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write seen file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close seen file: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace seen file: %w", err)
	}
	return nil
}

func (f *fileStore) Close() error { return nil }
