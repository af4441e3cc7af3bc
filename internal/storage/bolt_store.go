package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

const seenBucket = "seen_listings"

// boltStore implements SeenStore backed by BoltDB. Ids are bucket keys; Save
// recreates the bucket so the persisted set is always a wholesale overwrite.
type boltStore struct {
	db *bolt.DB
}

// openBolt initializes a BoltDB-backed SeenStore.
func openBolt(path string) (SeenStore, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(seenBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("init bucket: %w", err)
	}

	return &boltStore{db: db}, nil
}

// Close closes the BoltDB store.
func (b *boltStore) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

// Load returns every persisted id. A missing bucket is the empty set.
func (b *boltStore) Load() (map[string]struct{}, error) {
	ids := make(map[string]struct{})
	if b == nil || b.db == nil {
		return ids, nil
	}

	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(seenBucket))
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(k, _ []byte) error {
			ids[string(k)] = struct{}{}
			return nil
		})
	})
	if err != nil {
		// Unreadable prior state is treated as empty, not fatal.
		return make(map[string]struct{}), nil
	}
	return ids, nil
}

// Save replaces the persisted set with ids.
func (b *boltStore) Save(ids map[string]struct{}) error {
	if b == nil || b.db == nil {
		return fmt.Errorf("bolt store is not open")
	}

	return b.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket([]byte(seenBucket)); err != nil && err != bolt.ErrBucketNotFound {
			return fmt.Errorf("drop bucket: %w", err)
		}
		bucket, err := tx.CreateBucket([]byte(seenBucket))
		if err != nil {
			return fmt.Errorf("recreate bucket: %w", err)
		}
		for id := range ids {
			if err := bucket.Put([]byte(id), nil); err != nil {
				return err
			}
		}
		return nil
	})
}
