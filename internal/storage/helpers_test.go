package storage

import (
	"testing"

	bolt "go.etcd.io/bbolt"
)

func countKeys(t *testing.T, store *boltStore) int {
	t.Helper()
	var n int
	if err := store.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket([]byte(announcedBucket)).Stats().KeyN
		return nil
	}); err != nil {
		t.Fatalf("view: %v", err)
	}
	return n
}

func firstKey(t *testing.T, store *boltStore) string {
	t.Helper()
	var key string
	if err := store.db.View(func(tx *bolt.Tx) error {
		k, _ := tx.Bucket([]byte(announcedBucket)).Cursor().First()
		key = string(k)
		return nil
	}); err != nil {
		t.Fatalf("view: %v", err)
	}
	return key
}
