package storage

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestBolt(t *testing.T, opts Options) *boltStore {
	t.Helper()
	raw, err := openBolt(filepath.Join(t.TempDir(), "nested", "announced.db"), normalizeOptions(opts))
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	store := raw.(*boltStore)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestBoltStoreMarksAndExpiresURLs(t *testing.T) {
	store := openTestBolt(t, Options{AnnounceTTL: time.Hour, CleanupInterval: time.Hour})
	now := time.Now()
	store.now = func() time.Time { return now }

	announced, err := store.Announced("https://example.com/a")
	if err != nil || announced {
		t.Fatalf("expected unannounced url, announced=%v err=%v", announced, err)
	}

	if err := store.MarkAnnounced("https://example.com/a"); err != nil {
		t.Fatalf("MarkAnnounced: %v", err)
	}

	announced, err = store.Announced("https://example.com/a#comments")
	if err != nil || !announced {
		t.Fatalf("expected fragment variant to match, announced=%v err=%v", announced, err)
	}

	now = now.Add(2 * time.Hour)
	announced, err = store.Announced("https://example.com/a")
	if err != nil {
		t.Fatalf("Announced after expiry: %v", err)
	}
	if announced {
		t.Fatalf("expected entry to expire")
	}
}

func TestBoltStoreCleanupSweepsExpired(t *testing.T) {
	store := openTestBolt(t, Options{AnnounceTTL: time.Minute, CleanupInterval: time.Minute})
	now := time.Now()
	store.now = func() time.Time { return now }

	for _, u := range []string{"https://a", "https://b", "https://c"} {
		if err := store.MarkAnnounced(u); err != nil {
			t.Fatalf("MarkAnnounced: %v", err)
		}
	}

	now = now.Add(5 * time.Minute)
	if err := store.maybeCleanupExpired(now); err != nil {
		t.Fatalf("cleanup: %v", err)
	}

	if n := countKeys(t, store); n != 0 {
		t.Fatalf("expected all entries swept, %d left", n)
	}
}

func TestBoltStoreKeepsOnlyHashes(t *testing.T) {
	store := openTestBolt(t, Options{})
	if err := store.MarkAnnounced("https://example.com/secret-path"); err != nil {
		t.Fatalf("MarkAnnounced: %v", err)
	}
	if n := countKeys(t, store); n != 1 {
		t.Fatalf("expected one key, got %d", n)
	}
	if got := firstKey(t, store); got != Key("https://example.com/secret-path") {
		t.Fatalf("stored key %q is not the url hash", got)
	}
}

func TestNewStoreSupportsNoop(t *testing.T) {
	store, err := NewStore("none", "", Options{})
	if err != nil {
		t.Fatalf("NewStore none: %v", err)
	}
	if err := store.MarkAnnounced("x"); err != nil {
		t.Fatalf("noop store MarkAnnounced: %v", err)
	}
	if announced, _ := store.Announced("x"); announced {
		t.Fatalf("noop store should never report announced")
	}
}

func TestNewStoreRejectsUnknownType(t *testing.T) {
	if _, err := NewStore("redis", "", Options{}); err == nil {
		t.Fatalf("expected error for unsupported type")
	}
	if _, err := NewStore("bbolt", " ", Options{}); err == nil {
		t.Fatalf("expected error for missing path")
	}
}
