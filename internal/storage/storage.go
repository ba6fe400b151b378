// Package storage remembers which article URLs have already been announced
// downstream. Only URL hashes and their expiry are kept, never summaries.
package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// Store tracks announced article URLs for a bounded window.
type Store interface {
	Close() error
	Announced(url string) (bool, error)
	MarkAnnounced(url string) error
}

// Options controls retention for concrete store implementations.
type Options struct {
	AnnounceTTL     time.Duration
	CleanupInterval time.Duration
}

const (
	defaultAnnounceTTL     = 24 * time.Hour
	defaultCleanupInterval = 6 * time.Hour
)

// Types accepted by NewStore.
const (
	TypeNone  = "none"
	TypeBBolt = "bbolt"
)

// NewStore creates the configured storage backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", TypeNone, "disabled":
		return noopStore{}, nil
	case TypeBBolt:
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

// Key returns the stored identity of url: a hex sha256 of the trimmed URL
// with any fragment removed.
func Key(url string) string {
	url = strings.TrimSpace(url)
	if i := strings.IndexByte(url, '#'); i >= 0 {
		url = url[:i]
	}
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])
}

func normalizeOptions(opts Options) Options {
	if opts.AnnounceTTL <= 0 {
		opts.AnnounceTTL = defaultAnnounceTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

type noopStore struct{}

func (noopStore) Close() error                   { return nil }
func (noopStore) Announced(string) (bool, error) { return false, nil }
func (noopStore) MarkAnnounced(string) error     { return nil }
