// Package cache holds recently normalized video metadata so repeat lookups
// skip the yt-dlp round trip.
package cache

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"thirdcoast.systems/tubemeta/internal/metadata"
)

type entry struct {
	video     metadata.Video
	expiresAt time.Time
}

// VideoCache is a TTL cache keyed by the deterministic video UUID.
// Safe for concurrent use. Expired entries are dropped lazily on read.
type VideoCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[uuid.UUID]entry

	now func() time.Time
}

// New returns a cache with the given TTL. A zero or negative TTL disables
// caching entirely: Get always misses, Put is a no-op.
func New(ttl time.Duration) *VideoCache {
	return &VideoCache{
		ttl:     ttl,
		entries: make(map[uuid.UUID]entry),
		now:     time.Now,
	}
}

func (c *VideoCache) Get(key uuid.UUID) (metadata.Video, bool) {
	if c.ttl <= 0 {
		return metadata.Video{}, false
	}

	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return metadata.Video{}, false
	}

	if c.now().After(e.expiresAt) {
		c.mu.Lock()
		// Re-check under the write lock: a concurrent Put may have refreshed it.
		if cur, ok := c.entries[key]; ok && c.now().After(cur.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return metadata.Video{}, false
	}

	return e.video, true
}

func (c *VideoCache) Put(key uuid.UUID, v metadata.Video) {
	if c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	c.entries[key] = entry{video: v, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
}

// Len reports the number of stored entries, expired or not.
func (c *VideoCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
