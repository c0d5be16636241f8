package ledger

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/playventures/bizlab/internal/domain"
)

// CacheSchemaVersion is the current version of the cache schema
// Increment this when the cached data structure changes to auto-invalidate old entries
const CacheSchemaVersion = "1.0"

// cachedUserEntry wraps a user with version metadata for cache invalidation
type cachedUserEntry struct {
	Version  string       `json:"version"`
	User     *domain.User `json:"user"`
	CachedAt time.Time    `json:"cached_at"`
}

// UserCache provides an in-memory LRU cache for user record reads with
// time-based expiration and version-based invalidation. The short TTL keeps
// pending-income polling cheap without letting balances go stale for long.
type UserCache struct {
	lru *expirable.LRU[string, *cachedUserEntry]
}

// NewUserCache creates a user cache with the default size and TTL
func NewUserCache() *UserCache {
	return &UserCache{
		lru: expirable.NewLRU[string, *cachedUserEntry](UserCacheSize, nil, UserCacheTTLSeconds*time.Second),
	}
}

// Get retrieves a user from the cache.
// Returns (nil, false) if not in cache, expired, or version mismatch.
func (c *UserCache) Get(userID string) (*domain.User, bool) {
	entry, found := c.lru.Get(userID)
	if !found {
		return nil, false
	}

	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(userID)
		return nil, false
	}

	return entry.User, true
}

// Put stores a user in the cache with the current schema version
func (c *UserCache) Put(user *domain.User) {
	c.lru.Add(user.ID, &cachedUserEntry{
		Version:  CacheSchemaVersion,
		User:     user,
		CachedAt: time.Now(),
	})
}

// Invalidate removes a user from the cache after a write
func (c *UserCache) Invalidate(userID string) {
	c.lru.Remove(userID)
}

// Clear removes all entries from the cache
func (c *UserCache) Clear() {
	c.lru.Purge()
}
