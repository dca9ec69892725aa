// Package projects resolves a user plus an optional @mention plus an
// optional current project into exactly one authoritative project, and
// maintains the per-user summary cache that accelerates mention lookups.
package projects

import (
	"sync"
	"time"

	"taskdeck/pkg/decktypes"
)

// DefaultCacheTTL is the fixed expiry window for cache entries.
const DefaultCacheTTL = 5 * time.Minute

// Clock supplies the current time; tests inject a fixed one so expiry
// can be asserted without wall-clock sleeps.
type Clock func() time.Time

// SummaryCache is the process-wide, per-user, short-TTL mapping from
// user id to lightweight project summaries. It is an acceleration path
// only: a stale or cleared cache must never change a resolution result,
// only cost an extra authoritative lookup. Entries expire a fixed TTL
// after insertion; there is no sliding expiry.
type SummaryCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     Clock
	entries map[string]cacheEntry
}

type cacheEntry struct {
	summaries []decktypes.ProjectSummary
	storedAt  time.Time
}

// NewSummaryCache creates a cache with the given TTL. A nil clock uses
// time.Now; a non-positive TTL uses DefaultCacheTTL.
func NewSummaryCache(ttl time.Duration, now Clock) *SummaryCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if now == nil {
		now = time.Now
	}
	return &SummaryCache{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]cacheEntry),
	}
}

// Get returns the user's cached summaries, or false on an absent or
// expired entry.
func (c *SummaryCache) Get(userID string) ([]decktypes.ProjectSummary, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[userID]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.storedAt) >= c.ttl {
		return nil, false
	}
	return entry.summaries, true
}

// Set stores the user's summaries, restarting the TTL window. Concurrent
// populations race benignly: both writers computed the same
// authoritative data.
func (c *SummaryCache) Set(userID string, summaries []decktypes.ProjectSummary) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[userID] = cacheEntry{summaries: summaries, storedAt: c.now()}
}

// Invalidate drops the user's entry. Called whenever the user's
// accessible-project set could have changed.
func (c *SummaryCache) Invalidate(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, userID)
}
