// Package cache provides the time-boxed user enrichment cache.
//
// Listings reference uploaders and owners by opaque id; resolving those
// ids means a query against the separate auth database. The cache keeps
// recently seen user records in process memory so a page of photos does
// not turn into an N+1 cross-database join.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/courtshot/courtshot/internal/dependencies/clock"
	"github.com/courtshot/courtshot/internal/identity"
)

// DefaultTTL is how long a cached user record stays usable
const DefaultTTL = 5 * time.Minute

type entry struct {
	user       identity.UserInfo
	capturedAt time.Time
}

// UserCache is a process-wide id → user record cache with a freshness
// TTL. Entries are lazily ignored once stale and swept periodically so
// memory stays bounded independent of read traffic. Cached records are
// eventually-consistent snapshots, not authoritative state, so
// last-write-wins between concurrent fillers is acceptable.
type UserCache struct {
	store identity.Store
	clock clock.Clock
	ttl   time.Duration

	mu      sync.RWMutex
	entries map[string]entry

	stopSweep chan struct{}
	sweepOnce sync.Once
}

// New creates a UserCache over the given identity store. A ttl of zero
// means DefaultTTL.
func New(store identity.Store, clk clock.Clock, ttl time.Duration) *UserCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &UserCache{
		store:     store,
		clock:     clk,
		ttl:       ttl,
		entries:   make(map[string]entry),
		stopSweep: make(chan struct{}),
	}
}

// GetUsers resolves the given ids to user records, serving fresh cache
// entries and batch-fetching the rest from the identity store in a
// single call. Ids the store cannot resolve are absent from the result;
// callers must treat a missing key as "unknown user". Duplicates and
// empty input are fine. If the batch fetch fails the whole call fails
// and the cache is left untouched.
func (c *UserCache) GetUsers(ctx context.Context, ids []string) (map[string]identity.UserInfo, error) {
	now := c.clock.Now()
	result := make(map[string]identity.UserInfo, len(ids))
	var misses []string

	c.mu.RLock()
	for _, id := range ids {
		if _, done := result[id]; done {
			continue
		}
		if e, ok := c.entries[id]; ok && now.Sub(e.capturedAt) < c.ttl {
			result[id] = e.user
		} else {
			misses = append(misses, id)
		}
	}
	c.mu.RUnlock()

	misses = dedupe(misses, result)
	if len(misses) == 0 {
		return result, nil
	}

	fresh, err := c.store.GetByIDs(ctx, misses)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	for _, u := range fresh {
		c.entries[u.ID] = entry{user: *u, capturedAt: now}
		result[u.ID] = *u
	}
	c.mu.Unlock()

	return result, nil
}

// GetUser resolves a single id, or returns nil if unknown
func (c *UserCache) GetUser(ctx context.Context, id string) (*identity.UserInfo, error) {
	users, err := c.GetUsers(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	if u, ok := users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

// Invalidate drops the entry for one user, e.g. after a role change
func (c *UserCache) Invalidate(id string) {
	c.mu.Lock()
	delete(c.entries, id)
	c.mu.Unlock()
}

// Clear drops every cached entry
func (c *UserCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}

// Len returns the number of cached entries, fresh or stale
func (c *UserCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Sweep removes entries older than the TTL regardless of access
func (c *UserCache) Sweep() {
	now := c.clock.Now()
	c.mu.Lock()
	defer c.mu.Unlock()

	for id, e := range c.entries {
		if now.Sub(e.capturedAt) >= c.ttl {
			delete(c.entries, id)
		}
	}
}

// StartSweeper runs Sweep on a ticker at the TTL interval until
// StopSweeper is called
func (c *UserCache) StartSweeper() {
	go func() {
		ticker := time.NewTicker(c.ttl)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.Sweep()
			case <-c.stopSweep:
				return
			}
		}
	}()
}

// StopSweeper stops the periodic sweep goroutine
func (c *UserCache) StopSweeper() {
	c.sweepOnce.Do(func() {
		close(c.stopSweep)
	})
}

// dedupe drops ids already resolved and repeated miss ids so the batch
// fetch sees each id once
func dedupe(ids []string, resolved map[string]identity.UserInfo) []string {
	seen := make(map[string]bool, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if seen[id] {
			continue
		}
		if _, ok := resolved[id]; ok {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
