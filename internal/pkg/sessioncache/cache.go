package sessioncache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/workpulse/hr-backend-go/internal/domain/user"
)

// Entry is a cached authenticated-user lookup. LastAccessed and
// ExpiresAt move forward on every hit (sliding TTL).
type Entry struct {
	User         user.User
	LastAccessed time.Time
	ExpiresAt    time.Time
}

// Cache is an in-process TTL cache mapping session IDs to users. It is
// a read-path optimization in front of the authoritative user store and
// is safe for concurrent use. Construct it once at startup and pass it
// by reference; StartCleanup owns the background purge and stops when
// the given context is cancelled.
type Cache struct {
	ttl             time.Duration
	cleanupInterval time.Duration

	mu      sync.Mutex
	entries map[string]*Entry

	stopOnce sync.Once
	stopped  chan struct{}
}

func New(ttl, cleanupInterval time.Duration) *Cache {
	return &Cache{
		ttl:             ttl,
		cleanupInterval: cleanupInterval,
		entries:         make(map[string]*Entry),
		stopped:         make(chan struct{}),
	}
}

// Set stores or replaces the user for a session ID.
func (c *Cache) Set(sessionID string, u user.User) {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[sessionID] = &Entry{
		User:         u,
		LastAccessed: now,
		ExpiresAt:    now.Add(c.ttl),
	}
}

// Get returns the cached user for a session ID and refreshes its TTL.
// An expired entry is evicted immediately and reported as a miss.
func (c *Cache) Get(sessionID string) (user.User, bool) {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[sessionID]
	if !ok {
		return user.User{}, false
	}
	if now.After(entry.ExpiresAt) {
		delete(c.entries, sessionID)
		return user.User{}, false
	}

	entry.LastAccessed = now
	entry.ExpiresAt = now.Add(c.ttl)
	return entry.User, true
}

// Delete removes a session, e.g. on logout.
func (c *Cache) Delete(sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, sessionID)
}

// Len returns the number of entries currently held, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// StartCleanup launches the periodic purge of expired entries. It
// returns immediately; the goroutine exits when ctx is cancelled or
// Stop is called.
func (c *Cache) StartCleanup(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(c.cleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-c.stopped:
				return
			case <-ticker.C:
				removed := c.purgeExpired(time.Now())
				if removed > 0 {
					slog.Debug("Session cache cleanup", "removed", removed)
				}
			}
		}
	}()
}

// Stop terminates the cleanup goroutine. Safe to call more than once.
func (c *Cache) Stop() {
	c.stopOnce.Do(func() { close(c.stopped) })
}

func (c *Cache) purgeExpired(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for id, entry := range c.entries {
		if now.After(entry.ExpiresAt) {
			delete(c.entries, id)
			removed++
		}
	}
	return removed
}
