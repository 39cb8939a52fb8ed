package verify

import (
	"sync"
	"time"

	"github.com/poiesic/counselit/core"
)

// DefaultCacheTTL is how long verification results stay valid.
const DefaultCacheTTL = 24 * time.Hour

// Clock supplies the current time. Injectable for deterministic tests.
type Clock func() time.Time

type cacheKey struct {
	subject   string
	claim     string
	claimType ClaimType
}

// Cache stores verification results keyed by (subject, claim, claim type).
//
// Expired entries are recomputed on next access rather than proactively
// evicted. Concurrent readers are safe; concurrent writers of the same key
// are last-writer-wins, which is acceptable because entries are idempotent
// recomputations of the same claim.
type Cache struct {
	mu      sync.RWMutex
	entries map[cacheKey]*core.VerificationResult
	ttl     time.Duration
	now     Clock
}

// NewCache creates a verification cache.
// A non-positive ttl falls back to DefaultCacheTTL; a nil clock falls back
// to time.Now.
func NewCache(ttl time.Duration, now Clock) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Cache{
		entries: make(map[cacheKey]*core.VerificationResult),
		ttl:     ttl,
		now:     now,
	}
}

// Get returns the live cached result for the key, if any.
// Expired entries are reported as absent but left in place; the next Put
// overwrites them.
func (c *Cache) Get(subject, claim string, claimType ClaimType) (*core.VerificationResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result, ok := c.entries[cacheKey{subject, claim, claimType}]
	if !ok {
		return nil, false
	}
	if c.now().Sub(result.VerifiedAt) >= c.ttl {
		return nil, false
	}
	return result, true
}

// Put stores a result for the key, replacing any previous entry.
func (c *Cache) Put(subject, claim string, claimType ClaimType, result *core.VerificationResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey{subject, claim, claimType}] = result
}

// Len reports the number of entries, including expired ones.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
