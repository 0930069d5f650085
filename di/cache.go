package di

import (
	"container/list"
	"time"
)

const (
	defaultCacheMaxSize = 100
	defaultCacheTTL     = 30 * time.Minute
)

// cacheEntry holds one cached resolution. The value is usually a *flight,
// possibly still pending.
type cacheEntry struct {
	value       any
	timestamp   time.Time
	accessCount int64
	elem        *list.Element
}

// CacheOption reconfigures the resolution cache at runtime.
type CacheOption func(*cacheSettings)

type cacheSettings struct {
	maxSize *int
	ttl     *time.Duration
	enabled *bool
}

// WithCacheMaxSize sets the maximum number of cached resolutions.
// Shrinking below the current size evicts least-recently-used entries
// immediately.
func WithCacheMaxSize(n int) CacheOption {
	return func(s *cacheSettings) { s.maxSize = &n }
}

// WithCacheTTL sets the per-entry time-to-live. Zero disables expiry.
func WithCacheTTL(d time.Duration) CacheOption {
	return func(s *cacheSettings) { s.ttl = &d }
}

// WithCacheEnabled toggles caching. Disabling clears the cache entirely;
// re-enabling starts empty.
func WithCacheEnabled(on bool) CacheOption {
	return func(s *cacheSettings) { s.enabled = &on }
}

// resolutionCache is a bounded LRU+TTL map from token name to a cached
// resolution. Only singleton resolutions are ever stored here; singleton
// identity itself lives in the container's instance store, so the cache
// can be flushed or disabled at any time. The cache carries no lock of
// its own: the container's mutex guards every call.
type resolutionCache struct {
	maxSize int
	ttl     time.Duration
	enabled bool

	entries map[string]*cacheEntry
	// order front is the least-recently-used key; get moves a key to the
	// back. Eviction is strict LRU: accessCount never overrides recency.
	order *list.List

	hits         uint64
	misses       uint64
	evictions    uint64
	ttlEvictions uint64
}

func newResolutionCache(maxSize int, ttl time.Duration, enabled bool) *resolutionCache {
	if maxSize <= 0 {
		maxSize = defaultCacheMaxSize
	}
	return &resolutionCache{
		maxSize: maxSize,
		ttl:     ttl,
		enabled: enabled,
		entries: make(map[string]*cacheEntry),
		order:   list.New(),
	}
}

// get returns the cached value for key, counting a hit or miss and
// refreshing the key's recency. Expired entries are removed on sight.
func (rc *resolutionCache) get(key string, now time.Time) (any, bool) {
	if !rc.enabled {
		rc.misses++
		return nil, false
	}

	entry, ok := rc.entries[key]
	if !ok {
		rc.misses++
		return nil, false
	}

	if rc.expired(entry, now) {
		rc.remove(key, entry)
		rc.ttlEvictions++
		rc.misses++
		return nil, false
	}

	entry.accessCount++
	rc.order.MoveToBack(entry.elem)
	rc.hits++
	return entry.value, true
}

// set inserts or replaces the cached value for key with a fresh timestamp.
// A replaced key loses its previous position in the access order. When at
// capacity the least-recently-used key is evicted first.
func (rc *resolutionCache) set(key string, value any, now time.Time) {
	if !rc.enabled {
		return
	}

	if entry, ok := rc.entries[key]; ok {
		rc.remove(key, entry)
	}

	if len(rc.entries) >= rc.maxSize {
		rc.evictOldest()
	}

	elem := rc.order.PushBack(key)
	rc.entries[key] = &cacheEntry{
		value:     value,
		timestamp: now,
		elem:      elem,
	}
}

func (rc *resolutionCache) delete(key string) bool {
	entry, ok := rc.entries[key]
	if !ok {
		return false
	}
	rc.remove(key, entry)
	return true
}

// has reports whether key is cached and not expired. Like get it removes
// expired entries, but it does not touch recency or the hit/miss counters.
func (rc *resolutionCache) has(key string, now time.Time) bool {
	if !rc.enabled {
		return false
	}
	entry, ok := rc.entries[key]
	if !ok {
		return false
	}
	if rc.expired(entry, now) {
		rc.remove(key, entry)
		rc.ttlEvictions++
		return false
	}
	return true
}

// cleanup sweeps all entries once, removing any past TTL. It returns the
// number of entries removed.
func (rc *resolutionCache) cleanup(now time.Time) int {
	if rc.ttl <= 0 {
		return 0
	}
	removed := 0
	for key, entry := range rc.entries {
		if rc.expired(entry, now) {
			rc.remove(key, entry)
			rc.ttlEvictions++
			removed++
		}
	}
	return removed
}

// configure applies a partial reconfiguration.
func (rc *resolutionCache) configure(opts ...CacheOption) {
	var s cacheSettings
	for _, opt := range opts {
		opt(&s)
	}

	if s.enabled != nil && *s.enabled != rc.enabled {
		rc.enabled = *s.enabled
		if !rc.enabled {
			rc.dropAll()
		}
	}
	if s.ttl != nil {
		rc.ttl = *s.ttl
	}
	if s.maxSize != nil && *s.maxSize > 0 {
		rc.maxSize = *s.maxSize
		for len(rc.entries) > rc.maxSize {
			rc.evictOldest()
		}
	}
}

// clear empties the cache without resetting counters.
func (rc *resolutionCache) clear() {
	rc.dropAll()
}

// resetStats zeroes all counters.
func (rc *resolutionCache) resetStats() {
	rc.hits = 0
	rc.misses = 0
	rc.evictions = 0
	rc.ttlEvictions = 0
}

func (rc *resolutionCache) snapshot() CacheStats {
	return CacheStats{
		Size:         len(rc.entries),
		MaxSize:      rc.maxSize,
		TTL:          rc.ttl,
		Enabled:      rc.enabled,
		Hits:         rc.hits,
		Misses:       rc.misses,
		Evictions:    rc.evictions,
		TTLEvictions: rc.ttlEvictions,
	}
}

func (rc *resolutionCache) expired(entry *cacheEntry, now time.Time) bool {
	return rc.ttl > 0 && now.Sub(entry.timestamp) > rc.ttl
}

func (rc *resolutionCache) evictOldest() {
	front := rc.order.Front()
	if front == nil {
		return
	}
	key := front.Value.(string)
	if entry, ok := rc.entries[key]; ok {
		rc.remove(key, entry)
	}
	rc.evictions++
}

func (rc *resolutionCache) remove(key string, entry *cacheEntry) {
	rc.order.Remove(entry.elem)
	delete(rc.entries, key)
}

func (rc *resolutionCache) dropAll() {
	rc.entries = make(map[string]*cacheEntry)
	rc.order.Init()
}
