package di

import "time"

// CacheStats is a read-only snapshot of resolution cache statistics.
type CacheStats struct {
	// Size is the current number of cached resolutions.
	Size int `json:"size"`
	// MaxSize is the cache capacity.
	MaxSize int `json:"max_size"`
	// TTL is the per-entry time-to-live; zero means entries never expire.
	TTL time.Duration `json:"ttl"`
	// Enabled reports whether caching is active.
	Enabled bool `json:"enabled"`
	// Hits counts lookups that returned a live entry.
	Hits uint64 `json:"hits"`
	// Misses counts lookups that found nothing usable.
	Misses uint64 `json:"misses"`
	// Evictions counts entries removed by the LRU capacity policy.
	Evictions uint64 `json:"evictions"`
	// TTLEvictions counts entries removed because they expired.
	TTLEvictions uint64 `json:"ttl_evictions"`
}

// ContainerStats is a read-only snapshot of container statistics.
type ContainerStats struct {
	// ContainerID is the container's unique identifier.
	ContainerID string `json:"container_id"`
	// RegisteredServices is the number of registered descriptors.
	RegisteredServices int `json:"registered_services"`
	// SingletonInstances is the number of materialized singletons.
	SingletonInstances int `json:"singleton_instances"`
	// ResolutionCount is the total number of Resolve calls.
	ResolutionCount uint64 `json:"resolution_count"`
	// CircularChecks is the number of dependency cycles detected.
	CircularChecks uint64 `json:"circular_checks"`
	// InitializationOrder lists token names in the order they first
	// fully resolved.
	InitializationOrder []string `json:"initialization_order"`
	// Cache holds the resolution cache statistics.
	Cache CacheStats `json:"cache"`
}
