package di

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/skillsenselab/browserkit/config"
	"github.com/skillsenselab/browserkit/errors"
	"github.com/skillsenselab/browserkit/logger"
)

const defaultCleanupInterval = 5 * time.Minute

// flight is a shared resolution handle. Concurrent callers resolving the
// same singleton wait on the same flight, so the factory runs exactly once.
type flight struct {
	done  chan struct{}
	value any
	err   error
}

func newFlight() *flight {
	return &flight{done: make(chan struct{})}
}

func (f *flight) complete(value any, err error) {
	f.value = value
	f.err = err
	close(f.done)
}

func (f *flight) wait(ctx context.Context) (any, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Container resolves registered services by token. It owns the registry,
// the singleton instance store, and the bounded resolution cache; all
// mutation goes through its methods.
type Container struct {
	id       string
	registry *registry
	log      *logger.Logger

	// mu guards instances, cache, counters, and the initialization order.
	// It is never held across a factory invocation or a flight wait.
	mu        sync.Mutex
	instances map[string]any
	cache     *resolutionCache

	resolutionCount uint64
	circularChecks  uint64
	initOrder       []string
	initSeen        map[string]struct{}

	cleanupInterval time.Duration
	stopCleanup     chan struct{}
	disposeOnce     sync.Once
}

// Option configures a Container at construction time.
type Option func(*containerOptions)

type containerOptions struct {
	log             *logger.Logger
	cacheMaxSize    int
	cacheTTL        time.Duration
	cacheEnabled    bool
	cleanupInterval time.Duration
}

// WithLogger sets the logger used for container diagnostics.
func WithLogger(l *logger.Logger) Option {
	return func(o *containerOptions) { o.log = l }
}

// WithCaching sets the initial resolution cache parameters.
func WithCaching(maxSize int, ttl time.Duration, enabled bool) Option {
	return func(o *containerOptions) {
		o.cacheMaxSize = maxSize
		o.cacheTTL = ttl
		o.cacheEnabled = enabled
	}
}

// WithCleanupInterval sets how often the background sweep purges expired
// cache entries. Zero disables the sweep.
func WithCleanupInterval(d time.Duration) Option {
	return func(o *containerOptions) { o.cleanupInterval = d }
}

// WithConfig applies a loaded container configuration section.
func WithConfig(cfg config.ContainerConfig) Option {
	return func(o *containerOptions) {
		o.cacheMaxSize = cfg.Cache.MaxSize
		o.cacheTTL = time.Duration(cfg.Cache.TTLMs) * time.Millisecond
		o.cacheEnabled = cfg.Cache.Enabled
		o.cleanupInterval = cfg.CleanupInterval
	}
}

// New creates a container and starts its periodic cache cleanup.
func New(opts ...Option) *Container {
	o := containerOptions{
		cacheMaxSize:    defaultCacheMaxSize,
		cacheTTL:        defaultCacheTTL,
		cacheEnabled:    true,
		cleanupInterval: defaultCleanupInterval,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.WithComponent("di")
	}

	c := &Container{
		id:              uuid.NewString(),
		registry:        newRegistry(),
		log:             o.log,
		instances:       make(map[string]any),
		cache:           newResolutionCache(o.cacheMaxSize, o.cacheTTL, o.cacheEnabled),
		initSeen:        make(map[string]struct{}),
		cleanupInterval: o.cleanupInterval,
		stopCleanup:     make(chan struct{}),
	}

	if c.cleanupInterval > 0 {
		go c.cleanupLoop()
	}

	c.log.Debug("container created", logger.Fields(
		logger.FieldContainerID, c.id,
		logger.FieldCacheSize, o.cacheMaxSize,
	))
	return c
}

// ID returns the container's unique identifier.
func (c *Container) ID() string { return c.id }

// Register stores a descriptor. Registering the same token name twice
// returns a DUPLICATE_REGISTRATION error and leaves the existing
// registration untouched.
func (c *Container) Register(d Descriptor) error {
	if err := c.registry.register(d); err != nil {
		c.log.Error("service registration rejected", logger.ErrorFields("register", err))
		return err
	}
	c.log.Debug("service registered", logger.Fields(
		logger.FieldToken, d.Token.Name(),
		logger.FieldLifetime, d.Lifetime.String(),
	))
	return nil
}

// RegisterSingleton registers a singleton-lifetime service.
func (c *Container) RegisterSingleton(tok AnyToken, factory Factory, deps ...AnyToken) error {
	return c.Register(Descriptor{Token: tok, Factory: factory, Lifetime: Singleton, Dependencies: deps})
}

// RegisterTransient registers a transient-lifetime service.
func (c *Container) RegisterTransient(tok AnyToken, factory Factory, deps ...AnyToken) error {
	return c.Register(Descriptor{Token: tok, Factory: factory, Lifetime: Transient, Dependencies: deps})
}

// IsRegistered reports whether a descriptor exists for the token.
func (c *Container) IsRegistered(tok AnyToken) bool {
	return c.registry.isRegistered(tok.Name())
}

// Resolve resolves a token to its service value. Singleton resolutions
// are deduplicated: concurrent callers for the same unresolved token
// share one factory invocation and receive the same value. Transient
// resolutions always perform a fresh graph walk. All resolution failures
// come back as error values carrying an errors.ErrorCode; Resolve never
// panics.
func (c *Container) Resolve(ctx context.Context, tok AnyToken) (any, error) {
	name := tok.Name()

	c.mu.Lock()
	c.resolutionCount++
	c.mu.Unlock()

	desc, ok := c.registry.lookup(name)
	if !ok {
		// The instance store cannot outlive the registry (descriptors are
		// only removed by Clear, which drops instances too), so this is
		// always a missing registration.
		err := errors.NotRegistered(name)
		c.log.Error("resolution failed", logger.ErrorFields("resolve", err))
		return nil, err
	}

	if desc.Lifetime == Transient {
		return c.resolveGraph(ctx, tok)
	}

	return c.resolveSingleton(ctx, tok, name)
}

// resolveSingleton consults the cache for an in-flight or completed
// resolution before starting its own. The consult-or-insert is atomic
// under the container mutex; the wait happens outside it.
func (c *Container) resolveSingleton(ctx context.Context, tok AnyToken, name string) (any, error) {
	c.mu.Lock()
	if cached, ok := c.cache.get(name, time.Now()); ok {
		c.mu.Unlock()
		return cached.(*flight).wait(ctx)
	}
	fl := newFlight()
	c.cache.set(name, fl, time.Now())
	c.mu.Unlock()

	started := time.Now()
	value, err := c.resolveGraph(ctx, tok)
	fl.complete(value, err)

	if err != nil {
		// Drop the failed flight so a later call retries cleanly instead
		// of replaying a cached failure.
		c.mu.Lock()
		c.cache.delete(name)
		c.mu.Unlock()
		c.log.Error("resolution failed", logger.ErrorFields("resolve", err))
		return nil, err
	}

	c.log.Debug("service resolved", logger.Fields(
		logger.FieldToken, name,
		logger.FieldDuration, time.Since(started).Milliseconds(),
	))
	return value, nil
}

// ConfigureCaching applies a partial cache reconfiguration.
func (c *Container) ConfigureCaching(opts ...CacheOption) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache.configure(opts...)
}

// ClearCache empties the resolution cache without touching registrations
// or singleton instances.
func (c *Container) ClearCache() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache.clear()
}

// Clear removes all descriptors, singleton instances, and cache entries,
// and resets every counter to zero. Safe to call repeatedly.
func (c *Container) Clear() {
	c.registry.clear()

	c.mu.Lock()
	c.instances = make(map[string]any)
	c.cache.clear()
	c.cache.resetStats()
	c.resolutionCount = 0
	c.circularChecks = 0
	c.initOrder = nil
	c.initSeen = make(map[string]struct{})
	c.mu.Unlock()

	c.log.Debug("container cleared", logger.Fields(logger.FieldContainerID, c.id))
}

// Dispose stops the periodic cleanup and clears the container. It is
// idempotent.
func (c *Container) Dispose() {
	c.disposeOnce.Do(func() {
		close(c.stopCleanup)
	})
	c.Clear()
}

// Stats returns a snapshot of container statistics.
func (c *Container) Stats() ContainerStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	order := make([]string, len(c.initOrder))
	copy(order, c.initOrder)

	return ContainerStats{
		ContainerID:         c.id,
		RegisteredServices:  c.registry.size(),
		SingletonInstances:  len(c.instances),
		ResolutionCount:     c.resolutionCount,
		CircularChecks:      c.circularChecks,
		InitializationOrder: order,
		Cache:               c.cache.snapshot(),
	}
}

// CacheStats returns a snapshot of resolution cache statistics.
func (c *Container) CacheStats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.snapshot()
}

// recordInitialized appends the token to the initialization order the
// first time it fully resolves.
func (c *Container) recordInitialized(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, seen := c.initSeen[name]; seen {
		return
	}
	c.initSeen[name] = struct{}{}
	c.initOrder = append(c.initOrder, name)
}

// cleanupLoop periodically purges TTL-expired cache entries so cold,
// never-re-queried singletons do not accumulate.
func (c *Container) cleanupLoop() {
	ticker := time.NewTicker(c.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			removed := c.cache.cleanup(time.Now())
			c.mu.Unlock()
			if removed > 0 {
				c.log.Debug("cache cleanup removed expired entries", logger.Fields(
					logger.FieldContainerID, c.id,
					"removed", removed,
				))
			}
		case <-c.stopCleanup:
			return
		}
	}
}
