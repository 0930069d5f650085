package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/metric"

	"github.com/skillsenselab/browserkit/di"
)

// StatsSource supplies container statistics snapshots. *di.Container
// satisfies it.
type StatsSource interface {
	Stats() di.ContainerStats
}

// ObserveContainer registers asynchronous instruments that observe the
// service container's resolution and cache statistics on each metric
// collection. The returned registration can be unregistered when the
// container is disposed.
func ObserveContainer(meter metric.Meter, source StatsSource) (metric.Registration, error) {
	resolutions, err := meter.Int64ObservableCounter("container.resolutions",
		metric.WithDescription("Total number of service resolutions"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating container.resolutions counter: %w", err)
	}

	registered, err := meter.Int64ObservableGauge("container.services.registered",
		metric.WithDescription("Number of registered service descriptors"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating container.services.registered gauge: %w", err)
	}

	singletons, err := meter.Int64ObservableGauge("container.singletons",
		metric.WithDescription("Number of materialized singleton instances"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating container.singletons gauge: %w", err)
	}

	cycles, err := meter.Int64ObservableCounter("container.cycles.detected",
		metric.WithDescription("Number of dependency cycles detected"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating container.cycles.detected counter: %w", err)
	}

	cacheSize, err := meter.Int64ObservableGauge("container.cache.size",
		metric.WithDescription("Current number of cached resolutions"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating container.cache.size gauge: %w", err)
	}

	cacheHits, err := meter.Int64ObservableCounter("container.cache.hits",
		metric.WithDescription("Resolution cache hits"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating container.cache.hits counter: %w", err)
	}

	cacheMisses, err := meter.Int64ObservableCounter("container.cache.misses",
		metric.WithDescription("Resolution cache misses"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating container.cache.misses counter: %w", err)
	}

	cacheEvictions, err := meter.Int64ObservableCounter("container.cache.evictions",
		metric.WithDescription("Resolution cache evictions, LRU and TTL combined"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating container.cache.evictions counter: %w", err)
	}

	reg, err := meter.RegisterCallback(
		func(ctx context.Context, o metric.Observer) error {
			s := source.Stats()
			o.ObserveInt64(resolutions, int64(s.ResolutionCount))
			o.ObserveInt64(registered, int64(s.RegisteredServices))
			o.ObserveInt64(singletons, int64(s.SingletonInstances))
			o.ObserveInt64(cycles, int64(s.CircularChecks))
			o.ObserveInt64(cacheSize, int64(s.Cache.Size))
			o.ObserveInt64(cacheHits, int64(s.Cache.Hits))
			o.ObserveInt64(cacheMisses, int64(s.Cache.Misses))
			o.ObserveInt64(cacheEvictions, int64(s.Cache.Evictions+s.Cache.TTLEvictions))
			return nil
		},
		resolutions, registered, singletons, cycles,
		cacheSize, cacheHits, cacheMisses, cacheEvictions,
	)
	if err != nil {
		return nil, fmt.Errorf("registering container metrics callback: %w", err)
	}
	return reg, nil
}
