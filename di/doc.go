// Package di provides the dependency injection container for browserkit
// applications.
//
// Services are identified by typed tokens and registered with a factory,
// a lifetime (singleton or transient), and their declared dependencies.
// The container resolves dependency graphs recursively, detects cycles,
// deduplicates concurrent resolution of the same singleton, and bounds
// its resolution cache with LRU and TTL eviction.
//
// # Registration
//
//	var Logger = di.NewToken[*logger.Logger]("logger")
//
//	di.RegisterSingleton(c, Logger, func(ctx context.Context, c *di.Container) (*logger.Logger, error) {
//	    return logger.NewDefault("automation"), nil
//	})
//
// # Resolution
//
//	log, err := di.Resolve(ctx, c, Logger)
package di
