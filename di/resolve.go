package di

import (
	"context"
	"fmt"
)

// RegisterSingleton registers a typed singleton factory.
//
// Example:
//
//	di.RegisterSingleton(c, tokens.RateLimiter, newRateLimiter, tokens.Config)
func RegisterSingleton[T any](c *Container, tok Token[T], factory func(ctx context.Context, c *Container) (T, error), deps ...AnyToken) error {
	return c.RegisterSingleton(tok, eraseFactory(factory), deps...)
}

// RegisterTransient registers a typed transient factory.
func RegisterTransient[T any](c *Container, tok Token[T], factory func(ctx context.Context, c *Container) (T, error), deps ...AnyToken) error {
	return c.RegisterTransient(tok, eraseFactory(factory), deps...)
}

// Resolve resolves a typed token, returning an error on failure.
//
// Example:
//
//	limiter, err := di.Resolve(ctx, c, tokens.RateLimiter)
//	if err != nil {
//	    return fmt.Errorf("failed to get rate limiter: %w", err)
//	}
func Resolve[T any](ctx context.Context, c *Container, tok Token[T]) (T, error) {
	var zero T
	instance, err := c.Resolve(ctx, tok)
	if err != nil {
		return zero, err
	}
	result, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("di: service %s is %T, expected %T", tok.Name(), instance, zero)
	}
	return result, nil
}

// MustResolve resolves a typed token, panicking on error. Use this in
// startup wiring where a missing service is unrecoverable.
func MustResolve[T any](ctx context.Context, c *Container, tok Token[T]) T {
	result, err := Resolve(ctx, c, tok)
	if err != nil {
		panic(fmt.Sprintf("di: failed to resolve %s: %v", tok.Name(), err))
	}
	return result
}

// TryResolve resolves a typed token, returning the zero value and false
// when the service is unavailable. Use this when a dependency is optional.
func TryResolve[T any](ctx context.Context, c *Container, tok Token[T]) (T, bool) {
	result, err := Resolve(ctx, c, tok)
	if err != nil {
		var zero T
		return zero, false
	}
	return result, true
}

func eraseFactory[T any](factory func(ctx context.Context, c *Container) (T, error)) Factory {
	return func(ctx context.Context, c *Container) (any, error) {
		return factory(ctx, c)
	}
}
