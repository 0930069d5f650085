package di

import (
	"context"

	"github.com/skillsenselab/browserkit/errors"
)

// resolveContext is the per-top-level-call traversal state: the ordered
// set of tokens currently being resolved (cycle detection) and the values
// resolved so far in this call tree (diamond-dependency dedup). It is
// created fresh for every top-level Resolve and never shared, so
// independent resolutions cannot contaminate each other's cycle state.
// The flip side, inherited from the original design, is that two
// concurrent top-level calls that mutually depend on each other's
// in-flight token are not detected as a cycle.
type resolveContext struct {
	resolving []string
	inFlight  map[string]struct{}
	resolved  map[string]any
}

func newResolveContext() *resolveContext {
	return &resolveContext{
		inFlight: make(map[string]struct{}),
		resolved: make(map[string]any),
	}
}

func (rc *resolveContext) push(name string) {
	rc.resolving = append(rc.resolving, name)
	rc.inFlight[name] = struct{}{}
}

func (rc *resolveContext) pop(name string) {
	delete(rc.inFlight, name)
	for i := len(rc.resolving) - 1; i >= 0; i-- {
		if rc.resolving[i] == name {
			rc.resolving = append(rc.resolving[:i], rc.resolving[i+1:]...)
			break
		}
	}
}

// cyclePath reports the chain that closed the cycle: the tokens currently
// resolving, in order, followed by the repeated token.
func (rc *resolveContext) cyclePath(name string) []string {
	path := make([]string, 0, len(rc.resolving)+1)
	path = append(path, rc.resolving...)
	path = append(path, name)
	return path
}

// resolveGraph runs a full graph resolution for tok with a fresh context.
func (c *Container) resolveGraph(ctx context.Context, tok AnyToken) (any, error) {
	return c.resolveWithContext(ctx, tok, newResolveContext())
}

// resolveWithContext resolves tok within one resolution call tree:
// detect cycles, short-circuit on values already produced (by this tree
// or a previous singleton materialization), resolve declared dependencies
// strictly in declaration order, then invoke the factory.
func (c *Container) resolveWithContext(ctx context.Context, tok AnyToken, rc *resolveContext) (any, error) {
	name := tok.Name()

	if _, resolving := rc.inFlight[name]; resolving {
		c.mu.Lock()
		c.circularChecks++
		c.mu.Unlock()
		return nil, errors.CircularDependency(rc.cyclePath(name))
	}

	if value, ok := rc.resolved[name]; ok {
		return value, nil
	}

	c.mu.Lock()
	if instance, ok := c.instances[name]; ok {
		c.mu.Unlock()
		rc.resolved[name] = instance
		return instance, nil
	}
	c.mu.Unlock()

	desc, ok := c.registry.lookup(name)
	if !ok {
		return nil, errors.NotRegistered(name)
	}

	rc.push(name)
	// The token must leave the resolving set even on failure, so a later
	// independent Resolve can legitimately re-attempt it.
	defer rc.pop(name)

	for _, dep := range desc.Dependencies {
		if _, err := c.resolveWithContext(ctx, dep, rc); err != nil {
			return nil, err
		}
	}

	value, err := desc.Factory(ctx, c)
	if err != nil {
		return nil, errors.FactoryFailure(name, err)
	}

	if desc.Lifetime == Singleton {
		c.mu.Lock()
		// Store-if-absent keeps singleton identity stable even when the
		// cache is disabled and two resolutions race the factory.
		if existing, ok := c.instances[name]; ok {
			value = existing
		} else {
			c.instances[name] = value
		}
		c.mu.Unlock()
	}

	rc.resolved[name] = value
	c.recordInitialized(name)
	return value, nil
}
