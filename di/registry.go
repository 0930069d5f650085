package di

import (
	"context"
	"sync"

	"github.com/skillsenselab/browserkit/errors"
)

// Lifetime determines how often a service factory runs.
type Lifetime int

const (
	// Singleton factories run at most once per container lifetime.
	Singleton Lifetime = iota
	// Transient factories run once per Resolve call.
	Transient
)

// String returns the lifetime name for logging.
func (l Lifetime) String() string {
	switch l {
	case Singleton:
		return "singleton"
	case Transient:
		return "transient"
	default:
		return "unknown"
	}
}

// Factory constructs a service value. It may call c.Resolve to pull
// further dependencies; only dependencies declared on the Descriptor
// participate in cycle detection and initialization ordering.
type Factory func(ctx context.Context, c *Container) (any, error)

// Descriptor is the registration record for a service. It is immutable
// after registration.
type Descriptor struct {
	Token    AnyToken
	Factory  Factory
	Lifetime Lifetime
	// Dependencies are resolved in declaration order before Factory runs.
	Dependencies []AnyToken
}

// registry maps token names to descriptors.
type registry struct {
	mu          sync.RWMutex
	descriptors map[string]Descriptor
}

func newRegistry() *registry {
	return &registry{descriptors: make(map[string]Descriptor)}
}

// register stores a descriptor, rejecting duplicate token names. A
// duplicate is a wiring bug, not a condition to retry; the existing
// registration is left untouched.
func (r *registry) register(d Descriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := d.Token.Name()
	if _, exists := r.descriptors[name]; exists {
		return errors.DuplicateRegistration(name)
	}
	r.descriptors[name] = d
	return nil
}

func (r *registry) lookup(name string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.descriptors[name]
	return d, ok
}

func (r *registry) isRegistered(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.descriptors[name]
	return ok
}

func (r *registry) size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.descriptors)
}

func (r *registry) clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.descriptors = make(map[string]Descriptor)
}
