package di

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/skillsenselab/browserkit/errors"
)

func registerNamed(t *testing.T, c *Container, name string, lifetime Lifetime, deps ...AnyToken) {
	t.Helper()
	d := Descriptor{
		Token: NewToken[string](name),
		Factory: func(ctx context.Context, c *Container) (any, error) {
			return "service:" + name, nil
		},
		Lifetime:     lifetime,
		Dependencies: deps,
	}
	if err := c.Register(d); err != nil {
		t.Fatalf("registering %s: %v", name, err)
	}
}

func TestCircularDependency(t *testing.T) {
	c := newTestContainer()
	defer c.Dispose()

	a := NewToken[string]("a")
	b := NewToken[string]("b")
	registerNamed(t, c, "a", Singleton, b)
	registerNamed(t, c, "b", Singleton, a)

	_, err := c.Resolve(context.Background(), a)
	if err == nil {
		t.Fatal("expected circular dependency error")
	}
	if !errors.HasCode(err, errors.ErrCodeCircularDependency) {
		t.Fatalf("expected CIRCULAR_DEPENDENCY, got %v", err)
	}
	if !strings.Contains(err.Error(), "a") || !strings.Contains(err.Error(), "b") {
		t.Errorf("expected both tokens in the reported path, got %q", err.Error())
	}

	if got := c.Stats().CircularChecks; got != 1 {
		t.Errorf("expected 1 detected cycle, got %d", got)
	}
}

func TestSelfDependencyCycle(t *testing.T) {
	c := newTestContainer()
	defer c.Dispose()

	tok := NewToken[string]("self")
	registerNamed(t, c, "self", Singleton, tok)

	_, err := c.Resolve(context.Background(), tok)
	if !errors.HasCode(err, errors.ErrCodeCircularDependency) {
		t.Fatalf("expected CIRCULAR_DEPENDENCY, got %v", err)
	}
	appErr, _ := errors.AsAppError(err)
	if appErr.Details["path"] != "self -> self" {
		t.Errorf("expected path 'self -> self', got %v", appErr.Details["path"])
	}
}

func TestDeepCyclePathOrder(t *testing.T) {
	c := newTestContainer()
	defer c.Dispose()

	a := NewToken[string]("a")
	b := NewToken[string]("b")
	d := NewToken[string]("d")
	registerNamed(t, c, "a", Singleton, b)
	registerNamed(t, c, "b", Singleton, d)
	registerNamed(t, c, "d", Singleton, a)

	_, err := c.Resolve(context.Background(), a)
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Details["path"] != "a -> b -> d -> a" {
		t.Errorf("expected ordered chain, got %v", appErr.Details["path"])
	}
}

func TestCycleIsRetriableAfterFailure(t *testing.T) {
	c := newTestContainer()
	defer c.Dispose()

	a := NewToken[string]("a")
	b := NewToken[string]("b")
	registerNamed(t, c, "a", Singleton, b)
	registerNamed(t, c, "b", Singleton, a)

	ctx := context.Background()
	if _, err := c.Resolve(ctx, a); err == nil {
		t.Fatal("expected failure")
	}
	// the resolving set must be unwound, so an independent attempt fails
	// with the same clean diagnosis rather than corrupted state
	_, err := c.Resolve(ctx, a)
	if !errors.HasCode(err, errors.ErrCodeCircularDependency) {
		t.Errorf("expected CIRCULAR_DEPENDENCY on retry, got %v", err)
	}
}

func TestDiamondDependencyResolvesOnce(t *testing.T) {
	c := newTestContainer()
	defer c.Dispose()

	// top depends on left and right, both depend on base
	base := NewToken[string]("base")
	left := NewToken[string]("left")
	right := NewToken[string]("right")
	top := NewToken[string]("top")

	baseCalls := 0
	err := c.Register(Descriptor{
		Token: base,
		Factory: func(ctx context.Context, c *Container) (any, error) {
			baseCalls++
			return "base", nil
		},
		// transient lifetime: only the per-call-tree resolved map can
		// deduplicate, which is exactly what the diamond test verifies
		Lifetime: Transient,
	})
	if err != nil {
		t.Fatal(err)
	}
	registerNamed(t, c, "left", Transient, base)
	registerNamed(t, c, "right", Transient, base)
	registerNamed(t, c, "top", Transient, left, right)

	if _, err := c.Resolve(context.Background(), top); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if baseCalls != 1 {
		t.Errorf("expected base factory to run once for the diamond, ran %d times", baseCalls)
	}

	// a second top-level resolution gets a fresh context and a fresh base
	if _, err := c.Resolve(context.Background(), top); err != nil {
		t.Fatalf("second Resolve failed: %v", err)
	}
	if baseCalls != 2 {
		t.Errorf("expected a fresh transient base per call tree, got %d calls", baseCalls)
	}
}

func TestDependenciesResolveInDeclaredOrder(t *testing.T) {
	c := newTestContainer()
	defer c.Dispose()

	var order []string
	mk := func(name string) Descriptor {
		return Descriptor{
			Token: NewToken[string](name),
			Factory: func(ctx context.Context, c *Container) (any, error) {
				order = append(order, name)
				return name, nil
			},
			Lifetime: Singleton,
		}
	}

	first := NewToken[string]("first")
	second := NewToken[string]("second")
	third := NewToken[string]("third")

	c.Register(mk("first"))
	c.Register(mk("second"))
	c.Register(mk("third"))
	registerNamed(t, c, "root", Singleton, first, second, third)

	if _, err := c.Resolve(context.Background(), NewToken[string]("root")); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	want := []string{"first", "second", "third"}
	for i, name := range want {
		if order[i] != name {
			t.Fatalf("expected declaration order %v, got %v", want, order)
		}
	}

	stats := c.Stats()
	wantInit := []string{"first", "second", "third", "root"}
	if len(stats.InitializationOrder) != len(wantInit) {
		t.Fatalf("expected initialization order %v, got %v", wantInit, stats.InitializationOrder)
	}
	for i, name := range wantInit {
		if stats.InitializationOrder[i] != name {
			t.Fatalf("expected initialization order %v, got %v", wantInit, stats.InitializationOrder)
		}
	}
}

func TestMissingDependency(t *testing.T) {
	c := newTestContainer()
	defer c.Dispose()

	missing := NewToken[string]("missing")
	registerNamed(t, c, "root", Singleton, missing)

	_, err := c.Resolve(context.Background(), NewToken[string]("root"))
	if !errors.HasCode(err, errors.ErrCodeNotRegistered) {
		t.Errorf("expected NOT_REGISTERED for missing dependency, got %v", err)
	}
}

func TestFactoryFailurePreservesCause(t *testing.T) {
	c := newTestContainer()
	defer c.Dispose()

	cause := fmt.Errorf("screen recording permission denied")
	tok := NewToken[string]("svc")
	RegisterSingleton(c, tok, func(ctx context.Context, c *Container) (string, error) {
		return "", cause
	})

	_, err := Resolve(context.Background(), c, tok)
	if !errors.HasCode(err, errors.ErrCodeFactoryFailure) {
		t.Fatalf("expected FACTORY_FAILURE, got %v", err)
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected the factory's error to be preserved as the cause")
	}
}

func TestFactoryCanResolveUndeclaredDependencies(t *testing.T) {
	c := newTestContainer()
	defer c.Dispose()

	dep := NewToken[string]("dep")
	RegisterSingleton(c, dep, func(ctx context.Context, c *Container) (string, error) {
		return "dep-value", nil
	})

	tok := NewToken[string]("svc")
	RegisterSingleton(c, tok, func(ctx context.Context, c *Container) (string, error) {
		// pulled at construction time without being declared
		v, err := Resolve(ctx, c, dep)
		if err != nil {
			return "", err
		}
		return "svc(" + v + ")", nil
	})

	val, err := Resolve(context.Background(), c, tok)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if val != "svc(dep-value)" {
		t.Errorf("unexpected value %q", val)
	}
}

func TestSingletonDependencySharedAcrossRoots(t *testing.T) {
	c := newTestContainer()
	defer c.Dispose()

	shared := NewToken[string]("shared")
	calls := 0
	RegisterSingleton(c, shared, func(ctx context.Context, c *Container) (string, error) {
		calls++
		return "shared", nil
	})
	registerNamed(t, c, "svc_a", Singleton, shared)
	registerNamed(t, c, "svc_b", Singleton, shared)

	ctx := context.Background()
	if _, err := c.Resolve(ctx, NewToken[string]("svc_a")); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Resolve(ctx, NewToken[string]("svc_b")); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("expected the shared singleton factory to run once, ran %d times", calls)
	}
}
