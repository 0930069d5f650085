package observability

import (
	"testing"
	"time"

	"go.opentelemetry.io/otel/metric/noop"

	"github.com/skillsenselab/browserkit/di"
)

func TestDefaultMeterConfig(t *testing.T) {
	cfg := DefaultMeterConfig("test-service")

	if cfg.ServiceName != "test-service" {
		t.Errorf("expected ServiceName 'test-service', got %s", cfg.ServiceName)
	}
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("expected Endpoint 'localhost:4318', got %s", cfg.Endpoint)
	}
	if !cfg.Insecure {
		t.Error("expected Insecure to be true")
	}
	if cfg.Interval != 15*time.Second {
		t.Errorf("expected Interval 15s, got %v", cfg.Interval)
	}
}

func TestObserveContainer(t *testing.T) {
	c := di.New(di.WithCleanupInterval(0))
	defer c.Dispose()

	meter := noop.NewMeterProvider().Meter("test")
	reg, err := ObserveContainer(meter, c)
	if err != nil {
		t.Fatalf("unexpected error registering container metrics: %v", err)
	}
	if reg == nil {
		t.Fatal("expected non-nil registration")
	}
	if err := reg.Unregister(); err != nil {
		t.Errorf("unexpected error unregistering: %v", err)
	}
}

type fakeStats struct {
	stats di.ContainerStats
}

func (f *fakeStats) Stats() di.ContainerStats { return f.stats }

func TestObserveContainerWithCustomSource(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	src := &fakeStats{stats: di.ContainerStats{ResolutionCount: 42}}

	if _, err := ObserveContainer(meter, src); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
