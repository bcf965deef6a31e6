package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestRegisterLockMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	RegisterLockMetrics(reg)
	LockAcquireCounter.WithLabelValues("test").Inc()
	LockContendedCounter.WithLabelValues("test").Inc()
	LockTryFailureCounter.WithLabelValues("test").Inc()
	LockWaitHistogram.WithLabelValues("test").Observe(0.001)
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(mfs) < 4 {
		t.Fatalf("expected metrics registered, got %d families", len(mfs))
	}
}

func TestRegisterLockMetricsDuplicatePanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	RegisterLockMetrics(reg)
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic on duplicate registration")
		}
	}()
	RegisterLockMetrics(reg)
}

func TestEnsureLockMetricsIdempotent(t *testing.T) {
	reg := prometheus.NewRegistry()
	if err := EnsureLockMetrics(reg); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if err := EnsureLockMetrics(reg); err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	registerPanics := func() (panicked bool) {
		defer func() { panicked = recover() != nil }()
		RegisterLockMetrics(reg)
		return false
	}
	if !registerPanics() {
		t.Fatal("expected collectors to be registered by ensure")
	}
}

func TestEnsureLockMetricsConflict(t *testing.T) {
	reg := prometheus.NewRegistry()
	clash := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "spin_lock_acquire_total",
		Help: "conflicting collector without labels",
	})
	reg.MustRegister(clash)
	if err := EnsureLockMetrics(reg); err == nil {
		t.Fatal("expected error for conflicting collector")
	}
}
