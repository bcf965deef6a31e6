package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// LockAcquireCounter tracks successful acquisitions per lock kind.
	LockAcquireCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "spin_lock_acquire_total",
		Help: "Total number of lock acquisitions",
	}, []string{"kind"})
	// LockContendedCounter tracks acquisitions that had to wait.
	LockContendedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "spin_lock_contended_total",
		Help: "Total number of lock acquisitions that found the lock busy",
	}, []string{"kind"})
	// LockTryFailureCounter tracks TryLock calls that found the lock busy.
	LockTryFailureCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "spin_lock_trylock_failures_total",
		Help: "Total number of failed TryLock attempts",
	}, []string{"kind"})
	// LockWaitHistogram reports how long contended acquisitions waited.
	LockWaitHistogram = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "spin_lock_wait_seconds",
		Help:    "Time spent waiting for a contended lock",
		Buckets: prometheus.ExponentialBuckets(1e-7, 4, 12),
	}, []string{"kind"})
)

func lockCollectors() []prometheus.Collector {
	return []prometheus.Collector{
		LockAcquireCounter,
		LockContendedCounter,
		LockTryFailureCounter,
		LockWaitHistogram,
	}
}

// NewRegistry creates a new Prometheus registry.
func NewRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

// RegisterLockMetrics registers the lock collectors on the provided registry.
// It panics if they are already registered there.
func RegisterLockMetrics(reg prometheus.Registerer) {
	reg.MustRegister(lockCollectors()...)
}

// EnsureLockMetrics registers the lock collectors on reg, tolerating ones
// that are already registered.
func EnsureLockMetrics(reg prometheus.Registerer) error {
	for _, c := range lockCollectors() {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if !errors.As(err, &are) {
				return err
			}
		}
	}
	return nil
}
