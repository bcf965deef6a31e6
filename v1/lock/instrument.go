package lock

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mirkobrombin/go-spin/v1/metrics"
)

// Instrumented wraps a Locker and records acquisitions, contention and time
// spent waiting in the collectors of the metrics package, labelled with the
// lock kind. Register them with metrics.RegisterLockMetrics.
//
// Lock first makes a TryLock attempt to tell contended acquisitions apart.
// Every FIFO lock in this package only succeeds at TryLock when nobody is
// queued, so that attempt never lets a newcomer overtake a waiter.
type Instrumented struct {
	Locker
	kind Kind

	acquired    prometheus.Counter
	contended   prometheus.Counter
	tryFailures prometheus.Counter
	wait        prometheus.Observer
}

// Instrument wraps l. The kind is only used as the metric label.
func Instrument(l Locker, kind Kind) *Instrumented {
	label := kind.String()
	return &Instrumented{
		Locker:      l,
		kind:        kind,
		acquired:    metrics.LockAcquireCounter.WithLabelValues(label),
		contended:   metrics.LockContendedCounter.WithLabelValues(label),
		tryFailures: metrics.LockTryFailureCounter.WithLabelValues(label),
		wait:        metrics.LockWaitHistogram.WithLabelValues(label),
	}
}

// Kind returns the algorithm of the wrapped lock.
func (i *Instrumented) Kind() Kind { return i.kind }

// Lock implements Locker.
func (i *Instrumented) Lock() {
	if i.Locker.TryLock() {
		i.acquired.Inc()
		return
	}
	start := time.Now()
	i.Locker.Lock()
	i.wait.Observe(time.Since(start).Seconds())
	i.contended.Inc()
	i.acquired.Inc()
}

// TryLock implements Locker.
func (i *Instrumented) TryLock() bool {
	if !i.Locker.TryLock() {
		i.tryFailures.Inc()
		return false
	}
	i.acquired.Inc()
	return true
}
