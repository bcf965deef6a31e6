package lock

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	spinerrors "github.com/mirkobrombin/go-spin/v1/errors"
	"github.com/mirkobrombin/go-spin/v1/metrics"
)

// Option configures New.
type Option func(*factoryConfig)

type factoryConfig struct {
	reg prometheus.Registerer
}

// WithMetrics wraps the lock with Prometheus instrumentation. The lock
// collectors are registered on reg unless they already are.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(cfg *factoryConfig) {
		cfg.reg = reg
	}
}

// New returns a Locker implementing the selected algorithm.
func New(kind Kind, opts ...Option) (Locker, error) {
	var cfg factoryConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var l Locker
	switch kind {
	case KindTAS:
		l = NewTAS()
	case KindBackoff:
		l = NewBackoff()
	case KindElided:
		l = NewElided()
	case KindTicket:
		l = NewTicket()
	case KindMCS:
		l = NewMCS()
	case KindK42:
		l = NewK42()
	case KindMutex:
		l = NewMutex()
	default:
		return nil, fmt.Errorf("%w: %v", spinerrors.ErrUnknownKind, kind)
	}

	if cfg.reg != nil {
		if err := metrics.EnsureLockMetrics(cfg.reg); err != nil {
			return nil, fmt.Errorf("register lock metrics: %w", err)
		}
		l = Instrument(l, kind)
	}
	return l, nil
}
