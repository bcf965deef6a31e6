package bench

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	spinerrors "github.com/mirkobrombin/go-spin/v1/errors"
	"github.com/mirkobrombin/go-spin/v1/lock"
)

var tracer = otel.Tracer("github.com/mirkobrombin/go-spin/v1/bench")

// bindCPU pins the calling thread for worker id. Tests replace it.
var bindCPU = bindThread

// DefaultPairs is the total number of lock/unlock pairs per run.
const DefaultPairs = 16000000

// Config describes a single benchmark run.
type Config struct {
	// Kind selects the lock algorithm.
	Kind lock.Kind
	// Threads is the number of goroutines competing for the lock.
	Threads int
	// Pairs is the total number of lock/unlock pairs. It must be a multiple
	// of Threads so that every goroutine does the same amount of work.
	Pairs int
	// BindCPU pins every goroutine to its own OS thread and CPU.
	BindCPU bool
	// Registerer, when set, instruments the lock with Prometheus metrics.
	Registerer prometheus.Registerer
}

func (c Config) validate() error {
	if c.Threads <= 0 {
		return fmt.Errorf("%w: threads must be positive, got %d", spinerrors.ErrInvalidConfig, c.Threads)
	}
	if c.Kind == lock.KindTicket && c.Threads > lock.MaxTicketWaiters {
		return fmt.Errorf("%w: ticket lock supports at most %d threads, got %d", spinerrors.ErrInvalidConfig, lock.MaxTicketWaiters, c.Threads)
	}
	if c.Pairs <= 0 || c.Pairs%c.Threads != 0 {
		return fmt.Errorf("%w: pairs %d is not a positive multiple of threads %d", spinerrors.ErrInvalidConfig, c.Pairs, c.Threads)
	}
	return nil
}

// Result reports a completed run.
type Result struct {
	RunID   string
	Kind    lock.Kind
	Threads int
	Pairs   int
	Elapsed time.Duration
	// Counter is the final value of the shared counter. It equals Pairs
	// unless the lock failed to provide mutual exclusion.
	Counter int
}

// Throughput returns lock/unlock pairs per second.
func (r Result) Throughput() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Pairs) / r.Elapsed.Seconds()
}

// AvgLatency returns the mean wall time per lock/unlock pair.
func (r Result) AvgLatency() time.Duration {
	if r.Pairs == 0 {
		return 0
	}
	return r.Elapsed / time.Duration(r.Pairs)
}

// Run executes the benchmark described by cfg.
func Run(ctx context.Context, cfg Config) (Result, error) {
	if err := cfg.validate(); err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	res := Result{
		RunID:   uuid.NewString(),
		Kind:    cfg.Kind,
		Threads: cfg.Threads,
		Pairs:   cfg.Pairs,
	}
	ctx, span := tracer.Start(ctx, "Bench.Run")
	defer span.End()
	span.SetAttributes(
		attribute.String("spin.bench.run_id", res.RunID),
		attribute.String("spin.bench.kind", cfg.Kind.String()),
		attribute.Int("spin.bench.threads", cfg.Threads),
		attribute.Int("spin.bench.pairs", cfg.Pairs),
	)

	var opts []lock.Option
	if cfg.Registerer != nil {
		opts = append(opts, lock.WithMetrics(cfg.Registerer))
	}
	l, err := lock.New(cfg.Kind, opts...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}

	slog.DebugContext(ctx, "bench run starting", "run_id", res.RunID, "kind", cfg.Kind, "threads", cfg.Threads, "pairs", cfg.Pairs)

	var (
		counter    int
		arrived    atomic.Int32
		running    atomic.Int32
		start, end time.Time
		g          errgroup.Group
	)
	perThread := cfg.Pairs / cfg.Threads
	running.Store(int32(cfg.Threads))

	for id := 0; id < cfg.Threads; id++ {
		id := id
		g.Go(func() error {
			var bindErr error
			if cfg.BindCPU {
				runtime.LockOSThread()
				defer runtime.UnlockOSThread()
				if err := bindCPU(id); err != nil {
					slog.WarnContext(ctx, "bind cpu failed", "worker", id, "error", err)
					// Keep going: the other workers are already waiting at
					// the barrier for this one.
					bindErr = fmt.Errorf("bind worker %d: %w", id, err)
				}
			}
			waitFlag(&arrived, int32(cfg.Threads))
			if id == 0 {
				start = time.Now()
			}

			for i := 0; i < perThread; i++ {
				l.Lock()
				counter++
				l.Unlock()
			}

			if running.Add(-1) == 0 {
				end = time.Now()
			}
			return bindErr
		})
	}
	err = g.Wait()

	res.Elapsed = end.Sub(start)
	res.Counter = counter
	span.SetAttributes(attribute.Int64("spin.bench.elapsed_ns", res.Elapsed.Nanoseconds()))

	if err == nil && res.Counter != res.Pairs {
		err = fmt.Errorf("%w: %v counter is %d, want %d", spinerrors.ErrLostUpdate, cfg.Kind, res.Counter, res.Pairs)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return res, err
	}
	return res, nil
}

// waitFlag announces arrival and spins until all expected workers arrived,
// so that they start contending at the same moment.
func waitFlag(flag *atomic.Int32, expect int32) {
	flag.Add(1)
	for flag.Load() != expect {
		runtime.Gosched()
	}
}
