package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/geocoder89/toolhub/internal/observability"
)

// DanglingSweeper deletes favorites whose tool no longer exists and reports
// how many rows went.
type DanglingSweeper interface {
	DeleteDangling(ctx context.Context) (int64, error)
}

type Config struct {
	// Interval between successful passes.
	Interval time.Duration
	// RunTimeout bounds a single pass.
	RunTimeout time.Duration
	// RetryBase is the first delay after a failed pass; it doubles per
	// consecutive failure and never exceeds Interval.
	RetryBase time.Duration
}

func (c Config) withDefaults() Config {
	if c.Interval <= 0 {
		c.Interval = 5 * time.Minute
	}
	if c.RunTimeout <= 0 {
		c.RunTimeout = 30 * time.Second
	}
	if c.RetryBase <= 0 {
		c.RetryBase = 2 * time.Second
	}
	return c
}

// Reconciler periodically removes favorites left behind by tool deletes.
// Reads already filter them out; the sweep keeps the table from growing.
type Reconciler struct {
	cfg       Config
	favorites DanglingSweeper
	metrics   *observability.ReconcileMetrics
	prom      *observability.Prom
	log       *slog.Logger

	readyMu sync.RWMutex
	ready   bool
}

func New(cfg Config, favorites DanglingSweeper, metrics *observability.ReconcileMetrics, prom *observability.Prom, log *slog.Logger) *Reconciler {
	if metrics == nil {
		metrics = observability.NewReconcileMetrics()
	}
	if log == nil {
		log = slog.Default()
	}

	return &Reconciler{
		cfg:       cfg.withDefaults(),
		favorites: favorites,
		metrics:   metrics,
		prom:      prom,
		log:       log,
	}
}

func (r *Reconciler) setReady(v bool) {
	r.readyMu.Lock()
	r.ready = v
	r.readyMu.Unlock()
}

func (r *Reconciler) isReady() bool {
	r.readyMu.RLock()
	defer r.readyMu.RUnlock()
	return r.ready
}

func (r *Reconciler) Metrics() *observability.ReconcileMetrics {
	return r.metrics
}

// Run sweeps once immediately, then every Interval until ctx is cancelled.
// Failed passes are retried with exponential backoff. The reconciler turns
// ready after its first successful pass.
func (r *Reconciler) Run(ctx context.Context) error {
	defer r.setReady(false)

	timer := time.NewTimer(0)
	defer timer.Stop()

	failures := 0

	for {
		select {
		case <-ctx.Done():
			r.log.Info("reconciler received shutdown signal")
			return nil

		case <-timer.C:
		}

		next := r.cfg.Interval

		if _, err := r.RunOnce(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			next = ExponentialBackoff(failures, r.cfg.RetryBase, r.cfg.Interval)
			failures++
			r.log.Warn("reconcile retry scheduled", "in", next.String(), "consecutive_failures", failures)
		} else {
			failures = 0
			r.setReady(true)
		}

		timer.Reset(next)
	}
}

// RunOnce performs a single sweep.
func (r *Reconciler) RunOnce(ctx context.Context) (int64, error) {
	start := time.Now()
	r.metrics.IncRuns()

	runCtx, cancel := context.WithTimeout(ctx, r.cfg.RunTimeout)
	defer cancel()

	deleted, err := r.favorites.DeleteDangling(runCtx)

	d := time.Since(start)
	r.metrics.ObserveDuration(d)
	if r.prom != nil {
		r.prom.ObserveReconcile(d, deleted, err)
	}

	if err != nil {
		r.metrics.IncFailed()
		r.log.Error("reconcile failed", "err", err, "duration_ms", d.Milliseconds())
		return 0, fmt.Errorf("sweep dangling favorites: %w", err)
	}

	r.metrics.AddDeleted(deleted)
	r.metrics.MarkSuccess(time.Now())

	if deleted > 0 {
		r.log.Info("dangling favorites removed", "deleted", deleted, "duration_ms", d.Milliseconds())
	} else {
		r.log.Debug("reconcile pass clean", "duration_ms", d.Milliseconds())
	}

	return deleted, nil
}
