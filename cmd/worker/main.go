package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/geocoder89/toolhub/internal/config"
	"github.com/geocoder89/toolhub/internal/db"
	"github.com/geocoder89/toolhub/internal/observability"
	"github.com/geocoder89/toolhub/internal/repo/postgres"
	"github.com/geocoder89/toolhub/internal/worker"
)

func main() {
	cfg := config.Load()
	log := observability.NewLogger(cfg.Env).With("component", "reconciler")
	slog.SetDefault(log)

	if cfg.Store != "postgres" {
		log.Error("the reconciler needs STORE=postgres", "store", cfg.Store)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)

	defer stop()

	pool, err := db.NewPool(ctx, db.PoolConfigFrom(cfg))

	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}

	defer pool.Close()

	prom := observability.NewProm(prometheus.NewRegistry())
	favoritesRepo := postgres.NewFavoritesRepo(pool, prom)

	r := worker.New(worker.Config{
		Interval:   cfg.ReconcileInterval,
		RunTimeout: 30 * time.Second,
		RetryBase:  2 * time.Second,
	}, favoritesRepo, observability.NewReconcileMetrics(), prom, log)

	healthSrv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.WorkerHealthPort),
		Handler:           r.HealthHandler(pool),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("worker health server starting", "port", cfg.WorkerHealthPort)
		if err := healthSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("worker health server failed", "err", err)
		}
	}()

	log.Info("reconciler has started", "interval", cfg.ReconcileInterval.String())

	if err := r.Run(ctx); err != nil {
		log.Error("reconciler stopped with error", "err", err)
	}

	sctx, cancel := config.WithTimeout(5 * time.Second)
	defer cancel()
	_ = healthSrv.Shutdown(sctx)

	log.Info("reconciler shutdown complete")
}
