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

	"github.com/geocoder89/toolhub/internal/auth"
	"github.com/geocoder89/toolhub/internal/config"
	httpx "github.com/geocoder89/toolhub/internal/http"
	"github.com/geocoder89/toolhub/internal/observability"
	"github.com/geocoder89/toolhub/internal/services"
)

func main() {
	// Load the config set up
	cfg := config.Load()

	// start up the observability logger
	log := observability.NewLogger(cfg.Env)
	slog.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid config", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.OtelEnabled {
		shutdownTracer, err := observability.InitTracer(ctx, observability.TracerConfig{
			Service:     "toolhub-api",
			Env:         cfg.Env,
			Endpoint:    cfg.OtelEndpoint,
			SampleRatio: cfg.OtelSampleRatio,
		})
		if err != nil {
			log.Error("tracer init failed", "err", err)
			os.Exit(1)
		}
		defer func() {
			sctx, cancel := config.WithTimeout(5 * time.Second)
			defer cancel()
			_ = shutdownTracer(sctx)
		}()
	}

	prom := observability.NewProm(prometheus.NewRegistry())

	st, err := openStores(ctx, cfg, prom, log)
	if err != nil {
		log.Error("store setup failed", "err", err)
		os.Exit(1)
	}
	defer st.Close()

	created, err := provisionAdmin(ctx, st.users, cfg)
	if err != nil {
		log.Error("admin provisioning failed", "err", err)
		os.Exit(1)
	}
	if created {
		log.Info("admin user created", "email", cfg.AdminEmail)
	}

	catalog := services.NewCatalogService(st.tools, st.lists, prom, log)

	router := httpx.NewRouter(log, cfg, httpx.Deps{
		Users:       st.users,
		JWT:         auth.NewManager(cfg.JWTSecret, cfg.JWTTTL),
		Catalog:     catalog,
		Submissions: services.NewSubmissionService(st.submissions, catalog, log),
		Favorites:   services.NewFavoritesManager(st.favorites, st.tools, log),
		Prom:        prom,
		ReadyChecks: st.readyChecks,
	})

	// server set up
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.Env, "store", cfg.Store)
		err := srv.ListenAndServe()

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "err", err)
			stop()
		}
	}()

	// Graceful shutdown

	<-ctx.Done()
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		sctx, cancel := config.WithTimeout(10 * time.Second)
		defer cancel()

		if err := srv.Shutdown(sctx); err != nil {
			log.Error("graceful shutdown failed", "err", err)
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}
