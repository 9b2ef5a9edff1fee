package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/geocoder89/toolhub/internal/cache"
	"github.com/geocoder89/toolhub/internal/config"
	"github.com/geocoder89/toolhub/internal/db"
	"github.com/geocoder89/toolhub/internal/http/handlers"
	"github.com/geocoder89/toolhub/internal/observability"
	"github.com/geocoder89/toolhub/internal/redisclient"
	"github.com/geocoder89/toolhub/internal/repo/memory"
	"github.com/geocoder89/toolhub/internal/repo/postgres"
	"github.com/geocoder89/toolhub/internal/services"
)

type stores struct {
	users       handlers.UserStore
	tools       services.ToolStore
	submissions services.SubmissionStore
	favorites   services.FavoriteStore
	lists       cache.Store

	readyChecks map[string]handlers.PingFunc
	closers     []func()
}

func (s *stores) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

// openStores wires the document store selected by STORE and the list
// cache (Redis when REDIS_ADDR is set, in-process otherwise).
func openStores(ctx context.Context, cfg config.Config, prom *observability.Prom, log *slog.Logger) (*stores, error) {
	st := &stores{readyChecks: map[string]handlers.PingFunc{}}

	switch cfg.Store {
	case "memory":
		tools := memory.NewToolsRepo()
		st.users = memory.NewUsersRepo()
		st.tools = tools
		st.submissions = memory.NewSubmissionsRepo(tools)
		st.favorites = memory.NewFavoritesRepo(tools)

		n, err := db.SeedTools(ctx, tools)
		if err != nil {
			return nil, fmt.Errorf("seed memory catalog: %w", err)
		}
		log.Info("memory store seeded", "tools", n)

	default:
		pool, err := db.NewPool(ctx, db.PoolConfigFrom(cfg))
		if err != nil {
			return nil, fmt.Errorf("db connect: %w", err)
		}
		st.closers = append(st.closers, pool.Close)

		if err := db.Migrate(ctx, pool); err != nil {
			st.Close()
			return nil, fmt.Errorf("db migrate: %w", err)
		}

		st.users = postgres.NewUsersRepo(pool, prom)
		st.tools = postgres.NewToolsRepo(pool, prom)
		st.submissions = postgres.NewSubmissionsRepo(pool, prom)
		st.favorites = postgres.NewFavoritesRepo(pool, prom)
		st.readyChecks["db"] = pingPool(pool)
	}

	rcfg := redisclient.Config{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB}
	if rcfg.Enabled() {
		rc, err := redisclient.Connect(ctx, rcfg)
		if err != nil {
			st.Close()
			return nil, err
		}
		st.closers = append(st.closers, func() { _ = rc.Close() })
		st.lists = cache.NewRedisStore(rc.Raw(), cfg.CacheTTL)
		st.readyChecks["redis"] = rc.Ping
		log.Info("tools list cache: redis", "addr", cfg.RedisAddr)
	} else {
		st.lists = cache.New(cfg.CacheTTL)
		log.Info("tools list cache: in-process")
	}

	return st, nil
}

func pingPool(pool *pgxpool.Pool) handlers.PingFunc {
	return func(ctx context.Context) error {
		return pool.Ping(ctx)
	}
}

func provisionAdmin(ctx context.Context, users handlers.UserStore, cfg config.Config) (bool, error) {
	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return db.EnsureAdminUser(cctx, users, cfg)
}
