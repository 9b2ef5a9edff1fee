// Command seed provisions a fresh deployment.
//
//	seed admin                 create ADMIN_EMAIL as an admin if absent
//	seed tools                 insert the starter catalog into an empty tools table
//	seed featured [name...]    feature exactly the named tools (defaults apply when none given)
//	seed all                   admin, tools, then the default featured set
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/geocoder89/toolhub/internal/config"
	"github.com/geocoder89/toolhub/internal/db"
	"github.com/geocoder89/toolhub/internal/observability"
	"github.com/geocoder89/toolhub/internal/repo/postgres"
)

const usage = "usage: seed admin | tools | featured [name...] | all"

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.Load()
	log := observability.NewLogger(cfg.Env).With("component", "seed")
	slog.SetDefault(log)

	ctx, cancel := config.WithTimeout(time.Minute)
	defer cancel()

	pool, err := db.NewPool(ctx, db.PoolConfigFrom(cfg))
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		log.Error("migrate failed", "err", err)
		os.Exit(1)
	}

	if err := run(ctx, pool, cfg, log, os.Args[1], os.Args[2:]); err != nil {
		log.Error("seed failed", "cmd", os.Args[1], "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, pool *pgxpool.Pool, cfg config.Config, log *slog.Logger, cmd string, args []string) error {
	users := postgres.NewUsersRepo(pool, nil)
	tools := postgres.NewToolsRepo(pool, nil)

	seedAdmin := func() error {
		if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
			return fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
		}
		created, err := db.EnsureAdminUser(ctx, users, cfg)
		if err != nil {
			return err
		}
		if created {
			log.Info("admin user created", "email", cfg.AdminEmail)
		} else {
			log.Info("admin user already exists", "email", cfg.AdminEmail)
		}
		return nil
	}

	seedTools := func() error {
		n, err := db.SeedTools(ctx, tools)
		if err != nil {
			return err
		}
		if n == 0 {
			log.Info("data already seeded")
		} else {
			log.Info("tools seeded", "count", n)
		}
		return nil
	}

	seedFeatured := func(names []string) error {
		n, err := db.ResetFeatured(ctx, tools, names)
		if err != nil {
			return err
		}
		log.Info("featured tools reset", "featured", n)
		return nil
	}

	switch cmd {
	case "admin":
		return seedAdmin()
	case "tools":
		return seedTools()
	case "featured":
		return seedFeatured(args)
	case "all":
		if err := seedAdmin(); err != nil {
			return err
		}
		if err := seedTools(); err != nil {
			return err
		}
		return seedFeatured(nil)
	default:
		return fmt.Errorf("unknown command %q (%s)", cmd, usage)
	}
}
