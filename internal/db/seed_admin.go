package db

import (
	"context"
	"errors"

	"github.com/geocoder89/toolhub/internal/config"
	"github.com/geocoder89/toolhub/internal/domain/user"
	"github.com/geocoder89/toolhub/internal/security"
)

type AdminUserStore interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
	Create(ctx context.Context, u user.User) (user.User, error)
}

// EnsureAdminUser creates the configured admin account when it does not
// exist yet. An existing account with that email is left untouched. It
// reports whether a user was created.
func EnsureAdminUser(ctx context.Context, users AdminUserStore, cfg config.Config) (bool, error) {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return false, nil
	}

	_, err := users.GetByEmail(ctx, cfg.AdminEmail)

	if err == nil {
		return false, nil
	}

	if !errors.Is(err, user.ErrNotFound) {
		return false, err
	}

	hash, err := security.HashPassword(cfg.AdminPassword)

	if err != nil {
		return false, err
	}

	name := cfg.AdminName
	if name == "" {
		name = "Admin"
	}

	_, err = users.Create(ctx, user.New(name, cfg.AdminEmail, hash, true))

	// lost a race with another replica provisioning the same account
	if errors.Is(err, user.ErrEmailTaken) {
		return false, nil
	}

	return err == nil, err
}
