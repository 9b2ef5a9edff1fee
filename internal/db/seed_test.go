package db_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geocoder89/toolhub/internal/config"
	"github.com/geocoder89/toolhub/internal/db"
	"github.com/geocoder89/toolhub/internal/domain/tool"
	"github.com/geocoder89/toolhub/internal/repo/memory"
	"github.com/geocoder89/toolhub/internal/security"
)

func TestEnsureAdminUser(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUsersRepo()
	cfg := config.Config{AdminEmail: "admin@example.com", AdminPassword: "s3cret", AdminName: "Root"}

	created, err := db.EnsureAdminUser(ctx, users, cfg)
	require.NoError(t, err)
	assert.True(t, created)

	u, err := users.GetByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.True(t, u.IsAdmin)
	assert.Equal(t, "Root", u.Name)
	assert.True(t, security.VerifyPassword("s3cret", u.PasswordHash))

	created, err = db.EnsureAdminUser(ctx, users, cfg)
	require.NoError(t, err)
	assert.False(t, created)
}

func TestEnsureAdminUser_NoConfigIsNoop(t *testing.T) {
	created, err := db.EnsureAdminUser(context.Background(), memory.NewUsersRepo(), config.Config{})
	require.NoError(t, err)
	assert.False(t, created)
}

func TestSeedTools_Idempotent(t *testing.T) {
	ctx := context.Background()
	tools := memory.NewToolsRepo()

	n, err := db.SeedTools(ctx, tools)
	require.NoError(t, err)
	assert.Greater(t, n, 0)

	again, err := db.SeedTools(ctx, tools)
	require.NoError(t, err)
	assert.Equal(t, 0, again)

	count, _ := tools.Count(ctx)
	assert.Equal(t, n, count)
}

func TestResetFeatured_DefaultsToConfiguredNames(t *testing.T) {
	ctx := context.Background()
	tools := memory.NewToolsRepo()
	_, err := db.SeedTools(ctx, tools)
	require.NoError(t, err)

	n, err := db.ResetFeatured(ctx, tools, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(len(db.DefaultFeatured)), n)

	featured := 0
	all, _ := tools.List(ctx, tool.Filter{})
	for _, tl := range all {
		if tl.Featured {
			featured++
			assert.Contains(t, db.DefaultFeatured, tl.Name)
		}
	}
	assert.Equal(t, len(db.DefaultFeatured), featured)
}
