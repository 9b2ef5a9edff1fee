package db

import (
	"context"

	"github.com/geocoder89/toolhub/internal/domain/tool"
)

// DefaultFeatured are the tools highlighted on the home page after a
// featured reset with no explicit names.
var DefaultFeatured = []string{"Perplexity AI", "Comet Browser"}

type ToolSeeder interface {
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, req tool.CreateRequest) (tool.Tool, error)
}

type FeaturedSetter interface {
	SetFeaturedOnly(ctx context.Context, names []string) (int64, error)
}

// SeedTools inserts the starter catalog into an empty tools table. It is a
// no-op returning 0 once any tool exists.
func SeedTools(ctx context.Context, tools ToolSeeder) (int, error) {
	n, err := tools.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	for i, req := range starterCatalog {
		if _, err := tools.Create(ctx, req); err != nil {
			return i, err
		}
	}

	return len(starterCatalog), nil
}

// ResetFeatured leaves exactly the named tools featured. An empty list
// falls back to DefaultFeatured.
func ResetFeatured(ctx context.Context, tools FeaturedSetter, names []string) (int64, error) {
	if len(names) == 0 {
		names = DefaultFeatured
	}
	return tools.SetFeaturedOnly(ctx, names)
}
