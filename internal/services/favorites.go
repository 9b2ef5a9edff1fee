package services

import (
	"context"
	"log/slog"

	"github.com/geocoder89/toolhub/internal/domain/tool"
)

type FavoriteStore interface {
	Add(ctx context.Context, userID, toolID string) (bool, error)
	Remove(ctx context.Context, userID, toolID string) error
	ListToolIDs(ctx context.Context, userID string) ([]string, error)
}

type ToolBatchReader interface {
	GetMany(ctx context.Context, ids []string) ([]tool.Tool, error)
}

type AddOutcome int

const (
	Added AddOutcome = iota + 1
	AlreadyFavorited
)

func (o AddOutcome) String() string {
	switch o {
	case Added:
		return "added"
	case AlreadyFavorited:
		return "already_favorited"
	default:
		return "unknown"
	}
}

type FavoritesManager struct {
	favorites FavoriteStore
	tools     ToolBatchReader
	log       *slog.Logger
}

func NewFavoritesManager(favorites FavoriteStore, tools ToolBatchReader, log *slog.Logger) *FavoritesManager {
	return &FavoritesManager{
		favorites: favorites,
		tools:     tools,
		log:       loggerOrDefault(log),
	}
}

// Add is idempotent: a second add of the same pair reports
// AlreadyFavorited and stores nothing.
func (m *FavoritesManager) Add(ctx context.Context, userID, toolID string) (AddOutcome, error) {
	added, err := m.favorites.Add(ctx, userID, toolID)
	if err != nil {
		return 0, err
	}

	if !added {
		return AlreadyFavorited, nil
	}

	m.log.InfoContext(ctx, "favorite added", "user_id", userID, "tool_id", toolID)
	return Added, nil
}

func (m *FavoritesManager) Remove(ctx context.Context, userID, toolID string) error {
	return m.favorites.Remove(ctx, userID, toolID)
}

// List resolves the user's favorites with one batch lookup, in the order
// they were added. Favorites pointing at deleted tools are dropped.
func (m *FavoritesManager) List(ctx context.Context, userID string) ([]tool.Tool, error) {
	ids, err := m.favorites.ListToolIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]tool.Tool, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	found, err := m.tools.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]tool.Tool, len(found))
	for _, t := range found {
		byID[t.ID] = t
	}

	for _, id := range ids {
		if t, ok := byID[id]; ok {
			out = append(out, t)
		}
	}

	return out, nil
}
