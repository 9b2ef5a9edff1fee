package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/geocoder89/toolhub/internal/domain/favorite"
)

type favoriteKey struct {
	userID string
	toolID string
}

type favoriteRecord struct {
	fav favorite.Favorite
	seq uint64
}

// FavoritesRepo keys links by (user, tool) so a duplicate add is a no-op.
type FavoritesRepo struct {
	mu    sync.RWMutex
	items map[favoriteKey]favoriteRecord
	seq   uint64
	tools *ToolsRepo
}

func NewFavoritesRepo(tools *ToolsRepo) *FavoritesRepo {
	return &FavoritesRepo{
		items: make(map[favoriteKey]favoriteRecord),
		tools: tools,
	}
}

func (r *FavoritesRepo) Add(_ context.Context, userID, toolID string) (bool, error) {
	key := favoriteKey{userID: userID, toolID: toolID}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[key]; exists {
		return false, nil
	}

	r.seq++
	r.items[key] = favoriteRecord{fav: favorite.New(userID, toolID), seq: r.seq}
	return true, nil
}

func (r *FavoritesRepo) Remove(_ context.Context, userID, toolID string) error {
	key := favoriteKey{userID: userID, toolID: toolID}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[key]; !exists {
		return favorite.ErrNotFound
	}
	delete(r.items, key)
	return nil
}

// ListToolIDs returns the user's favorited tool ids in the order they were
// added.
func (r *FavoritesRepo) ListToolIDs(_ context.Context, userID string) ([]string, error) {
	r.mu.RLock()
	recs := make([]favoriteRecord, 0)
	for k, rec := range r.items {
		if k.userID == userID {
			recs = append(recs, rec)
		}
	}
	r.mu.RUnlock()

	sort.Slice(recs, func(i, j int) bool { return recs[i].seq < recs[j].seq })

	out := make([]string, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.fav.ToolID)
	}
	return out, nil
}

// DeleteDangling removes favorites whose tool no longer exists.
func (r *FavoritesRepo) DeleteDangling(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for k := range r.items {
		if !r.tools.exists(k.toolID) {
			delete(r.items, k)
			n++
		}
	}
	return n, nil
}
