package services

import (
	"context"
	"log/slog"

	"github.com/geocoder89/toolhub/internal/cache"
	"github.com/geocoder89/toolhub/internal/domain/tool"
	"github.com/geocoder89/toolhub/internal/observability"
	"github.com/geocoder89/toolhub/internal/utils"
)

const toolsListCacheName = "tools_list"

type ToolStore interface {
	List(ctx context.Context, f tool.Filter) ([]tool.Tool, error)
	GetByID(ctx context.Context, id string) (tool.Tool, error)
	GetMany(ctx context.Context, ids []string) ([]tool.Tool, error)
	Create(ctx context.Context, req tool.CreateRequest) (tool.Tool, error)
	Update(ctx context.Context, id string, p tool.Patch) (tool.Tool, error)
	Delete(ctx context.Context, id string) error
}

// CatalogService serves tool queries with a read-through list cache. Any
// write drops every cached list. Cache failures are logged and bypassed.
type CatalogService struct {
	tools ToolStore
	lists cache.Store
	prom  *observability.Prom
	log   *slog.Logger
}

func NewCatalogService(tools ToolStore, lists cache.Store, prom *observability.Prom, log *slog.Logger) *CatalogService {
	return &CatalogService{
		tools: tools,
		lists: lists,
		prom:  prom,
		log:   loggerOrDefault(log),
	}
}

func (s *CatalogService) observeCache(result string) {
	if s.prom != nil {
		s.prom.ObserveCache(toolsListCacheName, result)
	}
}

// List answers from the cache when it can. The generation is read before
// the store so a result loaded across a write lands under a stale key.
func (s *CatalogService) List(ctx context.Context, f tool.Filter) ([]tool.Tool, error) {
	if s.lists == nil {
		return s.tools.List(ctx, f)
	}

	gen, err := s.lists.Generation(ctx, utils.ToolsListCachePrefix)
	if err != nil {
		s.observeCache("error")
		s.log.WarnContext(ctx, "tools list cache generation read failed", "err", err)
		return s.tools.List(ctx, f)
	}

	key := utils.BuildToolsListCacheKey(gen, f)

	var cached []tool.Tool
	hit, err := s.lists.GetJSON(ctx, key, &cached)
	switch {
	case err != nil:
		s.observeCache("error")
		s.log.WarnContext(ctx, "tools list cache read failed", "key", key, "err", err)
	case hit:
		s.observeCache("hit")
		return cached, nil
	default:
		s.observeCache("miss")
	}

	out, err := s.tools.List(ctx, f)
	if err != nil {
		return nil, err
	}

	if err := s.lists.SetJSON(ctx, key, out); err != nil {
		s.log.WarnContext(ctx, "tools list cache write failed", "key", key, "err", err)
	}

	return out, nil
}

func (s *CatalogService) GetByID(ctx context.Context, id string) (tool.Tool, error) {
	return s.tools.GetByID(ctx, id)
}

// GetMany resolves a batch of ids; unknown ids are skipped.
func (s *CatalogService) GetMany(ctx context.Context, ids []string) ([]tool.Tool, error) {
	return s.tools.GetMany(ctx, ids)
}

func (s *CatalogService) Create(ctx context.Context, req tool.CreateRequest) (tool.Tool, error) {
	t, err := s.tools.Create(ctx, req)
	if err != nil {
		return tool.Tool{}, err
	}

	s.InvalidateLists(ctx)
	s.log.InfoContext(ctx, "tool created", "tool_id", t.ID, "name", t.Name, actorAttr(ctx))

	return t, nil
}

// Update applies a partial update. An empty patch reads the record back
// unchanged and leaves the cache alone.
func (s *CatalogService) Update(ctx context.Context, id string, p tool.Patch) (tool.Tool, error) {
	t, err := s.tools.Update(ctx, id, p)
	if err != nil {
		return tool.Tool{}, err
	}

	if !p.IsEmpty() {
		s.InvalidateLists(ctx)
		s.log.InfoContext(ctx, "tool updated", "tool_id", t.ID, actorAttr(ctx))
	}

	return t, nil
}

func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if err := s.tools.Delete(ctx, id); err != nil {
		return err
	}

	s.InvalidateLists(ctx)
	s.log.InfoContext(ctx, "tool deleted", "tool_id", id, actorAttr(ctx))

	return nil
}

// InvalidateLists drops every cached list result.
func (s *CatalogService) InvalidateLists(ctx context.Context) {
	if s.lists == nil {
		return
	}
	if err := s.lists.Invalidate(ctx, utils.ToolsListCachePrefix); err != nil {
		s.log.WarnContext(ctx, "tools list cache invalidation failed", "err", err)
	}
}
