package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/geocoder89/toolhub/internal/domain/tool"
)

type toolRecord struct {
	tool tool.Tool
	seq  uint64
}

type ToolsRepo struct {
	mu    sync.RWMutex
	items map[string]toolRecord
	seq   uint64
}

func NewToolsRepo() *ToolsRepo {
	return &ToolsRepo{
		items: make(map[string]toolRecord),
	}
}

// insertLocked stores t; the caller holds mu.
func (r *ToolsRepo) insertLocked(t tool.Tool) {
	r.seq++
	r.items[t.ID] = toolRecord{tool: t.Clone(), seq: r.seq}
}

func (r *ToolsRepo) insert(t tool.Tool) {
	r.mu.Lock()
	r.insertLocked(t)
	r.mu.Unlock()
}

func (r *ToolsRepo) Create(_ context.Context, req tool.CreateRequest) (tool.Tool, error) {
	t := tool.NewFromCreateRequest(req)
	r.insert(t)
	return t.Clone(), nil
}

// List filters and sorts by name, ties broken by insertion order.
func (r *ToolsRepo) List(_ context.Context, f tool.Filter) ([]tool.Tool, error) {
	r.mu.RLock()
	recs := make([]toolRecord, 0, len(r.items))
	for _, rec := range r.items {
		if f.Matches(rec.tool) {
			recs = append(recs, rec)
		}
	}
	r.mu.RUnlock()

	sort.Slice(recs, func(i, j int) bool {
		if recs[i].tool.Name != recs[j].tool.Name {
			return recs[i].tool.Name < recs[j].tool.Name
		}
		return recs[i].seq < recs[j].seq
	})

	out := make([]tool.Tool, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.tool.Clone())
	}
	return out, nil
}

func (r *ToolsRepo) GetByID(_ context.Context, id string) (tool.Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.items[id]
	if !ok {
		return tool.Tool{}, tool.ErrNotFound
	}
	return rec.tool.Clone(), nil
}

func (r *ToolsRepo) GetMany(_ context.Context, ids []string) ([]tool.Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]tool.Tool, 0, len(ids))
	for _, id := range ids {
		if rec, ok := r.items[id]; ok {
			out = append(out, rec.tool.Clone())
		}
	}
	return out, nil
}

func (r *ToolsRepo) Update(_ context.Context, id string, p tool.Patch) (tool.Tool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.items[id]
	if !ok {
		return tool.Tool{}, tool.ErrNotFound
	}
	if p.IsEmpty() {
		return rec.tool.Clone(), nil
	}

	rec.tool = p.Apply(rec.tool)
	rec.tool.UpdatedAt = time.Now().UTC()
	r.items[id] = rec

	return rec.tool.Clone(), nil
}

func (r *ToolsRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return tool.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *ToolsRepo) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items), nil
}

func (r *ToolsRepo) SetFeaturedOnly(_ context.Context, names []string) (int64, error) {
	want := make(map[string]struct{}, len(names))
	for _, n := range names {
		want[n] = struct{}{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	var n int64
	for id, rec := range r.items {
		_, featured := want[rec.tool.Name]
		if featured {
			n++
		}
		if rec.tool.Featured || featured {
			rec.tool.Featured = featured
			rec.tool.UpdatedAt = now
			r.items[id] = rec
		}
	}
	return n, nil
}

func (r *ToolsRepo) exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.items[id]
	return ok
}
