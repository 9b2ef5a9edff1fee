package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/geocoder89/toolhub/internal/domain/tool"
	"github.com/geocoder89/toolhub/internal/observability"
	"github.com/geocoder89/toolhub/internal/utils"
)

const toolColumns = `id, name, description, long_description, category, pricing, tags, image, url, featured, created_at, updated_at`

type ToolsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewToolsRepo(pool *pgxpool.Pool, prom *observability.Prom) *ToolsRepo {
	return &ToolsRepo{pool: pool, prom: prom}
}

func (r *ToolsRepo) observe(op string, fn func() error) error {
	return observe(r.prom, op, fn)
}

func scanTool(row scanner) (tool.Tool, error) {
	var t tool.Tool

	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.Description,
		&t.LongDescription,
		&t.Category,
		&t.Pricing,
		&t.Tags,
		&t.Image,
		&t.URL,
		&t.Featured,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return tool.Tool{}, err
	}

	if t.Tags == nil {
		t.Tags = []string{}
	}
	return t, nil
}

func insertTool(ctx context.Context, q querier, t tool.Tool) error {
	_, err := q.Exec(ctx,
		`INSERT INTO tools (`+toolColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		t.ID, t.Name, t.Description, t.LongDescription, t.Category, t.Pricing,
		t.Tags, t.Image, t.URL, t.Featured, t.CreatedAt, t.UpdatedAt,
	)
	return err
}

func (r *ToolsRepo) Create(ctx context.Context, req tool.CreateRequest) (tool.Tool, error) {
	t := tool.NewFromCreateRequest(req)

	err := r.observe("tools.create", func() error {
		return insertTool(ctx, r.pool, t)
	})
	if err != nil {
		return tool.Tool{}, fmt.Errorf("insert tool: %w", err)
	}

	return t, nil
}

// List applies every present predicate conjunctively. Search is a literal
// case-insensitive substring test, so wildcard characters in the term carry
// no meaning. Ordering is byte-wise by name, then creation order.
func (r *ToolsRepo) List(ctx context.Context, f tool.Filter) ([]tool.Tool, error) {
	var conds []string
	var args []any

	if f.Search != nil {
		args = append(args, *f.Search)
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			`(strpos(lower(name), lower($%[1]d)) > 0
			OR strpos(lower(description), lower($%[1]d)) > 0
			OR EXISTS (SELECT 1 FROM unnest(tags) AS tag WHERE strpos(lower(tag), lower($%[1]d)) > 0))`,
			n,
		))
	}

	if f.Category != nil {
		args = append(args, *f.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}

	if f.Pricing != nil {
		args = append(args, *f.Pricing)
		conds = append(conds, fmt.Sprintf("pricing = $%d", len(args)))
	}

	query := `SELECT ` + toolColumns + ` FROM tools`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY name COLLATE "C" ASC, created_at ASC, id ASC`

	out := make([]tool.Tool, 0)

	err := r.observe("tools.list", func() error {
		rows, err := r.pool.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			t, err := scanTool(rows)
			if err != nil {
				return err
			}
			out = append(out, t)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *ToolsRepo) GetByID(ctx context.Context, id string) (tool.Tool, error) {
	if !utils.IsUUID(id) {
		return tool.Tool{}, tool.ErrNotFound
	}

	var t tool.Tool
	err := r.observe("tools.get_by_id", func() error {
		var err error
		t, err = scanTool(r.pool.QueryRow(ctx, `SELECT `+toolColumns+` FROM tools WHERE id = $1`, id))
		return err
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tool.Tool{}, tool.ErrNotFound
		}
		return tool.Tool{}, err
	}

	return t, nil
}

// GetMany resolves ids in one round trip. Unknown ids are skipped; the
// result order is unspecified.
func (r *ToolsRepo) GetMany(ctx context.Context, ids []string) ([]tool.Tool, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if utils.IsUUID(id) {
			valid = append(valid, id)
		}
	}

	out := make([]tool.Tool, 0, len(valid))
	if len(valid) == 0 {
		return out, nil
	}

	err := r.observe("tools.get_many", func() error {
		rows, err := r.pool.Query(ctx, `SELECT `+toolColumns+` FROM tools WHERE id = ANY($1::uuid[])`, valid)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			t, err := scanTool(rows)
			if err != nil {
				return err
			}
			out = append(out, t)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// Update writes only the fields present in p. An empty patch returns the
// stored record untouched, updated_at included.
func (r *ToolsRepo) Update(ctx context.Context, id string, p tool.Patch) (tool.Tool, error) {
	if p.IsEmpty() {
		return r.GetByID(ctx, id)
	}
	if !utils.IsUUID(id) {
		return tool.Tool{}, tool.ErrNotFound
	}

	var sets []string
	args := []any{id}

	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if p.Name != nil {
		set("name", *p.Name)
	}
	if p.Description != nil {
		set("description", *p.Description)
	}
	if p.LongDescription != nil {
		set("long_description", *p.LongDescription)
	}
	if p.Category != nil {
		set("category", *p.Category)
	}
	if p.Pricing != nil {
		set("pricing", *p.Pricing)
	}
	if p.Tags != nil {
		tags := make([]string, len(*p.Tags))
		copy(tags, *p.Tags)
		set("tags", tags)
	}
	if p.Image != nil {
		set("image", *p.Image)
	}
	if p.URL != nil {
		set("url", *p.URL)
	}
	if p.Featured != nil {
		set("featured", *p.Featured)
	}
	set("updated_at", time.Now().UTC())

	query := `UPDATE tools SET ` + strings.Join(sets, ", ") +
		` WHERE id = $1 RETURNING ` + toolColumns

	var t tool.Tool
	err := r.observe("tools.update", func() error {
		var err error
		t, err = scanTool(r.pool.QueryRow(ctx, query, args...))
		return err
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tool.Tool{}, tool.ErrNotFound
		}
		return tool.Tool{}, err
	}

	return t, nil
}

func (r *ToolsRepo) Delete(ctx context.Context, id string) error {
	if !utils.IsUUID(id) {
		return tool.ErrNotFound
	}

	var tag pgconn.CommandTag
	err := r.observe("tools.delete", func() error {
		var err error
		tag, err = r.pool.Exec(ctx, `DELETE FROM tools WHERE id = $1`, id)
		return err
	})

	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return tool.ErrNotFound
	}

	return nil
}

func (r *ToolsRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.observe("tools.count", func() error {
		return r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tools`).Scan(&n)
	})
	return n, err
}

// SetFeaturedOnly clears featured everywhere and sets it on the named
// tools, atomically. It returns how many tools ended up featured.
func (r *ToolsRepo) SetFeaturedOnly(ctx context.Context, names []string) (n int64, err error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}

	defer func() {
		_ = tx.Rollback(ctx)
	}()

	now := time.Now().UTC()

	err = r.observe("tools.set_featured_only.clear", func() error {
		_, e := tx.Exec(ctx, `UPDATE tools SET featured = FALSE, updated_at = $1 WHERE featured`, now)
		return e
	})
	if err != nil {
		return 0, err
	}

	if names == nil {
		names = []string{}
	}

	var tag pgconn.CommandTag
	err = r.observe("tools.set_featured_only.set", func() error {
		var e error
		tag, e = tx.Exec(ctx, `UPDATE tools SET featured = TRUE, updated_at = $1 WHERE name = ANY($2)`, now, names)
		return e
	})
	if err != nil {
		return 0, err
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}
