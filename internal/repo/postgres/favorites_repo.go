package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/geocoder89/toolhub/internal/domain/favorite"
	"github.com/geocoder89/toolhub/internal/observability"
)

type FavoritesRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewFavoritesRepo(pool *pgxpool.Pool, prom *observability.Prom) *FavoritesRepo {
	return &FavoritesRepo{pool: pool, prom: prom}
}

func (r *FavoritesRepo) observe(op string, fn func() error) error {
	return observe(r.prom, op, fn)
}

// Add links userID to toolID. It reports false when the link already
// existed; the unique constraint settles concurrent adds.
func (r *FavoritesRepo) Add(ctx context.Context, userID, toolID string) (bool, error) {
	f := favorite.New(userID, toolID)

	var tag pgconn.CommandTag
	err := r.observe("favorites.add", func() error {
		var err error
		tag, err = r.pool.Exec(ctx,
			`INSERT INTO favorites (id, user_id, tool_id, created_at)
			VALUES ($1,$2,$3,$4)
			ON CONFLICT ON CONSTRAINT favorites_user_tool_uniq DO NOTHING`,
			f.ID, f.UserID, f.ToolID, f.CreatedAt,
		)
		return err
	})
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() == 1, nil
}

func (r *FavoritesRepo) Remove(ctx context.Context, userID, toolID string) error {
	var tag pgconn.CommandTag
	err := r.observe("favorites.remove", func() error {
		var err error
		tag, err = r.pool.Exec(ctx,
			`DELETE FROM favorites WHERE user_id = $1 AND tool_id = $2`,
			userID, toolID,
		)
		return err
	})
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return favorite.ErrNotFound
	}
	return nil
}

// ListToolIDs returns the user's favorited tool ids in the order they were
// added.
func (r *FavoritesRepo) ListToolIDs(ctx context.Context, userID string) ([]string, error) {
	out := make([]string, 0)

	err := r.observe("favorites.list_tool_ids", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT tool_id FROM favorites WHERE user_id = $1 ORDER BY created_at ASC, id ASC`,
			userID,
		)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				return err
			}
			out = append(out, id)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// DeleteDangling removes favorites whose tool no longer exists.
func (r *FavoritesRepo) DeleteDangling(ctx context.Context) (int64, error) {
	var tag pgconn.CommandTag
	err := r.observe("favorites.delete_dangling", func() error {
		var err error
		tag, err = r.pool.Exec(ctx,
			`DELETE FROM favorites f
			WHERE NOT EXISTS (SELECT 1 FROM tools t WHERE t.id = f.tool_id)`,
		)
		return err
	})
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
