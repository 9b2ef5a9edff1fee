package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/geocoder89/toolhub/internal/domain/submission"
	"github.com/geocoder89/toolhub/internal/domain/tool"
	"github.com/geocoder89/toolhub/internal/observability"
	"github.com/geocoder89/toolhub/internal/utils"
)

const submissionColumns = `id, name, description, long_description, category, pricing, tags, image_url, url, submitter_email, status, approved_tool_id, created_at, updated_at`

type SubmissionsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewSubmissionsRepo(pool *pgxpool.Pool, prom *observability.Prom) *SubmissionsRepo {
	return &SubmissionsRepo{pool: pool, prom: prom}
}

func (r *SubmissionsRepo) observe(op string, fn func() error) error {
	return observe(r.prom, op, fn)
}

func scanSubmission(row scanner) (submission.Submission, error) {
	var s submission.Submission
	var status string

	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Description,
		&s.LongDescription,
		&s.Category,
		&s.Pricing,
		&s.Tags,
		&s.ImageURL,
		&s.URL,
		&s.SubmitterEmail,
		&status,
		&s.ApprovedToolID,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return submission.Submission{}, err
	}

	s.Status = submission.Status(status)
	if s.Tags == nil {
		s.Tags = []string{}
	}
	return s, nil
}

func (r *SubmissionsRepo) Create(ctx context.Context, s submission.Submission) (submission.Submission, error) {
	err := r.observe("submissions.create", func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO submissions (`+submissionColumns+`)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
			s.ID, s.Name, s.Description, s.LongDescription, s.Category, s.Pricing,
			s.Tags, s.ImageURL, s.URL, s.SubmitterEmail, string(s.Status),
			s.ApprovedToolID, s.CreatedAt, s.UpdatedAt,
		)
		return err
	})
	if err != nil {
		return submission.Submission{}, fmt.Errorf("insert submission: %w", err)
	}

	return s, nil
}

// List returns every submission, newest first.
func (r *SubmissionsRepo) List(ctx context.Context) ([]submission.Submission, error) {
	out := make([]submission.Submission, 0)

	err := r.observe("submissions.list", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT `+submissionColumns+` FROM submissions ORDER BY created_at DESC, id DESC`)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			s, err := scanSubmission(rows)
			if err != nil {
				return err
			}
			out = append(out, s)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *SubmissionsRepo) GetByID(ctx context.Context, id string) (submission.Submission, error) {
	if !utils.IsUUID(id) {
		return submission.Submission{}, submission.ErrNotFound
	}

	var s submission.Submission
	err := r.observe("submissions.get_by_id", func() error {
		var err error
		s, err = scanSubmission(r.pool.QueryRow(ctx,
			`SELECT `+submissionColumns+` FROM submissions WHERE id = $1`, id))
		return err
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return submission.Submission{}, submission.ErrNotFound
		}
		return submission.Submission{}, err
	}
	return s, nil
}

// Promote publishes a pending submission as a tool. The submission row is
// locked for the whole transaction, so two concurrent approvals serialize
// and the second one sees the approved status.
func (r *SubmissionsRepo) Promote(ctx context.Context, id string) (t tool.Tool, err error) {
	if !utils.IsUUID(id) {
		err = submission.ErrNotFound
		return
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return
	}

	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var s submission.Submission
	err = r.observe("submissions.promote.lock", func() error {
		var e error
		s, e = scanSubmission(tx.QueryRow(ctx,
			`SELECT `+submissionColumns+` FROM submissions WHERE id = $1 FOR UPDATE`, id))
		return e
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = submission.ErrNotFound
		}
		return
	}

	if s.IsApproved() {
		err = submission.ErrAlreadyApproved
		return
	}

	t = s.ToTool()

	err = r.observe("submissions.promote.insert_tool", func() error {
		return insertTool(ctx, tx, t)
	})
	if err != nil {
		err = fmt.Errorf("insert promoted tool: %w", err)
		return
	}

	err = r.observe("submissions.promote.mark_approved", func() error {
		_, e := tx.Exec(ctx,
			`UPDATE submissions
			SET status = $2, approved_tool_id = $3, updated_at = $4
			WHERE id = $1`,
			id, string(submission.StatusApproved), t.ID, time.Now().UTC(),
		)
		return e
	})
	if err != nil {
		return
	}

	err = tx.Commit(ctx)
	return
}
