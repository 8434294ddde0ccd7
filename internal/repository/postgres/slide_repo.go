package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/slidesmith/slidesmith/internal/errs"
	"github.com/slidesmith/slidesmith/internal/model"
)

// SlideRepo implements SlideRepository using PostgreSQL.
type SlideRepo struct{ db *DB }

// NewSlideRepo constructs a slide repository.
func NewSlideRepo(db *DB) *SlideRepo { return &SlideRepo{db: db} }

const slideColumns = `id, presentation_id, title, content, order_index, created_at, updated_at`

func scanSlide(row pgx.Row) (*model.Slide, error) {
	var s model.Slide
	err := row.Scan(&s.ID, &s.PresentationID, &s.Title, &s.Content, &s.OrderIndex, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ListByOwner returns every slide belonging to the user's presentations.
func (r *SlideRepo) ListByOwner(ctx context.Context, userID int64) ([]model.Slide, error) {
	const q = `
SELECT s.id, s.presentation_id, s.title, s.content, s.order_index, s.created_at, s.updated_at
FROM slides s
JOIN presentations p ON p.id = s.presentation_id
WHERE p.user_id=$1
ORDER BY s.presentation_id ASC, s.order_index ASC, s.id ASC`
	rows, err := r.db.Pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Slide{}
	for rows.Next() {
		var s model.Slide
		if err := rows.Scan(&s.ID, &s.PresentationID, &s.Title, &s.Content, &s.OrderIndex, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Create inserts a slide row and fills generated fields.
func (r *SlideRepo) Create(ctx context.Context, s *model.Slide) error {
	const q = `
INSERT INTO slides (presentation_id, title, content, order_index)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at, updated_at`
	return r.db.Pool.QueryRow(ctx, q, s.PresentationID, s.Title, s.Content, s.OrderIndex).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

// NextOrderIndex returns max(order_index)+1 for a presentation, 0 when empty.
func (r *SlideRepo) NextOrderIndex(ctx context.Context, presentationID int64) (int, error) {
	const q = `SELECT COALESCE(MAX(order_index)+1, 0) FROM slides WHERE presentation_id=$1`
	var next int
	if err := r.db.Pool.QueryRow(ctx, q, presentationID).Scan(&next); err != nil {
		return 0, err
	}
	return next, nil
}

// GetForOwner selects a slide whose parent presentation belongs to userID.
// A slide that exists under someone else's presentation is ErrNotFound.
func (r *SlideRepo) GetForOwner(ctx context.Context, id, userID int64) (*model.Slide, error) {
	const q = `
SELECT s.id, s.presentation_id, s.title, s.content, s.order_index, s.created_at, s.updated_at
FROM slides s
JOIN presentations p ON p.id = s.presentation_id
WHERE s.id=$1 AND p.user_id=$2`
	return scanSlide(r.db.Pool.QueryRow(ctx, q, id, userID))
}

// Update persists title, content and orderIndex.
func (r *SlideRepo) Update(ctx context.Context, s *model.Slide) error {
	const q = `
UPDATE slides SET title=$2, content=$3, order_index=$4, updated_at=now()
WHERE id=$1
RETURNING updated_at`
	err := r.db.Pool.QueryRow(ctx, q, s.ID, s.Title, s.Content, s.OrderIndex).Scan(&s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return errs.ErrNotFound
	}
	return err
}

// DeleteCascade removes the slide and its elements in one transaction.
func (r *SlideRepo) DeleteCascade(ctx context.Context, id int64) (err error) {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if e := tx.Commit(ctx); e != nil {
			err = e
		}
	}()

	const delElements = `DELETE FROM elements WHERE slide_id=$1`
	if _, err = tx.Exec(ctx, delElements, id); err != nil {
		return err
	}
	const delSlide = `DELETE FROM slides WHERE id=$1`
	var tag pgconn.CommandTag
	if tag, err = tx.Exec(ctx, delSlide, id); err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
