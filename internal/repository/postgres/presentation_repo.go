package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/slidesmith/slidesmith/internal/errs"
	"github.com/slidesmith/slidesmith/internal/model"
)

// PresentationRepo implements PresentationRepository using PostgreSQL.
type PresentationRepo struct{ db *DB }

// NewPresentationRepo constructs a presentation repository.
func NewPresentationRepo(db *DB) *PresentationRepo { return &PresentationRepo{db: db} }

const presentationColumns = `id, user_id, title, template_id, created_at, updated_at`

func scanPresentation(row pgx.Row) (*model.Presentation, error) {
	var p model.Presentation
	err := row.Scan(&p.ID, &p.UserID, &p.Title, &p.TemplateID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ListByOwner returns the owner's presentations newest-updated first, with
// slide count and a thumbnail derived from the first slide's content.
func (r *PresentationRepo) ListByOwner(ctx context.Context, userID int64) ([]model.PresentationSummary, error) {
	const q = `
SELECT p.id, p.user_id, p.title, p.template_id, p.created_at, p.updated_at,
       (SELECT COUNT(*) FROM slides s WHERE s.presentation_id = p.id),
       COALESCE((SELECT s.content FROM slides s WHERE s.presentation_id = p.id
                 ORDER BY s.order_index ASC, s.id ASC LIMIT 1), '')
FROM presentations p
WHERE p.user_id=$1
ORDER BY p.updated_at DESC`
	rows, err := r.db.Pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.PresentationSummary{}
	for rows.Next() {
		var s model.PresentationSummary
		var firstContent string
		if err := rows.Scan(&s.ID, &s.UserID, &s.Title, &s.TemplateID, &s.CreatedAt, &s.UpdatedAt,
			&s.SlideCount, &firstContent); err != nil {
			return nil, err
		}
		s.Thumbnail = model.ThumbnailFromContent(firstContent)
		out = append(out, s)
	}
	return out, rows.Err()
}

// Create inserts a presentation row and fills generated fields.
func (r *PresentationRepo) Create(ctx context.Context, p *model.Presentation) error {
	const q = `
INSERT INTO presentations (user_id, title, template_id)
VALUES ($1, $2, $3)
RETURNING id, created_at, updated_at`
	return r.db.Pool.QueryRow(ctx, q, p.UserID, p.Title, p.TemplateID).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// GetForOwner selects a presentation scoped to its owner.
func (r *PresentationRepo) GetForOwner(ctx context.Context, id, userID int64) (*model.Presentation, error) {
	const q = `SELECT ` + presentationColumns + ` FROM presentations WHERE id=$1 AND user_id=$2`
	return scanPresentation(r.db.Pool.QueryRow(ctx, q, id, userID))
}

// GetWithSlides selects a presentation and its slides ordered by orderIndex.
func (r *PresentationRepo) GetWithSlides(ctx context.Context, id, userID int64) (*model.Presentation, error) {
	p, err := r.GetForOwner(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	const q = `
SELECT id, presentation_id, title, content, order_index, created_at, updated_at
FROM slides
WHERE presentation_id=$1
ORDER BY order_index ASC, id ASC`
	rows, err := r.db.Pool.Query(ctx, q, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	p.Slides = []model.Slide{}
	for rows.Next() {
		var s model.Slide
		if err := rows.Scan(&s.ID, &s.PresentationID, &s.Title, &s.Content, &s.OrderIndex, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		p.Slides = append(p.Slides, s)
	}
	return p, rows.Err()
}

// UpdateTitle renames a presentation scoped to its owner.
func (r *PresentationRepo) UpdateTitle(ctx context.Context, id, userID int64, title string) (*model.Presentation, error) {
	const q = `
UPDATE presentations SET title=$3, updated_at=now()
WHERE id=$1 AND user_id=$2
RETURNING ` + presentationColumns
	return scanPresentation(r.db.Pool.QueryRow(ctx, q, id, userID, title))
}

// DeleteCascade removes elements, slides and the presentation itself in one
// transaction, children first to satisfy relational constraints.
func (r *PresentationRepo) DeleteCascade(ctx context.Context, id, userID int64) (err error) {
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

	const sel = `SELECT id FROM presentations WHERE id=$1 AND user_id=$2`
	var got int64
	if err = tx.QueryRow(ctx, sel, id, userID).Scan(&got); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errs.ErrNotFound
		}
		return err
	}

	const delElements = `
DELETE FROM elements WHERE slide_id IN (SELECT id FROM slides WHERE presentation_id=$1)`
	if _, err = tx.Exec(ctx, delElements, id); err != nil {
		return err
	}
	const delSlides = `DELETE FROM slides WHERE presentation_id=$1`
	if _, err = tx.Exec(ctx, delSlides, id); err != nil {
		return err
	}
	const delPresentation = `DELETE FROM presentations WHERE id=$1`
	if _, err = tx.Exec(ctx, delPresentation, id); err != nil {
		return err
	}
	return nil
}
