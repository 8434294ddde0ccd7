package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/slidesmith/slidesmith/internal/errs"
	"github.com/slidesmith/slidesmith/internal/model"
)

// TemplateRepo implements TemplateRepository using PostgreSQL.
type TemplateRepo struct{ db *DB }

// NewTemplateRepo constructs a template repository.
func NewTemplateRepo(db *DB) *TemplateRepo { return &TemplateRepo{db: db} }

const templateColumns = `id, name, category, thumbnail, data, created_at`

// List returns all templates.
func (r *TemplateRepo) List(ctx context.Context) ([]model.Template, error) {
	const q = `SELECT ` + templateColumns + ` FROM templates ORDER BY id ASC`
	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Template{}
	for rows.Next() {
		var t model.Template
		if err := rows.Scan(&t.ID, &t.Name, &t.Category, &t.Thumbnail, &t.Data, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Get selects a template by ID.
func (r *TemplateRepo) Get(ctx context.Context, id int64) (*model.Template, error) {
	const q = `SELECT ` + templateColumns + ` FROM templates WHERE id=$1`
	var t model.Template
	err := r.db.Pool.QueryRow(ctx, q, id).Scan(&t.ID, &t.Name, &t.Category, &t.Thumbnail, &t.Data, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// CloneSample deep-copies the template's sample presentation into a new
// presentation owned by userID. The whole clone runs in one transaction so a
// mid-copy failure never leaves a partial presentation behind.
func (r *TemplateRepo) CloneSample(ctx context.Context, templateID, userID int64, title string) (newID int64, err error) {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
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

	const findSample = `
SELECT id FROM presentations
WHERE template_id=$1 AND title LIKE '%Sample%'
ORDER BY id ASC LIMIT 1`
	var sampleID int64
	if err = tx.QueryRow(ctx, findSample, templateID).Scan(&sampleID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, errs.ErrNotFound
		}
		return 0, err
	}

	const insPresentation = `
INSERT INTO presentations (user_id, title, template_id)
VALUES ($1, $2, $3)
RETURNING id`
	if err = tx.QueryRow(ctx, insPresentation, userID, title, templateID).Scan(&newID); err != nil {
		return 0, err
	}

	const selSlides = `
SELECT id, title, content, order_index FROM slides
WHERE presentation_id=$1
ORDER BY order_index ASC, id ASC`
	rows, err := tx.Query(ctx, selSlides, sampleID)
	if err != nil {
		return 0, err
	}
	type sampleSlide struct {
		id         int64
		title      string
		content    string
		orderIndex int
	}
	var samples []sampleSlide
	for rows.Next() {
		var s sampleSlide
		if err = rows.Scan(&s.id, &s.title, &s.content, &s.orderIndex); err != nil {
			rows.Close()
			return 0, err
		}
		samples = append(samples, s)
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return 0, err
	}

	const insSlide = `
INSERT INTO slides (presentation_id, title, content, order_index)
VALUES ($1, $2, $3, $4)
RETURNING id`
	const copyElements = `
INSERT INTO elements (slide_id, type, x, y, width, height, z_index, rotation, data)
SELECT $2, type, x, y, width, height, z_index, rotation, data
FROM elements WHERE slide_id=$1`
	for _, s := range samples {
		var newSlideID int64
		if err = tx.QueryRow(ctx, insSlide, newID, s.title, s.content, s.orderIndex).Scan(&newSlideID); err != nil {
			return 0, err
		}
		if _, err = tx.Exec(ctx, copyElements, s.id, newSlideID); err != nil {
			return 0, err
		}
	}
	return newID, nil
}
