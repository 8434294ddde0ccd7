package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/slidesmith/slidesmith/internal/errs"
	"github.com/slidesmith/slidesmith/internal/model"
)

// ElementRepo implements ElementRepository using PostgreSQL.
type ElementRepo struct{ db *DB }

// NewElementRepo constructs an element repository.
func NewElementRepo(db *DB) *ElementRepo { return &ElementRepo{db: db} }

const elementColumns = `id, slide_id, type, x, y, width, height, z_index, rotation, data, created_at, updated_at`

func scanElement(row pgx.Row) (*model.Element, error) {
	var e model.Element
	err := row.Scan(&e.ID, &e.SlideID, &e.Type, &e.X, &e.Y, &e.Width, &e.Height,
		&e.ZIndex, &e.Rotation, &e.Data, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// ListBySlide returns the slide's elements. No ORDER BY on purpose: element
// data blobs can be large and the zIndex sort happens in application code.
func (r *ElementRepo) ListBySlide(ctx context.Context, slideID int64) ([]model.Element, error) {
	const q = `SELECT ` + elementColumns + ` FROM elements WHERE slide_id=$1`
	rows, err := r.db.Pool.Query(ctx, q, slideID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Element{}
	for rows.Next() {
		var e model.Element
		if err := rows.Scan(&e.ID, &e.SlideID, &e.Type, &e.X, &e.Y, &e.Width, &e.Height,
			&e.ZIndex, &e.Rotation, &e.Data, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Create inserts an element row and fills generated fields.
func (r *ElementRepo) Create(ctx context.Context, e *model.Element) error {
	const q = `
INSERT INTO elements (slide_id, type, x, y, width, height, z_index, rotation, data)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id, created_at, updated_at`
	return r.db.Pool.QueryRow(ctx, q, e.SlideID, e.Type, e.X, e.Y, e.Width, e.Height,
		e.ZIndex, e.Rotation, e.Data).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

// Get selects an element by ID scoped to a slide.
func (r *ElementRepo) Get(ctx context.Context, id, slideID int64) (*model.Element, error) {
	const q = `SELECT ` + elementColumns + ` FROM elements WHERE id=$1 AND slide_id=$2`
	return scanElement(r.db.Pool.QueryRow(ctx, q, id, slideID))
}

// Update persists every mutable field of the element.
func (r *ElementRepo) Update(ctx context.Context, e *model.Element) error {
	const q = `
UPDATE elements
SET type=$3, x=$4, y=$5, width=$6, height=$7, z_index=$8, rotation=$9, data=$10, updated_at=now()
WHERE id=$1 AND slide_id=$2
RETURNING updated_at`
	err := r.db.Pool.QueryRow(ctx, q, e.ID, e.SlideID, e.Type, e.X, e.Y, e.Width, e.Height,
		e.ZIndex, e.Rotation, e.Data).Scan(&e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return errs.ErrNotFound
	}
	return err
}

// Delete removes an element scoped to a slide.
func (r *ElementRepo) Delete(ctx context.Context, id, slideID int64) error {
	const q = `DELETE FROM elements WHERE id=$1 AND slide_id=$2`
	tag, err := r.db.Pool.Exec(ctx, q, id, slideID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Reconcile makes the slide's element rows match desired inside a single
// transaction: rows missing from desired are deleted, entries carrying an ID
// are updated, entries without one are inserted. An ID that no longer exists
// on the slide fails the whole save with ErrNotFound.
func (r *ElementRepo) Reconcile(ctx context.Context, slideID int64, desired []model.ElementSave) (err error) {
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

	keep := make([]int64, 0, len(desired))
	for _, d := range desired {
		if d.ID != nil {
			keep = append(keep, *d.ID)
		}
	}

	const del = `DELETE FROM elements WHERE slide_id=$1 AND NOT (id = ANY($2))`
	if _, err = tx.Exec(ctx, del, slideID, keep); err != nil {
		return err
	}

	const upd = `
UPDATE elements
SET type=$3, x=$4, y=$5, width=$6, height=$7, z_index=$8, rotation=$9, data=$10, updated_at=now()
WHERE id=$1 AND slide_id=$2`
	const ins = `
INSERT INTO elements (slide_id, type, x, y, width, height, z_index, rotation, data)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for _, d := range desired {
		if d.ID != nil {
			res, execErr := tx.Exec(ctx, upd, *d.ID, slideID, d.Type, d.X, d.Y, d.Width, d.Height, d.ZIndex, d.Rotation, d.Data)
			if execErr != nil {
				err = execErr
				return err
			}
			if res.RowsAffected() == 0 {
				err = errs.ErrNotFound
				return err
			}
			continue
		}
		if _, err = tx.Exec(ctx, ins, slideID, d.Type, d.X, d.Y, d.Width, d.Height, d.ZIndex, d.Rotation, d.Data); err != nil {
			return err
		}
	}
	return nil
}
