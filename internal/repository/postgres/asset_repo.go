package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/slidesmith/slidesmith/internal/errs"
	"github.com/slidesmith/slidesmith/internal/model"
)

// AssetRepo implements AssetRepository using PostgreSQL.
type AssetRepo struct{ db *DB }

// NewAssetRepo constructs an asset repository.
func NewAssetRepo(db *DB) *AssetRepo { return &AssetRepo{db: db} }

const assetColumns = `id, user_id, url, filename, created_at`

// Create inserts an asset row and fills generated fields.
func (r *AssetRepo) Create(ctx context.Context, a *model.Asset) error {
	const q = `
INSERT INTO assets (user_id, url, filename)
VALUES ($1, $2, $3)
RETURNING id, created_at`
	return r.db.Pool.QueryRow(ctx, q, a.UserID, a.URL, a.Filename).Scan(&a.ID, &a.CreatedAt)
}

// ListByOwner returns the user's assets, newest first.
func (r *AssetRepo) ListByOwner(ctx context.Context, userID int64) ([]model.Asset, error) {
	const q = `SELECT ` + assetColumns + ` FROM assets WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.db.Pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Asset{}
	for rows.Next() {
		var a model.Asset
		if err := rows.Scan(&a.ID, &a.UserID, &a.URL, &a.Filename, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// GetForOwner selects an asset scoped to its owner.
func (r *AssetRepo) GetForOwner(ctx context.Context, id, userID int64) (*model.Asset, error) {
	const q = `SELECT ` + assetColumns + ` FROM assets WHERE id=$1 AND user_id=$2`
	var a model.Asset
	err := r.db.Pool.QueryRow(ctx, q, id, userID).Scan(&a.ID, &a.UserID, &a.URL, &a.Filename, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Delete removes an asset row.
func (r *AssetRepo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM assets WHERE id=$1`
	tag, err := r.db.Pool.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
