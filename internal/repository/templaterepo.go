package repository

import (
	"context"

	"github.com/slidesmith/slidesmith/internal/model"
)

// TemplateRepository provides read access to templates and the clone operation.
type TemplateRepository interface {
	// List returns all templates.
	List(ctx context.Context) ([]model.Template, error)
	// Get loads a template by ID.
	Get(ctx context.Context, id int64) (*model.Template, error)
	// CloneSample deep-copies the template's sample presentation (the one
	// tagged with the template ID whose title contains "Sample") into a new
	// presentation owned by userID, in one transaction. Returns the new
	// presentation ID, or ErrNotFound when no sample presentation exists.
	CloneSample(ctx context.Context, templateID, userID int64, title string) (int64, error)
}

// AssetRepository provides owner-scoped access to uploaded assets.
type AssetRepository interface {
	// Create inserts an asset row and fills ID and timestamp.
	Create(ctx context.Context, a *model.Asset) error
	// ListByOwner returns the user's assets.
	ListByOwner(ctx context.Context, userID int64) ([]model.Asset, error)
	// GetForOwner loads an asset owned by userID.
	GetForOwner(ctx context.Context, id, userID int64) (*model.Asset, error)
	// Delete removes an asset row.
	Delete(ctx context.Context, id int64) error
}
