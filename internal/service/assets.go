package service

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/gofrs/uuid/v5"

	"github.com/slidesmith/slidesmith/internal/model"
	"github.com/slidesmith/slidesmith/internal/repository"
)

// AssetService defines upload, listing and deletion of user file assets.
type AssetService interface {
	// Upload stores the file under a generated name and records an asset row.
	Upload(ctx context.Context, userID int64, originalName string, src io.Reader) (*model.Asset, error)
	// List returns the caller's assets.
	List(ctx context.Context, userID int64) ([]model.Asset, error)
	// Delete removes the asset row and unlinks the backing file best-effort.
	Delete(ctx context.Context, userID, id int64) error
}

type AssetServiceImpl struct {
	assets    repository.AssetRepository
	uploadDir string
}

// NewAssetService constructs AssetService rooted at the uploads directory.
func NewAssetService(assets repository.AssetRepository, uploadDir string) *AssetServiceImpl {
	return &AssetServiceImpl{assets: assets, uploadDir: uploadDir}
}

// Upload writes the file to disk under a random name, keeping the original
// extension so the static file server infers the right content type.
func (s *AssetServiceImpl) Upload(ctx context.Context, userID int64, originalName string, src io.Reader) (*model.Asset, error) {
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return nil, err
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	stored := id.String() + filepath.Ext(originalName)

	dst, err := os.Create(filepath.Join(s.uploadDir, stored))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		_ = os.Remove(dst.Name())
		return nil, err
	}
	if err := dst.Close(); err != nil {
		return nil, err
	}

	a := &model.Asset{UserID: userID, URL: "/uploads/" + stored, Filename: originalName}
	if err := s.assets.Create(ctx, a); err != nil {
		_ = os.Remove(dst.Name())
		return nil, err
	}
	return a, nil
}

// List returns the caller's assets.
func (s *AssetServiceImpl) List(ctx context.Context, userID int64) ([]model.Asset, error) {
	return s.assets.ListByOwner(ctx, userID)
}

// Delete unlinks the backing file best-effort, then removes the row.
func (s *AssetServiceImpl) Delete(ctx context.Context, userID, id int64) error {
	a, err := s.assets.GetForOwner(ctx, id, userID)
	if err != nil {
		return err
	}
	stored := filepath.Base(a.URL)
	_ = os.Remove(filepath.Join(s.uploadDir, stored))
	return s.assets.Delete(ctx, a.ID)
}
