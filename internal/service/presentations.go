package service

import (
	"context"

	"github.com/slidesmith/slidesmith/internal/errs"
	"github.com/slidesmith/slidesmith/internal/model"
	"github.com/slidesmith/slidesmith/internal/repository"
)

// PresentationService defines operations over a user's presentations.
// Every operation is scoped to the calling user; presentations owned by
// someone else behave exactly like missing ones.
type PresentationService interface {
	// List returns the caller's presentations, newest-updated first.
	List(ctx context.Context, userID int64) ([]model.PresentationSummary, error)
	// Create makes an empty presentation.
	Create(ctx context.Context, userID int64, title string) (*model.Presentation, error)
	// Get loads a presentation including its slides.
	Get(ctx context.Context, id, userID int64) (*model.Presentation, error)
	// Rename changes the title.
	Rename(ctx context.Context, id, userID int64, title string) (*model.Presentation, error)
	// Delete removes the presentation and cascades to slides and elements.
	Delete(ctx context.Context, id, userID int64) error
}

type PresentationServiceImpl struct {
	repo repository.PresentationRepository
}

// NewPresentationService constructs PresentationService.
func NewPresentationService(repo repository.PresentationRepository) *PresentationServiceImpl {
	return &PresentationServiceImpl{repo: repo}
}

// List returns the caller's presentations with slide counts and thumbnails.
func (s *PresentationServiceImpl) List(ctx context.Context, userID int64) ([]model.PresentationSummary, error) {
	return s.repo.ListByOwner(ctx, userID)
}

// Create makes an empty presentation. Title is required.
func (s *PresentationServiceImpl) Create(ctx context.Context, userID int64, title string) (*model.Presentation, error) {
	if title == "" {
		return nil, errs.Validation("Missing title")
	}
	p := &model.Presentation{UserID: userID, Title: title}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get loads a presentation with slides ordered by orderIndex.
func (s *PresentationServiceImpl) Get(ctx context.Context, id, userID int64) (*model.Presentation, error) {
	return s.repo.GetWithSlides(ctx, id, userID)
}

// Rename changes the presentation title.
func (s *PresentationServiceImpl) Rename(ctx context.Context, id, userID int64, title string) (*model.Presentation, error) {
	if title == "" {
		return nil, errs.Validation("Missing title")
	}
	return s.repo.UpdateTitle(ctx, id, userID, title)
}

// Delete removes the presentation, its slides and their elements.
func (s *PresentationServiceImpl) Delete(ctx context.Context, id, userID int64) error {
	return s.repo.DeleteCascade(ctx, id, userID)
}
