package repository

import (
	"context"

	"github.com/slidesmith/slidesmith/internal/model"
)

// PresentationRepository provides owner-scoped access to presentations.
// Every lookup takes the owner's user ID; a row that exists but belongs to
// someone else is reported as ErrNotFound.
type PresentationRepository interface {
	// ListByOwner returns the owner's presentations sorted by updatedAt
	// descending, enriched with slide count and derived thumbnail.
	ListByOwner(ctx context.Context, userID int64) ([]model.PresentationSummary, error)
	// Create inserts a new presentation and fills ID and timestamps.
	Create(ctx context.Context, p *model.Presentation) error
	// GetForOwner loads a presentation without its slides.
	GetForOwner(ctx context.Context, id, userID int64) (*model.Presentation, error)
	// GetWithSlides loads a presentation including slides ordered by orderIndex.
	GetWithSlides(ctx context.Context, id, userID int64) (*model.Presentation, error)
	// UpdateTitle renames a presentation.
	UpdateTitle(ctx context.Context, id, userID int64, title string) (*model.Presentation, error)
	// DeleteCascade removes the presentation, its slides and their elements
	// in one transaction, children first.
	DeleteCascade(ctx context.Context, id, userID int64) error
}

// SlideRepository provides access to slides, authorized through the parent
// presentation's owner.
type SlideRepository interface {
	// ListByOwner returns every slide of every presentation the user owns.
	ListByOwner(ctx context.Context, userID int64) ([]model.Slide, error)
	// Create inserts a slide and fills ID and timestamps.
	Create(ctx context.Context, s *model.Slide) error
	// NextOrderIndex returns max(orderIndex)+1 for the presentation, 0 if empty.
	NextOrderIndex(ctx context.Context, presentationID int64) (int, error)
	// GetForOwner loads a slide whose presentation belongs to userID.
	GetForOwner(ctx context.Context, id, userID int64) (*model.Slide, error)
	// Update persists title, content and orderIndex.
	Update(ctx context.Context, s *model.Slide) error
	// DeleteCascade removes the slide and its elements in one transaction.
	DeleteCascade(ctx context.Context, id int64) error
}

// ElementRepository provides access to the positioned elements of a slide.
// Callers authorize through SlideRepository.GetForOwner before mutating.
type ElementRepository interface {
	// ListBySlide returns the slide's elements in storage order; callers sort
	// by zIndex in application code.
	ListBySlide(ctx context.Context, slideID int64) ([]model.Element, error)
	// Create inserts an element and fills ID and timestamps.
	Create(ctx context.Context, e *model.Element) error
	// Get loads an element by ID scoped to a slide.
	Get(ctx context.Context, id, slideID int64) (*model.Element, error)
	// Update persists every mutable field of the element.
	Update(ctx context.Context, e *model.Element) error
	// Delete removes an element scoped to a slide.
	Delete(ctx context.Context, id, slideID int64) error
	// Reconcile makes the slide's element rows match desired in one
	// transaction: rows absent from desired are deleted, entries with IDs are
	// updated, entries without IDs are inserted.
	Reconcile(ctx context.Context, slideID int64, desired []model.ElementSave) error
}
