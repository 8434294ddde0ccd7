package service

import (
	"context"
	"fmt"

	"github.com/slidesmith/slidesmith/internal/model"
	"github.com/slidesmith/slidesmith/internal/repository"
)

// TemplateService defines read access to templates and instantiation.
type TemplateService interface {
	// List returns all templates.
	List(ctx context.Context) ([]model.Template, error)
	// Get loads a single template.
	Get(ctx context.Context, id int64) (*model.Template, error)
	// Use clones the template's sample presentation into a new presentation
	// owned by the caller and returns it with its slides.
	Use(ctx context.Context, templateID, userID int64, title string) (*model.Presentation, error)
}

type TemplateServiceImpl struct {
	templates     repository.TemplateRepository
	presentations repository.PresentationRepository
}

// NewTemplateService constructs TemplateService.
func NewTemplateService(templates repository.TemplateRepository, presentations repository.PresentationRepository) *TemplateServiceImpl {
	return &TemplateServiceImpl{templates: templates, presentations: presentations}
}

// List returns all templates.
func (s *TemplateServiceImpl) List(ctx context.Context) ([]model.Template, error) {
	return s.templates.List(ctx)
}

// Get loads a template by ID.
func (s *TemplateServiceImpl) Get(ctx context.Context, id int64) (*model.Template, error) {
	return s.templates.Get(ctx, id)
}

// Use instantiates the template for the caller. The default title is
// "My <template name>". The clone itself is transactional, so a failure
// never leaves a partial presentation behind.
func (s *TemplateServiceImpl) Use(ctx context.Context, templateID, userID int64, title string) (*model.Presentation, error) {
	t, err := s.templates.Get(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if title == "" {
		title = fmt.Sprintf("My %s", t.Name)
	}
	newID, err := s.templates.CloneSample(ctx, templateID, userID, title)
	if err != nil {
		return nil, err
	}
	return s.presentations.GetWithSlides(ctx, newID, userID)
}
