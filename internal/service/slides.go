package service

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/slidesmith/slidesmith/internal/errs"
	"github.com/slidesmith/slidesmith/internal/export"
	"github.com/slidesmith/slidesmith/internal/model"
	"github.com/slidesmith/slidesmith/internal/repository"
)

// SlideCreate carries the payload for a new slide. OrderIndex is assigned
// max+1 within the presentation when nil.
type SlideCreate struct {
	PresentationID int64
	Title          string
	Content        json.RawMessage
	OrderIndex     *int
}

// SlideUpdate is a partial slide update; nil fields are left unchanged.
type SlideUpdate struct {
	Title      *string
	Content    json.RawMessage
	OrderIndex *int
}

// SlideService defines operations over slides, authorized through the parent
// presentation's owner.
type SlideService interface {
	// List returns every slide of every presentation the caller owns.
	List(ctx context.Context, userID int64) ([]model.Slide, error)
	// Create adds a slide to one of the caller's presentations.
	Create(ctx context.Context, userID int64, in SlideCreate) (*model.Slide, error)
	// Get loads a single slide.
	Get(ctx context.Context, id, userID int64) (*model.Slide, error)
	// Update applies a partial update after validating the content payload.
	Update(ctx context.Context, id, userID int64, upd SlideUpdate) (*model.Slide, error)
	// Delete removes the slide and its elements.
	Delete(ctx context.Context, id, userID int64) error
	// Export produces the placeholder download body for a slide.
	Export(ctx context.Context, id, userID int64, format string) (export.File, error)
}

type SlideServiceImpl struct {
	slides        repository.SlideRepository
	presentations repository.PresentationRepository
}

// NewSlideService constructs SlideService.
func NewSlideService(slides repository.SlideRepository, presentations repository.PresentationRepository) *SlideServiceImpl {
	return &SlideServiceImpl{slides: slides, presentations: presentations}
}

// List returns every slide belonging to the caller's presentations.
func (s *SlideServiceImpl) List(ctx context.Context, userID int64) ([]model.Slide, error) {
	return s.slides.ListByOwner(ctx, userID)
}

// Create adds a slide under one of the caller's presentations, defaulting
// title, content and order index.
func (s *SlideServiceImpl) Create(ctx context.Context, userID int64, in SlideCreate) (*model.Slide, error) {
	if in.PresentationID == 0 {
		return nil, errs.Validation("presentationId required")
	}
	if _, err := s.presentations.GetForOwner(ctx, in.PresentationID, userID); err != nil {
		return nil, err
	}

	content := model.DefaultSlideContent
	if len(in.Content) > 0 {
		if err := validateSlideContent(in.Content); err != nil {
			return nil, err
		}
		content = string(in.Content)
	}
	title := in.Title
	if title == "" {
		title = "Untitled Slide"
	}
	orderIndex := 0
	if in.OrderIndex != nil {
		orderIndex = *in.OrderIndex
	} else {
		next, err := s.slides.NextOrderIndex(ctx, in.PresentationID)
		if err != nil {
			return nil, err
		}
		orderIndex = next
	}

	sl := &model.Slide{
		PresentationID: in.PresentationID,
		Title:          title,
		Content:        content,
		OrderIndex:     orderIndex,
	}
	if err := s.slides.Create(ctx, sl); err != nil {
		return nil, err
	}
	return sl, nil
}

// Get loads a slide scoped to the caller.
func (s *SlideServiceImpl) Get(ctx context.Context, id, userID int64) (*model.Slide, error) {
	return s.slides.GetForOwner(ctx, id, userID)
}

// Update merges supplied fields into the slide. Content is validated and
// stored as a JSON string.
func (s *SlideServiceImpl) Update(ctx context.Context, id, userID int64, upd SlideUpdate) (*model.Slide, error) {
	sl, err := s.slides.GetForOwner(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if upd.Title != nil {
		sl.Title = *upd.Title
	}
	if len(upd.Content) > 0 {
		if err := validateSlideContent(upd.Content); err != nil {
			return nil, err
		}
		sl.Content = string(upd.Content)
	}
	if upd.OrderIndex != nil {
		sl.OrderIndex = *upd.OrderIndex
	}
	if err := s.slides.Update(ctx, sl); err != nil {
		return nil, err
	}
	return sl, nil
}

// Delete removes the slide and its elements.
func (s *SlideServiceImpl) Delete(ctx context.Context, id, userID int64) error {
	if _, err := s.slides.GetForOwner(ctx, id, userID); err != nil {
		return err
	}
	return s.slides.DeleteCascade(ctx, id)
}

// Export returns the placeholder download body for the slide.
func (s *SlideServiceImpl) Export(ctx context.Context, id, userID int64, format string) (export.File, error) {
	sl, err := s.slides.GetForOwner(ctx, id, userID)
	if err != nil {
		return export.File{}, err
	}
	return export.Slide(sl, format), nil
}

// validateSlideContent checks the structure of a slide content payload.
// A legacy elements array embedded in content is validated for shape even
// though element rows remain the authoritative representation.
func validateSlideContent(raw json.RawMessage) error {
	var content map[string]json.RawMessage
	if err := json.Unmarshal(raw, &content); err != nil {
		return errs.Validation("Content must be an object")
	}

	if rawElements, ok := content["elements"]; ok {
		var elements []map[string]json.RawMessage
		if err := json.Unmarshal(rawElements, &elements); err != nil {
			return errs.Validation("Elements must be an array")
		}
		for i, el := range elements {
			if err := validateContentElement(i, el); err != nil {
				return err
			}
		}
	}

	if rawBackground, ok := content["background"]; ok {
		var bg string
		if err := json.Unmarshal(rawBackground, &bg); err != nil {
			return errs.Validation("Background must be a string")
		}
	}
	if rawImage, ok := content["backgroundImage"]; ok {
		var img string
		if err := json.Unmarshal(rawImage, &img); err != nil || (img != "" && !isValidURL(img)) {
			return errs.Validation("Invalid backgroundImage URL format")
		}
	}
	return nil
}

func validateContentElement(i int, el map[string]json.RawMessage) error {
	rawType, ok := el["type"]
	if !ok {
		return errs.Validation("Element %d: type is required", i)
	}
	var elType string
	if err := json.Unmarshal(rawType, &elType); err != nil || elType == "" {
		return errs.Validation("Element %d: type is required", i)
	}
	if !model.ValidElementType(elType) {
		return errs.Validation("Element %d: invalid type '%s'. Must be one of: text, image, shape, chart, table", i, elType)
	}

	for _, field := range []string{"x", "y"} {
		if raw, ok := el[field]; ok {
			var v float64
			if err := json.Unmarshal(raw, &v); err != nil || v < 0 {
				return errs.Validation("Element %d: %s must be a non-negative number", i, field)
			}
		}
	}
	for _, field := range []string{"width", "height"} {
		if raw, ok := el[field]; ok {
			var v float64
			if err := json.Unmarshal(raw, &v); err != nil || v <= 0 {
				return errs.Validation("Element %d: %s must be a positive number", i, field)
			}
		}
	}

	if rawStyle, ok := el["style"]; ok {
		var style map[string]json.RawMessage
		if err := json.Unmarshal(rawStyle, &style); err != nil {
			return errs.Validation("Element %d: style must be an object", i)
		}
	}

	if elType == model.ElementImage {
		if rawSrc, ok := el["src"]; ok {
			var src string
			if err := json.Unmarshal(rawSrc, &src); err != nil || (src != "" && !isValidURL(src)) {
				return errs.Validation("Element %d: invalid image URL format", i)
			}
		}
	}
	return nil
}

// isValidURL mirrors the WHATWG URL constructor check the editor relies on:
// the value must be absolute with a scheme.
func isValidURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.Scheme != "" && (u.Host != "" || strings.HasPrefix(s, "data:"))
}
