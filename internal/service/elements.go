package service

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/slidesmith/slidesmith/internal/errs"
	"github.com/slidesmith/slidesmith/internal/model"
	"github.com/slidesmith/slidesmith/internal/repository"
)

// ElementInput carries element fields from the client. Nil fields keep their
// defaults on create and stay unchanged on update. Data may be a JSON string
// or an object; both are normalized to the stored string form.
type ElementInput struct {
	Type     *string
	X        *float64
	Y        *float64
	Width    *float64
	Height   *float64
	ZIndex   *int
	Rotation *float64
	Data     json.RawMessage
}

// ElementService defines operations over the positioned elements of a slide.
// Every call is authorized through the slide's parent presentation.
type ElementService interface {
	// List returns the slide's elements sorted by zIndex ascending.
	List(ctx context.Context, userID, slideID int64) ([]model.Element, error)
	// Create adds an element with positional defaults.
	Create(ctx context.Context, userID, slideID int64, in ElementInput) (*model.Element, error)
	// Update applies a partial update to one element.
	Update(ctx context.Context, userID, slideID, elementID int64, in ElementInput) (*model.Element, error)
	// Delete removes one element.
	Delete(ctx context.Context, userID, slideID, elementID int64) error
	// Save reconciles the slide's elements against the full desired list in
	// one transaction and returns the resulting rows sorted by zIndex.
	Save(ctx context.Context, userID, slideID int64, desired []model.ElementSave) ([]model.Element, error)
}

type ElementServiceImpl struct {
	elements repository.ElementRepository
	slides   repository.SlideRepository
}

// NewElementService constructs ElementService.
func NewElementService(elements repository.ElementRepository, slides repository.SlideRepository) *ElementServiceImpl {
	return &ElementServiceImpl{elements: elements, slides: slides}
}

// authorize resolves the slide through the caller's ownership chain.
func (s *ElementServiceImpl) authorize(ctx context.Context, userID, slideID int64) error {
	_, err := s.slides.GetForOwner(ctx, slideID, userID)
	return err
}

// List returns the slide's elements sorted by zIndex in application code; the
// query itself is unsorted to keep large element payloads cheap server-side.
func (s *ElementServiceImpl) List(ctx context.Context, userID, slideID int64) ([]model.Element, error) {
	if err := s.authorize(ctx, userID, slideID); err != nil {
		return nil, err
	}
	elements, err := s.elements.ListBySlide(ctx, slideID)
	if err != nil {
		return nil, err
	}
	sortByZIndex(elements)
	return elements, nil
}

// Create adds an element to the slide. Missing positional fields default to
// x=0 y=0 width=100 height=100 zIndex=0 rotation=0, data to "{}".
func (s *ElementServiceImpl) Create(ctx context.Context, userID, slideID int64, in ElementInput) (*model.Element, error) {
	if err := s.authorize(ctx, userID, slideID); err != nil {
		return nil, err
	}
	e := &model.Element{
		SlideID: slideID,
		Width:   100,
		Height:  100,
		Data:    "{}",
	}
	if err := applyElementInput(e, in); err != nil {
		return nil, err
	}
	if e.Type == "" {
		return nil, errs.Validation("type is required")
	}
	if err := validateElement(e); err != nil {
		return nil, err
	}
	if err := s.elements.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Update merges supplied fields into the element and persists it.
func (s *ElementServiceImpl) Update(ctx context.Context, userID, slideID, elementID int64, in ElementInput) (*model.Element, error) {
	if err := s.authorize(ctx, userID, slideID); err != nil {
		return nil, err
	}
	e, err := s.elements.Get(ctx, elementID, slideID)
	if err != nil {
		return nil, err
	}
	if err := applyElementInput(e, in); err != nil {
		return nil, err
	}
	if err := validateElement(e); err != nil {
		return nil, err
	}
	if err := s.elements.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Delete removes one element from the slide.
func (s *ElementServiceImpl) Delete(ctx context.Context, userID, slideID, elementID int64) error {
	if err := s.authorize(ctx, userID, slideID); err != nil {
		return err
	}
	return s.elements.Delete(ctx, elementID, slideID)
}

// Save reconciles element rows against the full desired list: rows absent
// from desired are deleted, entries with ids updated, the rest inserted, all
// in a single transaction. Last write wins; there is no conflict detection.
func (s *ElementServiceImpl) Save(ctx context.Context, userID, slideID int64, desired []model.ElementSave) ([]model.Element, error) {
	if err := s.authorize(ctx, userID, slideID); err != nil {
		return nil, err
	}
	for i := range desired {
		d := &desired[i]
		if !model.ValidElementType(d.Type) {
			return nil, errs.Validation("invalid type '%s'", d.Type)
		}
		if d.X < 0 || d.Y < 0 {
			return nil, errs.Validation("x and y must be non-negative")
		}
		if d.Width <= 0 || d.Height <= 0 {
			return nil, errs.Validation("width and height must be positive")
		}
		if d.Data == "" {
			d.Data = "{}"
		}
	}
	if err := s.elements.Reconcile(ctx, slideID, desired); err != nil {
		return nil, err
	}
	elements, err := s.elements.ListBySlide(ctx, slideID)
	if err != nil {
		return nil, err
	}
	sortByZIndex(elements)
	return elements, nil
}

func sortByZIndex(elements []model.Element) {
	sort.SliceStable(elements, func(i, j int) bool {
		return elements[i].ZIndex < elements[j].ZIndex
	})
}

// applyElementInput merges supplied fields into e, normalizing data to its
// stored string form whether it arrived as a JSON string or an object.
func applyElementInput(e *model.Element, in ElementInput) error {
	if in.Type != nil {
		e.Type = *in.Type
	}
	if in.X != nil {
		e.X = *in.X
	}
	if in.Y != nil {
		e.Y = *in.Y
	}
	if in.Width != nil {
		e.Width = *in.Width
	}
	if in.Height != nil {
		e.Height = *in.Height
	}
	if in.ZIndex != nil {
		e.ZIndex = *in.ZIndex
	}
	if in.Rotation != nil {
		e.Rotation = *in.Rotation
	}
	if len(in.Data) > 0 {
		normalized, err := NormalizeElementData(in.Data)
		if err != nil {
			return err
		}
		e.Data = normalized
	}
	return nil
}

// NormalizeElementData converts an element data payload to the stored string
// form. A JSON string value is unwrapped; any other JSON value is stored
// verbatim.
func NormalizeElementData(raw json.RawMessage) (string, error) {
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		if asString == "" {
			return "{}", nil
		}
		if !json.Valid([]byte(asString)) {
			return "", errs.Validation("data must be valid JSON")
		}
		return asString, nil
	}
	if !json.Valid(raw) {
		return "", errs.Validation("data must be valid JSON")
	}
	return string(raw), nil
}

// validateElement applies the positional and type checks shared by the
// element store mutations.
func validateElement(e *model.Element) error {
	if !model.ValidElementType(e.Type) {
		return errs.Validation("invalid type '%s'", e.Type)
	}
	if e.X < 0 || e.Y < 0 {
		return errs.Validation("x and y must be non-negative")
	}
	if e.Width <= 0 || e.Height <= 0 {
		return errs.Validation("width and height must be positive")
	}
	return nil
}
