// Package model defines domain entities used by services and repositories.
package model

import "time"

// Roles assignable to a user account.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an account. PasswordHash is never serialized.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	AvatarURL    string    `json:"avatarUrl"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Presentation is an ordered collection of slides belonging to one owner.
// TemplateID records provenance when the presentation was cloned from a template.
type Presentation struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"userId"`
	Title      string    `json:"title"`
	TemplateID *int64    `json:"templateId"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	Slides []Slide `json:"slides,omitempty"`
}

// PresentationSummary is a list row enriched with slide count and a derived thumbnail.
type PresentationSummary struct {
	Presentation
	SlideCount int    `json:"slideCount"`
	Thumbnail  string `json:"thumbnail"`
}

// Slide is one page of a presentation. Content holds background state as a JSON
// string; elements are persisted as rows, never inside Content (a legacy
// content.elements array may still arrive from old clients and is ignored).
type Slide struct {
	ID             int64     `json:"id"`
	PresentationID int64     `json:"presentationId"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	OrderIndex     int       `json:"orderIndex"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Element types accepted by validation.
const (
	ElementText  = "text"
	ElementImage = "image"
	ElementShape = "shape"
	ElementChart = "chart"
	ElementTable = "table"
)

// ValidElementType reports whether t is one of the accepted element types.
func ValidElementType(t string) bool {
	switch t {
	case ElementText, ElementImage, ElementShape, ElementChart, ElementTable:
		return true
	}
	return false
}

// Element is a single positioned visual primitive on a slide. Data is a JSON
// string whose shape depends on Type; no schema is enforced beyond type checks.
type Element struct {
	ID        int64     `json:"id"`
	SlideID   int64     `json:"slideId"`
	Type      string    `json:"type"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	Width     float64   `json:"width"`
	Height    float64   `json:"height"`
	ZIndex    int       `json:"zIndex"`
	Rotation  float64   `json:"rotation"`
	Data      string    `json:"data"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ElementSave is one entry of a bulk slide save. A nil ID means the element is
// new and must be created; otherwise the row with that ID is updated in place.
type ElementSave struct {
	ID       *int64  `json:"id"`
	Type     string  `json:"type"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	ZIndex   int     `json:"zIndex"`
	Rotation float64 `json:"rotation"`
	Data     string  `json:"data"`
}

// Template is an immutable starting-point definition. Data is JSON metadata
// (theme colors, slide count); the cloneable content lives in the template's
// sample presentation.
type Template struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Thumbnail string    `json:"thumbnail"`
	Data      string    `json:"data"`
	CreatedAt time.Time `json:"createdAt"`
}

// SlidePlan is one slide of an AI-generated outline, as returned by the model.
type SlidePlan struct {
	SlideNumber int      `json:"slideNumber"`
	Title       string   `json:"title"`
	Bullets     []string `json:"bullets"`
	Notes       string   `json:"notes"`
	ImageHint   string   `json:"imageHint,omitempty"`
}

// Asset is an uploaded file owned by a user. URL is the serving path relative
// to the uploads directory.
type Asset struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	URL       string    `json:"url"`
	Filename  string    `json:"filename"`
	CreatedAt time.Time `json:"createdAt"`
}
