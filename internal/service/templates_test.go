package service

import (
	"context"
	"errors"
	"testing"

	"github.com/slidesmith/slidesmith/internal/errs"
	"github.com/slidesmith/slidesmith/internal/model"
)

func newTemplateFixture() (*TemplateServiceImpl, *fakeTemplates, *fakePresentations) {
	templates := &fakeTemplates{
		byID: map[int64]*model.Template{
			2: {ID: 2, Name: "Business Pitch Deck", Category: "business"},
		},
		sampleOf: map[int64]int64{2: 77},
	}
	presentations := &fakePresentations{
		byID:   map[int64]*model.Presentation{77: {ID: 77, UserID: 9, Title: "My Business Pitch Deck"}},
		nextID: 77,
	}
	return NewTemplateService(templates, presentations), templates, presentations
}

func TestTemplateUse_DefaultTitle(t *testing.T) {
	svc, templates, _ := newTemplateFixture()

	p, err := svc.Use(context.Background(), 2, 9, "")
	if err != nil {
		t.Fatalf("Use: %v", err)
	}
	if p.ID != 77 {
		t.Fatalf("presentation ID=%d", p.ID)
	}
	if len(templates.cloneTitles) != 1 || templates.cloneTitles[0] != "My Business Pitch Deck" {
		t.Fatalf("clone titles=%v", templates.cloneTitles)
	}
}

func TestTemplateUse_ExplicitTitle(t *testing.T) {
	svc, templates, _ := newTemplateFixture()

	if _, err := svc.Use(context.Background(), 2, 9, "Q3 Review"); err != nil {
		t.Fatalf("Use: %v", err)
	}
	if templates.cloneTitles[0] != "Q3 Review" {
		t.Fatalf("clone titles=%v", templates.cloneTitles)
	}
}

func TestTemplateUse_UnknownTemplate(t *testing.T) {
	svc, _, _ := newTemplateFixture()

	_, err := svc.Use(context.Background(), 99, 9, "")
	if !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("err=%v, want ErrNotFound", err)
	}
}
