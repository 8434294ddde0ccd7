package service

import (
	"context"

	"github.com/slidesmith/slidesmith/internal/errs"
	"github.com/slidesmith/slidesmith/internal/model"
	"github.com/slidesmith/slidesmith/internal/repository"
)

type fakeUsers struct {
	byID   map[int64]*model.User
	nextID int64

	createErr error
	getErr    error
}

var _ repository.UserRepository = (*fakeUsers)(nil)

func (f *fakeUsers) put(u model.User) *model.User {
	if f.byID == nil {
		f.byID = map[int64]*model.User{}
	}
	if u.ID == 0 {
		f.nextID++
		u.ID = f.nextID
	} else if u.ID > f.nextID {
		f.nextID = u.ID
	}
	f.byID[u.ID] = &u
	return &u
}

func (f *fakeUsers) Create(_ context.Context, u *model.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, ex := range f.byID {
		if ex.Email == u.Email {
			return errs.ErrAlreadyExists
		}
	}
	created := f.put(*u)
	u.ID = created.ID
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*model.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *u
	return &c, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byID {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeUsers) GetByName(_ context.Context, name string) (*model.User, error) {
	for _, u := range f.byID {
		if u.Name == name {
			c := *u
			return &c, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeUsers) List(_ context.Context) ([]model.User, error) {
	out := []model.User{}
	for _, u := range f.byID {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUsers) Update(_ context.Context, u *model.User) error {
	if _, ok := f.byID[u.ID]; !ok {
		return errs.ErrNotFound
	}
	c := *u
	f.byID[u.ID] = &c
	return nil
}

func (f *fakeUsers) SetRole(_ context.Context, id int64, role string) (*model.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	u.Role = role
	c := *u
	return &c, nil
}

func (f *fakeUsers) Delete(_ context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return errs.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakePresentations struct {
	byID   map[int64]*model.Presentation
	nextID int64
}

var _ repository.PresentationRepository = (*fakePresentations)(nil)

func (f *fakePresentations) ListByOwner(_ context.Context, userID int64) ([]model.PresentationSummary, error) {
	out := []model.PresentationSummary{}
	for _, p := range f.byID {
		if p.UserID == userID {
			out = append(out, model.PresentationSummary{Presentation: *p})
		}
	}
	return out, nil
}

func (f *fakePresentations) Create(_ context.Context, p *model.Presentation) error {
	if f.byID == nil {
		f.byID = map[int64]*model.Presentation{}
	}
	f.nextID++
	p.ID = f.nextID
	c := *p
	f.byID[p.ID] = &c
	return nil
}

func (f *fakePresentations) GetForOwner(_ context.Context, id, userID int64) (*model.Presentation, error) {
	p, ok := f.byID[id]
	if !ok || p.UserID != userID {
		return nil, errs.ErrNotFound
	}
	c := *p
	return &c, nil
}

func (f *fakePresentations) GetWithSlides(ctx context.Context, id, userID int64) (*model.Presentation, error) {
	return f.GetForOwner(ctx, id, userID)
}

func (f *fakePresentations) UpdateTitle(_ context.Context, id, userID int64, title string) (*model.Presentation, error) {
	p, ok := f.byID[id]
	if !ok || p.UserID != userID {
		return nil, errs.ErrNotFound
	}
	p.Title = title
	c := *p
	return &c, nil
}

func (f *fakePresentations) DeleteCascade(_ context.Context, id, userID int64) error {
	p, ok := f.byID[id]
	if !ok || p.UserID != userID {
		return errs.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeSlides struct {
	byID   map[int64]*model.Slide
	owners map[int64]int64 // presentationID -> userID
	nextID int64
}

var _ repository.SlideRepository = (*fakeSlides)(nil)

func (f *fakeSlides) ListByOwner(_ context.Context, userID int64) ([]model.Slide, error) {
	out := []model.Slide{}
	for _, s := range f.byID {
		if f.owners[s.PresentationID] == userID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSlides) Create(_ context.Context, s *model.Slide) error {
	if f.byID == nil {
		f.byID = map[int64]*model.Slide{}
	}
	f.nextID++
	s.ID = f.nextID
	c := *s
	f.byID[s.ID] = &c
	return nil
}

func (f *fakeSlides) NextOrderIndex(_ context.Context, presentationID int64) (int, error) {
	next := 0
	for _, s := range f.byID {
		if s.PresentationID == presentationID && s.OrderIndex >= next {
			next = s.OrderIndex + 1
		}
	}
	return next, nil
}

func (f *fakeSlides) GetForOwner(_ context.Context, id, userID int64) (*model.Slide, error) {
	s, ok := f.byID[id]
	if !ok || f.owners[s.PresentationID] != userID {
		return nil, errs.ErrNotFound
	}
	c := *s
	return &c, nil
}

func (f *fakeSlides) Update(_ context.Context, s *model.Slide) error {
	if _, ok := f.byID[s.ID]; !ok {
		return errs.ErrNotFound
	}
	c := *s
	f.byID[s.ID] = &c
	return nil
}

func (f *fakeSlides) DeleteCascade(_ context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return errs.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeElements struct {
	byID   map[int64]*model.Element
	nextID int64

	reconciled [][]model.ElementSave
}

var _ repository.ElementRepository = (*fakeElements)(nil)

func (f *fakeElements) ListBySlide(_ context.Context, slideID int64) ([]model.Element, error) {
	out := []model.Element{}
	for _, e := range f.byID {
		if e.SlideID == slideID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeElements) Create(_ context.Context, e *model.Element) error {
	if f.byID == nil {
		f.byID = map[int64]*model.Element{}
	}
	f.nextID++
	e.ID = f.nextID
	c := *e
	f.byID[e.ID] = &c
	return nil
}

func (f *fakeElements) Get(_ context.Context, id, slideID int64) (*model.Element, error) {
	e, ok := f.byID[id]
	if !ok || e.SlideID != slideID {
		return nil, errs.ErrNotFound
	}
	c := *e
	return &c, nil
}

func (f *fakeElements) Update(_ context.Context, e *model.Element) error {
	if _, ok := f.byID[e.ID]; !ok {
		return errs.ErrNotFound
	}
	c := *e
	f.byID[e.ID] = &c
	return nil
}

func (f *fakeElements) Delete(_ context.Context, id, slideID int64) error {
	e, ok := f.byID[id]
	if !ok || e.SlideID != slideID {
		return errs.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeElements) Reconcile(_ context.Context, slideID int64, desired []model.ElementSave) error {
	f.reconciled = append(f.reconciled, desired)

	kept := map[int64]bool{}
	for _, d := range desired {
		if d.ID != nil {
			if e, ok := f.byID[*d.ID]; !ok || e.SlideID != slideID {
				return errs.ErrNotFound
			}
			kept[*d.ID] = true
		}
	}
	for id, e := range f.byID {
		if e.SlideID == slideID && !kept[id] {
			delete(f.byID, id)
		}
	}
	for _, d := range desired {
		e := model.Element{
			SlideID: slideID, Type: d.Type,
			X: d.X, Y: d.Y, Width: d.Width, Height: d.Height,
			ZIndex: d.ZIndex, Rotation: d.Rotation, Data: d.Data,
		}
		if d.ID != nil {
			e.ID = *d.ID
			c := e
			f.byID[*d.ID] = &c
			continue
		}
		if f.byID == nil {
			f.byID = map[int64]*model.Element{}
		}
		f.nextID++
		e.ID = f.nextID
		c := e
		f.byID[e.ID] = &c
	}
	return nil
}

type fakeTemplates struct {
	byID     map[int64]*model.Template
	sampleOf map[int64]int64 // templateID -> cloned presentation ID

	cloneTitles []string
}

var _ repository.TemplateRepository = (*fakeTemplates)(nil)

func (f *fakeTemplates) List(_ context.Context) ([]model.Template, error) {
	out := []model.Template{}
	for _, t := range f.byID {
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeTemplates) Get(_ context.Context, id int64) (*model.Template, error) {
	t, ok := f.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *t
	return &c, nil
}

func (f *fakeTemplates) CloneSample(_ context.Context, templateID, userID int64, title string) (int64, error) {
	id, ok := f.sampleOf[templateID]
	if !ok {
		return 0, errs.ErrNotFound
	}
	f.cloneTitles = append(f.cloneTitles, title)
	return id, nil
}

type fakeAssets struct {
	byID   map[int64]*model.Asset
	nextID int64
}

var _ repository.AssetRepository = (*fakeAssets)(nil)

func (f *fakeAssets) Create(_ context.Context, a *model.Asset) error {
	if f.byID == nil {
		f.byID = map[int64]*model.Asset{}
	}
	f.nextID++
	a.ID = f.nextID
	c := *a
	f.byID[a.ID] = &c
	return nil
}

func (f *fakeAssets) ListByOwner(_ context.Context, userID int64) ([]model.Asset, error) {
	out := []model.Asset{}
	for _, a := range f.byID {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAssets) GetForOwner(_ context.Context, id, userID int64) (*model.Asset, error) {
	a, ok := f.byID[id]
	if !ok || a.UserID != userID {
		return nil, errs.ErrNotFound
	}
	c := *a
	return &c, nil
}

func (f *fakeAssets) Delete(_ context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return errs.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}
