package usecase_test

import (
	"context"
	"sync"

	"github.com/jhoicas/cartem-panel/internal/application/dto"
	"github.com/jhoicas/cartem-panel/internal/domain"
	"github.com/jhoicas/cartem-panel/internal/domain/entity"
)

// ── Fakes de repositorios y puertos ──────────────────────────────────────────

type fakePersonRepo struct {
	pages      []entity.PageQuery
	created    []*entity.Person
	statusFor  []string
	deletedFor []string
	err        error
}

func (r *fakePersonRepo) Page(_ context.Context, _ string, q entity.PageQuery) (*entity.Page[entity.Person], error) {
	r.pages = append(r.pages, q)
	if r.err != nil {
		return nil, r.err
	}
	return &entity.Page[entity.Person]{Content: []entity.Person{{Email: "a@b.c", Status: true}}, TotalPages: 1, TotalElements: 1, NumberOfElements: 1}, nil
}

func (r *fakePersonRepo) Create(_ context.Context, _ string, p *entity.Person) error {
	r.created = append(r.created, p)
	return r.err
}

func (r *fakePersonRepo) ChangeStatus(_ context.Context, _, email string) error {
	r.statusFor = append(r.statusFor, email)
	return r.err
}

func (r *fakePersonRepo) Delete(_ context.Context, _, email string) error {
	r.deletedFor = append(r.deletedFor, email)
	return r.err
}

type fakeProductRepo struct {
	mu      sync.Mutex
	pages   []entity.PageQuery
	content []entity.Product
	saved   []*entity.Product
	saveErr error
	deleted []string
	toggled []string
}

func (r *fakeProductRepo) Page(_ context.Context, _ string, q entity.PageQuery) (*entity.Page[entity.Product], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pages = append(r.pages, q)
	return &entity.Page[entity.Product]{Content: r.content, TotalPages: 3, TotalElements: 25, NumberOfElements: len(r.content)}, nil
}

func (r *fakeProductRepo) Save(_ context.Context, _ string, p *entity.Product) error {
	r.saved = append(r.saved, p)
	return r.saveErr
}

func (r *fakeProductRepo) ChangeStatus(_ context.Context, _, uid string) error {
	r.toggled = append(r.toggled, uid)
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, _, uid string) error {
	r.deleted = append(r.deleted, uid)
	return nil
}

type memDrafts struct {
	mu sync.Mutex
	m  map[string]dto.ProductDraft
}

func newMemDrafts() *memDrafts { return &memDrafts{m: map[string]dto.ProductDraft{}} }

func (s *memDrafts) Save(_ context.Context, d *dto.ProductDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *d
	cp.Product.Images = append([]entity.Image(nil), d.Product.Images...)
	s.m[d.ID] = cp
	return nil
}

func (s *memDrafts) Get(_ context.Context, id string) (*dto.ProductDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.m[id]
	if !ok {
		return nil, domain.ErrDraftNotFound
	}
	return &d, nil
}

func (s *memDrafts) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, id)
	return nil
}

type stubImages struct{ n int }

func (p *stubImages) Process(filename, mimeType string, data []byte) (*entity.Image, error) {
	p.n++
	return &entity.Image{UID: filename, Title: filename, MimeType: mimeType, FileBase64: "QUJD"}, nil
}
