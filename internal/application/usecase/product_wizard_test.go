package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cartem-panel/internal/application/dto"
	"github.com/jhoicas/cartem-panel/internal/application/usecase"
	"github.com/jhoicas/cartem-panel/internal/domain"
	"github.com/jhoicas/cartem-panel/internal/domain/entity"
)

func newWizard() (*usecase.ProductWizard, *memDrafts, *fakeProductRepo) {
	drafts := newMemDrafts()
	repo := &fakeProductRepo{}
	return usecase.NewProductWizard(drafts, &stubImages{}, repo, 10), drafts, repo
}

func uploads(n int) []dto.ImageUpload {
	out := make([]dto.ImageUpload, n)
	for i := range out {
		out[i] = dto.ImageUpload{Filename: fmt.Sprintf("img-%d.png", i), MimeType: "image/png", Data: []byte{1}}
	}
	return out
}

func TestWizard_AltaCompleta(t *testing.T) {
	w, drafts, repo := newWizard()
	ctx := context.Background()

	d, err := w.Start(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, dto.DraftStepDetails, d.Step)

	d, err = w.SaveDetails(ctx, d.ID, validDetails())
	require.NoError(t, err)
	assert.Equal(t, dto.DraftStepImages, d.Step)

	_, err = w.SetPreview(ctx, d.ID, dto.ImageUpload{Filename: "preview.jpg", MimeType: "image/jpeg", Data: []byte{1}})
	require.NoError(t, err)
	_, err = w.AddImages(ctx, d.ID, uploads(2))
	require.NoError(t, err)

	_, err = w.Submit(ctx, "tok", d.ID)
	require.NoError(t, err)

	require.Len(t, repo.saved, 1)
	saved := repo.saved[0]
	assert.Equal(t, "Taladro", saved.Name)
	assert.Equal(t, entity.Subcategory{ID: "sub-1"}, saved.Subcategory)
	assert.Equal(t, "QUJD", saved.Preview.FileBase64)
	assert.Len(t, saved.Images, 2)
	assert.True(t, saved.Status)

	_, err = drafts.Get(ctx, d.ID)
	assert.ErrorIs(t, err, domain.ErrDraftNotFound, "el borrador se elimina tras el éxito")
}

func TestWizard_ExcesoDeImagenesSeIgnora(t *testing.T) {
	w, _, _ := newWizard()
	ctx := context.Background()
	d, _ := w.Start(ctx, nil)

	d, err := w.AddImages(ctx, d.ID, uploads(7))
	require.NoError(t, err)
	d, err = w.AddImages(ctx, d.ID, uploads(7))
	require.NoError(t, err)

	assert.Len(t, d.Product.Images, 10)
}

func TestWizard_RemoveImage(t *testing.T) {
	w, _, _ := newWizard()
	ctx := context.Background()
	d, _ := w.Start(ctx, nil)
	d, _ = w.AddImages(ctx, d.ID, uploads(3))

	d, err := w.RemoveImage(ctx, d.ID, 1)
	require.NoError(t, err)
	require.Len(t, d.Product.Images, 2)
	assert.Equal(t, "img-0.png", d.Product.Images[0].UID)
	assert.Equal(t, "img-2.png", d.Product.Images[1].UID)

	d, err = w.RemoveImage(ctx, d.ID, 9)
	require.NoError(t, err)
	assert.Len(t, d.Product.Images, 2)
}

func TestWizard_SubmitInvalidoNoLlamaAlAPI(t *testing.T) {
	w, _, repo := newWizard()
	ctx := context.Background()
	d, _ := w.Start(ctx, nil)

	bad := validDetails()
	bad.SubcategoryID = ""
	_, err := w.SaveDetails(ctx, d.ID, bad)
	var fe dto.FieldErrors
	require.True(t, errors.As(err, &fe))

	d, err = w.Submit(ctx, "tok", d.ID)
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "La subcategoría es requerida", fe["subcategory"])
	assert.Equal(t, dto.DraftStepDetails, d.Step)
	assert.Empty(t, repo.saved)
}

func TestWizard_ErrorRemotoConservaBorrador(t *testing.T) {
	w, drafts, repo := newWizard()
	repo.saveErr = &domain.RemoteError{Status: 400, Message: "SKU duplicado"}
	ctx := context.Background()
	d, _ := w.Start(ctx, nil)
	_, _ = w.SaveDetails(ctx, d.ID, validDetails())

	_, err := w.Submit(ctx, "tok", d.ID)
	assert.Equal(t, "SKU duplicado", domain.RemoteMessage(err, ""))

	_, err = drafts.Get(ctx, d.ID)
	assert.NoError(t, err)
}

func TestWizard_EdicionConservaUIDEImagenes(t *testing.T) {
	w, _, repo := newWizard()
	ctx := context.Background()
	seed := entity.Product{
		UID: "p-9", Name: "Broca", Description: "d", TechnicalData: "t", SKU: "BR-1", Status: true,
		Subcategory: entity.Subcategory{ID: "sub-2", Name: "Brocas", Category: &entity.Category{ID: "c", Name: "Acc"}},
		Preview:     entity.Image{UID: "i0", URL: "https://cdn/p.png"},
		Images:      []entity.Image{{UID: "i1", URL: "https://cdn/1.png"}},
	}

	d, err := w.Start(ctx, &seed)
	require.NoError(t, err)
	assert.True(t, d.IsEdit())
	assert.Equal(t, "Broca", d.Details.Name)
	assert.Equal(t, "0", d.Details.PurchasePrice)

	_, err = w.Submit(ctx, "tok", d.ID)
	require.NoError(t, err)
	saved := repo.saved[0]
	assert.Equal(t, "p-9", saved.UID)
	assert.Equal(t, "https://cdn/1.png", saved.Images[0].URL)
	assert.Empty(t, saved.Images[0].FileBase64)
	assert.Nil(t, saved.Subcategory.Category)
}

func TestWizard_BorradorInexistente(t *testing.T) {
	w, _, _ := newWizard()
	_, err := w.AddImages(context.Background(), "nope", uploads(1))
	assert.True(t, usecase.IsDraftMissing(err))
}
