package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cartem-panel/internal/application/dto"
	"github.com/jhoicas/cartem-panel/internal/application/usecase"
	"github.com/jhoicas/cartem-panel/internal/domain"
	"github.com/jhoicas/cartem-panel/internal/domain/entity"
)

type namesExporter struct{}

func (namesExporter) Format() string      { return "csv" }
func (namesExporter) ContentType() string { return "text/csv" }
func (namesExporter) Extension() string   { return "csv" }
func (namesExporter) Export(w io.Writer, products []entity.Product) error {
	for _, p := range products {
		if _, err := io.WriteString(w, p.Name+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func TestStats_PaginaVisible(t *testing.T) {
	page := &entity.Page[entity.Product]{
		TotalElements: 42,
		Content: []entity.Product{
			{Status: true, Stock: 2, PurchasePrice: decimal.NewFromInt(10)},
			{Status: false, Stock: 1, PurchasePrice: decimal.RequireFromString("5.5")},
			{Status: true, Stock: 0, PurchasePrice: decimal.NewFromInt(99)},
		},
	}
	st := usecase.Stats(page)
	assert.Equal(t, 42, st.Total)
	assert.Equal(t, 2, st.Active)
	assert.Equal(t, 1, st.Inactive)
	assert.True(t, decimal.RequireFromString("25.5").Equal(st.InventoryValue))
	assert.Equal(t, 0, usecase.Stats(nil).Total)
}

func TestProductDelete_SoloInactivos(t *testing.T) {
	repo := &fakeProductRepo{}
	uc := usecase.NewProductUseCase(repo, nil)

	assert.ErrorIs(t, uc.Delete(context.Background(), "tok", "p-1", true), domain.ErrActionNotAllowed)
	assert.NoError(t, uc.Delete(context.Background(), "tok", "p-1", false))
	assert.Equal(t, []string{"p-1"}, repo.deleted)
}

func TestProductToggleStatus(t *testing.T) {
	repo := &fakeProductRepo{}
	uc := usecase.NewProductUseCase(repo, nil)

	assert.ErrorIs(t, uc.ToggleStatus(context.Background(), "tok", ""), domain.ErrInvalidInput)
	assert.Empty(t, repo.toggled)
	require.NoError(t, uc.ToggleStatus(context.Background(), "tok", "p-1"))
	assert.Equal(t, []string{"p-1"}, repo.toggled)
}

func TestProductFind(t *testing.T) {
	repo := &fakeProductRepo{content: []entity.Product{{UID: "a"}, {UID: "b", Name: "Broca"}}}
	uc := usecase.NewProductUseCase(repo, nil)

	p, err := uc.Find(context.Background(), "tok", dto.ListQuery{Page: 1}, "b")
	require.NoError(t, err)
	assert.Equal(t, "Broca", p.Name)

	_, err = uc.Find(context.Background(), "tok", dto.ListQuery{Page: 1}, "zzz")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestProductExport(t *testing.T) {
	repo := &fakeProductRepo{content: []entity.Product{{Name: "Taladro"}, {Name: "Broca"}}}
	uc := usecase.NewProductUseCase(repo, nil, namesExporter{})

	assert.Equal(t, []string{"csv"}, uc.ExportFormats())
	_, err := uc.Exporter("pdf")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	exp, err := uc.Exporter(" CSV ")
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, uc.Export(context.Background(), "tok", dto.ListQuery{Page: 1}, exp, &buf))
	assert.Equal(t, "Taladro\nBroca\n", buf.String())
}
