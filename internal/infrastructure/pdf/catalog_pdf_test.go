package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cartem-panel/internal/domain/entity"
)

func TestCatalogPDF_Export(t *testing.T) {
	g := NewCatalogPDF("")
	g.now = func() time.Time { return time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC) }

	products := []entity.Product{
		{SKU: "TAL-01", Name: "Taladro percutor", Stock: 3, Status: true, PurchasePrice: decimal.NewFromInt(1200),
			Subcategory: entity.Subcategory{Name: "Taladros"}},
		{SKU: "BR-02", Name: "Broca 1/4", Stock: 0, Status: false, RetailPrice: decimal.RequireFromString("35.5")},
	}

	var buf bytes.Buffer
	require.NoError(t, g.Export(&buf, products))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	assert.Equal(t, "pdf", g.Format())
	assert.Equal(t, "application/pdf", g.ContentType())
}

func TestCatalogPDF_SinProductos(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCatalogPDF("Inventario").Export(&buf, nil))
	assert.NotZero(t, buf.Len())
}
