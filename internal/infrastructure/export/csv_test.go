package export_test

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/cartem-panel/internal/domain/entity"
	"github.com/jhoicas/cartem-panel/internal/infrastructure/export"
)

var catalog = []entity.Product{
	{
		SKU: "TAL-01", Name: "Taladro", Description: "Percutor, 1/2\"", Stock: 4, Status: true,
		PurchasePrice: decimal.RequireFromString("1200.5"), RetailPrice: decimal.NewFromInt(1800),
		Subcategory: entity.Subcategory{Name: "Eléctricas", Category: &entity.Category{Name: "Herramientas"}},
	},
	{SKU: "BR-02", Name: "Broca", Status: false},
}

func TestCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.NewCSV().Export(&buf, catalog))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, export.Header, rows[0])
	assert.Equal(t, []string{
		"TAL-01", "Taladro", "Percutor, 1/2\"", "1200.50", "0.00", "0.00", "1800.00", "4", "",
		"Eléctricas", "Herramientas", "Activo",
	}, rows[1])
	assert.Equal(t, "Inactivo", rows[2][11])
	assert.Equal(t, "", rows[2][10])
}

func TestExcel_Windows1252(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.NewExcel().Export(&buf, catalog[:1]))

	raw := buf.Bytes()
	assert.Contains(t, string(raw), "\r\n")
	assert.True(t, bytes.Contains(raw, []byte{'E', 'l', 0xE9, 'c'}), "é se codifica en un byte")
	assert.False(t, bytes.Contains(raw, []byte("é")))

	decoded, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	require.NoError(t, err)
	rows, err := csv.NewReader(bytes.NewReader(decoded)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "Descripción", rows[0][2])
}

func TestExcel_ReemplazaNoRepresentables(t *testing.T) {
	var buf bytes.Buffer
	p := entity.Product{SKU: "X", Name: "Llave 日本"}
	require.NoError(t, export.NewExcel().Export(&buf, []entity.Product{p}))
	assert.Contains(t, buf.String(), "Llave ")
	assert.NotContains(t, buf.String(), "日本")
}
