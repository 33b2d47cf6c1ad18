// Package export escribe el catálogo en CSV (UTF-8) y en CSV para Excel (Windows-1252).
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/cartem-panel/internal/domain/entity"
	"github.com/jhoicas/cartem-panel/pkg/money"
)

// Header columnas en el orden de la tabla de productos.
var Header = []string{
	"SKU", "Nombre", "Descripción", "Precio Compra", "Precio Mayoreo", "Precio socio",
	"Precio publico", "Stock", "Info tecnica", "Subcategoria", "Categoria", "Estatus",
}

func record(p entity.Product) []string {
	return []string{
		p.SKU,
		p.Name,
		p.Description,
		money.Plain(p.PurchasePrice),
		money.Plain(p.WholesalePrice),
		money.Plain(p.BulkWholesalePrice),
		money.Plain(p.RetailPrice),
		strconv.Itoa(p.Stock),
		p.TechnicalData,
		p.Subcategory.Name,
		p.CategoryName(),
		entity.StatusLabel(p.Status),
	}
}

// CSV exportador UTF-8 separado por comas.
type CSV struct{}

func NewCSV() *CSV { return &CSV{} }

func (CSV) Format() string      { return "csv" }
func (CSV) ContentType() string { return "text/csv; charset=utf-8" }
func (CSV) Extension() string   { return "csv" }

func (CSV) Export(w io.Writer, products []entity.Product) error {
	return writeAll(csv.NewWriter(w), products)
}

// Excel CSV en Windows-1252 con fin de línea CRLF: Excel en Windows lo abre con acentos correctos.
// Caracteres fuera de la página de códigos se reemplazan.
type Excel struct{}

func NewExcel() *Excel { return &Excel{} }

func (Excel) Format() string      { return "excel" }
func (Excel) ContentType() string { return "text/csv; charset=windows-1252" }
func (Excel) Extension() string   { return "csv" }

func (Excel) Export(w io.Writer, products []entity.Product) error {
	enc := encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder())
	cw := csv.NewWriter(enc.Writer(w))
	cw.UseCRLF = true
	return writeAll(cw, products)
}

func writeAll(cw *csv.Writer, products []entity.Product) error {
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("export: encabezado: %w", err)
	}
	for _, p := range products {
		if err := cw.Write(record(p)); err != nil {
			return fmt.Errorf("export: producto %s: %w", p.SKU, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}
