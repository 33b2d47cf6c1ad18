// Package pdf genera el catálogo de productos en PDF.
//
// Layout de la página A4 horizontal:
//
//	┌──────────────────────────────────────────────────────────────┐
//	│  HEADER: Catálogo de productos        │  Fecha + página      │
//	│  ──────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Nombre | Subcategoría | Stock | Precios | Est. │
//	│  ──────────────────────────────────────────────────────────  │
//	│  TOTALES: productos / valor de inventario                    │
//	└──────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"io"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cartem-panel/internal/domain/entity"
	"github.com/jhoicas/cartem-panel/pkg/money"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 91, Green: 33, Blue: 182}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDanger  = &props.Color{Red: 190, Green: 30, Blue: 45}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// CatalogPDF implementa ports.CatalogExporter usando Maroto v2.
type CatalogPDF struct {
	title string
	now   func() time.Time
}

// NewCatalogPDF construye el generador; title aparece en el encabezado y en los metadatos.
func NewCatalogPDF(title string) *CatalogPDF {
	if title == "" {
		title = "Catálogo de productos"
	}
	return &CatalogPDF{title: title, now: time.Now}
}

func (g *CatalogPDF) Format() string      { return "pdf" }
func (g *CatalogPDF) ContentType() string { return "application/pdf" }
func (g *CatalogPDF) Extension() string   { return "pdf" }

// Export escribe el catálogo en w.
func (g *CatalogPDF) Export(w io.Writer, products []entity.Product) error {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(len(products)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(products)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(products))

	doc, err := m.Generate()
	if err != nil {
		return fmt.Errorf("pdf: generar documento: %w", err)
	}
	if _, err := w.Write(doc.GetBytes()); err != nil {
		return fmt.Errorf("pdf: escribir documento: %w", err)
	}
	return nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *CatalogPDF) headerRow(n int) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(g.title, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%d productos en esta página", n), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+g.now().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("SKU", 1, align.Left),
		h("Nombre", 3, align.Left),
		h("Subcategoría", 2, align.Left),
		h("Stock", 1, align.Center),
		h("Compra", 1, align.Right),
		h("Mayoreo", 1, align.Right),
		h("Socio", 1, align.Right),
		h("Público", 1, align.Right),
		h("Estatus", 1, align.Center),
	)
}

// tableRows una fila por producto.
func tableRows(products []entity.Product) []core.Row {
	result := make([]core.Row, 0, len(products))
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1}))
	}
	for _, p := range products {
		status := props.Text{Size: 8, Align: align.Center, Top: 1}
		if !p.Status {
			status.Color = colorDanger
		}
		result = append(result, row.New(7).Add(
			cell(p.SKU, 1, align.Left),
			cell(p.Name, 3, align.Left),
			cell(p.Subcategory.Name, 2, align.Left),
			cell(strconv.Itoa(p.Stock), 1, align.Center),
			cell(money.Format(p.PurchasePrice), 1, align.Right),
			cell(money.Format(p.WholesalePrice), 1, align.Right),
			cell(money.Format(p.BulkWholesalePrice), 1, align.Right),
			cell(money.Format(p.RetailPrice), 1, align.Right),
			col.New(1).Add(text.New(entity.StatusLabel(p.Status), status)),
		))
	}
	return result
}

func totalsRow(products []entity.Product) core.Row {
	value := decimal.Zero
	for _, p := range products {
		value = value.Add(p.InventoryValue())
	}
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	return row.New(14).Add(
		col.New(6),
		col.New(3).Add(
			label("Productos:"),
			text.New("Valor de inventario:", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 6,
			}),
		),
		col.New(3).Add(
			text.New(strconv.Itoa(len(products)), props.Text{Size: 9, Align: align.Right}),
			text.New(money.Format(value), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 6,
			}),
		),
	)
}
