package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cartem-panel/internal/application/dto"
	"github.com/jhoicas/cartem-panel/internal/application/ports"
	"github.com/jhoicas/cartem-panel/internal/domain"
	"github.com/jhoicas/cartem-panel/internal/domain/entity"
	"github.com/jhoicas/cartem-panel/internal/domain/repository"
)

// ProductUseCase listado, cambios de estatus, eliminación y exportación de productos.
type ProductUseCase struct {
	repo      repository.ProductRepository
	subcats   repository.SubcategoryRepository
	exporters map[string]ports.CatalogExporter
}

// NewProductUseCase construye el caso de uso. exporters se indexan por Format().
func NewProductUseCase(repo repository.ProductRepository, subcats repository.SubcategoryRepository, exporters ...ports.CatalogExporter) *ProductUseCase {
	m := make(map[string]ports.CatalogExporter, len(exporters))
	for _, e := range exporters {
		m[e.Format()] = e
	}
	return &ProductUseCase{repo: repo, subcats: subcats, exporters: m}
}

// List trae una página por nombre. q.Page es base 1: la página 2 de la UI pide page=1 al API.
func (uc *ProductUseCase) List(ctx context.Context, token string, q dto.ListQuery) (*entity.Page[entity.Product], error) {
	q = q.Normalize()
	page, err := uc.repo.Page(ctx, token, entity.PageQuery{
		Page:   q.RemotePage(),
		Size:   q.Size,
		Search: q.Search,
	})
	if err != nil {
		return nil, fmt.Errorf("productos: listar: %w", err)
	}
	return page, nil
}

// Loader listado ligado al token de la sesión actual.
func (uc *ProductUseCase) Loader(token string, q dto.ListQuery) *Loader[entity.Product] {
	return NewLoader(func(ctx context.Context, q dto.ListQuery) (*entity.Page[entity.Product], error) {
		return uc.List(ctx, token, q)
	}, q)
}

// Find busca uid en la página indicada. El API no expone consulta por uid.
func (uc *ProductUseCase) Find(ctx context.Context, token string, q dto.ListQuery, uid string) (*entity.Product, error) {
	page, err := uc.List(ctx, token, q)
	if err != nil {
		return nil, err
	}
	for i := range page.Content {
		if page.Content[i].UID == uid {
			p := page.Content[i]
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

// ToggleStatus alterna el estatus; el API decide el nuevo valor y ambos estados lo permiten.
func (uc *ProductUseCase) ToggleStatus(ctx context.Context, token, uid string) error {
	if uid == "" {
		return domain.ErrInvalidInput
	}
	if err := uc.repo.ChangeStatus(ctx, token, uid); err != nil {
		return fmt.Errorf("productos: cambiar estatus: %w", err)
	}
	return nil
}

// Delete elimina el producto; sólo si está inactivo.
func (uc *ProductUseCase) Delete(ctx context.Context, token, uid string, active bool) error {
	if !entity.IsActionAllowed(active, entity.ActionDelete) {
		return domain.ErrActionNotAllowed
	}
	if uid == "" {
		return domain.ErrInvalidInput
	}
	if err := uc.repo.Delete(ctx, token, uid); err != nil {
		return fmt.Errorf("productos: eliminar: %w", err)
	}
	return nil
}

// CanEdit la edición sólo se ofrece para productos activos.
func CanEdit(p entity.Product) bool {
	return entity.IsActionAllowed(p.Status, entity.ActionEdit)
}

// Subcategories catálogo para el selector del asistente.
func (uc *ProductUseCase) Subcategories(ctx context.Context, token string) ([]entity.Subcategory, error) {
	subs, err := uc.subcats.GetAll(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("productos: subcategorías: %w", err)
	}
	return subs, nil
}

// Stats tarjetas rápidas. Total viene de totalElements; el resto se calcula sobre la página visible.
func Stats(page *entity.Page[entity.Product]) dto.ProductStats {
	st := dto.ProductStats{InventoryValue: decimal.Zero}
	if page == nil {
		return st
	}
	st.Total = page.TotalElements
	for _, p := range page.Content {
		if p.Status {
			st.Active++
		} else {
			st.Inactive++
		}
		st.InventoryValue = st.InventoryValue.Add(p.InventoryValue())
	}
	return st
}

// ExportFormats formatos registrados.
func (uc *ProductUseCase) ExportFormats() []string {
	out := make([]string, 0, len(uc.exporters))
	for _, f := range []string{"csv", "excel", "pdf"} {
		if _, ok := uc.exporters[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

// Exporter devuelve el exportador para format o ErrInvalidInput.
func (uc *ProductUseCase) Exporter(format string) (ports.CatalogExporter, error) {
	e, ok := uc.exporters[strings.ToLower(strings.TrimSpace(format))]
	if !ok {
		return nil, fmt.Errorf("productos: formato %q: %w", format, domain.ErrInvalidInput)
	}
	return e, nil
}

// Export escribe la página pedida en el formato indicado.
func (uc *ProductUseCase) Export(ctx context.Context, token string, q dto.ListQuery, exp ports.CatalogExporter, w io.Writer) error {
	page, err := uc.List(ctx, token, q)
	if err != nil {
		return err
	}
	if err := exp.Export(w, page.Content); err != nil {
		return fmt.Errorf("productos: exportar %s: %w", exp.Format(), err)
	}
	return nil
}

// ToProductRow fila para la superficie JSON.
func ToProductRow(p entity.Product) dto.ProductRow {
	return dto.ProductRow{
		UID:                p.UID,
		Name:               p.Name,
		SKU:                p.SKU,
		PurchasePrice:      p.PurchasePrice,
		RetailPrice:        p.RetailPrice,
		WholesalePrice:     p.WholesalePrice,
		BulkWholesalePrice: p.BulkWholesalePrice,
		Stock:              p.Stock,
		Subcategory:        p.Subcategory.Name,
		Category:           p.CategoryName(),
		Status:             p.Status,
		Actions:            actionNames(p.Status),
	}
}
