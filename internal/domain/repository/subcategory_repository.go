package repository

import (
	"context"

	"github.com/jhoicas/cartem-panel/internal/domain/entity"
)

// SubcategoryRepository catálogo de subcategorías para el asistente de productos.
type SubcategoryRepository interface {
	GetAll(ctx context.Context, token string) ([]entity.Subcategory, error)
}
