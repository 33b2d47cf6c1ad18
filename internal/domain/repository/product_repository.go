package repository

import (
	"context"

	"github.com/jhoicas/cartem-panel/internal/domain/entity"
)

// ProductRepository define el puerto hacia /product del API remoto.
// Page no exige token; el resto sí.
type ProductRepository interface {
	Page(ctx context.Context, token string, q entity.PageQuery) (*entity.Page[entity.Product], error)
	// Save crea (UID vacío) o actualiza el producto.
	Save(ctx context.Context, token string, product *entity.Product) error
	ChangeStatus(ctx context.Context, token, uid string) error
	Delete(ctx context.Context, token, uid string) error
}
