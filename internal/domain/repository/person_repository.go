package repository

import (
	"context"

	"github.com/jhoicas/cartem-panel/internal/domain/entity"
)

// PersonRepository define el puerto hacia /person del API remoto. Todas las operaciones requieren el token bearer.
type PersonRepository interface {
	Page(ctx context.Context, token string, q entity.PageQuery) (*entity.Page[entity.Person], error)
	Create(ctx context.Context, token string, person *entity.Person) error
	ChangeStatus(ctx context.Context, token, email string) error
	Delete(ctx context.Context, token, email string) error
}
