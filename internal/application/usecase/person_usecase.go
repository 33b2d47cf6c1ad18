package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/cartem-panel/internal/application/dto"
	"github.com/jhoicas/cartem-panel/internal/domain"
	"github.com/jhoicas/cartem-panel/internal/domain/entity"
	"github.com/jhoicas/cartem-panel/internal/domain/repository"
)

// PersonTabs pestañas de /dashboard/admin/persons en orden (valor del filtro role).
var PersonTabs = []string{"admin", "employee", "customer"}

// PersonUseCase listado y mutaciones de personas sobre el API remoto.
type PersonUseCase struct {
	repo repository.PersonRepository
}

// NewPersonUseCase construye el caso de uso.
func NewPersonUseCase(repo repository.PersonRepository) *PersonUseCase {
	return &PersonUseCase{repo: repo}
}

// List trae una página filtrada por rol y búsqueda. q.Page es base 1.
func (uc *PersonUseCase) List(ctx context.Context, token string, q dto.ListQuery) (*entity.Page[entity.Person], error) {
	q = q.Normalize()
	if q.Role == "" {
		q.Role = PersonTabs[0]
	}
	page, err := uc.repo.Page(ctx, token, entity.PageQuery{
		Page:   q.RemotePage(),
		Size:   q.Size,
		Search: q.Search,
		Role:   q.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("personas: listar: %w", err)
	}
	return page, nil
}

// Loader listado ligado al token de la sesión actual.
func (uc *PersonUseCase) Loader(token string, q dto.ListQuery) *Loader[entity.Person] {
	return NewLoader(func(ctx context.Context, q dto.ListQuery) (*entity.Page[entity.Person], error) {
		return uc.List(ctx, token, q)
	}, q)
}

// Create valida y da de alta un administrador o empleado. Errores de validación: dto.FieldErrors.
func (uc *PersonUseCase) Create(ctx context.Context, token string, in dto.PersonForm) error {
	person, errs := ValidatePerson(in)
	if errs.Any() {
		return errs
	}
	if err := uc.repo.Create(ctx, token, person); err != nil {
		return fmt.Errorf("personas: crear: %w", err)
	}
	return nil
}

// ToggleStatus activa o desactiva según el estatus que mostraba la fila.
func (uc *PersonUseCase) ToggleStatus(ctx context.Context, token, email string, active bool) error {
	action := entity.ActionDeactivate
	if !active {
		action = entity.ActionActivate
	}
	if !entity.IsActionAllowed(active, action) {
		return domain.ErrActionNotAllowed
	}
	if email == "" {
		return domain.ErrInvalidInput
	}
	if err := uc.repo.ChangeStatus(ctx, token, email); err != nil {
		return fmt.Errorf("personas: cambiar estatus: %w", err)
	}
	return nil
}

// Delete elimina a una persona; sólo permitido si está inactiva.
func (uc *PersonUseCase) Delete(ctx context.Context, token, email string, active bool) error {
	if !entity.IsActionAllowed(active, entity.ActionDelete) {
		return domain.ErrActionNotAllowed
	}
	if email == "" {
		return domain.ErrInvalidInput
	}
	if err := uc.repo.Delete(ctx, token, email); err != nil {
		return fmt.Errorf("personas: eliminar: %w", err)
	}
	return nil
}

// ToPersonRow fila para la superficie JSON.
func ToPersonRow(p entity.Person) dto.PersonRow {
	row := dto.PersonRow{
		ID:       p.ID,
		FullName: p.FullName(),
		Email:    p.Email,
		Phone:    p.Phone,
		RFC:      p.RFC,
		Role:     string(p.Role),
		Status:   p.Status,
		Actions:  actionNames(p.Status),
	}
	if t := p.Created(); !t.IsZero() {
		row.CreatedAt = t.Format("2006-01-02")
	}
	return row
}

func actionNames(active bool) []string {
	acts := entity.AllowedActions(active)
	out := make([]string, len(acts))
	for i, a := range acts {
		out[i] = string(a)
	}
	return out
}
