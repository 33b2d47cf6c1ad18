// Package analytics contiene el resumen del tablero de administración.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/cartem-panel/internal/application/dto"
	"github.com/jhoicas/cartem-panel/internal/domain"
	"github.com/jhoicas/cartem-panel/internal/domain/entity"
	"github.com/jhoicas/cartem-panel/internal/domain/repository"
)

// productSample tamaño de la primera página de productos usada para contar activos.
const productSample = 50

// DashboardUseCase arma las tarjetas de /dashboard/admin.
//
// Fuente de datos: los listados paginados del API; cada total sale de totalElements.
type DashboardUseCase struct {
	persons  repository.PersonRepository
	products repository.ProductRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(persons repository.PersonRepository, products repository.ProductRepository) *DashboardUseCase {
	return &DashboardUseCase{persons: persons, products: products}
}

// GetSummary cuatro llamadas en paralelo:
//  1. productos (muestra) → TotalProducts + ActiveProducts
//  2. personas role=admin    → TotalAdmins
//  3. personas role=employee → TotalEmployees
//  4. personas role=customer → TotalCustomers
//
// Un conteo fallido no aborta el resumen: queda en -1 con su mensaje en Errors.
// Sólo si fallan todos se devuelve error.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, token string) (*dto.AdminSummaryDTO, error) {
	type productsResult struct {
		total, active int
		err           error
	}
	type countResult struct {
		total int
		err   error
	}

	productsCh := make(chan productsResult, 1)
	roles := [...]string{"admin", "employee", "customer"}
	var personCh [len(roles)]chan countResult

	go func() {
		page, err := uc.products.Page(ctx, token, entity.PageQuery{Page: 0, Size: productSample})
		if err != nil {
			productsCh <- productsResult{err: err}
			return
		}
		active := 0
		for _, p := range page.Content {
			if p.Status {
				active++
			}
		}
		productsCh <- productsResult{total: page.TotalElements, active: active}
	}()
	for i, role := range roles {
		ch := make(chan countResult, 1)
		personCh[i] = ch
		go func(role string) {
			page, err := uc.persons.Page(ctx, token, entity.PageQuery{Page: 0, Size: 1, Role: role})
			if err != nil {
				ch <- countResult{err: err}
				return
			}
			ch <- countResult{total: page.TotalElements}
		}(role)
	}

	out := &dto.AdminSummaryDTO{Errors: map[string]string{}}
	failed := 0

	prod := <-productsCh
	if prod.err != nil {
		failed++
		out.TotalProducts, out.ActiveProducts = -1, -1
		out.Errors["products"] = domain.RemoteMessage(prod.err, "No se pudo consultar productos")
	} else {
		out.TotalProducts, out.ActiveProducts = prod.total, prod.active
	}

	targets := [...]*int{&out.TotalAdmins, &out.TotalEmployees, &out.TotalCustomers}
	var firstErr error
	for i, role := range roles {
		res := <-personCh[i]
		if res.err != nil {
			failed++
			if firstErr == nil {
				firstErr = res.err
			}
			*targets[i] = -1
			out.Errors[role] = domain.RemoteMessage(res.err, "No se pudo consultar "+role)
			continue
		}
		*targets[i] = res.total
	}

	if failed == len(roles)+1 {
		if prod.err != nil {
			firstErr = prod.err
		}
		return nil, fmt.Errorf("dashboard: resumen: %w", firstErr)
	}
	if len(out.Errors) == 0 {
		out.Errors = nil
	}
	return out, nil
}

// MonthLabel devuelve una etiqueta legible del mes, ej: "Octubre 2026".
func MonthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
