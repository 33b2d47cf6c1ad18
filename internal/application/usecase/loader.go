package usecase

import (
	"context"
	"sync"

	"github.com/jhoicas/cartem-panel/internal/application/dto"
	"github.com/jhoicas/cartem-panel/internal/domain/entity"
)

// FetchFunc obtiene una página remota para la consulta de la UI.
type FetchFunc[T any] func(ctx context.Context, q dto.ListQuery) (*entity.Page[T], error)

// ListState lo que la vista necesita para pintar un listado.
type ListState[T any] struct {
	Query            dto.ListQuery
	Rows             []T
	TotalPages       int
	TotalElements    int
	NumberOfElements int
	Loading          bool
	Err              error
}

// Loader trae exactamente una página por consulta y descarta respuestas viejas:
// cada Load toma una generación y sólo la más reciente puede escribir el estado.
type Loader[T any] struct {
	fetch FetchFunc[T]

	mu    sync.Mutex
	gen   uint64
	state ListState[T]
}

// NewLoader construye el loader con la consulta inicial (normalizada).
func NewLoader[T any](fetch FetchFunc[T], q dto.ListQuery) *Loader[T] {
	return &Loader[T]{fetch: fetch, state: ListState[T]{Query: q.Normalize()}}
}

// State copia del estado actual.
func (l *Loader[T]) State() ListState[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// SetQuery cambia filtros/página y vuelve a cargar sólo si la consulta cambió.
func (l *Loader[T]) SetQuery(ctx context.Context, q dto.ListQuery) ListState[T] {
	q = q.Normalize()
	l.mu.Lock()
	same := l.state.Query == q && l.gen > 0
	l.state.Query = q
	l.mu.Unlock()
	if same {
		return l.State()
	}
	return l.Load(ctx)
}

// Invalidate fuerza una recarga con la consulta actual (tras una mutación exitosa).
func (l *Loader[T]) Invalidate(ctx context.Context) ListState[T] {
	return l.Load(ctx)
}

// Load emite una petición con una nueva generación y aplica su resultado si sigue siendo la última.
func (l *Loader[T]) Load(ctx context.Context) ListState[T] {
	l.mu.Lock()
	l.gen++
	gen := l.gen
	q := l.state.Query
	l.state.Loading = true
	l.mu.Unlock()

	page, err := l.fetch(ctx, q)

	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.gen {
		// respuesta vieja: ya hay una petición más reciente
		return l.state
	}
	l.state.Loading = false
	l.state.Err = err
	if err != nil {
		return l.state
	}
	l.state.Rows = page.Content
	l.state.TotalPages = page.TotalPages
	l.state.TotalElements = page.TotalElements
	l.state.NumberOfElements = page.NumberOfElements
	return l.state
}
