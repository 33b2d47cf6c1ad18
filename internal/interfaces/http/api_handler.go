package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cartem-panel/internal/application/dto"
	"github.com/jhoicas/cartem-panel/internal/application/usecase"
	"github.com/jhoicas/cartem-panel/internal/domain"
	"github.com/jhoicas/cartem-panel/internal/domain/entity"
)

// APIHandler superficie JSON: salud, sesión actual y los listados paginados.
type APIHandler struct {
	appName  string
	products *usecase.ProductUseCase
	persons  *usecase.PersonUseCase
	pageSize int
}

// NewAPIHandler construye el handler JSON.
func NewAPIHandler(appName string, products *usecase.ProductUseCase, persons *usecase.PersonUseCase, pageSize int) *APIHandler {
	if pageSize <= 0 {
		pageSize = dto.DefaultPageSize
	}
	return &APIHandler{appName: appName, products: products, persons: persons, pageSize: pageSize}
}

// Health godoc
// @Summary      Estado del panel
// @Tags         system
// @Produce      json
// @Success      200  {object}  dto.HealthResponse
// @Router       /health [get]
func (h *APIHandler) Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{Status: "ok", App: h.appName})
}

// Session godoc
// @Summary      Sesión actual
// @Tags         session
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Router       /api/session [get]
func (h *APIHandler) Session(c *fiber.Ctx) error {
	s := GetSession(c)
	if !s.IsAuthenticated() {
		return c.JSON(dto.SessionResponse{Authenticated: false})
	}
	return c.JSON(dto.SessionResponse{Authenticated: true, Email: s.Email, Role: string(s.Role)})
}

// Products godoc
// @Summary      Listado de productos
// @Tags         products
// @Produce      json
// @Param        page  query  int     false  "página (base 1)"
// @Param        size  query  int     false  "tamaño de página"
// @Param        name  query  string  false  "búsqueda por nombre"
// @Success      200   {object}  dto.ListResponse[dto.ProductRow]
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/products [get]
func (h *APIHandler) Products(c *fiber.Ctx) error {
	q := h.query(c)
	q.Role = ""
	page, err := h.products.List(c.UserContext(), GetSession(c).Token, q)
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(toListResponse(page, q, usecase.ToProductRow))
}

// Persons godoc
// @Summary      Listado de personas por rol (sólo administradores)
// @Tags         persons
// @Produce      json
// @Param        role    query  string  false  "admin, employee o customer"
// @Param        page    query  int     false  "página (base 1)"
// @Param        size    query  int     false  "tamaño de página"
// @Param        search  query  string  false  "búsqueda"
// @Success      200     {object}  dto.ListResponse[dto.PersonRow]
// @Failure      401     {object}  dto.ErrorResponse
// @Failure      403     {object}  dto.ErrorResponse
// @Failure      502     {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/persons [get]
func (h *APIHandler) Persons(c *fiber.Ctx) error {
	q := h.query(c)
	if q.Role == "" {
		q.Role = usecase.PersonTabs[0]
	}
	page, err := h.persons.List(c.UserContext(), GetSession(c).Token, q)
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(toListResponse(page, q, usecase.ToPersonRow))
}

// query a diferencia de las páginas, aquí size es configurable por el cliente.
func (h *APIHandler) query(c *fiber.Ctx) dto.ListQuery {
	size := c.QueryInt("size", h.pageSize)
	if size <= 0 || size > 100 {
		size = h.pageSize
	}
	return parseQuery(c, size)
}

func toListResponse[T, R any](page *entity.Page[T], q dto.ListQuery, conv func(T) R) dto.ListResponse[R] {
	items := make([]R, len(page.Content))
	for i, v := range page.Content {
		items[i] = conv(v)
	}
	return dto.ListResponse[R]{
		Items:         items,
		Page:          q.Page,
		Size:          q.Size,
		TotalPages:    page.TotalPages,
		TotalElements: page.TotalElements,
	}
}

// apiError traduce errores del API remoto a la respuesta JSON.
func apiError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: domain.RemoteMessage(err, "sesión inválida o expirada")})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrRemote):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "REMOTE", Message: domain.RemoteMessage(err, MsgRequestFailed)})
	case errors.Is(err, domain.ErrNetwork):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "NETWORK", Message: domain.ErrNetwork.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: MsgUnexpected})
}
