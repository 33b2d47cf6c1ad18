package http

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cartem-panel/internal/application/dto"
	"github.com/jhoicas/cartem-panel/internal/application/usecase"
	"github.com/jhoicas/cartem-panel/internal/domain"
	"github.com/jhoicas/cartem-panel/internal/domain/entity"
)

// MsgActionNotAllowed la acción no corresponde al estatus de la fila.
const MsgActionNotAllowed = "La acción no está permitida para el estatus actual"

// ProductHandler listado de productos (administración y sólo lectura), estatus, eliminación y exportación.
type ProductHandler struct {
	uc       *usecase.ProductUseCase
	pageSize int
}

// NewProductHandler construye el handler de productos.
func NewProductHandler(uc *usecase.ProductUseCase, pageSize int) *ProductHandler {
	if pageSize <= 0 {
		pageSize = dto.DefaultPageSize
	}
	return &ProductHandler{uc: uc, pageSize: pageSize}
}

// List GET /dashboard/admin/products
func (h *ProductHandler) List(c *fiber.Ctx) error {
	return h.list(c, "products", PathAdminProducts, true)
}

// ReadOnly GET /dashboard/worker/products y /dashboard/persons: mismo listado sin acciones.
func (h *ProductHandler) ReadOnly(c *fiber.Ctx) error {
	return h.list(c, "products_readonly", c.Path(), false)
}

func (h *ProductHandler) list(c *fiber.Ctx, view, base string, editable bool) error {
	q := parseQuery(c, h.pageSize)
	q.Role = ""
	st := h.uc.Loader(GetSession(c).Token, q).Load(c.UserContext())

	data := fiber.Map{
		"Query":   st.Query,
		"CanEdit": editable,
		"Stats":   usecase.Stats(&entity.Page[entity.Product]{Content: st.Rows, TotalElements: st.TotalElements}),
		"Table": Table[entity.Product]{
			Columns:    productColumns(editable, csrfToken(c), st.Query),
			Rows:       st.Rows,
			Page:       st.Query.Page,
			TotalPages: st.TotalPages,
			Loading:    st.Loading,
			Empty:      "No hay productos",
			PageURL:    pager(base, st.Query),
		},
	}
	if editable {
		data["ExportFormats"] = h.uc.ExportFormats()
	}
	if st.Err != nil {
		data["Error"] = domain.RemoteMessage(st.Err, MsgRequestFailed)
	}
	return render(c, view, "Productos", data)
}

// ToggleStatus POST /dashboard/admin/products/status
func (h *ProductHandler) ToggleStatus(c *fiber.Ctx) error {
	q := parseQuery(c, h.pageSize)
	err := h.uc.ToggleStatus(c.UserContext(), GetSession(c).Token, c.FormValue("uid"))
	flashResult(c, err, MsgOperationOK)
	q.Role = ""
	return c.Redirect(listURL(PathAdminProducts, q), fiber.StatusSeeOther)
}

// Delete POST /dashboard/admin/products/delete. Sólo productos inactivos.
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	q := parseQuery(c, h.pageSize)
	active, _ := strconv.ParseBool(c.FormValue("active"))
	err := h.uc.Delete(c.UserContext(), GetSession(c).Token, c.FormValue("uid"), active)
	flashResult(c, err, MsgOperationOK)
	q.Role = ""
	return c.Redirect(listURL(PathAdminProducts, q), fiber.StatusSeeOther)
}

// Export GET /dashboard/admin/products/export?format=csv|excel|pdf&page&name
func (h *ProductHandler) Export(c *fiber.Ctx) error {
	exp, err := h.uc.Exporter(c.Query("format"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Formato de exportación no soportado")
	}
	q := parseQuery(c, h.pageSize)
	var buf bytes.Buffer
	if err := h.uc.Export(c.UserContext(), GetSession(c).Token, q, exp, &buf); err != nil {
		return fiber.NewError(fiber.StatusBadGateway, domain.RemoteMessage(err, MsgRequestFailed))
	}
	c.Set(fiber.HeaderContentType, exp.ContentType())
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="productos-pagina-%d.%s"`, q.Page, exp.Extension()))
	return c.Send(buf.Bytes())
}

// flashResult aviso tras una mutación de fila: éxito, acción no permitida o mensaje del servidor.
func flashResult(c *fiber.Ctx, err error, okMsg string) {
	switch {
	case err == nil:
		SetFlash(c, "success", okMsg)
	case errors.Is(err, domain.ErrActionNotAllowed):
		SetFlash(c, "error", MsgActionNotAllowed)
	case errors.Is(err, domain.ErrRemote):
		SetFlash(c, "error", domain.RemoteMessage(err, MsgRequestFailed))
	default:
		SetFlash(c, "error", MsgUnexpected)
	}
}
