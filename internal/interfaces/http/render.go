package http

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cartem-panel/internal/application/dto"
	"github.com/jhoicas/cartem-panel/internal/application/usecase"
	"github.com/jhoicas/cartem-panel/internal/domain"
	"github.com/jhoicas/cartem-panel/internal/domain/entity"
)

// LocalCSRF clave de c.Locals donde el middleware csrf deja el token.
const LocalCSRF = "csrf"

// NavItems menú lateral según el rol.
func NavItems(role entity.Role) []dto.NavItem {
	switch role {
	case entity.RoleAdmin:
		return []dto.NavItem{
			{Label: "Inicio", Href: PathAdminHome},
			{Label: "Productos", Href: PathAdminProducts},
			{Label: "Personas", Href: PathAdminPersons},
		}
	case entity.RoleEmployee:
		return []dto.NavItem{
			{Label: "Inicio", Href: PathDashboard},
			{Label: "Productos", Href: PathWorkerProducts},
		}
	}
	return []dto.NavItem{{Label: "Inicio", Href: PathDashboard}}
}

// render pinta una página con los datos comunes del layout: sesión, menú, aviso pendiente y token csrf.
func render(c *fiber.Ctx, name, title string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	s := GetSession(c)
	data["Title"] = title
	data["Session"] = s
	data["Nav"] = NavItems(s.Role)
	data["Path"] = c.Path()
	data["CSRF"] = csrfToken(c)
	if _, ok := data["Flash"]; !ok {
		data["Flash"] = PopFlash(c)
	}
	return c.Render(name, data)
}

func csrfToken(c *fiber.Ctx) string {
	tok, _ := c.Locals(LocalCSRF).(string)
	return tok
}

// listURL URL de un listado conservando filtros; page base 1.
func listURL(base string, q dto.ListQuery) string {
	v := url.Values{}
	if q.Role != "" {
		v.Set("role", q.Role)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Page > 1 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if len(v) == 0 {
		return base
	}
	return base + "?" + v.Encode()
}

// pager PageURL de Table para un listado.
func pager(base string, q dto.ListQuery) func(int) string {
	return func(page int) string {
		q.Page = page
		return listURL(base, q)
	}
}

// parseQuery lee page, search y role de la query string o, en formularios, del cuerpo.
func parseQuery(c *fiber.Ctx, size int) dto.ListQuery {
	var q dto.ListQuery
	if err := c.QueryParser(&q); err != nil {
		// page o size no numéricos: se vuelve a la página 1 sin perder búsqueda ni pestaña
		q = dto.ListQuery{Search: c.Query("search"), Role: c.Query("role")}
	}
	if c.Method() == fiber.MethodPost {
		if v := c.FormValue("page"); v != "" {
			q.Page, _ = strconv.Atoi(v)
		}
		if v := c.FormValue("search"); v != "" {
			q.Search = v
		}
		if v := c.FormValue("role"); v != "" {
			q.Role = v
		}
	}
	if q.Search == "" {
		q.Search = c.Query("name")
	}
	q.Size = size
	return q.Normalize()
}

// formMessage mensaje general de un envío fallido; los errores por campo se pintan junto a su input.
func formMessage(err error) string {
	var fieldErrs dto.FieldErrors
	if errors.As(err, &fieldErrs) {
		return ""
	}
	return domain.RemoteMessage(err, MsgRequestFailed)
}

// failedFields errores por campo y estatus con que se vuelve a pintar un formulario en Failed.
func failedFields(err error) (dto.FieldErrors, int) {
	var fieldErrs dto.FieldErrors
	if errors.As(err, &fieldErrs) {
		return fieldErrs, fiber.StatusUnprocessableEntity
	}
	return dto.FieldErrors{}, fiber.StatusOK
}

func unexpectedFormState(lc *usecase.FormLifecycle) error {
	return fmt.Errorf("formulario en estado %s: %w", lc.State(), usecase.ErrFormState)
}
