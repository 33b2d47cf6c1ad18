package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cartem-panel/internal/application/auth"
	"github.com/jhoicas/cartem-panel/internal/application/dto"
	"github.com/jhoicas/cartem-panel/internal/application/usecase"
	"github.com/jhoicas/cartem-panel/internal/domain"
	"github.com/jhoicas/cartem-panel/internal/domain/entity"
	"github.com/jhoicas/cartem-panel/pkg/password"
)

var personTabLabels = map[string]string{
	"admin":    "Administradores",
	"employee": "Empleados",
	"customer": "Clientes",
}

type personTab struct {
	Role   string
	Label  string
	Active bool
}

// PersonHandler pestañas de personas, alta, restablecimiento de contraseña, estatus y eliminación.
type PersonHandler struct {
	uc       *usecase.PersonUseCase
	auth     *auth.AuthUseCase
	pageSize int
}

// NewPersonHandler construye el handler de personas.
func NewPersonHandler(uc *usecase.PersonUseCase, authUC *auth.AuthUseCase, pageSize int) *PersonHandler {
	if pageSize <= 0 {
		pageSize = dto.DefaultPageSize
	}
	return &PersonHandler{uc: uc, auth: authUC, pageSize: pageSize}
}

func (h *PersonHandler) query(c *fiber.Ctx) dto.ListQuery {
	q := parseQuery(c, h.pageSize)
	if _, ok := personTabLabels[q.Role]; !ok {
		q.Role = usecase.PersonTabs[0]
	}
	return q
}

// List GET /dashboard/admin/persons?role=&search=&page=
func (h *PersonHandler) List(c *fiber.Ctx) error {
	q := h.query(c)
	st := h.uc.Loader(GetSession(c).Token, q).Load(c.UserContext())

	tabs := make([]personTab, len(usecase.PersonTabs))
	for i, r := range usecase.PersonTabs {
		tabs[i] = personTab{Role: r, Label: personTabLabels[r], Active: r == st.Query.Role}
	}
	_, canAdd := entity.ParseRole(st.Query.Role).CreatePath()
	data := fiber.Map{
		"Query":  st.Query,
		"Tabs":   tabs,
		"State":  st,
		"CanAdd": canAdd,
		"Table": Table[entity.Person]{
			Columns:    personColumns(csrfToken(c), st.Query),
			Rows:       st.Rows,
			Page:       st.Query.Page,
			TotalPages: st.TotalPages,
			Loading:    st.Loading,
			Empty:      "No hay personas registradas",
			PageURL:    pager(PathAdminPersons, st.Query),
		},
	}
	if st.Err != nil {
		data["Error"] = domain.RemoteMessage(st.Err, MsgRequestFailed)
	}
	return render(c, "persons", "Personas", data)
}

// NewForm GET /dashboard/admin/persons/new?role=admin|employee
func (h *PersonHandler) NewForm(c *fiber.Ctx) error {
	q := h.query(c)
	if _, ok := entity.ParseRole(q.Role).CreatePath(); !ok {
		SetFlash(c, "error", "Los clientes no se registran desde el panel")
		return c.Redirect(listURL(PathAdminPersons, q), fiber.StatusSeeOther)
	}
	form := dto.PersonForm{Role: q.Role, AccessLevel: entity.AccessLevelAll}
	return h.renderForm(c, form, dto.FieldErrors{}, "", fiber.StatusOK)
}

// Create POST /dashboard/admin/persons. "Generar contraseña" vuelve a mostrar el formulario con una nueva.
func (h *PersonHandler) Create(c *fiber.Ctx) error {
	var form dto.PersonForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Formulario inválido")
	}
	if c.FormValue("generate") != "" {
		form.Password = password.Generate(password.DefaultLength)
		return h.renderForm(c, form, dto.FieldErrors{}, "", fiber.StatusOK)
	}

	lc := usecase.NewFormLifecycle()
	if err := lc.Submit(); err != nil {
		return err
	}
	callErr := h.uc.Create(c.UserContext(), GetSession(c).Token, form)
	if err := lc.Finish(callErr, formMessage); err != nil {
		return err
	}
	switch lc.State() {
	case usecase.FormSucceeded:
		SetFlash(c, "success", MsgPersonCreated)
		lc.Close()
		return c.Redirect(listURL(PathAdminPersons, dto.ListQuery{Role: entity.ParseRole(form.Role).Filter()}), fiber.StatusSeeOther)
	case usecase.FormFailed:
		errs, status := failedFields(callErr)
		return h.renderForm(c, form, errs, lc.Error(), status)
	}
	return unexpectedFormState(lc)
}

func (h *PersonHandler) renderForm(c *fiber.Ctx, form dto.PersonForm, errs dto.FieldErrors, msg string, status int) error {
	c.Status(status)
	return render(c, "person_form", "Agregar persona", fiber.Map{
		"Form":   form,
		"Errors": errs,
		"Error":  msg,
	})
}

// ResetForm GET /dashboard/admin/persons/reset?email=&role=
func (h *PersonHandler) ResetForm(c *fiber.Ctx) error {
	q := h.query(c)
	form := dto.ResetPasswordForm{Email: c.Query("email")}
	return h.renderReset(c, form, q.Role, dto.FieldErrors{}, "", fiber.StatusOK)
}

// ResetPassword POST /dashboard/admin/persons/reset
func (h *PersonHandler) ResetPassword(c *fiber.Ctx) error {
	q := h.query(c)
	var form dto.ResetPasswordForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Formulario inválido")
	}
	if c.FormValue("generate") != "" {
		form.NewPassword = password.Generate(password.DefaultLength)
		form.ConfirmPassword = form.NewPassword
		return h.renderReset(c, form, q.Role, dto.FieldErrors{}, "", fiber.StatusOK)
	}

	lc := usecase.NewFormLifecycle()
	if err := lc.Submit(); err != nil {
		return err
	}
	callErr := h.auth.ChangePasswordAdmin(c.UserContext(), GetSession(c).Token, form)
	if err := lc.Finish(callErr, formMessage); err != nil {
		return err
	}
	switch lc.State() {
	case usecase.FormSucceeded:
		SetFlash(c, "success", MsgPasswordReset)
		lc.Close()
		return c.Redirect(listURL(PathAdminPersons, dto.ListQuery{Role: q.Role}), fiber.StatusSeeOther)
	case usecase.FormFailed:
		errs, status := failedFields(callErr)
		return h.renderReset(c, form, q.Role, errs, lc.Error(), status)
	}
	return unexpectedFormState(lc)
}

func (h *PersonHandler) renderReset(c *fiber.Ctx, form dto.ResetPasswordForm, role string, errs dto.FieldErrors, msg string, status int) error {
	c.Status(status)
	return render(c, "reset_password", "Restablecer contraseña", fiber.Map{
		"Form":   form,
		"Role":   role,
		"Errors": errs,
		"Error":  msg,
	})
}

// ToggleStatus POST /dashboard/admin/persons/status
func (h *PersonHandler) ToggleStatus(c *fiber.Ctx) error {
	q := h.query(c)
	active, _ := strconv.ParseBool(c.FormValue("active"))
	err := h.uc.ToggleStatus(c.UserContext(), GetSession(c).Token, c.FormValue("email"), active)
	flashResult(c, err, MsgOperationOK)
	return c.Redirect(listURL(PathAdminPersons, q), fiber.StatusSeeOther)
}

// Delete POST /dashboard/admin/persons/delete. Sólo personas inactivas.
func (h *PersonHandler) Delete(c *fiber.Ctx) error {
	q := h.query(c)
	active, _ := strconv.ParseBool(c.FormValue("active"))
	err := h.uc.Delete(c.UserContext(), GetSession(c).Token, c.FormValue("email"), active)
	flashResult(c, err, MsgOperationOK)
	return c.Redirect(listURL(PathAdminPersons, q), fiber.StatusSeeOther)
}
