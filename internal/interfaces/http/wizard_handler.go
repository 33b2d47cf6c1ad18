package http

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cartem-panel/internal/application/dto"
	"github.com/jhoicas/cartem-panel/internal/application/usecase"
	"github.com/jhoicas/cartem-panel/internal/domain"
)

// Mensajes del asistente.
const (
	MsgDraftExpired     = "El formulario expiró, vuelva a intentarlo"
	MsgProductNotFound  = "El producto ya no aparece en el listado"
	MsgInvalidImage     = "Formato de imagen no soportado"
	MsgImageTooLarge    = "La imagen excede el tamaño permitido"
	MsgSubcategoriesErr = "No fue posible cargar las subcategorías"
)

// maxUploadBytes tope por archivo subido al asistente.
const maxUploadBytes = 8 << 20

var errImageTooLarge = errors.New("imagen demasiado grande")

// WizardHandler asistente de dos pasos para alta y edición de productos.
type WizardHandler struct {
	wizard   *usecase.ProductWizard
	products *usecase.ProductUseCase
	pageSize int
}

// NewWizardHandler construye el handler del asistente.
func NewWizardHandler(wizard *usecase.ProductWizard, products *usecase.ProductUseCase, pageSize int) *WizardHandler {
	if pageSize <= 0 {
		pageSize = dto.DefaultPageSize
	}
	return &WizardHandler{wizard: wizard, products: products, pageSize: pageSize}
}

func wizardURL(id string, suffix ...string) string {
	u := PathAdminProducts + "/wizard/" + url.PathEscape(id)
	for _, s := range suffix {
		u += "/" + s
	}
	return u
}

// New GET /dashboard/admin/products/new: abre un borrador vacío.
func (h *WizardHandler) New(c *fiber.Ctx) error {
	d, err := h.wizard.Start(c.UserContext(), nil)
	if err != nil {
		return err
	}
	return c.Redirect(wizardURL(d.ID), fiber.StatusSeeOther)
}

// Edit GET /dashboard/admin/products/:uid/edit?page&search: el producto se busca en la página del listado.
func (h *WizardHandler) Edit(c *fiber.Ctx) error {
	q := parseQuery(c, h.pageSize)
	q.Role = ""
	p, err := h.products.Find(c.UserContext(), GetSession(c).Token, q, c.Params("uid"))
	switch {
	case errors.Is(err, domain.ErrNotFound):
		SetFlash(c, "error", MsgProductNotFound)
		return c.Redirect(listURL(PathAdminProducts, q), fiber.StatusSeeOther)
	case err != nil:
		SetFlash(c, "error", domain.RemoteMessage(err, MsgRequestFailed))
		return c.Redirect(listURL(PathAdminProducts, q), fiber.StatusSeeOther)
	}
	if !usecase.CanEdit(*p) {
		SetFlash(c, "error", MsgActionNotAllowed)
		return c.Redirect(listURL(PathAdminProducts, q), fiber.StatusSeeOther)
	}
	d, err := h.wizard.Start(c.UserContext(), p)
	if err != nil {
		return err
	}
	return c.Redirect(wizardURL(d.ID), fiber.StatusSeeOther)
}

// Show GET /dashboard/admin/products/wizard/:id
func (h *WizardHandler) Show(c *fiber.Ctx) error {
	d, err := h.wizard.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.draftError(c, err)
	}
	return h.renderDraft(c, d, dto.FieldErrors{}, "", fiber.StatusOK)
}

// Details POST .../wizard/:id/details: paso 1. Con errores se vuelve a mostrar el paso con los mensajes.
func (h *WizardHandler) Details(c *fiber.Ctx) error {
	var form dto.ProductDetailsForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Formulario inválido")
	}
	d, err := h.wizard.SaveDetails(c.UserContext(), c.Params("id"), form)
	var fieldErrs dto.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		return h.renderDraft(c, d, fieldErrs, "", fiber.StatusUnprocessableEntity)
	case err != nil:
		return h.draftError(c, err)
	}
	return c.Redirect(wizardURL(d.ID), fiber.StatusSeeOther)
}

// Back POST .../wizard/:id/back
func (h *WizardHandler) Back(c *fiber.Ctx) error {
	d, err := h.wizard.Back(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.draftError(c, err)
	}
	return c.Redirect(wizardURL(d.ID), fiber.StatusSeeOther)
}

// Preview POST .../wizard/:id/preview (multipart, campo preview).
func (h *WizardHandler) Preview(c *fiber.Ctx) error {
	id := c.Params("id")
	fh, err := c.FormFile("preview")
	if err != nil {
		return c.Redirect(wizardURL(id), fiber.StatusSeeOther)
	}
	up, err := readUpload(fh)
	if err != nil {
		return h.imageError(c, id, err)
	}
	if _, err := h.wizard.SetPreview(c.UserContext(), id, up); err != nil {
		return h.imageError(c, id, err)
	}
	return c.Redirect(wizardURL(id), fiber.StatusSeeOther)
}

// Images POST .../wizard/:id/images (multipart, campo images múltiple). El excedente se ignora.
func (h *WizardHandler) Images(c *fiber.Ctx) error {
	id := c.Params("id")
	form, err := c.MultipartForm()
	if err != nil {
		return c.Redirect(wizardURL(id), fiber.StatusSeeOther)
	}
	files := form.File["images"]
	uploads := make([]dto.ImageUpload, 0, len(files))
	for _, fh := range files {
		if len(uploads) >= h.wizard.MaxImages() {
			break
		}
		up, err := readUpload(fh)
		if err != nil {
			return h.imageError(c, id, err)
		}
		uploads = append(uploads, up)
	}
	if _, err := h.wizard.AddImages(c.UserContext(), id, uploads); err != nil {
		return h.imageError(c, id, err)
	}
	return c.Redirect(wizardURL(id), fiber.StatusSeeOther)
}

// RemoveImage POST .../wizard/:id/images/:index/remove
func (h *WizardHandler) RemoveImage(c *fiber.Ctx) error {
	id := c.Params("id")
	index, err := c.ParamsInt("index")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Índice inválido")
	}
	if _, err := h.wizard.RemoveImage(c.UserContext(), id, index); err != nil {
		return h.draftError(c, err)
	}
	return c.Redirect(wizardURL(id), fiber.StatusSeeOther)
}

// Submit POST .../wizard/:id/submit: una sola llamada a /product/save; inválido no llama al API.
func (h *WizardHandler) Submit(c *fiber.Ctx) error {
	lc := usecase.NewFormLifecycle()
	if err := lc.Submit(); err != nil {
		return err
	}
	d, callErr := h.wizard.Submit(c.UserContext(), GetSession(c).Token, c.Params("id"))
	if usecase.IsDraftMissing(callErr) {
		return h.draftError(c, callErr)
	}
	if err := lc.Finish(callErr, formMessage); err != nil {
		return err
	}
	switch lc.State() {
	case usecase.FormSucceeded:
		msg := MsgProductSaved
		if d.IsEdit() {
			msg = MsgProductEdited
		}
		SetFlash(c, "success", msg)
		lc.Close()
		return c.Redirect(PathAdminProducts, fiber.StatusSeeOther)
	case usecase.FormFailed:
		errs, status := failedFields(callErr)
		return h.renderDraft(c, d, errs, lc.Error(), status)
	}
	return unexpectedFormState(lc)
}

// Cancel POST .../wizard/:id/cancel
func (h *WizardHandler) Cancel(c *fiber.Ctx) error {
	_ = h.wizard.Cancel(c.UserContext(), c.Params("id"))
	return c.Redirect(PathAdminProducts, fiber.StatusSeeOther)
}

func (h *WizardHandler) renderDraft(c *fiber.Ctx, d *dto.ProductDraft, errs dto.FieldErrors, msg string, status int) error {
	data := fiber.Map{
		"Draft":     d,
		"Errors":    errs,
		"Error":     msg,
		"MaxImages": h.wizard.MaxImages(),
	}
	if d.Step == dto.DraftStepDetails {
		subs, err := h.products.Subcategories(c.UserContext(), GetSession(c).Token)
		if err != nil && msg == "" {
			data["Error"] = domain.RemoteMessage(err, MsgSubcategoriesErr)
		}
		data["Subcategories"] = subs
	}
	title := "Nuevo producto"
	if d.IsEdit() {
		title = "Editar producto"
	}
	c.Status(status)
	return render(c, "product_wizard", title, data)
}

func (h *WizardHandler) draftError(c *fiber.Ctx, err error) error {
	if usecase.IsDraftMissing(err) {
		SetFlash(c, "error", MsgDraftExpired)
		return c.Redirect(PathAdminProducts, fiber.StatusSeeOther)
	}
	return err
}

func (h *WizardHandler) imageError(c *fiber.Ctx, id string, err error) error {
	if usecase.IsDraftMissing(err) {
		return h.draftError(c, err)
	}
	d, gerr := h.wizard.Get(c.UserContext(), id)
	if gerr != nil {
		return h.draftError(c, gerr)
	}
	msg := MsgInvalidImage
	if errors.Is(err, errImageTooLarge) {
		msg = MsgImageTooLarge
	}
	return h.renderDraft(c, d, dto.FieldErrors{}, msg, fiber.StatusUnprocessableEntity)
}

func readUpload(fh *multipart.FileHeader) (dto.ImageUpload, error) {
	if fh.Size > maxUploadBytes {
		return dto.ImageUpload{}, errImageTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return dto.ImageUpload{}, fmt.Errorf("abrir %s: %w", fh.Filename, err)
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		return dto.ImageUpload{}, fmt.Errorf("leer %s: %w", fh.Filename, err)
	}
	if len(data) > maxUploadBytes {
		return dto.ImageUpload{}, errImageTooLarge
	}
	return dto.ImageUpload{
		Filename: fh.Filename,
		MimeType: fh.Header.Get(fiber.HeaderContentType),
		Data:     data,
	}, nil
}
