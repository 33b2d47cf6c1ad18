package http

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
)

const cookieFlash = "flash"

// Flash aviso de una sola lectura que sobrevive a la redirección posterior a un envío.
type Flash struct {
	Type    string `json:"type"` // success, error
	Message string `json:"message"`
}

// Mensajes de aviso.
const (
	MsgOperationOK   = "Operación realizada correctamente!"
	MsgUnexpected    = "Ha ocurrido un error inesperado!"
	MsgRequestFailed = "Ha ocurrido un error al hacer la petición"
	MsgProductSaved  = "Producto creado correctamente"
	MsgProductEdited = "Producto actualizado correctamente"
	MsgPersonCreated = "Persona registrada correctamente"
	MsgPasswordReset = "Contraseña actualizada correctamente"
)

// SetFlash deja un aviso para la próxima página renderizada.
func SetFlash(c *fiber.Ctx, typ, msg string) {
	b, _ := json.Marshal(Flash{Type: typ, Message: msg})
	c.Cookie(&fiber.Cookie{
		Name:     cookieFlash,
		Value:    base64.RawURLEncoding.EncodeToString(b),
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// PopFlash lee y borra el aviso pendiente.
func PopFlash(c *fiber.Ctx) *Flash {
	raw := c.Cookies(cookieFlash)
	if raw == "" {
		return nil
	}
	c.Cookie(&fiber.Cookie{Name: cookieFlash, Value: "", Path: "/", Expires: time.Unix(0, 0)})
	b, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	var f Flash
	if json.Unmarshal(b, &f) != nil || f.Message == "" {
		return nil
	}
	return &f
}
