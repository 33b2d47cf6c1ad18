package http

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cartem-panel/internal/application/auth"
)

// MsgRecoverySent aviso tras solicitar el correo de recuperación.
const MsgRecoverySent = "Le enviamos un correo con las instrucciones para recuperar su contraseña"

// AuthHandler páginas de inicio de sesión en dos pasos, recuperación y cierre de sesión.
type AuthHandler struct {
	uc       *auth.AuthUseCase
	sessions *SessionManager
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, sessions *SessionManager) *AuthHandler {
	return &AuthHandler{uc: uc, sessions: sessions}
}

// LoginPage GET /login
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	return render(c, "login", "Iniciar sesión", nil)
}

// Login POST /login. Credenciales aceptadas -> paso del código; en otro caso el formulario
// se vuelve a mostrar con el mensaje y el usuario capturado.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	username := strings.TrimSpace(c.FormValue("username"))
	flow := auth.NewFlow(h.uc.ResendCooldown())
	res := h.uc.Login(c.UserContext(), username, c.FormValue("password"))
	if err := flow.Submit(username, res, h.uc.Now()); err != nil {
		return err
	}
	if flow.State() == auth.StateCodePending {
		return c.Redirect(res.Next, fiber.StatusSeeOther)
	}
	return render(c, "login", "Iniciar sesión", fiber.Map{
		"Username": username,
		"Error":    flow.Error(),
	})
}

// TwoFactorPage GET /login/two-factor?username=
func (h *AuthHandler) TwoFactorPage(c *fiber.Ctx) error {
	username := strings.TrimSpace(c.Query("username"))
	if username == "" {
		return c.Redirect(PathLogin, fiber.StatusFound)
	}
	flow := h.uc.ResumeFlow(c.UserContext(), username)
	return h.renderTwoFactor(c, flow)
}

// VerifyCode POST /login/two-factor?username=. Acepta las 6 celdas (code0..code5) o un campo code pegado.
func (h *AuthHandler) VerifyCode(c *fiber.Ctx) error {
	username := strings.TrimSpace(c.Query("username"))
	if username == "" {
		username = strings.TrimSpace(c.FormValue("username"))
	}
	if username == "" {
		return c.Redirect(PathLogin, fiber.StatusFound)
	}
	flow := h.uc.ResumeFlow(c.UserContext(), username)
	code := flow.Code()
	if pasted := strings.TrimSpace(c.FormValue("code")); pasted != "" {
		// la celda avanza por dígito aceptado; separadores y runas no numéricas se saltan
		cell := 0
		for _, r := range pasted {
			if cell == auth.CodeLength {
				break
			}
			if r >= '0' && r <= '9' && code.SetCell(cell, string(r)) {
				cell++
			}
		}
	} else {
		for i := 0; i < auth.CodeLength; i++ {
			code.SetCell(i, c.FormValue(fmt.Sprintf("code%d", i)))
		}
	}

	res := h.uc.VerifyCode(c.UserContext(), username, code.String())
	if err := flow.Verify(res); err != nil {
		return err
	}
	if flow.State() == auth.StateAuthenticated {
		h.sessions.Establish(c, *flow.Session())
		return c.Redirect(PathDashboard, fiber.StatusSeeOther)
	}
	return h.renderTwoFactor(c, flow)
}

// Resend POST /login/two-factor/resend?username=. Sólo reinicia la espera.
func (h *AuthHandler) Resend(c *fiber.Ctx) error {
	username := strings.TrimSpace(c.Query("username"))
	if username == "" {
		return c.Redirect(PathLogin, fiber.StatusFound)
	}
	h.uc.Resend(c.UserContext(), username)
	return c.Redirect(auth.TwoFactorPath+"?username="+url.QueryEscape(username), fiber.StatusSeeOther)
}

func (h *AuthHandler) renderTwoFactor(c *fiber.Ctx, flow *auth.Flow) error {
	left := flow.ResendAvailableIn(h.uc.Now())
	return render(c, "two_factor", "Verificación", fiber.Map{
		"Username": flow.Username(),
		"Cells":    *flow.Code(),
		"ResendIn": int(left.Seconds()),
		"Error":    flow.Error(),
	})
}

// ForgotPasswordPage GET /forgot-password
func (h *AuthHandler) ForgotPasswordPage(c *fiber.Ctx) error {
	return render(c, "forgot_password", "Recuperar contraseña", nil)
}

// ForgotPassword POST /forgot-password. Éxito -> /login con aviso.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	email := strings.TrimSpace(c.FormValue("email"))
	if msg := h.uc.ForgotPassword(c.UserContext(), email); msg != "" {
		return render(c, "forgot_password", "Recuperar contraseña", fiber.Map{"Email": email, "Error": msg})
	}
	SetFlash(c, "success", MsgRecoverySent)
	return c.Redirect(PathLogin, fiber.StatusSeeOther)
}

// Logout GET|POST /logout: expira las cookies y navega a /login.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.sessions.Clear(c)
	return c.Redirect(PathLogin, fiber.StatusSeeOther)
}
