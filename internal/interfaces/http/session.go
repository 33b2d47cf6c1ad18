package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cartem-panel/internal/domain/entity"
)

// Nombres de las cookies de sesión.
const (
	CookieToken = "token"
	CookieEmail = "email"
	CookieRole  = "role"
)

// LocalSession clave de c.Locals con la sesión de la petición.
const LocalSession = "session"

// sessionResolver reconstruye la sesión a partir de las cookies (lo implementa *auth.AuthUseCase).
type sessionResolver interface {
	ResolveSession(token, email, role string) entity.Session
}

// CookieOptions atributos comunes de las cookies de sesión.
type CookieOptions struct {
	Secure bool
	Domain string
}

// SessionManager dueño de las cookies de sesión. Se construye una vez al arrancar y se pasa a
// quien lo necesite: Load al inicio de cada petición, Establish tras verificar el código
// y Clear al cerrar sesión.
type SessionManager struct {
	resolver sessionResolver
	opts     CookieOptions
}

// NewSessionManager construye el gestor.
func NewSessionManager(resolver sessionResolver, opts CookieOptions) *SessionManager {
	return &SessionManager{resolver: resolver, opts: opts}
}

// Load lee las cookies, resuelve la sesión y la deja en c.Locals.
func (m *SessionManager) Load(c *fiber.Ctx) entity.Session {
	s := m.resolver.ResolveSession(c.Cookies(CookieToken), c.Cookies(CookieEmail), c.Cookies(CookieRole))
	c.Locals(LocalSession, s)
	return s
}

// Establish escribe token, email y rol (path /, sin expiración) y actualiza c.Locals.
func (m *SessionManager) Establish(c *fiber.Ctx, s entity.Session) {
	c.Cookie(m.cookie(CookieToken, s.Token))
	c.Cookie(m.cookie(CookieEmail, s.Email))
	c.Cookie(m.cookie(CookieRole, string(s.Role)))
	c.Locals(LocalSession, s)
}

// Clear expira las tres cookies y deja la petición sin sesión.
// fasthttp sólo escribe Max-Age cuando es positivo, así que el borrado va por Expires en 1970;
// un Expires pasado elimina la cookie igual que Max-Age=0 (RFC 6265 §5.3).
func (m *SessionManager) Clear(c *fiber.Ctx) {
	for _, name := range []string{CookieToken, CookieEmail, CookieRole} {
		ck := m.cookie(name, "")
		ck.Expires = time.Unix(0, 0)
		c.Cookie(ck)
	}
	c.Locals(LocalSession, entity.Session{})
}

func (m *SessionManager) cookie(name, value string) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   m.opts.Domain,
		Secure:   m.opts.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}

// Middleware carga la sesión en cada petición.
func (m *SessionManager) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		m.Load(c)
		return c.Next()
	}
}

// GetSession sesión de la petición (vacía si Load no corrió).
func GetSession(c *fiber.Ctx) entity.Session {
	s, _ := c.Locals(LocalSession).(entity.Session)
	return s
}
