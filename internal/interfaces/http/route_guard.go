package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cartem-panel/internal/domain/entity"
)

// Rutas conocidas por el guard.
const (
	PathLogin          = "/login"
	PathDashboard      = "/dashboard"
	PathAdminHome      = "/dashboard/admin"
	PathAdminProducts  = "/dashboard/admin/products"
	PathAdminPersons   = "/dashboard/admin/persons"
	PathLegacyPersons  = "/dashboard/persons"
	PathWorkerPrefix   = "/dashboard/worker"
	PathWorkerProducts = "/dashboard/worker/products"
)

// protectedPrefixes rutas que exigen token (incluyen sus subrutas).
var protectedPrefixes = []string{"/dashboard", "/perfil"}

// GuardInput lo que el guard ve de una navegación.
type GuardInput struct {
	Token string
	Role  entity.Role
	Path  string
}

// Decision Redirect vacío = dejar pasar.
type Decision struct {
	Redirect string
}

// Allowed la navegación sigue sin redirección.
func (d Decision) Allowed() bool { return d.Redirect == "" }

// Matches el guard sólo intercepta /login, /dashboard y /perfil (con sus subrutas).
func Matches(path string) bool {
	return path == PathLogin || isProtected(path)
}

func isProtected(path string) bool {
	for _, p := range protectedPrefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

// Decide aplica la tabla en orden; la primera regla que coincide gana.
//  1. con token en /login → /dashboard
//  2. sin token en ruta protegida → /login
//  3. (roleRouting) con token y rol: ADMIN fuera de /dashboard/admin → /dashboard/admin;
//     EMPLOYEE fuera de /dashboard/worker → /dashboard/worker/products
func Decide(in GuardInput, roleRouting bool) Decision {
	path := in.Path
	if path == "" {
		path = "/"
	}
	if !Matches(path) {
		return Decision{}
	}
	hasToken := in.Token != ""
	if hasToken && path == PathLogin {
		return Decision{Redirect: PathDashboard}
	}
	if !hasToken {
		if isProtected(path) {
			return Decision{Redirect: PathLogin}
		}
		return Decision{}
	}
	if !roleRouting {
		return Decision{}
	}
	switch in.Role {
	case entity.RoleAdmin:
		if !strings.HasPrefix(path, PathAdminHome) {
			return Decision{Redirect: PathAdminHome}
		}
	case entity.RoleEmployee:
		if !strings.HasPrefix(path, PathWorkerPrefix) {
			return Decision{Redirect: PathWorkerProducts}
		}
	}
	return Decision{}
}

// RouteGuard middleware que evalúa Decide antes de cualquier página. Requiere la sesión cargada.
func RouteGuard(roleRouting bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s := GetSession(c)
		d := Decide(GuardInput{Token: s.Token, Role: s.Role, Path: c.Path()}, roleRouting)
		if d.Allowed() {
			return c.Next()
		}
		return c.Redirect(d.Redirect, fiber.StatusFound)
	}
}
