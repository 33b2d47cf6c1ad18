package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/cartem-panel/internal/application/dto"
	"github.com/jhoicas/cartem-panel/internal/domain/entity"
	"github.com/jhoicas/cartem-panel/pkg/logger"
)

// LocalRequestID clave de c.Locals con el id corto de la petición.
const LocalRequestID = "request_id"

// RequestLogger registra cada petición: método, ruta, estado, latencia, ip y request_id.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqID := uuid.New().String()[:8]
		c.Locals(LocalRequestID, reqID)
		c.Set("X-Request-ID", reqID)

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error().Err(err)
		}
		ev.Str("request_id", reqID).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP()).
			Msg("petición HTTP")
		return err
	}
}

// SecurityHeaders cabeceras básicas para las páginas del panel.
func SecurityHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "same-origin")
		return c.Next()
	}
}

// RequireRole restringe páginas a los roles indicados; el resto recibe 403.
// Debe ir después del middleware de sesión.
func RequireRole(allowed ...entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s := GetSession(c)
		if !s.IsAuthenticated() {
			return c.Redirect(PathLogin, fiber.StatusFound)
		}
		for _, r := range allowed {
			if s.Role == r {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "No tiene permisos para ver esta página")
	}
}

// APIAuth protege la superficie JSON: token del header Authorization (Bearer) o de la cookie de sesión.
func APIAuth(resolver sessionResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s := GetSession(c)
		if h := c.Get(fiber.HeaderAuthorization); h != "" {
			parts := strings.SplitN(h, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
			}
			s = resolver.ResolveSession(strings.TrimSpace(parts[1]), "", "")
			c.Locals(LocalSession, s)
		}
		if !s.IsAuthenticated() {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "sesión requerida"})
		}
		return c.Next()
	}
}

// APIRequireRole equivalente JSON de RequireRole; va después de APIAuth.
func APIRequireRole(allowed ...entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetSession(c).Role
		for _, r := range allowed {
			if role == r {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	}
}
