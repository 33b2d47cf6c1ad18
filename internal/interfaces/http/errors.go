package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cartem-panel/internal/application/dto"
	"github.com/jhoicas/cartem-panel/pkg/logger"
)

var errorCodes = map[int]string{
	fiber.StatusBadRequest:            "BAD_REQUEST",
	fiber.StatusUnauthorized:          "UNAUTHORIZED",
	fiber.StatusForbidden:             "FORBIDDEN",
	fiber.StatusNotFound:              "NOT_FOUND",
	fiber.StatusRequestEntityTooLarge: "TOO_LARGE",
	fiber.StatusTooManyRequests:       "TOO_MANY_REQUESTS",
	fiber.StatusBadGateway:            "REMOTE",
}

// ErrorHandler página de error para el panel y ErrorResponse bajo /api.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		msg := MsgUnexpected
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			msg = fe.Message
		}
		if code >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("path", c.Path()).Msg("error no controlado")
			msg = MsgUnexpected
		}
		if code == fiber.StatusNotFound && fe != nil && strings.HasPrefix(fe.Message, "Cannot ") {
			msg = "Página no encontrada"
		}

		if strings.HasPrefix(c.Path(), "/api") {
			ec, ok := errorCodes[code]
			if !ok {
				ec = "INTERNAL"
			}
			return c.Status(code).JSON(dto.ErrorResponse{Code: ec, Message: msg})
		}
		c.Status(code)
		if rerr := render(c, "error", "Error", fiber.Map{"Status": code, "Message": msg, "Flash": nil}); rerr != nil {
			log.Error().Err(rerr).Msg("renderizar página de error")
			c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
			return c.Status(code).SendString(msg)
		}
		return nil
	}
}
