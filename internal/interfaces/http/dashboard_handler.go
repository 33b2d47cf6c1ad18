package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cartem-panel/internal/application/analytics"
	"github.com/jhoicas/cartem-panel/internal/domain"
)

// DashboardHandler inicio y resumen del administrador.
type DashboardHandler struct {
	uc  *analytics.DashboardUseCase
	now func() time.Time
}

// NewDashboardHandler construye el handler del dashboard.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc, now: time.Now}
}

// Home GET /dashboard: menú según el rol.
func (h *DashboardHandler) Home(c *fiber.Ctx) error {
	return render(c, "dashboard_home", "Inicio", nil)
}

// AdminSummary GET /dashboard/admin: tarjetas con los totales; un conteo caído no tumba la página.
func (h *DashboardHandler) AdminSummary(c *fiber.Ctx) error {
	data := fiber.Map{"Month": analytics.MonthLabel(h.now())}
	summary, err := h.uc.GetSummary(c.UserContext(), GetSession(c).Token)
	if err != nil {
		data["Error"] = domain.RemoteMessage(err, MsgRequestFailed)
	}
	data["Summary"] = summary
	return render(c, "admin_summary", "Resumen", data)
}
