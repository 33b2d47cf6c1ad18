package http_test

import (
	"encoding/json"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cartem-panel/internal/application/dto"
	"github.com/jhoicas/cartem-panel/internal/domain/entity"
)

func drills() []entity.Product {
	return []entity.Product{
		{UID: "p1", Name: "Drill Alfa", SKU: "DR-1", Stock: 2, PurchasePrice: decimal.RequireFromString("100"), Status: true},
		{UID: "p2", Name: "Drill Beta", SKU: "DR-2", Stock: 1, PurchasePrice: decimal.RequireFromString("50.5"), Status: false},
		{UID: "p3", Name: "Drill Gamma", SKU: "DR-3", Stock: 0, PurchasePrice: decimal.RequireFromString("10"), Status: true},
	}
}

func TestProducts_Pagina2DrillPideBase0YRespetaOrden(t *testing.T) {
	env := newTestEnv(t)
	env.products.content = drills()
	env.products.pages = 3

	resp := env.get(t, "/dashboard/admin/products?page=2&search=drill", entity.RoleAdmin)
	html := body(t, resp)

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, entity.PageQuery{Page: 1, Size: 10, Search: "drill"}, env.products.lastQuery())

	a := strings.Index(html, "Drill Alfa")
	b := strings.Index(html, "Drill Beta")
	c := strings.Index(html, "Drill Gamma")
	require.True(t, a > 0 && b > 0 && c > 0, "las tres filas deben aparecer")
	assert.Less(t, a, b)
	assert.Less(t, b, c)

	assert.Contains(t, html, `class="pagination"`)
	assert.Contains(t, html, `<span class="current">2</span>`)
	// inventario de la página: 2*100 + 1*50.5
	assert.Contains(t, html, "$250.50")
}

func TestProducts_AccionesSegunEstatus(t *testing.T) {
	env := newTestEnv(t)
	env.products.content = drills()[:2]

	html := body(t, env.get(t, "/dashboard/admin/products", entity.RoleAdmin))

	assert.Contains(t, html, "/dashboard/admin/products/p1/edit")
	assert.NotContains(t, html, "/dashboard/admin/products/p2/edit", "un inactivo no se edita")
	assert.Contains(t, html, `action="/dashboard/admin/products/delete"`)
	assert.Contains(t, html, "Activar")
	assert.Contains(t, html, "Desactivar")
}

func TestProducts_UnaSolaPaginaSinPaginacion(t *testing.T) {
	env := newTestEnv(t)
	env.products.content = drills()

	html := body(t, env.get(t, "/dashboard/admin/products", entity.RoleAdmin))

	assert.NotContains(t, html, `class="pagination"`)
}

func TestProducts_ToggleStatusRedirigeConFiltros(t *testing.T) {
	env := newTestEnv(t)

	resp := env.postForm(t, "/dashboard/admin/products/status",
		url.Values{"uid": {"p1"}, "active": {"true"}, "page": {"2"}, "search": {"drill"}}, entity.RoleAdmin)

	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/dashboard/admin/products?page=2&search=drill", resp.Header.Get("Location"))
	assert.Equal(t, []string{"p1"}, env.products.toggled)
}

func TestProducts_EliminarActivoNoPermitido(t *testing.T) {
	env := newTestEnv(t)

	resp := env.postForm(t, "/dashboard/admin/products/delete", url.Values{"uid": {"p1"}, "active": {"true"}}, entity.RoleAdmin)

	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	flash := cookieNamed(resp, "flash")
	require.NotNil(t, flash)
}

func TestProducts_ExportCSV(t *testing.T) {
	env := newTestEnv(t)
	env.products.content = drills()

	resp := env.get(t, "/dashboard/admin/products/export?format=csv&page=1&name=drill", entity.RoleAdmin)
	out := body(t, resp)

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv; charset=utf-8", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), `filename="productos-pagina-1.csv"`)
	assert.True(t, strings.HasPrefix(out, "SKU,Nombre"))
	assert.Contains(t, out, "Drill Gamma")
	assert.Equal(t, "drill", env.products.lastQuery().Search)
}

func TestProducts_ExportFormatoDesconocido(t *testing.T) {
	env := newTestEnv(t)

	resp := env.get(t, "/dashboard/admin/products/export?format=xml", entity.RoleAdmin)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body(t, resp), "Formato de exportación no soportado")
}

func TestWorkerProducts_SoloLectura(t *testing.T) {
	env := newTestEnv(t)
	env.products.content = drills()

	resp := env.get(t, "/dashboard/worker/products", entity.RoleEmployee)
	html := body(t, resp)

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, html, "Drill Alfa")
	assert.NotContains(t, html, "Acciones")
	assert.NotContains(t, html, "Exportar")
}

func TestAPIProducts(t *testing.T) {
	env := newTestEnv(t)
	env.products.content = drills()

	resp := env.get(t, "/api/products?page=2&size=3&name=drill", entity.RoleAdmin)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out dto.ListResponse[dto.ProductRow]
	require.NoError(t, json.Unmarshal([]byte(body(t, resp)), &out))
	assert.Equal(t, entity.PageQuery{Page: 1, Size: 3, Search: "drill"}, env.products.lastQuery())
	require.Len(t, out.Items, 3)
	assert.Equal(t, "Drill Alfa", out.Items[0].Name)
	assert.Equal(t, []string{"edit", "deactivate"}, out.Items[0].Actions)
	assert.Equal(t, 2, out.Page)
}

func TestAPIProducts_SinSesion401(t *testing.T) {
	env := newTestEnv(t)

	resp := env.get(t, "/api/products", "")

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body(t, resp), "MISSING_TOKEN")
}

func TestAPISession(t *testing.T) {
	env := newTestEnv(t)

	var anon dto.SessionResponse
	require.NoError(t, json.Unmarshal([]byte(body(t, env.get(t, "/api/session", ""))), &anon))
	assert.False(t, anon.Authenticated)

	var s dto.SessionResponse
	require.NoError(t, json.Unmarshal([]byte(body(t, env.get(t, "/api/session", entity.RoleEmployee))), &s))
	assert.True(t, s.Authenticated)
	assert.Equal(t, "ROLE_EMPLOYEE", s.Role)
	assert.Equal(t, "user@cartem.mx", s.Email)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	resp := env.get(t, "/health", "")

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok","app":"cartem-test"}`, body(t, resp))
}
