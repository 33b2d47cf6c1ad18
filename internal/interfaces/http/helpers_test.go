package http_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cartem-panel/internal/application/analytics"
	"github.com/jhoicas/cartem-panel/internal/application/auth"
	"github.com/jhoicas/cartem-panel/internal/application/usecase"
	"github.com/jhoicas/cartem-panel/internal/domain/entity"
	"github.com/jhoicas/cartem-panel/internal/infrastructure/cache"
	"github.com/jhoicas/cartem-panel/internal/infrastructure/export"
	"github.com/jhoicas/cartem-panel/internal/infrastructure/imaging"
	apphttp "github.com/jhoicas/cartem-panel/internal/interfaces/http"
	"github.com/jhoicas/cartem-panel/pkg/logger"
)

// ── Fakes de los puertos remotos ─────────────────────────────────────────────

type fakeGateway struct {
	mu        sync.Mutex
	loginErr  error
	verifyErr error
	session   *entity.Session
	changed   []string
	codes     []string
}

func (g *fakeGateway) Login(_ context.Context, _, _ string) error { return g.loginErr }

func (g *fakeGateway) VerifyCode(_ context.Context, _, code string) (*entity.Session, error) {
	g.mu.Lock()
	g.codes = append(g.codes, code)
	g.mu.Unlock()
	if g.verifyErr != nil {
		return nil, g.verifyErr
	}
	s := *g.session
	return &s, nil
}

func (g *fakeGateway) ForgotPassword(_ context.Context, _ string) error { return nil }

func (g *fakeGateway) ChangePasswordAdmin(_ context.Context, _, email, _ string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.changed = append(g.changed, email)
	return nil
}

type fakeProducts struct {
	mu      sync.Mutex
	queries []entity.PageQuery
	tokens  []string
	content []entity.Product
	pages   int
	saved   []entity.Product
	saveErr error
	toggled []string
}

func (r *fakeProducts) Page(_ context.Context, token string, q entity.PageQuery) (*entity.Page[entity.Product], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries = append(r.queries, q)
	r.tokens = append(r.tokens, token)
	return &entity.Page[entity.Product]{
		Content:          r.content,
		Number:           q.Page,
		Size:             q.Size,
		TotalPages:       r.pages,
		TotalElements:    len(r.content) * r.pages,
		NumberOfElements: len(r.content),
	}, nil
}

func (r *fakeProducts) Save(_ context.Context, _ string, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saved = append(r.saved, *p)
	return nil
}

func (r *fakeProducts) ChangeStatus(_ context.Context, _, uid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toggled = append(r.toggled, uid)
	return nil
}

func (r *fakeProducts) Delete(_ context.Context, _, _ string) error { return nil }

func (r *fakeProducts) lastQuery() entity.PageQuery {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.queries[len(r.queries)-1]
}

type fakePersons struct {
	mu        sync.Mutex
	queries   []entity.PageQuery
	created   []*entity.Person
	content   []entity.Person
	createErr error
}

func (r *fakePersons) Page(_ context.Context, _ string, q entity.PageQuery) (*entity.Page[entity.Person], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries = append(r.queries, q)
	return &entity.Page[entity.Person]{Content: r.content, TotalPages: 1, TotalElements: len(r.content), NumberOfElements: len(r.content)}, nil
}

func (r *fakePersons) Create(_ context.Context, _ string, p *entity.Person) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.created = append(r.created, p)
	return nil
}

func (r *fakePersons) ChangeStatus(_ context.Context, _, _ string) error { return nil }
func (r *fakePersons) Delete(_ context.Context, _, _ string) error       { return nil }

type fakeSubcategories struct{}

func (fakeSubcategories) GetAll(_ context.Context, _ string) ([]entity.Subcategory, error) {
	return []entity.Subcategory{{ID: "sub-1", Name: "Taladros", Category: &entity.Category{ID: "cat-1", Name: "Herramientas"}}}, nil
}

// ── App de prueba ────────────────────────────────────────────────────────────

type testEnv struct {
	app      *fiber.App
	gateway  *fakeGateway
	products *fakeProducts
	persons  *fakePersons
}

type envConfig struct {
	deps      apphttp.RouterDeps
	jwtSecret string
}

type envOption func(*envConfig)

func withCSRF() envOption           { return func(c *envConfig) { c.deps.CSRF = true } }
func withoutRoleRouting() envOption { return func(c *envConfig) { c.deps.RoleRouting = false } }

// withJWTSecret el rol sale del claim del token; las cookies de do dejan de ser una sesión válida.
func withJWTSecret(secret string) envOption { return func(c *envConfig) { c.jwtSecret = secret } }

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	env := &testEnv{
		gateway:  &fakeGateway{session: &entity.Session{Token: "tok-123", Email: "admin@cartem.mx", Role: entity.RoleAdmin}},
		products: &fakeProducts{pages: 1},
		persons:  &fakePersons{},
	}
	cfg := envConfig{deps: apphttp.RouterDeps{
		AppName:     "cartem-test",
		PageSize:    10,
		RoleRouting: true,
		LoginMax:    1000,
	}}
	for _, o := range opts {
		o(&cfg)
	}

	log := logger.Nop()
	authUC := auth.NewAuthUseCase(env.gateway, cache.NewMemoryCooldownStore(), auth.Config{
		ResendCooldown: 30 * time.Second,
		JWTSecret:      cfg.jwtSecret,
	}, log)
	productUC := usecase.NewProductUseCase(env.products, fakeSubcategories{}, export.NewCSV(), export.NewExcel())
	deps := cfg.deps
	deps.Sessions = apphttp.NewSessionManager(authUC, apphttp.CookieOptions{})
	deps.AuthUC = authUC
	deps.DashboardUC = analytics.NewDashboardUseCase(env.persons, env.products)
	deps.PersonUC = usecase.NewPersonUseCase(env.persons)
	deps.ProductUC = productUC
	deps.Wizard = usecase.NewProductWizard(cache.NewMemoryDraftStore(time.Hour), imaging.NewProcessor(0), env.products, 10)
	deps.Log = log

	app, err := apphttp.NewApp("cartem-test", log)
	require.NoError(t, err)
	apphttp.Router(app, deps)
	env.app = app
	return env
}

// do lanza la petición con las cookies de sesión indicadas (role vacío = sin sesión).
func (e *testEnv) do(t *testing.T, req *http.Request, role entity.Role) *http.Response {
	t.Helper()
	if role != "" {
		req.AddCookie(&http.Cookie{Name: apphttp.CookieToken, Value: "tok-123"})
		req.AddCookie(&http.Cookie{Name: apphttp.CookieEmail, Value: "user@cartem.mx"})
		req.AddCookie(&http.Cookie{Name: apphttp.CookieRole, Value: string(role)})
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (e *testEnv) get(t *testing.T, target string, role entity.Role) *http.Response {
	t.Helper()
	return e.do(t, httptest.NewRequest(http.MethodGet, target, nil), role)
}

func (e *testEnv) postForm(t *testing.T, target string, form url.Values, role entity.Role) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	return e.do(t, req, role)
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func cookieNamed(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
