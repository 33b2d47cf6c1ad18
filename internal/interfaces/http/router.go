package http

import (
	"embed"
	nethttp "net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/cartem-panel/internal/application/analytics"
	"github.com/jhoicas/cartem-panel/internal/application/auth"
	"github.com/jhoicas/cartem-panel/internal/application/usecase"
	"github.com/jhoicas/cartem-panel/internal/domain/entity"
	"github.com/jhoicas/cartem-panel/pkg/logger"
)

//go:embed static
var staticFS embed.FS

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName     string
	Sessions    *SessionManager
	AuthUC      *auth.AuthUseCase
	DashboardUC *analytics.DashboardUseCase
	PersonUC    *usecase.PersonUseCase
	ProductUC   *usecase.ProductUseCase
	Wizard      *usecase.ProductWizard
	PageSize    int
	RoleRouting bool
	CSRF        bool
	LoginMax    int // intentos por minuto e IP en /login y /login/two-factor; 0 = 10
	Log         *logger.Logger
}

// NewApp servidor Fiber con el motor de plantillas y el manejador de errores del panel.
func NewApp(appName string, log *logger.Logger) (*fiber.App, error) {
	if log == nil {
		log = logger.Nop()
	}
	views := NewViews()
	if err := views.Load(); err != nil {
		return nil, err
	}
	app := fiber.New(fiber.Config{
		AppName:      appName,
		Views:        views,
		ErrorHandler: ErrorHandler(log),
		BodyLimit:    64 << 20,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	return app, nil
}

// Router registra las páginas del panel y la superficie JSON.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	app.Use(RequestLogger(deps.Log.Component("http")))
	app.Use("/static", filesystem.New(filesystem.Config{
		Root:       nethttp.FS(staticFS),
		PathPrefix: "static",
		MaxAge:     3600,
	}))
	app.Use(deps.Sessions.Middleware())

	apiHandler := NewAPIHandler(deps.AppName, deps.ProductUC, deps.PersonUC, deps.PageSize)
	app.Get("/health", apiHandler.Health)

	// JSON (Bearer o cookie de sesión)
	api := app.Group("/api")
	api.Get("/session", apiHandler.Session)
	api.Get("/products", APIAuth(deps.AuthUC), apiHandler.Products)
	api.Get("/persons", APIAuth(deps.AuthUC), APIRequireRole(entity.RoleAdmin), apiHandler.Persons)

	// Páginas: cabeceras, guard y csrf en formularios
	app.Use(SecurityHeaders())
	app.Use(RouteGuard(deps.RoleRouting))
	if deps.CSRF {
		app.Use(csrf.New(csrf.Config{
			KeyLookup:      "form:_csrf",
			CookieName:     "csrf_",
			CookieSameSite: "Lax",
			CookieHTTPOnly: true,
			Expiration:     2 * time.Hour,
			ContextKey:     LocalCSRF,
			ErrorHandler: func(c *fiber.Ctx, err error) error {
				return fiber.NewError(fiber.StatusForbidden, "El formulario expiró, recargue la página")
			},
		}))
	}

	loginMax := deps.LoginMax
	if loginMax <= 0 {
		loginMax = 10
	}
	loginLimiter := limiter.New(limiter.Config{
		Max:        loginMax,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return fiber.NewError(fiber.StatusTooManyRequests, "Demasiados intentos, espere un momento")
		},
	})

	authHandler := NewAuthHandler(deps.AuthUC, deps.Sessions)
	app.Get("/", func(c *fiber.Ctx) error { return c.Redirect(PathDashboard, fiber.StatusFound) })
	app.Get(PathLogin, authHandler.LoginPage)
	app.Post(PathLogin, loginLimiter, authHandler.Login)
	app.Get(auth.TwoFactorPath, authHandler.TwoFactorPage)
	app.Post(auth.TwoFactorPath, loginLimiter, authHandler.VerifyCode)
	app.Post(auth.TwoFactorPath+"/resend", authHandler.Resend)
	app.Get("/forgot-password", authHandler.ForgotPasswordPage)
	app.Post("/forgot-password", loginLimiter, authHandler.ForgotPassword)
	app.Get("/logout", authHandler.Logout)
	app.Post("/logout", authHandler.Logout)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	productHandler := NewProductHandler(deps.ProductUC, deps.PageSize)
	personHandler := NewPersonHandler(deps.PersonUC, deps.AuthUC, deps.PageSize)
	wizardHandler := NewWizardHandler(deps.Wizard, deps.ProductUC, deps.PageSize)

	dash := app.Group(PathDashboard)
	dash.Get("/", dashboardHandler.Home)
	dash.Get("/persons", RequireRole(entity.RoleAdmin, entity.RoleEmployee), productHandler.ReadOnly)

	worker := dash.Group("/worker", RequireRole(entity.RoleEmployee, entity.RoleAdmin))
	worker.Get("/products", productHandler.ReadOnly)

	admin := dash.Group("/admin", RequireRole(entity.RoleAdmin))
	admin.Get("/", dashboardHandler.AdminSummary)

	persons := admin.Group("/persons")
	persons.Get("/", personHandler.List)
	persons.Post("/", personHandler.Create)
	persons.Get("/new", personHandler.NewForm)
	persons.Get("/reset", personHandler.ResetForm)
	persons.Post("/reset", personHandler.ResetPassword)
	persons.Post("/status", personHandler.ToggleStatus)
	persons.Post("/delete", personHandler.Delete)

	products := admin.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/export", productHandler.Export)
	products.Post("/status", productHandler.ToggleStatus)
	products.Post("/delete", productHandler.Delete)
	products.Get("/new", wizardHandler.New)
	products.Get("/:uid/edit", wizardHandler.Edit)

	wizard := products.Group("/wizard/:id")
	wizard.Get("/", wizardHandler.Show)
	wizard.Post("/details", wizardHandler.Details)
	wizard.Post("/back", wizardHandler.Back)
	wizard.Post("/preview", wizardHandler.Preview)
	wizard.Post("/images", wizardHandler.Images)
	wizard.Post("/images/:index/remove", wizardHandler.RemoveImage)
	wizard.Post("/submit", wizardHandler.Submit)
	wizard.Post("/cancel", wizardHandler.Cancel)
}
