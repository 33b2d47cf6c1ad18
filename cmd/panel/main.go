package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	"github.com/jhoicas/cartem-panel/internal/application/analytics"
	"github.com/jhoicas/cartem-panel/internal/application/auth"
	"github.com/jhoicas/cartem-panel/internal/application/ports"
	"github.com/jhoicas/cartem-panel/internal/application/usecase"
	"github.com/jhoicas/cartem-panel/internal/infrastructure/api"
	"github.com/jhoicas/cartem-panel/internal/infrastructure/cache"
	"github.com/jhoicas/cartem-panel/internal/infrastructure/export"
	"github.com/jhoicas/cartem-panel/internal/infrastructure/imaging"
	infrapdf "github.com/jhoicas/cartem-panel/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/cartem-panel/internal/interfaces/http"
	"github.com/jhoicas/cartem-panel/pkg/config"
	"github.com/jhoicas/cartem-panel/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("api", cfg.API.BaseURL).
		Msg("iniciando panel")

	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout(), cfg.API.Debug, log)
	authGateway := api.NewAuthGateway(client)
	personRepo := api.NewPersonRepository(client)
	productRepo := api.NewProductRepository(client)
	subcategoryRepo := api.NewSubcategoryRepository(client)

	// Borradores del asistente y temporizadores de reenvío: Redis si está configurado, si no memoria.
	var (
		drafts   ports.DraftStore
		cooldown ports.CooldownStore
	)
	stopSweep := func() {}
	if cfg.Redis.Enabled() {
		rdb, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
		}
		defer rdb.Close()
		drafts = cache.NewRedisDraftStore(rdb, cache.DraftTTL)
		cooldown = cache.NewRedisCooldownStore(rdb)
	} else {
		memDrafts := cache.NewMemoryDraftStore(cache.DraftTTL)
		memCooldown := cache.NewMemoryCooldownStore()
		drafts = memDrafts
		cooldown = memCooldown
		stopSweep = sweepMemory(10*time.Minute, log, map[string]sweeper{
			"borradores":     memDrafts,
			"temporizadores": memCooldown,
		})
	}
	defer stopSweep()

	authUC := auth.NewAuthUseCase(authGateway, cooldown, auth.Config{
		ResendCooldown: time.Duration(cfg.Auth.ResendSeconds) * time.Second,
		JWTSecret:      cfg.Auth.JWTSecret,
	}, log.Component("auth"))
	personUC := usecase.NewPersonUseCase(personRepo)
	productUC := usecase.NewProductUseCase(productRepo, subcategoryRepo,
		export.NewCSV(),
		export.NewExcel(),
		infrapdf.NewCatalogPDF(""),
	)
	wizard := usecase.NewProductWizard(drafts, imaging.NewProcessor(cfg.Catalog.MaxImageWidth), productRepo, cfg.Catalog.MaxImages)
	dashboardUC := analytics.NewDashboardUseCase(personRepo, productRepo)

	sessions := httpRouter.NewSessionManager(authUC, httpRouter.CookieOptions{
		Secure: cfg.Cookie.Secure,
		Domain: cfg.Cookie.Domain,
	})

	app, err := httpRouter.NewApp(cfg.App.Name, log)
	if err != nil {
		log.Fatal().Err(err).Msg("cargar plantillas")
	}

	// Swagger UI de la superficie JSON: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.Docs.Path); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.Docs.Path,
			Path:     "docs",
			Title:    "Cartem Panel",
		}))
	} else {
		log.Warn().Str("path", cfg.Docs.Path).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName:     cfg.App.Name,
		Sessions:    sessions,
		AuthUC:      authUC,
		DashboardUC: dashboardUC,
		PersonUC:    personUC,
		ProductUC:   productUC,
		Wizard:      wizard,
		PageSize:    cfg.Catalog.PageSize,
		RoleRouting: cfg.Auth.RoleRouting,
		CSRF:        cfg.HTTP.CSRF,
		Log:         log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("panel detenido")
}

type sweeper interface{ Sweep() int }

// sweepMemory purga periódicamente las entradas vencidas de los almacenes en memoria.
func sweepMemory(every time.Duration, log *logger.Logger, stores map[string]sweeper) func() {
	ticker := time.NewTicker(every)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				for name, st := range stores {
					if n := st.Sweep(); n > 0 {
						log.Debug().Str("almacen", name).Int("eliminados", n).Msg("entradas vencidas eliminadas")
					}
				}
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()
	return func() { close(done) }
}
