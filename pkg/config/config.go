package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración del panel (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	API     APIConfig
	Cookie  CookieConfig
	Auth    AuthConfig
	Redis   RedisConfig
	Catalog CatalogConfig
	Docs    DocsConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP del panel.
type HTTPConfig struct {
	Host string
	Port int
	CSRF bool // protección CSRF en formularios
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// APIConfig configuración del API REST remoto (dueño de todos los datos).
type APIConfig struct {
	BaseURL        string
	TimeoutSeconds int  // 0 = sin timeout
	Debug          bool // registra cuerpos de petición/respuesta
}

// Timeout devuelve el timeout de las llamadas salientes; cero significa sin límite.
func (c APIConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// CookieConfig atributos de las cookies de sesión.
type CookieConfig struct {
	Secure bool
	Domain string
}

// AuthConfig comportamiento del flujo de autenticación y del guard de rutas.
type AuthConfig struct {
	RoleRouting   bool   // variante extendida: redirección por rol
	JWTSecret     string // si no está vacío, el rol se toma del claim verificado del token
	ResendSeconds int    // espera antes de permitir "Reenviar código"
}

// RedisConfig conexión opcional a Redis (borradores y temporizadores). Addr vacío = almacenamiento en memoria.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Enabled indica si hay Redis configurado.
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// CatalogConfig parámetros de listados y del asistente de productos.
type CatalogConfig struct {
	PageSize      int
	MaxImages     int
	MaxImageWidth int // 0 = no redimensionar
}

// DocsConfig ubicación del swagger.json de la superficie JSON.
type DocsConfig struct {
	Path string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, API_URL, HTTP_PORT, REDIS_ADDR, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "cartem-panel"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 3000),
			CSRF: getBool(v, "HTTP_CSRF", true),
		},
		API: APIConfig{
			BaseURL:        strings.TrimRight(getString(v, "API_URL", "http://localhost:8080"), "/"),
			TimeoutSeconds: getInt(v, "API_TIMEOUT_SECONDS", 0),
			Debug:          getBool(v, "API_DEBUG", false),
		},
		Cookie: CookieConfig{
			Secure: getBool(v, "COOKIE_SECURE", false),
			Domain: getString(v, "COOKIE_DOMAIN", ""),
		},
		Auth: AuthConfig{
			RoleRouting:   getBool(v, "AUTH_ROLE_ROUTING", true),
			JWTSecret:     getString(v, "JWT_SECRET", ""),
			ResendSeconds: getInt(v, "AUTH_RESEND_SECONDS", 30),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", ""),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
		},
		Catalog: CatalogConfig{
			PageSize:      getInt(v, "CATALOG_PAGE_SIZE", 10),
			MaxImages:     getInt(v, "CATALOG_MAX_IMAGES", 10),
			MaxImageWidth: getInt(v, "CATALOG_MAX_IMAGE_WIDTH", 1600),
		},
		Docs: DocsConfig{
			Path: getString(v, "DOCS_PATH", "./docs/swagger.json"),
		},
	}

	if cfg.API.BaseURL == "" {
		return nil, fmt.Errorf("config: API_URL es requerido")
	}
	if cfg.Catalog.PageSize <= 0 {
		cfg.Catalog.PageSize = 10
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case bool:
			return v.GetBool(key)
		case string:
			b, err := strconv.ParseBool(v.GetString(key))
			if err != nil {
				return def
			}
			return b
		default:
			return v.GetBool(key)
		}
	}
	return def
}
