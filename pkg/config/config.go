package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la consola y del servicio de productos (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Backend BackendConfig
	Console ConsoleConfig
	Service ServiceConfig
	DB      DBConfig
	Swagger SwaggerConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP de la consola.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// BackendConfig dirección fija del servicio remoto de productos.
// Se lee una sola vez al arrancar; no hay reconfiguración en caliente.
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

// ConsoleConfig ciclo de vida de las sesiones de la consola.
type ConsoleConfig struct {
	SessionTTL time.Duration
}

// ServiceConfig configuración del servicio de productos de desarrollo (cmd/productsvc).
type ServiceConfig struct {
	Host        string
	Port        int
	Storage     string // memory | postgres
	SeedFile    string // catálogo inicial (.json o .csv); vacío = arrancar sin datos
	SeedCharset string // utf-8 | iso-8859-1 | windows-1252
}

// Addr devuelve la dirección de escucha del servicio.
func (c ServiceConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DBConfig configuración de PostgreSQL (solo productsvc con Storage=postgres).
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// SwaggerConfig documentación del contrato REST del servicio de productos.
type SwaggerConfig struct {
	Enabled  bool
	FilePath string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, PRODUCT_API_URL, SERVICE_PORT, etc.
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

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "product-console"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 3000),
		},
		Backend: BackendConfig{
			BaseURL: strings.TrimRight(getString(v, "PRODUCT_API_URL", "http://localhost:8081"), "/"),
			Timeout: time.Duration(getInt(v, "PRODUCT_API_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Console: ConsoleConfig{
			SessionTTL: time.Duration(getInt(v, "CONSOLE_SESSION_TTL_MINUTES", 30)) * time.Minute,
		},
		Service: ServiceConfig{
			Host:        getString(v, "SERVICE_HOST", "0.0.0.0"),
			Port:        getInt(v, "SERVICE_PORT", 8081),
			Storage:     strings.ToLower(getString(v, "SERVICE_STORAGE", "memory")),
			SeedFile:    getString(v, "SERVICE_SEED_FILE", ""),
			SeedCharset: strings.ToLower(getString(v, "SERVICE_SEED_CHARSET", "utf-8")),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "products"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		Swagger: SwaggerConfig{
			Enabled:  getBool(v, "SWAGGER_ENABLED", false),
			FilePath: getString(v, "SWAGGER_FILE", "./docs/swagger.json"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("PRODUCT_API_URL inválido: %q", c.Backend.BaseURL)
	}
	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("PRODUCT_API_TIMEOUT_SECONDS debe ser mayor que 0")
	}
	if c.Console.SessionTTL <= 0 {
		return fmt.Errorf("CONSOLE_SESSION_TTL_MINUTES debe ser mayor que 0")
	}
	switch c.Service.Storage {
	case "memory", "postgres":
	default:
		return fmt.Errorf("SERVICE_STORAGE desconocido: %q (memory|postgres)", c.Service.Storage)
	}
	return nil
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
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
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
		return v.GetBool(key)
	}
	return def
}
