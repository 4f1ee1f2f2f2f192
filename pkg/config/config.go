package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

// Drivers de almacenamiento soportados.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	DB      DBConfig
	HTTP    HTTPConfig
	Store   StoreConfig
	Storage StorageConfig
	Ledger  LedgerConfig
	CORS    CORSConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string // trace, debug, info, warn, error
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int32
	Migrate     bool // aplica el esquema embebido al iniciar
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

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host      string
	Port      int
	BodyLimit int // bytes; debe cubrir MaxUploadBytes + overhead multipart
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StoreConfig selecciona el backend de persistencia.
type StoreConfig struct {
	Driver string // postgres | memory
}

// StorageConfig almacenamiento de archivos subidos (imágenes).
type StorageConfig struct {
	Dir            string // directorio en disco
	PublicPath     string // prefijo de URL pública, ej. /images
	MaxUploadBytes int64
}

// LedgerConfig nivel de estrictez del ledger frente a stock negativo.
type LedgerConfig struct {
	StrictCreate bool // rechazar altas que dejen stock < 0
	StrictUpdate bool // rechazar ediciones que dejen stock < 0
}

// CORSConfig orígenes permitidos (separados por coma).
type CORSConfig struct {
	AllowOrigins string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, STORE_DRIVER, LEDGER_STRICT_CREATE, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return FromViper(v)
}

// FromViper construye la configuración desde una instancia de Viper ya poblada.
func FromViper(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Env:      v.GetString("APP_ENV"),
			Name:     v.GetString("APP_NAME"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		DB: DBConfig{
			DatabaseURL: v.GetString("DATABASE_URL"),
			Host:        v.GetString("DB_HOST"),
			Port:        v.GetInt("DB_PORT"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASSWORD"),
			DBName:      v.GetString("DB_NAME"),
			SSLMode:     v.GetString("DB_SSLMODE"),
			MaxConns:    v.GetInt32("DB_MAX_CONNS"),
			Migrate:     v.GetBool("DB_MIGRATE"),
		},
		HTTP: HTTPConfig{
			Host:      v.GetString("HTTP_HOST"),
			Port:      v.GetInt("HTTP_PORT"),
			BodyLimit: v.GetInt("HTTP_BODY_LIMIT"),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(v.GetString("STORE_DRIVER")),
		},
		Storage: StorageConfig{
			Dir:            v.GetString("STORAGE_DIR"),
			PublicPath:     v.GetString("STORAGE_PUBLIC_PATH"),
			MaxUploadBytes: v.GetInt64("STORAGE_MAX_UPLOAD_BYTES"),
		},
		Ledger: LedgerConfig{
			StrictCreate: v.GetBool("LEDGER_STRICT_CREATE"),
			StrictUpdate: v.GetBool("LEDGER_STRICT_UPDATE"),
		},
		CORS: CORSConfig{
			AllowOrigins: v.GetString("CORS_ALLOW_ORIGINS"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate verifica combinaciones inválidas de configuración.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreDriverPostgres, StoreDriverMemory:
	default:
		return fmt.Errorf("STORE_DRIVER inválido: %q (postgres|memory)", c.Store.Driver)
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("HTTP_PORT inválido: %d", c.HTTP.Port)
	}
	if c.Storage.MaxUploadBytes <= 0 {
		return fmt.Errorf("STORAGE_MAX_UPLOAD_BYTES debe ser positivo")
	}
	if !strings.HasPrefix(c.Storage.PublicPath, "/") {
		return fmt.Errorf("STORAGE_PUBLIC_PATH debe iniciar con '/'")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "inventario-ledger")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "inventario")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 25)
	v.SetDefault("DB_MIGRATE", true)

	v.SetDefault("HTTP_HOST", "0.0.0.0")
	v.SetDefault("HTTP_PORT", 8080)
	v.SetDefault("HTTP_BODY_LIMIT", 10*1024*1024)

	v.SetDefault("STORE_DRIVER", StoreDriverPostgres)

	v.SetDefault("STORAGE_DIR", "./wwwroot/images")
	v.SetDefault("STORAGE_PUBLIC_PATH", "/images")
	v.SetDefault("STORAGE_MAX_UPLOAD_BYTES", 5*1024*1024)

	v.SetDefault("LEDGER_STRICT_CREATE", false)
	v.SetDefault("LEDGER_STRICT_UPDATE", false)

	v.SetDefault("CORS_ALLOW_ORIGINS", "http://localhost:5000,https://localhost:7212")
}
