package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	HTTP HTTPConfig
	DB   DBConfig
	Auth AuthConfig
	Log  LogConfig
}

type HTTPConfig struct {
	Port            int           `env:"PORT" env-default:"8080"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"30s"`
	IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"1m"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
	MaxBodyBytes    int64         `env:"HTTP_MAX_BODY_BYTES" env-default:"1048576"`
	AllowedOrigins  []string      `env:"CORS_ALLOWED_ORIGINS" env-default:"https://*,http://*" env-separator:","`
}

// DBConfig keeps the BLUEPRINT_DB_* names the deployment already uses.
type DBConfig struct {
	Driver          string        `env:"DB_DRIVER" env-default:"postgres"`
	Host            string        `env:"BLUEPRINT_DB_HOST"`
	Port            string        `env:"BLUEPRINT_DB_PORT" env-default:"5432"`
	Database        string        `env:"BLUEPRINT_DB_DATABASE"`
	Username        string        `env:"BLUEPRINT_DB_USERNAME"`
	Password        string        `env:"BLUEPRINT_DB_PASSWORD"`
	Schema          string        `env:"BLUEPRINT_DB_SCHEMA"`
	SSLMode         string        `env:"DB_SSLMODE" env-default:"disable"`
	SQLitePath      string        `env:"DB_SQLITE_PATH" env-default:"todo.db"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" env-default:"10"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" env-default:"100"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" env-default:"1h"`
	AutoMigrate     bool          `env:"DB_AUTO_MIGRATE" env-default:"true"`
}

// DSN returns the libpq style connection string for the postgres driver.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.Username, c.Password, c.Database, c.Port, c.SSLMode)
}

type AuthConfig struct {
	JWTSecret  string `env:"AUTH_JWT_SECRET" env-required:"true"`
	Issuer     string `env:"AUTH_JWT_ISSUER" env-default:"todo-identity"`
	Audience   string `env:"AUTH_JWT_AUDIENCE"`
	CookieName string `env:"AUTH_COOKIE_NAME" env-default:"token"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" env-default:"info"`
	Format string `env:"LOG_FORMAT" env-default:"text"`
}

// Load reads the process environment. A .env file is picked up beforehand by
// godotenv/autoload in the binaries.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadAuth reads only the token settings, for tools that never touch the
// database.
func LoadAuth() (AuthConfig, error) {
	var cfg AuthConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return AuthConfig{}, fmt.Errorf("read env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return AuthConfig{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c AuthConfig) validate() error {
	if len(c.JWTSecret) < 16 {
		return errors.New("AUTH_JWT_SECRET must be at least 16 characters")
	}
	return nil
}

func (c Config) Validate() error {
	var errs []error

	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535, got %d", c.HTTP.Port))
	}

	switch c.DB.Driver {
	case DriverPostgres:
		if c.DB.Host == "" {
			errs = append(errs, errors.New("BLUEPRINT_DB_HOST is required for the postgres driver"))
		}
		if c.DB.Database == "" {
			errs = append(errs, errors.New("BLUEPRINT_DB_DATABASE is required for the postgres driver"))
		}
	case DriverSQLite:
		if c.DB.SQLitePath == "" {
			errs = append(errs, errors.New("DB_SQLITE_PATH must not be empty"))
		}
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverPostgres, DriverSQLite, c.DB.Driver))
	}

	if err := c.Auth.validate(); err != nil {
		errs = append(errs, err)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error, got %q", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.Log.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
