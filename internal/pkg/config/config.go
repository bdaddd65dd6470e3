package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// DefaultJWTSecret is the development fallback used when JWT_SECRET is unset.
const DefaultJWTSecret = "default_secret"

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Port      string `env:"PORT,       default=3000"`
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	APIPrefix string `env:"API_PREFIX, default=/api-beca"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS, default=http://localhost:4200"`

	Auth      AuthConfig
	Store     StoreConfig
	Mongo     MongoConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	Audit     AuditConfig
	Bootstrap BootstrapConfig

	// SecretFallback is set by Load when JWT_SECRET was empty.
	SecretFallback bool
}

type AuthConfig struct {
	JWTSecret         string        `env:"JWT_SECRET"`
	RequireSecret     bool          `env:"JWT_REQUIRE_SECRET,   default=false"`
	TokenTTL          time.Duration `env:"JWT_TTL,              default=1h"`
	BcryptCost        int           `env:"BCRYPT_COST,          default=10"`
	PasswordMinLength int           `env:"PASSWORD_MIN_LENGTH,  default=6"`
	MaxLoginAttempts  int           `env:"LOGIN_MAX_ATTEMPTS,   default=5"`
	LockoutWindow     time.Duration `env:"LOGIN_LOCKOUT_WINDOW, default=15m"`
}

type StoreConfig struct {
	Driver string `env:"STORE_DRIVER, default=mongo"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=becas"`
}

type PostgresConfig struct {
	DSN string `env:"POSTGRES_DSN"`
}

// RedisConfig enables login throttling when Addr is non-empty.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

type AuditConfig struct {
	Workers int `env:"AUDIT_WORKERS, default=4"`
}

// BootstrapConfig seeds an admin identity at startup when Email and Password are set.
type BootstrapConfig struct {
	Email    string `env:"BOOTSTRAP_ADMIN_EMAIL"`
	Password string `env:"BOOTSTRAP_ADMIN_PASSWORD"`
	Name     string `env:"BOOTSTRAP_ADMIN_NAME, default=admin"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Auth.JWTSecret == "" {
		if c.Auth.RequireSecret {
			return errors.New("JWT_SECRET is required when JWT_REQUIRE_SECRET=true")
		}
		c.Auth.JWTSecret = DefaultJWTSecret
		c.SecretFallback = true
	}

	switch c.Store.Driver {
	case DriverMongo, DriverMemory:
	case DriverPostgres:
		if c.Postgres.DSN == "" {
			return errors.New("POSTGRES_DSN is required when STORE_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}

	if c.Auth.TokenTTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}
	return nil
}

// IsDevelopment reports whether ENV selects human-friendly output.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
