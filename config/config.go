package config

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type DBConfig struct {
	Driver     string
	DSN        string
	SqlitePath string
}

type CookieConfig struct {
	Domain   string
	Secure   bool
	SameSite http.SameSite
}

type AMQPConfig struct {
	URL      string
	Exchange string
}

type AppConfig struct {
	Env        string
	ServerPort string
	DB         DBConfig
	// TrustProxy takes the client address from X-Forwarded-For and friends.
	// Only enable it behind a proxy that overwrites those headers.
	TrustProxy bool

	Keys               KeyPair
	RefreshTokenSecret string
	Issuer             string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
	BcryptCost         int

	Cookie               CookieConfig
	Redis                RedisConfig
	RateLimit            RateLimitConfig
	AMQP                 AMQPConfig
	TokenCleanupInterval time.Duration
}

// Load reads the process environment (and a .env file when present) once at
// startup. Missing key material or refresh secret is an error.
func Load() (*AppConfig, error) {
	_ = godotenv.Load()

	db, err := loadDBConfig()
	if err != nil {
		return nil, err
	}

	secret := os.Getenv("REFRESH_TOKEN_SECRET")
	if secret == "" {
		return nil, errors.New("REFRESH_TOKEN_SECRET is required")
	}

	keys, err := loadKeyPair()
	if err != nil {
		return nil, err
	}

	cfg := &AppConfig{
		Env:        envStr("APP_ENV", "production"),
		ServerPort: envStr("PORT", "5501"),
		DB:         db,
		TrustProxy: envBool("TRUST_PROXY", false),

		Keys:               keys,
		RefreshTokenSecret: secret,
		Issuer:             envStr("TOKEN_ISSUER", "auth-service"),
		AccessTokenTTL:     envDur("ACCESS_TOKEN_TTL", time.Hour),
		RefreshTokenTTL:    envDur("REFRESH_TOKEN_TTL", 365*24*time.Hour),
		BcryptCost:         envInt("BCRYPT_COST", 10),

		Cookie: CookieConfig{
			Domain:   envStr("COOKIE_DOMAIN", "localhost"),
			Secure:   envBool("COOKIE_SECURE", false),
			SameSite: http.SameSiteStrictMode,
		},
		Redis:     loadRedisConfig(),
		RateLimit: loadRateLimitConfig(),
		AMQP: AMQPConfig{
			URL:      envStr("RABBITMQ_URL", ""),
			Exchange: envStr("AMQP_EXCHANGE", "auth.events"),
		},
		TokenCleanupInterval: envDur("TOKEN_CLEANUP_INTERVAL", time.Hour),
	}

	if cfg.AccessTokenTTL <= 0 || cfg.RefreshTokenTTL <= 0 {
		return nil, errors.New("ACCESS_TOKEN_TTL and REFRESH_TOKEN_TTL must be positive")
	}
	return cfg, nil
}

func loadDBConfig() (DBConfig, error) {
	driver := envStr("DB_DRIVER", "postgres")
	switch driver {
	case "sqlite":
		return DBConfig{Driver: driver, SqlitePath: envStr("SQLITE_PATH", "auth.db")}, nil
	case "postgres":
	default:
		return DBConfig{}, fmt.Errorf("DB_DRIVER must be postgres or sqlite, got %q", driver)
	}

	if url := os.Getenv("DATABASE_URL"); url != "" {
		return DBConfig{Driver: driver, DSN: url}, nil
	}
	for _, k := range []string{"DB_HOST", "DB_USER", "DB_NAME"} {
		if os.Getenv(k) == "" {
			return DBConfig{}, fmt.Errorf("%s is required", k)
		}
	}
	dsn := fmt.Sprintf("host=%v user=%v password=%v dbname=%v port=%v sslmode=%v",
		os.Getenv("DB_HOST"), os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"), envStr("DB_PORT", "5432"), envStr("DB_SSLMODE", "disable"))
	return DBConfig{Driver: driver, DSN: dsn}, nil
}
