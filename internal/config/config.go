package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Database
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Sessions (operator console)
	SessionExpiry time.Duration
	CookieSecure  bool
	CookieKey     string

	// JWT (device API tokens)
	JWTSecret       string
	JWTAccessExpiry time.Duration

	// Alert workflow
	AlertManagerRoles string

	// Server
	Port        string
	CORSOrigins string

	// Operations
	LogRetentionDays int
	SeedOnStart      bool
	MetricsEnabled   bool
	SentryDSN        string
	AppEnv           string
}

func Load() *Config {
	return &Config{
		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "atis"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		SQLitePath: getEnv("SQLITE_PATH", "atis.db"),

		SessionExpiry: parseDuration(getEnv("SESSION_EXPIRY", "12h"), 12*time.Hour),
		CookieSecure:  parseBool(getEnv("COOKIE_SECURE", "false")),
		CookieKey:     getEnv("COOKIE_KEY", ""),

		JWTSecret:       getEnv("JWT_SECRET", ""),
		JWTAccessExpiry: parseDuration(getEnv("JWT_ACCESS_EXPIRY", "1h"), time.Hour),

		AlertManagerRoles: getEnv("ALERT_MANAGER_ROLES", "Admin,Supervisor,Operator"),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		LogRetentionDays: parseInt(getEnv("LOG_RETENTION_DAYS", "30"), 30),
		SeedOnStart:      parseBool(getEnv("SEED_ON_START", "false")),
		MetricsEnabled:   parseBool(getEnv("METRICS_ENABLED", "true")),
		SentryDSN:        getEnv("SENTRY_DSN", ""),
		AppEnv:           getEnv("APP_ENV", "development"),
	}
}

// IsSQLite reports whether the SQLite driver is selected.
func (c *Config) IsSQLite() bool {
	return c.DBDriver == "sqlite" || c.DBDriver == "sqlite3"
}

func (c *Config) DSN() string {
	if c.IsSQLite() {
		return c.SQLitePath + "?_foreign_keys=on&_busy_timeout=5000"
	}
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	return err == nil && b
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
