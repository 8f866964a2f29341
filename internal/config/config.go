package config

import (
	"os"
	"strconv"
	"time"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for task attachments.
type MinIOConfig struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	UseSSL        bool
	MaxUploadMB   int
	PresignExpiry time.Duration
}

// RedisConfig holds the Redis connection used for sessions and caches.
type RedisConfig struct {
	URL string
}

// AuthConfig holds token signing and lifetime settings.
type AuthConfig struct {
	JWTSecret    string
	Issuer       string
	AccessTTL    time.Duration
	RefreshTTL   time.Duration
	CookieSecure bool
}

// EmailConfig selects and configures the outbound email provider.
// Provider is one of "sendgrid", "mailgun" or "none".
type EmailConfig struct {
	Provider  string
	APIKey    string
	Domain    string
	APIBase   string
	FromEmail string
	FromName  string
}

// HTTPConfig holds HTTP server behaviour settings.
type HTTPConfig struct {
	CORSOrigins     string
	LoginRatePerMin int
	BodyLimitMB     int
	ShutdownTimeout time.Duration
	FlagCacheTTL    time.Duration
}

// RetentionConfig controls purging of soft-deleted rows.
type RetentionConfig struct {
	Window   time.Duration
	Schedule string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost   string
	Port      string
	Timezone  string
	LogLevel  string
	Database  DatabaseConfig
	MinIO     MinIOConfig
	Redis     RedisConfig
	Auth      AuthConfig
	Email     EmailConfig
	HTTP      HTTPConfig
	Retention RetentionConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:  getEnv("APP_HOST", "localhost:8080"),
		Port:     getEnv("PORT", "8080"),
		Timezone: getEnv("APP_TIMEZONE", "UTC"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:      getEnv("MINIO_ENDPOINT", ""),
			AccessKey:     getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey:     getEnv("MINIO_SECRET_KEY", ""),
			Bucket:        getEnv("MINIO_BUCKET", ""),
			UseSSL:        getEnvBool("MINIO_USE_SSL", false),
			MaxUploadMB:   getEnvInt("MINIO_MAX_UPLOAD_MB", 25),
			PresignExpiry: getEnvDuration("MINIO_PRESIGN_EXPIRY", 15*time.Minute),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", "redis://localhost:6379/0"),
		},
		Auth: AuthConfig{
			JWTSecret:    getEnv("JWT_SECRET", ""),
			Issuer:       getEnv("JWT_ISSUER", "boardapi"),
			AccessTTL:    getEnvDuration("ACCESS_TOKEN_TTL", 15*time.Minute),
			RefreshTTL:   getEnvDuration("REFRESH_TOKEN_TTL", 30*24*time.Hour),
			CookieSecure: getEnvBool("COOKIE_SECURE", true),
		},
		Email: EmailConfig{
			Provider:  getEnv("EMAIL_PROVIDER", "none"),
			APIKey:    getEnv("EMAIL_API_KEY", ""),
			Domain:    getEnv("EMAIL_DOMAIN", ""),
			APIBase:   getEnv("EMAIL_API_BASE", ""),
			FromEmail: getEnv("EMAIL_FROM", ""),
			FromName:  getEnv("EMAIL_FROM_NAME", "Board"),
		},
		HTTP: HTTPConfig{
			CORSOrigins:     getEnv("CORS_ORIGINS", "*"),
			LoginRatePerMin: getEnvInt("LOGIN_RATE_PER_MIN", 10),
			BodyLimitMB:     getEnvInt("HTTP_BODY_LIMIT_MB", 32),
			ShutdownTimeout: getEnvDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
			FlagCacheTTL:    getEnvDuration("FLAG_CACHE_TTL", time.Minute),
		},
		Retention: RetentionConfig{
			Window:   time.Duration(getEnvInt("RETENTION_DAYS", 30)) * 24 * time.Hour,
			Schedule: getEnv("RETENTION_SCHEDULE", "@daily"),
		},
	}
}

// Location resolves the configured timezone, falling back to UTC.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

// getEnvDuration accepts Go duration strings ("15m", "720h").
func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err == nil && d > 0 {
			return d
		}
	}
	return def
}
