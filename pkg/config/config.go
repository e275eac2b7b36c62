package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/joho/godotenv"
)

// Environment name constants used in ENVIRONMENT config field.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTesting     = "testing"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	StorageFile     = "file"
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

// Event bus drivers accepted by EVENTS_DRIVER.
const (
	EventsMemory = "memory"
	EventsSQL    = "sql"
)

// Media drivers accepted by MEDIA_DRIVER.
const (
	MediaInline = "inline"
	MediaFS     = "fs"
	MediaS3     = "s3"
)

// AI providers accepted by AI_PROVIDER.
const (
	AINone    = "none"
	AIPalette = "palette"
	AIGemini  = "gemini"
)

// Config holds all configuration for the application
type Config struct {
	// Catalog storage
	StorageDriver string `conf:"default:file,enum:file|memory|sqlite|postgres|redis,env:STORAGE_DRIVER"`
	DataFile      string `conf:"default:./data/wardrobe.json,env:DATA_FILE"`
	SQLitePath    string `conf:"default:./data/wardrobe.db,env:SQLITE_PATH"`
	// Database is optional; only the postgres storage driver and the sql event bus use it.
	DatabaseURL string `conf:"env:DATABASE_URL,noprint"`
	// Redis is optional; enables the redis storage driver and the statistics cache.
	RedisURL      string        `conf:"env:REDIS_URL"`
	RedisKey      string        `conf:"default:wardrobe:catalog,env:REDIS_CATALOG_KEY"`
	RedisPoolSize int           `conf:"default:10,env:REDIS_POOL_SIZE"`
	RedisTimeout  time.Duration `conf:"default:3s,env:REDIS_TIMEOUT"`
	StatsCacheTTL time.Duration `conf:"default:10m,env:STATS_CACHE_TTL"`

	// Events
	EventsDriver string `conf:"default:memory,enum:memory|sql,env:EVENTS_DRIVER"`

	// Images
	MediaDriver       string `conf:"default:inline,enum:inline|fs|s3,env:MEDIA_DRIVER"`
	MediaDir          string `conf:"default:./data/images,env:MEDIA_DIR"`
	MinioEndpoint     string `conf:"default:http://localhost:9000,env:MINIO_ENDPOINT"`
	MinioBucket       string `conf:"default:wardrobe-images,env:MINIO_BUCKET"`
	MinioRootUser     string `conf:"default:minioadmin,env:MINIO_ROOT_USER"`
	MinioRootPassword string `conf:"default:minioadmin,env:MINIO_ROOT_PASSWORD,noprint"`
	S3Region          string `conf:"default:us-east-1,env:S3_REGION"`

	// Classification
	AIProvider   string `conf:"default:palette,enum:none|palette|gemini,env:AI_PROVIDER"`
	GeminiAPIKey string `conf:"env:GEMINI_API_KEY,noprint"`
	GeminiModel  string `conf:"default:gemini-2.5-flash,env:GEMINI_MODEL"`

	// Catalog behavior
	VocabFile       string `conf:"env:VOCAB_FILE"`
	CollationLocale string `conf:"default:en,env:COLLATION_LOCALE"`

	// Application
	HTTPAddr    string `conf:"default::8080,env:HTTP_ADDR"`
	LogLevel    string `conf:"default:info,env:LOG_LEVEL"`
	Environment string `conf:"default:development,enum:development|testing|production,env:ENVIRONMENT"`

	// CORS — comma-separated list of allowed origins; use * to allow all (dev only)
	CORSAllowedOrigins string `conf:"default:*,env:CORS_ALLOWED_ORIGINS"`

	// HTTP limits
	MaxBodyBytes       int64         `conf:"default:33554432,env:MAX_BODY_BYTES"`
	RateLimitPerMinute int           `conf:"default:300,env:RATE_LIMIT_PER_MINUTE"`
	RequestTimeout     time.Duration `conf:"default:30s,env:REQUEST_TIMEOUT"`

	// Observability
	ServiceName     string  `conf:"default:wardrobe,env:SERVICE_NAME"`
	ServiceVersion  string  `conf:"default:dev,env:SERVICE_VERSION"`
	OtelEndpoint    string  `conf:"env:OTEL_ENDPOINT"`
	// OtelSampleRatio is the share of root traces kept; children follow their parent.
	OtelSampleRatio float64 `conf:"default:1,env:OTEL_SAMPLE_RATIO"`
	SentryDSN       string  `conf:"env:SENTRY_DSN,noprint"`
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	var cfg Config
	_ = godotenv.Load()
	if _, err := conf.Parse("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that every selected driver has the settings it needs.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.StorageDriver == StoragePostgres && cfg.DatabaseURL == "" {
		errs = append(errs, "DATABASE_URL is required when STORAGE_DRIVER=postgres")
	}
	if cfg.StorageDriver == StorageRedis && cfg.RedisURL == "" {
		errs = append(errs, "REDIS_URL is required when STORAGE_DRIVER=redis")
	}
	if cfg.EventsDriver == EventsSQL && cfg.DatabaseURL == "" {
		errs = append(errs, "DATABASE_URL is required when EVENTS_DRIVER=sql")
	}
	if cfg.MediaDriver == MediaS3 && cfg.MinioBucket == "" {
		errs = append(errs, "MINIO_BUCKET is required when MEDIA_DRIVER=s3")
	}
	if cfg.AIProvider == AIGemini && cfg.GeminiAPIKey == "" {
		errs = append(errs, "GEMINI_API_KEY is required when AI_PROVIDER=gemini")
	}
	if cfg.OtelSampleRatio < 0 || cfg.OtelSampleRatio > 1 {
		errs = append(errs, "OTEL_SAMPLE_RATIO must be between 0 and 1")
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
}

// ValidateForProduction enforces security requirements when ENVIRONMENT=production.
// Returns an error if any critical settings are missing or unsafe.
// No-ops for non-production environments.
func ValidateForProduction(cfg *Config) error {
	if cfg.Environment != EnvProduction {
		return nil
	}

	var errs []string

	if cfg.LogLevel == "debug" {
		errs = append(errs, "LOG_LEVEL must not be 'debug' in production (may leak sensitive data)")
	}

	if strings.TrimSpace(cfg.CORSAllowedOrigins) == "*" {
		errs = append(errs, "CORS_ALLOWED_ORIGINS must list explicit origins in production")
	}

	if cfg.MediaDriver == MediaS3 && cfg.MinioRootPassword == "minioadmin" {
		errs = append(errs, "MINIO_ROOT_PASSWORD must not use the default credentials in production")
	}

	if cfg.StorageDriver == StorageMemory {
		errs = append(errs, "STORAGE_DRIVER=memory loses the catalog on restart and is not allowed in production")
	}

	if len(errs) == 0 {
		return nil
	}

	return fmt.Errorf("production config validation failed: %s", strings.Join(errs, "; "))
}
