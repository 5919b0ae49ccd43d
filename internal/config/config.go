package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port          string
	Environment   string
	DatabaseURL   string
	TablePrefix   string
	AutoMigrate   bool
	CORSOrigins   string
	UploadPath    string
	MaxUploadSize int64
	// Auth. Without a JWKS URL requests are attributed to DevActorID or the
	// X-Actor-Id header (dev/test only).
	JWKSURL    string
	DevActorID int
	// Audit sink
	MongoAuditStore      string
	MongoAuditDatabase   string
	MongoAuditCollection string
	// Message bus
	RabbitHost         string
	RabbitPort         int
	RabbitUsername     string
	RabbitPassword     string
	RabbitExchangeName string
	ProjectionAppName  string
	// Translation Service
	TranslationServiceEndpoint string
	TranslationServiceTimeout  time.Duration
	// Duplicate delivery guard
	RedisAddr              string
	RedisPassword          string
	RedisDB                int
	ProjectionDedupEnabled bool
	ProjectionDedupTTL     time.Duration
	// Logging
	LogDir      string
	LogMaxFiles int
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:                       getEnv("PORT", "8080"),
		Environment:                env,
		DatabaseURL:                getEnv("DATABASE_URL", ""),
		TablePrefix:                getTablePrefix(env),
		AutoMigrate:                getEnvBool("AUTO_MIGRATE", env != "prod"),
		CORSOrigins:                getEnv("CORS_ORIGINS", "http://localhost:3000"),
		UploadPath:                 getEnv("UPLOAD_PATH", "./uploads"),
		MaxUploadSize:              int64(getEnvInt("MAX_UPLOAD_SIZE", int(DefaultMaxUploadSize))),
		JWKSURL:                    getEnv("JWKS_URL", ""),
		DevActorID:                 getEnvInt("DEV_ACTOR_ID", 0),
		MongoAuditStore:            getEnv("MONGO_AUDIT_STORE", "mongodb://localhost:27017"),
		MongoAuditDatabase:         getEnv("MONGO_AUDIT_DATABASE", "dms"),
		MongoAuditCollection:       getEnv("MONGO_AUDIT_COLLECTION", "DocumentAudits"),
		RabbitHost:                 getEnv("RABBIT_HOST", "localhost"),
		RabbitPort:                 getEnvInt("RABBIT_PORT", 5672),
		RabbitUsername:             getEnv("RABBIT_USERNAME", "guest"),
		RabbitPassword:             getEnv("RABBIT_PASSWORD", "guest"),
		RabbitExchangeName:         getEnv("RABBIT_EXCHANGE_NAME", "Cev-Exchange"),
		ProjectionAppName:          getEnv("PROJECTION_APP_NAME", "dms-projection"),
		TranslationServiceEndpoint: strings.TrimRight(getEnv("TRANSLATION_SERVICE_ENDPOINT", "http://localhost:5002"), "/"),
		TranslationServiceTimeout:  getEnvDuration("TRANSLATION_SERVICE_TIMEOUT", 30*time.Second),
		RedisAddr:                  getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:              getEnv("REDIS_PASSWORD", ""),
		RedisDB:                    getEnvInt("REDIS_DB", 0),
		ProjectionDedupEnabled:     getEnvBool("PROJECTION_DEDUP_ENABLED", false),
		ProjectionDedupTTL:         getEnvDuration("PROJECTION_DEDUP_TTL", 24*time.Hour),
		LogDir:                     getEnv("LOG_DIR", ""),
		LogMaxFiles:                getEnvInt("LOG_MAX_FILES", 10),
	}
}

// Validate reports settings the server cannot start without
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Environment == "prod" && c.JWKSURL == "" {
		return fmt.Errorf("JWKS_URL is required in prod")
	}
	if c.MaxUploadSize <= 0 {
		return fmt.Errorf("MAX_UPLOAD_SIZE must be positive")
	}
	return nil
}

// RabbitURL builds the AMQP connection URL
func (c *Config) RabbitURL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/", c.RabbitUsername, c.RabbitPassword, c.RabbitHost, c.RabbitPort)
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Manual override; "-" means no prefix
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		if prefix == "-" {
			return ""
		}
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
