package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverMongo    = "mongo"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort    string
	StoreDriver   string
	MongoURI      string
	MongoDatabase string
	MySQLDSN      string
	PostgresDSN   string
	RedisAddr     string
	RedisDB       int
	RedisPass     string
	// CacheTTL bounds how long a cached progress map or settings value can
	// outlive a write whose invalidation raced a concurrent read.
	CacheTTL      time.Duration
	LogLevel      string
	AdminEmail    string
	AdminPassword string
	BodyLimit     string
	SwaggerHost   string
}

// Load builds Config from environment with sensible defaults. A .env file in
// the working directory is merged first; variables already set win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:    getEnv("PORT", "5000"),
		StoreDriver:   getEnv("STORE_DRIVER", DriverMongo),
		MongoURI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGODB_DATABASE", "lecturetrack"),
		MySQLDSN:      getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/lecturetrack?charset=utf8mb4&parseTime=True&loc=UTC"),
		PostgresDSN:   getEnv("POSTGRES_DSN", "host=localhost user=postgres password=postgres dbname=lecturetrack port=5432 sslmode=disable"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		RedisPass:     os.Getenv("REDIS_PASSWORD"),
		CacheTTL:      getEnvDuration("CACHE_TTL", 5*time.Minute),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@gmail.com"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "Admin@06"),
		BodyLimit:     getEnv("BODY_LIMIT", "50M"),
		SwaggerHost:   os.Getenv("SWAGGER_HOST"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
