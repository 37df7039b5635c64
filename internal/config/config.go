package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr              string
	DBPath            string
	AuthSecret        string
	SC2ReaderURL      string
	SC2ReaderAPIKey   string
	MaxUploadBytes    int64
	LogLevel          string
	ParseWorkerCount  int
	ParseQueueSize    int
	MaxIssuesPerGame  int
	SeedBuildOrders   bool
}

// Load reads configuration from a .env file (if present) and environment
// variables, applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:              envOr("ADDR", ":8080"),
		DBPath:            envOr("DB_PATH", "file:sc2coach.db"),
		AuthSecret:        envOr("AUTH_SECRET", ""),
		SC2ReaderURL:      envOr("SC2READER_API_URL", "http://localhost:8000"),
		SC2ReaderAPIKey:   envOr("SC2READER_API_KEY", ""),
		MaxUploadBytes:    envInt64Or("MAX_UPLOAD_BYTES", 8<<20),
		LogLevel:          envOr("LOG_LEVEL", "INFO"),
		ParseWorkerCount:  envIntOr("PARSE_WORKER_COUNT", 2),
		ParseQueueSize:    envIntOr("PARSE_QUEUE_SIZE", 32),
		MaxIssuesPerGame:  envIntOr("MAX_ISSUES_PER_GAME", 3),
		SeedBuildOrders:   envBoolOr("SEED_BUILD_ORDERS", true),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envInt64Or(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envBoolOr(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("invalid value for %s=%q, using default %t", key, v, def)
	}
	return def
}
