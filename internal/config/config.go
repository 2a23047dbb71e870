package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Load reads a .env file into the environment when one exists.
// Variables already set in the environment win.
func Load(files ...string) {
	if err := godotenv.Load(files...); err != nil {
		log.Println("No .env file found (using environment variables)")
	}
}

// Get returns the trimmed value of key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// GetInt parses key as an int; unparsable values fall back with a log line.
func GetInt(key string, fallback int) int {
	raw := Get(key, "")
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("config: %s=%q is not an integer, using %d", key, raw, fallback)
		return fallback
	}
	return n
}

func GetInt64(key string, fallback int64) int64 {
	raw := Get(key, "")
	if raw == "" {
		return fallback
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		log.Printf("config: %s=%q is not an integer, using %d", key, raw, fallback)
		return fallback
	}
	return n
}

// Settings shared by the binaries.
type Settings struct {
	Port         string
	DBDriver     string
	DBPath       string
	DatabaseURL  string
	RedisURL     string
	Seed         int64
	MaxSweeps    int
	PlanCacheTTL time.Duration
	PlanTimeout  time.Duration
}

func FromEnv() Settings {
	return Settings{
		Port:         Get("PORT", "8080"),
		DBDriver:     Get("DB_DRIVER", "sqlite"),
		DBPath:       Get("DB_PATH", "data/runs.db"),
		DatabaseURL:  Get("DATABASE_URL", ""),
		RedisURL:     Get("REDIS_URL", ""),
		Seed:         GetInt64("OPTIMIZER_SEED", 0),
		MaxSweeps:    GetInt("OPTIMIZER_MAX_SWEEPS", 0),
		PlanCacheTTL: time.Duration(GetInt("PLAN_CACHE_TTL_SECONDS", 3600)) * time.Second,
		// stays under the server's 120s write timeout
		PlanTimeout:  time.Duration(GetInt("PLAN_TIMEOUT_SECONDS", 100)) * time.Second,
	}
}
