package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// App holds the runtime configuration loaded from environment variables.
type App struct {
	Env             string
	HTTPPort        string
	APIBaseURL      string
	RedisAddr       string
	SessionBackend  string
	SessionCookie   string
	SessionTTL      time.Duration
	DefaultRole     string
	RateLimitPerMin int
}

// Load returns application config populated from environment variables with
// sensible defaults. A .env file in the working directory is loaded first if
// present so local runs don't need exported variables.
func Load() App {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			log.Printf("loading .env failed: %v", err)
		}
	}

	return App{
		Env:             getEnv("APP_ENV", "dev"),
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		APIBaseURL:      getEnv("API_BASE_URL", "http://localhost:8000/api/"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		SessionBackend:  getEnv("SESSION_BACKEND", "memory"),
		SessionCookie:   getEnv("SESSION_COOKIE", "attend_session"),
		SessionTTL:      durationEnv("SESSION_TTL", 12*time.Hour),
		DefaultRole:     getEnv("DEFAULT_ROLE", "teacher"),
		RateLimitPerMin: intEnv("RATE_LIMIT_PER_MIN", 120),
	}
}

// Production reports whether the app runs with production settings.
func (a App) Production() bool {
	return a.Env == "production" || a.Env == "prod"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		d, err := time.ParseDuration(val)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using fallback %s", key, err, fallback)
			return fallback
		}
		return d
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		var parsed int
		if _, err := fmt.Sscanf(val, "%d", &parsed); err == nil {
			return parsed
		}
		log.Printf("invalid int for %s, using fallback %d", key, fallback)
	}
	return fallback
}
