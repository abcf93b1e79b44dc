// Package config reads process settings from the environment, with an
// optional .env file for development.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every setting the server reads at startup.
type Config struct {
	Port      string
	LogLevel  string
	LogFormat string // "json" or "console"
	DBPath    string

	AllowedFile string
	AnswersFile string
	WordLength  int
	MaxAttempts int

	JWTSecret  string
	JWTExpires time.Duration
	DailySalt  string

	ClientOrigin string
	AdminKeyHash string
	SessionTTL   time.Duration
	SecureCookie bool // APP_ENV=production
}

// Load reads .env (if present) and then the environment.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads the environment only.
func FromEnv() Config {
	return Config{
		Port:      getEnv("PORT", "5175"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
		DBPath:    getEnv("DB_PATH", "./data/wordle.db"),

		AllowedFile: os.Getenv("WORDS_ALLOWED_FILE"),
		AnswersFile: os.Getenv("WORDS_ANSWERS_FILE"),
		WordLength:  envInt("WORD_LENGTH", 5),
		MaxAttempts: envInt("MAX_ATTEMPTS", 6),

		JWTSecret:  getEnv("JWT_SECRET", "dev_secret_change_me"),
		JWTExpires: time.Duration(envInt("JWT_EXPIRES_HOURS", 24)) * time.Hour,
		DailySalt:  getEnv("DAILY_SALT", "local_dev_salt"),

		ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		AdminKeyHash: os.Getenv("ADMIN_KEY_HASH"),
		SessionTTL:   envDuration("SESSION_TTL", 2*time.Hour),
		SecureCookie: os.Getenv("APP_ENV") == "production",
	}
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// envInt parses a positive integer, falling back to def.
func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func envDuration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}
