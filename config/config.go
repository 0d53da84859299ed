package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything read from the environment at startup. It is
// read-only after Load returns.
type Config struct {
	// HTTP server
	Port            string
	CORSOrigins     string
	RateLimitPerMin int

	// Database
	DatabaseURL string

	// Tokens
	JWTSecret string
	TokenTTL  time.Duration

	// Password reset mail
	AppBaseURL string
	SMTPHost   string
	SMTPPort   int
	SMTPUser   string
	SMTPPass   string
	SMTPFrom   string

	// AI category suggestions
	GeminiAPIKey string
}

// Load reads configuration from the environment, loading a local .env file
// first when one exists.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:            getEnv("PORT", "3000"),
		CORSOrigins:     getEnv("CORS_ORIGINS", "*"),
		RateLimitPerMin: getEnvInt("RATE_LIMIT_PER_MIN", 120),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		JWTSecret: getEnv("JWT_SECRET", ""),
		TokenTTL:  time.Duration(getEnvInt("TOKEN_TTL_HOURS", 24)) * time.Hour,

		AppBaseURL: getEnv("APP_BASE_URL", "http://localhost:5173"),
		SMTPHost:   getEnv("SMTP_HOST", ""),
		SMTPPort:   getEnvInt("SMTP_PORT", 587),
		SMTPUser:   getEnv("SMTP_USER", ""),
		SMTPPass:   getEnv("SMTP_PASS", ""),
		SMTPFrom:   getEnv("SMTP_FROM", "no-reply@fintrack.local"),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
