package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	StoragePath   string // Path of the JSON blob holding all URL records
	BaseURL       string // Public base URL, also the default click referrer
	JWTSecret     string // Secret key for JWT token signing
	JWTTTL        int    // JWT token expiration time in hours
	AdminEmail    string // The single account accepted by the login flow
	AdminPassword string
	LogFile       string
	LogBufferSize int // Entries retained by the in-memory log buffer

	RateLimitRPS           float64 // Rate limit for general API endpoints (requests per second)
	RateLimitBurst         int
	RateLimitAuthRPS       float64 // Stricter limit for auth endpoints
	RateLimitAuthBurst     int
	RateLimitRedirectRPS   float64 // Lenient limit for redirects
	RateLimitRedirectBurst int
}

func Load() *Config {
	// Try to load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables or defaults")
	}

	return &Config{
		Port:          getEnv("PORT", "8080"),
		StoragePath:   getEnv("STORAGE_PATH", "data/urls.json"),
		BaseURL:       getEnv("BASE_URL", "http://localhost:8080"),
		JWTSecret:     getEnv("JWT_SECRET", "snaplink-dev-secret"),
		JWTTTL:        getEnvInt("JWT_TTL_HOURS", 24),
		AdminEmail:    getEnv("ADMIN_EMAIL", "user@example.com"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "password123"),
		LogFile:       getEnv("LOG_FILE", "logs/app.log"),
		LogBufferSize: getEnvInt("LOG_BUFFER_SIZE", 1000),

		RateLimitRPS:           getEnvFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst:         getEnvInt("RATE_LIMIT_BURST", 20),
		RateLimitAuthRPS:       getEnvFloat("RATE_LIMIT_AUTH_RPS", 5),
		RateLimitAuthBurst:     getEnvInt("RATE_LIMIT_AUTH_BURST", 10),
		RateLimitRedirectRPS:   getEnvFloat("RATE_LIMIT_REDIRECT_RPS", 30),
		RateLimitRedirectBurst: getEnvInt("RATE_LIMIT_REDIRECT_BURST", 60),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
