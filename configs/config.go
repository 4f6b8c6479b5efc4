package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string
	AppEnv     string
	JWTSecret  string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	Judge0URL         string
	JudgePollInterval time.Duration
	JudgePollTimeout  time.Duration

	RateLimitWindow time.Duration
	RateLimitMax    int
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	return &Config{
		ServerPort: getEnv("PORT", "8080"),
		AppEnv:     getEnv("APP_ENV", "development"),
		JWTSecret:  getEnv("JWT_SECRET", ""),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", "root"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "codeclimb"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		Judge0URL:         getEnv("JUDGE0_API_URL", "http://localhost:2358"),
		JudgePollInterval: time.Duration(getEnvAsInt("JUDGE_POLL_INTERVAL_MS", 1000)) * time.Millisecond,
		JudgePollTimeout:  time.Duration(getEnvAsInt("JUDGE_POLL_TIMEOUT_S", 120)) * time.Second,

		RateLimitWindow: time.Duration(getEnvAsInt("RATE_LIMIT_WINDOW_S", 60)) * time.Second,
		RateLimitMax:    getEnvAsInt("RATE_LIMIT_MAX", 100),
	}
}

// IsProduction reports whether the server runs outside local development.
// It controls the Secure flag on session cookies and the logger mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv != "development"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return fallback
}
