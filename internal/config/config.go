package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Ai       AIConfig
	Otel     OtelConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	FeedLogFilePath    string
	LLMLogFilePath     string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	JWTSecret          string
	JWTTTL             time.Duration
	ExamAttemptTTL     time.Duration
	ExamGrader         string // "heuristic" or "keyword"
}

type DatabaseConfig struct {
	Driver     string // "postgres" or "sqlite"
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type AIConfig struct {
	Provider string // "gemini" or "ollama"
	Model    string
	BaseURL  string
	APIKey   string
	Timeout  time.Duration
}

type OtelConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.App.Environment, "production")
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	provider := strings.ToLower(getEnv("LLM_PROVIDER", "gemini"))

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			FeedLogFilePath:    getEnv("FEED_LOG_FILE_PATH", "logs/feed.log"),
			LLMLogFilePath:     getEnv("LLM_LOG_FILE_PATH", "logs/llm.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
			JWTSecret:          getEnv("JWT_SECRET", "default_secret"),
			JWTTTL:             getEnvAsDuration("JWT_TTL", 24*time.Hour),
			ExamAttemptTTL:     getEnvAsDuration("EXAM_ATTEMPT_TTL", 2*time.Hour),
		},
		Database: DatabaseConfig{
			Driver:     strings.ToLower(getEnv("DB_DRIVER", "postgres")),
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "Study Assistant"),
		},
		Ai: AIConfig{
			Provider: provider,
			Model:    getEnv("LLM_MODEL", defaultModel(provider)),
			BaseURL:  getEnv("LLM_BASE_URL", defaultBaseURL(provider)),
			APIKey:   getEnv("GOOGLE_GEMINI_API_KEY", ""),
			Timeout:  getEnvAsDuration("LLM_TIMEOUT", 60*time.Second),
		},
		Otel: OtelConfig{
			Enabled:     getEnvAsBool("OTEL_ENABLED", false),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "study-assistant-be"),
		},
	}
}

func defaultModel(provider string) string {
	if provider == "ollama" {
		return "llama3"
	}
	return "gemini-2.5-flash-lite"
}

func defaultBaseURL(provider string) string {
	if provider == "ollama" {
		return "http://localhost:11434"
	}
	return "https://generativelanguage.googleapis.com/v1beta"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
