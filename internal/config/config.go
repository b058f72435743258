package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Catalog   CatalogConfig
	Assistant AssistantConfig
	Ai        AIConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type CatalogConfig struct {
	// DefaultBranchID scopes prices when the caller does not send one.
	DefaultBranchID int
	SearchLimit     int
}

type AssistantConfig struct {
	ContextRetention  int
	ContextTTLMinutes int
	TrigramThreshold  float64
	AliasCacheMinutes int
}

type AIConfig struct {
	LLMProvider   string // "ollama"
	LLMModel      string // e.g. "llama3", "qwen2.5"
	OllamaBaseURL string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Catalog: CatalogConfig{
			DefaultBranchID: getEnvAsInt("CATALOG_DEFAULT_BRANCH_ID", 1),
			SearchLimit:     getEnvAsInt("CATALOG_SEARCH_LIMIT", 10),
		},
		Assistant: AssistantConfig{
			ContextRetention:  getEnvAsInt("CONTEXT_RETENTION", 5),
			ContextTTLMinutes: getEnvAsInt("CONTEXT_TTL_MINUTES", 30),
			TrigramThreshold:  getEnvAsFloat("TRIGRAM_THRESHOLD", 0.2),
			AliasCacheMinutes: getEnvAsInt("ALIAS_CACHE_MINUTES", 15),
		},
		Ai: AIConfig{
			LLMProvider:   getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:      getEnv("LLM_MODEL", "llama3"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		},
	}
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

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
