package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App         AppConfig
	Database    DatabaseConfig
	Ai          AIConfig
	Marketplace MarketplaceConfig
	Worker      WorkerConfig
	Cache       CacheConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	IngestTopic        string
}

type DatabaseConfig struct {
	Connection string
}

type AIConfig struct {
	LLMProvider    string // "ollama" or "huggingface"
	LLMModel       string // e.g. "llama3", "qwen2.5"
	OllamaBaseURL  string
	HuggingFaceKey string
	TimeoutSeconds int
}

type MarketplaceConfig struct {
	RainforestAPIKey string
	AmazonDomain     string
	TimeoutSeconds   int
	MaxItems         int
}

type WorkerConfig struct {
	PollIntervalSeconds int
	BatchSize           int
	MaxAttempts         int
}

type CacheConfig struct {
	Backend  string // "memory" or "redis"
	RedisURL string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			IngestTopic:        getEnv("PRODUCT_INGEST_TOPIC_NAME", "PRODUCT_INGESTED"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			LLMProvider:    getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:       getEnv("LLM_MODEL", "llama3"),
			OllamaBaseURL:  getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			HuggingFaceKey: getEnv("HUGGINGFACE_API_KEY", ""),
			TimeoutSeconds: getEnvAsInt("LLM_TIMEOUT_SECONDS", 15),
		},
		Marketplace: MarketplaceConfig{
			RainforestAPIKey: getEnv("RAINFOREST_API_KEY", ""),
			AmazonDomain:     getEnv("AMAZON_DOMAIN", "amazon.com"),
			TimeoutSeconds:   getEnvAsInt("MARKETPLACE_TIMEOUT_SECONDS", 30),
			MaxItems:         getEnvAsInt("MARKETPLACE_MAX_ITEMS", 10),
		},
		Worker: WorkerConfig{
			PollIntervalSeconds: getEnvAsInt("WORKER_POLL_INTERVAL_SECONDS", 30),
			BatchSize:           getEnvAsInt("WORKER_BATCH_SIZE", 5),
			MaxAttempts:         getEnvAsInt("WORKER_MAX_ATTEMPTS", 3),
		},
		Cache: CacheConfig{
			Backend:  getEnv("CACHE_BACKEND", "memory"),
			RedisURL: getEnv("REDIS_URL", "redis://localhost:6379"),
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
