package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	GigaChat GigaChatConfig
	Model    ModelConfig
	Cache    CacheConfig
	Logger   LoggerConfig
}

type LoggerConfig struct {
	Level  string
	Format string // json or console
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	AllowOrigins string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type JWTConfig struct {
	SecretKey  string
	Expiration time.Duration
	RefreshExp time.Duration
}

// GigaChatConfig is optional; an empty APIKey disables the advisor.
type GigaChatConfig struct {
	APIKey             string
	Scope              string
	InsecureSkipVerify bool
}

type ModelConfig struct {
	Path                  string
	MinTrainingSamples    int
	PersonalizationWeight float64
	EmbeddingDim          int
	Seed                  int64
}

type CacheConfig struct {
	CatalogTTL time.Duration
}

func Load() (*Config, error) {
	// .env is optional; plain environment variables work too (Docker/K8s)
	for _, envFile := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(getInt("SERVER_READ_TIMEOUT", 30)) * time.Second,
			WriteTimeout: time.Duration(getInt("SERVER_WRITE_TIMEOUT", 30)) * time.Second,
			AllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "cardmax"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			SecretKey:  getEnv("JWT_SECRET_KEY", "your-super-secret-key-change-in-production"),
			Expiration: time.Duration(getInt("JWT_EXPIRATION_MINUTES", 30)) * time.Minute,
			RefreshExp: time.Duration(getInt("JWT_REFRESH_EXPIRATION_HOURS", 168)) * time.Hour,
		},
		GigaChat: GigaChatConfig{
			APIKey:             getEnv("GIGACHAT_API_KEY", ""),
			Scope:              getEnv("GIGACHAT_SCOPE", "GIGACHAT_API_PERS"),
			InsecureSkipVerify: getEnv("GIGACHAT_INSECURE_SKIP_VERIFY", "false") == "true",
		},
		Model: ModelConfig{
			Path:                  getEnv("MODEL_PATH", "models"),
			MinTrainingSamples:    getInt("MIN_TRAINING_SAMPLES", 100),
			PersonalizationWeight: getFloat("PERSONALIZATION_WEIGHT", 0.2),
			EmbeddingDim:          getInt("EMBEDDING_DIM", 32),
			Seed:                  int64(getInt("MODEL_SEED", 42)),
		},
		Cache: CacheConfig{
			CatalogTTL: time.Duration(getInt("CACHE_TTL_SECONDS", 3600)) * time.Second,
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getFloat(key string, defaultValue float64) float64 {
	v, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil {
		return defaultValue
	}
	return v
}
