package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Database
	DatabaseURL string

	// Redis
	RedisHost string
	RedisPort string
	RedisDB   int

	// Server
	SecretKey   string
	Port        string
	CORSOrigins []string
	Env         string
	Debug       bool

	// Local upload staging, ahead of the S3-compatible object store.
	UploadDir     string
	MaxUploadSize int64

	S3 S3Config
}

// S3Config holds the S3/MinIO-compatible object storage configuration used
// by the document storage adapter.
type S3Config struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	UseSSL          bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	pgServer := getEnv("POSTGRES_SERVER", "localhost")
	pgPort := getEnv("POSTGRES_PORT", "5432")
	pgDB := getEnv("POSTGRES_DB", "cinerental")
	pgUser := getEnv("POSTGRES_USER", "postgres")
	pgPassword := getEnv("POSTGRES_PASSWORD", "")

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	maxUploadSize, err := strconv.ParseInt(getEnv("MAX_UPLOAD_SIZE", "10485760"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_UPLOAD_SIZE: %w", err)
	}

	cfg := &Config{
		DatabaseURL: fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
			pgUser, pgPassword, pgServer, pgPort, pgDB),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisDB:       redisDB,
		SecretKey:     getEnv("SECRET_KEY", ""),
		Port:          getEnv("PORT", "8080"),
		CORSOrigins:   strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ","),
		Env:           getEnv("ENVIRONMENT", "development"),
		Debug:         getEnv("DEBUG", "false") == "true",
		UploadDir:     getEnv("UPLOAD_DIR", "./uploads"),
		MaxUploadSize: maxUploadSize,
		S3: S3Config{
			Endpoint:        getEnv("S3_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getEnv("S3_ACCESS_KEY", ""),
			SecretAccessKey: getEnv("S3_SECRET_KEY", ""),
			BucketName:      getEnv("S3_BUCKET", "cinerental-documents"),
			UseSSL:          getEnv("S3_USE_SSL", "false") == "true",
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.SecretKey == "" && c.Env == "production" {
		return fmt.Errorf("SECRET_KEY is required in production")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
