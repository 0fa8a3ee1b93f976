package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port    string
	BaseURL string

	// Database
	DatabaseURL string

	// Redis (asynq)
	RedisAddr string

	// Auth
	JWTSecret string

	// Object storage (S3 or MinIO)
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSEndpoint        string
	S3Bucket           string
	S3PublicURL        string
	S3UseSSL           string
}

// Load reads configuration from the environment. A .env file is loaded if
// present but is not required.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "8080"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisAddr:   getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		JWTSecret:   os.Getenv("JWT_SECRET"),

		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		AWSEndpoint:        os.Getenv("AWS_ENDPOINT"),
		S3Bucket:           getEnv("S3_BUCKET_NAME", "poddock-assets"),
		S3PublicURL:        os.Getenv("S3_PUBLIC_URL"),
		S3UseSSL:           getEnv("S3_USE_SSL", "true"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
