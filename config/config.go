package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server Settings
	AppPort     string
	HOST        string
	DatabaseURL string
	SQLitePath  string

	// JWT Settings
	JWTSecret string

	// Matching Service Settings
	MatcherURL string

	// Email Settings
	SMTPHost  string
	SMTPPort  int
	EmailUser string
	EmailPass string

	// Cloudinary Settings (local disk fallback when unset)
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	UploadDir           string
}

func LoadConfig() *Config {
	// Implementation to load configuration from environment variables or config files
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		AppPort:     getEnv("PORT", "5000"),
		HOST:        getEnv("HOST", ""),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		SQLitePath:  getEnv("SQLITE_PATH", "foundry.db"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		MatcherURL: getEnv("MATCHER_URL", "http://localhost:8000"),

		SMTPHost:  getEnv("EMAIL_HOST", "smtp.gmail.com"),
		SMTPPort:  getEnvInt("EMAIL_PORT", 587),
		EmailUser: os.Getenv("EMAIL_USER"),
		EmailPass: os.Getenv("EMAIL_PASS"),

		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		UploadDir:           getEnv("UPLOAD_DIR", "./uploads"),
	}

	return config
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid value for %s: %q, using %d", key, value, fallback)
		return fallback
	}
	return parsed
}
