package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	JWTSecret   string
	CORSOrigins string

	// Document upload
	UploadDir         string
	MaxFileSize       int64    // bytes
	AllowedExtensions []string // lowercase, with leading dot

	// Agreement expiry lookups
	ExpiryWindowDays int
}

func Load() *Config {
	// .env is optional, real env vars win
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:          getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:       getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=propman port=5432 sslmode=disable"),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		CORSOrigins:       getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		UploadDir:         getEnv("UPLOAD_DIR", "./uploads"),
		MaxFileSize:       getEnvInt64("MAX_FILE_SIZE", 10*1024*1024),
		AllowedExtensions: splitList(getEnv("ALLOWED_EXTENSIONS", ".pdf,.jpg,.jpeg,.png,.doc,.docx")),
		ExpiryWindowDays:  int(getEnvInt64("RENT_EXPIRY_NOTIFICATION_DAYS", 30)),
	}

	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET is not set, refusing to start")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET must be at least 32 characters")
	}
	if cfg.DatabaseDSN == "host=localhost user=postgres password=postgres dbname=propman port=5432 sslmode=disable" {
		log.Println("[WARN] DATABASE_DSN is using the default value, set your own Postgres DSN for production")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt64(key string, def int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Printf("[WARN] %s=%q is not a number, using default %d", key, v, def)
		return def
	}
	return n
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
