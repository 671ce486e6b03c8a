package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"marketing-fee-backend/internal/period"
)

type Config struct {
	Port       string
	DB         DBConfig
	Redis      RedisConfig
	JWTSecret  string
	Upload     UploadConfig
	Location   *time.Location
	Fallback   period.Fallback
	CacheTTL   time.Duration
	RatePerMin int
}

type DBConfig struct {
	Driver       string
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
}

type UploadConfig struct {
	Dir       string
	URLPrefix string
	MaxBytes  int64
}

// Helper function to get environment variable with fallback default value
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// Helper function to get environment variable as integer with fallback
func GetEnvAsInt(key string, fallback int) int {
	valueStr := GetEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

// Load membaca .env (jika ada) dan environment proses.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] File .env tidak ditemukan, menggunakan environment variables sistem.")
	}

	loc, err := time.LoadLocation(GetEnv("APP_TIMEZONE", "UTC"))
	if err != nil {
		log.Printf("[WARN] APP_TIMEZONE tidak valid (%v), memakai UTC", err)
		loc = time.UTC
	}

	return Config{
		Port: GetEnv("APP_PORT", "3000"),
		DB: DBConfig{
			Driver:       GetEnv("DB_DRIVER", "mysql"),
			DSN:          GetEnv("DB_DSN", "root:@tcp(127.0.0.1:3306)/marketing_fee?charset=utf8mb4&parseTime=True&loc=Local"),
			MaxOpenConns: GetEnvAsInt("DB_MAX_OPEN_CONNS", 20),
			MaxIdleConns: GetEnvAsInt("DB_MAX_IDLE_CONNS", 5),
		},
		Redis: RedisConfig{
			Addr:     GetEnv("REDIS_ADDR", ""),
			Password: GetEnv("REDIS_PASSWORD", ""),
			DB:       GetEnvAsInt("REDIS_DB", 0),
		},
		JWTSecret: GetEnv("JWT_SECRET", "rahasia_negara"),
		Upload: UploadConfig{
			Dir:       GetEnv("UPLOAD_DIR", "./uploads"),
			URLPrefix: GetEnv("UPLOAD_URL_PREFIX", "/uploads"),
			MaxBytes:  int64(GetEnvAsInt("EVIDENCE_MAX_BYTES", 1<<20)),
		},
		Location:   loc,
		Fallback:   period.ParseFallback(GetEnv("MONTH_FALLBACK", string(period.FallbackCurrent))),
		CacheTTL:   time.Duration(GetEnvAsInt("CACHE_TTL_SECONDS", 60)) * time.Second,
		RatePerMin: GetEnvAsInt("RATE_LIMIT_PER_MINUTE", 120),
	}
}
