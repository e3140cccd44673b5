package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// StorageBackend selects the object storage implementation. The set is
// closed: configuration picks one of these at startup and the process
// never switches afterwards.
type StorageBackend string

const (
	StorageLocal StorageBackend = "local"
	StorageGCS   StorageBackend = "gcs"
)

// ParseStorageBackend validates a configured backend name.
func ParseStorageBackend(s string) (StorageBackend, error) {
	switch StorageBackend(s) {
	case StorageLocal, "":
		return StorageLocal, nil
	case StorageGCS:
		return StorageGCS, nil
	default:
		return "", fmt.Errorf("unknown storage backend %q (want local or gcs)", s)
	}
}

// Config carries everything the process needs, resolved once in main.
// Nothing else reads the environment.
type Config struct {
	Port      string
	DBDSN     string
	JWTSecret string

	RedisAddr     string // empty disables caching
	RedisPassword string
	RedisDB       int

	Storage    StorageBackend
	LocalDir   string // StorageLocal: directory for uploads
	GCSBucket  string // StorageGCS: bucket name
	WorkersOff bool   // disable background workers (tests, one-off jobs)
}

// Load reads .env (if present) and the environment into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := &Config{
		Port:          getenv("PORT", "8080"),
		DBDSN:         os.Getenv("DB_DSN"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		LocalDir:      getenv("UPLOAD_DIR", "./uploads"),
		GCSBucket:     os.Getenv("GCS_BUCKET"),
		WorkersOff:    os.Getenv("DISABLE_WORKERS") == "true",
	}

	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB %q: %w", v, err)
		}
		cfg.RedisDB = n
	}

	backend, err := ParseStorageBackend(os.Getenv("STORAGE_BACKEND"))
	if err != nil {
		return nil, err
	}
	cfg.Storage = backend
	if cfg.Storage == StorageGCS && cfg.GCSBucket == "" {
		return nil, fmt.Errorf("GCS_BUCKET is required when STORAGE_BACKEND=gcs")
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
