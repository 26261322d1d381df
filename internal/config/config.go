package config

import (
	"errors"
	"os"
	"strconv"
)

// ErrMissingAPIKey is returned by Load when no generative AI credential is configured.
var ErrMissingAPIKey = errors.New("API_KEY environment variable is not set")

// DatabaseConfig holds PostgreSQL database connection settings.
// The database is optional; an empty Host disables output record persistence.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// Enabled reports whether a database host was configured.
func (c DatabaseConfig) Enabled() bool { return c.Host != "" }

// MinIOConfig holds object storage settings for MinIO.
// An empty Endpoint disables mirroring of outputs to object storage.
type MinIOConfig struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	UseSSL        bool
	PresignTTLSec int
}

// Enabled reports whether an object storage endpoint was configured.
func (c MinIOConfig) Enabled() bool { return c.Endpoint != "" }

// FilesConfig controls where uploads are staged and outputs are written.
type FilesConfig struct {
	OutputDir      string
	StagingDir     string
	Strategy       string // "unique" or "fixed"
	MaxUploadBytes int64  // per staged file
	// MaxRequestBytes caps a whole request body; merges carry several files.
	MaxRequestBytes int64
}

// LLMConfig holds the generative AI credential and model selection.
type LLMConfig struct {
	APIKey        string
	Model         string
	MaxInputChars int
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level    string
	TimeZone string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost        string
	Port           string
	MetricsEnabled bool
	Files          FilesConfig
	LLM            LLMConfig
	Log            LogConfig
	Database       DatabaseConfig
	MinIO          MinIOConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// The LLM credential is mandatory; its absence is returned as ErrMissingAPIKey
// and must abort startup.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		AppHost:        getEnv("APP_HOST", "localhost:8080"),
		Port:           getEnv("PORT", "8080"),
		MetricsEnabled: getEnvBool("METRICS_ENABLED", true),
		Files: FilesConfig{
			OutputDir:       getEnv("OUTPUT_DIR", "./outputs"),
			StagingDir:      getEnv("STAGING_DIR", ""),
			Strategy:        getEnv("OUTPUT_STRATEGY", "unique"),
			MaxUploadBytes:  getEnvInt64("MAX_UPLOAD_BYTES", 32<<20),
			MaxRequestBytes: getEnvInt64("MAX_REQUEST_BYTES", 128<<20),
		},
		LLM: LLMConfig{
			APIKey:        getEnv("API_KEY", os.Getenv("GEMINI_API_KEY")),
			Model:         getEnv("LLM_MODEL", "gemini-2.0-flash"),
			MaxInputChars: getEnvInt("LLM_MAX_INPUT_CHARS", 100000),
		},
		Log: LogConfig{
			Level:    getEnv("LOG_LEVEL", "info"),
			TimeZone: getEnv("TZ", "UTC"),
		},
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:      getEnv("MINIO_ENDPOINT", ""),
			AccessKey:     getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey:     getEnv("MINIO_SECRET_KEY", ""),
			Bucket:        getEnv("MINIO_BUCKET", ""),
			UseSSL:        getEnvBool("MINIO_USE_SSL", false),
			PresignTTLSec: getEnvInt("MINIO_PRESIGN_TTL_SEC", 900),
		},
	}

	if cfg.LLM.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.ParseInt(v, 10, 64)
		if err == nil {
			return i
		}
	}
	return def
}
