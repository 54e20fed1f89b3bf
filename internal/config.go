package internal

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env         string
	Port        int
	LogLevel    string
	DatabaseUrl string

	// Run goose migrations on startup (development databases only)
	AutoMigrate bool

	// Storage Configuration
	StorageProvider string // "local" or "s3"

	// Local Storage (development)
	LocalStoragePath string // Base directory for customer photos

	// S3-compatible storage (production)
	S3Endpoint        string // Optional, e.g. an R2 or MinIO endpoint
	S3Region          string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3BucketName      string

	// Workspace selection state
	WorkspaceIdleTTL       time.Duration
	WorkspaceSweepInterval time.Duration
	WorkspaceMax           int

	// Rate limiting for selection changes, per client IP
	SelectionRateLimit  int           // Requests per window
	SelectionRateWindow time.Duration // Window length

	// Background thumbnail warm-up
	WorkerConcurrency int
	WorkerQueueSize   int

	// Marketing sidebar widget shown next to reports. Empty disables it.
	SidebarHeadline string
	SidebarBody     string
	SidebarLinkURL  string

	// Metrics endpoint authentication
	// If both are empty, the /metrics endpoint will be unprotected (not recommended)
	MetricsUsername string
	MetricsPassword string
}

func NewConfig() (*Config, error) {
	// Load .env file if it exists (ignored in production)
	_ = godotenv.Load()

	cfg := &Config{
		Env:         getEnv("ENV", "development"),
		Port:        getEnvInt("PORT", 8080),
		LogLevel:    getEnv("LOG_LEVEL", "debug"),
		AutoMigrate: getEnvBool("AUTO_MIGRATE", false),

		// Storage defaults to local filesystem for development
		StorageProvider:  getEnv("STORAGE_PROVIDER", "local"),
		LocalStoragePath: getEnv("LOCAL_STORAGE_PATH", "./storage"),

		// S3 configuration (production only)
		S3Endpoint:        getEnv("S3_ENDPOINT", ""),
		S3Region:          getEnv("S3_REGION", "auto"),
		S3AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
		S3BucketName:      getEnv("S3_BUCKET_NAME", ""),

		// Workspace defaults: one care shift plus slack
		WorkspaceIdleTTL:       getEnvDuration("WORKSPACE_IDLE_TTL", 12*time.Hour),
		WorkspaceSweepInterval: getEnvDuration("WORKSPACE_SWEEP_INTERVAL", 5*time.Minute),
		WorkspaceMax:           getEnvInt("WORKSPACE_MAX", 10000),

		SelectionRateLimit:  getEnvInt("SELECTION_RATE_LIMIT", 120),
		SelectionRateWindow: getEnvDuration("SELECTION_RATE_WINDOW", time.Minute),

		WorkerConcurrency: getEnvInt("WORKER_CONCURRENCY", 2),
		WorkerQueueSize:   getEnvInt("WORKER_QUEUE_SIZE", 256),

		SidebarHeadline: getEnv("SIDEBAR_HEADLINE", ""),
		SidebarBody:     getEnv("SIDEBAR_BODY", ""),
		SidebarLinkURL:  getEnv("SIDEBAR_LINK_URL", ""),

		// Metrics authentication
		MetricsUsername: getEnv("METRICS_USERNAME", ""),
		MetricsPassword: getEnv("METRICS_PASSWORD", ""),
	}

	// Required
	cfg.DatabaseUrl = os.Getenv("DATABASE_URL")
	if cfg.DatabaseUrl == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cfg *Config) validate() error {
	// Validate storage configuration
	if cfg.StorageProvider == "s3" {
		if cfg.S3AccessKeyID == "" {
			return fmt.Errorf("S3_ACCESS_KEY_ID is required when STORAGE_PROVIDER is 's3'")
		}
		if cfg.S3SecretAccessKey == "" {
			return fmt.Errorf("S3_SECRET_ACCESS_KEY is required when STORAGE_PROVIDER is 's3'")
		}
		if cfg.S3BucketName == "" {
			return fmt.Errorf("S3_BUCKET_NAME is required when STORAGE_PROVIDER is 's3'")
		}
	} else if cfg.StorageProvider != "local" {
		return fmt.Errorf("STORAGE_PROVIDER must be either 'local' or 's3', got: %s", cfg.StorageProvider)
	}

	if cfg.WorkspaceIdleTTL < time.Minute {
		return fmt.Errorf("WORKSPACE_IDLE_TTL must be at least 1m, got: %s", cfg.WorkspaceIdleTTL)
	}
	if cfg.WorkspaceMax < 1 {
		return fmt.Errorf("WORKSPACE_MAX must be at least 1, got: %d", cfg.WorkspaceMax)
	}
	if cfg.SelectionRateLimit <= 0 {
		return fmt.Errorf("SELECTION_RATE_LIMIT must be positive, got: %d", cfg.SelectionRateLimit)
	}

	if cfg.WorkerConcurrency < 1 {
		return fmt.Errorf("WORKER_CONCURRENCY must be at least 1, got: %d", cfg.WorkerConcurrency)
	}

	return nil
}

// IsSecure reports whether cookies should carry the Secure flag.
func (cfg *Config) IsSecure() bool {
	return cfg.Env != "development"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
