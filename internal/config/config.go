package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress         string
	DatabaseURI        string
	MemoryStore        bool
	JWTSecret          string
	TokenTTL           time.Duration
	UploadDir          string
	MaxUploadBytes     int64
	PublicBaseURL      string
	CORSOrigins        []string
	StaleCheckInterval time.Duration
	StaleThreshold     time.Duration
	StaleBatchSize     int
	ShutdownTimeout    time.Duration
}

const (
	defaultRunAddress         = ":8080"
	defaultJWTSecret          = "change-me-in-production"
	defaultTokenTTL           = 24 * time.Hour
	defaultUploadDir          = "uploads"
	defaultMaxUploadBytes     = 8 << 20
	defaultStaleCheckInterval = time.Minute
	defaultStaleThreshold     = 30 * time.Minute
	defaultStaleBatchSize     = 50
	defaultShutdownTimeout    = 10 * time.Second
)

// Load parses configuration from .env file, environment variables and flags.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:         getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:        getString(lookup, "DATABASE_URI", ""),
		MemoryStore:        getBool(lookup, "MEMORY_STORE", false),
		JWTSecret:          getString(lookup, "JWT_SECRET", defaultJWTSecret),
		TokenTTL:           getDuration(lookup, "TOKEN_TTL", defaultTokenTTL),
		UploadDir:          getString(lookup, "UPLOAD_DIR", defaultUploadDir),
		MaxUploadBytes:     getInt64(lookup, "MAX_UPLOAD_BYTES", defaultMaxUploadBytes),
		PublicBaseURL:      getString(lookup, "PUBLIC_BASE_URL", ""),
		CORSOrigins:        splitOrigins(getString(lookup, "CORS_ORIGINS", "*")),
		StaleCheckInterval: getDuration(lookup, "STALE_CHECK_INTERVAL", defaultStaleCheckInterval),
		StaleThreshold:     getDuration(lookup, "STALE_THRESHOLD", defaultStaleThreshold),
		StaleBatchSize:     getInt(lookup, "STALE_BATCH_SIZE", defaultStaleBatchSize),
		ShutdownTimeout:    getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("fixpoint", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		tokenTTLStr        = cfg.TokenTTL.String()
		staleIntervalStr   = cfg.StaleCheckInterval.String()
		staleThresholdStr  = cfg.StaleThreshold.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		corsOriginsStr     = strings.Join(cfg.CORSOrigins, ",")
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.BoolVar(&cfg.MemoryStore, "memory", cfg.MemoryStore, "Use in-memory store instead of PostgreSQL")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&tokenTTLStr, "token-ttl", tokenTTLStr, "Auth token lifetime")
	fs.StringVar(&cfg.UploadDir, "upload-dir", cfg.UploadDir, "Directory for uploaded images")
	fs.Int64Var(&cfg.MaxUploadBytes, "upload-max", cfg.MaxUploadBytes, "Maximum upload size in bytes")
	fs.StringVar(&cfg.PublicBaseURL, "base-url", cfg.PublicBaseURL, "Public base URL for uploaded files")
	fs.StringVar(&corsOriginsStr, "cors-origins", corsOriginsStr, "Comma-separated allowed CORS origins")
	fs.StringVar(&staleIntervalStr, "stale-interval", staleIntervalStr, "Interval between stale order checks")
	fs.StringVar(&staleThresholdStr, "stale-threshold", staleThresholdStr, "Age after which a pending order counts as stale")
	fs.IntVar(&cfg.StaleBatchSize, "stale-batch", cfg.StaleBatchSize, "Maximum stale orders reported per check")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.TokenTTL, err = time.ParseDuration(tokenTTLStr); err != nil {
		return nil, fmt.Errorf("invalid token ttl: %w", err)
	}

	if cfg.StaleCheckInterval, err = time.ParseDuration(staleIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid stale check interval: %w", err)
	}

	if cfg.StaleThreshold, err = time.ParseDuration(staleThresholdStr); err != nil {
		return nil, fmt.Errorf("invalid stale threshold: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	cfg.CORSOrigins = splitOrigins(corsOriginsStr)

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = strings.TrimSpace(string(content))
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.StaleCheckInterval <= 0 {
		cfg.StaleCheckInterval = defaultStaleCheckInterval
	}

	if cfg.StaleThreshold <= 0 {
		cfg.StaleThreshold = defaultStaleThreshold
	}

	if cfg.StaleBatchSize <= 0 {
		cfg.StaleBatchSize = defaultStaleBatchSize
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = defaultMaxUploadBytes
	}

	if cfg.DatabaseURI == "" && !cfg.MemoryStore {
		return nil, fmt.Errorf("database URI must be provided unless the memory store is enabled")
	}

	return cfg, nil
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getInt64(lookup envLookup, key string, def int64) int64 {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func getBool(lookup envLookup, key string, def bool) bool {
	if v, ok := lookup(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
