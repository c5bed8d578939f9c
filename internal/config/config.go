package config

import (
	"os"
	"strconv"
	"time"
)

// Store backends.
const (
	BackendPostgres = "postgres"
	BackendSupabase = "supabase"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// Record store
	StoreBackend    string // "postgres" or "supabase"
	DatabaseURL     string
	SupabaseURL     string
	SupabaseAnonKey string
	SupabaseTable   string
	RunMigrations   bool
	SeedDevData     bool

	// Keyword mappings
	KeywordMappingsFile string // Optional YAML file replacing the built-in table

	// TLS
	TLSEnabled  bool
	TLSCertFile string
	TLSKeyFile  string

	// CORS
	CORSOrigins string // Comma-separated allowed origins, "*" for any

	// Rate limiting
	RateLimitMax int    // Requests per minute per IP, 0 disables
	RedisURL     string // Optional shared limiter storage

	// Background jobs
	CategoryRefreshInterval time.Duration // 0 disables the category count refresher

	// Site Branding
	SiteTitle   string // env: SITE_TITLE, default: "민원 분야 찾기"
	SiteTagline string // env: SITE_TAGLINE
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:             getEnv("ENV", "development"),
		ServerAddr:      getEnv("SERVER_ADDR", ":3000"),
		BaseURL:         getEnv("BASE_URL", "http://localhost:3000"),
		StoreBackend:    getEnv("STORE_BACKEND", BackendPostgres),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		SupabaseURL:     getEnv("SUPABASE_URL", ""),
		SupabaseAnonKey: getEnv("SUPABASE_ANON_KEY", ""),
		SupabaseTable:   getEnv("SUPABASE_TABLE", "complaints"),
		RunMigrations:   getEnv("RUN_MIGRATIONS", "true") == "true",
		SeedDevData:     getEnv("SEED_DEV_DATA", "") != "",

		KeywordMappingsFile: getEnv("KEYWORD_MAPPINGS_FILE", ""),

		TLSEnabled:  getEnv("TLS_ENABLED", "") != "",
		TLSCertFile: getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:  getEnv("TLS_KEY_FILE", ""),

		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		RateLimitMax: getEnvInt("RATE_LIMIT_MAX", 100),
		RedisURL:     getEnv("REDIS_URL", ""),

		CategoryRefreshInterval: getEnvDuration("CATEGORY_REFRESH_INTERVAL", 5*time.Minute),

		SiteTitle:   getEnv("SITE_TITLE", "민원 분야 찾기"),
		SiteTagline: getEnv("SITE_TAGLINE", "키워드로 민원 담당 분야를 찾아보세요"),
	}
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
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	if value == "0" {
		return 0
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		return fallback
	}
	return d
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// UsesPostgres reports whether complaints are served from PostgreSQL.
func (c *Config) UsesPostgres() bool {
	return c.StoreBackend == BackendPostgres
}

// StoreConfigured returns true if the selected backend has the settings it
// needs to reach the record store.
func (c *Config) StoreConfigured() bool {
	switch c.StoreBackend {
	case BackendPostgres:
		return c.DatabaseURL != ""
	case BackendSupabase:
		return c.SupabaseURL != "" && c.SupabaseAnonKey != ""
	default:
		return false
	}
}
