package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the configuration for the sonnet retrieval service
type Config struct {
	Server ServerConfig
	Source SourceConfig
	Cache  CacheConfig
}

// ServerConfig holds the HTTP/interactive boundary configuration
type ServerConfig struct {
	Addr        string
	Interactive bool
}

// SourceConfig holds corpus source configuration. ImportDir, when set,
// replaces the remote API with saved HTML pages from a local directory.
type SourceConfig struct {
	URL         string
	UserAgent   string
	Timeout     time.Duration
	RobotsCheck bool
	ImportDir   string
}

// CacheConfig holds local corpus cache configuration
type CacheConfig struct {
	Backend    string // "file" or "sqlite"
	Dir        string
	SQLitePath string
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:        GetStringEnv("SONNET_ADDR", ":8080"),
			Interactive: GetBoolEnv("SONNET_INTERACTIVE", false),
		},
		Source: SourceConfig{
			URL:         GetStringEnv("SONNET_SOURCE_URL", "https://poetrydb.org/author,title/Shakespeare;Sonnet"),
			UserAgent:   GetStringEnv("SONNET_USER_AGENT", "SonnetEngine/1.0"),
			Timeout:     GetDurationEnv("SONNET_FETCH_TIMEOUT", 30*time.Second),
			RobotsCheck: GetBoolEnv("SONNET_ROBOTS_CHECK", true),
			ImportDir:   GetStringEnv("SONNET_IMPORT_HTML", ""),
		},
		Cache: CacheConfig{
			Backend:    GetStringEnv("SONNET_CACHE_BACKEND", "file"),
			Dir:        GetStringEnv("SONNET_CACHE_DIR", "./data"),
			SQLitePath: GetStringEnv("SONNET_CACHE_SQLITE", "./data/sonnets.db"),
		},
	}
}

func GetStringEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func GetBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func GetDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
