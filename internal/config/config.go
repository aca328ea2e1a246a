package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all client configuration.
type Config struct {
	// APIBaseURL is the root of the assessment platform REST API.
	APIBaseURL string
	// APIToken is the bearer token identifying the student session.
	APIToken string
	// UserID is the student identifier submitted with every attempt.
	UserID string
	// RequestTimeout bounds every single API call.
	RequestTimeout time.Duration
	LogLevel       string
	// LogFile is where diagnostics go; the terminal itself belongs to the UI.
	LogFile string
}

// Load reads configuration from environment variables with sensible defaults.
// It loads a .env file if present but does not fail if missing.
func Load() *Config {
	_ = godotenv.Load() // .env is optional

	return &Config{
		APIBaseURL:     getEnv("MINDGAUGE_API_URL", "http://localhost:8080/api/v1"),
		APIToken:       getEnv("MINDGAUGE_TOKEN", ""),
		UserID:         getEnv("MINDGAUGE_USER_ID", ""),
		RequestTimeout: time.Duration(getEnvInt("MINDGAUGE_TIMEOUT_SECONDS", 15)) * time.Second,
		LogLevel:       getEnv("MINDGAUGE_LOG_LEVEL", "info"),
		LogFile:        getEnv("MINDGAUGE_LOG_FILE", defaultLogPath()),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// defaultLogPath resolves $XDG_STATE_HOME/mindgauge/mindgauge.log, falling
// back to ~/.local/state. Empty string disables file logging entirely.
func defaultLogPath() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "mindgauge", "mindgauge.log")
}
