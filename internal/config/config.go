package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	BaseURL      string
	SessionPath  string
	DatabasePath string
	DownloadDir  string
	HTTPTimeout  time.Duration
	RateLimit    time.Duration
}

// LoadConfig loads configuration from ATLOG_* environment variables
func LoadConfig() (*Config, error) {
	viper.SetEnvPrefix("ATLOG")
	viper.AutomaticEnv()

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve home directory: %w", err)
	}
	stateDir := filepath.Join(home, ".atlog")

	viper.SetDefault("session_path", filepath.Join(stateDir, "session.json"))
	viper.SetDefault("db_path", filepath.Join(stateDir, "atlog.db"))
	viper.SetDefault("download_dir", filepath.Join(stateDir, "photos"))
	viper.SetDefault("http_timeout", "30s")
	viper.SetDefault("rate_limit", "2s")

	baseURL := viper.GetString("base_url")
	if baseURL == "" {
		return nil, fmt.Errorf("ATLOG_BASE_URL environment variable is required")
	}

	sessionPath := viper.GetString("session_path")

	// Ensure session path directory exists
	if err := os.MkdirAll(filepath.Dir(sessionPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	return &Config{
		BaseURL:      baseURL,
		SessionPath:  sessionPath,
		DatabasePath: viper.GetString("db_path"),
		DownloadDir:  viper.GetString("download_dir"),
		HTTPTimeout:  viper.GetDuration("http_timeout"),
		RateLimit:    viper.GetDuration("rate_limit"),
	}, nil
}
