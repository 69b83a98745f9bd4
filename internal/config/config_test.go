package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigRequiresBaseURL(t *testing.T) {
	t.Setenv("ATLOG_BASE_URL", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("ATLOG_BASE_URL", "http://example.com:8000")
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://example.com:8000", cfg.BaseURL)
	assert.Contains(t, cfg.SessionPath, ".atlog")
	assert.Contains(t, cfg.DatabasePath, "atlog.db")
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 2*time.Second, cfg.RateLimit)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("ATLOG_BASE_URL", "http://example.com:8000")
	t.Setenv("ATLOG_SESSION_PATH", t.TempDir()+"/custom/session.json")
	t.Setenv("ATLOG_HTTP_TIMEOUT", "5s")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Contains(t, cfg.SessionPath, "custom/session.json")
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
}
