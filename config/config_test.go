package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "https://www.nimbus.it/italiameteo/previpiemonte.htm", cfg.SourceURL)
	assert.Equal(t, "zero_termico_data.csv", cfg.DataPath)
	assert.Equal(t, "docs", cfg.OutputDir)
	assert.Equal(t, FetchModeHTTP, cfg.FetchMode)
	assert.Empty(t, cfg.ChromeBin)
	assert.Equal(t, 60*time.Second, cfg.BrowserTimeout)
	assert.Equal(t, "Zero Termico Piemonte", cfg.SiteTitle)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("SOURCE_URL", "http://localhost:8080/bollettino.htm")
	t.Setenv("DATA_PATH", "/tmp/data.csv")
	t.Setenv("OUTPUT_DIR", "/tmp/site")
	t.Setenv("FETCH_MODE", "BROWSER")
	t.Setenv("CHROME_BIN", "/usr/bin/chromium")
	t.Setenv("BROWSER_TIMEOUT", "90s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()

	assert.Equal(t, "http://localhost:8080/bollettino.htm", cfg.SourceURL)
	assert.Equal(t, "/tmp/data.csv", cfg.DataPath)
	assert.Equal(t, "/tmp/site", cfg.OutputDir)
	assert.Equal(t, FetchModeBrowser, cfg.FetchMode)
	assert.Equal(t, "/usr/bin/chromium", cfg.ChromeBin)
	assert.Equal(t, 90*time.Second, cfg.BrowserTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Duration
	}{
		{"", 5 * time.Second},
		{"2m", 2 * time.Minute},
		{"30", 30 * time.Second},
		{"soon", 5 * time.Second},
	}

	for _, tt := range tests {
		t.Setenv("TEST_DURATION", tt.raw)
		if got := getEnvDuration("TEST_DURATION", 5*time.Second); got != tt.want {
			t.Errorf("getEnvDuration(%q) = %v; want %v", tt.raw, got, tt.want)
		}
	}
}
