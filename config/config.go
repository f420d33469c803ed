package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	FetchModeHTTP    = "http"
	FetchModeBrowser = "browser"
)

// Config holds the run parameters, loaded from the environment (and .env if present).
type Config struct {
	SourceURL string
	DataPath  string
	OutputDir string

	FetchMode      string
	UserAgent      string
	ChromeBin      string
	BrowserTimeout time.Duration

	SiteTitle string
	LogLevel  string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		SourceURL: getEnv("SOURCE_URL", "https://www.nimbus.it/italiameteo/previpiemonte.htm"),
		DataPath:  getEnv("DATA_PATH", "zero_termico_data.csv"),
		OutputDir: getEnv("OUTPUT_DIR", "docs"),

		FetchMode: strings.ToLower(getEnv("FETCH_MODE", FetchModeHTTP)),
		UserAgent: getEnv("USER_AGENT", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 "+
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
		ChromeBin:      getEnv("CHROME_BIN", ""),
		BrowserTimeout: getEnvDuration("BROWSER_TIMEOUT", 60*time.Second),

		SiteTitle: getEnv("SITE_TITLE", "Zero Termico Piemonte"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

// getEnvDuration accepts Go durations ("90s") or a bare number of seconds.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	if d, err := time.ParseDuration(val); err == nil {
		return d
	}
	if n := getEnvInt(key, -1); n >= 0 {
		return time.Duration(n) * time.Second
	}
	return fallback
}
