package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration resolved once at startup.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string

	// Gemini credential and model. The credential is required: the
	// enrichment and rewrite stages cannot exist without a client.
	GeminiAPIKey string
	GeminiModel  string

	// DataDir receives the per-request artifacts (_es.txt, _en.txt, .json).
	DataDir string
	// DatasetPath is the append-only tabular store.
	DatasetPath string
	// HistoryPath is the best-effort flat-file run history.
	HistoryPath string
	// AnalyticsDBPath enables the optional SQLite mirror when set.
	AnalyticsDBPath string

	// ScrapeTimeout bounds the page-render wait, not the whole call.
	ScrapeTimeout time.Duration
}

// Load reads configuration from environment variables with sensible
// defaults. The Gemini credential is validated separately by Validate so
// tests can build configs without one.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	_ = godotenv.Load(".env")

	dataDir := getEnv("DATA_DIR", "data/processed")

	return Config{
		Port:            getEnv("PORT", "8080"),
		Env:             normalizeEnv(getEnv("ENV", "dev")),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		GeminiAPIKey:    loadAPIKey(),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		DataDir:         dataDir,
		DatasetPath:     getEnv("DATASET_PATH", filepath.Join(dataDir, "jobs.csv")),
		HistoryPath:     getEnv("HISTORY_PATH", "optimization_history.json"),
		AnalyticsDBPath: os.Getenv("ANALYTICS_DB_PATH"),
		ScrapeTimeout:   secondsEnv("SCRAPE_TIMEOUT_SECONDS", 10*time.Second),
	}
}

// Validate checks invariants that must hold before the process serves
// traffic. A missing Gemini credential is fatal at startup.
func (c Config) Validate() error {
	if strings.TrimSpace(c.GeminiAPIKey) == "" {
		return fmt.Errorf("GEMINI_API_KEY (or GEMINI_API_KEY_FILE) is required")
	}
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("DATA_DIR must not be empty")
	}
	return nil
}

// loadAPIKey resolves the credential from GEMINI_API_KEY, or from the file
// named by GEMINI_API_KEY_FILE when the inline value is absent.
func loadAPIKey() string {
	if val := strings.TrimSpace(os.Getenv("GEMINI_API_KEY")); val != "" {
		return val
	}
	file := strings.TrimSpace(os.Getenv("GEMINI_API_KEY_FILE"))
	if file == "" {
		return ""
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func secondsEnv(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return def
	}
	return time.Duration(parsed) * time.Second
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	default:
		return "dev"
	}
}
