package scrape

import (
	"os"
	"time"
)

// Config holds configuration for the web scraper.
type Config struct {
	SearchBaseURL string        // HTML search endpoint (e.g. "https://html.duckduckgo.com/html/")
	Timeout       time.Duration // HTTP request timeout
	MaxTextLength int           // cap on returned readable text per company
}

// LoadConfig loads scraper configuration from environment variables.
func LoadConfig() Config {
	cfg := Config{
		SearchBaseURL: os.Getenv("SCRAPE_SEARCH_URL"),
		Timeout:       10 * time.Second,
		MaxTextLength: 4000,
	}
	if cfg.SearchBaseURL == "" {
		cfg.SearchBaseURL = "https://html.duckduckgo.com/html/"
	}
	if v := os.Getenv("SCRAPE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Timeout = d
		}
	}
	return cfg
}
