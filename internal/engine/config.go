package engine

import "net/http"

// Config holds all engine configuration, injected from main.
type Config struct {
	DBPath      string  // SQLite path; empty = $HOME/.go_confvid/videos.db
	DatabaseURL string  // optional Postgres archive; empty = archive disabled
	DetailReset bool    // drop+recreate the detail table on server start
	ScrapeRPS   float64 // Innertube request rate limit, requests per second
	HTTPClient  *http.Client
}

var cfg Config

// Cfg exposes the engine configuration for sub-packages (videos, sources).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	cfg = c
	Cfg = &cfg
}
