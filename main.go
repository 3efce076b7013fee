// go_confvid — YouTube conference video collection MCP server.
//
// Collects video URLs from YouTube channels and playlists into a local
// SQLite database, then enriches them with per-video details (title,
// view counts, conference name/year) fetched from the Innertube API.
// Runs as HTTP MCP server or stdio transport. Also exposes a small CLI:
//
//	go_confvid collect <url>   one-shot collection pass for a channel/playlist URL
//	go_confvid stats           print database statistics and exit
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/confvid/go_confvid/internal/engine"
	"github.com/confvid/go_confvid/internal/engine/sources"
	"github.com/confvid/go_confvid/internal/engine/videos"
	"github.com/confvid/go_confvid/internal/vidserver"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var (
	version = "dev"
	mcpPort = env.Str("MCP_PORT", "8893")
)

func main() {
	initEngine()

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "collect":
			runCollect(os.Args[2:])
			return
		case "stats":
			runStats()
			return
		}
	}

	slog.Info("starting go_confvid",
		slog.String("port", mcpPort),
	)

	// Detail records are treated as a regenerable cache: the table is
	// dropped and rebuilt on every server start unless DETAIL_RESET=false.
	// URL records are append-only history and are never reset.
	if engine.Cfg.DetailReset {
		if err := videos.ResetDetailTable(); err != nil {
			slog.Error("detail table reset failed", slog.Any("error", err))
			os.Exit(1)
		}
		slog.Warn("detail table reset: previously extracted details were discarded")
	} else if err := videos.EnsureDetailTable(); err != nil {
		slog.Error("detail table init failed", slog.Any("error", err))
		os.Exit(1)
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_confvid",
		Version: version,
	}, nil)

	vidserver.RegisterTools(server)
	slog.Info("tools registered", slog.Int("count", 9))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "go_confvid",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 600 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}

func initEngine() {
	c := engine.Config{
		DBPath:      env.Str("CONFVID_DB", ""),
		DatabaseURL: env.Str("DATABASE_URL", ""),
		DetailReset: env.Str("DETAIL_RESET", "true") != "false",
		ScrapeRPS:   env.Float("SCRAPE_RPS", 1.0),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
		},
	}
	engine.Init(c)

	videos.SetSource(sources.NewInnertube())

	// Optional Postgres archive: enriched detail records are mirrored there
	// when DATABASE_URL is set. The local SQLite store stays authoritative.
	if c.DatabaseURL != "" {
		adb, err := videos.ConnectArchiveDB(context.Background(), c.DatabaseURL)
		if err != nil {
			slog.Warn("archive DB init failed, continuing without archive", slog.Any("error", err))
		} else {
			videos.SetArchiveDB(adb)
			slog.Info("archive DB initialized")
		}
	}
}

// runCollect detects the URL type and runs a single collection pass.
func runCollect(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: go_confvid collect <channel-or-playlist-url>")
		os.Exit(2)
	}
	url := args[0]

	result, err := videos.CollectAuto(context.Background(), url)
	if err != nil {
		fmt.Printf("collection failed for %s: %v\n", url, err)
		os.Exit(1)
	}
	fmt.Printf("collected %d video URLs from %s %s\n", result.Saved, result.SourceType, url)
}

// runStats prints database statistics to stdout.
func runStats() {
	urls, err := videos.ListURLs(context.Background(), 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "stats: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("collected URLs: %d\n", len(urls))

	stats, err := videos.ConferenceStats(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "stats: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("extracted details: %d\n", stats.TotalVideos)
	if stats.TotalVideos == 0 {
		return
	}
	fmt.Printf("unique conferences: %d\n", stats.UniqueConferences)
	fmt.Printf("years covered: %d\n", stats.UniqueYears)
	fmt.Printf("average views: %.0f\n", stats.AvgViews)
	fmt.Printf("total duration: %.1f hours\n", float64(stats.TotalDurationSeconds)/3600)
	for _, c := range stats.Conferences {
		fmt.Printf("  %s %d: %d videos, %.0f avg views\n", c.Name, c.Year, c.Count, c.AvgViews)
	}
}
