package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	ChannelListRequests  atomic.Int64
	PlaylistListRequests atomic.Int64
	VideoDetailRequests  atomic.Int64
	ScrapeErrors         atomic.Int64
	URLInserts           atomic.Int64
	DetailUpserts        atomic.Int64
	ArchiveWrites        atomic.Int64
}

// GetMetrics returns a snapshot of all counters.
func GetMetrics() map[string]int64 {
	return map[string]int64{
		"channel_list_requests":  metrics.ChannelListRequests.Load(),
		"playlist_list_requests": metrics.PlaylistListRequests.Load(),
		"video_detail_requests":  metrics.VideoDetailRequests.Load(),
		"scrape_errors":          metrics.ScrapeErrors.Load(),
		"url_inserts":            metrics.URLInserts.Load(),
		"detail_upserts":         metrics.DetailUpserts.Load(),
		"archive_writes":         metrics.ArchiveWrites.Load(),
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	keys := []string{
		"channel_list_requests", "playlist_list_requests",
		"video_detail_requests", "scrape_errors",
		"url_inserts", "detail_upserts", "archive_writes",
	}
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for sources/ sub-package.
func IncrChannelList()  { metrics.ChannelListRequests.Add(1) }
func IncrPlaylistList() { metrics.PlaylistListRequests.Add(1) }
func IncrVideoDetail()  { metrics.VideoDetailRequests.Add(1) }
func IncrScrapeError()  { metrics.ScrapeErrors.Add(1) }

// Incrementors for videos/ sub-package.
func IncrURLInserts(n int) { metrics.URLInserts.Add(int64(n)) }
func IncrDetailUpsert()    { metrics.DetailUpserts.Add(1) }
func IncrArchiveWrite()    { metrics.ArchiveWrites.Add(1) }

// TrackOperation logs a warning if an operation takes longer than threshold.
func TrackOperation(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	if elapsed > 5*time.Second {
		slog.Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
