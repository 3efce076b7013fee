package vidserver

import (
	"fmt"
	"strings"

	"github.com/confvid/go_confvid/internal/engine/videos"
)

// Text formatting for tool responses. Batch previews are bounded so a
// long run never floods the reply.

const batchPreviewLines = 10

func formatURLList(urls []videos.VideoURL) string {
	if len(urls) == 0 {
		return "No collected video URLs."
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d collected video URLs:\n", len(urls))
	for _, u := range urls {
		fmt.Fprintf(&sb, "\nURL: %s\n", u.URL)
		if u.ChannelName != "" {
			fmt.Fprintf(&sb, "Channel: %s\n", u.ChannelName)
		}
		fmt.Fprintf(&sb, "Source: %s (%s)\nCollected: %s\n", u.SourceType, u.SourceURL, u.CollectedAt)
	}
	return sb.String()
}

func formatDetail(d *videos.VideoDetail) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Successfully extracted details for: %s\n", d.Title)
	if d.ConferenceName != "" {
		fmt.Fprintf(&sb, "Conference: %s", d.ConferenceName)
		if d.ConferenceYear != 0 {
			fmt.Fprintf(&sb, " (%d)", d.ConferenceYear)
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "Channel: %s\nDuration: %d seconds\nViews: %d", d.ChannelName, d.Duration, d.ViewCount)
	return sb.String()
}

func formatDetailList(details []videos.VideoDetail) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d video details:\n", len(details))
	for _, d := range details {
		fmt.Fprintf(&sb, "\n%s\n", d.Title)
		if d.ConferenceName != "" {
			fmt.Fprintf(&sb, "  Conference: %s", d.ConferenceName)
			if d.ConferenceYear != 0 {
				fmt.Fprintf(&sb, " (%d)", d.ConferenceYear)
			}
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "  Channel: %s\n  Views: %d | Duration: %ds\n  %s\n",
			d.ChannelName, d.ViewCount, d.Duration, d.VideoURL)
	}
	return sb.String()
}

func formatBatch(header string, r *videos.BatchResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %d videos\nSuccess: %d\nErrors: %d\n", header, r.Processed, r.Success, r.Errors)
	if len(r.Results) == 0 {
		return sb.String()
	}
	sb.WriteString("\nResults:\n")
	preview := r.Results
	if len(preview) > batchPreviewLines {
		preview = preview[:batchPreviewLines]
	}
	for _, line := range preview {
		sb.WriteString(line + "\n")
	}
	if len(r.Results) > batchPreviewLines {
		fmt.Fprintf(&sb, "... and %d more\n", len(r.Results)-batchPreviewLines)
	}
	return sb.String()
}

func formatStats(s *videos.Stats) string {
	var sb strings.Builder
	sb.WriteString("Overall statistics:\n")
	fmt.Fprintf(&sb, "  Total videos: %d\n", s.TotalVideos)
	fmt.Fprintf(&sb, "  Unique conferences: %d\n", s.UniqueConferences)
	fmt.Fprintf(&sb, "  Years covered: %d\n", s.UniqueYears)
	fmt.Fprintf(&sb, "  Average views: %.0f\n", s.AvgViews)
	fmt.Fprintf(&sb, "  Total duration: %.1f hours\n", float64(s.TotalDurationSeconds)/3600)
	if len(s.Conferences) == 0 {
		return sb.String()
	}
	sb.WriteString("\nConference breakdown:\n")
	for _, c := range s.Conferences {
		fmt.Fprintf(&sb, "  %s %d: %d videos, %.0f avg views, %.1fh\n",
			c.Name, c.Year, c.Count, c.AvgViews, float64(c.TotalDuration)/3600)
	}
	return sb.String()
}
