package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"github.com/confvid/go_confvid/internal/engine"
	"github.com/confvid/go_confvid/internal/engine/videos"
)

// Channel and playlist listing via the Innertube /browse endpoint with
// continuation-token pagination.

// browse params selecting a channel's Videos tab, newest first.
const channelVideosParams = "EgZ2aWRlb3PyBgQKAjoA"

var channelIDRE = regexp.MustCompile(`UC[\w-]{22}`)

type ytRun struct {
	Text string `json:"text"`
}

type ytRuns struct {
	Runs []ytRun `json:"runs"`
}

func (r ytRuns) join() string {
	var parts []string
	for _, run := range r.Runs {
		parts = append(parts, run.Text)
	}
	return strings.Join(parts, "")
}

// ChannelVideos lists all videos of a channel, walking continuations
// until the listing is exhausted or the page cap is reached.
func (c *Innertube) ChannelVideos(ctx context.Context, channelURL string) (*videos.ChannelListing, error) {
	engine.IncrChannelList()

	channelID, err := c.resolveChannelID(ctx, channelURL)
	if err != nil {
		engine.IncrScrapeError()
		return nil, err
	}

	payload := map[string]any{
		"context":  c.webContext(),
		"browseId": channelID,
		"params":   channelVideosParams,
	}

	listing := &videos.ChannelListing{}
	seen := make(map[string]bool)

	for page := 0; page < maxContinuationPages; page++ {
		body, err := c.postInnertube(ctx, ytBrowseURL, payload)
		if err != nil {
			engine.IncrScrapeError()
			return nil, fmt.Errorf("channel browse %s: %w", channelID, err)
		}

		if listing.ChannelName == "" {
			listing.ChannelName = extractChannelName(body)
		}

		found := 0
		walkKey(body, "videoRenderer", func(raw json.RawMessage) bool {
			var vr struct {
				VideoID string `json:"videoId"`
				Title   ytRuns `json:"title"`
			}
			if err := json.Unmarshal(raw, &vr); err == nil && vr.VideoID != "" && !seen[vr.VideoID] {
				seen[vr.VideoID] = true
				listing.Videos = append(listing.Videos, videos.SourceVideo{
					URL:   "https://www.youtube.com/watch?v=" + vr.VideoID,
					Title: vr.Title.join(),
				})
				found++
			}
			return true
		})

		token := firstContinuationToken(body)
		if token == "" || found == 0 {
			break
		}
		payload = map[string]any{
			"context":      c.webContext(),
			"continuation": token,
		}
	}

	slog.Info("channel listed", slog.String("channel", channelID), slog.Int("videos", len(listing.Videos)))
	return listing, nil
}

// PlaylistVideos lists all videos of a playlist.
func (c *Innertube) PlaylistVideos(ctx context.Context, playlistURL string) ([]videos.SourceVideo, error) {
	engine.IncrPlaylistList()

	playlistID, err := extractPlaylistID(playlistURL)
	if err != nil {
		engine.IncrScrapeError()
		return nil, err
	}

	payload := map[string]any{
		"context":  c.webContext(),
		"browseId": "VL" + playlistID,
	}

	var vids []videos.SourceVideo
	seen := make(map[string]bool)

	for page := 0; page < maxContinuationPages; page++ {
		body, err := c.postInnertube(ctx, ytBrowseURL, payload)
		if err != nil {
			engine.IncrScrapeError()
			return nil, fmt.Errorf("playlist browse %s: %w", playlistID, err)
		}

		found := 0
		walkKey(body, "playlistVideoRenderer", func(raw json.RawMessage) bool {
			var pr struct {
				VideoID string `json:"videoId"`
				Title   ytRuns `json:"title"`
			}
			if err := json.Unmarshal(raw, &pr); err == nil && pr.VideoID != "" && !seen[pr.VideoID] {
				seen[pr.VideoID] = true
				vids = append(vids, videos.SourceVideo{
					URL:   "https://www.youtube.com/watch?v=" + pr.VideoID,
					Title: pr.Title.join(),
				})
				found++
			}
			return true
		})

		token := firstContinuationToken(body)
		if token == "" || found == 0 {
			break
		}
		payload = map[string]any{
			"context":      c.webContext(),
			"continuation": token,
		}
	}

	slog.Info("playlist listed", slog.String("playlist", playlistID), slog.Int("videos", len(vids)))
	return vids, nil
}

// resolveChannelID extracts the UC… channel ID from the URL directly, or
// fetches the channel page and scrapes it for handle/custom URLs.
func (c *Innertube) resolveChannelID(ctx context.Context, channelURL string) (string, error) {
	if id := channelIDRE.FindString(channelURL); id != "" {
		return id, nil
	}

	body, err := c.fetchPage(ctx, channelURL)
	if err != nil {
		return "", fmt.Errorf("resolve channel %s: %w", channelURL, err)
	}
	if id := channelIDRE.FindString(string(body)); id != "" {
		return id, nil
	}
	return "", fmt.Errorf("resolve channel %s: no channel ID in page", channelURL)
}

// extractPlaylistID pulls the playlist ID from the list query parameter.
func extractPlaylistID(playlistURL string) (string, error) {
	u, err := url.Parse(playlistURL)
	if err != nil {
		return "", fmt.Errorf("parse playlist URL %s: %w", playlistURL, err)
	}
	id := u.Query().Get("list")
	if id == "" {
		return "", fmt.Errorf("no list parameter in playlist URL %s", playlistURL)
	}
	return id, nil
}

// extractChannelName pulls the display title from channel metadata.
func extractChannelName(body json.RawMessage) string {
	var name string
	walkKey(body, "channelMetadataRenderer", func(raw json.RawMessage) bool {
		var meta struct {
			Title string `json:"title"`
		}
		if err := json.Unmarshal(raw, &meta); err == nil && meta.Title != "" {
			name = meta.Title
		}
		return false
	})
	return name
}
