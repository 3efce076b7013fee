package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"

	"github.com/confvid/go_confvid/internal/engine"
	"github.com/confvid/go_confvid/internal/engine/videos"
)

// Per-video metadata via the Innertube /player endpoint.

var videoIDRE = regexp.MustCompile(`(?:youtube\.com/watch\?(?:.*&)?v=|youtu\.be/)([a-zA-Z0-9_-]{11})`)

// extractVideoID pulls the 11-char video ID from any YouTube URL format.
func extractVideoID(rawURL string) string {
	m := videoIDRE.FindStringSubmatch(rawURL)
	if len(m) >= 2 {
		return m[1]
	}
	return ""
}

type playerReq struct {
	VideoID        string         `json:"videoId"`
	Context        map[string]any `json:"context"`
	RacyCheckOk    bool           `json:"racyCheckOk"`
	ContentCheckOk bool           `json:"contentCheckOk"`
}

type playerResp struct {
	PlayabilityStatus *struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
	VideoDetails *struct {
		VideoID       string   `json:"videoId"`
		Title         string   `json:"title"`
		LengthSeconds string   `json:"lengthSeconds"`
		Keywords      []string `json:"keywords"`
		ShortDesc     string   `json:"shortDescription"`
		ViewCount     string   `json:"viewCount"`
		Author        string   `json:"author"`
		Thumbnail     struct {
			Thumbnails []struct {
				URL    string `json:"url"`
				Width  int    `json:"width"`
				Height int    `json:"height"`
			} `json:"thumbnails"`
		} `json:"thumbnail"`
	} `json:"videoDetails"`
	Microformat *struct {
		PlayerMicroformatRenderer struct {
			PublishDate string `json:"publishDate"`
			UploadDate  string `json:"uploadDate"`
		} `json:"playerMicroformatRenderer"`
	} `json:"microformat"`
}

// VideoDetails fetches per-video metadata. Like and comment counts are
// not exposed by the player endpoint and stay zero.
func (c *Innertube) VideoDetails(ctx context.Context, videoURL string) (*videos.VideoMetadata, error) {
	engine.IncrVideoDetail()

	videoID := extractVideoID(videoURL)
	if videoID == "" {
		return nil, fmt.Errorf("no video ID in URL %s", videoURL)
	}

	payload := playerReq{
		VideoID:        videoID,
		Context:        c.webContext(),
		RacyCheckOk:    true,
		ContentCheckOk: true,
	}

	body, err := c.postInnertube(ctx, ytPlayerURL, payload)
	if err != nil {
		engine.IncrScrapeError()
		return nil, fmt.Errorf("player %s: %w", videoID, err)
	}

	var resp playerResp
	if err := json.Unmarshal(body, &resp); err != nil {
		engine.IncrScrapeError()
		return nil, fmt.Errorf("decode player %s: %w", videoID, err)
	}

	if resp.PlayabilityStatus != nil && resp.PlayabilityStatus.Status != "OK" {
		engine.IncrScrapeError()
		return nil, fmt.Errorf("video %s not playable: %s (%s)",
			videoID, resp.PlayabilityStatus.Status, resp.PlayabilityStatus.Reason)
	}
	if resp.VideoDetails == nil {
		engine.IncrScrapeError()
		return nil, fmt.Errorf("no videoDetails for %s", videoID)
	}

	vd := resp.VideoDetails
	duration, _ := strconv.Atoi(vd.LengthSeconds)
	viewCount, _ := strconv.ParseInt(vd.ViewCount, 10, 64)

	meta := &videos.VideoMetadata{
		ID:          vd.VideoID,
		Title:       vd.Title,
		Description: vd.ShortDesc,
		ChannelName: vd.Author,
		Duration:    duration,
		ViewCount:   viewCount,
		Tags:        vd.Keywords,
	}

	if resp.Microformat != nil {
		mf := resp.Microformat.PlayerMicroformatRenderer
		meta.UploadDate = mf.UploadDate
		if meta.UploadDate == "" {
			meta.UploadDate = mf.PublishDate
		}
	}

	// largest thumbnail wins
	best := 0
	for _, t := range vd.Thumbnail.Thumbnails {
		if area := t.Width * t.Height; area >= best {
			best = area
			meta.ThumbnailURL = t.URL
		}
	}

	return meta, nil
}
