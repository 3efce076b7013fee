package videos

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/confvid/go_confvid/internal/engine"
)

// IdentifySourceType classifies a YouTube URL by shape alone.
// Pure, deterministic, no network IO.
func IdentifySourceType(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return SourceUnknown
	}

	if strings.Contains(u.RawQuery, "playlist") || strings.Contains(u.Path, "/playlist") {
		return SourcePlaylist
	}
	for _, seg := range []string{"/channel/", "/c/", "/@", "/user/"} {
		if strings.Contains(u.Path, seg) {
			return SourceChannel
		}
	}
	return SourceUnknown
}

// CollectFromChannel lists a channel's videos and saves the URLs.
// Listing titles are deliberately not persisted: the URL store holds
// discovery history only, details come from the extraction pass.
func CollectFromChannel(ctx context.Context, channelURL string) (*CollectResult, error) {
	slog.Info("collecting channel", slog.String("url", channelURL))

	// Full-channel walks page through continuations and can take a while.
	var listing *ChannelListing
	err := engine.TrackOperation(ctx, "channel_listing", func(ctx context.Context) error {
		var err error
		listing, err = source.ChannelVideos(ctx, channelURL)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("collect channel %s: %w", channelURL, err)
	}

	records := make([]VideoURL, 0, len(listing.Videos))
	for _, v := range listing.Videos {
		records = append(records, VideoURL{
			URL:         v.URL,
			ChannelName: listing.ChannelName,
			SourceType:  SourceChannel,
			SourceURL:   channelURL,
		})
	}

	saved, err := InsertURLs(ctx, records)
	if err != nil {
		return nil, err
	}
	slog.Info("channel collected", slog.String("url", channelURL),
		slog.Int("found", len(records)), slog.Int("saved", saved))
	return &CollectResult{SourceType: SourceChannel, Found: len(records), Saved: saved}, nil
}

// CollectFromPlaylist lists a playlist's videos and saves the URLs.
func CollectFromPlaylist(ctx context.Context, playlistURL string) (*CollectResult, error) {
	slog.Info("collecting playlist", slog.String("url", playlistURL))

	var vids []SourceVideo
	err := engine.TrackOperation(ctx, "playlist_listing", func(ctx context.Context) error {
		var err error
		vids, err = source.PlaylistVideos(ctx, playlistURL)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("collect playlist %s: %w", playlistURL, err)
	}

	records := make([]VideoURL, 0, len(vids))
	for _, v := range vids {
		records = append(records, VideoURL{
			URL:        v.URL,
			SourceType: SourcePlaylist,
			SourceURL:  playlistURL,
		})
	}

	saved, err := InsertURLs(ctx, records)
	if err != nil {
		return nil, err
	}
	slog.Info("playlist collected", slog.String("url", playlistURL),
		slog.Int("found", len(records)), slog.Int("saved", saved))
	return &CollectResult{SourceType: SourcePlaylist, Found: len(records), Saved: saved}, nil
}

// CollectAuto dispatches on URL shape. An unrecognized URL is an input
// error, not a scrape failure.
func CollectAuto(ctx context.Context, rawURL string) (*CollectResult, error) {
	switch IdentifySourceType(rawURL) {
	case SourceChannel:
		return CollectFromChannel(ctx, rawURL)
	case SourcePlaylist:
		return CollectFromPlaylist(ctx, rawURL)
	default:
		return nil, fmt.Errorf("could not identify URL type for %s: use a valid YouTube channel or playlist URL", rawURL)
	}
}

// ExtractDetails scrapes one video, classifies it, and upserts the
// resulting detail record.
func ExtractDetails(ctx context.Context, videoURL string) (*VideoDetail, error) {
	meta, err := source.VideoDetails(ctx, videoURL)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", videoURL, err)
	}

	confName, confYear := Classify(meta.Title, meta.Description, meta.ChannelName)

	d := &VideoDetail{
		VideoURL:       videoURL,
		VideoID:        meta.ID,
		Title:          meta.Title,
		Description:    meta.Description,
		ChannelName:    meta.ChannelName,
		UploadDate:     meta.UploadDate,
		Duration:       meta.Duration,
		ViewCount:      meta.ViewCount,
		LikeCount:      meta.LikeCount,
		CommentCount:   meta.CommentCount,
		ConferenceName: confName,
		ConferenceYear: confYear,
		Tags:           meta.Tags,
		ThumbnailURL:   meta.ThumbnailURL,
	}

	if err := UpsertDetail(ctx, d); err != nil {
		return nil, err
	}
	archiveDetail(ctx, d)
	return d, nil
}

// ExtractBatch extracts details for up to limit URLs, one at a time.
// Individual failures are tallied and do not stop the batch.
// limit <= 0 means all.
func ExtractBatch(ctx context.Context, urls []string, limit int) *BatchResult {
	if limit > 0 && len(urls) > limit {
		urls = urls[:limit]
	}

	result := &BatchResult{Processed: len(urls)}
	for _, u := range urls {
		d, err := ExtractDetails(ctx, u)
		if err != nil {
			result.Errors++
			result.Results = append(result.Results, fmt.Sprintf("FAIL %s: %v", u, err))
			slog.Error("batch item failed", slog.String("url", u), slog.Any("error", err))
			continue
		}
		result.Success++
		result.Results = append(result.Results, "OK "+d.Title)
	}
	return result
}

// ProcessUnprocessed extracts details for URLs that have none yet.
// limit <= 0 defaults to 10.
func ProcessUnprocessed(ctx context.Context, limit int) (*BatchResult, error) {
	urls, err := UnprocessedURLs(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}
	return ExtractBatch(ctx, urls, limit), nil
}
