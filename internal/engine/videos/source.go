package videos

import "context"

// SourceVideo is one entry returned by a channel or playlist listing.
// Listing titles are not persisted; titles come from the extraction pass.
type SourceVideo struct {
	URL   string
	Title string
}

// ChannelListing is the result of listing a channel's videos.
type ChannelListing struct {
	ChannelName string
	Videos      []SourceVideo
}

// VideoMetadata is the raw per-video scrape result before classification.
type VideoMetadata struct {
	ID           string
	Title        string
	Description  string
	ChannelName  string
	UploadDate   string
	Duration     int
	ViewCount    int64
	LikeCount    int64
	CommentCount int64
	Tags         []string
	ThumbnailURL string
}

// Source lists videos and fetches per-video metadata from YouTube.
// Any call may fail opaquely (network, not-found, rate-limit); failures
// are surfaced to the caller, not retried at this level.
type Source interface {
	ChannelVideos(ctx context.Context, channelURL string) (*ChannelListing, error)
	PlaylistVideos(ctx context.Context, playlistURL string) ([]SourceVideo, error)
	VideoDetails(ctx context.Context, videoURL string) (*VideoMetadata, error)
}

// Package-level source, set from main.go.
var source Source

// SetSource sets the package-level video source.
func SetSource(s Source) { source = s }
