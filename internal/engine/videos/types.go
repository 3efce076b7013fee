package videos

// Source types assigned at collection time.
const (
	SourceChannel  = "channel"
	SourcePlaylist = "playlist"
	SourceUnknown  = "unknown"
)

// VideoURL is a discovered video URL with its collection provenance.
// Records are append-only history: insert is keyed on URL and duplicates
// are silently ignored.
type VideoURL struct {
	URL         string `json:"url"`
	Title       string `json:"title,omitempty"`
	ChannelName string `json:"channel_name,omitempty"`
	SourceType  string `json:"source_type"`
	SourceURL   string `json:"source_url"`
	CollectedAt string `json:"collected_at,omitempty"`
}

// VideoDetail is the enriched per-video record produced by the extraction
// pass. Upsert is delete+insert keyed on VideoURL, so a re-extraction
// always reflects the latest scrape wholesale.
type VideoDetail struct {
	VideoURL       string   `json:"video_url"`
	VideoID        string   `json:"video_id"`
	Title          string   `json:"title"`
	Description    string   `json:"description,omitempty"`
	ChannelName    string   `json:"channel_name,omitempty"`
	UploadDate     string   `json:"upload_date,omitempty"`
	Duration       int      `json:"duration"`
	ViewCount      int64    `json:"view_count"`
	LikeCount      int64    `json:"like_count"`
	CommentCount   int64    `json:"comment_count"`
	ConferenceName string   `json:"conference_name,omitempty"`
	ConferenceYear int      `json:"conference_year,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	ThumbnailURL   string   `json:"thumbnail_url,omitempty"`
	CreatedAt      string   `json:"created_at,omitempty"`
}

// --- Tool inputs ---

// CollectChannelInput is the input for collect_channel_videos.
type CollectChannelInput struct {
	ChannelURL string `json:"channel_url" jsonschema:"YouTube channel URL"`
}

// CollectPlaylistInput is the input for collect_playlist_videos.
type CollectPlaylistInput struct {
	PlaylistURL string `json:"playlist_url" jsonschema:"YouTube playlist URL"`
}

// AutoCollectInput is the input for auto_collect_videos.
type AutoCollectInput struct {
	URL string `json:"url" jsonschema:"YouTube channel or playlist URL"`
}

// ListURLsInput is the input for get_collected_videos.
type ListURLsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Maximum number of results (default: 100)"`
}

// ExtractDetailsInput is the input for extract_video_details.
type ExtractDetailsInput struct {
	VideoURL string `json:"video_url" jsonschema:"YouTube video URL to extract details from"`
}

// BatchExtractInput is the input for batch_extract_details.
type BatchExtractInput struct {
	VideoURLs []string `json:"video_urls" jsonschema:"List of YouTube video URLs"`
}

// ProcessUnprocessedInput is the input for process_unprocessed_videos.
type ProcessUnprocessedInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Maximum number of videos to process (default: 10)"`
}

// DetailQueryInput is the input for get_video_details.
type DetailQueryInput struct {
	ConferenceName string `json:"conference_name,omitempty" jsonschema:"Filter by conference name (substring match)"`
	ConferenceYear int    `json:"conference_year,omitempty" jsonschema:"Filter by conference year"`
	Limit          int    `json:"limit,omitempty" jsonschema:"Maximum number of results (default: 20)"`
}

// StatsInput is the (empty) input for get_conference_statistics.
type StatsInput struct{}

// --- Tool outputs ---

// CollectResult is the output of a collection pass.
type CollectResult struct {
	SourceType string `json:"source_type"`
	Found      int    `json:"found"`
	Saved      int    `json:"saved"`
}

// ListURLsResult is the output for get_collected_videos.
type ListURLsResult struct {
	Total int        `json:"total"`
	URLs  []VideoURL `json:"urls"`
}

// BatchResult is the tally of a sequential batch extraction.
type BatchResult struct {
	Processed int      `json:"processed"`
	Success   int      `json:"success"`
	Errors    int      `json:"errors"`
	Results   []string `json:"results"`
}

// DetailQueryResult is the output for get_video_details.
type DetailQueryResult struct {
	Total  int           `json:"total"`
	Videos []VideoDetail `json:"videos"`
}

// ConferenceBreakdown is the per-(conference, year) statistics row.
type ConferenceBreakdown struct {
	Name          string  `json:"name"`
	Year          int     `json:"year"`
	Count         int     `json:"count"`
	AvgViews      float64 `json:"avg_views"`
	TotalDuration int64   `json:"total_duration"`
}

// Stats is the aggregate statistics output.
type Stats struct {
	TotalVideos          int                   `json:"total_videos"`
	UniqueConferences    int                   `json:"unique_conferences"`
	UniqueYears          int                   `json:"unique_years"`
	AvgViews             float64               `json:"avg_views"`
	TotalDurationSeconds int64                 `json:"total_duration_seconds"`
	Conferences          []ConferenceBreakdown `json:"conferences"`
}
