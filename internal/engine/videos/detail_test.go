package videos

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertDetailReplaces(t *testing.T) {
	freshDB(t)
	ctx := context.Background()

	d := &VideoDetail{
		VideoURL:       "https://www.youtube.com/watch?v=x",
		VideoID:        "x",
		Title:          "first pass",
		ChannelName:    "PyCon KR",
		ConferenceName: "PyCon KR",
		ConferenceYear: 2019,
		Duration:       600,
		ViewCount:      100,
		Tags:           []string{"python", "asyncio"},
	}
	require.NoError(t, UpsertDetail(ctx, d))

	d.Title = "second pass"
	d.ViewCount = 250
	require.NoError(t, UpsertDetail(ctx, d))

	got, err := QueryDetails(ctx, "", 0, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "second pass", got[0].Title)
	assert.Equal(t, int64(250), got[0].ViewCount)
	assert.Equal(t, []string{"python", "asyncio"}, got[0].Tags)
}

func TestQueryDetailsFilters(t *testing.T) {
	freshDB(t)
	ctx := context.Background()

	seed := []*VideoDetail{
		{VideoURL: "https://www.youtube.com/watch?v=1", Title: "talk one", ConferenceName: "PyCon KR", ConferenceYear: 2019, ViewCount: 50},
		{VideoURL: "https://www.youtube.com/watch?v=2", Title: "talk two", ConferenceName: "PyCon KR", ConferenceYear: 2020, ViewCount: 300},
		{VideoURL: "https://www.youtube.com/watch?v=3", Title: "talk three", ConferenceName: "EuroPython", ConferenceYear: 2020, ViewCount: 120},
	}
	for _, d := range seed {
		require.NoError(t, UpsertDetail(ctx, d))
	}

	// Substring name filter.
	got, err := QueryDetails(ctx, "PyCon", 0, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "talk two", got[0].Title) // highest view count first

	// Year filter alone.
	got, err = QueryDetails(ctx, "", 2020, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Combined filters.
	got, err = QueryDetails(ctx, "EuroPython", 2020, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "talk three", got[0].Title)

	// Limit caps the result.
	got, err = QueryDetails(ctx, "", 0, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "talk two", got[0].Title)
}

func TestConferenceStats(t *testing.T) {
	freshDB(t)
	ctx := context.Background()

	seed := []*VideoDetail{
		{VideoURL: "https://www.youtube.com/watch?v=1", ConferenceName: "PyCon KR", ConferenceYear: 2019, ViewCount: 10, Duration: 60},
		{VideoURL: "https://www.youtube.com/watch?v=2", ConferenceName: "PyCon KR", ConferenceYear: 2020, ViewCount: 20, Duration: 120},
		{VideoURL: "https://www.youtube.com/watch?v=3", ConferenceName: "EuroPython", ConferenceYear: 2020, ViewCount: 30, Duration: 180},
	}
	for _, d := range seed {
		require.NoError(t, UpsertDetail(ctx, d))
	}

	s, err := ConferenceStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, s.TotalVideos)
	assert.Equal(t, 2, s.UniqueConferences)
	assert.Equal(t, 2, s.UniqueYears)
	assert.InDelta(t, 20.0, s.AvgViews, 0.001)
	assert.Equal(t, int64(360), s.TotalDurationSeconds)

	// Year descending, then count descending.
	require.Len(t, s.Conferences, 3)
	assert.Equal(t, 2020, s.Conferences[0].Year)
	assert.Equal(t, 2020, s.Conferences[1].Year)
	assert.Equal(t, 2019, s.Conferences[2].Year)
	assert.Equal(t, "PyCon KR", s.Conferences[2].Name)
}

func TestConferenceStatsEmpty(t *testing.T) {
	freshDB(t)

	s, err := ConferenceStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, s.TotalVideos)
	assert.Zero(t, s.AvgViews)
	assert.Empty(t, s.Conferences)
}

func TestResetDetailTable(t *testing.T) {
	freshDB(t)
	ctx := context.Background()

	_, err := InsertURLs(ctx, []VideoURL{{URL: "https://www.youtube.com/watch?v=keep"}})
	require.NoError(t, err)
	require.NoError(t, UpsertDetail(ctx, &VideoDetail{
		VideoURL: "https://www.youtube.com/watch?v=keep",
		Title:    "doomed",
	}))

	require.NoError(t, ResetDetailTable())

	s, err := ConferenceStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, s.TotalVideos)

	// The URL store survives a detail reset.
	urls, err := ListURLs(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, urls, 1)
}
