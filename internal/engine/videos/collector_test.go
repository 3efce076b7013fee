package videos

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentifySourceType(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.youtube.com/playlist?list=PLxyz", SourcePlaylist},
		{"https://www.youtube.com/watch?v=abc&list=PLxyz", SourceUnknown},
		{"https://www.youtube.com/channel/UCxxxxxxxxxxxxxxxxxxxxxx", SourceChannel},
		{"https://www.youtube.com/c/PyConKR", SourceChannel},
		{"https://www.youtube.com/@pyconkr", SourceChannel},
		{"https://www.youtube.com/user/pyconkr", SourceChannel},
		{"https://www.youtube.com/watch?v=abc", SourceUnknown},
		{"https://example.com/", SourceUnknown},
		{"not a url at all ://", SourceUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, IdentifySourceType(tt.url))
		})
	}
}

// fakeSource serves canned listings and metadata, failing per-URL on demand.
type fakeSource struct {
	listing  *ChannelListing
	playlist []SourceVideo
	details  map[string]*VideoMetadata
	fail     map[string]error
}

func (f *fakeSource) ChannelVideos(_ context.Context, channelURL string) (*ChannelListing, error) {
	if err := f.fail[channelURL]; err != nil {
		return nil, err
	}
	return f.listing, nil
}

func (f *fakeSource) PlaylistVideos(_ context.Context, playlistURL string) ([]SourceVideo, error) {
	if err := f.fail[playlistURL]; err != nil {
		return nil, err
	}
	return f.playlist, nil
}

func (f *fakeSource) VideoDetails(_ context.Context, videoURL string) (*VideoMetadata, error) {
	if err := f.fail[videoURL]; err != nil {
		return nil, err
	}
	m, ok := f.details[videoURL]
	if !ok {
		return nil, fmt.Errorf("no metadata for %s", videoURL)
	}
	return m, nil
}

func withSource(t *testing.T, s Source) {
	t.Helper()
	prev := source
	SetSource(s)
	t.Cleanup(func() { SetSource(prev) })
}

func TestCollectFromChannel(t *testing.T) {
	freshDB(t)
	withSource(t, &fakeSource{
		listing: &ChannelListing{
			ChannelName: "PyCon KR",
			Videos: []SourceVideo{
				{URL: "https://www.youtube.com/watch?v=a", Title: "listing title"},
				{URL: "https://www.youtube.com/watch?v=b"},
			},
		},
	})

	res, err := CollectFromChannel(context.Background(), "https://www.youtube.com/@pyconkr")
	require.NoError(t, err)
	assert.Equal(t, SourceChannel, res.SourceType)
	assert.Equal(t, 2, res.Found)
	assert.Equal(t, 2, res.Saved)

	urls, err := ListURLs(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, urls, 2)
	for _, u := range urls {
		assert.Empty(t, u.Title) // listing titles are not persisted
		assert.Equal(t, "PyCon KR", u.ChannelName)
		assert.Equal(t, "https://www.youtube.com/@pyconkr", u.SourceURL)
	}
}

func TestCollectFromPlaylist(t *testing.T) {
	freshDB(t)
	withSource(t, &fakeSource{
		playlist: []SourceVideo{
			{URL: "https://www.youtube.com/watch?v=p1"},
			{URL: "https://www.youtube.com/watch?v=p2"},
			{URL: "https://www.youtube.com/watch?v=p3"},
		},
	})

	res, err := CollectFromPlaylist(context.Background(), "https://www.youtube.com/playlist?list=PLx")
	require.NoError(t, err)
	assert.Equal(t, SourcePlaylist, res.SourceType)
	assert.Equal(t, 3, res.Found)
	assert.Equal(t, 3, res.Saved)
}

func TestCollectAutoUnknown(t *testing.T) {
	freshDB(t)

	_, err := CollectAuto(context.Background(), "https://www.youtube.com/watch?v=abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not identify URL type")
}

func TestExtractDetailsClassifies(t *testing.T) {
	freshDB(t)
	withSource(t, &fakeSource{
		details: map[string]*VideoMetadata{
			"https://www.youtube.com/watch?v=x": {
				ID:          "x",
				Title:       "PyCon KR 2019 - Deep dive",
				ChannelName: "PyCon KR",
				Duration:    1800,
				ViewCount:   4200,
				Tags:        []string{"python"},
			},
		},
	})

	d, err := ExtractDetails(context.Background(), "https://www.youtube.com/watch?v=x")
	require.NoError(t, err)
	assert.Equal(t, "PyCon KR", d.ConferenceName)
	assert.Equal(t, 2019, d.ConferenceYear)

	got, err := QueryDetails(context.Background(), "PyCon KR", 2019, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "x", got[0].VideoID)
}

func TestExtractBatchContinuesPastFailures(t *testing.T) {
	freshDB(t)
	withSource(t, &fakeSource{
		details: map[string]*VideoMetadata{
			"https://www.youtube.com/watch?v=ok1": {ID: "ok1", Title: "first"},
			"https://www.youtube.com/watch?v=ok2": {ID: "ok2", Title: "second"},
		},
		fail: map[string]error{
			"https://www.youtube.com/watch?v=bad": errors.New("video unavailable"),
		},
	})

	res := ExtractBatch(context.Background(), []string{
		"https://www.youtube.com/watch?v=ok1",
		"https://www.youtube.com/watch?v=bad",
		"https://www.youtube.com/watch?v=ok2",
	}, 0)

	assert.Equal(t, 3, res.Processed)
	assert.Equal(t, 2, res.Success)
	assert.Equal(t, 1, res.Errors)
	require.Len(t, res.Results, 3)
	assert.Equal(t, "OK first", res.Results[0])
	assert.Contains(t, res.Results[1], "FAIL")
	assert.Equal(t, "OK second", res.Results[2])

	// The failure in the middle must not block later records from landing.
	got, err := QueryDetails(context.Background(), "", 0, 0)
	require.NoError(t, err)
	ids := make([]string, 0, len(got))
	for _, d := range got {
		ids = append(ids, d.VideoID)
	}
	assert.ElementsMatch(t, []string{"ok1", "ok2"}, ids)
}

func TestExtractBatchLimit(t *testing.T) {
	freshDB(t)
	withSource(t, &fakeSource{
		details: map[string]*VideoMetadata{
			"https://www.youtube.com/watch?v=a": {ID: "a", Title: "a"},
			"https://www.youtube.com/watch?v=b": {ID: "b", Title: "b"},
		},
	})

	res := ExtractBatch(context.Background(), []string{
		"https://www.youtube.com/watch?v=a",
		"https://www.youtube.com/watch?v=b",
	}, 1)
	assert.Equal(t, 1, res.Processed)
	assert.Equal(t, 1, res.Success)
}

func TestProcessUnprocessed(t *testing.T) {
	freshDB(t)
	withSource(t, &fakeSource{
		details: map[string]*VideoMetadata{
			"https://www.youtube.com/watch?v=new": {ID: "new", Title: "fresh"},
		},
	})
	ctx := context.Background()

	_, err := InsertURLs(ctx, []VideoURL{
		{URL: "https://www.youtube.com/watch?v=new"},
		{URL: "https://www.youtube.com/watch?v=old"},
	})
	require.NoError(t, err)
	require.NoError(t, UpsertDetail(ctx, &VideoDetail{
		VideoURL: "https://www.youtube.com/watch?v=old",
		Title:    "already there",
	}))

	res, err := ProcessUnprocessed(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Processed)
	assert.Equal(t, 1, res.Success)
}
