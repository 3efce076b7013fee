package sources

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?t=10&v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PLx", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/playlist?list=PLx", ""},
		{"https://example.com/watch?v=dQw4w9WgXcQ", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, extractVideoID(tt.url), tt.url)
	}
}

func TestExtractPlaylistID(t *testing.T) {
	id, err := extractPlaylistID("https://www.youtube.com/playlist?list=PLa_b-c123")
	require.NoError(t, err)
	assert.Equal(t, "PLa_b-c123", id)

	_, err = extractPlaylistID("https://www.youtube.com/playlist")
	assert.Error(t, err)
}

func TestResolveChannelIDFromURL(t *testing.T) {
	c := &Innertube{}
	id, err := c.resolveChannelID(context.Background(),
		"https://www.youtube.com/channel/UCxX9wt5FWQUAAz4UrysqK9A")
	require.NoError(t, err)
	assert.Equal(t, "UCxX9wt5FWQUAAz4UrysqK9A", id)
}

func TestWalkKey(t *testing.T) {
	doc := json.RawMessage(`{
		"contents": [
			{"videoRenderer": {"videoId": "aaa"}},
			{"wrapper": {"videoRenderer": {"videoId": "bbb"}}},
			{"other": 42}
		]
	}`)

	var ids []string
	walkKey(doc, "videoRenderer", func(raw json.RawMessage) bool {
		var vr struct {
			VideoID string `json:"videoId"`
		}
		require.NoError(t, json.Unmarshal(raw, &vr))
		ids = append(ids, vr.VideoID)
		return true
	})
	assert.ElementsMatch(t, []string{"aaa", "bbb"}, ids)
}

func TestWalkKeyStopsEarly(t *testing.T) {
	doc := json.RawMessage(`[
		{"hit": 1},
		{"hit": 2},
		{"hit": 3}
	]`)

	calls := 0
	walkKey(doc, "hit", func(json.RawMessage) bool {
		calls++
		return false
	})
	assert.Equal(t, 1, calls)
}

func TestFirstContinuationToken(t *testing.T) {
	doc := json.RawMessage(`{
		"onResponseReceivedActions": [{
			"appendContinuationItemsAction": {
				"continuationItems": [{
					"continuationItemRenderer": {
						"continuationEndpoint": {
							"continuationCommand": {"token": "next-page-token"}
						}
					}
				}]
			}
		}]
	}`)
	assert.Equal(t, "next-page-token", firstContinuationToken(doc))

	assert.Equal(t, "", firstContinuationToken(json.RawMessage(`{"contents": []}`)))
}

func TestYtRunsJoin(t *testing.T) {
	r := ytRuns{Runs: []ytRun{{Text: "PyCon KR 2019 "}, {Text: "- Keynote"}}}
	assert.Equal(t, "PyCon KR 2019 - Keynote", r.join())

	assert.Equal(t, "", ytRuns{}.join())
}

func TestExtractChannelName(t *testing.T) {
	doc := json.RawMessage(`{
		"metadata": {
			"channelMetadataRenderer": {"title": "PyCon KR", "description": "ignored"}
		}
	}`)
	assert.Equal(t, "PyCon KR", extractChannelName(doc))

	assert.Equal(t, "", extractChannelName(json.RawMessage(`{}`)))
}
