package vidserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/confvid/go_confvid/internal/engine/videos"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerCollectChannel(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "collect_channel_videos",
		Description: "Collect video URLs from a YouTube channel and save them to the database. Duplicate URLs are ignored.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input videos.CollectChannelInput) (*mcp.CallToolResult, *videos.CollectResult, error) {
		if input.ChannelURL == "" {
			return nil, nil, errors.New("channel_url is required")
		}
		result, err := videos.CollectFromChannel(ctx, input.ChannelURL)
		if err != nil {
			return nil, nil, err
		}
		return textResult(formatCollect(result)), result, nil
	})
}

func registerCollectPlaylist(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "collect_playlist_videos",
		Description: "Collect video URLs from a YouTube playlist and save them to the database. Duplicate URLs are ignored.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input videos.CollectPlaylistInput) (*mcp.CallToolResult, *videos.CollectResult, error) {
		if input.PlaylistURL == "" {
			return nil, nil, errors.New("playlist_url is required")
		}
		result, err := videos.CollectFromPlaylist(ctx, input.PlaylistURL)
		if err != nil {
			return nil, nil, err
		}
		return textResult(formatCollect(result)), result, nil
	})
}

func registerAutoCollect(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "auto_collect_videos",
		Description: "Detect whether a URL is a YouTube channel or playlist, then collect its video URLs. Fails on URLs of any other shape.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input videos.AutoCollectInput) (*mcp.CallToolResult, *videos.CollectResult, error) {
		if input.URL == "" {
			return nil, nil, errors.New("url is required")
		}
		result, err := videos.CollectAuto(ctx, input.URL)
		if err != nil {
			return nil, nil, err
		}
		return textResult(formatCollect(result)), result, nil
	})
}

func registerGetCollected(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_collected_videos",
		Description: "List collected video URLs from the database, most recently collected first.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input videos.ListURLsInput) (*mcp.CallToolResult, *videos.ListURLsResult, error) {
		limit := input.Limit
		if limit <= 0 {
			limit = 100
		}
		urls, err := videos.ListURLs(ctx, limit)
		if err != nil {
			return nil, nil, err
		}
		result := &videos.ListURLsResult{Total: len(urls), URLs: urls}
		return textResult(formatURLList(urls)), result, nil
	})
}

func formatCollect(r *videos.CollectResult) string {
	return fmt.Sprintf("Collected %d video URLs from %s (%d new, %d already known).",
		r.Found, r.SourceType, r.Saved, r.Found-r.Saved)
}
