package vidserver

import (
	"context"

	"github.com/confvid/go_confvid/internal/engine/videos"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerConferenceStats(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_conference_statistics",
		Description: "Aggregate statistics over stored video details: totals plus a per-conference, per-year breakdown.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, _ videos.StatsInput) (*mcp.CallToolResult, *videos.Stats, error) {
		stats, err := videos.ConferenceStats(ctx)
		if err != nil {
			return nil, nil, err
		}
		return textResult(formatStats(stats)), stats, nil
	})
}
