package vidserver

import (
	"context"
	"errors"

	"github.com/confvid/go_confvid/internal/engine/videos"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerExtractDetails(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "extract_video_details",
		Description: "Extract detailed information (title, counts, conference name and year) for a single YouTube video URL and save it. Re-extraction replaces any previous record.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input videos.ExtractDetailsInput) (*mcp.CallToolResult, *videos.VideoDetail, error) {
		if input.VideoURL == "" {
			return nil, nil, errors.New("video_url is required")
		}
		detail, err := videos.ExtractDetails(ctx, input.VideoURL)
		if err != nil {
			return nil, nil, err
		}
		return textResult(formatDetail(detail)), detail, nil
	})
}

func registerBatchExtract(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "batch_extract_details",
		Description: "Extract details for multiple video URLs sequentially. Individual failures do not stop the batch; a success/error tally is reported.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input videos.BatchExtractInput) (*mcp.CallToolResult, *videos.BatchResult, error) {
		if len(input.VideoURLs) == 0 {
			return nil, nil, errors.New("video_urls is required")
		}
		result := videos.ExtractBatch(ctx, input.VideoURLs, 0)
		return textResult(formatBatch("Batch processing completed", result)), result, nil
	})
}

func registerProcessUnprocessed(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "process_unprocessed_videos",
		Description: "Extract details for collected URLs that have no detail record yet. Processes up to limit videos (default 10), sequentially.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input videos.ProcessUnprocessedInput) (*mcp.CallToolResult, *videos.BatchResult, error) {
		result, err := videos.ProcessUnprocessed(ctx, input.Limit)
		if err != nil {
			return nil, nil, err
		}
		if result.Processed == 0 {
			return textResult("No unprocessed videos found."), result, nil
		}
		return textResult(formatBatch("Processed unprocessed videos", result)), result, nil
	})
}

func registerGetVideoDetails(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_video_details",
		Description: "Query stored video details, optionally filtered by conference name (substring) and year, ordered by view count descending.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input videos.DetailQueryInput) (*mcp.CallToolResult, *videos.DetailQueryResult, error) {
		details, err := videos.QueryDetails(ctx, input.ConferenceName, input.ConferenceYear, input.Limit)
		if err != nil {
			return nil, nil, err
		}
		result := &videos.DetailQueryResult{Total: len(details), Videos: details}
		if len(details) == 0 {
			return textResult("No video details found matching the criteria."), result, nil
		}
		return textResult(formatDetailList(details)), result, nil
	})
}
