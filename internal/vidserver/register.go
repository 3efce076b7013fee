// Package vidserver exposes the video collection and extraction engine
// as MCP tools.
package vidserver

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterTools registers all collection and extraction tools on the
// given MCP server.
func RegisterTools(server *mcp.Server) {
	registerCollectChannel(server)
	registerCollectPlaylist(server)
	registerAutoCollect(server)
	registerGetCollected(server)
	registerExtractDetails(server)
	registerBatchExtract(server)
	registerProcessUnprocessed(server)
	registerGetVideoDetails(server)
	registerConferenceStats(server)
}

// textResult wraps a human-readable summary as a tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}
