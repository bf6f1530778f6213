package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/papercomputeco/marquee/api/query"
	"github.com/papercomputeco/marquee/pkg/recommend"
)

var (
	recommendToolName    = "recommend"
	recommendDescription = "Recommend movies similar to a given title. The first catalog title containing the query (case-insensitive) is matched, and other movies are ranked by how similar their genres, directors and writers are."

	surpriseToolName    = "surprise"
	surpriseDescription = "Pick a random movie from the catalog and recommend movies similar to it."
)

// handleRecommend processes a recommend request.
func (s *Server) handleRecommend(ctx context.Context, _ *mcp.CallToolRequest, input query.RecommendInput) (*mcp.CallToolResult, query.Output, error) {
	output, err := query.Recommend(ctx, s.config.Recommender, input, s.config.DefaultTopN, s.config.Logger)
	if err != nil {
		return s.toolError(err), emptyOutput(), nil
	}
	return s.toolResult(output)
}

// handleSurprise processes a surprise request.
func (s *Server) handleSurprise(ctx context.Context, _ *mcp.CallToolRequest, input query.SurpriseInput) (*mcp.CallToolResult, query.Output, error) {
	output, err := query.Surprise(ctx, s.config.Recommender, s.config.Picker, input, s.config.DefaultTopN, s.config.Logger)
	if err != nil {
		return s.toolError(err), emptyOutput(), nil
	}
	return s.toolResult(output)
}

func (s *Server) toolError(err error) *mcp.CallToolResult {
	var text string
	switch {
	case errors.Is(err, recommend.ErrNotFound):
		text = fmt.Sprintf("Movie not found: %v", err)
	case errors.Is(err, recommend.ErrInvalidArgument):
		text = fmt.Sprintf("Invalid request: %v", err)
	default:
		s.config.Logger.Error("MCP tool failed", "error", err)
		text = fmt.Sprintf("Failed to recommend: %v", err)
	}

	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

// toolResult returns output as structured content with a JSON text copy.
func (s *Server) toolResult(output *query.Output) (*mcp.CallToolResult, query.Output, error) {
	jsonBytes, err := json.Marshal(output)
	if err != nil {
		s.config.Logger.Error("failed to marshal recommend output", "error", err)
		return s.toolError(err), emptyOutput(), nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(jsonBytes)},
		},
	}, *output, nil
}

func emptyOutput() query.Output {
	return query.Output{Recommendations: []query.Recommendation{}}
}
