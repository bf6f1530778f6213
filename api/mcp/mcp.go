// Package mcp provides an MCP (Model Context Protocol) server exposing movie
// recommendations as tools.
package mcp

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/papercomputeco/marquee/pkg/recommend"
	"github.com/papercomputeco/marquee/pkg/utils"
)

type Config struct {
	// Recommender answers recommendation queries
	Recommender *recommend.Recommender

	// Picker drives the surprise tool (optional, enables surprise)
	Picker *recommend.Picker

	// DefaultTopN is used when a tool call omits top_n
	DefaultTopN int

	// Logger is the configured slog logger
	Logger *slog.Logger
}

type Server struct {
	config    Config
	mcpServer *mcp.Server
	handler   *mcp.StreamableHTTPHandler
}

// NewServer creates a new MCP server with the recommend tool.
func NewServer(c Config) (*Server, error) {
	s := &Server{
		config: c,
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "marquee",
			Version: utils.Version,
		},
		&mcp.ServerOptions{},
	)

	if c.Recommender == nil {
		return nil, errors.New("recommender is required")
	}
	if c.Logger == nil {
		return nil, errors.New("logger is required")
	}

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        recommendToolName,
		Description: recommendDescription,
	}, s.handleRecommend)

	if c.Picker != nil {
		mcp.AddTool(mcpServer, &mcp.Tool{
			Name:        surpriseToolName,
			Description: surpriseDescription,
		}, s.handleSurprise)
	}

	s.mcpServer = mcpServer

	// Create a streamable HTTP net/http handler for stateless operations
	s.handler = mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server {
			return mcpServer
		},
		&mcp.StreamableHTTPOptions{
			Stateless: true,
		},
	)

	return s, nil
}

// Handler returns the HTTP handler for the MCP server.
func (s *Server) Handler() http.Handler {
	return s.handler
}
