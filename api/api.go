package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"

	"github.com/papercomputeco/marquee/api/mcp"
	"github.com/papercomputeco/marquee/pkg/recommend"
	marqueeweb "github.com/papercomputeco/marquee/web/marquee"
)

const defaultMaxPageSize = 500

// Server is the API server for querying movie recommendations
type Server struct {
	config      Config
	recommender *recommend.Recommender
	picker      *recommend.Picker
	logger      *slog.Logger
	app         *fiber.App
}

// NewServer creates a new API server.
// The recommender is injected so its similarity index is shared with other
// components in the same process. A nil picker disables surprise picks.
func NewServer(config Config, recommender *recommend.Recommender, picker *recommend.Picker, logger *slog.Logger) (*Server, error) {
	if recommender == nil {
		return nil, errors.New("recommender is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if config.DefaultTopN <= 0 {
		config.DefaultTopN = recommend.DefaultTopN
	}
	if config.MaxPageSize <= 0 {
		config.MaxPageSize = defaultMaxPageSize
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s := &Server{
		config:      config,
		recommender: recommender,
		picker:      picker,
		logger:      logger,
		app:         app,
	}

	mcpServer, err := mcp.NewServer(mcp.Config{
		Recommender: recommender,
		Picker:      picker,
		DefaultTopN: config.DefaultTopN,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create MCP server: %w", err)
	}

	app.Use(s.requestLogger)

	app.Get("/ping", s.handlePing)
	app.Get("/v1/stats", s.handleStats)
	app.Get("/v1/movies", s.handleListMovies)
	app.Get("/v1/recommend", s.handleRecommend)
	app.Get("/v1/surprise", s.handleSurprise)
	app.All("/mcp", adaptor.HTTPHandler(mcpServer.Handler()))

	app.Use("/", filesystem.New(filesystem.Config{
		Root:  http.FS(marqueeweb.FS),
		Index: "index.html",
	}))

	return s, nil
}

// Run starts the API server on the configured address.
func (s *Server) Run() error {
	s.logger.Info("starting API server",
		"listen", s.config.ListenAddr,
	)
	return s.app.Listen(s.config.ListenAddr)
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}
