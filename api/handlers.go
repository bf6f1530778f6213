package api

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/papercomputeco/marquee/api/query"
)

// ErrorResponse is the JSON body of every error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatsResponse describes the loaded catalog and index.
type StatsResponse struct {
	Movies      int  `json:"movies"`
	IndexReady  bool `json:"index_ready"`
	DefaultTopN int  `json:"default_top_n"`
}

// MoviesResponse is one page of the catalog.
type MoviesResponse struct {
	Total  int           `json:"total"`
	Offset int           `json:"offset"`
	Limit  int           `json:"limit"`
	Movies []query.Movie `json:"movies"`
}

// handlePing returns a simple health check response.
func (s *Server) handlePing(c *fiber.Ctx) error {
	return c.JSON("pong")
}

// handleStats returns statistics about the catalog and index.
func (s *Server) handleStats(c *fiber.Ctx) error {
	return c.JSON(StatsResponse{
		Movies:      s.recommender.Catalog().Len(),
		IndexReady:  s.recommender.Ready(),
		DefaultTopN: s.config.DefaultTopN,
	})
}

// handleListMovies returns a page of the catalog in catalog order.
// Query parameters:
//   - offset (optional, default 0)
//   - limit (optional, default 50, capped at the configured page size)
func (s *Server) handleListMovies(c *fiber.Ctx) error {
	offset, ok := intParam(c, "offset", 0)
	if !ok || offset < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "offset must be a non-negative integer",
		})
	}

	limit, ok := intParam(c, "limit", 50)
	if !ok || limit <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "limit must be a positive integer",
		})
	}
	limit = min(limit, s.config.MaxPageSize)

	cat := s.recommender.Catalog()
	page := cat.Slice(offset, limit)
	movies := make([]query.Movie, len(page))
	for i, m := range page {
		movies[i] = query.NewMovie(m)
	}

	return c.JSON(MoviesResponse{
		Total:  cat.Len(),
		Offset: offset,
		Limit:  limit,
		Movies: movies,
	})
}

// intParam parses an optional integer query parameter.
func intParam(c *fiber.Ctx, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
