package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/papercomputeco/marquee/api/query"
	"github.com/papercomputeco/marquee/pkg/recommend"
)

// handleRecommend handles GET /v1/recommend requests.
// Query parameters:
//   - query (required): a title or part of one
//   - top_n (optional, default from config): number of results to return
func (s *Server) handleRecommend(c *fiber.Ctx) error {
	q := c.Query("query")
	if strings.TrimSpace(q) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "query parameter is required",
		})
	}

	topN, ok := s.topNParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "top_n must be a positive integer",
		})
	}

	output, err := query.Recommend(c.Context(), s.recommender, query.RecommendInput{
		Query: q,
		TopN:  topN,
	}, s.config.DefaultTopN, s.logger)
	if err != nil {
		return s.queryError(c, err)
	}

	return c.JSON(output)
}

// handleSurprise handles GET /v1/surprise requests.
// Query parameters:
//   - top_n (optional, default from config): number of results to return
func (s *Server) handleSurprise(c *fiber.Ctx) error {
	if s.picker == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{
			Error: "surprise picks are not configured",
		})
	}

	topN, ok := s.topNParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "top_n must be a positive integer",
		})
	}

	output, err := query.Surprise(c.Context(), s.recommender, s.picker, query.SurpriseInput{
		TopN: topN,
	}, s.config.DefaultTopN, s.logger)
	if err != nil {
		return s.queryError(c, err)
	}

	return c.JSON(output)
}

// topNParam returns the top_n query parameter, or zero when absent so the
// configured default applies.
func (s *Server) topNParam(c *fiber.Ctx) (int, bool) {
	if c.Query("top_n") == "" {
		return 0, true
	}
	n, ok := intParam(c, "top_n", 0)
	return n, ok && n > 0
}

// queryError maps recommendation errors onto HTTP statuses.
func (s *Server) queryError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, recommend.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error: "movie not found",
		})
	case errors.Is(err, recommend.ErrInvalidArgument):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: err.Error(),
		})
	default:
		s.logger.Error("recommendation failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "failed to build recommendations",
		})
	}
}
