package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request ID on requests and responses.
const RequestIDHeader = "X-Request-ID"

// requestLogger tags each request with an ID, reusing one supplied by the
// client, and logs it once the handler returns.
func (s *Server) requestLogger(c *fiber.Ctx) error {
	id := c.Get(RequestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set(RequestIDHeader, id)
	c.Locals("request_id", id)

	start := time.Now()
	err := c.Next()

	s.logger.Debug("request served",
		"request_id", id,
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
		"elapsed", time.Since(start),
	)
	return err
}
