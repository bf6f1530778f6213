// Package api provides the HTTP API server for movie recommendations, the
// browsable web page and the MCP endpoint.
package api

// Config is the API server configuration.
type Config struct {
	// ListenAddr is the address to listen on (e.g., ":8090")
	ListenAddr string

	// DefaultTopN is the recommendation count used when a request omits top_n
	DefaultTopN int

	// MaxPageSize bounds the limit of /v1/movies (default 500)
	MaxPageSize int
}
